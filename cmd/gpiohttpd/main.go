package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frankiez/gpio-httpd"
	"github.com/frankiez/gpio-httpd/config"
	"github.com/frankiez/gpio-httpd/http"
	"github.com/frankiez/gpio-httpd/router/inbuilt"
	"github.com/rs/zerolog"
)

const (
	helpTextPort    = "port the server listens on"
	helpTextDir     = "document root the files are served from"
	helpTextConfig  = "path to a JSON config file"
	helpTextVerbose = "log every failed request, too"
)

type statusReport struct {
	Server string `json:"server"`
	Root   string `json:"root"`
	Uptime string `json:"uptime"`
}

func main() {
	portPtr := flag.String("p", "8080", helpTextPort)
	dirPtr := flag.String("d", ".", helpTextDir)
	configPtr := flag.String("c", "", helpTextConfig)
	verbosePtr := flag.Bool("v", false, helpTextVerbose)
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbosePtr {
		level = zerolog.DebugLevel
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		Level(level).
		With().
		Timestamp().
		Logger()

	if err := run(":"+*portPtr, *dirPtr, *configPtr, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(addr, root, configPath string, log zerolog.Logger) error {
	cfg := config.Default()
	if len(configPath) > 0 {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	r, err := newRouter(root, cfg, time.Now())
	if err != nil {
		return err
	}

	app := gpiohttpd.New(addr).
		Tune(cfg).
		Logger(log).
		NotifyOnStart(func() {
			log.Info().Str("root", r.Root()).Msgf("serving on %s", addr)
		}).
		NotifyOnStop(func() {
			log.Info().Msg("all connections are closed")
		})

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signals
		log.Info().Stringer("signal", sig).Msg("shutting down")
		app.Stop()
	}()

	return app.Serve(r)
}

// newRouter serves the document root and registers the device endpoints.
func newRouter(root string, cfg *config.Config, started time.Time) (*inbuilt.Router, error) {
	r, err := inbuilt.New(root)
	if err != nil {
		return nil, err
	}

	return r.Index(cfg.Server.Index).
		Post("/status", func(request *http.Request) *http.Response {
			return request.Respond().JSON(statusReport{
				Server: cfg.Server.Name,
				Root:   r.Root(),
				Uptime: time.Since(started).Round(time.Second).String(),
			})
		}), nil
}
