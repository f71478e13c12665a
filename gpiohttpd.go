package gpiohttpd

import (
	"net"
	"sync"

	"github.com/frankiez/gpio-httpd/config"
	"github.com/frankiez/gpio-httpd/internal/protocol/http1"
	"github.com/frankiez/gpio-httpd/router"
	"github.com/frankiez/gpio-httpd/transport"
	"github.com/rs/zerolog"
)

// App binds the address and serves every accepted connection with the router, one request
// per connection.
type App struct {
	addr     string
	cfg      *config.Config
	log      zerolog.Logger
	hooks    hooks
	bound    net.Addr
	stop     chan struct{}
	stopOnce sync.Once
}

// New returns a new App instance listening on addr, e.g. ":8080" or "localhost:0".
func New(addr string) *App {
	return &App{
		addr: addr,
		cfg:  config.Default(),
		log:  zerolog.Nop(),
		stop: make(chan struct{}),
	}
}

// Tune replaces the default config. Zero fields are filled with defaults.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = config.Fill(cfg)
	return a
}

// Logger sets the logger. Nothing is logged by default.
func (a *App) Logger(log zerolog.Logger) *App {
	a.log = log
	return a
}

// NotifyOnStart calls the callback at the moment the listener is bound. The address is
// already known by then, so Addr is safe to call from the callback.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment the server is down. It's guaranteed
// that no new connections are accepted and every client is already disconnected.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Addr returns the bound address. It's nil until the server is started.
func (a *App) Addr() net.Addr {
	return a.bound
}

// Serve binds the address and serves connections until Stop is called or the accept loop
// fails. In-flight connections are served to the end before returning.
func (a *App) Serve(r router.Router) error {
	tcp := transport.NewTCP()
	if err := tcp.Bind(a.addr); err != nil {
		return err
	}

	a.bound = tcp.Addr()
	a.log.Info().Stringer("addr", a.bound).Msg("listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- tcp.Listen(a.cfg.NET, a.onConn(r))
	}()

	callIfNotNil(a.hooks.OnStart)

	var err error
	select {
	case err = <-errCh:
	case <-a.stop:
		// the accept loop notices it on the next interrupt at the latest
		tcp.Stop()
		err = <-errCh
	}

	tcp.Close()
	tcp.Wait()
	a.log.Info().Err(err).Msg("stopped")
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Stop stops accepting new connections. Already accepted ones are served till the end.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the server
// will still be working
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		close(a.stop)
	})
}

func (a *App) onConn(r router.Router) func(conn net.Conn) {
	return func(conn net.Conn) {
		client := transport.NewClient(conn, a.cfg.NET, make([]byte, a.cfg.NET.ReadBufferSize))
		http1.New(a.cfg, r, client, a.log).Serve()
	}
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
