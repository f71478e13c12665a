package config

import "time"

type (
	Server struct {
		// Name is the value of the Server header in every response.
		Name string `json:"name"`
		// Index is the file served when a GET request points at a directory.
		Index string `json:"index"`
	}

	Request struct {
		// MaxSize limits how many bytes a single request (head and body together) may take.
		// Exceeding it results in 413 Request Entity Too Large.
		MaxSize int `json:"maxSize"`
		// MaxHeaders is the maximal number of header fields in a request.
		MaxHeaders int `json:"maxHeaders"`
	}

	NET struct {
		// ReadBufferSize is how many bytes are requested from the socket by a single read.
		ReadBufferSize int `json:"readBufferSize"`
		// ReadTimeout bounds a single read. If no data arrives in this period, the request
		// is answered with 408 Request Timeout.
		ReadTimeout time.Duration `json:"readTimeout"`
		// WriteTimeout bounds a single write into the socket.
		WriteTimeout time.Duration `json:"writeTimeout"`
		// ConnectionDeadline bounds receiving the whole request, so a client dripping a byte
		// per ReadTimeout can't hold the connection forever.
		ConnectionDeadline time.Duration `json:"connectionDeadline"`
		// AcceptLoopInterruptPeriod controls how often the Accept() call is interrupted
		// in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration `json:"acceptLoopInterruptPeriod"`
		// MaxConnections is the number of connections served concurrently. The accept loop
		// doesn't accept more until one of them is done.
		MaxConnections int `json:"maxConnections"`
		// StreamChunkSize is the size of chunks files are streamed by.
		StreamChunkSize int `json:"streamChunkSize"`
	}

	Headers struct {
		// Default headers are included into every response, unless the response sets
		// a header with the same name.
		Default map[string]string `json:"default"`
	}
)

// Config holds every tunable of the server. It's built once at startup and never modified
// afterwards, so connections share it without any synchronization.
//
// Modify the defaults returned by Default() rather than initializing the config manually.
type Config struct {
	Server  Server  `json:"server"`
	Request Request `json:"request"`
	NET     NET     `json:"net"`
	Headers Headers `json:"headers"`
}

// Default returns the default config.
func Default() *Config {
	return &Config{
		Server: Server{
			Name:  "gpiohttpd/0.1.0",
			Index: "index.html",
		},
		Request: Request{
			MaxSize:    2 * 1024 * 1024,
			MaxHeaders: 50,
		},
		NET: NET{
			ReadBufferSize:            1024,
			ReadTimeout:               30 * time.Second,
			WriteTimeout:              30 * time.Second,
			ConnectionDeadline:        60 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
			MaxConnections:            1024,
			StreamChunkSize:           256 * 1024,
		},
		Headers: Headers{
			Default: make(map[string]string),
		},
	}
}

// Fill replaces every zero value of the passed config with its default.
func Fill(cfg *Config) *Config {
	def := Default()

	cfg.Server.Name = customOrDefault(cfg.Server.Name, def.Server.Name)
	cfg.Server.Index = customOrDefault(cfg.Server.Index, def.Server.Index)
	cfg.Request.MaxSize = customOrDefault(cfg.Request.MaxSize, def.Request.MaxSize)
	cfg.Request.MaxHeaders = customOrDefault(cfg.Request.MaxHeaders, def.Request.MaxHeaders)
	cfg.NET.ReadBufferSize = customOrDefault(cfg.NET.ReadBufferSize, def.NET.ReadBufferSize)
	cfg.NET.ReadTimeout = customOrDefault(cfg.NET.ReadTimeout, def.NET.ReadTimeout)
	cfg.NET.WriteTimeout = customOrDefault(cfg.NET.WriteTimeout, def.NET.WriteTimeout)
	cfg.NET.ConnectionDeadline = customOrDefault(cfg.NET.ConnectionDeadline, def.NET.ConnectionDeadline)
	cfg.NET.AcceptLoopInterruptPeriod = customOrDefault(
		cfg.NET.AcceptLoopInterruptPeriod, def.NET.AcceptLoopInterruptPeriod,
	)
	cfg.NET.MaxConnections = customOrDefault(cfg.NET.MaxConnections, def.NET.MaxConnections)
	cfg.NET.StreamChunkSize = customOrDefault(cfg.NET.StreamChunkSize, def.NET.StreamChunkSize)

	if cfg.Headers.Default == nil {
		cfg.Headers.Default = def.Headers.Default
	}

	return cfg
}

func customOrDefault[T comparable](custom, defaultVal T) T {
	var zero T
	if custom == zero {
		return defaultVal
	}

	return custom
}
