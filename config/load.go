package config

import (
	"fmt"
	"os"
	"time"
	"unsafe"

	json "github.com/json-iterator/go"
)

var strict = json.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

func init() {
	json.RegisterTypeDecoderFunc("time.Duration", decodeDuration)
}

// Load reads a JSON config file and overlays it onto the defaults. Durations are
// accepted either as strings ("30s", "1m30s") or as plain nanoseconds.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return Parse(data)
}

// Parse does the same as Load, but takes the file contents directly.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := strict.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg = Fill(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values no server can work with.
func (c *Config) Validate() error {
	switch {
	case c.Request.MaxSize < 0:
		return fmt.Errorf("config: request.maxSize must be positive, got %d", c.Request.MaxSize)
	case c.Request.MaxHeaders < 0:
		return fmt.Errorf("config: request.maxHeaders must be positive, got %d", c.Request.MaxHeaders)
	case c.NET.ReadBufferSize < 0:
		return fmt.Errorf("config: net.readBufferSize must be positive, got %d", c.NET.ReadBufferSize)
	case c.NET.MaxConnections < 0:
		return fmt.Errorf("config: net.maxConnections must be positive, got %d", c.NET.MaxConnections)
	case c.NET.StreamChunkSize < 0:
		return fmt.Errorf("config: net.streamChunkSize must be positive, got %d", c.NET.StreamChunkSize)
	case c.NET.ReadTimeout < 0, c.NET.WriteTimeout < 0, c.NET.ConnectionDeadline < 0,
		c.NET.AcceptLoopInterruptPeriod < 0:
		return fmt.Errorf("config: timeouts must not be negative")
	}

	return nil
}

func decodeDuration(ptr unsafe.Pointer, iter *json.Iterator) {
	switch iter.WhatIsNext() {
	case json.StringValue:
		d, err := time.ParseDuration(iter.ReadString())
		if err != nil {
			iter.ReportError("decode time.Duration", err.Error())
			return
		}

		*(*time.Duration)(ptr) = d
	case json.NumberValue:
		*(*time.Duration)(ptr) = time.Duration(iter.ReadInt64())
	default:
		iter.Skip()
		iter.ReportError("decode time.Duration", "expected a duration string or nanoseconds")
	}
}
