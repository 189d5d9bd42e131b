package config

import (
	"errors"
	"time"
)

type (
	NET struct {
		// ReadBufferSize is a size of the fixed buffer used to read from a connection. A read
		// returning less than this number of bytes is considered the end of a message.
		ReadBufferSize int
		// MaxMessageSize limits how many bytes a single message may take in total. Exceeding
		// messages are rejected with 413 Request Entity Too Large.
		MaxMessageSize int
		// ReadTimeout is a deadline for every single read. Zero disables it.
		ReadTimeout time.Duration `test:"nullable"`
		// WriteTimeout is a deadline for every single write. Zero disables it.
		WriteTimeout time.Duration `test:"nullable"`
		// MaxConnections limits the number of connections served simultaneously. Zero means
		// no limit.
		MaxConnections int `test:"nullable"`
		// ReusePort sets SO_REUSEADDR and SO_REUSEPORT on the listening socket, where supported.
		ReusePort bool `test:"nullable"`
	}

	Pipeline struct {
		// Workers is a number of goroutines serving accepted connections. Zero spawns a new
		// goroutine for every connection.
		Workers int `test:"nullable"`
		// QueueSize is a number of accepted connections waiting for a free worker, after which
		// the accept loop blocks. Ignored if Workers is zero. Zero means equal to Workers.
		QueueSize int `test:"nullable"`
	}

	Headers struct {
		// Default headers are included into every response implicitly, unless explicitly
		// overridden.
		Default map[string]string
	}
)

// Config holds settings used across various parts of minihttp, mainly restrictions, limitations
// and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	NET      NET
	Pipeline Pipeline
	Headers  Headers
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			ReadBufferSize: 1024,
			MaxMessageSize: 1024 * 1024,
		},
		Headers: Headers{
			Default: make(map[string]string),
		},
	}
}

var (
	ErrBadReadBufferSize = errors.New("read buffer size must be positive")
	ErrBadMaxMessageSize = errors.New("max message size must not be less than the read buffer size")
	ErrNegative          = errors.New("limits and timeouts must not be negative")
)

// Validate reports the first inconsistency found.
func (c *Config) Validate() error {
	switch {
	case c.NET.ReadBufferSize <= 0:
		return ErrBadReadBufferSize
	case c.NET.MaxMessageSize < c.NET.ReadBufferSize:
		return ErrBadMaxMessageSize
	case c.NET.ReadTimeout < 0, c.NET.WriteTimeout < 0, c.NET.MaxConnections < 0,
		c.Pipeline.Workers < 0, c.Pipeline.QueueSize < 0:
		return ErrNegative
	}

	return nil
}
