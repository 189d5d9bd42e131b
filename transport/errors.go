package transport

import (
	"errors"
	"fmt"
	"net"
)

var (
	ErrConnectionRead  = errors.New("connection read failure")
	ErrConnectionWrite = errors.New("connection write failure")
	// ErrClosed is returned by the listener after it was stopped. It matches net.ErrClosed,
	// which is what the pipeline recognizes as a graceful shutdown.
	ErrClosed = fmt.Errorf("transport is closed: %w", net.ErrClosed)
)

func readFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrConnectionRead, err)
}

func writeFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrConnectionWrite, err)
}
