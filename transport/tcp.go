package transport

import (
	"context"
	"errors"
	"net"
	"sync/atomic"

	"github.com/indigo-web/minihttp/config"
	"golang.org/x/net/netutil"
)

// TCP is the listening side of the transport. It produces a client per accepted connection
// until stopped.
type TCP struct {
	cfg  config.NET
	l    net.Listener
	stop *atomic.Bool
}

func NewTCP(cfg config.NET) *TCP {
	return &TCP{
		cfg:  cfg,
		stop: new(atomic.Bool),
	}
}

// Bind opens the listening socket. If the connection limit is set, no more than that number of
// connections is accepted simultaneously. The rest wait in the backlog until a slot is freed by
// closing some of the accepted ones.
func (t *TCP) Bind(addr string) error {
	lc := net.ListenConfig{}
	if t.cfg.ReusePort {
		lc.Control = reusePortControl
	}

	l, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}

	if t.cfg.MaxConnections > 0 {
		l = netutil.LimitListener(l, t.cfg.MaxConnections)
	}

	t.l = l

	return nil
}

// Addr returns the address the socket is bound to. Returns nil if not bound yet.
func (t *TCP) Addr() net.Addr {
	if t.l == nil {
		return nil
	}

	return t.l.Addr()
}

// Accept blocks until a new connection arrives. After Stop was called, ErrClosed is returned.
func (t *TCP) Accept() (Client, error) {
	if t.l == nil || t.stop.Load() {
		return nil, ErrClosed
	}

	conn, err := t.l.Accept()
	if err != nil {
		if t.stop.Load() || errors.Is(err, net.ErrClosed) {
			return nil, ErrClosed
		}

		return nil, err
	}

	return NewClient(conn, t.cfg.ReadTimeout, t.cfg.WriteTimeout), nil
}

// Stop closes the listening socket, but leaves all the accepted connections free to end their
// lives peacefully.
func (t *TCP) Stop() error {
	if t.stop.Swap(true) || t.l == nil {
		return nil
	}

	return t.l.Close()
}
