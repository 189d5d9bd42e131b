package pipeline

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type conn struct {
	input  string
	output string
	closed bool
}

func (c *conn) Close() error {
	c.closed = true
	return nil
}

type report struct {
	conn  *conn
	stage Stage
	err   error
}

type recorder struct {
	mu      sync.Mutex
	reports []report
}

func (r *recorder) sink() SinkFunc[*conn] {
	return func(c *conn, stage Stage, err error) {
		r.mu.Lock()
		r.reports = append(r.reports, report{c, stage, err})
		r.mu.Unlock()
	}
}

func (r *recorder) all() []report {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.reports
}

var (
	errEmpty    = errors.New("empty input")
	errNegative = errors.New("negative number")
	errWrite    = errors.New("write failed")
)

// newTestPipeline parses a number, doubles it and writes the result back.
func newTestPipeline(rec *recorder) *Pipeline[*conn, int, int] {
	return New[*conn, int, int](
		ReceiverFunc[*conn, int](func(c *conn) (int, error) {
			if len(c.input) == 0 {
				return 0, errEmpty
			}

			return strconv.Atoi(c.input)
		}),
		HandlerFunc[int, int](func(n int) (int, error) {
			if n < 0 {
				return 0, errNegative
			}

			if n == 13 {
				panic("unlucky")
			}

			return n * 2, nil
		}),
		ResponderFunc[*conn, int](func(c *conn, n int) error {
			if n == 0 {
				return errWrite
			}

			c.output = strconv.Itoa(n)
			return nil
		}),
		rec.sink(),
	)
}

func TestIterate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := new(recorder)
		c := &conn{input: "21"}
		require.Equal(t, Done, newTestPipeline(rec).Iterate(c))
		require.Equal(t, "42", c.output)
		require.Empty(t, rec.all())
	})

	t.Run("receiver error", func(t *testing.T) {
		rec := new(recorder)
		c := &conn{}
		require.Equal(t, Error, newTestPipeline(rec).Iterate(c))
		require.Empty(t, c.output)
		reports := rec.all()
		require.Len(t, reports, 1)
		require.Equal(t, StageReceive, reports[0].stage)
		require.ErrorIs(t, reports[0].err, errEmpty)
		require.Same(t, c, reports[0].conn)
	})

	t.Run("handler error", func(t *testing.T) {
		rec := new(recorder)
		c := &conn{input: "-1"}
		require.Equal(t, Error, newTestPipeline(rec).Iterate(c))
		require.Empty(t, c.output)
		reports := rec.all()
		require.Len(t, reports, 1)
		require.Equal(t, StageHandle, reports[0].stage)
		require.ErrorIs(t, reports[0].err, errNegative)
	})

	t.Run("responder error", func(t *testing.T) {
		rec := new(recorder)
		require.Equal(t, Error, newTestPipeline(rec).Iterate(&conn{input: "0"}))
		reports := rec.all()
		require.Len(t, reports, 1)
		require.Equal(t, StageRespond, reports[0].stage)
		require.ErrorIs(t, reports[0].err, errWrite)
	})

	t.Run("panicking handler", func(t *testing.T) {
		rec := new(recorder)
		p := newTestPipeline(rec)
		require.Equal(t, Error, p.Iterate(&conn{input: "13"}))
		reports := rec.all()
		require.Len(t, reports, 1)
		require.Equal(t, StageHandle, reports[0].stage)

		var panicErr *PanicError
		require.ErrorAs(t, reports[0].err, &panicErr)
		require.Equal(t, "unlucky", panicErr.Value)
		require.NotEmpty(t, panicErr.Stack)

		c := &conn{input: "1"}
		require.Equal(t, Done, p.Iterate(c))
		require.Equal(t, "2", c.output)
	})

	t.Run("panicking sink", func(t *testing.T) {
		p := newTestPipeline(new(recorder))
		p.sink = SinkFunc[*conn](func(*conn, Stage, error) {
			panic("sink")
		})
		require.Equal(t, Error, p.Iterate(&conn{}))
	})

	t.Run("nil sink", func(t *testing.T) {
		p := New[*conn, int, int](
			ReceiverFunc[*conn, int](func(*conn) (int, error) { return 0, errEmpty }),
			HandlerFunc[int, int](func(n int) (int, error) { return n, nil }),
			ResponderFunc[*conn, int](func(*conn, int) error { return nil }),
			nil,
		)
		require.Equal(t, Error, p.Iterate(&conn{}))
	})
}

type listAcceptor struct {
	mu    sync.Mutex
	conns []*conn
	err   error
}

func (l *listAcceptor) Accept() (*conn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.conns) == 0 {
		return nil, l.err
	}

	c := l.conns[0]
	l.conns = l.conns[1:]

	return c, nil
}

func TestRun(t *testing.T) {
	newConns := func(n int) []*conn {
		conns := make([]*conn, n)
		for i := range conns {
			conns[i] = &conn{input: strconv.Itoa(i + 1)}
		}

		return conns
	}

	checkConns := func(t *testing.T, conns []*conn) {
		for i, c := range conns {
			require.Equal(t, strconv.Itoa((i+1)*2), c.output)
			require.True(t, c.closed)
		}
	}

	t.Run("goroutine per connection", func(t *testing.T) {
		conns := newConns(100)
		acceptor := &listAcceptor{conns: append([]*conn(nil), conns...), err: net.ErrClosed}
		require.NoError(t, newTestPipeline(new(recorder)).Run(acceptor))
		checkConns(t, conns)
	})

	t.Run("worker pool", func(t *testing.T) {
		conns := newConns(100)
		acceptor := &listAcceptor{conns: append([]*conn(nil), conns...), err: net.ErrClosed}
		require.NoError(t, newTestPipeline(new(recorder)).Workers(4, 0).Run(acceptor))
		checkConns(t, conns)
	})

	t.Run("failures do not stop the loop", func(t *testing.T) {
		rec := new(recorder)
		conns := []*conn{{input: ""}, {input: "13"}, {input: "-5"}, {input: "0"}, {input: "7"}}
		acceptor := &listAcceptor{conns: append([]*conn(nil), conns...), err: net.ErrClosed}
		require.NoError(t, newTestPipeline(rec).Run(acceptor))
		require.Len(t, rec.all(), 4)
		require.Equal(t, "14", conns[4].output)
	})

	t.Run("acceptor failure", func(t *testing.T) {
		broken := errors.New("too many open files")
		acceptor := &listAcceptor{conns: newConns(3), err: broken}
		require.ErrorIs(t, newTestPipeline(new(recorder)).Run(acceptor), broken)
	})

	t.Run("joins in-flight iterations", func(t *testing.T) {
		var finished atomic.Int32
		p := New[*conn, int, int](
			ReceiverFunc[*conn, int](func(*conn) (int, error) { return 1, nil }),
			HandlerFunc[int, int](func(n int) (int, error) {
				time.Sleep(20 * time.Millisecond)
				return n, nil
			}),
			ResponderFunc[*conn, int](func(*conn, int) error {
				finished.Add(1)
				return nil
			}),
			nil,
		)

		acceptor := &listAcceptor{conns: newConns(10), err: fmt.Errorf("stopped: %w", net.ErrClosed)}
		require.NoError(t, p.Run(acceptor))
		require.Equal(t, int32(10), finished.Load())
	})
}

func TestStrings(t *testing.T) {
	require.Equal(t, "receiver", StageReceive.String())
	require.Equal(t, "handler", StageHandle.String())
	require.Equal(t, "responder", StageRespond.String())
	require.Equal(t, "done", Done.String())
	require.Equal(t, "error", Error.String())
	require.True(t, strings.HasPrefix((&PanicError{Value: 1}).Error(), "panic"))
}
