package dummy

import (
	"io"
	"net"
	"sync"
	"time"

	"github.com/indigo-web/minihttp/transport"
)

var _ transport.Client = new(Client)

// Client feeds the pre-defined chunks on reads, one chunk per read (or less, if the buffer is
// too small), and tracks all the written data. After the chunks are exhausted, io.EOF is returned,
// unless set to loop. It is a universal mock, suitable for most of the tests.
type Client struct {
	mu       sync.Mutex
	id       string
	chunks   [][]byte
	pointer  int
	tmp      []byte
	loop     bool
	closed   bool
	readErr  error
	writeErr error
	written  []byte
	remote   net.Addr
}

func NewMockClient(chunks ...[]byte) *Client {
	return &Client{
		id:     "dummy",
		chunks: chunks,
		remote: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 12345},
	}
}

// LoopReads makes the client start over after the last chunk instead of returning io.EOF.
func (c *Client) LoopReads() *Client {
	c.loop = true
	return c
}

// FailReads makes every read fail with the error, once the chunks are exhausted.
func (c *Client) FailReads(err error) *Client {
	c.readErr = err
	return c
}

// FailWrites makes every write fail with the error.
func (c *Client) FailWrites(err error) *Client {
	c.writeErr = err
	return c
}

func (c *Client) WithID(id string) *Client {
	c.id = id
	return c
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Read(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	if len(c.tmp) == 0 {
		if c.pointer >= len(c.chunks) {
			if !c.loop || len(c.chunks) == 0 {
				if c.readErr != nil {
					return 0, c.readErr
				}

				return 0, io.EOF
			}

			c.pointer = 0
		}

		c.tmp = c.chunks[c.pointer]
		c.pointer++
	}

	n = copy(b, c.tmp)
	c.tmp = c.tmp[n:]

	return n, nil
}

func (c *Client) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	if c.writeErr != nil {
		return 0, c.writeErr
	}

	c.written = append(c.written, b...)

	return len(b), nil
}

// Written returns everything written into the client so far.
func (c *Client) Written() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.written
}

func (c *Client) Conn() net.Conn {
	return (*conn)(c)
}

func (c *Client) Remote() net.Addr {
	return c.remote
}

func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	return nil
}

func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

// conn exposes the client as a net.Conn with no-op deadlines.
type conn Client

func (c *conn) Read(b []byte) (int, error)       { return (*Client)(c).Read(b) }
func (c *conn) Write(b []byte) (int, error)      { return (*Client)(c).Write(b) }
func (c *conn) Close() error                     { return (*Client)(c).Close() }
func (c *conn) LocalAddr() net.Addr              { return nil }
func (c *conn) RemoteAddr() net.Addr             { return c.remote }
func (c *conn) SetDeadline(time.Time) error      { return nil }
func (c *conn) SetReadDeadline(time.Time) error  { return nil }
func (c *conn) SetWriteDeadline(time.Time) error { return nil }
