package transport

import (
	"net"
	"time"

	"github.com/google/uuid"
)

// Client is a single accepted connection, as seen by the pipeline stages.
type Client interface {
	// ID is a unique identifier of the connection, primarily for logging.
	ID() string
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
	Conn() net.Conn
	Remote() net.Addr
	Close() error
}

type client struct {
	id           string
	conn         net.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewClient wraps the connection. Zero timeouts mean no deadlines at all.
func NewClient(conn net.Conn, readTimeout, writeTimeout time.Duration) Client {
	return &client{
		id:           uuid.NewString(),
		conn:         conn,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (c *client) ID() string {
	return c.id
}

// Read reads at most len(b) bytes from the connection. The read deadline is refreshed on
// every call, if set.
func (c *client) Read(b []byte) (int, error) {
	if c.readTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return 0, err
		}
	}

	return c.conn.Read(b)
}

// Write writes data into the underlying connection.
func (c *client) Write(b []byte) (int, error) {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}

	return c.conn.Write(b)
}

// Conn unwraps the underlying net.Conn.
func (c *client) Conn() net.Conn {
	return c.conn
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}
