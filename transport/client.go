package transport

import (
	"errors"
	"io"
	"net"
	"os"
	"time"

	"github.com/frankiez/gpio-httpd/config"
	"github.com/frankiez/gpio-httpd/internal/timer"
)

type Client interface {
	Read() ([]byte, error)
	Write([]byte) (int, error)
	Remote() net.Addr
	Close() error
}

type client struct {
	conn         net.Conn
	buff         []byte
	readTimeout  time.Duration
	writeTimeout time.Duration
	deadline     time.Time
}

// NewClient wraps the connection. The connection deadline starts counting right away, so
// the client must be created as soon as the connection is accepted.
func NewClient(conn net.Conn, cfg config.NET, buff []byte) Client {
	return &client{
		conn:         conn,
		buff:         buff,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		deadline:     timer.Now().Add(cfg.ConnectionDeadline),
	}
}

// Read reads data into the internal buffer and returns a piece of it back. Every read is
// bounded by the read timeout, but never lasts past the connection deadline.
func (c *client) Read() ([]byte, error) {
	deadline := timer.Now().Add(c.readTimeout)
	if deadline.After(c.deadline) {
		deadline = c.deadline
	}

	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}

	n, err := c.conn.Read(c.buff)
	return c.buff[:n], err
}

// Write writes data into the underlying connection. Writing fewer bytes than passed is
// an error.
func (c *client) Write(b []byte) (int, error) {
	if err := c.conn.SetWriteDeadline(timer.Now().Add(c.writeTimeout)); err != nil {
		return 0, err
	}

	n, err := c.conn.Write(b)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}

	return n, err
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}

// IsTimeout reports whether the error is caused by an exceeded I/O deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
