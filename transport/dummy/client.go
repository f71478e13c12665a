package dummy

import (
	"io"
	"net"

	"github.com/frankiez/gpio-httpd/transport"
)

var _ transport.Client = new(Client)

// Client is an in-memory client. Reads return the chunks it was initialised with one by one
// and then the final error (io.EOF by default). Everything written is recorded.
type Client struct {
	chunks     [][]byte
	pointer    int
	err        error
	writeLimit int
	// Written accumulates all the data written into the client.
	Written []byte
	// Writes counts the calls to Write.
	Writes int
	// Closes counts the calls to Close.
	Closes int
}

func NewClient(chunks ...[]byte) *Client {
	return &Client{
		chunks:     chunks,
		err:        io.EOF,
		writeLimit: -1,
	}
}

// FailWith sets the error returned by reads after the chunks are exhausted.
func (c *Client) FailWith(err error) *Client {
	c.err = err
	return c
}

// LimitWrites makes the client accept at most n bytes in total. A write crossing the limit
// is cut short and returns io.ErrShortWrite.
func (c *Client) LimitWrites(n int) *Client {
	c.writeLimit = n
	return c
}

func (c *Client) Read() ([]byte, error) {
	if c.Closes > 0 {
		return nil, net.ErrClosed
	}

	if c.pointer >= len(c.chunks) {
		return nil, c.err
	}

	chunk := c.chunks[c.pointer]
	c.pointer++

	return chunk, nil
}

func (c *Client) Write(p []byte) (int, error) {
	c.Writes++

	if c.writeLimit >= 0 && len(c.Written)+len(p) > c.writeLimit {
		n := max(c.writeLimit-len(c.Written), 0)
		c.Written = append(c.Written, p[:n]...)
		return n, io.ErrShortWrite
	}

	c.Written = append(c.Written, p...)
	return len(p), nil
}

func (*Client) Remote() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 40400}
}

func (c *Client) Close() error {
	c.Closes++
	return nil
}
