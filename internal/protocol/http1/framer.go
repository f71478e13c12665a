package http1

import (
	"bytes"
	"fmt"

	"github.com/frankiez/gpio-httpd/config"
	"github.com/frankiez/gpio-httpd/http/status"
	"github.com/frankiez/gpio-httpd/internal/buffer"
	"github.com/frankiez/gpio-httpd/transport"
)

var terminator = []byte("\r\n\r\n")

// Framer delimits a request out of the byte stream of a single connection. Everything read
// is accumulated in a buffer bounded by the maximal request size.
type Framer struct {
	client  transport.Client
	buff    buffer.Buffer
	maxSize int
	// scanned is how many bytes were already searched for the terminator.
	scanned int
	headEnd int
}

func NewFramer(client transport.Client, cfg *config.Config) *Framer {
	return &Framer{
		client:  client,
		buff:    buffer.New(cfg.NET.ReadBufferSize, cfg.Request.MaxSize),
		maxSize: cfg.Request.MaxSize,
	}
}

// Head reads until the first CRLFCRLF and returns everything up to and including it. Only
// the newly read bytes (plus the last three of the previous ones, as the terminator may be
// split between reads) are searched each time. A read crossing the size limit is cut at it,
// so the request is too large only if no terminator is found within the limit.
func (f *Framer) Head() ([]byte, error) {
	for {
		data, err := f.read()
		if err != nil {
			return nil, err
		}

		fits := min(len(data), f.buff.Free())
		_ = f.buff.Append(data[:fits])

		mem := f.buff.Bytes()
		from := max(f.scanned-len(terminator)+1, 0)
		f.scanned = len(mem)

		if idx := bytes.Index(mem[from:], terminator); idx != -1 {
			f.headEnd = from + idx + len(terminator)
			return mem[:f.headEnd], nil
		}

		if fits < len(data) || f.buff.Free() == 0 {
			return nil, status.ErrRequestTooLarge
		}
	}
}

// Body returns exactly length bytes following the head. Bytes which came together with the
// head are used first. The head and the body together must fit into the maximal request
// size; whatever comes after the body is discarded.
func (f *Framer) Body(length int) ([]byte, error) {
	if length < 0 || length > f.maxSize-f.headEnd {
		return nil, status.ErrRequestTooLarge
	}

	total := f.headEnd + length

	for f.buff.Len() < total {
		data, err := f.read()
		if err != nil {
			return nil, err
		}

		// fits for sure, as total is within the limit
		_ = f.buff.Append(data[:min(len(data), total-f.buff.Len())])
	}

	return f.buff.Bytes()[f.headEnd:total], nil
}

// Reset drops everything accumulated so far.
func (f *Framer) Reset() {
	f.buff.Clear()
	f.scanned = 0
	f.headEnd = 0
}

// read reads once from the client. Getting no data is always an error.
func (f *Framer) read() ([]byte, error) {
	data, err := f.client.Read()
	if len(data) > 0 {
		return data, nil
	}

	switch {
	case transport.IsTimeout(err):
		return nil, status.ErrRequestTimeout
	case err != nil:
		return nil, fmt.Errorf("%w: %w", status.ErrUnknown, err)
	default:
		return nil, status.ErrUnknown
	}
}
