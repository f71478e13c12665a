package http1

import (
	"bytes"
	"io"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/frankiez/gpio-httpd/config"
	"github.com/frankiez/gpio-httpd/http/status"
	"github.com/frankiez/gpio-httpd/transport/dummy"
	"github.com/stretchr/testify/require"
)

func split(data string, size int) [][]byte {
	var chunks [][]byte
	for len(data) > 0 {
		n := min(size, len(data))
		chunks = append(chunks, []byte(data[:n]))
		data = data[n:]
	}

	return chunks
}

func TestFramer_Head(t *testing.T) {
	const head = "GET /index.html HTTP/1.1\r\nHost: localhost\r\n\r\n"

	t.Run("single read", func(t *testing.T) {
		framer := NewFramer(dummy.NewClient([]byte(head)), config.Default())
		data, err := framer.Head()
		require.NoError(t, err)
		require.Equal(t, head, string(data))
	})

	t.Run("byte by byte", func(t *testing.T) {
		framer := NewFramer(dummy.NewClient(split(head, 1)...), config.Default())
		data, err := framer.Head()
		require.NoError(t, err)
		require.Equal(t, head, string(data))
	})

	t.Run("terminator split between every position", func(t *testing.T) {
		for i := len(head) - 4; i < len(head); i++ {
			client := dummy.NewClient([]byte(head[:i]), []byte(head[i:]))
			data, err := NewFramer(client, config.Default()).Head()
			require.NoError(t, err)
			require.Equal(t, head, string(data))
		}
	})

	t.Run("first terminator wins", func(t *testing.T) {
		framer := NewFramer(dummy.NewClient([]byte(head+"trailing\r\n\r\n")), config.Default())
		data, err := framer.Head()
		require.NoError(t, err)
		require.Equal(t, head, string(data))
	})

	t.Run("exactly max size", func(t *testing.T) {
		cfg := config.Default()
		request := "GET /" + string(bytes.Repeat([]byte("a"), cfg.Request.MaxSize-len("GET / HTTP/1.1\r\n\r\n"))) +
			" HTTP/1.1\r\n\r\n"
		require.Len(t, request, cfg.Request.MaxSize)

		data, err := NewFramer(dummy.NewClient(split(request, 64*1024)...), cfg).Head()
		require.NoError(t, err)
		require.Len(t, data, cfg.Request.MaxSize)
	})

	t.Run("too large", func(t *testing.T) {
		cfg := config.Default()
		data := bytes.Repeat([]byte("a"), cfg.Request.MaxSize+1)
		_, err := NewFramer(dummy.NewClient(data), cfg).Head()
		require.ErrorIs(t, err, status.ErrRequestTooLarge)
	})

	t.Run("too large in pieces", func(t *testing.T) {
		cfg := config.Default()
		cfg.Request.MaxSize = 64
		client := dummy.NewClient(split(string(bytes.Repeat([]byte("a"), 65)), 10)...)
		_, err := NewFramer(client, cfg).Head()
		require.ErrorIs(t, err, status.ErrRequestTooLarge)
	})

	t.Run("read crossing the limit", func(t *testing.T) {
		cfg := config.Default()
		cfg.Request.MaxSize = len(head) + 8
		client := dummy.NewClient([]byte(head + strings.Repeat("a", 100)))
		data, err := NewFramer(client, cfg).Head()
		require.NoError(t, err)
		require.Equal(t, head, string(data))
	})

	t.Run("terminator right at the limit", func(t *testing.T) {
		cfg := config.Default()
		cfg.Request.MaxSize = len(head)
		client := dummy.NewClient(split(head+"trailing", 7)...)
		data, err := NewFramer(client, cfg).Head()
		require.NoError(t, err)
		require.Equal(t, head, string(data))
	})

	t.Run("closed before terminator", func(t *testing.T) {
		client := dummy.NewClient([]byte("GET / HTTP/1.1\r\n"))
		_, err := NewFramer(client, config.Default()).Head()
		require.ErrorIs(t, err, status.ErrUnknown)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("timeout", func(t *testing.T) {
		client := dummy.NewClient([]byte("GET / HT")).FailWith(os.ErrDeadlineExceeded)
		_, err := NewFramer(client, config.Default()).Head()
		require.ErrorIs(t, err, status.ErrRequestTimeout)
	})

	t.Run("empty read without error", func(t *testing.T) {
		client := dummy.NewClient([]byte{}).FailWith(nil)
		_, err := NewFramer(client, config.Default()).Head()
		require.ErrorIs(t, err, status.ErrUnknown)
	})

	t.Run("reset", func(t *testing.T) {
		framer := NewFramer(dummy.NewClient([]byte(head), []byte(head)), config.Default())
		_, err := framer.Head()
		require.NoError(t, err)
		framer.Reset()
		data, err := framer.Head()
		require.NoError(t, err)
		require.Equal(t, head, string(data))
	})
}

func TestFramer_Body(t *testing.T) {
	const head = "POST /gpio HTTP/1.1\r\nContent-Length: 11\r\n\r\n"

	t.Run("together with head", func(t *testing.T) {
		framer := NewFramer(dummy.NewClient([]byte(head+"hello world")), config.Default())
		_, err := framer.Head()
		require.NoError(t, err)
		body, err := framer.Body(11)
		require.NoError(t, err)
		require.Equal(t, "hello world", string(body))
	})

	t.Run("in pieces", func(t *testing.T) {
		framer := NewFramer(dummy.NewClient(split(head+"hello world", 3)...), config.Default())
		_, err := framer.Head()
		require.NoError(t, err)
		body, err := framer.Body(11)
		require.NoError(t, err)
		require.Equal(t, "hello world", string(body))
	})

	t.Run("extra bytes are discarded", func(t *testing.T) {
		framer := NewFramer(dummy.NewClient([]byte(head+"hello"), []byte(" worldGET / HTTP/1.1")), config.Default())
		_, err := framer.Head()
		require.NoError(t, err)
		body, err := framer.Body(11)
		require.NoError(t, err)
		require.Equal(t, "hello world", string(body))
	})

	t.Run("incomplete", func(t *testing.T) {
		framer := NewFramer(dummy.NewClient([]byte(head+"hello")), config.Default())
		_, err := framer.Head()
		require.NoError(t, err)
		_, err = framer.Body(11)
		require.ErrorIs(t, err, status.ErrUnknown)
	})

	t.Run("too large", func(t *testing.T) {
		cfg := config.Default()
		framer := NewFramer(dummy.NewClient([]byte(head)), cfg)
		_, err := framer.Head()
		require.NoError(t, err)
		_, err = framer.Body(cfg.Request.MaxSize - len(head) + 1)
		require.ErrorIs(t, err, status.ErrRequestTooLarge)
	})

	t.Run("length overflowing the limit arithmetic", func(t *testing.T) {
		framer := NewFramer(dummy.NewClient([]byte(head+"hello world")), config.Default())
		_, err := framer.Head()
		require.NoError(t, err)
		_, err = framer.Body(math.MaxInt)
		require.ErrorIs(t, err, status.ErrRequestTooLarge)
	})

	t.Run("negative length", func(t *testing.T) {
		framer := NewFramer(dummy.NewClient([]byte(head)), config.Default())
		_, err := framer.Head()
		require.NoError(t, err)
		_, err = framer.Body(-1)
		require.ErrorIs(t, err, status.ErrRequestTooLarge)
	})
}
