package http1

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/frankiez/gpio-httpd/config"
	"github.com/frankiez/gpio-httpd/http"
	"github.com/frankiez/gpio-httpd/http/status"
	"github.com/frankiez/gpio-httpd/internal/response"
	"github.com/frankiez/gpio-httpd/internal/timer"
	"github.com/frankiez/gpio-httpd/kv"
	"github.com/frankiez/gpio-httpd/transport"
	"github.com/indigo-web/utils/strcomp"
)

const (
	crlf = "\r\n"
	// httpDate is the IMF-fixdate layout (RFC 9110, 5.6.7).
	httpDate = "Mon, 02 Jan 2006 15:04:05 GMT"
)

type serializer struct {
	cfg            *config.Config
	client         transport.Client
	buff           []byte
	streamBuff     []byte
	defaultHeaders []kv.Pair
}

func newSerializer(cfg *config.Config, client transport.Client) *serializer {
	return &serializer{
		cfg:            cfg,
		client:         client,
		buff:           make([]byte, 0, 512),
		defaultHeaders: sortedHeaders(cfg.Headers.Default),
	}
}

// Write serializes the response into the client. An inline body goes out together with the
// head block in a single write. A file is opened before anything is written, and if that
// fails, 403 Forbidden is sent instead; otherwise the head is written first and the file
// streamed after it in chunks, exactly Size bytes.
//
// Returned are the code actually sent and the number of bytes written.
func (s *serializer) Write(resp *http.Response) (code status.Code, written int64, err error) {
	fields := resp.Expose()

	if !fields.Streamed() || fields.Size == 0 {
		s.appendHead(fields)
		s.buff = append(s.buff, fields.Body...)
		written, err = s.flush()

		return fields.Code, written, err
	}

	file, err := os.Open(fields.Filename)
	if err != nil {
		return s.Write(http.NewResponse().Error(status.ErrForbidden))
	}

	defer func() {
		_ = file.Close()
	}()

	s.appendHead(fields)
	if written, err = s.flush(); err != nil {
		return fields.Code, written, err
	}

	streamed, err := s.stream(file, fields.Size)
	if err != nil {
		err = fmt.Errorf("streaming %s: %w", fields.Filename, err)
	}

	return fields.Code, written + streamed, err
}

// stream copies exactly size bytes of the file into the client. The last chunk is cut to the
// remaining length, so nothing past the declared Content-Length is ever read or written. Any
// failed or short write aborts the stream.
func (s *serializer) stream(file io.Reader, size int64) (total int64, err error) {
	if s.streamBuff == nil {
		s.streamBuff = make([]byte, s.cfg.NET.StreamChunkSize)
	}

	for total < size {
		chunk := s.streamBuff[:min(int64(len(s.streamBuff)), size-total)]
		if _, err = io.ReadFull(file, chunk); err != nil {
			// the file was truncated since its size was taken
			return total, err
		}

		n, err := s.client.Write(chunk)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

func (s *serializer) appendHead(fields *response.Fields) {
	s.buff = append(s.buff, "HTTP/1.1 "...)
	s.buff = strconv.AppendUint(s.buff, uint64(fields.Code), 10)
	s.buff = append(s.buff, ' ')

	statusText := fields.Status
	if len(statusText) == 0 {
		statusText = status.FromCode(fields.Code)
	}

	s.buff = append(s.buff, statusText...)
	s.crlf()

	date := fields.Date
	if date.IsZero() {
		date = timer.Now()
	}

	s.buff = append(s.buff, "Date: "...)
	s.buff = date.UTC().AppendFormat(s.buff, httpDate)
	s.crlf()
	s.appendHeader("Server", s.cfg.Server.Name)
	s.appendHeader("Content-Type", fields.ContentType)

	if fields.Size > 0 {
		s.buff = append(s.buff, "Content-Length: "...)
		s.buff = strconv.AppendInt(s.buff, fields.Size, 10)
		s.crlf()
	}

	for _, header := range fields.Headers {
		s.appendHeader(header.Key, header.Value)
	}

	for _, header := range s.defaultHeaders {
		if !overridden(fields.Headers, header.Key) {
			s.appendHeader(header.Key, header.Value)
		}
	}

	s.crlf()
}

func (s *serializer) appendHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, ':', ' ')
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}

func (s *serializer) flush() (int64, error) {
	n, err := s.client.Write(s.buff)
	s.buff = s.buff[:0]

	return int64(n), err
}

func overridden(headers []kv.Pair, key string) bool {
	for _, header := range headers {
		if strcomp.EqualFold(header.Key, key) {
			return true
		}
	}

	return false
}

// sortedHeaders flattens the default headers in a stable order, so responses are
// reproducible byte by byte. Headers the serializer writes on its own are dropped.
func sortedHeaders(headers map[string]string) []kv.Pair {
	pairs := make([]kv.Pair, 0, len(headers))
	for key, value := range headers {
		if !managed(key) {
			pairs = append(pairs, kv.Pair{Key: key, Value: value})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Key < pairs[j].Key
	})

	return pairs
}

func managed(key string) bool {
	for _, name := range []string{"Date", "Server", "Content-Type", "Content-Length"} {
		if strcomp.EqualFold(key, name) {
			return true
		}
	}

	return false
}
