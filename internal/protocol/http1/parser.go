package http1

import (
	"strconv"
	"strings"

	"github.com/frankiez/gpio-httpd/config"
	"github.com/frankiez/gpio-httpd/http"
	"github.com/frankiez/gpio-httpd/http/method"
	"github.com/frankiez/gpio-httpd/http/status"
	"github.com/frankiez/gpio-httpd/internal/uridecode"
	"github.com/indigo-web/utils/uf"
)

// Parser turns a framed request head into a Request. It holds no state between calls, so
// parsing the same bytes always gives the same result.
//
// Returned requests reference the passed data without copying it, so the data must stay
// intact as long as the request is in use.
type Parser struct {
	maxHeaders int
}

func NewParser(cfg config.Request) *Parser {
	return &Parser{
		maxHeaders: cfg.MaxHeaders,
	}
}

// Parse parses the head. The returned request is never nil: on error it holds whatever was
// parsed before the error was met, which is enough to answer it properly.
func (p *Parser) Parse(data []byte) (*http.Request, error) {
	request := http.NewRequest()
	requestLine, rest := cutLine(uf.B2S(data))

	if err := p.parseRequestLine(request, requestLine); err != nil {
		return request, err
	}

	if request.Method == method.Unknown {
		return request, status.ErrMethodNotAllowed
	}

	for len(rest) > 0 {
		var line string
		if line, rest = cutLine(rest); len(line) == 0 {
			break
		}

		key, value, found := strings.Cut(line, ":")
		// no whitespace is allowed between the field name and the colon (RFC 9112, 5.1)
		if !found || len(key) == 0 || strings.ContainsAny(key, " \t") {
			return request, status.ErrBadRequest
		}

		if request.Headers.Len() >= p.maxHeaders {
			return request, status.ErrTooManyHeaders
		}

		request.Headers.Add(key, strings.Trim(value, " \t"))
	}

	length, err := contentLength(request.Headers)
	request.ContentLength = length

	return request, err
}

func (p *Parser) parseRequestLine(request *http.Request, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) > 0 {
		request.Token = tokens[0]
		request.Method = method.Parse(tokens[0])
	}

	if len(tokens) != 3 {
		return status.ErrBadRequest
	}

	path, query, _ := strings.Cut(tokens[1], "?")
	request.Query = query
	if len(path) == 0 || path[0] != '/' {
		return status.ErrBadRequest
	}

	decoded, err := uridecode.Decode(uf.S2B(path), nil)
	if err != nil {
		return err
	}

	if strings.IndexByte(uf.B2S(decoded), 0) != -1 {
		return status.ErrBadRequest
	}

	request.Path = uf.B2S(decoded)
	request.Protocol = tokens[2]

	switch request.Protocol {
	case "HTTP/1.1", "HTTP/1.0":
		return nil
	default:
		if strings.HasPrefix(request.Protocol, "HTTP/") {
			return status.ErrHTTPVersionNotSupported
		}

		return status.ErrBadRequest
	}
}

// contentLength returns the declared body length. Repeated headers are fine as long as
// they all agree (RFC 9110, 8.6).
func contentLength(headers http.Headers) (length int, err error) {
	declared := false

	for value := range headers.Values("Content-Length") {
		if len(value) == 0 || value[0] < '0' || value[0] > '9' {
			return 0, status.ErrBadContentLength
		}

		n, err := strconv.Atoi(value)
		if err != nil || (declared && n != length) {
			return 0, status.ErrBadContentLength
		}

		length, declared = n, true
	}

	return length, nil
}

// cutLine returns the line before the first LF, without the trailing CR, and the rest.
func cutLine(data string) (line, rest string) {
	line, rest, _ = strings.Cut(data, "\n")
	return strings.TrimSuffix(line, "\r"), rest
}
