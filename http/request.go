package http

import (
	"net"

	"github.com/frankiez/gpio-httpd/http/method"
	"github.com/frankiez/gpio-httpd/kv"
)

type (
	Headers = *kv.Storage
	Header  = kv.Pair
)

const preallocHeaders = 8

// Request is a parsed request. Once the parser returned it, nothing modifies it except
// the connection handler attaching the framed body.
type Request struct {
	// Method is an enum representing the request method. Methods the server doesn't route
	// are Unknown.
	Method method.Method
	// Token is the method exactly as it appeared in the request line.
	Token string
	// Path is the percent-decoded path, always starting with a slash.
	Path string
	// Query is the raw query string following the first question mark, without it.
	Query string
	// Protocol is the protocol version token, e.g. HTTP/1.1.
	Protocol string
	// Headers holds non-normalized header pairs, even though lookup is case-insensitive.
	Headers Headers
	// ContentLength is the declared body length, 0 if the header is absent.
	ContentLength int
	// Body is the request body, framed by its Content-Length.
	Body []byte
	// Remote holds the remote address.
	Remote net.Addr
}

func NewRequest() *Request {
	return &Request{
		Method:  method.Unknown,
		Headers: kv.NewPrealloc(preallocHeaders),
	}
}

// Respond returns a new response builder.
func (r *Request) Respond() *Response {
	return NewResponse()
}
