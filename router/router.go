package router

import (
	"github.com/frankiez/gpio-httpd/http"
)

// Router builds a response for every request. OnError is called instead of OnRequest if the
// request couldn't be received or parsed; the request then holds whatever was parsed so far.
type Router interface {
	OnRequest(request *http.Request) *http.Response
	OnError(request *http.Request, err error) *http.Response
}
