package http

import (
	"errors"
	"html"
	"io/fs"
	"os"
	"strings"

	"github.com/frankiez/gpio-httpd/http/mime"
	"github.com/frankiez/gpio-httpd/http/status"
	"github.com/frankiez/gpio-httpd/internal/response"
	"github.com/frankiez/gpio-httpd/internal/timer"
	"github.com/frankiez/gpio-httpd/kv"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

const preallocRespHeaders = 4

// Response is a builder of the response. Body setters are mutually exclusive: setting an
// inline body drops the file and vice versa, so the response always has exactly one body
// representation with the length matching it.
type Response struct {
	fields *response.Fields
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK,
// text/html content type and the date set to now.
func NewResponse() *Response {
	return &Response{
		&response.Fields{
			Code:        status.OK,
			ContentType: response.DefaultContentType,
			Headers:     make([]kv.Pair, 0, preallocRespHeaders),
			Date:        timer.Now(),
		},
	}
}

// Code sets the response code. The status text is then taken from the status table,
// unless set explicitly via Status.
func (r *Response) Code(code status.Code) *Response {
	r.fields.Code = code
	return r
}

// Status sets a custom status text.
func (r *Response) Status(status status.Status) *Response {
	r.fields.Status = status
	return r
}

// ContentType sets a custom Content-Type header value.
func (r *Response) ContentType(value mime.MIME) *Response {
	r.fields.ContentType = value
	return r
}

// Header adds header values. Date, Server and Content-Length are owned by the serializer
// and therefore silently ignored, and Content-Type is the same as calling ContentType.
func (r *Response) Header(key string, values ...string) *Response {
	switch {
	case len(values) == 0:
		return r
	case strcomp.EqualFold(key, "content-type"):
		return r.ContentType(values[0])
	case strcomp.EqualFold(key, "content-length"),
		strcomp.EqualFold(key, "date"),
		strcomp.EqualFold(key, "server"):
		return r
	}

	for _, value := range values {
		r.fields.Headers = append(r.fields.Headers, kv.Pair{Key: key, Value: value})
	}

	return r
}

// String sets the response's body to the passed string.
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself.
func (r *Response) Bytes(body []byte) *Response {
	r.fields.Filename = ""
	r.fields.Body = body
	r.fields.Size = int64(len(body))
	return r
}

// Write implements io.Writer interface, appending to the inline body. It always returns
// n=len(b) and err=nil.
func (r *Response) Write(b []byte) (n int, err error) {
	r.Bytes(append(r.fields.Body, b...))
	return len(b), nil
}

// File sets the file to be streamed as the body. The size must be the exact file size, as
// it's declared in Content-Length and exactly that many bytes are streamed.
func (r *Response) File(path string, size int64) *Response {
	r.fields.Body = nil
	r.fields.Filename = path
	r.fields.Size = size
	return r
}

// TryFile checks the file and sets it as the body with the content type matching its
// extension. The file isn't opened until it's streamed.
func (r *Response) TryFile(path string) (*Response, error) {
	stat, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return r, status.ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return r, status.ErrForbidden
	case err != nil:
		return r, status.ErrInternalServerError
	case stat.IsDir():
		return r, status.ErrNotFound
	case !stat.Mode().IsRegular():
		// devices, sockets and named pipes have no meaningful size to declare
		return r, status.ErrForbidden
	}

	return r.
		ContentType(mime.ByPath(path)).
		File(path, stat.Size()), nil
}

// TryJSON serializes the model as the body and returns an error if it failed.
func (r *Response) TryJSON(model any) (*Response, error) {
	// the previous body might be a string converted without copying, so it must not be reused
	r.Bytes(nil)
	stream := json.ConfigDefault.BorrowStream(r)
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return r.ContentType(mime.JSON), err
}

// JSON does the same as TryJSON does, except returned error is being implicitly wrapped
// by Error.
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error turns the response into an error page. Instances of status.HTTPError (even wrapped
// ones) determine the code, everything else is an Internal Server Error. Nil error changes
// nothing.
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	var httpErr status.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = status.ErrInternalServerError.(status.HTTPError)
	}

	return r.
		Code(httpErr.Code).
		ContentType(mime.HTML).
		String(errorPage(httpErr))
}

// Expose returns the fields filled by the builder.
func (r *Response) Expose() *response.Fields {
	return r.fields
}

func errorPage(err status.HTTPError) string {
	message := err.Message
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:] + "."
	}

	return "<h1>" + string(status.FromCode(err.Code)) + "</h1><p>" + html.EscapeString(message) + "</p>"
}

// Respond is a predicate to request.Respond(). May be used as a dummy handler.
func Respond(request *Request) *Response {
	return request.Respond()
}

// Error is a predicate to request.Respond().Error(...).
func Error(request *Request, err error) *Response {
	return request.Respond().Error(err)
}

// File is a predicate to request.Respond().TryFile(...), turning its error into an error page.
func File(request *Request, path string) *Response {
	resp, err := request.Respond().TryFile(path)
	if err != nil {
		return resp.Error(err)
	}

	return resp
}

// JSON is a predicate to request.Respond().JSON(...).
func JSON(request *Request, model any) *Response {
	return request.Respond().JSON(model)
}
