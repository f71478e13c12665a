package status

// HTTPError is an error that knows which response code it must result in.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	// ErrUnknown is reported when the peer resets or closes the connection, or the read
	// fails for any other reason, before the request head is complete.
	ErrUnknown                 = NewError(BadRequest, "the request could not be read")
	ErrBadRequest              = NewError(BadRequest, "the server could not understand the request")
	ErrURIDecoding             = NewError(BadRequest, "the request path contains an invalid escape sequence")
	ErrBadContentLength        = NewError(BadRequest, "invalid Content-Length value")
	ErrRequestTooLarge         = NewError(RequestEntityTooLarge, "the request exceeds the maximal allowed size")
	ErrRequestTimeout          = NewError(RequestTimeout, "the request was not received in time")
	ErrTooManyHeaders          = NewError(RequestHeaderFieldsTooLarge, "too many header fields")
	ErrNotFound                = NewError(NotFound, "the requested resource could not be found")
	ErrForbidden               = NewError(Forbidden, "you are not authorized to access this resource")
	ErrMethodNotAllowed        = NewError(MethodNotAllowed, "the request method is not supported")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "the protocol version is not supported")
	ErrInternalServerError     = NewError(InternalServerError, "internal server error")
)
