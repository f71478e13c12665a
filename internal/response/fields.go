package response

import (
	"time"

	"github.com/frankiez/gpio-httpd/http/mime"
	"github.com/frankiez/gpio-httpd/http/status"
	"github.com/frankiez/gpio-httpd/kv"
)

const DefaultContentType = mime.HTML

// Fields is everything the serializer needs to know about a response. At most one of
// Body and Filename is populated, and Size is always the exact length of that one.
type Fields struct {
	Code        status.Code
	Status      status.Status
	ContentType string
	Headers     []kv.Pair
	// Body is an inline body, written together with the head block.
	Body []byte
	// Filename is a file to be streamed after the head block.
	Filename string
	// Size is the length of either Body or the file, declared as Content-Length.
	Size int64
	Date time.Time
}

// Streamed reports whether the body must be streamed from a file.
func (f *Fields) Streamed() bool {
	return len(f.Filename) > 0
}
