package uridecode

import (
	"bytes"

	"github.com/frankiez/gpio-httpd/http/status"
	"github.com/frankiez/gpio-httpd/internal/hexconv"
)

// Decode normalizes the URI by translating escaped characters into their
// true form. If src contains no escapes, it's returned as is. Decoded bytes
// are appended to buff otherwise.
func Decode(src, buff []byte) ([]byte, error) {
	if bytes.IndexByte(src, '%') == -1 {
		return src, nil
	}

	for i := bytes.IndexByte(src, '%'); i != -1; i = bytes.IndexByte(src, '%') {
		if i >= len(src)-2 {
			return nil, status.ErrURIDecoding
		}

		char, ok := hexconv.Byte(src[i+1], src[i+2])
		if !ok {
			return nil, status.ErrURIDecoding
		}

		buff = append(buff, src[:i]...)
		buff = append(buff, char)
		src = src[i+3:]
	}

	return append(buff, src...), nil
}
