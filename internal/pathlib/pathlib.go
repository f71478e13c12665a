package pathlib

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/frankiez/gpio-httpd/http/status"
)

// Resolve maps an already decoded request path onto the filesystem under the root. The
// path is cleaned as if it were rooted at "/", so dot-dot segments can never climb above
// the root; the result is then checked once more to be a descendant of the root.
//
// The root must be absolute and clean.
func Resolve(root, uri string) (string, error) {
	if strings.IndexByte(uri, 0) != -1 {
		return "", status.ErrBadRequest
	}

	cleaned := path.Clean("/" + uri)
	full := filepath.Join(root, filepath.FromSlash(cleaned))
	if !Within(root, full) {
		return "", status.ErrForbidden
	}

	return full, nil
}

// Within reports whether target is the root itself or lies somewhere below it. Both
// paths must be absolute.
func Within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
