package inbuilt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/frankiez/gpio-httpd/http"
	"github.com/frankiez/gpio-httpd/http/method"
	"github.com/frankiez/gpio-httpd/http/status"
	"github.com/frankiez/gpio-httpd/internal/pathlib"
	"github.com/frankiez/gpio-httpd/router"
)

var _ router.Router = new(Router)

// Handler builds a response for a routed request.
type Handler func(request *http.Request) *http.Response

const defaultIndex = "index.html"

// Router serves GET requests with files from the document root and dispatches POST
// requests to registered handlers by their exact path. Nothing is registered after the
// server started, so the router is safe for concurrent use without locking.
type Router struct {
	root  string
	index string
	posts map[string]Handler
}

// New returns a router serving files from the root directory. The root is made absolute and
// its symlinks are resolved, so containment is checked against the real location.
func New(root string) (*Router, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("document root: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("document root: %w", err)
	}

	stat, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("document root: %w", err)
	}

	if !stat.IsDir() {
		return nil, fmt.Errorf("document root: %s is not a directory", root)
	}

	return &Router{
		root:  resolved,
		index: defaultIndex,
		posts: make(map[string]Handler),
	}, nil
}

// Root returns the resolved document root.
func (r *Router) Root() string {
	return r.root
}

// Index sets the name of the file served for directories.
func (r *Router) Index(name string) *Router {
	r.index = name
	return r
}

// Post registers a handler for POST requests to the exact path. This is the place where
// endpoints controlling the device are plugged in.
func (r *Router) Post(path string, handler Handler) *Router {
	r.posts[path] = handler
	return r
}

func (r *Router) OnRequest(request *http.Request) *http.Response {
	switch request.Method {
	case method.GET:
		return r.serveFile(request)
	case method.POST:
		return r.servePost(request)
	default:
		return r.OnError(request, status.ErrMethodNotAllowed)
	}
}

// OnError renders the error as an HTML page. 405 additionally gets the Allow header.
func (r *Router) OnError(request *http.Request, err error) *http.Response {
	response := http.Error(request, err)
	if errors.Is(err, status.ErrMethodNotAllowed) {
		response.Header("Allow", method.Allowed)
	}

	return response
}

func (r *Router) servePost(request *http.Request) *http.Response {
	handler, found := r.posts[request.Path]
	if !found {
		return r.OnError(request, status.ErrNotFound)
	}

	return handler(request)
}

func (r *Router) serveFile(request *http.Request) *http.Response {
	path, err := r.resolve(request.Path)
	if err != nil {
		return r.OnError(request, err)
	}

	response, err := request.Respond().TryFile(path)
	if err != nil {
		return r.OnError(request, err)
	}

	return response
}

// resolve finds the file the request path points at. The path is resolved lexically under
// the root first; then, as any component might be a symlink leading elsewhere, the real
// location is checked to still be inside the root.
func (r *Router) resolve(uri string) (string, error) {
	path, err := pathlib.Resolve(r.root, uri)
	if err != nil {
		return "", err
	}

	if stat, err := os.Stat(path); err == nil && stat.IsDir() {
		path = filepath.Join(path, r.index)
	}

	real, err := filepath.EvalSymlinks(path)
	switch {
	case errors.Is(err, fs.ErrPermission):
		return "", status.ErrForbidden
	case err != nil:
		return "", status.ErrNotFound
	case !pathlib.Within(r.root, real):
		return "", status.ErrForbidden
	}

	return real, nil
}
