package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each instruction to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]synto.Handler
}

var _ synto.Registry = (*Router)(nil)
var _ synto.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]synto.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h synto.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the handler registered for given path. Unknown paths get
// a handler that always fails.
func (r *Router) handler(path string) synto.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx synto.Context, store synto.KVStore, tx synto.Tx) (*synto.CheckResult, error) {
	return r.handler(synto.GetPath(tx)).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx synto.Context, store synto.KVStore, tx synto.Tx) (*synto.DeliverResult, error) {
	return r.handler(synto.GetPath(tx)).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments.
type notFoundHandler string

func (path notFoundHandler) Check(synto.Context, synto.KVStore, synto.Tx) (*synto.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", string(path))
}

func (path notFoundHandler) Deliver(synto.Context, synto.KVStore, synto.Tx) (*synto.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", string(path))
}
