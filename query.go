package custody

import (
	"github.com/iov-one/custody/errors"
)

const (
	// KeyQueryMod means the data is the exact key to look up.
	KeyQueryMod = ""
	// PrefixQueryMod means the data is a prefix and all matching entries
	// are returned.
	PrefixQueryMod = "prefix"
)

// QueryHandler is anything that can process ABCI queries
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister is a function that adds some handlers to this router
type QueryRegister func(QueryRouter)

// QueryRouter allows us to register many query handlers to different paths
// and then direct each query to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter initializes a QueryRouter with no routes
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 10),
	}
}

// RegisterAll registers a number of QueryRegister at once
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, q := range qr {
		q(r)
	}
}

// Register adds a new Handler for the given path. It panics if another
// Handler was already registered.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic("re-registering query route: " + path)
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path, or nil if none was
// registered.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

// Query dispatches the query to the handler registered for path.
func (r QueryRouter) Query(db ReadOnlyKVStore, path, mod string, data []byte) ([]Model, error) {
	h := r.Handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for %q", path)
	}
	return h.Query(db, mod, data)
}
