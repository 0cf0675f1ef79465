package piggybank

import (
	"fmt"
	"sort"
)

// Query modifiers, passed after a "?" in the query path.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries for one path. Handlers only ever see
// committed state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds a module's query handlers to a router.
type QueryRegister func(QueryRouter)

// QueryRouter maps query paths such as "/goals/progress" to their handlers.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler, 16)}
}

func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, q := range qr {
		q(r)
	}
}

// Register panics if path is already taken.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns nil for an unknown path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

// Paths lists every registered path in lexicographical order.
func (r QueryRouter) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
