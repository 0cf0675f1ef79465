package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

// isPath is the regexp a message path must match.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router dispatches a transaction to the handler registered for the path of
// its message.
type Router struct {
	routes map[string]piggybank.Handler
}

var _ piggybank.Registry = (*Router)(nil)
var _ piggybank.Handler = (*Router)(nil)

// NewRouter returns a new empty router.
func NewRouter() *Router {
	return &Router{routes: make(map[string]piggybank.Handler)}
}

// Handle registers a handler for the path of given message. It panics if
// the path is invalid or already registered.
func (r *Router) Handle(m piggybank.Msg, h piggybank.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for given path. For an unknown
// path a handler that always fails with ErrNotFound is returned.
func (r *Router) Handler(path string) piggybank.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

func (r *Router) Check(ctx piggybank.Context, store piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return r.Handler(msg.Path()).Check(ctx, store, tx)
}

func (r *Router) Deliver(ctx piggybank.Context, store piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return r.Handler(msg.Path()).Deliver(ctx, store, tx)
}

type notFoundHandler string

func (path notFoundHandler) Check(piggybank.Context, piggybank.KVStore, piggybank.Tx) (*piggybank.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(piggybank.Context, piggybank.KVStore, piggybank.Tx) (*piggybank.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
