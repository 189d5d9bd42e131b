package router

import (
	"errors"
	"sync/atomic"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/method"
	"github.com/indigo-web/minihttp/http/status"
)

var (
	ErrUnknownMethod = errors.New("cannot register a handler for an unknown method")
	ErrSealed        = errors.New("registry is sealed, handlers can no longer be changed")
)

// methodsMap has a slot for every known method, so a lookup never misses. An empty slot means
// the method has no handler bound.
type methodsMap [method.Count + 1]http.Handler

// Registry binds handlers to request methods. It must be fully populated before serving starts,
// after that it is sealed and read concurrently by all the connections.
type Registry struct {
	handlers methodsMap
	sealed   atomic.Bool
}

func New() *Registry {
	return new(Registry)
}

// Register binds the handler to the method, replacing the previous one. Passing nil handler
// unbinds the method.
func (r *Registry) Register(m method.Method, handler http.Handler) error {
	if !m.IsValid() {
		return ErrUnknownMethod
	}

	if r.sealed.Load() {
		return ErrSealed
	}

	r.handlers[m] = handler
	return nil
}

// Seal forbids any further changes.
func (r *Registry) Seal() {
	r.sealed.Store(true)
}

// Lookup returns the handler bound to the method, if any.
func (r *Registry) Lookup(m method.Method) (handler http.Handler, ok bool) {
	if !m.IsValid() {
		return nil, false
	}

	handler = r.handlers[m]
	return handler, handler != nil
}

// Bound lists methods having a handler, in the order of method.List.
func (r *Registry) Bound() []method.Method {
	var bound []method.Method

	for _, m := range method.List {
		if r.handlers[m] != nil {
			bound = append(bound, m)
		}
	}

	return bound
}

// Dispatch passes the request to the handler bound to its method and returns its response
// verbatim. Methods without a handler get an empty 501 Unimplemented response, and methods
// unknown to the registry get 400 Invalid Request Method.
func (r *Registry) Dispatch(request *http.Request) *http.Response {
	if !request.Method.IsValid() {
		return http.Code(status.BadRequest).Reason(invalidMethodReason)
	}

	handler := r.handlers[request.Method]
	if handler == nil {
		return http.Code(status.NotImplemented)
	}

	return handler.Handle(request)
}

const invalidMethodReason = "Invalid Request Method"
