package common

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Request is a command or query value, keyed by its dynamic type
type Request interface{}

// Response is whatever a handler returns for its request
type Response interface{}

// RequestHandler handles one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc is the function form of a RequestHandler
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware wraps every dispatch; call next to continue the chain
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// Mediator routes requests to the handler registered for their type
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
	Use(middleware Middleware)
}

type mediator struct {
	mu          sync.RWMutex
	handlers    map[reflect.Type]RequestHandler
	middlewares []Middleware
}

// NewMediator returns an empty mediator
func NewMediator() Mediator {
	return &mediator{handlers: make(map[reflect.Type]RequestHandler)}
}

func (m *mediator) Register(requestType reflect.Type, handler RequestHandler) error {
	switch {
	case requestType == nil:
		return fmt.Errorf("request type cannot be nil")
	case handler == nil:
		return fmt.Errorf("handler for %s cannot be nil", requestType)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.handlers[requestType]; taken {
		return fmt.Errorf("handler already registered for type %s", requestType)
	}
	m.handlers[requestType] = handler
	return nil
}

// Use appends a middleware; the first one added runs outermost
func (m *mediator) Use(middleware Middleware) {
	if middleware == nil {
		return
	}
	m.mu.Lock()
	m.middlewares = append(m.middlewares, middleware)
	m.mu.Unlock()
}

func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	m.mu.RLock()
	handler, ok := m.handlers[reflect.TypeOf(request)]
	chain := m.middlewares
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no handler registered for type %T", request)
	}

	call := HandlerFunc(handler.Handle)
	for i := len(chain) - 1; i >= 0; i-- {
		call = wrap(chain[i], call)
	}
	return call(ctx, request)
}

func wrap(mw Middleware, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, request Request) (Response, error) {
		return mw(ctx, request, next)
	}
}

// RegisterHandler registers handler for the request type T
func RegisterHandler[T Request](m Mediator, handler RequestHandler) error {
	return m.Register(reflect.TypeOf((*T)(nil)).Elem(), handler)
}

// Dispatch sends request and asserts the response type, so callers need no
// type switch of their own
func Dispatch[R Response](ctx context.Context, m Mediator, request Request) (R, error) {
	var zero R
	resp, err := m.Send(ctx, request)
	if err != nil {
		return zero, err
	}
	typed, ok := resp.(R)
	if !ok {
		return zero, fmt.Errorf("%T returned %T, want %T", request, resp, zero)
	}
	return typed, nil
}
