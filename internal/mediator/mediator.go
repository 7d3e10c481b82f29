// Package mediator dispatches typed requests to their handlers through a chain
// of behaviors that run around every handler invocation.
package mediator

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Next invokes the rest of the chain for a request.
type Next func(ctx context.Context, req any) (any, error)

// Behavior wraps every handler invocation. A behavior either calls next at most
// once or returns without calling it.
type Behavior func(ctx context.Context, req any, next Next) (any, error)

// Mediator routes requests to handlers keyed by the request's runtime type.
type Mediator struct {
	handlers  map[reflect.Type]Next
	behaviors []Behavior
	log       *zap.Logger
	mu        sync.RWMutex
}

// New creates a Mediator. Behaviors run in the order given, the first one outermost.
func New(log *zap.Logger, behaviors ...Behavior) *Mediator {
	return &Mediator{
		handlers:  make(map[reflect.Type]Next),
		behaviors: behaviors,
		log:       log,
	}
}

// TypeName returns the key a request is dispatched under.
func TypeName(req any) string {
	t := reflect.TypeOf(req)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Register binds the handler h to requests of type Req. Registering a second handler for
// the same type is an error.
func Register[Req any, Res any](m *Mediator, h func(context.Context, Req) (Res, error)) error {
	key := reflect.TypeFor[Req]()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.handlers[key]; exists {
		return fmt.Errorf("handler already registered for request type: %s", key)
	}

	m.handlers[key] = func(ctx context.Context, req any) (any, error) {
		typed, ok := req.(Req)
		if !ok {
			return nil, fmt.Errorf("request %T does not match handler for %s", req, key)
		}
		return h(ctx, typed)
	}
	m.log.Debug("registered request handler", zap.String("request", key.String()))
	return nil
}

// MustRegister is Register that panics on error. It is meant for wiring at startup.
func MustRegister[Req any, Res any](m *Mediator, h func(context.Context, Req) (Res, error)) {
	if err := Register(m, h); err != nil {
		panic(err)
	}
}

// Send dispatches req through the behavior chain to its handler.
func Send[Req any, Res any](ctx context.Context, m *Mediator, req Req) (Res, error) {
	var zero Res

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	m.mu.RLock()
	handler, exists := m.handlers[reflect.TypeOf(req)]
	m.mu.RUnlock()
	if !exists {
		return zero, fmt.Errorf("no handler registered for request type: %T", req)
	}

	out, err := m.chain(handler)(ctx, req)
	if err != nil {
		return zero, err
	}

	if out == nil {
		return zero, nil
	}
	res, ok := out.(Res)
	if !ok {
		return zero, fmt.Errorf("handler for %T returned %T, want %s", req, out, reflect.TypeFor[Res]())
	}
	return res, nil
}

func (m *Mediator) chain(handler Next) Next {
	next := handler
	for i := len(m.behaviors) - 1; i >= 0; i-- {
		behavior := m.behaviors[i]
		inner := next
		next = func(ctx context.Context, req any) (any, error) {
			return behavior(ctx, req, inner)
		}
	}
	return next
}
