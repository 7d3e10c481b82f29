package validation

import (
	"context"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"user-contact-service/internal/mediator"
	apperrors "user-contact-service/pkg/errors"
	"user-contact-service/pkg/logger"
)

// Registry maps request types to their rule sets.
type Registry struct {
	rules map[reflect.Type]func(any) []string
	mu    sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[reflect.Type]func(any) []string)}
}

// Register adds the rule set for requests of type T, replacing any previous one.
func Register[T any](r *Registry, rules func(T) []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules[reflect.TypeFor[T]()] = func(req any) []string {
		return rules(req.(T))
	}
}

// Validate returns the failures for req. Requests without a rule set are valid.
func (r *Registry) Validate(req any) []string {
	r.mu.RLock()
	rules, ok := r.rules[reflect.TypeOf(req)]
	r.mu.RUnlock()

	if !ok {
		return nil
	}
	return rules(req)
}

// Behavior returns a mediator behavior that rejects invalid requests with a
// ValidationError before the handler is reached.
func (r *Registry) Behavior(log *zap.Logger) mediator.Behavior {
	return func(ctx context.Context, req any, next mediator.Next) (any, error) {
		if failures := r.Validate(req); len(failures) > 0 {
			logger.WithContext(ctx, log).Warn("validate failed",
				zap.String("request", mediator.TypeName(req)),
				zap.Strings("failures", failures),
			)
			return nil, apperrors.NewValidationError(failures...)
		}
		return next(ctx, req)
	}
}
