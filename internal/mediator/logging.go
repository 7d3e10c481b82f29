package mediator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"user-contact-service/pkg/logger"
)

// LoggingBehavior logs every request with its handler execution time.
func LoggingBehavior(log *zap.Logger) Behavior {
	return func(ctx context.Context, req any, next Next) (any, error) {
		start := time.Now()
		res, err := next(ctx, req)
		elapsed := time.Since(start)

		l := logger.WithContext(ctx, log).With(
			zap.String("request", TypeName(req)),
			zap.Float64("elapsed_ms", float64(elapsed.Nanoseconds())/1e6),
		)
		if err != nil {
			l.Info("request failed", zap.Error(err))
			return nil, err
		}
		l.Info("request handled")
		return res, nil
	}
}
