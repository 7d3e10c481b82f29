package middleware

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"user-contact-service/internal/adapter/ratelimit"
	"user-contact-service/pkg/logger"
)

// RateLimit returns a unary interceptor that spends one token per call from
// the bucket of the client IP and method. A nil limiter disables it.
func RateLimit(limiter ratelimit.Limiter, log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if limiter == nil {
			return handler(ctx, req)
		}

		clientIP := getClientIP(ctx)
		key := fmt.Sprintf("grpc:%s:%s", info.FullMethod, clientIP)

		allowed, err := limiter.Allow(ctx, key)
		if err != nil {
			// On limiter error, allow request to proceed (fail open)
			logger.WithContext(ctx, log).Warn("rate limiter error, allowing request",
				zap.String("client_ip", clientIP),
				zap.String("method", info.FullMethod),
				zap.Error(err),
			)
			return handler(ctx, req)
		}

		if !allowed {
			logger.WithContext(ctx, log).Warn("rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.String("method", info.FullMethod),
			)
			return nil, status.Error(codes.ResourceExhausted, "rate limit exceeded")
		}

		return handler(ctx, req)
	}
}

// getClientIP extracts the client IP address from the gRPC context.
func getClientIP(ctx context.Context) string {
	// Requests arriving through a proxy carry the original address in metadata
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if xff := md.Get("x-forwarded-for"); len(xff) > 0 {
			return xff[0]
		}
		if xri := md.Get("x-real-ip"); len(xri) > 0 {
			return xri[0]
		}
	}

	if p, ok := peer.FromContext(ctx); ok {
		return p.Addr.String()
	}

	return "unknown"
}
