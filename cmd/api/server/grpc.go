package server

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"

	grpcadapter "user-contact-service/internal/adapter/grpc"
	"user-contact-service/internal/adapter/grpc/middleware"
	"user-contact-service/internal/adapter/ratelimit"
	"user-contact-service/internal/usecase/user"
	"user-contact-service/pkg/logger"
)

// SetupGRPC creates and configures the gRPC server
func SetupGRPC(userUC user.Usecase, rateLimiter ratelimit.Limiter, l *zap.Logger) *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{
		middleware.Recovery(l),
		logger.RequestIDInterceptor(),
		middleware.Logging(l),
	}
	if rateLimiter != nil {
		interceptors = append(interceptors, middleware.RateLimit(rateLimiter, l))
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	grpcadapter.RegisterUserServiceServer(grpcServer, grpcadapter.NewUserServer(userUC, l))

	return grpcServer
}
