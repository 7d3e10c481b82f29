package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	ginhandler "user-contact-service/internal/adapter/gin/handler"
	"user-contact-service/internal/adapter/ratelimit"
	"user-contact-service/internal/config"
	"user-contact-service/internal/usecase/user"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	GRPC   *grpc.Server
	Gin    *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, userUC user.Usecase, rateLimiter ratelimit.Limiter, handler *ginhandler.UserHandler) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		GRPC:   SetupGRPC(userUC, rateLimiter, l),
		Gin:    SetupGinServer(handler, rateLimiter, cfg.Logger.ServiceName, cfg.App.Env, httpAddress(cfg), l),
	}
}

// Start serves gRPC and HTTP until one of them fails or both are stopped.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(ctx, "tcp", grpcAddress(s.Config))
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", grpcAddress(s.Config), err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Logger.Info("gRPC server running", zap.String("address", grpcAddress(s.Config)))
		if err := s.GRPC.Serve(lis); err != nil {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.Logger.Info("REST API running", zap.String("address", s.Gin.Addr))
		if err := s.Gin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("gin server: %w", err)
		}
		return nil
	})

	// A failed listener takes the other one down. Cancellation of ctx is
	// left to the caller, which shuts both servers down gracefully.
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() == nil {
			s.GRPC.Stop()
			_ = s.Gin.Close()
		}
		return nil
	})

	return g.Wait()
}

func grpcAddress(cfg *config.Config) string {
	return ":" + cfg.App.GRPCPort
}

func httpAddress(cfg *config.Config) string {
	return ":" + cfg.App.HTTPPort
}
