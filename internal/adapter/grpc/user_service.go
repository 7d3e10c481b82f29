package grpc

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"user-contact-service/internal/usecase/user"
	apperrors "user-contact-service/pkg/errors"
	"user-contact-service/pkg/logger"
)

// UserServer implements UserServiceServer on top of the user usecase.
type UserServer struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserServer creates a new gRPC user service server
func NewUserServer(uc user.Usecase, log *zap.Logger) *UserServer {
	return &UserServer{uc: uc, log: log}
}

// GetUser handles gRPC GetUser request
func (s *UserServer) GetUser(ctx context.Context, req *user.GetUserRequest) (*user.UserDto, error) {
	resp, err := s.uc.GetUser(ctx, *req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return resp, nil
}

// FindUsers handles gRPC FindUsers request
func (s *UserServer) FindUsers(ctx context.Context, req *user.FindUsersRequest) (*FindUsersResponse, error) {
	users, err := s.uc.FindUsers(ctx, *req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if users == nil {
		users = []user.UserDto{}
	}
	return &FindUsersResponse{Users: users}, nil
}

// ListUsers handles gRPC ListUsers request. A zero ItemsPerPage selects the default page size.
func (s *UserServer) ListUsers(ctx context.Context, req *user.ListUsersRequest) (*user.PaginatedUsers, error) {
	resp, err := s.uc.ListUsers(ctx, *req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return resp, nil
}

// CreateUser handles gRPC CreateUser request
func (s *UserServer) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.UserDto, error) {
	resp, err := s.uc.CreateUser(ctx, *req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return resp, nil
}

// UpdateUser handles gRPC UpdateUser request
func (s *UserServer) UpdateUser(ctx context.Context, req *user.UpdateUserRequest) (*user.UserDto, error) {
	resp, err := s.uc.UpdateUser(ctx, *req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return resp, nil
}

// DeleteUser handles gRPC DeleteUser request
func (s *UserServer) DeleteUser(ctx context.Context, req *user.DeleteUserRequest) (*user.UserDto, error) {
	resp, err := s.uc.DeleteUser(ctx, *req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return resp, nil
}

// toStatus maps usecase errors onto gRPC status codes. Unrecognised errors
// are logged and reported as Internal without their cause.
func (s *UserServer) toStatus(ctx context.Context, err error) error {
	var st apperrors.GRPCStatuser
	switch {
	case errors.As(err, &st) && st.GRPCStatus().Code() != codes.Internal:
		return st.GRPCStatus().Err()
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	logger.WithContext(ctx, s.log).Error("grpc request failed", zap.Error(err))
	return status.Error(codes.Internal, "An unexpected error has occurred.")
}
