package user

import "context"

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	GetUser(ctx context.Context, in GetUserRequest) (*UserDto, error)
	FindUsers(ctx context.Context, in FindUsersRequest) ([]UserDto, error)
	ListUsers(ctx context.Context, in ListUsersRequest) (*PaginatedUsers, error)
	CreateUser(ctx context.Context, in CreateUserRequest) (*UserDto, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*UserDto, error)
	DeleteUser(ctx context.Context, in DeleteUserRequest) (*UserDto, error)
}
