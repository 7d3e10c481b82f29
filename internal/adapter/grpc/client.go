package grpc

import (
	"context"

	"google.golang.org/grpc"

	"user-contact-service/internal/usecase/user"
)

// UserServiceClient calls users.v1.UserService using the JSON codec.
type UserServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewUserServiceClient creates a client over cc.
func NewUserServiceClient(cc grpc.ClientConnInterface) *UserServiceClient {
	return &UserServiceClient{cc: cc}
}

func invoke[Res any](ctx context.Context, c *UserServiceClient, method string, in any, opts []grpc.CallOption) (*Res, error) {
	out := new(Res)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *UserServiceClient) GetUser(ctx context.Context, in *user.GetUserRequest, opts ...grpc.CallOption) (*user.UserDto, error) {
	return invoke[user.UserDto](ctx, c, "GetUser", in, opts)
}

func (c *UserServiceClient) FindUsers(ctx context.Context, in *user.FindUsersRequest, opts ...grpc.CallOption) (*FindUsersResponse, error) {
	return invoke[FindUsersResponse](ctx, c, "FindUsers", in, opts)
}

func (c *UserServiceClient) ListUsers(ctx context.Context, in *user.ListUsersRequest, opts ...grpc.CallOption) (*user.PaginatedUsers, error) {
	return invoke[user.PaginatedUsers](ctx, c, "ListUsers", in, opts)
}

func (c *UserServiceClient) CreateUser(ctx context.Context, in *user.CreateUserRequest, opts ...grpc.CallOption) (*user.UserDto, error) {
	return invoke[user.UserDto](ctx, c, "CreateUser", in, opts)
}

func (c *UserServiceClient) UpdateUser(ctx context.Context, in *user.UpdateUserRequest, opts ...grpc.CallOption) (*user.UserDto, error) {
	return invoke[user.UserDto](ctx, c, "UpdateUser", in, opts)
}

func (c *UserServiceClient) DeleteUser(ctx context.Context, in *user.DeleteUserRequest, opts ...grpc.CallOption) (*user.UserDto, error) {
	return invoke[user.UserDto](ctx, c, "DeleteUser", in, opts)
}
