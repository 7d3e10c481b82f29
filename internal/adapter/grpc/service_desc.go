package grpc

import (
	"context"

	"google.golang.org/grpc"

	"user-contact-service/internal/usecase/user"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "users.v1.UserService"

// FindUsersResponse wraps the users matched by FindUsers.
type FindUsersResponse struct {
	Users []user.UserDto `json:"users"`
}

// UserServiceServer is the server API for users.v1.UserService.
type UserServiceServer interface {
	GetUser(context.Context, *user.GetUserRequest) (*user.UserDto, error)
	FindUsers(context.Context, *user.FindUsersRequest) (*FindUsersResponse, error)
	ListUsers(context.Context, *user.ListUsersRequest) (*user.PaginatedUsers, error)
	CreateUser(context.Context, *user.CreateUserRequest) (*user.UserDto, error)
	UpdateUser(context.Context, *user.UpdateUserRequest) (*user.UserDto, error)
	DeleteUser(context.Context, *user.DeleteUserRequest) (*user.UserDto, error)
}

// FullMethod returns "/users.v1.UserService/{method}".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unary[Req, Res any](name string, call func(UserServiceServer, context.Context, *Req) (*Res, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(UserServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(UserServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// UserServiceDesc describes users.v1.UserService for grpc.Server.RegisterService.
var UserServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetUser", UserServiceServer.GetUser),
		unary("FindUsers", UserServiceServer.FindUsers),
		unary("ListUsers", UserServiceServer.ListUsers),
		unary("CreateUser", UserServiceServer.CreateUser),
		unary("UpdateUser", UserServiceServer.UpdateUser),
		unary("DeleteUser", UserServiceServer.DeleteUser),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "users/v1/users.json",
}

// RegisterUserServiceServer registers srv with s.
func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&UserServiceDesc, srv)
}
