package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "todosync.v1.TodoSync"

const (
	TodoSync_CreateIdentity_FullMethodName = "/" + ServiceName + "/CreateIdentity"
	TodoSync_Authenticate_FullMethodName   = "/" + ServiceName + "/Authenticate"
	TodoSync_SetDisplayName_FullMethodName = "/" + ServiceName + "/SetDisplayName"
	TodoSync_SignOut_FullMethodName        = "/" + ServiceName + "/SignOut"
	TodoSync_Ping_FullMethodName           = "/" + ServiceName + "/Ping"
	TodoSync_QueryDocuments_FullMethodName = "/" + ServiceName + "/QueryDocuments"
	TodoSync_UpsertDocument_FullMethodName = "/" + ServiceName + "/UpsertDocument"
	TodoSync_DeleteDocument_FullMethodName = "/" + ServiceName + "/DeleteDocument"
)

// TodoSyncClient is the client API for the TodoSync service.
type TodoSyncClient interface {
	CreateIdentity(ctx context.Context, in *CreateIdentityRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	SetDisplayName(ctx context.Context, in *SetDisplayNameRequest, opts ...grpc.CallOption) (*SetDisplayNameResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	QueryDocuments(ctx context.Context, in *QueryDocumentsRequest, opts ...grpc.CallOption) (*QueryDocumentsResponse, error)
	UpsertDocument(ctx context.Context, in *UpsertDocumentRequest, opts ...grpc.CallOption) (*UpsertDocumentResponse, error)
	DeleteDocument(ctx context.Context, in *DeleteDocumentRequest, opts ...grpc.CallOption) (*DeleteDocumentResponse, error)
}

type todoSyncClient struct {
	cc grpc.ClientConnInterface
}

func NewTodoSyncClient(cc grpc.ClientConnInterface) TodoSyncClient {
	return &todoSyncClient{cc: cc}
}

// invoke forces the todosync codec on every call.
func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *todoSyncClient) CreateIdentity(ctx context.Context, in *CreateIdentityRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, TodoSync_CreateIdentity_FullMethodName, in, opts)
}

func (c *todoSyncClient) Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, TodoSync_Authenticate_FullMethodName, in, opts)
}

func (c *todoSyncClient) SetDisplayName(ctx context.Context, in *SetDisplayNameRequest, opts ...grpc.CallOption) (*SetDisplayNameResponse, error) {
	return invoke[SetDisplayNameResponse](ctx, c.cc, TodoSync_SetDisplayName_FullMethodName, in, opts)
}

func (c *todoSyncClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	return invoke[SignOutResponse](ctx, c.cc, TodoSync_SignOut_FullMethodName, in, opts)
}

func (c *todoSyncClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, TodoSync_Ping_FullMethodName, in, opts)
}

func (c *todoSyncClient) QueryDocuments(ctx context.Context, in *QueryDocumentsRequest, opts ...grpc.CallOption) (*QueryDocumentsResponse, error) {
	return invoke[QueryDocumentsResponse](ctx, c.cc, TodoSync_QueryDocuments_FullMethodName, in, opts)
}

func (c *todoSyncClient) UpsertDocument(ctx context.Context, in *UpsertDocumentRequest, opts ...grpc.CallOption) (*UpsertDocumentResponse, error) {
	return invoke[UpsertDocumentResponse](ctx, c.cc, TodoSync_UpsertDocument_FullMethodName, in, opts)
}

func (c *todoSyncClient) DeleteDocument(ctx context.Context, in *DeleteDocumentRequest, opts ...grpc.CallOption) (*DeleteDocumentResponse, error) {
	return invoke[DeleteDocumentResponse](ctx, c.cc, TodoSync_DeleteDocument_FullMethodName, in, opts)
}

// TodoSyncServer is the server API for the TodoSync service.
type TodoSyncServer interface {
	CreateIdentity(context.Context, *CreateIdentityRequest) (*AuthResponse, error)
	Authenticate(context.Context, *AuthenticateRequest) (*AuthResponse, error)
	SetDisplayName(context.Context, *SetDisplayNameRequest) (*SetDisplayNameResponse, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	QueryDocuments(context.Context, *QueryDocumentsRequest) (*QueryDocumentsResponse, error)
	UpsertDocument(context.Context, *UpsertDocumentRequest) (*UpsertDocumentResponse, error)
	DeleteDocument(context.Context, *DeleteDocumentRequest) (*DeleteDocumentResponse, error)
}

// UnimplementedTodoSyncServer can be embedded to stay forward compatible.
type UnimplementedTodoSyncServer struct{}

func (UnimplementedTodoSyncServer) CreateIdentity(context.Context, *CreateIdentityRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateIdentity not implemented")
}
func (UnimplementedTodoSyncServer) Authenticate(context.Context, *AuthenticateRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Authenticate not implemented")
}
func (UnimplementedTodoSyncServer) SetDisplayName(context.Context, *SetDisplayNameRequest) (*SetDisplayNameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetDisplayName not implemented")
}
func (UnimplementedTodoSyncServer) SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignOut not implemented")
}
func (UnimplementedTodoSyncServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedTodoSyncServer) QueryDocuments(context.Context, *QueryDocumentsRequest) (*QueryDocumentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method QueryDocuments not implemented")
}
func (UnimplementedTodoSyncServer) UpsertDocument(context.Context, *UpsertDocumentRequest) (*UpsertDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpsertDocument not implemented")
}
func (UnimplementedTodoSyncServer) DeleteDocument(context.Context, *DeleteDocumentRequest) (*DeleteDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteDocument not implemented")
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, running
// it through the interceptor chain when one is installed.
func unaryHandler[Req any, Resp any](fullMethod string, call func(TodoSyncServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TodoSyncServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TodoSyncServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// TodoSync_ServiceDesc is the grpc.ServiceDesc for the TodoSync service.
var TodoSync_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TodoSyncServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateIdentity", Handler: unaryHandler(TodoSync_CreateIdentity_FullMethodName, TodoSyncServer.CreateIdentity)},
		{MethodName: "Authenticate", Handler: unaryHandler(TodoSync_Authenticate_FullMethodName, TodoSyncServer.Authenticate)},
		{MethodName: "SetDisplayName", Handler: unaryHandler(TodoSync_SetDisplayName_FullMethodName, TodoSyncServer.SetDisplayName)},
		{MethodName: "SignOut", Handler: unaryHandler(TodoSync_SignOut_FullMethodName, TodoSyncServer.SignOut)},
		{MethodName: "Ping", Handler: unaryHandler(TodoSync_Ping_FullMethodName, TodoSyncServer.Ping)},
		{MethodName: "QueryDocuments", Handler: unaryHandler(TodoSync_QueryDocuments_FullMethodName, TodoSyncServer.QueryDocuments)},
		{MethodName: "UpsertDocument", Handler: unaryHandler(TodoSync_UpsertDocument_FullMethodName, TodoSyncServer.UpsertDocument)},
		{MethodName: "DeleteDocument", Handler: unaryHandler(TodoSync_DeleteDocument_FullMethodName, TodoSyncServer.DeleteDocument)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/proto/service.go",
}

func RegisterTodoSyncServer(s grpc.ServiceRegistrar, srv TodoSyncServer) {
	s.RegisterService(&TodoSync_ServiceDesc, srv)
}
