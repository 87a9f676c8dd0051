// Package grpc exposes the todosync.v1.TodoSync service over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/todosync/internal/logging"
	pb "github.com/dmitrijs2005/todosync/internal/proto"
	"github.com/dmitrijs2005/todosync/internal/server/models"
	"github.com/dmitrijs2005/todosync/internal/server/services"
	"google.golang.org/grpc"
)

type userService interface {
	CreateIdentity(ctx context.Context, email, password string) (*services.AuthResult, error)
	Authenticate(ctx context.Context, email, password string) (*services.AuthResult, error)
	SetDisplayName(ctx context.Context, callerID, uid, name string) (*models.User, error)
	SignOut(ctx context.Context, sessionID string) error
	ResolveSession(ctx context.Context, token string) (*services.SessionInfo, error)
}

type documentService interface {
	Query(ctx context.Context, ownerID, collection, field, value string) ([]*models.Document, error)
	Upsert(ctx context.Context, ownerID, collection, id string, fields map[string]any) (string, error)
	Delete(ctx context.Context, ownerID, collection, id string) error
}

// healthChecker reports whether the storage behind the services answers.
type healthChecker interface {
	Ping(ctx context.Context) error
}

type GRPCServer struct {
	pb.UnimplementedTodoSyncServer
	address   string
	users     userService
	documents documentService
	health    healthChecker
	logger    logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us userService, ds documentService, hc healthChecker) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		documents: ds,
		health:    hc,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterTodoSyncServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
