package grpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todosync/internal/common"
	pb "github.com/dmitrijs2005/todosync/internal/proto"
	"github.com/dmitrijs2005/todosync/internal/server/models"
	"github.com/dmitrijs2005/todosync/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) CreateIdentity(ctx context.Context, req *pb.CreateIdentityRequest) (*pb.AuthResponse, error) {
	result, err := s.users.CreateIdentity(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", result.User.ID)
	return authResponse(result), nil
}

func (s *GRPCServer) Authenticate(ctx context.Context, req *pb.AuthenticateRequest) (*pb.AuthResponse, error) {
	result, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return authResponse(result), nil
}

func (s *GRPCServer) SetDisplayName(ctx context.Context, req *pb.SetDisplayNameRequest) (*pb.SetDisplayNameResponse, error) {
	session, ok := sessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no session")
	}
	if _, err := s.users.SetDisplayName(ctx, session.UserID, req.Uid, req.DisplayName); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.SetDisplayNameResponse{}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, _ *pb.SignOutRequest) (*pb.SignOutResponse, error) {
	session, ok := sessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no session")
	}
	if err := s.users.SignOut(ctx, session.SessionID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.SignOutResponse{}, nil
}

// Ping answers DEGRADED when storage is unreachable.
func (s *GRPCServer) Ping(ctx context.Context, _ *pb.PingRequest) (*pb.PingResponse, error) {
	if s.health != nil {
		if err := s.health.Ping(ctx); err != nil {
			s.logger.Warn(ctx, "storage ping failed", "error", err)
			return &pb.PingResponse{Status: "DEGRADED"}, nil
		}
	}
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) QueryDocuments(ctx context.Context, req *pb.QueryDocumentsRequest) (*pb.QueryDocumentsResponse, error) {
	session, ok := sessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no session")
	}

	docs, err := s.documents.Query(ctx, session.UserID, req.Collection, req.Field, req.Value)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &pb.QueryDocumentsResponse{Documents: make([]*pb.Document, 0, len(docs))}
	for _, d := range docs {
		doc, err := documentToPB(d)
		if err != nil {
			return nil, s.toStatus(ctx, err)
		}
		resp.Documents = append(resp.Documents, doc)
	}
	return resp, nil
}

func (s *GRPCServer) UpsertDocument(ctx context.Context, req *pb.UpsertDocumentRequest) (*pb.UpsertDocumentResponse, error) {
	session, ok := sessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no session")
	}

	id, err := s.documents.Upsert(ctx, session.UserID, req.Collection, req.Id, req.GetFields().AsMap())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.UpsertDocumentResponse{Id: id}, nil
}

func (s *GRPCServer) DeleteDocument(ctx context.Context, req *pb.DeleteDocumentRequest) (*pb.DeleteDocumentResponse, error) {
	session, ok := sessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no session")
	}

	if err := s.documents.Delete(ctx, session.UserID, req.Collection, req.Id); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.DeleteDocumentResponse{}, nil
}

// toStatus maps domain errors to gRPC status codes. Unexpected errors are
// logged and reported as Internal without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, "permission denied")
	case errors.Is(err, common.ErrEmailInUse):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrInvalidEmail),
		errors.Is(err, common.ErrWeakPassword),
		errors.Is(err, common.ErrInvalidFields),
		errors.Is(err, common.ErrInvalidCollection):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func authResponse(r *services.AuthResult) *pb.AuthResponse {
	email := r.User.Email
	return &pb.AuthResponse{
		Identity: &pb.Identity{
			Uid:         r.User.ID,
			DisplayName: r.User.DisplayName,
			Email:       &email,
		},
		AccessToken: r.AccessToken,
		ExpiresAt:   r.ExpiresAt.Unix(),
	}
}

func documentToPB(d *models.Document) (*pb.Document, error) {
	fields, err := structpb.NewStruct(d.Fields)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", d.ID, err)
	}
	return &pb.Document{Id: d.ID, Fields: fields}, nil
}
