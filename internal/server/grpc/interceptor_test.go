package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/todosync/internal/common"
	pb "github.com/dmitrijs2005/todosync/internal/proto"
	"github.com/dmitrijs2005/todosync/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func withAuthorization(value string) context.Context {
	md := metadata.New(map[string]string{common.AuthorizationHeaderName: value})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_PublicMethods_AllowWithoutToken(t *testing.T) {
	s := newServer(&fakeUsers{resolveErr: errors.New("must not be called")}, &fakeDocs{})

	for _, m := range []string{
		pb.TodoSync_CreateIdentity_FullMethodName,
		pb.TodoSync_Authenticate_FullMethodName,
		pb.TodoSync_Ping_FullMethodName,
	} {
		called := false
		h := func(ctx context.Context, req interface{}) (interface{}, error) {
			called = true
			return "ok", nil
		}

		resp, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: m}, h)
		require.NoError(t, err, m)
		assert.True(t, called, m)
		assert.Equal(t, "ok", resp)
	}
}

func TestInterceptor_ProtectedMethod_MissingOrMalformedToken(t *testing.T) {
	s := newServer(&fakeUsers{}, &fakeDocs{})
	info := &grpc.UnaryServerInfo{FullMethod: pb.TodoSync_QueryDocuments_FullMethodName}
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called")
		return nil, nil
	}

	for _, ctx := range []context.Context{
		context.Background(),
		withAuthorization(""),
		withAuthorization("jwt-without-scheme"),
		withAuthorization("Basic abc"),
		withAuthorization("Bearer "),
	} {
		_, err := s.accessTokenInterceptor(ctx, nil, info, h)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
		assert.Equal(t, "missing token", status.Convert(err).Message())
	}
}

func TestInterceptor_ResolveErrors(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: pb.TodoSync_UpsertDocument_FullMethodName}
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called")
		return nil, nil
	}

	tests := []struct {
		err     error
		code    codes.Code
		message string
	}{
		{common.ErrTokenExpired, codes.Unauthenticated, "token expired"},
		{common.ErrInvalidToken, codes.Unauthenticated, "invalid token"},
		{errors.New("db down"), codes.Internal, "internal error"},
	}
	for _, tt := range tests {
		s := newServer(&fakeUsers{resolveErr: tt.err}, &fakeDocs{})
		_, err := s.accessTokenInterceptor(withAuthorization("Bearer jwt"), nil, info, h)
		assert.Equal(t, tt.code, status.Code(err))
		assert.Equal(t, tt.message, status.Convert(err).Message())
	}
}

func TestInterceptor_ValidToken_SetsSession(t *testing.T) {
	want := &services.SessionInfo{UserID: "u1", SessionID: "s1"}
	s := newServer(&fakeUsers{session: want}, &fakeDocs{})
	info := &grpc.UnaryServerInfo{FullMethod: pb.TodoSync_SignOut_FullMethodName}

	var got *services.SessionInfo
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		got, _ = sessionFromContext(ctx)
		return "ok", nil
	}

	_, err := s.accessTokenInterceptor(withAuthorization("bearer jwt"), nil, info, h)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := newServer(&fakeUsers{}, &fakeDocs{})
	boom := status.Error(codes.NotFound, "x")

	resp, err := s.loggingInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/m"},
		func(context.Context, interface{}) (interface{}, error) { return "r", boom })
	assert.Equal(t, "r", resp)
	assert.Equal(t, boom, err)
}
