package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/todosync/internal/common"
	pb "github.com/dmitrijs2005/todosync/internal/proto"
	"golang.org/x/oauth2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.TodoSyncClient

	mu    sync.RWMutex
	token *oauth2.Token
}

// NewGRPCClient connects lazily to endpointURL. Extra dial options are
// appended after the defaults (tests use them to plug in bufconn).
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewTodoSyncClient(conn)
	return c, nil
}

func withAccessToken(ctx context.Context, token *oauth2.Token) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, token.Type()+" "+token.AccessToken)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := c.currentToken(); token != nil {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *GRPCClient) currentToken() *oauth2.Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *GRPCClient) setToken(t *oauth2.Token) {
	c.mu.Lock()
	c.token = t
	c.mu.Unlock()
}

// HasSession reports whether a non-expired access token is held.
func (c *GRPCClient) HasSession() bool {
	return c.currentToken().Valid()
}

func (c *GRPCClient) CreateIdentity(ctx context.Context, email, password string) (*Identity, error) {
	resp, err := c.client.CreateIdentity(ctx, &pb.CreateIdentityRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	c.setToken(tokenFromResponse(resp))
	return identityFromPB(resp.Identity), nil
}

// Authenticate signs in and keeps the returned token. A failed attempt
// leaves no token behind, whoever was signed in before.
func (c *GRPCClient) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	resp, err := c.client.Authenticate(ctx, &pb.AuthenticateRequest{Email: email, Password: password})
	if err != nil {
		c.setToken(nil)
		return nil, mapError(err)
	}
	c.setToken(tokenFromResponse(resp))
	return identityFromPB(resp.Identity), nil
}

func (c *GRPCClient) SetDisplayName(ctx context.Context, identity *Identity, name string) error {
	if identity == nil {
		return fmt.Errorf("%w: nil identity", ErrInvalidArgument)
	}
	_, err := c.client.SetDisplayName(ctx, &pb.SetDisplayNameRequest{Uid: identity.UID, DisplayName: name})
	if err != nil {
		return mapError(err)
	}
	identity.DisplayName = &name
	return nil
}

// SignOut revokes the session on the server. The local token is dropped
// whatever the outcome.
func (c *GRPCClient) SignOut(ctx context.Context) error {
	if c.currentToken() == nil {
		return ErrNoSession
	}
	_, err := c.client.SignOut(ctx, &pb.SignOutRequest{})
	c.setToken(nil)
	return mapError(err)
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := c.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) Query(ctx context.Context, collection, field, value string) ([]Document, error) {
	req := &pb.QueryDocumentsRequest{Collection: collection, Field: field, Value: value}

	resp, err := c.client.QueryDocuments(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	docs := make([]Document, 0, len(resp.Documents))
	for _, d := range resp.Documents {
		if d == nil {
			continue
		}
		docs = append(docs, Document{ID: d.Id, Fields: d.GetFields().AsMap()})
	}
	return docs, nil
}

func (c *GRPCClient) Upsert(ctx context.Context, collection, id string, fields map[string]any) (string, error) {
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	req := &pb.UpsertDocumentRequest{Collection: collection, Id: id, Fields: st}

	resp, err := c.client.UpsertDocument(ctx, req)
	if err != nil {
		return "", mapError(err)
	}
	return resp.Id, nil
}

func (c *GRPCClient) Delete(ctx context.Context, collection, id string) error {
	_, err := c.client.DeleteDocument(ctx, &pb.DeleteDocumentRequest{Collection: collection, Id: id})
	return mapError(err)
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func tokenFromResponse(resp *pb.AuthResponse) *oauth2.Token {
	if resp.AccessToken == "" {
		return nil
	}
	t := &oauth2.Token{AccessToken: resp.AccessToken, TokenType: "Bearer"}
	if resp.ExpiresAt > 0 {
		t.Expiry = time.Unix(resp.ExpiresAt, 0)
	}
	return t
}

func identityFromPB(i *pb.Identity) *Identity {
	if i == nil {
		return nil
	}
	return &Identity{UID: i.Uid, DisplayName: i.DisplayName, Email: i.Email}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrPermissionDenied
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.AlreadyExists:
		return ErrEmailInUse
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
