// Package proto describes the todosync.v1.TodoSync gRPC service: its
// messages, the codec they travel with, and the client/server stubs.
//
// Messages use the protobuf wire format. Document fields are schemaless, so
// they are carried as google.protobuf.Struct values.
//
//	message Identity {
//	  string uid = 1;
//	  optional string display_name = 2;
//	  optional string email = 3;
//	}
//	message CreateIdentityRequest { string email = 1; string password = 2; }
//	message AuthenticateRequest { string email = 1; string password = 2; }
//	message AuthResponse {
//	  Identity identity = 1;
//	  string access_token = 2;
//	  int64 expires_at = 3;
//	}
//	message SetDisplayNameRequest { string uid = 1; string display_name = 2; }
//	message PingResponse { string status = 1; }
//	message Document { string id = 1; google.protobuf.Struct fields = 2; }
//	message QueryDocumentsRequest {
//	  string collection = 1;
//	  string field = 2;
//	  string value = 3;
//	}
//	message QueryDocumentsResponse { repeated Document documents = 1; }
//	message UpsertDocumentRequest {
//	  string collection = 1;
//	  string id = 2;
//	  google.protobuf.Struct fields = 3;
//	}
//	message UpsertDocumentResponse { string id = 1; }
//	message DeleteDocumentRequest { string collection = 1; string id = 2; }
//
// SetDisplayNameResponse, SignOutRequest, SignOutResponse, PingRequest and
// DeleteDocumentResponse are empty.
package proto

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// Identity is the remote account as seen by clients.
type Identity struct {
	Uid         string
	DisplayName *string
	Email       *string
}

func (x *Identity) GetUid() string {
	if x != nil {
		return x.Uid
	}
	return ""
}

type CreateIdentityRequest struct {
	Email    string
	Password string
}

type AuthenticateRequest struct {
	Email    string
	Password string
}

// AuthResponse is returned by CreateIdentity and Authenticate. ExpiresAt is
// the access token expiry in unix seconds.
type AuthResponse struct {
	Identity    *Identity
	AccessToken string
	ExpiresAt   int64
}

func (x *AuthResponse) GetIdentity() *Identity {
	if x != nil {
		return x.Identity
	}
	return nil
}

type SetDisplayNameRequest struct {
	Uid         string
	DisplayName string
}

type SetDisplayNameResponse struct{}

type SignOutRequest struct{}

type SignOutResponse struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string
}

// Document is one stored document: its id and its top-level fields.
type Document struct {
	Id     string
	Fields *structpb.Struct
}

func (x *Document) GetFields() *structpb.Struct {
	if x != nil {
		return x.Fields
	}
	return nil
}

// QueryDocumentsRequest selects documents of Collection whose top-level
// Field equals Value.
type QueryDocumentsRequest struct {
	Collection string
	Field      string
	Value      string
}

type QueryDocumentsResponse struct {
	Documents []*Document
}

func (x *QueryDocumentsResponse) GetDocuments() []*Document {
	if x != nil {
		return x.Documents
	}
	return nil
}

// UpsertDocumentRequest replaces the whole document. An empty Id asks the
// server to assign one.
type UpsertDocumentRequest struct {
	Collection string
	Id         string
	Fields     *structpb.Struct
}

func (x *UpsertDocumentRequest) GetFields() *structpb.Struct {
	if x != nil {
		return x.Fields
	}
	return nil
}

type UpsertDocumentResponse struct {
	Id string
}

type DeleteDocumentRequest struct {
	Collection string
	Id         string
}

type DeleteDocumentResponse struct{}
