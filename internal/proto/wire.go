package proto

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
	gproto "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// wireMessage is implemented by every message of the service.
type wireMessage interface {
	appendWire(b []byte) ([]byte, error)
	unmarshalWire(b []byte) error
}

var structMarshal = gproto.MarshalOptions{Deterministic: true}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// appendOptionalString writes s whenever it is set, empty or not.
func appendOptionalString(b []byte, num protowire.Number, s *string) []byte {
	if s == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, *s)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendMessage(b []byte, num protowire.Number, m wireMessage) ([]byte, error) {
	inner, err := m.appendWire(nil)
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner), nil
}

func appendStruct(b []byte, num protowire.Number, s *structpb.Struct) ([]byte, error) {
	if s == nil {
		return b, nil
	}
	inner, err := structMarshal.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("proto: field %d: %w", num, err)
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner), nil
}

// fieldFunc consumes the value of one field and reports how many bytes it
// used. Zero means the field is not one it knows; the caller skips it.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func consumeFields(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
		}
		b = b[n:]
	}
	return nil
}

func skipAll(protowire.Number, protowire.Type, []byte) (int, error) {
	return 0, nil
}

func consumeString(typ protowire.Type, b []byte, dst *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, nil
	}
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = v
	return n, nil
}

func consumeOptionalString(typ protowire.Type, b []byte, dst **string) (int, error) {
	var v string
	n, err := consumeString(typ, b, &v)
	if n > 0 {
		*dst = &v
	}
	return n, err
}

func consumeInt64(typ protowire.Type, b []byte, dst *int64) (int, error) {
	if typ != protowire.VarintType {
		return 0, nil
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = int64(v)
	return n, nil
}

func consumeMessage(typ protowire.Type, b []byte, m wireMessage) (int, error) {
	if typ != protowire.BytesType {
		return 0, nil
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	if err := m.unmarshalWire(v); err != nil {
		return 0, err
	}
	return n, nil
}

func consumeStruct(typ protowire.Type, b []byte, dst **structpb.Struct) (int, error) {
	if typ != protowire.BytesType {
		return 0, nil
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	s := &structpb.Struct{}
	if err := gproto.Unmarshal(v, s); err != nil {
		return 0, fmt.Errorf("proto: struct field: %w", err)
	}
	*dst = s
	return n, nil
}

/*************
 * Messages
 *************/

func (x *Identity) appendWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, x.Uid)
	b = appendOptionalString(b, 2, x.DisplayName)
	b = appendOptionalString(b, 3, x.Email)
	return b, nil
}

func (x *Identity) unmarshalWire(b []byte) error {
	*x = Identity{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &x.Uid)
		case 2:
			return consumeOptionalString(typ, b, &x.DisplayName)
		case 3:
			return consumeOptionalString(typ, b, &x.Email)
		}
		return 0, nil
	})
}

func (x *CreateIdentityRequest) appendWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, x.Email)
	b = appendString(b, 2, x.Password)
	return b, nil
}

func (x *CreateIdentityRequest) unmarshalWire(b []byte) error {
	*x = CreateIdentityRequest{}
	return consumeFields(b, credentialFields(&x.Email, &x.Password))
}

func (x *AuthenticateRequest) appendWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, x.Email)
	b = appendString(b, 2, x.Password)
	return b, nil
}

func (x *AuthenticateRequest) unmarshalWire(b []byte) error {
	*x = AuthenticateRequest{}
	return consumeFields(b, credentialFields(&x.Email, &x.Password))
}

func credentialFields(email, password *string) fieldFunc {
	return func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, email)
		case 2:
			return consumeString(typ, b, password)
		}
		return 0, nil
	}
}

func (x *AuthResponse) appendWire(b []byte) ([]byte, error) {
	if x.Identity != nil {
		var err error
		if b, err = appendMessage(b, 1, x.Identity); err != nil {
			return nil, err
		}
	}
	b = appendString(b, 2, x.AccessToken)
	b = appendInt64(b, 3, x.ExpiresAt)
	return b, nil
}

func (x *AuthResponse) unmarshalWire(b []byte) error {
	*x = AuthResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			id := &Identity{}
			n, err := consumeMessage(typ, b, id)
			if n > 0 {
				x.Identity = id
			}
			return n, err
		case 2:
			return consumeString(typ, b, &x.AccessToken)
		case 3:
			return consumeInt64(typ, b, &x.ExpiresAt)
		}
		return 0, nil
	})
}

func (x *SetDisplayNameRequest) appendWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, x.Uid)
	b = appendString(b, 2, x.DisplayName)
	return b, nil
}

func (x *SetDisplayNameRequest) unmarshalWire(b []byte) error {
	*x = SetDisplayNameRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &x.Uid)
		case 2:
			return consumeString(typ, b, &x.DisplayName)
		}
		return 0, nil
	})
}

func (x *SetDisplayNameResponse) appendWire(b []byte) ([]byte, error) { return b, nil }
func (x *SetDisplayNameResponse) unmarshalWire(b []byte) error        { return consumeFields(b, skipAll) }
func (x *SignOutRequest) appendWire(b []byte) ([]byte, error)         { return b, nil }
func (x *SignOutRequest) unmarshalWire(b []byte) error                { return consumeFields(b, skipAll) }
func (x *SignOutResponse) appendWire(b []byte) ([]byte, error)        { return b, nil }
func (x *SignOutResponse) unmarshalWire(b []byte) error               { return consumeFields(b, skipAll) }
func (x *PingRequest) appendWire(b []byte) ([]byte, error)            { return b, nil }
func (x *PingRequest) unmarshalWire(b []byte) error                   { return consumeFields(b, skipAll) }
func (x *DeleteDocumentResponse) appendWire(b []byte) ([]byte, error) { return b, nil }
func (x *DeleteDocumentResponse) unmarshalWire(b []byte) error        { return consumeFields(b, skipAll) }

func (x *PingResponse) appendWire(b []byte) ([]byte, error) {
	return appendString(b, 1, x.Status), nil
}

func (x *PingResponse) unmarshalWire(b []byte) error {
	*x = PingResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &x.Status)
		}
		return 0, nil
	})
}

func (x *Document) appendWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, x.Id)
	return appendStruct(b, 2, x.Fields)
}

func (x *Document) unmarshalWire(b []byte) error {
	*x = Document{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &x.Id)
		case 2:
			return consumeStruct(typ, b, &x.Fields)
		}
		return 0, nil
	})
}

func (x *QueryDocumentsRequest) appendWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, x.Collection)
	b = appendString(b, 2, x.Field)
	b = appendString(b, 3, x.Value)
	return b, nil
}

func (x *QueryDocumentsRequest) unmarshalWire(b []byte) error {
	*x = QueryDocumentsRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &x.Collection)
		case 2:
			return consumeString(typ, b, &x.Field)
		case 3:
			return consumeString(typ, b, &x.Value)
		}
		return 0, nil
	})
}

func (x *QueryDocumentsResponse) appendWire(b []byte) ([]byte, error) {
	for i, d := range x.Documents {
		if d == nil {
			return nil, fmt.Errorf("proto: documents[%d] is nil", i)
		}
		var err error
		if b, err = appendMessage(b, 1, d); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (x *QueryDocumentsResponse) unmarshalWire(b []byte) error {
	*x = QueryDocumentsResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		d := &Document{}
		n, err := consumeMessage(typ, b, d)
		if n > 0 {
			x.Documents = append(x.Documents, d)
		}
		return n, err
	})
}

func (x *UpsertDocumentRequest) appendWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, x.Collection)
	b = appendString(b, 2, x.Id)
	return appendStruct(b, 3, x.Fields)
}

func (x *UpsertDocumentRequest) unmarshalWire(b []byte) error {
	*x = UpsertDocumentRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &x.Collection)
		case 2:
			return consumeString(typ, b, &x.Id)
		case 3:
			return consumeStruct(typ, b, &x.Fields)
		}
		return 0, nil
	})
}

func (x *UpsertDocumentResponse) appendWire(b []byte) ([]byte, error) {
	return appendString(b, 1, x.Id), nil
}

func (x *UpsertDocumentResponse) unmarshalWire(b []byte) error {
	*x = UpsertDocumentResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &x.Id)
		}
		return 0, nil
	})
}

func (x *DeleteDocumentRequest) appendWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, x.Collection)
	b = appendString(b, 2, x.Id)
	return b, nil
}

func (x *DeleteDocumentRequest) unmarshalWire(b []byte) error {
	*x = DeleteDocumentRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &x.Collection)
		case 2:
			return consumeString(typ, b, &x.Id)
		}
		return 0, nil
	})
}
