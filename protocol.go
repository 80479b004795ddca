package smithy

import (
	"context"
	"io"
	"math/big"
	"time"
)

// ClientProtocol defines the interface through which client-side operation
// request/responses are (de)serialized across the wire.
//
// TRequest and TResponse represent the input and output transport types for
// the protocol. In most cases this corresponds to *smithyhttp.Request and
// *smithyhttp.Response.
//
// While a caller CAN define their own protocol, it is almost never necessary
// to do so. In practice, a generated client will utilize one of the predefined
// protocols implemented as part of the Smithy client runtime.
type ClientProtocol[TRequest, TResponse any] interface {
	ID() string
	SerializeRequest(context.Context, Serializable, TRequest) error

	// DeserializeResponse deserializes the transport response into the modeled
	DeserializeResponse(ctx context.Context, types *TypeRegistry, resp TResponse, out Deserializable) error
}

// Codec provides implementations of Serializer and ShapeDeserializer to be
// used by a Protocol.
type Codec interface {
	// PayloadMediaType returns the codec's default content-type, e.g.
	// "application/json" or "application/cbor".
	PayloadMediaType() string

	Serializer() ShapeSerializer
	Deserializer([]byte) ShapeDeserializer
}

// ShapeSerializer implements the marshaling of an in-code representation of a
// shape to an unspecified data format, which is determined by the
// implementation.
//
// A "specific" serializer embeds UnsupportedShapeSerializer and overrides
// only the Write methods it supports, rather than reimplementing the whole
// interface. HostLabelSerializer, EventHeaderSerializer,
// HTTPQuerySerializer and friends in package httpbinding are built this
// way: each is a narrow projection of a structure onto one HTTP binding
// location, and any call outside that projection's shape is a
// SerializationError rather than silently accepted.
type ShapeSerializer interface {
	Bytes() []byte

	WriteInt8(*Schema, int8)
	WriteInt16(*Schema, int16)
	WriteInt32(*Schema, int32)
	WriteInt64(*Schema, int64)
	WriteInt8Ptr(*Schema, *int8)
	WriteInt16Ptr(*Schema, *int16)
	WriteInt32Ptr(*Schema, *int32)
	WriteInt64Ptr(*Schema, *int64)

	WriteFloat32(*Schema, float32)
	WriteFloat64(*Schema, float64)
	WriteFloat32Ptr(*Schema, *float32)
	WriteFloat64Ptr(*Schema, *float64)

	WriteBool(*Schema, bool)
	WriteBoolPtr(*Schema, *bool)

	WriteString(*Schema, string)
	WriteStringPtr(*Schema, *string)

	WriteBigInteger(*Schema, big.Int)
	WriteBigDecimal(*Schema, big.Float)
	WriteBlob(*Schema, []byte)
	WriteTime(*Schema, time.Time)
	WriteTimePtr(*Schema, *time.Time)

	WriteStruct(*Schema, Serializable)

	WriteUnion(schema, variant *Schema, v Serializable)

	WriteDocument(*Schema, Document)

	WriteNil(*Schema)

	WriteList(*Schema)
	CloseList()

	WriteMap(*Schema)
	WriteKey(*Schema, string)
	CloseMap()

	// WriteDataStream wires a streaming payload (a member carrying the
	// streaming trait but not wrapped in an event-stream union) directly
	// to the transport body. Implementations that do not back onto a
	// streamable transport may treat this as WriteBlob after draining r.
	WriteDataStream(*Schema, io.Reader)

	// WriteEventStream wires an event-stream payload. fn is invoked with
	// an EventStreamWriter capable of publishing successive union-member
	// events and a terminal error/completion, used by the eventstreamapi
	// package to drive streaming operations without this interface
	// needing to know about event-stream framing.
	WriteEventStream(*Schema, func(EventStreamWriter))
}

// EventStreamWriter is the minimal surface the serde kernel needs from an
// event-stream encoder in order to let WriteEventStream emit events without
// importing package eventstreamapi (which in turn depends on this
// package).
type EventStreamWriter interface {
	WriteEvent(Serializable)
	WriteError(error)
	Close()
}

// ShapeDeserializer implements the unmarshaling from some unspecified data
// format to an encoded shape.
type ShapeDeserializer interface {
	ReadInt8(*Schema, *int8) error
	ReadInt16(*Schema, *int16) error
	ReadInt32(*Schema, *int32) error
	ReadInt64(*Schema, *int64) error

	ReadInt8Ptr(*Schema, **int8) error
	ReadInt16Ptr(*Schema, **int16) error
	ReadInt32Ptr(*Schema, **int32) error
	ReadInt64Ptr(*Schema, **int64) error

	ReadFloat32(*Schema, *float32) error
	ReadFloat64(*Schema, *float64) error

	ReadFloat32Ptr(*Schema, **float32) error
	ReadFloat64Ptr(*Schema, **float64) error

	ReadBool(*Schema, *bool) error
	ReadBoolPtr(*Schema, **bool) error

	ReadString(*Schema, *string) error
	ReadStringPtr(*Schema, **string) error

	ReadTime(*Schema, *time.Time) error
	ReadTimePtr(*Schema, **time.Time) error

	ReadBlob(*Schema, *[]byte) error

	ReadList(*Schema) error
	// returns true if there's another item in the list, false at the end and
	// an error if a decode error is encountered. use other deserializer
	// methods to read the expected type from the deserializer
	ReadListItem(*Schema) (bool, error)

	ReadMap(*Schema) error
	// the bool will be true if there's another key in the list and the string
	// will have the value of that key, with any decode error in the error. use
	// other deserializer methods to read the expected type.
	ReadMapKey(*Schema) (string, bool, error)

	ReadStruct(*Schema) error
	// returns the member schema for the given struct, nil when there are no
	// more members, with any decode error in the error. use other deserializer
	// methods to read the expected type.
	ReadStructMember() (*Schema, error)

	// returns the schema for the variant that the union is
	ReadUnion(*Schema) (*Schema, error)

	ReadDocument(*Schema, *Document) error
}

// Serializable is an entity that can describe itself to a ShapeSerializer to
// be encoded to some format.
//
// Unlike the standard library marshaler interfaces, which idiomatically encode
// to []byte, the output format and data type here is not specified at all.
// This is because Smithy shapes need to encode to a variety of formats or data
// carriers. For example, HTTP-binding JSON protocols need to serialize some
// members to bytes (the HTTP request body) and others directly to fields on
// the HTTP request itself (e.g. headers).
type Serializable interface {
	Serialize(ShapeSerializer)
}

// Deserializable is an entity that can unmarshal itself from a
// ShapeDeserializer.
type Deserializable interface {
	Deserialize(ShapeDeserializer) error
}

// DeserializableError is implemented by modeled error types for a service.
type DeserializableError interface {
	Deserializable
	error
}

// ReadStruct is a utility API for generated clients.
func ReadStruct(d ShapeDeserializer, schema *Schema, memberFn func(*Schema) error) error {
	if err := d.ReadStruct(schema); err != nil {
		return err
	}

	for {
		ms, err := d.ReadStructMember()
		if ms == nil {
			return nil
		}

		if err != nil {
			return err
		}

		if err := memberFn(ms); err != nil {
			return err
		}
	}
}

// ReadList is a utility API for generated clients.
func ReadList(d ShapeDeserializer, schema *Schema, memberFn func() error) error {
	if err := d.ReadList(schema); err != nil {
		return err
	}

	member, _ := schema.MemberByName("member")
	for {
		ok, err := d.ReadListItem(member)
		if !ok {
			return nil
		}
		if err != nil {
			return err
		}

		if err := memberFn(); err != nil {
			return err
		}
	}
}

// ReadMap is a utility API for generated clients.
func ReadMap(d ShapeDeserializer, schema *Schema, memberFn func(string) error) error {
	if err := d.ReadMap(schema); err != nil {
		return err
	}

	key, _ := schema.MemberByName("key")
	for {
		k, ok, err := d.ReadMapKey(key)
		if !ok {
			return nil
		}
		if err != nil {
			return err
		}

		if err := memberFn(k); err != nil {
			return err
		}
	}
}

// UnsupportedShapeSerializer is a ShapeSerializer base that fails every
// call with a SerializationError. Concrete narrow serializers (see
// httpbinding) embed this and override only the methods appropriate to
// their projection.
type UnsupportedShapeSerializer struct {
	// Name identifies the embedding serializer in error messages, e.g.
	// "HostLabelSerializer".
	Name string
}

func (u UnsupportedShapeSerializer) unsupported(s *Schema) {
	panic(&SerializationError{Schema: s, Reason: u.Name + " does not support this member"})
}

func (u UnsupportedShapeSerializer) Bytes() []byte { return nil }

func (u UnsupportedShapeSerializer) WriteInt8(s *Schema, _ int8)       { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteInt16(s *Schema, _ int16)     { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteInt32(s *Schema, _ int32)     { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteInt64(s *Schema, _ int64)     { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteInt8Ptr(s *Schema, _ *int8)   { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteInt16Ptr(s *Schema, _ *int16) { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteInt32Ptr(s *Schema, _ *int32) { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteInt64Ptr(s *Schema, _ *int64) { u.unsupported(s) }

func (u UnsupportedShapeSerializer) WriteFloat32(s *Schema, _ float32)     { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteFloat64(s *Schema, _ float64)     { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteFloat32Ptr(s *Schema, _ *float32) { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteFloat64Ptr(s *Schema, _ *float64) { u.unsupported(s) }

func (u UnsupportedShapeSerializer) WriteBool(s *Schema, _ bool)    { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteBoolPtr(s *Schema, _ *bool) { u.unsupported(s) }

func (u UnsupportedShapeSerializer) WriteString(s *Schema, _ string)     { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteStringPtr(s *Schema, _ *string) { u.unsupported(s) }

func (u UnsupportedShapeSerializer) WriteBigInteger(s *Schema, _ big.Int)   { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteBigDecimal(s *Schema, _ big.Float) { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteBlob(s *Schema, _ []byte)         { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteTime(s *Schema, _ time.Time)      { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteTimePtr(s *Schema, _ *time.Time)  { u.unsupported(s) }

func (u UnsupportedShapeSerializer) WriteStruct(s *Schema, _ Serializable) { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteUnion(s, _ *Schema, _ Serializable) { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteDocument(s *Schema, _ Document)   { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteNil(s *Schema)                    { u.unsupported(s) }

func (u UnsupportedShapeSerializer) WriteList(s *Schema) { u.unsupported(s) }
func (u UnsupportedShapeSerializer) CloseList()          {}

func (u UnsupportedShapeSerializer) WriteMap(s *Schema)          { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteKey(s *Schema, _ string) { u.unsupported(s) }
func (u UnsupportedShapeSerializer) CloseMap()                    {}

func (u UnsupportedShapeSerializer) WriteDataStream(s *Schema, _ io.Reader) { u.unsupported(s) }
func (u UnsupportedShapeSerializer) WriteEventStream(s *Schema, _ func(EventStreamWriter)) {
	u.unsupported(s)
}

var _ ShapeSerializer = UnsupportedShapeSerializer{}

// UnsupportedShapeDeserializer is a ShapeDeserializer base that fails
// every call with a SerializationError. Concrete narrow deserializers
// (see httpbinding) embed this and override only the methods appropriate
// to their projection.
type UnsupportedShapeDeserializer struct {
	// Name identifies the embedding deserializer in error messages, e.g.
	// "HTTPHeaderDeserializer".
	Name string
}

func (u UnsupportedShapeDeserializer) unsupported(s *Schema) error {
	return &SerializationError{Schema: s, Reason: u.Name + " does not support this member"}
}

func (u UnsupportedShapeDeserializer) ReadInt8(s *Schema, _ *int8) error   { return u.unsupported(s) }
func (u UnsupportedShapeDeserializer) ReadInt16(s *Schema, _ *int16) error { return u.unsupported(s) }
func (u UnsupportedShapeDeserializer) ReadInt32(s *Schema, _ *int32) error { return u.unsupported(s) }
func (u UnsupportedShapeDeserializer) ReadInt64(s *Schema, _ *int64) error { return u.unsupported(s) }

func (u UnsupportedShapeDeserializer) ReadInt8Ptr(s *Schema, _ **int8) error { return u.unsupported(s) }
func (u UnsupportedShapeDeserializer) ReadInt16Ptr(s *Schema, _ **int16) error {
	return u.unsupported(s)
}
func (u UnsupportedShapeDeserializer) ReadInt32Ptr(s *Schema, _ **int32) error {
	return u.unsupported(s)
}
func (u UnsupportedShapeDeserializer) ReadInt64Ptr(s *Schema, _ **int64) error {
	return u.unsupported(s)
}

func (u UnsupportedShapeDeserializer) ReadFloat32(s *Schema, _ *float32) error {
	return u.unsupported(s)
}
func (u UnsupportedShapeDeserializer) ReadFloat64(s *Schema, _ *float64) error {
	return u.unsupported(s)
}
func (u UnsupportedShapeDeserializer) ReadFloat32Ptr(s *Schema, _ **float32) error {
	return u.unsupported(s)
}
func (u UnsupportedShapeDeserializer) ReadFloat64Ptr(s *Schema, _ **float64) error {
	return u.unsupported(s)
}

func (u UnsupportedShapeDeserializer) ReadBool(s *Schema, _ *bool) error { return u.unsupported(s) }
func (u UnsupportedShapeDeserializer) ReadBoolPtr(s *Schema, _ **bool) error {
	return u.unsupported(s)
}

func (u UnsupportedShapeDeserializer) ReadString(s *Schema, _ *string) error {
	return u.unsupported(s)
}
func (u UnsupportedShapeDeserializer) ReadStringPtr(s *Schema, _ **string) error {
	return u.unsupported(s)
}

func (u UnsupportedShapeDeserializer) ReadTime(s *Schema, _ *time.Time) error {
	return u.unsupported(s)
}
func (u UnsupportedShapeDeserializer) ReadTimePtr(s *Schema, _ **time.Time) error {
	return u.unsupported(s)
}

func (u UnsupportedShapeDeserializer) ReadBlob(s *Schema, _ *[]byte) error { return u.unsupported(s) }

func (u UnsupportedShapeDeserializer) ReadList(s *Schema) error { return u.unsupported(s) }
func (u UnsupportedShapeDeserializer) ReadListItem(s *Schema) (bool, error) {
	return false, u.unsupported(s)
}

func (u UnsupportedShapeDeserializer) ReadMap(s *Schema) error { return u.unsupported(s) }
func (u UnsupportedShapeDeserializer) ReadMapKey(s *Schema) (string, bool, error) {
	return "", false, u.unsupported(s)
}

func (u UnsupportedShapeDeserializer) ReadStruct(s *Schema) error { return u.unsupported(s) }
func (u UnsupportedShapeDeserializer) ReadStructMember() (*Schema, error) {
	return nil, u.unsupported(nil)
}

func (u UnsupportedShapeDeserializer) ReadUnion(s *Schema) (*Schema, error) {
	return nil, u.unsupported(s)
}

func (u UnsupportedShapeDeserializer) ReadDocument(s *Schema, _ *Document) error {
	return u.unsupported(s)
}

var _ ShapeDeserializer = UnsupportedShapeDeserializer{}
