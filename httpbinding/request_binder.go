package httpbinding

import (
	"io"
	"math/big"
	"time"

	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/traits"
)

// RequestBinder is the top-level ShapeSerializer for HTTP-bound
// protocols. Each Write* call arrives with the member schema that
// produced it; RequestBinder inspects that schema's traits to decide
// whether the value belongs on the URI, in a header, in the query
// string, or in the body, and routes accordingly. Anything without a
// recognized HTTP binding trait -- including the payload member itself,
// when present -- falls through to Payload, an inner ShapeSerializer
// supplied by the operation's codec (JSON, CBOR, XML, ...).
//
// A map member bound to httpPrefixHeaders or httpQueryParams stays
// routed to its narrow serializer for every WriteKey/value call until
// the matching CloseMap, since those calls carry the map's *value*
// schema rather than the member schema the binding was found on; open
// carries to the innermost open bound map.
type RequestBinder struct {
	Encoder *Encoder
	Payload smithy.ShapeSerializer

	open []smithy.ShapeSerializer
}

func NewRequestBinder(enc *Encoder, payload smithy.ShapeSerializer) *RequestBinder {
	return &RequestBinder{Encoder: enc, Payload: payload}
}

func (s *RequestBinder) Bytes() []byte { return s.Payload.Bytes() }

func (s *RequestBinder) top() smithy.ShapeSerializer {
	if len(s.open) == 0 {
		return nil
	}
	return s.open[len(s.open)-1]
}

// bound returns the narrow serializer for schema's HTTP binding, or nil
// if schema carries none -- in which case the caller routes to Payload.
func (s *RequestBinder) bound(schema *smithy.Schema) smithy.ShapeSerializer {
	if schema == nil {
		return nil
	}
	if h, ok := smithy.SchemaTrait[*traits.HTTPHeader](schema); ok {
		return NewHTTPHeaderSerializer(s.Encoder.SetHeader(h.Name))
	}
	if p, ok := smithy.SchemaTrait[*traits.HTTPPrefixHeaders](schema); ok {
		return NewHTTPPrefixHeadersSerializer(s.Encoder.Headers(p.Prefix))
	}
	if q, ok := smithy.SchemaTrait[*traits.HTTPQuery](schema); ok {
		return NewHTTPQuerySerializer(s.Encoder.SetQuery(q.Name))
	}
	if _, ok := smithy.SchemaTrait[*traits.HTTPQueryParams](schema); ok {
		return NewHTTPQueryParamsSerializer(func(key string, add bool) QueryValue {
			if add {
				return s.Encoder.AddQuery(key)
			}
			return s.Encoder.SetQuery(key)
		})
	}
	if _, ok := smithy.SchemaTrait[*traits.HTTPLabel](schema); ok {
		return NewHTTPLabelSerializer(s.Encoder.SetURI(schema.ID.Member))
	}
	return nil
}

func (s *RequestBinder) WriteInt8(schema *smithy.Schema, v int8) {
	if top := s.top(); top != nil {
		top.WriteInt8(schema, v)
		return
	}
	if b := s.bound(schema); b != nil {
		b.WriteInt8(schema, v)
		return
	}
	s.Payload.WriteInt8(schema, v)
}

func (s *RequestBinder) WriteInt16(schema *smithy.Schema, v int16) {
	if top := s.top(); top != nil {
		top.WriteInt16(schema, v)
		return
	}
	if b := s.bound(schema); b != nil {
		b.WriteInt16(schema, v)
		return
	}
	s.Payload.WriteInt16(schema, v)
}

func (s *RequestBinder) WriteInt32(schema *smithy.Schema, v int32) {
	if top := s.top(); top != nil {
		top.WriteInt32(schema, v)
		return
	}
	if b := s.bound(schema); b != nil {
		b.WriteInt32(schema, v)
		return
	}
	s.Payload.WriteInt32(schema, v)
}

func (s *RequestBinder) WriteInt64(schema *smithy.Schema, v int64) {
	if top := s.top(); top != nil {
		top.WriteInt64(schema, v)
		return
	}
	if b := s.bound(schema); b != nil {
		b.WriteInt64(schema, v)
		return
	}
	s.Payload.WriteInt64(schema, v)
}

func (s *RequestBinder) WriteInt8Ptr(schema *smithy.Schema, v *int8) {
	if v != nil {
		s.WriteInt8(schema, *v)
	}
}
func (s *RequestBinder) WriteInt16Ptr(schema *smithy.Schema, v *int16) {
	if v != nil {
		s.WriteInt16(schema, *v)
	}
}
func (s *RequestBinder) WriteInt32Ptr(schema *smithy.Schema, v *int32) {
	if v != nil {
		s.WriteInt32(schema, *v)
	}
}
func (s *RequestBinder) WriteInt64Ptr(schema *smithy.Schema, v *int64) {
	if v != nil {
		s.WriteInt64(schema, *v)
	}
}

func (s *RequestBinder) WriteFloat32(schema *smithy.Schema, v float32) {
	if top := s.top(); top != nil {
		top.WriteFloat32(schema, v)
		return
	}
	if b := s.bound(schema); b != nil {
		b.WriteFloat32(schema, v)
		return
	}
	s.Payload.WriteFloat32(schema, v)
}

func (s *RequestBinder) WriteFloat64(schema *smithy.Schema, v float64) {
	if top := s.top(); top != nil {
		top.WriteFloat64(schema, v)
		return
	}
	if b := s.bound(schema); b != nil {
		b.WriteFloat64(schema, v)
		return
	}
	s.Payload.WriteFloat64(schema, v)
}

func (s *RequestBinder) WriteFloat32Ptr(schema *smithy.Schema, v *float32) {
	if v != nil {
		s.WriteFloat32(schema, *v)
	}
}
func (s *RequestBinder) WriteFloat64Ptr(schema *smithy.Schema, v *float64) {
	if v != nil {
		s.WriteFloat64(schema, *v)
	}
}

func (s *RequestBinder) WriteBool(schema *smithy.Schema, v bool) {
	if top := s.top(); top != nil {
		top.WriteBool(schema, v)
		return
	}
	if b := s.bound(schema); b != nil {
		b.WriteBool(schema, v)
		return
	}
	s.Payload.WriteBool(schema, v)
}

func (s *RequestBinder) WriteBoolPtr(schema *smithy.Schema, v *bool) {
	if v != nil {
		s.WriteBool(schema, *v)
	}
}

func (s *RequestBinder) WriteString(schema *smithy.Schema, v string) {
	if top := s.top(); top != nil {
		top.WriteString(schema, v)
		return
	}
	if b := s.bound(schema); b != nil {
		b.WriteString(schema, v)
		return
	}
	s.Payload.WriteString(schema, v)
}

func (s *RequestBinder) WriteStringPtr(schema *smithy.Schema, v *string) {
	if v != nil {
		s.WriteString(schema, *v)
	}
}

func (s *RequestBinder) WriteBlob(schema *smithy.Schema, v []byte) {
	if top := s.top(); top != nil {
		top.WriteBlob(schema, v)
		return
	}
	if b := s.bound(schema); b != nil {
		b.WriteBlob(schema, v)
		return
	}
	s.Payload.WriteBlob(schema, v)
}

func (s *RequestBinder) WriteTime(schema *smithy.Schema, v time.Time) {
	if top := s.top(); top != nil {
		top.WriteTime(schema, v)
		return
	}
	if b := s.bound(schema); b != nil {
		b.WriteTime(schema, v)
		return
	}
	s.Payload.WriteTime(schema, v)
}

func (s *RequestBinder) WriteTimePtr(schema *smithy.Schema, v *time.Time) {
	if v != nil {
		s.WriteTime(schema, *v)
	}
}

func (s *RequestBinder) WriteBigInteger(schema *smithy.Schema, v big.Int) {
	s.Payload.WriteBigInteger(schema, v)
}
func (s *RequestBinder) WriteBigDecimal(schema *smithy.Schema, v big.Float) {
	s.Payload.WriteBigDecimal(schema, v)
}

func (s *RequestBinder) WriteStruct(schema *smithy.Schema, v smithy.Serializable) {
	s.Payload.WriteStruct(schema, v)
}
func (s *RequestBinder) WriteUnion(schema, variant *smithy.Schema, v smithy.Serializable) {
	s.Payload.WriteUnion(schema, variant, v)
}
func (s *RequestBinder) WriteDocument(schema *smithy.Schema, v smithy.Document) {
	s.Payload.WriteDocument(schema, v)
}
func (s *RequestBinder) WriteNil(schema *smithy.Schema) { s.Payload.WriteNil(schema) }

func (s *RequestBinder) WriteList(schema *smithy.Schema) { s.Payload.WriteList(schema) }
func (s *RequestBinder) CloseList()                      { s.Payload.CloseList() }

// WriteMap opens a map member. When schema is bound to httpPrefixHeaders
// or httpQueryParams, the narrow serializer for that binding becomes the
// target of every nested WriteKey/Write* call until CloseMap.
func (s *RequestBinder) WriteMap(schema *smithy.Schema) {
	if top := s.top(); top != nil {
		top.WriteMap(schema)
		return
	}
	if b := s.bound(schema); b != nil {
		b.WriteMap(schema)
		s.open = append(s.open, b)
		return
	}
	s.Payload.WriteMap(schema)
}

func (s *RequestBinder) WriteKey(schema *smithy.Schema, key string) {
	if top := s.top(); top != nil {
		top.WriteKey(schema, key)
		return
	}
	s.Payload.WriteKey(schema, key)
}

func (s *RequestBinder) CloseMap() {
	if top := s.top(); top != nil {
		top.CloseMap()
		s.open = s.open[:len(s.open)-1]
		return
	}
	s.Payload.CloseMap()
}

func (s *RequestBinder) WriteDataStream(schema *smithy.Schema, r io.Reader) {
	s.Payload.WriteDataStream(schema, r)
}
func (s *RequestBinder) WriteEventStream(schema *smithy.Schema, fn func(smithy.EventStreamWriter)) {
	s.Payload.WriteEventStream(schema, fn)
}

var _ smithy.ShapeSerializer = (*RequestBinder)(nil)
