package json

import (
	"io"
	"math/big"
	"time"

	"github.com/smithykit/runtime"
	"github.com/smithykit/runtime/traits"
)

// ShapeSerializer implements marshaling of Smithy shapes to JSON.
type ShapeSerializer struct {
	root *Encoder
	head stack
}

var _ smithy.ShapeSerializer = (*ShapeSerializer)(nil)

func (ss *ShapeSerializer) Bytes() []byte {
	return ss.root.Bytes()
}

func (ss *ShapeSerializer) WriteInt8Ptr(s *smithy.Schema, v *int8) {
	if v != nil {
		ss.WriteInt8(s, *v)
	}
}

func (ss *ShapeSerializer) WriteInt16Ptr(s *smithy.Schema, v *int16) {
	if v != nil {
		ss.WriteInt16(s, *v)
	}
}

func (ss *ShapeSerializer) WriteInt32Ptr(s *smithy.Schema, v *int32) {
	if v != nil {
		ss.WriteInt32(s, *v)
	}
}

func (ss *ShapeSerializer) WriteInt64Ptr(s *smithy.Schema, v *int64) {
	if v != nil {
		ss.WriteInt64(s, *v)
	}
}

func (ss *ShapeSerializer) WriteFloat32Ptr(s *smithy.Schema, v *float32) {
	if v != nil {
		ss.WriteFloat32(s, *v)
	}
}

func (ss *ShapeSerializer) WriteFloat64Ptr(s *smithy.Schema, v *float64) {
	if v != nil {
		ss.WriteFloat64(s, *v)
	}
}

func (ss *ShapeSerializer) WriteBoolPtr(s *smithy.Schema, v *bool) {
	if v != nil {
		ss.WriteBool(s, *v)
	}
}

func (ss *ShapeSerializer) WriteStringPtr(s *smithy.Schema, v *string) {
	if v != nil {
		ss.WriteString(s, *v)
	}
}

func (ss *ShapeSerializer) WriteTimePtr(s *smithy.Schema, v *time.Time) {
	if v != nil {
		ss.WriteTime(s, *v)
	}
}

func (ss *ShapeSerializer) WriteBool(s *smithy.Schema, v bool) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		enc.Key(s.ID.Member).Boolean(v)
	case *Array:
		enc.Value().Boolean(v)
	case Value:
		enc.Boolean(v)
		ss.head.Pop()
	default:
		ss.root.Value.Boolean(v)
	}
}

func (ss *ShapeSerializer) WriteInt8(s *smithy.Schema, v int8) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		enc.Key(s.ID.Member).Byte(v)
	case *Array:
		enc.Value().Byte(v)
	case Value:
		enc.Byte(v)
		ss.head.Pop()
	default:
		ss.root.Value.Byte(v)
	}
}

func (ss *ShapeSerializer) WriteInt16(s *smithy.Schema, v int16) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		enc.Key(s.ID.Member).Short(v)
	case *Array:
		enc.Value().Short(v)
	case Value:
		enc.Short(v)
		ss.head.Pop()
	default:
		ss.root.Value.Short(v)
	}
}

func (ss *ShapeSerializer) WriteInt32(s *smithy.Schema, v int32) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		enc.Key(s.ID.Member).Integer(v)
	case *Array:
		enc.Value().Integer(v)
	case Value:
		enc.Integer(v)
		ss.head.Pop()
	default:
		ss.root.Value.Integer(v)
	}
}

func (ss *ShapeSerializer) WriteInt64(s *smithy.Schema, v int64) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		enc.Key(s.ID.Member).Long(v)
	case *Array:
		enc.Value().Long(v)
	case Value:
		enc.Long(v)
		ss.head.Pop()
	default:
		ss.root.Value.Long(v)
	}
}

func (ss *ShapeSerializer) WriteFloat32(s *smithy.Schema, v float32) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		enc.Key(s.ID.Member).Float(v)
	case *Array:
		enc.Value().Float(v)
	case Value:
		enc.Float(v)
		ss.head.Pop()
	default:
		ss.root.Value.Float(v)
	}
}

func (ss *ShapeSerializer) WriteFloat64(s *smithy.Schema, v float64) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		enc.Key(s.ID.Member).Double(v)
	case *Array:
		enc.Value().Double(v)
	case Value:
		enc.Double(v)
		ss.head.Pop()
	default:
		ss.root.Value.Double(v)
	}
}

func (ss *ShapeSerializer) WriteString(s *smithy.Schema, v string) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		enc.Key(s.ID.Member).String(v)
	case *Array:
		enc.Value().String(v)
	case Value:
		enc.String(v)
		ss.head.Pop()
	default:
		ss.root.Value.String(v)
	}
}

func (ss *ShapeSerializer) WriteBlob(s *smithy.Schema, v []byte) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		enc.Key(s.ID.Member).Base64EncodeBytes(v)
	case *Array:
		enc.Value().Base64EncodeBytes(v)
	case Value:
		enc.Base64EncodeBytes(v)
		ss.head.Pop()
	default:
		ss.root.Value.Base64EncodeBytes(v)
	}
}

func (ss *ShapeSerializer) WriteBigInteger(s *smithy.Schema, v big.Int) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		enc.Key(s.ID.Member).BigInteger(v)
	case *Array:
		enc.Value().BigInteger(v)
	case Value:
		enc.BigInteger(v)
		ss.head.Pop()
	default:
		ss.root.Value.BigInteger(v)
	}
}

func (ss *ShapeSerializer) WriteBigDecimal(s *smithy.Schema, v big.Float) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		enc.Key(s.ID.Member).BigDecimal(v)
	case *Array:
		enc.Value().BigDecimal(v)
	case Value:
		enc.BigDecimal(v)
		ss.head.Pop()
	default:
		ss.root.Value.BigDecimal(v)
	}
}

func (ss *ShapeSerializer) WriteNil(s *smithy.Schema) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		enc.Key(s.ID.Member).Null()
	case *Array:
		enc.Value().Null()
	case Value:
		enc.Null()
		ss.head.Pop()
	default:
		ss.root.Value.Null()
	}
}

// WriteTime renders v per the member's smithy.api#timestampFormat trait,
// defaulting to epoch-seconds as AWS JSON protocols do for payload values.
func (ss *ShapeSerializer) WriteTime(s *smithy.Schema, v time.Time) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		writeJSONTime(enc.Key(s.ID.Member), s, v)
	case *Array:
		writeJSONTime(enc.Value(), s, v)
	case Value:
		writeJSONTime(enc, s, v)
		ss.head.Pop()
	default:
		writeJSONTime(ss.root.Value, s, v)
	}
}

func writeJSONTime(v Value, s *smithy.Schema, t time.Time) {
	tf, ok := smithy.SchemaTrait[*traits.TimestampFormat](s)
	if !ok {
		v.Double(epochSecondsWithFraction(t))
		return
	}

	switch tf.Format {
	case "http-date":
		v.String(t.Format(time.RFC1123))
	case "date-time":
		v.String(t.Format(time.RFC3339))
	default:
		v.Double(epochSecondsWithFraction(t))
	}
}

func epochSecondsWithFraction(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// WriteDocument hands off to the document's own kind-dispatching
// serialization, which in turn calls back into this serializer's Write
// methods the same as any other shape.
func (ss *ShapeSerializer) WriteDocument(s *smithy.Schema, v smithy.Document) {
	v.Serialize(s, ss)
}

func (ss *ShapeSerializer) WriteStruct(s *smithy.Schema, v smithy.Serializable) {
	ss.WriteMap(s)
	v.Serialize(ss)
	ss.CloseMap()
}

func (ss *ShapeSerializer) WriteUnion(s, variant *smithy.Schema, v smithy.Serializable) {
	ss.WriteMap(s)
	v.Serialize(ss)
	ss.CloseMap()
}

func (ss *ShapeSerializer) WriteList(s *smithy.Schema) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		ss.head.Push(enc.Key(s.ID.Member).Array())
	case *Array:
		ss.head.Push(enc.Value().Array())
	case Value:
		ss.head.Push(enc.Array())
	default:
		ss.head.Push(ss.root.Array())
	}
}

func (ss *ShapeSerializer) CloseList() {
	if enc, ok := ss.head.Top().(*Array); ok {
		enc.Close()
		ss.head.Pop()

		// if this array is the value of a map/struct key, pop that key
		// encoder too -- WriteKey/Key push it but only scalar writes
		// deterministically pop it themselves
		if _, ok := ss.head.Top().(Value); ok {
			ss.head.Pop()
		}
	}
}

func (ss *ShapeSerializer) WriteMap(s *smithy.Schema) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		ss.head.Push(enc.Key(s.ID.Member).Object())
	case *Array:
		ss.head.Push(enc.Value().Object())
	case Value:
		ss.head.Push(enc.Object())
	default:
		ss.head.Push(ss.root.Object())
	}
}

func (ss *ShapeSerializer) WriteKey(s *smithy.Schema, key string) {
	if enc, ok := ss.head.Top().(*Object); ok {
		ss.head.Push(enc.Key(key))
	}
}

func (ss *ShapeSerializer) CloseMap() {
	if enc, ok := ss.head.Top().(*Object); ok {
		enc.Close()
		ss.head.Pop()

		// if this is a map _inside_ a map, pop off the underlying key encoder
		// as well (for scalar values that's not necessarily since we can
		// deterministically do it there)
		if _, ok := ss.head.Top().(Value); ok {
			ss.head.Pop()
		}
	}
}

// WriteDataStream drains r and writes it as a base64-encoded blob, the
// same representation a non-streaming blob member gets. JSON protocols
// have no separate wire representation for a streaming payload.
func (ss *ShapeSerializer) WriteDataStream(s *smithy.Schema, r io.Reader) {
	p, err := io.ReadAll(r)
	if err != nil {
		panic(err)
	}
	ss.WriteBlob(s, p)
}

// WriteEventStream is unsupported: event-stream members are routed
// directly to the transport by the HTTP binding engine and never reach
// the JSON body serializer.
func (ss *ShapeSerializer) WriteEventStream(s *smithy.Schema, fn func(smithy.EventStreamWriter)) {
	panic("json: event streams are not carried in the JSON body")
}
