package cbor

import (
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/smithykit/runtime"
)

// ShapeSerializer implements marshaling of Smithy shapes to CBOR, building
// a cbor.Value tree that is flattened to bytes on Bytes().
//
// Unlike a streaming encoder, writes land in an in-memory tree because
// CBOR's container major types are always emitted with a definite length
// known up front -- see package doc.
type ShapeSerializer struct {
	root Value
	head stack
}

var _ smithy.ShapeSerializer = (*ShapeSerializer)(nil)

// mapFrame accumulates the entries of an open CBOR map.
type mapFrame struct {
	items map[string]Value
	place func(Value)
}

// listFrame accumulates the elements of an open CBOR list.
type listFrame struct {
	items []Value
	place func(Value)
}

// pendingKey marks that the next emitted value belongs under the given
// key of the mapFrame directly beneath it on the stack, set by WriteKey
// ahead of a map entry's value.
type pendingKey struct {
	key string
}

func (ss *ShapeSerializer) Bytes() []byte {
	if ss.root == nil {
		return nil
	}
	return Encode(ss.root)
}

// dest resolves where the next written value should land: a struct
// member slot (keyed by the schema's member name), a list element, an
// explicitly-keyed map entry, or the document root.
func (ss *ShapeSerializer) dest(s *smithy.Schema) func(Value) {
	switch top := ss.head.top().(type) {
	case *mapFrame:
		return func(v Value) { top.items[s.ID.Member] = v }
	case *listFrame:
		return func(v Value) { top.items = append(top.items, v) }
	case *pendingKey:
		ss.head.pop()
		if mf, ok := ss.head.top().(*mapFrame); ok {
			return func(v Value) { mf.items[top.key] = v }
		}
		return func(Value) {}
	default:
		return func(v Value) { ss.root = v }
	}
}

func (ss *ShapeSerializer) WriteInt8(s *smithy.Schema, v int8)   { ss.dest(s)(intValue(int64(v))) }
func (ss *ShapeSerializer) WriteInt16(s *smithy.Schema, v int16) { ss.dest(s)(intValue(int64(v))) }
func (ss *ShapeSerializer) WriteInt32(s *smithy.Schema, v int32) { ss.dest(s)(intValue(int64(v))) }
func (ss *ShapeSerializer) WriteInt64(s *smithy.Schema, v int64) { ss.dest(s)(intValue(v)) }

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

func (ss *ShapeSerializer) WriteFloat32(s *smithy.Schema, v float32) { ss.dest(s)(Float32(v)) }
func (ss *ShapeSerializer) WriteFloat64(s *smithy.Schema, v float64) { ss.dest(s)(Float64(v)) }

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

func (ss *ShapeSerializer) WriteBool(s *smithy.Schema, v bool) { ss.dest(s)(Bool(v)) }

func (ss *ShapeSerializer) WriteBoolPtr(s *smithy.Schema, v *bool) {
	if v != nil {
		ss.WriteBool(s, *v)
	}
}

func (ss *ShapeSerializer) WriteString(s *smithy.Schema, v string) { ss.dest(s)(String(v)) }

func (ss *ShapeSerializer) WriteStringPtr(s *smithy.Schema, v *string) {
	if v != nil {
		ss.WriteString(s, *v)
	}
}

func (ss *ShapeSerializer) WriteBlob(s *smithy.Schema, v []byte) {
	ss.dest(s)(Slice(append([]byte(nil), v...)))
}

func (ss *ShapeSerializer) WriteBigInteger(s *smithy.Schema, v big.Int) {
	ss.dest(s)(bigIntValue(&v))
}

func (ss *ShapeSerializer) WriteBigDecimal(s *smithy.Schema, v big.Float) {
	ss.dest(s)(bigFloatValue(&v))
}

func (ss *ShapeSerializer) WriteNil(s *smithy.Schema) { ss.dest(s)(&Nil{}) }

// WriteTime renders v as a tag-1 (epoch-based date/time) value per RFC
// 8949 section 3.4.2. The RPCv2-CBOR protocol has no alternative string
// representation, so smithy.api#timestampFormat is not consulted here.
func (ss *ShapeSerializer) WriteTime(s *smithy.Schema, v time.Time) {
	secs := float64(v.UnixNano()) / 1e9
	ss.dest(s)(&Tag{ID: 1, Value: Float64(secs)})
}

func (ss *ShapeSerializer) WriteTimePtr(s *smithy.Schema, v *time.Time) {
	if v != nil {
		ss.WriteTime(s, *v)
	}
}

// WriteDocument hands off to the document's own kind-dispatching
// serialization, which calls back into this serializer's Write methods.
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
	ss.head.push(&listFrame{place: ss.dest(s)})
}

func (ss *ShapeSerializer) CloseList() {
	f, ok := ss.head.pop().(*listFrame)
	if !ok {
		return
	}
	f.place(List(f.items))
}

func (ss *ShapeSerializer) WriteMap(s *smithy.Schema) {
	ss.head.push(&mapFrame{items: map[string]Value{}, place: ss.dest(s)})
}

func (ss *ShapeSerializer) WriteKey(s *smithy.Schema, key string) {
	if _, ok := ss.head.top().(*mapFrame); ok {
		ss.head.push(&pendingKey{key: key})
	}
}

func (ss *ShapeSerializer) CloseMap() {
	f, ok := ss.head.pop().(*mapFrame)
	if !ok {
		return
	}
	f.place(Map(f.items))
}

// WriteDataStream drains r and writes it as a byte-string value, the same
// representation a non-streaming blob member gets.
func (ss *ShapeSerializer) WriteDataStream(s *smithy.Schema, r io.Reader) {
	p, err := io.ReadAll(r)
	if err != nil {
		panic(err)
	}
	ss.WriteBlob(s, p)
}

// WriteEventStream is unsupported: event-stream members are routed
// directly to the transport by the HTTP binding engine and never reach
// the CBOR body serializer.
func (ss *ShapeSerializer) WriteEventStream(s *smithy.Schema, fn func(smithy.EventStreamWriter)) {
	panic("cbor: event streams are not carried in the CBOR body")
}

func intValue(n int64) Value {
	if n >= 0 {
		return Uint(n)
	}
	return NegInt(uint64(-n))
}

func bigIntValue(v *big.Int) Value {
	if v.IsInt64() {
		return intValue(v.Int64())
	}
	if v.Sign() < 0 {
		n := new(big.Int).Add(v, big.NewInt(1))
		n.Neg(n)
		return &Tag{ID: 3, Value: Slice(n.Bytes())}
	}
	return &Tag{ID: 2, Value: Slice(v.Bytes())}
}

// bigFloatValue renders v as an RFC 8949 section 3.4.4 decimal fraction
// (tag 4: a [exponent, mantissa] pair such that value = mantissa *
// 10^exponent), falling back to a plain integer when v has none.
func bigFloatValue(v *big.Float) Value {
	if i, accuracy := v.Int64(); accuracy == big.Exact {
		return intValue(i)
	}

	text := v.Text('e', -1)
	eIdx := strings.IndexByte(text, 'e')
	mantissaPart := text[:eIdx]
	exp, _ := strconv.Atoi(text[eIdx+1:])

	neg := strings.HasPrefix(mantissaPart, "-")
	if neg {
		mantissaPart = mantissaPart[1:]
	}

	digits := mantissaPart
	if dot := strings.IndexByte(mantissaPart, '.'); dot >= 0 {
		exp -= len(mantissaPart) - dot - 1
		digits = mantissaPart[:dot] + mantissaPart[dot+1:]
	}

	mantissa, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		mantissa = big.NewInt(0)
	}
	if neg {
		mantissa.Neg(mantissa)
	}

	return &Tag{ID: 4, Value: List{intValue(int64(exp)), bigIntValue(mantissa)}}
}
