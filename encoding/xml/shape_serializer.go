package xml

import (
	"encoding/base64"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/smithykit/runtime"
	"github.com/smithykit/runtime/traits"
	xmlenc "github.com/smithykit/runtime/xml"
)

// ShapeSerializer implements marshaling of Smithy shapes to XML.
type ShapeSerializer struct {
	root *xmlenc.Encoder
	head stack
}

var _ smithy.ShapeSerializer = (*ShapeSerializer)(nil)

func (ss *ShapeSerializer) Bytes() []byte {
	return ss.root.Bytes()
}

// structFrame tracks a structure (or union) currently being written. The
// element's start tag is held open (unflushed) until either an attribute
// member appends to it or a non-attribute member forces it open via
// object(), so that xmlAttribute members always land on the parent's own
// tag regardless of member declaration order.
type structFrame struct {
	value xmlenc.Value
	obj   *xmlenc.Object
}

func (sf *structFrame) object() *xmlenc.Object {
	if sf.obj == nil {
		sf.obj = sf.value.NestedElement()
	}
	return sf.obj
}

// xmlMapFrame tracks a map currently being written, between WriteMap and
// CloseMap.
type xmlMapFrame struct {
	m *xmlenc.Map
}

// xmlMapEntryFrame tracks an open map entry between WriteKey (which writes
// the entry's <key> child immediately) and the subsequent Write call for
// its value.
type xmlMapEntryFrame struct {
	entry *xmlenc.Object
}

// containerTarget resolves the Value a struct/list/map member should open
// its own start tag against, given the serializer's current position. It
// does not pop the frame it finds: a leftover Value or xmlMapEntryFrame is
// cleaned up by closeTrailing once the new container itself closes.
func (ss *ShapeSerializer) containerTarget(s *smithy.Schema) xmlenc.Value {
	switch enc := ss.head.Top().(type) {
	case *structFrame:
		return enc.object().Key(elementName(s), nil)
	case *xmlenc.Array:
		return enc.Member()
	case xmlenc.Value:
		return enc
	case *xmlMapEntryFrame:
		return enc.entry.Key(elementName(s), nil)
	default:
		return ss.root.RootElement(elementName(s), nil)
	}
}

func (ss *ShapeSerializer) closeTrailing() {
	switch enc := ss.head.Top().(type) {
	case xmlenc.Value:
		ss.head.Pop()
	case *xmlMapEntryFrame:
		enc.entry.Close()
		ss.head.Pop()
	}
}

// writeLeaf writes a scalar member, dispatching on the current container:
// a structure member marked xmlAttribute is appended to the parent's start
// tag via attrText, everything else becomes a child element via write.
func (ss *ShapeSerializer) writeLeaf(s *smithy.Schema, write func(xmlenc.Value), attrText func() string) {
	switch enc := ss.head.Top().(type) {
	case *structFrame:
		if isAttribute(s) {
			enc.value.AddAttr(xmlenc.Attr{Name: xmlenc.Name{Local: elementName(s)}, Value: attrText()})
			return
		}
		write(enc.object().Key(elementName(s), nil))
	case *xmlenc.Array:
		write(enc.Member())
	case xmlenc.Value:
		write(enc)
		ss.head.Pop()
	case *xmlMapEntryFrame:
		write(enc.entry.Key(elementName(s), nil))
		enc.entry.Close()
		ss.head.Pop()
	default:
		write(ss.root.RootElement(elementName(s), nil))
	}
}

func (ss *ShapeSerializer) WriteInt8(s *smithy.Schema, v int8) {
	ss.writeLeaf(s, func(val xmlenc.Value) { val.Byte(v) }, func() string { return strconv.FormatInt(int64(v), 10) })
}

func (ss *ShapeSerializer) WriteInt16(s *smithy.Schema, v int16) {
	ss.writeLeaf(s, func(val xmlenc.Value) { val.Short(v) }, func() string { return strconv.FormatInt(int64(v), 10) })
}

func (ss *ShapeSerializer) WriteInt32(s *smithy.Schema, v int32) {
	ss.writeLeaf(s, func(val xmlenc.Value) { val.Integer(v) }, func() string { return strconv.FormatInt(int64(v), 10) })
}

func (ss *ShapeSerializer) WriteInt64(s *smithy.Schema, v int64) {
	ss.writeLeaf(s, func(val xmlenc.Value) { val.Long(v) }, func() string { return strconv.FormatInt(v, 10) })
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

func (ss *ShapeSerializer) WriteFloat32(s *smithy.Schema, v float32) {
	ss.writeLeaf(s, func(val xmlenc.Value) { val.Float(v) }, func() string { return strconv.FormatFloat(float64(v), 'g', -1, 32) })
}

func (ss *ShapeSerializer) WriteFloat64(s *smithy.Schema, v float64) {
	ss.writeLeaf(s, func(val xmlenc.Value) { val.Double(v) }, func() string { return strconv.FormatFloat(v, 'g', -1, 64) })
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

func (ss *ShapeSerializer) WriteBool(s *smithy.Schema, v bool) {
	ss.writeLeaf(s, func(val xmlenc.Value) { val.Boolean(v) }, func() string { return strconv.FormatBool(v) })
}

func (ss *ShapeSerializer) WriteBoolPtr(s *smithy.Schema, v *bool) {
	if v != nil {
		ss.WriteBool(s, *v)
	}
}

func (ss *ShapeSerializer) WriteString(s *smithy.Schema, v string) {
	ss.writeLeaf(s, func(val xmlenc.Value) { val.String(v) }, func() string { return v })
}

func (ss *ShapeSerializer) WriteStringPtr(s *smithy.Schema, v *string) {
	if v != nil {
		ss.WriteString(s, *v)
	}
}

func (ss *ShapeSerializer) WriteBigInteger(s *smithy.Schema, v big.Int) {
	ss.writeLeaf(s, func(val xmlenc.Value) { val.BigInteger(&v) }, func() string { return v.Text(10) })
}

func (ss *ShapeSerializer) WriteBigDecimal(s *smithy.Schema, v big.Float) {
	ss.writeLeaf(s, func(val xmlenc.Value) { val.BigDecimal(&v) }, func() string { return v.Text('e', -1) })
}

func (ss *ShapeSerializer) WriteBlob(s *smithy.Schema, v []byte) {
	ss.writeLeaf(s, func(val xmlenc.Value) { val.Base64EncodeBytes(v) }, func() string { return base64.StdEncoding.EncodeToString(v) })
}

// WriteTime renders v per the member's smithy.api#timestampFormat trait,
// defaulting to date-time as restXml protocols do for payload values.
func (ss *ShapeSerializer) WriteTime(s *smithy.Schema, v time.Time) {
	ss.writeLeaf(s, func(val xmlenc.Value) { writeXMLTime(val, s, v) }, func() string { return formatXMLTime(s, v) })
}

func (ss *ShapeSerializer) WriteTimePtr(s *smithy.Schema, v *time.Time) {
	if v != nil {
		ss.WriteTime(s, *v)
	}
}

func formatXMLTime(s *smithy.Schema, t time.Time) string {
	format := "date-time"
	if tf, ok := smithy.SchemaTrait[*traits.TimestampFormat](s); ok {
		format = tf.Format
	}

	switch format {
	case "http-date":
		return t.Format(time.RFC1123)
	case "epoch-seconds":
		return strconv.FormatFloat(float64(t.UnixNano())/1e9, 'f', -1, 64)
	default:
		return t.Format(time.RFC3339)
	}
}

func writeXMLTime(val xmlenc.Value, s *smithy.Schema, t time.Time) {
	val.String(formatXMLTime(s, t))
}

func (ss *ShapeSerializer) WriteNil(s *smithy.Schema) {
	ss.writeLeaf(s, func(val xmlenc.Value) { val.Null() }, func() string { return "" })
}

// WriteDocument hands off to the document's own kind-dispatching
// serialization, which calls back into this serializer the same as any
// other shape.
func (ss *ShapeSerializer) WriteDocument(s *smithy.Schema, v smithy.Document) {
	v.Serialize(s, ss)
}

func (ss *ShapeSerializer) WriteStruct(s *smithy.Schema, v smithy.Serializable) {
	val := ss.containerTarget(s)
	if ns := namespaceAttr(s); ns != nil {
		val.AddAttr(*ns)
	}

	sf := &structFrame{value: val}
	ss.head.Push(sf)
	v.Serialize(ss)
	ss.head.Pop()

	if sf.obj != nil {
		sf.obj.Close()
	} else {
		// no child element was ever written (an empty structure, or one
		// whose only members are attributes) -- still emit the tag.
		val.Null()
	}

	ss.closeTrailing()
}

// WriteUnion renders the union the same way as a structure: a wrapper
// element named for the union shape containing a single child element for
// the active variant.
func (ss *ShapeSerializer) WriteUnion(s, variant *smithy.Schema, v smithy.Serializable) {
	ss.WriteStruct(s, v)
}

func (ss *ShapeSerializer) WriteList(s *smithy.Schema) {
	val := ss.containerTarget(s)
	if isFlattened(s) {
		ss.head.Push(val.FlattenedArray())
		return
	}
	ss.head.Push(val.ArrayWithCustomName(listMemberName(s)))
}

func (ss *ShapeSerializer) CloseList() {
	if a, ok := ss.head.Top().(*xmlenc.Array); ok {
		a.Close()
		ss.head.Pop()
		ss.closeTrailing()
	}
}

func (ss *ShapeSerializer) WriteMap(s *smithy.Schema) {
	val := ss.containerTarget(s)
	var m *xmlenc.Map
	if isFlattened(s) {
		m = val.FlattenedMap()
	} else {
		m = val.Map()
	}
	ss.head.Push(&xmlMapFrame{m: m})
}

func (ss *ShapeSerializer) WriteKey(s *smithy.Schema, key string) {
	mf, ok := ss.head.Top().(*xmlMapFrame)
	if !ok {
		return
	}

	entry := mf.m.Entry()
	entry.Key(elementName(s), nil).String(key)
	ss.head.Push(&xmlMapEntryFrame{entry: entry})
}

func (ss *ShapeSerializer) CloseMap() {
	if mf, ok := ss.head.Top().(*xmlMapFrame); ok {
		mf.m.Close()
		ss.head.Pop()
		ss.closeTrailing()
	}
}

// WriteDataStream drains r and writes it as a base64-encoded blob, the same
// representation a non-streaming blob member gets. XML protocols have no
// separate wire representation for a streaming payload embedded in a body.
func (ss *ShapeSerializer) WriteDataStream(s *smithy.Schema, r io.Reader) {
	p, err := io.ReadAll(r)
	if err != nil {
		panic(err)
	}
	ss.WriteBlob(s, p)
}

// WriteEventStream is unsupported: event-stream members are routed
// directly to the transport by the HTTP binding engine and never reach the
// XML body serializer.
func (ss *ShapeSerializer) WriteEventStream(s *smithy.Schema, fn func(smithy.EventStreamWriter)) {
	panic("xml: event streams are not carried in the XML body")
}
