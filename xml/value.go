package xml

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Value represents an XML Value type.
// XML Value types: Object, Array, Map, String, Number, Boolean, and Null.
type Value struct {
	w       writer
	scratch *[]byte

	startElement *StartElement
	endElement   *EndElement
}

// newValue returns a new Value encoder. Either element may be nil, for a
// Value whose container already wrote its own wrapping tag (e.g. a map
// entry's Object, or the document root).
func newValue(w writer, scratch *[]byte, startElement *StartElement, endElement *EndElement) Value {
	return Value{
		w:            w,
		scratch:      scratch,
		startElement: startElement,
		endElement:   endElement,
	}
}

func (jv Value) writeOpenTag() {
	if jv.startElement == nil {
		return
	}
	writeStartElement(jv.w, *jv.startElement)
}

func (jv Value) writeCloseTag() {
	writeEndElement(jv.w, jv.endElement)
}

// AddAttr appends attr to this value's start tag. It must be called before
// the value's first write (String, NestedElement, Array, Map, Null, ...),
// since the tag is flushed lazily on that first write. This is how a
// structure member marked xmlAttribute gets rendered onto its parent's
// start tag instead of as a child element.
func (jv Value) AddAttr(attr Attr) {
	if jv.startElement != nil {
		jv.startElement.Attr = append(jv.startElement.Attr, attr)
	}
}

// String encodes v as a XML string.
// It will auto close the xml element tag.
func (jv Value) String(v string) {
	jv.writeOpenTag()
	escapeString(jv.w, v)
	jv.writeCloseTag()
}

// Byte encodes v as a XML number
func (jv Value) Byte(v int8) {
	jv.Long(int64(v))
}

// Short encodes v as a XML number
func (jv Value) Short(v int16) {
	jv.Long(int64(v))
}

// Integer encodes v as a XML number
func (jv Value) Integer(v int32) {
	jv.Long(int64(v))
}

// Long encodes v as a XML number.
// It will auto close the xml element tag.
func (jv Value) Long(v int64) {
	jv.writeOpenTag()

	*jv.scratch = strconv.AppendInt((*jv.scratch)[:0], v, 10)
	jv.w.Write(*jv.scratch)

	jv.writeCloseTag()
}

// Float encodes v as a XML number.
// It will auto close the xml element tag.
func (jv Value) Float(v float32) {
	jv.writeOpenTag()
	jv.float(float64(v), 32)
	jv.writeCloseTag()
}

// Double encodes v as a XML number.
// It will auto close the xml element tag.
func (jv Value) Double(v float64) {
	jv.writeOpenTag()
	jv.float(v, 64)
	jv.writeCloseTag()
}

func (jv Value) float(v float64, bits int) {
	*jv.scratch = encodeFloat(v, bits)
	jv.w.Write(*jv.scratch)
}

// Boolean encodes v as a XML boolean.
// It will auto close the xml element tag.
func (jv Value) Boolean(v bool) {
	jv.writeOpenTag()

	*jv.scratch = strconv.AppendBool((*jv.scratch)[:0], v)
	jv.w.Write(*jv.scratch)

	jv.writeCloseTag()
}

// Base64EncodeBytes writes v as a base64 value in XML string.
// It will auto close the xml element tag.
func (jv Value) Base64EncodeBytes(v []byte) {
	jv.writeOpenTag()
	encodeByteSlice(jv.w, (*jv.scratch)[:0], v)
	jv.writeCloseTag()
}

// BigInteger encodes v big.Int as XML value.
// It will auto close the xml element tag.
func (jv Value) BigInteger(v *big.Int) {
	jv.writeOpenTag()
	jv.w.Write([]byte(v.Text(10)))
	jv.writeCloseTag()
}

// BigDecimal encodes v big.Float as XML value.
// It will auto close the xml element tag.
func (jv Value) BigDecimal(v *big.Float) {
	if i, accuracy := v.Int64(); accuracy == big.Exact {
		jv.Long(i)
		return
	}

	jv.writeOpenTag()
	jv.w.Write([]byte(v.Text('e', -1)))
	jv.writeCloseTag()
}

// Null encodes a null element tag like <root></root>.
// It will auto close the xml element tag.
func (jv Value) Null() {
	jv.writeOpenTag()
	jv.writeCloseTag()
}

// Write writes v directly to the xml document
// if escapeXMLText is set to true, write will escape text.
// It will auto close the xml element tag.
func (jv Value) Write(v []byte, escapeXMLText bool) {
	jv.writeOpenTag()

	if escapeXMLText {
		escapeText(jv.w, v)
	} else {
		jv.w.Write(v)
	}

	jv.writeCloseTag()
}

// NestedElement writes this value's start tag and returns an Object encoder
// for its children. The returned Object must be closed.
func (jv Value) NestedElement() *Object {
	jv.writeOpenTag()
	return newObject(jv.w, jv.scratch, jv.endElement)
}

// Array writes this value's start tag and returns an array encoder whose
// members are wrapped with a `<member>` element tag. The returned Array
// must be closed.
func (jv Value) Array() *Array {
	jv.writeOpenTag()
	return newArray(jv.w, jv.scratch, jv.endElement, arrayMemberWrapper)
}

// ArrayWithCustomName is like Array, but wraps each member with name
// instead of `member`.
//
// for eg, <someList><customName>entry1</customName></someList>
func (jv Value) ArrayWithCustomName(name string) *Array {
	jv.writeOpenTag()
	return newArray(jv.w, jv.scratch, jv.endElement, name)
}

// FlattenedArray returns a flattened array encoder. Unlike Array, it does
// not write a wrapping start tag up front -- each member repeats this
// value's own element instead -- and the returned Array's Close is a noOp.
//
// for eg,`<someList>entry1</someList><someList>entry2</someList>`.
func (jv Value) FlattenedArray() *Array {
	return newFlattenedArray(jv.w, jv.scratch, jv.startElement, jv.endElement)
}

// Map writes this value's start tag and returns a map encoder whose entries
// are wrapped with an `<entry>` element tag. The returned Map must be
// closed.
func (jv Value) Map() *Map {
	var start StartElement
	if jv.startElement != nil {
		start = *jv.startElement
	}
	return newMap(jv.w, jv.scratch, start)
}

// FlattenedMap returns a flattened map encoder. Unlike Map, each entry
// repeats this value's own element instead of an `<entry>` wrapper, and the
// returned Map's Close is a noOp.
//
// for eg, `<someMap><key>entryKey1</key><value>entryValue1</value></someMap>`.
func (jv Value) FlattenedMap() *Map {
	var start StartElement
	if jv.startElement != nil {
		start = *jv.startElement
	}
	return newFlattenedMap(jv.w, jv.scratch, start)
}

// Encodes a float value as per the xml stdlib xml encoder
func encodeFloat(v float64, bits int) []byte {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		panic(fmt.Sprintf("invalid float value: %s", strconv.FormatFloat(v, 'g', -1, bits)))
	}

	return []byte(strconv.FormatFloat(v, 'g', -1, bits))
}

// encodeByteSlice is modified copy of json encoder's encodeByteSlice.
// It is used to base64 encode a byte slice.
func encodeByteSlice(w writer, scratch []byte, v []byte) {
	if v == nil {
		return
	}

	encodedLen := base64.StdEncoding.EncodedLen(len(v))
	if encodedLen <= len(scratch) {
		// If the encoded bytes fit in scratch, avoid an extra
		// allocation and use the cheaper Encoding.Encode.
		dst := scratch[:encodedLen]
		base64.StdEncoding.Encode(dst, v)
		w.Write(dst)
	} else if encodedLen <= 1024 {
		dst := make([]byte, encodedLen)
		base64.StdEncoding.Encode(dst, v)
		w.Write(dst)
	} else {
		enc := base64.NewEncoder(base64.StdEncoding, w)
		enc.Write(v)
		enc.Close()
	}
}
