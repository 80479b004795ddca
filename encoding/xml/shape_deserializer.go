package xml

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/smithykit/runtime"
	"github.com/smithykit/runtime/traits"
)

// ShapeDeserializer implements unmarshaling of XML into Smithy shapes. It
// tokenizes with the standard library's encoding/xml.Decoder -- the same
// approach xml_utils.go already uses for error-envelope parsing -- rather
// than building its own tokenizer, since stdlib tokenization is orthogonal
// to the schema-driven element/attribute/flatten decisions this type makes.
type ShapeDeserializer struct {
	dec *xml.Decoder

	peeked  xml.Token
	hasPeek bool

	// pendingStart is the start element of a value already identified by
	// the enclosing container (a struct member, list item, or map
	// entry/value) but not yet consumed by the Read call that will
	// produce its Go value.
	pendingStart *xml.StartElement

	head stack
}

func NewShapeDeserializer(p []byte) *ShapeDeserializer {
	return &ShapeDeserializer{dec: xml.NewDecoder(bytes.NewReader(p))}
}

var _ smithy.ShapeDeserializer = (*ShapeDeserializer)(nil)

func (d *ShapeDeserializer) next() (xml.Token, error) {
	if d.hasPeek {
		d.hasPeek = false
		tok := d.peeked
		d.peeked = nil
		return tok, nil
	}
	return d.dec.Token()
}

func (d *ShapeDeserializer) peek() (xml.Token, error) {
	if !d.hasPeek {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}
		d.peeked = tok
		d.hasPeek = true
	}
	return d.peeked, nil
}

// nextSignificant returns the next StartElement or EndElement, skipping
// character data, comments, and processing instructions.
func (d *ShapeDeserializer) nextSignificant() (xml.Token, error) {
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		switch tok.(type) {
		case xml.StartElement, xml.EndElement:
			return tok, nil
		}
	}
}

func (d *ShapeDeserializer) peekSignificant() (xml.Token, error) {
	for {
		tok, err := d.peek()
		if err != nil {
			return nil, err
		}
		switch tok.(type) {
		case xml.StartElement, xml.EndElement:
			return tok, nil
		}
		// consume the insignificant token and keep peeking
		if _, err := d.next(); err != nil {
			return nil, err
		}
	}
}

// openValue returns the start element already open for the value about to
// be read: either one a container identified for us (pendingStart) or, at
// the root, the next element on the stream.
func (d *ShapeDeserializer) openValue() (xml.StartElement, error) {
	if d.pendingStart != nil {
		se := *d.pendingStart
		d.pendingStart = nil
		return se, nil
	}

	tok, err := d.nextSignificant()
	if err != nil {
		return xml.StartElement{}, err
	}
	se, ok := tok.(xml.StartElement)
	if !ok {
		return xml.StartElement{}, fmt.Errorf("expected start element, got %#v", tok)
	}
	return se, nil
}

// readText reads character data up to (and including) the matching end
// element of an already-open leaf value.
func (d *ShapeDeserializer) readText() (string, error) {
	var buf bytes.Buffer
	for {
		tok, err := d.next()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			return buf.String(), nil
		}
	}
}

func attrValue(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// readScalarText returns the text of the member s, either from the
// parent's attribute set (when s is xmlAttribute) or from its own element.
func (d *ShapeDeserializer) readScalarText(s *smithy.Schema) (string, error) {
	if isAttribute(s) {
		if sf, ok := d.head.Top().(*structCursor); ok {
			v, _ := attrValue(sf.start, elementName(s))
			return v, nil
		}
	}

	if _, err := d.openValue(); err != nil {
		return "", err
	}
	return d.readText()
}

func (d *ShapeDeserializer) ReadInt8(s *smithy.Schema, v *int8) error {
	n, err := d.readInt(s)
	*v = int8(n)
	return err
}

func (d *ShapeDeserializer) ReadInt16(s *smithy.Schema, v *int16) error {
	n, err := d.readInt(s)
	*v = int16(n)
	return err
}

func (d *ShapeDeserializer) ReadInt32(s *smithy.Schema, v *int32) error {
	n, err := d.readInt(s)
	*v = int32(n)
	return err
}

func (d *ShapeDeserializer) ReadInt64(s *smithy.Schema, v *int64) error {
	n, err := d.readInt(s)
	*v = n
	return err
}

func (d *ShapeDeserializer) readInt(s *smithy.Schema) (int64, error) {
	txt, err := d.readScalarText(s)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(txt, 10, 64)
}

func (d *ShapeDeserializer) ReadInt8Ptr(s *smithy.Schema, v **int8) error {
	if *v == nil {
		*v = new(int8)
	}
	return d.ReadInt8(s, *v)
}

func (d *ShapeDeserializer) ReadInt16Ptr(s *smithy.Schema, v **int16) error {
	if *v == nil {
		*v = new(int16)
	}
	return d.ReadInt16(s, *v)
}

func (d *ShapeDeserializer) ReadInt32Ptr(s *smithy.Schema, v **int32) error {
	if *v == nil {
		*v = new(int32)
	}
	return d.ReadInt32(s, *v)
}

func (d *ShapeDeserializer) ReadInt64Ptr(s *smithy.Schema, v **int64) error {
	if *v == nil {
		*v = new(int64)
	}
	return d.ReadInt64(s, *v)
}

func (d *ShapeDeserializer) ReadFloat32(s *smithy.Schema, v *float32) error {
	n, err := d.readFloat(s)
	*v = float32(n)
	return err
}

func (d *ShapeDeserializer) ReadFloat64(s *smithy.Schema, v *float64) error {
	n, err := d.readFloat(s)
	*v = n
	return err
}

func (d *ShapeDeserializer) readFloat(s *smithy.Schema) (float64, error) {
	txt, err := d.readScalarText(s)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(txt, 64)
}

func (d *ShapeDeserializer) ReadFloat32Ptr(s *smithy.Schema, v **float32) error {
	if *v == nil {
		*v = new(float32)
	}
	return d.ReadFloat32(s, *v)
}

func (d *ShapeDeserializer) ReadFloat64Ptr(s *smithy.Schema, v **float64) error {
	if *v == nil {
		*v = new(float64)
	}
	return d.ReadFloat64(s, *v)
}

func (d *ShapeDeserializer) ReadBool(s *smithy.Schema, v *bool) error {
	txt, err := d.readScalarText(s)
	if err != nil {
		return err
	}
	b, err := strconv.ParseBool(txt)
	*v = b
	return err
}

func (d *ShapeDeserializer) ReadBoolPtr(s *smithy.Schema, v **bool) error {
	if *v == nil {
		*v = new(bool)
	}
	return d.ReadBool(s, *v)
}

func (d *ShapeDeserializer) ReadString(s *smithy.Schema, v *string) error {
	txt, err := d.readScalarText(s)
	*v = txt
	return err
}

func (d *ShapeDeserializer) ReadStringPtr(s *smithy.Schema, v **string) error {
	if *v == nil {
		*v = new(string)
	}
	return d.ReadString(s, *v)
}

func (d *ShapeDeserializer) ReadBlob(s *smithy.Schema, v *[]byte) error {
	txt, err := d.readScalarText(s)
	if err != nil {
		return err
	}
	decoded, err := base64.StdEncoding.DecodeString(txt)
	if err != nil {
		return fmt.Errorf("decode base64 blob: %w", err)
	}
	*v = decoded
	return nil
}

func (d *ShapeDeserializer) ReadBigInteger(s *smithy.Schema, v *big.Int) error {
	txt, err := d.readScalarText(s)
	if err != nil {
		return err
	}
	if _, ok := v.SetString(txt, 10); !ok {
		return fmt.Errorf("invalid big integer: %q", txt)
	}
	return nil
}

func (d *ShapeDeserializer) ReadBigDecimal(s *smithy.Schema, v *big.Float) error {
	txt, err := d.readScalarText(s)
	if err != nil {
		return err
	}
	if _, ok := v.SetString(txt); !ok {
		return fmt.Errorf("invalid big decimal: %q", txt)
	}
	return nil
}

// ReadTime parses v per the member's smithy.api#timestampFormat trait,
// defaulting to date-time as restXml protocols do for payload values.
func (d *ShapeDeserializer) ReadTime(s *smithy.Schema, v *time.Time) error {
	txt, err := d.readScalarText(s)
	if err != nil {
		return err
	}

	format := "date-time"
	if tf, ok := smithy.SchemaTrait[*traits.TimestampFormat](s); ok {
		format = tf.Format
	}

	switch format {
	case "http-date":
		parsed, err := time.Parse(time.RFC1123, txt)
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", txt, err)
		}
		*v = parsed
	case "epoch-seconds":
		f, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", txt, err)
		}
		sec := int64(f)
		nsec := int64((f - float64(sec)) * 1e9)
		*v = time.Unix(sec, nsec).UTC()
	default:
		parsed, err := time.Parse(time.RFC3339, txt)
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", txt, err)
		}
		*v = parsed
	}
	return nil
}

func (d *ShapeDeserializer) ReadTimePtr(s *smithy.Schema, v **time.Time) error {
	if *v == nil {
		*v = new(time.Time)
	}
	return d.ReadTime(s, *v)
}

// ReadDocument is unsupported: Smithy's XML protocols don't define a
// canonical document-shape wire representation the way JSON/CBOR do.
func (d *ShapeDeserializer) ReadDocument(s *smithy.Schema, v *smithy.Document) error {
	return fmt.Errorf("xml: document shapes are not supported")
}

type structCursor struct {
	schema *smithy.Schema
	start  xml.StartElement
	done   bool

	// attrQueue holds the struct's xmlAttribute members that are actually
	// present on start, returned by ReadStructMember before it falls
	// through to iterating child elements. Attribute members never
	// appear as children, so the generic iterate-children loop can't
	// discover them on its own.
	attrQueue []*smithy.Schema
}

func (d *ShapeDeserializer) ReadStruct(s *smithy.Schema) error {
	se, err := d.openValue()
	if err != nil {
		return err
	}

	var attrQueue []*smithy.Schema
	for _, m := range s.Members() {
		if isAttribute(m) {
			if _, ok := attrValue(se, elementName(m)); ok {
				attrQueue = append(attrQueue, m)
			}
		}
	}

	d.head.Push(&structCursor{schema: s, start: se, attrQueue: attrQueue})
	return nil
}

func (d *ShapeDeserializer) ReadStructMember() (*smithy.Schema, error) {
	sc, ok := d.head.Top().(*structCursor)
	if !ok {
		return nil, fmt.Errorf("ReadStructMember called without ReadStruct")
	}
	if sc.done {
		return nil, fmt.Errorf("ReadStructMember called after struct closed")
	}

	if len(sc.attrQueue) > 0 {
		member := sc.attrQueue[0]
		sc.attrQueue = sc.attrQueue[1:]
		return member, nil
	}

	for {
		tok, err := d.peekSignificant()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.EndElement:
			d.next()
			d.head.Pop()
			sc.done = true
			return nil, nil
		case xml.StartElement:
			member, ok := memberByElementName(sc.schema, t.Name.Local)
			if !ok {
				if err := d.skipElement(); err != nil {
					return nil, err
				}
				continue
			}
			if isAttribute(member) {
				// attribute members are read straight off sc.start, never
				// as children; readScalarText handles that via the
				// structCursor on top of the stack. Don't consume the
				// child start element here -- it belongs to a different
				// (non-attribute) member.
				return member, nil
			}
			d.next()
			d.pendingStart = &t
			return member, nil
		}
	}
}

// skipElement consumes a start element already peeked and everything up to
// its matching end element.
func (d *ShapeDeserializer) skipElement() error {
	if _, err := d.next(); err != nil { // the start element
		return err
	}
	depth := 1
	for depth > 0 {
		tok, err := d.next()
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

func (d *ShapeDeserializer) ReadUnion(s *smithy.Schema) (*smithy.Schema, error) {
	se, err := d.openValue()
	if err != nil {
		return nil, err
	}
	d.head.Push(&structCursor{schema: s, start: se})

	tok, err := d.peekSignificant()
	if err != nil {
		return nil, err
	}
	t, ok := tok.(xml.StartElement)
	if !ok {
		return nil, fmt.Errorf("union must have exactly one member")
	}
	member, ok := memberByElementName(s, t.Name.Local)
	if !ok {
		return nil, fmt.Errorf("unknown union variant: %s", t.Name.Local)
	}
	d.next()
	d.pendingStart = &t
	return member, nil
}

// listCursor tracks iteration over a list member. For a wrapped list,
// endName is the wrapper's own element name, closed by its EndElement. For
// a flattened list there is no wrapper; memberName is the field's own
// element name, repeated as a sibling for each item, and iteration simply
// stops at the first non-matching token (left unconsumed for the parent's
// own cursor to see).
type listCursor struct {
	flattened  bool
	memberName string
}

func (d *ShapeDeserializer) ReadList(s *smithy.Schema) error {
	if isFlattened(s) {
		d.head.Push(&listCursor{flattened: true, memberName: elementName(s)})
		return nil
	}

	if _, err := d.openValue(); err != nil {
		return err
	}
	d.head.Push(&listCursor{flattened: false, memberName: listMemberName(s)})
	return nil
}

func (d *ShapeDeserializer) ReadListItem(s *smithy.Schema) (bool, error) {
	lc, ok := d.head.Top().(*listCursor)
	if !ok {
		return false, fmt.Errorf("ReadListItem called without ReadList")
	}

	if lc.flattened && d.pendingStart != nil {
		return true, nil
	}

	tok, err := d.peekSignificant()
	if err != nil {
		if lc.flattened && err == io.EOF {
			// a flattened list with nothing enclosing it (e.g. the root
			// value) ends the document instead of producing an EndElement.
			d.head.Pop()
			return false, nil
		}
		return false, err
	}

	switch t := tok.(type) {
	case xml.EndElement:
		if lc.flattened {
			// belongs to the enclosing struct; leave it for
			// ReadStructMember.
			d.head.Pop()
			return false, nil
		}
		d.next()
		d.head.Pop()
		return false, nil
	case xml.StartElement:
		if t.Name.Local != lc.memberName {
			if lc.flattened {
				d.head.Pop()
				return false, nil
			}
			if err := d.skipElement(); err != nil {
				return false, err
			}
			return d.ReadListItem(s)
		}
		d.next()
		d.pendingStart = &t
		return true, nil
	}

	return false, fmt.Errorf("unexpected token in list")
}

// mapCursor tracks iteration over a map member, mirroring listCursor: a
// wrapped map's entries are `<entry>` children closed by the map's own
// EndElement, a flattened map's entries repeat the field's own element as
// siblings.
type mapCursor struct {
	flattened  bool
	entryName  string
	entryStart *xml.StartElement // set while inside an open entry
}

func (d *ShapeDeserializer) ReadMap(s *smithy.Schema) error {
	if isFlattened(s) {
		d.head.Push(&mapCursor{flattened: true, entryName: elementName(s)})
		return nil
	}

	if _, err := d.openValue(); err != nil {
		return err
	}
	d.head.Push(&mapCursor{flattened: false, entryName: "entry"})
	return nil
}

func (d *ShapeDeserializer) ReadMapKey(s *smithy.Schema) (string, bool, error) {
	mc, ok := d.head.Top().(*mapCursor)
	if !ok {
		return "", false, fmt.Errorf("ReadMapKey called without ReadMap")
	}

	if mc.entryStart != nil {
		// close out the previous entry's wrapper before moving on.
		if _, err := d.nextSignificant(); err != nil { // the entry's own EndElement
			return "", false, err
		}
		mc.entryStart = nil
	}

	var entryTok xml.StartElement
	if mc.flattened && d.pendingStart != nil {
		entryTok = *d.pendingStart
		d.pendingStart = nil
	} else {
		tok, err := d.peekSignificant()
		if err != nil {
			if mc.flattened && err == io.EOF {
				// a flattened map with nothing enclosing it (e.g. the root
				// value) ends the document instead of producing an
				// EndElement.
				d.head.Pop()
				return "", false, nil
			}
			return "", false, err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if mc.flattened {
				d.head.Pop()
				return "", false, nil
			}
			d.next()
			d.head.Pop()
			return "", false, nil
		case xml.StartElement:
			if mc.flattened && t.Name.Local != mc.entryName {
				d.head.Pop()
				return "", false, nil
			}
			d.next()
			entryTok = t
		}
	}

	mc.entryStart = &entryTok

	keyTok, err := d.nextSignificant()
	if err != nil {
		return "", false, err
	}
	kse, ok := keyTok.(xml.StartElement)
	if !ok {
		return "", false, fmt.Errorf("expected map key element, got %#v", keyTok)
	}
	key, err := d.readText()
	if err != nil {
		return "", false, err
	}

	valTok, err := d.nextSignificant()
	if err != nil {
		return "", false, err
	}
	vse, ok := valTok.(xml.StartElement)
	if !ok {
		return "", false, fmt.Errorf("expected map value element, got %#v", valTok)
	}
	d.pendingStart = &vse

	_ = kse
	return key, true, nil
}
