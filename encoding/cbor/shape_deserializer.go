package cbor

import (
	"fmt"
	"time"

	"github.com/smithykit/runtime"
)

// ShapeDeserializer implements unmarshaling of CBOR into Smithy shapes. The
// payload is decoded into a cbor.Value tree up front; Read calls navigate
// that tree rather than re-parsing bytes.
type ShapeDeserializer struct {
	cur  Value
	err  error
	head stack
}

var _ smithy.ShapeDeserializer = (*ShapeDeserializer)(nil)

// structCursor walks the members of a decoded Map being read as a
// structure, resolving each key against the struct's schema.
type structCursor struct {
	schema *smithy.Schema
	m      Map
	keys   []string
	idx    int
}

// mapIterCursor walks the entries of a decoded Map being read as a
// Smithy map, yielding raw string keys.
type mapIterCursor struct {
	m    Map
	keys []string
	idx  int
}

// listCursor walks the elements of a decoded List.
type listCursor struct {
	l   List
	idx int
}

func (d *ShapeDeserializer) ReadInt8(s *smithy.Schema, v *int8) error {
	n, err := d.readInt()
	*v = int8(n)
	return err
}

func (d *ShapeDeserializer) ReadInt16(s *smithy.Schema, v *int16) error {
	n, err := d.readInt()
	*v = int16(n)
	return err
}

func (d *ShapeDeserializer) ReadInt32(s *smithy.Schema, v *int32) error {
	n, err := d.readInt()
	*v = int32(n)
	return err
}

func (d *ShapeDeserializer) ReadInt64(s *smithy.Schema, v *int64) error {
	n, err := d.readInt()
	*v = n
	return err
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

func (d *ShapeDeserializer) readInt() (int64, error) {
	if d.err != nil {
		return 0, d.err
	}

	switch n := d.cur.(type) {
	case Uint:
		return int64(n), nil
	case NegInt:
		return -int64(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", d.cur)
	}
}

func (d *ShapeDeserializer) ReadFloat32(s *smithy.Schema, v *float32) error {
	n, err := d.readFloat()
	*v = float32(n)
	return err
}

func (d *ShapeDeserializer) ReadFloat64(s *smithy.Schema, v *float64) error {
	n, err := d.readFloat()
	*v = n
	return err
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

func (d *ShapeDeserializer) readFloat() (float64, error) {
	if d.err != nil {
		return 0, d.err
	}

	switch n := d.cur.(type) {
	case Float32:
		return float64(n), nil
	case Float64:
		return float64(n), nil
	case Uint:
		return float64(n), nil
	case NegInt:
		return -float64(n), nil
	default:
		return 0, fmt.Errorf("expected float, got %T", d.cur)
	}
}

func (d *ShapeDeserializer) ReadBool(s *smithy.Schema, v *bool) error {
	if d.err != nil {
		return d.err
	}

	b, ok := d.cur.(Bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", d.cur)
	}
	*v = bool(b)
	return nil
}

func (d *ShapeDeserializer) ReadBoolPtr(s *smithy.Schema, v **bool) error {
	if *v == nil {
		*v = new(bool)
	}
	return d.ReadBool(s, *v)
}

func (d *ShapeDeserializer) ReadString(s *smithy.Schema, v *string) error {
	if d.err != nil {
		return d.err
	}

	str, ok := d.cur.(String)
	if !ok {
		return fmt.Errorf("expected string, got %T", d.cur)
	}
	*v = string(str)
	return nil
}

func (d *ShapeDeserializer) ReadStringPtr(s *smithy.Schema, v **string) error {
	if *v == nil {
		*v = new(string)
	}
	return d.ReadString(s, *v)
}

func (d *ShapeDeserializer) ReadBlob(s *smithy.Schema, v *[]byte) error {
	if d.err != nil {
		return d.err
	}

	sl, ok := d.cur.(Slice)
	if !ok {
		return fmt.Errorf("expected byte string, got %T", d.cur)
	}
	*v = []byte(sl)
	return nil
}

func (d *ShapeDeserializer) ReadTime(s *smithy.Schema, v *time.Time) error {
	if d.err != nil {
		return d.err
	}

	t, ok := d.cur.(*Tag)
	if !ok || t.ID != 1 {
		return fmt.Errorf("expected tag 1 (timestamp), got %T", d.cur)
	}

	var secs float64
	switch n := t.Value.(type) {
	case Float64:
		secs = float64(n)
	case Float32:
		secs = float64(n)
	case Uint:
		secs = float64(n)
	case NegInt:
		secs = -float64(n)
	default:
		return fmt.Errorf("unexpected timestamp value type %T", t.Value)
	}

	whole := int64(secs)
	frac := secs - float64(whole)
	*v = time.Unix(whole, int64(frac*1e9)).UTC()
	return nil
}

func (d *ShapeDeserializer) ReadTimePtr(s *smithy.Schema, v **time.Time) error {
	if *v == nil {
		*v = new(time.Time)
	}
	return d.ReadTime(s, *v)
}

func (d *ShapeDeserializer) ReadList(s *smithy.Schema) error {
	if d.err != nil {
		return d.err
	}

	l, ok := d.cur.(List)
	if !ok {
		return fmt.Errorf("expected list, got %T", d.cur)
	}
	d.head.push(&listCursor{l: l})
	return nil
}

func (d *ShapeDeserializer) ReadListItem(s *smithy.Schema) (bool, error) {
	lc, ok := d.head.top().(*listCursor)
	if !ok {
		return false, fmt.Errorf("ReadListItem called without ReadList")
	}

	if lc.idx >= len(lc.l) {
		d.head.pop()
		return false, nil
	}

	d.cur = lc.l[lc.idx]
	lc.idx++
	return true, nil
}

func (d *ShapeDeserializer) ReadMap(s *smithy.Schema) error {
	if d.err != nil {
		return d.err
	}

	m, ok := d.cur.(Map)
	if !ok {
		return fmt.Errorf("expected map, got %T", d.cur)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	d.head.push(&mapIterCursor{m: m, keys: keys})
	return nil
}

func (d *ShapeDeserializer) ReadMapKey(s *smithy.Schema) (string, bool, error) {
	mc, ok := d.head.top().(*mapIterCursor)
	if !ok {
		return "", false, fmt.Errorf("ReadMapKey called without ReadMap")
	}

	if mc.idx >= len(mc.keys) {
		d.head.pop()
		return "", false, nil
	}

	key := mc.keys[mc.idx]
	mc.idx++
	d.cur = mc.m[key]
	return key, true, nil
}

func (d *ShapeDeserializer) ReadStruct(s *smithy.Schema) error {
	if d.err != nil {
		return d.err
	}

	m, ok := d.cur.(Map)
	if !ok {
		return fmt.Errorf("expected map for struct, got %T", d.cur)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	d.head.push(&structCursor{schema: s, m: m, keys: keys})
	return nil
}

func (d *ShapeDeserializer) ReadStructMember() (*smithy.Schema, error) {
	sc, ok := d.head.top().(*structCursor)
	if !ok {
		return nil, fmt.Errorf("ReadStructMember called without ReadStruct")
	}

	for sc.idx < len(sc.keys) {
		key := sc.keys[sc.idx]
		sc.idx++

		member, ok := sc.schema.MemberByName(key)
		if !ok {
			continue // unrecognized field, ignore
		}

		d.cur = sc.m[key]
		return member, nil
	}

	d.head.pop()
	return nil, nil
}

func (d *ShapeDeserializer) ReadUnion(s *smithy.Schema) (*smithy.Schema, error) {
	if d.err != nil {
		return nil, d.err
	}

	m, ok := d.cur.(Map)
	if !ok {
		return nil, fmt.Errorf("expected map for union, got %T", d.cur)
	}
	if len(m) != 1 {
		return nil, fmt.Errorf("union must have exactly one member")
	}

	for k, v := range m {
		member, ok := s.MemberByName(k)
		if !ok {
			return nil, fmt.Errorf("unknown union variant: %s", k)
		}
		d.cur = v
		return member, nil
	}

	panic("unreachable")
}

func (d *ShapeDeserializer) ReadDocument(s *smithy.Schema, v *smithy.Document) error {
	if d.err != nil {
		return d.err
	}

	doc, err := valueToDocument(d.cur)
	if err != nil {
		return err
	}
	*v = doc
	return nil
}
