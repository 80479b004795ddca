package httpbinding

import (
	"net/http"
	"time"

	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/traits"
)

// ResponseBinder is the top-level ShapeDeserializer for HTTP-bound
// protocols' response side. It is the dual of RequestBinder: headers,
// prefix-header maps, and the status code read through their narrow
// projections, everything else reads through Body, a deserializer over
// the response payload supplied by the operation's codec.
type ResponseBinder struct {
	Header http.Header
	Status int
	Body   smithy.ShapeDeserializer

	open []smithy.ShapeDeserializer
}

func NewResponseBinder(header http.Header, status int, body smithy.ShapeDeserializer) *ResponseBinder {
	return &ResponseBinder{Header: header, Status: status, Body: body}
}

func (d *ResponseBinder) top() smithy.ShapeDeserializer {
	if len(d.open) == 0 {
		return nil
	}
	return d.open[len(d.open)-1]
}

// boundOrTop resolves the deserializer a call should go to, preferring
// an already-open map projection over a fresh trait lookup.
func (d *ResponseBinder) boundOrTop(schema *smithy.Schema) smithy.ShapeDeserializer {
	if top := d.top(); top != nil {
		return top
	}
	return d.bound(schema)
}

func (d *ResponseBinder) bound(schema *smithy.Schema) smithy.ShapeDeserializer {
	if schema == nil {
		return nil
	}
	if h, ok := smithy.SchemaTrait[*traits.HTTPHeader](schema); ok {
		return NewHTTPHeaderDeserializer(d.Header, h.Name)
	}
	if p, ok := smithy.SchemaTrait[*traits.HTTPPrefixHeaders](schema); ok {
		return NewHTTPPrefixHeadersDeserializer(d.Header, p.Prefix)
	}
	if _, ok := smithy.SchemaTrait[*traits.HTTPResponseCode](schema); ok {
		return NewStatusCodeDeserializer(d.Status)
	}
	return nil
}

func (d *ResponseBinder) ReadInt8(schema *smithy.Schema, out *int8) error {
	if b := d.boundOrTop(schema); b != nil {
		var v int32
		if err := b.ReadInt32(schema, &v); err != nil {
			return err
		}
		*out = int8(v)
		return nil
	}
	return d.Body.ReadInt8(schema, out)
}
func (d *ResponseBinder) ReadInt16(schema *smithy.Schema, out *int16) error {
	if b := d.boundOrTop(schema); b != nil {
		var v int32
		if err := b.ReadInt32(schema, &v); err != nil {
			return err
		}
		*out = int16(v)
		return nil
	}
	return d.Body.ReadInt16(schema, out)
}
func (d *ResponseBinder) ReadInt32(schema *smithy.Schema, out *int32) error {
	if top := d.top(); top != nil {
		return top.ReadInt32(schema, out)
	}
	if b := d.bound(schema); b != nil {
		return b.ReadInt32(schema, out)
	}
	return d.Body.ReadInt32(schema, out)
}
func (d *ResponseBinder) ReadInt64(schema *smithy.Schema, out *int64) error {
	if top := d.top(); top != nil {
		return top.ReadInt64(schema, out)
	}
	if b := d.bound(schema); b != nil {
		return b.ReadInt64(schema, out)
	}
	return d.Body.ReadInt64(schema, out)
}

func (d *ResponseBinder) ReadInt8Ptr(schema *smithy.Schema, out **int8) error {
	return d.Body.ReadInt8Ptr(schema, out)
}
func (d *ResponseBinder) ReadInt16Ptr(schema *smithy.Schema, out **int16) error {
	return d.Body.ReadInt16Ptr(schema, out)
}
func (d *ResponseBinder) ReadInt32Ptr(schema *smithy.Schema, out **int32) error {
	return d.Body.ReadInt32Ptr(schema, out)
}
func (d *ResponseBinder) ReadInt64Ptr(schema *smithy.Schema, out **int64) error {
	return d.Body.ReadInt64Ptr(schema, out)
}

func (d *ResponseBinder) ReadFloat32(schema *smithy.Schema, out *float32) error {
	if b := d.bound(schema); b != nil {
		var v float64
		if err := b.ReadFloat64(schema, &v); err != nil {
			return err
		}
		*out = float32(v)
		return nil
	}
	return d.Body.ReadFloat32(schema, out)
}
func (d *ResponseBinder) ReadFloat64(schema *smithy.Schema, out *float64) error {
	if b := d.bound(schema); b != nil {
		return b.ReadFloat64(schema, out)
	}
	return d.Body.ReadFloat64(schema, out)
}
func (d *ResponseBinder) ReadFloat32Ptr(schema *smithy.Schema, out **float32) error {
	return d.Body.ReadFloat32Ptr(schema, out)
}
func (d *ResponseBinder) ReadFloat64Ptr(schema *smithy.Schema, out **float64) error {
	return d.Body.ReadFloat64Ptr(schema, out)
}

func (d *ResponseBinder) ReadBool(schema *smithy.Schema, out *bool) error {
	if b := d.bound(schema); b != nil {
		return b.ReadBool(schema, out)
	}
	return d.Body.ReadBool(schema, out)
}
func (d *ResponseBinder) ReadBoolPtr(schema *smithy.Schema, out **bool) error {
	return d.Body.ReadBoolPtr(schema, out)
}

func (d *ResponseBinder) ReadString(schema *smithy.Schema, out *string) error {
	if top := d.top(); top != nil {
		return top.ReadString(schema, out)
	}
	if b := d.bound(schema); b != nil {
		return b.ReadString(schema, out)
	}
	return d.Body.ReadString(schema, out)
}
func (d *ResponseBinder) ReadStringPtr(schema *smithy.Schema, out **string) error {
	if b := d.bound(schema); b != nil {
		return b.ReadStringPtr(schema, out)
	}
	return d.Body.ReadStringPtr(schema, out)
}

func (d *ResponseBinder) ReadTime(schema *smithy.Schema, out *time.Time) error {
	if b := d.bound(schema); b != nil {
		return b.ReadTime(schema, out)
	}
	return d.Body.ReadTime(schema, out)
}
func (d *ResponseBinder) ReadTimePtr(schema *smithy.Schema, out **time.Time) error {
	return d.Body.ReadTimePtr(schema, out)
}

func (d *ResponseBinder) ReadBlob(schema *smithy.Schema, out *[]byte) error {
	if b := d.bound(schema); b != nil {
		return b.ReadBlob(schema, out)
	}
	return d.Body.ReadBlob(schema, out)
}

func (d *ResponseBinder) ReadList(schema *smithy.Schema) error { return d.Body.ReadList(schema) }
func (d *ResponseBinder) ReadListItem(schema *smithy.Schema) (bool, error) {
	return d.Body.ReadListItem(schema)
}

func (d *ResponseBinder) ReadMap(schema *smithy.Schema) error {
	if top := d.top(); top != nil {
		return top.ReadMap(schema)
	}
	if b := d.bound(schema); b != nil {
		if err := b.ReadMap(schema); err != nil {
			return err
		}
		d.open = append(d.open, b)
		return nil
	}
	return d.Body.ReadMap(schema)
}
func (d *ResponseBinder) ReadMapKey(schema *smithy.Schema) (string, bool, error) {
	if top := d.top(); top != nil {
		key, more, err := top.ReadMapKey(schema)
		if !more {
			d.open = d.open[:len(d.open)-1]
		}
		return key, more, err
	}
	return d.Body.ReadMapKey(schema)
}

func (d *ResponseBinder) ReadStruct(schema *smithy.Schema) error { return d.Body.ReadStruct(schema) }
func (d *ResponseBinder) ReadStructMember() (*smithy.Schema, error) {
	return d.Body.ReadStructMember()
}

func (d *ResponseBinder) ReadUnion(schema *smithy.Schema) (*smithy.Schema, error) {
	return d.Body.ReadUnion(schema)
}

func (d *ResponseBinder) ReadDocument(schema *smithy.Schema, out *smithy.Document) error {
	return d.Body.ReadDocument(schema, out)
}

var _ smithy.ShapeDeserializer = (*ResponseBinder)(nil)
