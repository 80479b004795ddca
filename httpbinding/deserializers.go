package httpbinding

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"time"

	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/traits"
)

// HTTPHeaderDeserializer reads a single scalar member from the header
// named by the member's smithy.api#httpHeader trait.
type HTTPHeaderDeserializer struct {
	smithy.UnsupportedShapeDeserializer
	Value string
}

func NewHTTPHeaderDeserializer(header http.Header, name string) *HTTPHeaderDeserializer {
	return &HTTPHeaderDeserializer{
		UnsupportedShapeDeserializer: smithy.UnsupportedShapeDeserializer{Name: "HTTPHeaderDeserializer"},
		Value:                        header.Get(name),
	}
}

func (d *HTTPHeaderDeserializer) ReadString(_ *smithy.Schema, out *string) error {
	*out = d.Value
	return nil
}
func (d *HTTPHeaderDeserializer) ReadStringPtr(_ *smithy.Schema, out **string) error {
	if d.Value == "" {
		return nil
	}
	v := d.Value
	*out = &v
	return nil
}
func (d *HTTPHeaderDeserializer) ReadBool(s *smithy.Schema, out *bool) error {
	v, err := strconv.ParseBool(d.Value)
	if err != nil {
		return &smithy.SerializationError{Schema: s, Reason: "invalid boolean header value", Err: err}
	}
	*out = v
	return nil
}
func (d *HTTPHeaderDeserializer) ReadInt32(s *smithy.Schema, out *int32) error {
	v, err := strconv.ParseInt(d.Value, 10, 32)
	if err != nil {
		return &smithy.SerializationError{Schema: s, Reason: "invalid integer header value", Err: err}
	}
	*out = int32(v)
	return nil
}
func (d *HTTPHeaderDeserializer) ReadInt64(s *smithy.Schema, out *int64) error {
	v, err := strconv.ParseInt(d.Value, 10, 64)
	if err != nil {
		return &smithy.SerializationError{Schema: s, Reason: "invalid integer header value", Err: err}
	}
	*out = v
	return nil
}
func (d *HTTPHeaderDeserializer) ReadFloat64(s *smithy.Schema, out *float64) error {
	v, err := strconv.ParseFloat(d.Value, 64)
	if err != nil {
		return &smithy.SerializationError{Schema: s, Reason: "invalid float header value", Err: err}
	}
	*out = v
	return nil
}
func (d *HTTPHeaderDeserializer) ReadBlob(s *smithy.Schema, out *[]byte) error {
	v, err := base64.StdEncoding.DecodeString(d.Value)
	if err != nil {
		return &smithy.SerializationError{Schema: s, Reason: "invalid base64 header value", Err: err}
	}
	*out = v
	return nil
}
func (d *HTTPHeaderDeserializer) ReadTime(schema *smithy.Schema, out *time.Time) error {
	t, err := parseTime(schema, d.Value)
	if err != nil {
		return err
	}
	*out = t
	return nil
}

// HTTPPrefixHeadersDeserializer collects every header whose name carries
// the member's smithy.api#httpPrefixHeaders prefix into a string map,
// with the prefix stripped from each key.
type HTTPPrefixHeadersDeserializer struct {
	smithy.UnsupportedShapeDeserializer
	keys []string
	vals map[string]string
	idx  int
}

func NewHTTPPrefixHeadersDeserializer(header http.Header, prefix string) *HTTPPrefixHeadersDeserializer {
	d := &HTTPPrefixHeadersDeserializer{
		UnsupportedShapeDeserializer: smithy.UnsupportedShapeDeserializer{Name: "HTTPPrefixHeadersDeserializer"},
		vals:                         map[string]string{},
	}
	for name := range header {
		if len(name) < len(prefix) {
			continue
		}
		if !hasPrefixFold(name, prefix) {
			continue
		}
		key := name[len(prefix):]
		d.keys = append(d.keys, key)
		d.vals[key] = header.Get(name)
	}
	return d
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return http.CanonicalHeaderKey(s[:len(prefix)]) == http.CanonicalHeaderKey(prefix)
}

func (d *HTTPPrefixHeadersDeserializer) ReadMap(*smithy.Schema) error { return nil }
func (d *HTTPPrefixHeadersDeserializer) ReadMapKey(*smithy.Schema) (string, bool, error) {
	if d.idx >= len(d.keys) {
		return "", false, nil
	}
	k := d.keys[d.idx]
	d.idx++
	return k, true, nil
}
func (d *HTTPPrefixHeadersDeserializer) ReadString(_ *smithy.Schema, out *string) error {
	*out = d.vals[d.keys[d.idx-1]]
	return nil
}

// StatusCodeDeserializer reads the response's HTTP status code into a
// member carrying smithy.api#httpResponseCode.
type StatusCodeDeserializer struct {
	smithy.UnsupportedShapeDeserializer
	Code int
}

func NewStatusCodeDeserializer(code int) *StatusCodeDeserializer {
	return &StatusCodeDeserializer{UnsupportedShapeDeserializer: smithy.UnsupportedShapeDeserializer{Name: "StatusCodeDeserializer"}, Code: code}
}

func (d *StatusCodeDeserializer) ReadInt32(_ *smithy.Schema, out *int32) error {
	*out = int32(d.Code)
	return nil
}
func (d *StatusCodeDeserializer) ReadInt64(_ *smithy.Schema, out *int64) error {
	*out = int64(d.Code)
	return nil
}

func parseTime(schema *smithy.Schema, s string) (time.Time, error) {
	tf, ok := smithy.SchemaTrait[*traits.TimestampFormat](schema)
	format := "date-time"
	if ok {
		format = tf.Format
	}
	switch format {
	case "http-date":
		return time.Parse(time.RFC1123, s)
	case "epoch-seconds":
		sec, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, &smithy.SerializationError{Schema: schema, Reason: "invalid epoch-seconds timestamp", Err: err}
		}
		return time.Unix(sec, 0).UTC(), nil
	default:
		return time.Parse(time.RFC3339, s)
	}
}

var (
	_ smithy.ShapeDeserializer = (*HTTPHeaderDeserializer)(nil)
	_ smithy.ShapeDeserializer = (*HTTPPrefixHeadersDeserializer)(nil)
	_ smithy.ShapeDeserializer = (*StatusCodeDeserializer)(nil)
)
