package httpbinding

import (
	"strconv"
	"time"

	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/traits"
)

// HTTPHeaderSerializer writes a single scalar member to the header named
// by the member's smithy.api#httpHeader trait.
type HTTPHeaderSerializer struct {
	smithy.UnsupportedShapeSerializer
	Value HeaderValue
}

func NewHTTPHeaderSerializer(v HeaderValue) *HTTPHeaderSerializer {
	return &HTTPHeaderSerializer{UnsupportedShapeSerializer: smithy.UnsupportedShapeSerializer{Name: "HTTPHeaderSerializer"}, Value: v}
}

func (s *HTTPHeaderSerializer) WriteInt8(_ *smithy.Schema, v int8)   { s.Value.Integer(int64(v)) }
func (s *HTTPHeaderSerializer) WriteInt16(_ *smithy.Schema, v int16) { s.Value.Integer(int64(v)) }
func (s *HTTPHeaderSerializer) WriteInt32(_ *smithy.Schema, v int32) { s.Value.Integer(int64(v)) }
func (s *HTTPHeaderSerializer) WriteInt64(_ *smithy.Schema, v int64) { s.Value.Integer(v) }
func (s *HTTPHeaderSerializer) WriteFloat32(_ *smithy.Schema, v float32) { s.Value.Float(float64(v)) }
func (s *HTTPHeaderSerializer) WriteFloat64(_ *smithy.Schema, v float64) { s.Value.Float(v) }
func (s *HTTPHeaderSerializer) WriteBool(_ *smithy.Schema, v bool)       { s.Value.Boolean(v) }
func (s *HTTPHeaderSerializer) WriteString(_ *smithy.Schema, v string)   { s.Value.String(v) }
func (s *HTTPHeaderSerializer) WriteBlob(_ *smithy.Schema, v []byte)     { s.Value.Blob(v) }
func (s *HTTPHeaderSerializer) WriteTime(schema *smithy.Schema, v time.Time) {
	s.Value.String(formatTime(schema, v))
}

// HTTPPrefixHeadersSerializer writes each entry of a map member as a
// header under the member's smithy.api#httpPrefixHeaders prefix.
type HTTPPrefixHeadersSerializer struct {
	smithy.UnsupportedShapeSerializer
	Headers Headers
	key     string
}

func NewHTTPPrefixHeadersSerializer(h Headers) *HTTPPrefixHeadersSerializer {
	return &HTTPPrefixHeadersSerializer{UnsupportedShapeSerializer: smithy.UnsupportedShapeSerializer{Name: "HTTPPrefixHeadersSerializer"}, Headers: h}
}

func (s *HTTPPrefixHeadersSerializer) WriteMap(*smithy.Schema) {}
func (s *HTTPPrefixHeadersSerializer) CloseMap()               {}
func (s *HTTPPrefixHeadersSerializer) WriteKey(_ *smithy.Schema, key string) {
	s.key = key
}
func (s *HTTPPrefixHeadersSerializer) WriteString(_ *smithy.Schema, v string) {
	s.Headers.SetHeader(s.key).String(v)
}

// HTTPQuerySerializer writes a single scalar member to the query string
// parameter named by the member's smithy.api#httpQuery trait.
type HTTPQuerySerializer struct {
	smithy.UnsupportedShapeSerializer
	Value QueryValue
}

func NewHTTPQuerySerializer(v QueryValue) *HTTPQuerySerializer {
	return &HTTPQuerySerializer{UnsupportedShapeSerializer: smithy.UnsupportedShapeSerializer{Name: "HTTPQuerySerializer"}, Value: v}
}

func (s *HTTPQuerySerializer) WriteInt8(_ *smithy.Schema, v int8)   { s.Value.Integer(int64(v)) }
func (s *HTTPQuerySerializer) WriteInt16(_ *smithy.Schema, v int16) { s.Value.Integer(int64(v)) }
func (s *HTTPQuerySerializer) WriteInt32(_ *smithy.Schema, v int32) { s.Value.Integer(int64(v)) }
func (s *HTTPQuerySerializer) WriteInt64(_ *smithy.Schema, v int64) { s.Value.Integer(v) }
func (s *HTTPQuerySerializer) WriteFloat32(_ *smithy.Schema, v float32) { s.Value.Float(float64(v)) }
func (s *HTTPQuerySerializer) WriteFloat64(_ *smithy.Schema, v float64) { s.Value.Float(v) }
func (s *HTTPQuerySerializer) WriteBool(_ *smithy.Schema, v bool)       { s.Value.Boolean(v) }
func (s *HTTPQuerySerializer) WriteString(_ *smithy.Schema, v string)   { s.Value.String(v) }
func (s *HTTPQuerySerializer) WriteBlob(_ *smithy.Schema, v []byte)     { s.Value.Blob(v) }
func (s *HTTPQuerySerializer) WriteTime(schema *smithy.Schema, v time.Time) {
	s.Value.String(formatTime(schema, v))
}

// HTTPQueryParamsSerializer writes every entry of a map member as its
// own query string parameter, for smithy.api#httpQueryParams.
type HTTPQueryParamsSerializer struct {
	smithy.UnsupportedShapeSerializer
	query func(string, bool) QueryValue
	key   string
}

func NewHTTPQueryParamsSerializer(query func(key string, append bool) QueryValue) *HTTPQueryParamsSerializer {
	return &HTTPQueryParamsSerializer{UnsupportedShapeSerializer: smithy.UnsupportedShapeSerializer{Name: "HTTPQueryParamsSerializer"}, query: query}
}

func (s *HTTPQueryParamsSerializer) WriteMap(*smithy.Schema) {}
func (s *HTTPQueryParamsSerializer) CloseMap()               {}
func (s *HTTPQueryParamsSerializer) WriteKey(_ *smithy.Schema, key string) {
	s.key = key
}
func (s *HTTPQueryParamsSerializer) WriteString(_ *smithy.Schema, v string) {
	s.query(s.key, false).String(v)
}

// HostLabelSerializer writes a scalar member into an endpoint host
// prefix label, for members backing an operation's smithy.api#endpoint
// host prefix pattern.
type HostLabelSerializer struct {
	smithy.UnsupportedShapeSerializer
	prefix *string
	label  string
}

func NewHostLabelSerializer(prefix *string, label string) *HostLabelSerializer {
	return &HostLabelSerializer{UnsupportedShapeSerializer: smithy.UnsupportedShapeSerializer{Name: "HostLabelSerializer"}, prefix: prefix, label: label}
}

func (s *HostLabelSerializer) WriteString(_ *smithy.Schema, v string) {
	*s.prefix = replaceHostLabel(*s.prefix, s.label, v)
}

// StatusCodeSerializer captures the integer value of a member carrying
// smithy.api#httpResponseCode, used to override the protocol's default
// success status code.
type StatusCodeSerializer struct {
	smithy.UnsupportedShapeSerializer
	Code *int
}

func NewStatusCodeSerializer(code *int) *StatusCodeSerializer {
	return &StatusCodeSerializer{UnsupportedShapeSerializer: smithy.UnsupportedShapeSerializer{Name: "StatusCodeSerializer"}, Code: code}
}

func (s *StatusCodeSerializer) WriteInt32(_ *smithy.Schema, v int32) { *s.Code = int(v) }
func (s *StatusCodeSerializer) WriteInt64(_ *smithy.Schema, v int64) { *s.Code = int(v) }

// EventHeaderSerializer writes a single scalar member as a typed
// event-stream header, for members carrying smithy.api#eventHeader.
type EventHeaderSerializer struct {
	smithy.UnsupportedShapeSerializer
	Name    string
	Headers eventHeaderSink
}

// eventHeaderSink is satisfied by eventstream.Headers without importing
// that package here, avoiding a dependency edge from httpbinding back to
// the event-stream wire codec.
type eventHeaderSink interface {
	SetBool(name string, v bool)
	SetInt64(name string, v int64)
	SetString(name string, v string)
	SetBytes(name string, v []byte)
	SetTimestamp(name string, v time.Time)
}

func NewEventHeaderSerializer(name string, sink eventHeaderSink) *EventHeaderSerializer {
	return &EventHeaderSerializer{UnsupportedShapeSerializer: smithy.UnsupportedShapeSerializer{Name: "EventHeaderSerializer"}, Name: name, Headers: sink}
}

func (s *EventHeaderSerializer) WriteBool(_ *smithy.Schema, v bool)   { s.Headers.SetBool(s.Name, v) }
func (s *EventHeaderSerializer) WriteInt8(_ *smithy.Schema, v int8)   { s.Headers.SetInt64(s.Name, int64(v)) }
func (s *EventHeaderSerializer) WriteInt16(_ *smithy.Schema, v int16) { s.Headers.SetInt64(s.Name, int64(v)) }
func (s *EventHeaderSerializer) WriteInt32(_ *smithy.Schema, v int32) { s.Headers.SetInt64(s.Name, int64(v)) }
func (s *EventHeaderSerializer) WriteInt64(_ *smithy.Schema, v int64) { s.Headers.SetInt64(s.Name, v) }
func (s *EventHeaderSerializer) WriteString(_ *smithy.Schema, v string) {
	s.Headers.SetString(s.Name, v)
}
func (s *EventHeaderSerializer) WriteBlob(_ *smithy.Schema, v []byte) { s.Headers.SetBytes(s.Name, v) }
func (s *EventHeaderSerializer) WriteTime(_ *smithy.Schema, v time.Time) {
	s.Headers.SetTimestamp(s.Name, v)
}

// formatTime renders v per the member's smithy.api#timestampFormat
// trait, defaulting to RFC 3339 date-time as the HTTP binding protocols
// do for header and query values.
func formatTime(schema *smithy.Schema, v time.Time) string {
	tf, ok := smithy.SchemaTrait[*traits.TimestampFormat](schema)
	if !ok {
		return v.Format(time.RFC3339)
	}
	switch tf.Format {
	case "http-date":
		return v.Format(time.RFC1123)
	case "epoch-seconds":
		return strconv.FormatInt(v.Unix(), 10)
	default:
		return v.Format(time.RFC3339)
	}
}

var (
	_ smithy.ShapeSerializer = (*HTTPHeaderSerializer)(nil)
	_ smithy.ShapeSerializer = (*HTTPPrefixHeadersSerializer)(nil)
	_ smithy.ShapeSerializer = (*HTTPQuerySerializer)(nil)
	_ smithy.ShapeSerializer = (*HTTPQueryParamsSerializer)(nil)
	_ smithy.ShapeSerializer = (*HostLabelSerializer)(nil)
	_ smithy.ShapeSerializer = (*StatusCodeSerializer)(nil)
	_ smithy.ShapeSerializer = (*EventHeaderSerializer)(nil)
)
