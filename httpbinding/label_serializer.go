package httpbinding

import (
	"strconv"
	"time"

	smithy "github.com/smithykit/runtime"
)

// HTTPLabelSerializer substitutes a single scalar member into its
// smithy.api#httpLabel position in the request URI.
type HTTPLabelSerializer struct {
	smithy.UnsupportedShapeSerializer
	Value URIValue
}

func NewHTTPLabelSerializer(v URIValue) *HTTPLabelSerializer {
	return &HTTPLabelSerializer{UnsupportedShapeSerializer: smithy.UnsupportedShapeSerializer{Name: "HTTPLabelSerializer"}, Value: v}
}

func (s *HTTPLabelSerializer) WriteInt8(_ *smithy.Schema, v int8)   { s.write(strconv.FormatInt(int64(v), 10)) }
func (s *HTTPLabelSerializer) WriteInt16(_ *smithy.Schema, v int16) { s.write(strconv.FormatInt(int64(v), 10)) }
func (s *HTTPLabelSerializer) WriteInt32(_ *smithy.Schema, v int32) { s.write(strconv.FormatInt(int64(v), 10)) }
func (s *HTTPLabelSerializer) WriteInt64(_ *smithy.Schema, v int64) { s.write(strconv.FormatInt(v, 10)) }
func (s *HTTPLabelSerializer) WriteBool(_ *smithy.Schema, v bool)   { s.write(strconv.FormatBool(v)) }
func (s *HTTPLabelSerializer) WriteString(_ *smithy.Schema, v string) { s.write(v) }
func (s *HTTPLabelSerializer) WriteTime(schema *smithy.Schema, v time.Time) {
	s.write(formatTime(schema, v))
}

// write substitutes the label, discarding the "empty value" error: a
// required-member check upstream is expected to have already ruled out
// an empty label before serialization reaches here.
func (s *HTTPLabelSerializer) write(v string) { _ = s.Value.String(v) }

var _ smithy.ShapeSerializer = (*HTTPLabelSerializer)(nil)
