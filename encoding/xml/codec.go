package xml

import (
	"bytes"

	"github.com/smithykit/runtime"
	xmlenc "github.com/smithykit/runtime/xml"
)

// Codec is a schema-driven XML codec, the restXml-family counterpart of
// encoding/json.Codec and encoding/cbor.Codec.
type Codec struct{}

var _ smithy.Codec = (*Codec)(nil)

// PayloadMediaType returns "application/xml".
func (c *Codec) PayloadMediaType() string { return "application/xml" }

// Serializer returns an XML shape serializer.
func (c *Codec) Serializer() smithy.ShapeSerializer {
	return &ShapeSerializer{
		root: xmlenc.NewEncoder(&bytes.Buffer{}),
	}
}

// Deserializer returns an XML shape deserializer.
func (c *Codec) Deserializer(p []byte) smithy.ShapeDeserializer {
	return NewShapeDeserializer(p)
}

type stack struct {
	values []any
}

func (s *stack) Top() any {
	if len(s.values) == 0 {
		return nil
	}
	return s.values[len(s.values)-1]
}

func (s *stack) Push(v any) {
	s.values = append(s.values, v)
}

func (s *stack) Pop() {
	s.values = s.values[:len(s.values)-1]
}

func (s *stack) Len() int {
	return len(s.values)
}
