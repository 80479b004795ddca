package json

import (
	"github.com/smithykit/runtime"
)

// Codec is a JSON codec.
type Codec struct {
	// UseJSONName is not read by this package's serializer or deserializer:
	// both always use the member name as the JSON key, whether or not this
	// is set and whether or not the member carries smithy.api#jsonName.
	UseJSONName bool
}

var _ smithy.Codec = (*Codec)(nil)

// PayloadMediaType returns "application/json".
func (c *Codec) PayloadMediaType() string { return "application/json" }

// Serializer returns a JSON shape serializer.
func (c *Codec) Serializer() smithy.ShapeSerializer {
	return &ShapeSerializer{
		root: NewEncoder(),
		head: stack{},
	}
}

// Deserializer returns a JSON shape deserializer.
func (c *Codec) Deserializer(p []byte) smithy.ShapeDeserializer {
	return NewShapeDeserializer(p)
}

type stack struct {
	values []any
}

type empty struct{}

func (s *stack) Top() any {
	if len(s.values) == 0 {
		return empty{}
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
