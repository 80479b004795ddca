package cbor

import (
	"github.com/smithykit/runtime"
)

// Codec is a CBOR codec implementing the Smithy RPCv2-CBOR protocol's wire
// format.
type Codec struct{}

var _ smithy.Codec = (*Codec)(nil)

// PayloadMediaType returns "application/cbor".
func (c *Codec) PayloadMediaType() string { return "application/cbor" }

// Serializer returns a CBOR shape serializer.
func (c *Codec) Serializer() smithy.ShapeSerializer {
	return &ShapeSerializer{}
}

// Deserializer returns a CBOR shape deserializer over p.
func (c *Codec) Deserializer(p []byte) smithy.ShapeDeserializer {
	v, err := Decode(p)
	return &ShapeDeserializer{cur: v, err: err}
}

type stack struct {
	frames []any
}

func (s *stack) top() any {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *stack) push(v any) {
	s.frames = append(s.frames, v)
}

func (s *stack) pop() any {
	v := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return v
}
