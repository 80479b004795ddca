package eventstreamapi

import (
	"bytes"
	"io"
	"testing"

	smithy "github.com/smithykit/runtime"
)

// fakeCodec round-trips payloads as raw bytes, exercising Writer/Reader
// wiring without depending on a real wire format.
type fakeCodec struct{}

func (fakeCodec) PayloadMediaType() string                 { return "application/octet-stream" }
func (fakeCodec) Serializer() smithy.ShapeSerializer        { return &fakeSerializer{} }
func (fakeCodec) Deserializer(p []byte) smithy.ShapeDeserializer {
	return &fakeDeserializer{payload: p}
}

type fakeSerializer struct {
	smithy.UnsupportedShapeSerializer
	buf []byte
}

func (s *fakeSerializer) Bytes() []byte            { return s.buf }
func (s *fakeSerializer) WriteString(_ *smithy.Schema, v string) { s.buf = []byte(v) }

type fakeDeserializer struct {
	smithy.UnsupportedShapeDeserializer
	payload []byte
}

func (d *fakeDeserializer) ReadString(_ *smithy.Schema, out *string) error {
	*out = string(d.payload)
	return nil
}

type chunkEvent struct {
	Data string
}

func (c *chunkEvent) EventName() string { return "Chunk" }
func (c *chunkEvent) Serialize(ser smithy.ShapeSerializer) {
	ser.WriteString(nil, c.Data)
}
func (c *chunkEvent) Deserialize(d smithy.ShapeDeserializer) error {
	return d.ReadString(nil, &c.Data)
}

type fakeEvents struct{}

func (fakeEvents) UnmarshalEvent(name string) (smithy.Deserializable, error) {
	return &chunkEvent{}, nil
}

func TestWriterReader_RoundTrip(t *testing.T) {
	schema := newTestUnionSchema()

	var buf bytes.Buffer
	w := NewWriter(&buf, fakeCodec{}, schema)
	w.WriteEvent(&chunkEvent{Data: "hello"})
	w.WriteEvent(&chunkEvent{Data: "world"})
	w.Close()

	r := NewReader(&buf, fakeCodec{}, &smithy.TypeRegistry{}, fakeEvents{})

	first, err := r.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if got := first.(*chunkEvent).Data; got != "hello" {
		t.Errorf("first event: got %q want %q", got, "hello")
	}

	second, err := r.Next()
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if got := second.(*chunkEvent).Data; got != "world" {
		t.Errorf("second event: got %q want %q", got, "world")
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expect io.EOF after stream ends, got %v", err)
	}
}

func newTestUnionSchema() *smithy.Schema {
	chunkTarget := smithy.NewStructure(
		smithy.ShapeID{Namespace: "test", Name: "Chunk"},
		smithy.ShapeTypeStructure,
		nil, nil,
	)
	member := smithy.NewMember("Chunk", chunkTarget)
	return smithy.NewStructure(
		smithy.ShapeID{Namespace: "test", Name: "Events"},
		smithy.ShapeTypeUnion,
		nil,
		[]smithy.StructureMember{{Schema: member}},
	)
}
