package smithy

import "fmt"

// SerializationError is returned by a ShapeSerializer or ShapeDeserializer
// when a schema does not describe the value being written, or a required
// member is absent and validation is enabled by the calling layer.
type SerializationError struct {
	Schema *Schema
	Reason string
	Err    error
}

func (e *SerializationError) Error() string {
	id := "<nil schema>"
	if e.Schema != nil {
		id = e.Schema.ID.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("serialization error on %s: %s: %v", id, e.Reason, e.Err)
	}
	return fmt.Sprintf("serialization error on %s: %s", id, e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *SerializationError) Unwrap() error { return e.Err }
