package json

import "bytes"

// Encoder is a JSON encoder that supports construction of a JSON document
// using methods, in the style of the package's Object/Array/Value builders.
type Encoder struct {
	w *bytes.Buffer
	Value
}

// NewEncoder returns a JSON encoder.
func NewEncoder() *Encoder {
	w := bytes.NewBuffer(nil)
	scratch := make([]byte, 64)

	return &Encoder{w: w, Value: newValue(w, &scratch)}
}

// String returns the string output of the JSON encoder.
func (e *Encoder) String() string {
	return e.w.String()
}

// Bytes returns the []byte output of the JSON encoder.
func (e *Encoder) Bytes() []byte {
	return e.w.Bytes()
}
