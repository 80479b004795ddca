package json

import "bytes"

// Array represents the encoding of a JSON array.
type Array struct {
	w       *bytes.Buffer
	scratch *[]byte
	n       int
}

// newArray opens a JSON array and returns its encoder.
func newArray(w *bytes.Buffer, scratch *[]byte) *Array {
	w.WriteByte('[')
	return &Array{w: w, scratch: scratch}
}

// Value returns a Value encoder for the next array element.
func (a *Array) Value() Value {
	if a.n > 0 {
		a.w.WriteByte(',')
	}
	a.n++

	return newValue(a.w, a.scratch)
}

// Close closes the JSON array.
func (a *Array) Close() {
	a.w.WriteByte(']')
}
