package json

import "bytes"

// Object represents the encoding of a JSON object.
type Object struct {
	w       *bytes.Buffer
	scratch *[]byte
	n       int
}

// newObject opens a JSON object and returns its encoder.
func newObject(w *bytes.Buffer, scratch *[]byte) *Object {
	w.WriteByte('{')
	return &Object{w: w, scratch: scratch}
}

// Key returns a Value encoder for the named object member.
func (o *Object) Key(name string) Value {
	if o.n > 0 {
		o.w.WriteByte(',')
	}
	o.n++

	escapeString(o.w, name)
	o.w.WriteByte(':')

	return newValue(o.w, o.scratch)
}

// Close closes the JSON object.
func (o *Object) Close() {
	o.w.WriteByte('}')
}
