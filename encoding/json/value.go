package json

import (
	"bytes"
	"encoding/base64"
	"math"
	"math/big"
	"strconv"
)

// Value represents a single JSON value position: a scalar, object, or
// array may be written into it.
type Value struct {
	w       *bytes.Buffer
	scratch *[]byte
}

// newValue returns a new Value encoder.
func newValue(w *bytes.Buffer, scratch *[]byte) Value {
	return Value{w: w, scratch: scratch}
}

// String encodes v as a JSON string.
func (jv Value) String(v string) {
	escapeString(jv.w, v)
}

// Byte encodes v as a JSON number.
func (jv Value) Byte(v int8) {
	jv.Long(int64(v))
}

// Short encodes v as a JSON number.
func (jv Value) Short(v int16) {
	jv.Long(int64(v))
}

// Integer encodes v as a JSON number.
func (jv Value) Integer(v int32) {
	jv.Long(int64(v))
}

// Long encodes v as a JSON number.
func (jv Value) Long(v int64) {
	*jv.scratch = strconv.AppendInt((*jv.scratch)[:0], v, 10)
	jv.w.Write(*jv.scratch)
}

// Float encodes v as a JSON number.
func (jv Value) Float(v float32) {
	jv.float(float64(v), 32)
}

// Double encodes v as a JSON number.
func (jv Value) Double(v float64) {
	jv.float(v, 64)
}

func (jv Value) float(v float64, bits int) {
	if math.IsNaN(v) {
		jv.w.WriteString(`"NaN"`)
		return
	}
	if math.IsInf(v, 1) {
		jv.w.WriteString(`"Infinity"`)
		return
	}
	if math.IsInf(v, -1) {
		jv.w.WriteString(`"-Infinity"`)
		return
	}

	*jv.scratch = strconv.AppendFloat((*jv.scratch)[:0], v, 'g', -1, bits)
	jv.w.Write(*jv.scratch)
}

// Boolean encodes v as a JSON boolean.
func (jv Value) Boolean(v bool) {
	*jv.scratch = strconv.AppendBool((*jv.scratch)[:0], v)
	jv.w.Write(*jv.scratch)
}

// Base64EncodeBytes writes v as a base64-encoded JSON string.
func (jv Value) Base64EncodeBytes(v []byte) {
	jv.w.WriteByte('"')
	encodeByteSlice(jv.w, (*jv.scratch)[:0], v)
	jv.w.WriteByte('"')
}

// BigInteger encodes v as a JSON number.
func (jv Value) BigInteger(v big.Int) {
	jv.w.Write([]byte(v.Text(10)))
}

// BigDecimal encodes v as a JSON number.
func (jv Value) BigDecimal(v big.Float) {
	if i, accuracy := v.Int64(); accuracy == big.Exact {
		jv.Long(i)
		return
	}

	jv.w.Write([]byte(v.Text('e', -1)))
}

// Null encodes the JSON null literal.
func (jv Value) Null() {
	jv.w.WriteString("null")
}

// Object returns an object encoder for this value.
func (jv Value) Object() *Object {
	return newObject(jv.w, jv.scratch)
}

// Array returns an array encoder for this value.
func (jv Value) Array() *Array {
	return newArray(jv.w, jv.scratch)
}

// encodeByteSlice base64-encodes v directly into w, reusing scratch when
// the encoded output is small enough to fit in it.
func encodeByteSlice(w *bytes.Buffer, scratch []byte, v []byte) {
	if v == nil {
		return
	}

	encodedLen := base64.StdEncoding.EncodedLen(len(v))
	if encodedLen <= len(scratch) {
		dst := scratch[:encodedLen]
		base64.StdEncoding.Encode(dst, v)
		w.Write(dst)
	} else if encodedLen <= 1024 {
		dst := make([]byte, encodedLen)
		base64.StdEncoding.Encode(dst, v)
		w.Write(dst)
	} else {
		enc := base64.NewEncoder(base64.StdEncoding, w)
		enc.Write(v)
		enc.Close()
	}
}
