package eventstream

import (
	"fmt"
	"time"
)

// HeaderType tags the wire type of a Header's Value. Values match the
// type byte that precedes an encoded header value on the wire.
type HeaderType uint8

// Enumerates HeaderType.
const (
	HeaderTypeBoolTrue HeaderType = iota
	HeaderTypeBoolFalse
	HeaderTypeByte
	HeaderTypeShort
	HeaderTypeInteger
	HeaderTypeLong
	HeaderTypeBytes
	HeaderTypeString
	HeaderTypeTimestamp
	HeaderTypeUUID
)

// HeaderValue is a closed sum type over the header value kinds the
// event-stream wire format supports.
type HeaderValue struct {
	typ HeaderType

	boolVal bool
	intVal  int64
	strVal  string
	byteVal []byte
	tsVal   time.Time
	uuidVal [16]byte
}

// Type reports the wire type of the value.
func (v HeaderValue) Type() HeaderType { return v.typ }

// BoolHeaderValue wraps a boolean header value.
func BoolHeaderValue(b bool) HeaderValue {
	t := HeaderTypeBoolFalse
	if b {
		t = HeaderTypeBoolTrue
	}
	return HeaderValue{typ: t, boolVal: b}
}

// ByteHeaderValue wraps an int8 header value.
func ByteHeaderValue(v int8) HeaderValue {
	return HeaderValue{typ: HeaderTypeByte, intVal: int64(v)}
}

// ShortHeaderValue wraps an int16 header value.
func ShortHeaderValue(v int16) HeaderValue {
	return HeaderValue{typ: HeaderTypeShort, intVal: int64(v)}
}

// IntegerHeaderValue wraps an int32 header value.
func IntegerHeaderValue(v int32) HeaderValue {
	return HeaderValue{typ: HeaderTypeInteger, intVal: int64(v)}
}

// LongHeaderValue wraps an int64 header value.
func LongHeaderValue(v int64) HeaderValue {
	return HeaderValue{typ: HeaderTypeLong, intVal: v}
}

// BytesHeaderValue wraps an opaque byte-slice header value.
func BytesHeaderValue(v []byte) HeaderValue {
	return HeaderValue{typ: HeaderTypeBytes, byteVal: v}
}

// StringHeaderValue wraps a string header value.
func StringHeaderValue(v string) HeaderValue {
	return HeaderValue{typ: HeaderTypeString, strVal: v}
}

// TimestampHeaderValue wraps a timestamp header value, encoded on the
// wire as milliseconds since the Unix epoch.
func TimestampHeaderValue(v time.Time) HeaderValue {
	return HeaderValue{typ: HeaderTypeTimestamp, tsVal: v}
}

// UUIDHeaderValue wraps a 16-byte UUID header value.
func UUIDHeaderValue(v [16]byte) HeaderValue {
	return HeaderValue{typ: HeaderTypeUUID, uuidVal: v}
}

// Bool returns the boolean value and whether the header held one.
func (v HeaderValue) Bool() (bool, bool) {
	return v.boolVal, v.typ == HeaderTypeBoolTrue || v.typ == HeaderTypeBoolFalse
}

// Int64 returns any integral kind (byte/short/integer/long) widened to
// int64, and whether the header held one.
func (v HeaderValue) Int64() (int64, bool) {
	switch v.typ {
	case HeaderTypeByte, HeaderTypeShort, HeaderTypeInteger, HeaderTypeLong:
		return v.intVal, true
	}
	return 0, false
}

// Bytes returns the byte-slice value, if any.
func (v HeaderValue) Bytes() ([]byte, bool) {
	return v.byteVal, v.typ == HeaderTypeBytes
}

// String returns the string value, if any.
func (v HeaderValue) String() (string, bool) {
	return v.strVal, v.typ == HeaderTypeString
}

// Timestamp returns the timestamp value, if any.
func (v HeaderValue) Timestamp() (time.Time, bool) {
	return v.tsVal, v.typ == HeaderTypeTimestamp
}

// UUID returns the UUID value, if any.
func (v HeaderValue) UUID() ([16]byte, bool) {
	return v.uuidVal, v.typ == HeaderTypeUUID
}

// GoString renders the value for diagnostic output.
func (v HeaderValue) GoString() string {
	switch v.typ {
	case HeaderTypeBoolTrue, HeaderTypeBoolFalse:
		return fmt.Sprintf("%v", v.boolVal)
	case HeaderTypeByte, HeaderTypeShort, HeaderTypeInteger, HeaderTypeLong:
		return fmt.Sprintf("%d", v.intVal)
	case HeaderTypeBytes:
		return fmt.Sprintf("%x", v.byteVal)
	case HeaderTypeString:
		return v.strVal
	case HeaderTypeTimestamp:
		return v.tsVal.Format(time.RFC3339Nano)
	case HeaderTypeUUID:
		return fmt.Sprintf("%x", v.uuidVal)
	}
	return "<invalid>"
}

// Header is a single named, typed event-stream header.
type Header struct {
	Name  string
	Value HeaderValue
}

// Headers is an ordered set of event-stream headers, preserving the wire
// order they were parsed in (or were appended in, when building a message
// to encode).
type Headers []Header

// Get returns the value of the first header named name.
func (h Headers) Get(name string) (HeaderValue, bool) {
	for _, hdr := range h {
		if hdr.Name == name {
			return hdr.Value, true
		}
	}
	return HeaderValue{}, false
}

// Set appends or replaces the header named name.
func (h Headers) Set(name string, v HeaderValue) Headers {
	for i := range h {
		if h[i].Name == name {
			h[i].Value = v
			return h
		}
	}
	return append(h, Header{Name: name, Value: v})
}

// SetBool sets a boolean header, satisfying the event header sink
// contract the httpbinding package's EventHeaderSerializer writes
// through.
func (h *Headers) SetBool(name string, v bool) { *h = h.Set(name, BoolHeaderValue(v)) }

// SetInt64 sets an integral header as a Long.
func (h *Headers) SetInt64(name string, v int64) { *h = h.Set(name, LongHeaderValue(v)) }

// SetString sets a string header.
func (h *Headers) SetString(name string, v string) { *h = h.Set(name, StringHeaderValue(v)) }

// SetBytes sets an opaque byte-slice header.
func (h *Headers) SetBytes(name string, v []byte) { *h = h.Set(name, BytesHeaderValue(v)) }

// SetTimestamp sets a timestamp header.
func (h *Headers) SetTimestamp(name string, v time.Time) { *h = h.Set(name, TimestampHeaderValue(v)) }

// Well-known headers the shape layer reads to route frames.
const (
	HeaderMessageType   = ":message-type"
	HeaderEventType     = ":event-type"
	HeaderExceptionType = ":exception-type"
	HeaderContentType   = ":content-type"
	HeaderErrorCode     = ":error-code"
	HeaderErrorMessage  = ":error-message"
)

// Well-known values of the :message-type header.
const (
	MessageTypeEvent     = "event"
	MessageTypeException = "exception"
	MessageTypeError     = "error"
)
