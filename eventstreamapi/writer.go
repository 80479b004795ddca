// Package eventstreamapi binds the binary frame codec in package
// eventstream to modeled shapes: it decides, from a union member's
// schema, which frame headers route an event to which member, and
// drives a smithy.EventStreamWriter/event publisher pair over an HTTP
// body without the serde kernel (package smithy) needing to know
// anything about event-stream framing.
package eventstreamapi

import (
	"fmt"
	"io"
	"sync"

	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/eventstream"
)

// Writer implements smithy.EventStreamWriter, encoding each event as one
// event-stream frame written to an underlying io.Writer (ordinarily the
// HTTP request body pipe).
//
// Writer is safe for concurrent use: WriteEvent/WriteError/Close all
// take an internal lock, since the HTTP transport may be reading from
// the paired pipe on another goroutine while the caller is still
// producing events.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	codec  smithy.Codec
	schema *Schema
	err    error
	closed bool
}

// Schema describes the streaming union this Writer encodes events for:
// its member schemas index by event name (the union member's member
// name becomes the :event-type header).
type Schema = smithy.Schema

// NewWriter returns a Writer that encodes events belonging to the union
// described by schema onto w using codec.
func NewWriter(w io.Writer, codec smithy.Codec, schema *Schema) *Writer {
	return &Writer{w: w, codec: codec, schema: schema}
}

// WriteEvent encodes v -- which must correspond to exactly one member of
// the streaming union -- as a single event frame.
//
// v additionally identifies its own event name by implementing
// EventName(); this avoids needing reflection to find which union
// member v instantiates.
func (w *Writer) WriteEvent(v smithy.Serializable) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil || w.closed {
		return
	}

	named, ok := v.(interface{ EventName() string })
	if !ok {
		w.err = fmt.Errorf("eventstreamapi: %T does not implement EventName()", v)
		return
	}

	memberSchema, ok := w.schema.MemberByName(named.EventName())
	if !ok {
		w.err = fmt.Errorf("eventstreamapi: unknown event member %q", named.EventName())
		return
	}

	ser := w.codec.Serializer()
	v.Serialize(ser)

	msg := eventstream.Message{
		Headers: eventstream.Headers{
			{Name: eventstream.HeaderMessageType, Value: eventstream.StringHeaderValue(eventstream.MessageTypeEvent)},
			{Name: eventstream.HeaderEventType, Value: eventstream.StringHeaderValue(memberSchema.ID.Member)},
			{Name: eventstream.HeaderContentType, Value: eventstream.StringHeaderValue(w.codec.PayloadMediaType())},
		},
		Payload: ser.Bytes(),
	}

	w.writeFrame(msg)
}

// WriteError emits a terminal error frame ahead of Close. A modeled
// error (one implementing smithy.Serializable with an ErrorCode() string
// method) is encoded as an "exception" frame carrying ErrorCode() in
// :exception-type; any other error becomes an untyped "error" frame
// with :error-code/:error-message headers.
func (w *Writer) WriteError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil || w.closed {
		return
	}

	if modeled, ok := err.(interface {
		smithy.Serializable
		ErrorCode() string
	}); ok {
		ser := w.codec.Serializer()
		modeled.Serialize(ser)
		w.writeFrame(eventstream.Message{
			Headers: eventstream.Headers{
				{Name: eventstream.HeaderMessageType, Value: eventstream.StringHeaderValue(eventstream.MessageTypeException)},
				{Name: eventstream.HeaderExceptionType, Value: eventstream.StringHeaderValue(modeled.ErrorCode())},
				{Name: eventstream.HeaderContentType, Value: eventstream.StringHeaderValue(w.codec.PayloadMediaType())},
			},
			Payload: ser.Bytes(),
		})
		return
	}

	w.writeFrame(eventstream.Message{
		Headers: eventstream.Headers{
			{Name: eventstream.HeaderMessageType, Value: eventstream.StringHeaderValue(eventstream.MessageTypeError)},
			{Name: eventstream.HeaderErrorCode, Value: eventstream.StringHeaderValue("InternalError")},
			{Name: eventstream.HeaderErrorMessage, Value: eventstream.StringHeaderValue(err.Error())},
		},
	})
}

// Close ends the stream. Further WriteEvent/WriteError calls are no-ops.
func (w *Writer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if c, ok := w.w.(io.Closer); ok {
		c.Close()
	}
}

// writeFrame must be called with w.mu held.
func (w *Writer) writeFrame(msg eventstream.Message) {
	encoded, err := eventstream.Encode(msg)
	if err != nil {
		w.err = err
		return
	}
	if _, err := w.w.Write(encoded); err != nil {
		w.err = err
	}
}
