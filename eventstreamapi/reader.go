package eventstreamapi

import (
	"fmt"
	"io"

	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/eventstream"
	"github.com/smithykit/runtime/transport/http/streaming"
)

// EventUnmarshaler constructs the modeled event for a frame once its
// :event-type header names a union member.
//
// Generated output-stream types implement this by switching on
// eventName and returning a pointer to the corresponding union member,
// ready for Deserialize.
type EventUnmarshaler interface {
	UnmarshalEvent(eventName string) (smithy.Deserializable, error)
}

// Reader decodes an io.Reader carrying event-stream frames into modeled
// events, dispatching modeled and untyped errors through types.
//
// Internally it is a streaming.MessagePublisher feeding a
// streaming.FlatMapProcessor whose MapFunc is frameDecoder.decode -- the
// same credit-based publisher/subscriber pipeline the rest of the
// transport uses to pace event-stream I/O to consumer demand. Reader
// itself is a Subscriber of the processor's output, granting it one
// unit of demand per Next() call.
//
// A single unit of demand can still produce more than one synchronous
// callback: once the processor drains its queue it immediately asks
// upstream for the next frame to keep the pipeline primed, and that
// request can itself resolve synchronously (a blocking body read
// hitting EOF, say), chaining straight into OnComplete before Request
// returns. Reader buffers every callback it receives into pending and
// Next() pops one per call, so no delivery is lost or overwritten by a
// later one in the same synchronous chain.
type Reader struct {
	proc *streaming.FlatMapProcessor[eventstream.Message, smithy.Deserializable]
	sub  streaming.Subscription

	pending     []readerItem
	terminalErr error
}

type readerItem struct {
	event smithy.Deserializable
	err   error
}

// NewReader returns a Reader pulling frames from src, decoding payloads
// with codec, resolving modeled errors through types, and constructing
// events through events.
func NewReader(src io.Reader, codec smithy.Codec, types *smithy.TypeRegistry, events EventUnmarshaler) *Reader {
	dec := &frameDecoder{codec: codec, types: types, events: events}
	proc := &streaming.FlatMapProcessor[eventstream.Message, smithy.Deserializable]{
		Map: dec.decode,
	}

	pub := streaming.NewMessagePublisher(src)
	pub.Subscribe(proc)

	r := &Reader{proc: proc}
	proc.Subscribe(r)
	return r
}

// Next blocks until the next event is available, returning it
// deserialized. It returns io.EOF once the underlying stream ends
// cleanly with no pending frames. A modeled error frame is returned as
// the error result using the same smithy.DeserializableError type that
// a non-streaming response error would use; an untyped error frame
// becomes a StreamError.
func (r *Reader) Next() (smithy.Deserializable, error) {
	if len(r.pending) == 0 {
		if r.terminalErr != nil {
			return nil, r.terminalErr
		}
		r.sub.Request(1)
	}

	if len(r.pending) == 0 {
		return nil, fmt.Errorf("eventstreamapi: no frame available for request")
	}

	item := r.pending[0]
	r.pending = r.pending[1:]
	return item.event, item.err
}

func (r *Reader) OnSubscribe(sub streaming.Subscription) { r.sub = sub }

func (r *Reader) OnNext(event smithy.Deserializable) {
	r.pending = append(r.pending, readerItem{event: event})
}

func (r *Reader) OnError(err error) {
	r.pending = append(r.pending, readerItem{err: err})
	r.terminalErr = err
}

func (r *Reader) OnComplete() {
	r.pending = append(r.pending, readerItem{err: io.EOF})
	r.terminalErr = io.EOF
}

var _ streaming.Subscriber[smithy.Deserializable] = (*Reader)(nil)

// frameDecoder is the FlatMapProcessor MapFunc turning one decoded
// eventstream.Message into exactly one modeled event. A frame without an
// :event-type header is an error; a terminal exception/error frame maps
// to a non-nil error, which FlatMapProcessor surfaces as the pipeline's
// OnError once any preceding events have been delivered.
type frameDecoder struct {
	codec  smithy.Codec
	types  *smithy.TypeRegistry
	events EventUnmarshaler
}

func (d *frameDecoder) decode(msg eventstream.Message) ([]smithy.Deserializable, error) {
	messageType, _ := msg.Headers.Get(eventstream.HeaderMessageType)
	mt, _ := messageType.String()

	switch mt {
	case eventstream.MessageTypeException:
		exceptionType, _ := msg.Headers.Get(eventstream.HeaderExceptionType)
		code, _ := exceptionType.String()

		modeled, ok := d.types.DeserializableError(code)
		if !ok {
			return nil, &StreamError{Code: code, Message: string(msg.Payload)}
		}
		if err := modeled.Deserialize(d.codec.Deserializer(msg.Payload)); err != nil {
			return nil, fmt.Errorf("eventstreamapi: deserialize exception %q: %w", code, err)
		}
		return nil, modeled

	case eventstream.MessageTypeError:
		codeVal, _ := msg.Headers.Get(eventstream.HeaderErrorCode)
		msgVal, _ := msg.Headers.Get(eventstream.HeaderErrorMessage)
		code, _ := codeVal.String()
		message, _ := msgVal.String()
		return nil, &StreamError{Code: code, Message: message}
	}

	eventType, ok := msg.Headers.Get(eventstream.HeaderEventType)
	if !ok {
		return nil, fmt.Errorf("eventstreamapi: frame missing :event-type header")
	}
	name, _ := eventType.String()

	event, err := d.events.UnmarshalEvent(name)
	if err != nil {
		return nil, err
	}
	if err := event.Deserialize(d.codec.Deserializer(msg.Payload)); err != nil {
		return nil, fmt.Errorf("eventstreamapi: deserialize event %q: %w", name, err)
	}
	return []smithy.Deserializable{event}, nil
}

// StreamError is an untyped event-stream error: one carried on the wire
// as :message-type "error" rather than a modeled exception frame.
type StreamError struct {
	Code    string
	Message string
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("eventstream error %s: %s", e.Code, e.Message)
}
