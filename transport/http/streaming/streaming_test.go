package streaming

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/smithykit/runtime/eventstream"
)

// recordingSubscriber captures delivered items and terminal state,
// requesting one item at a time so tests can observe pacing.
type recordingSubscriber[T any] struct {
	sub        Subscription
	items      []T
	err        error
	completed  bool
	autoDemand int64
}

func (r *recordingSubscriber[T]) OnSubscribe(sub Subscription) {
	r.sub = sub
	if r.autoDemand > 0 {
		sub.Request(r.autoDemand)
	}
}

func (r *recordingSubscriber[T]) OnNext(item T) { r.items = append(r.items, item) }
func (r *recordingSubscriber[T]) OnError(err error) { r.err = err }
func (r *recordingSubscriber[T]) OnComplete()       { r.completed = true }

func TestSlicePublisher_DeliversInOrderUnderDemand(t *testing.T) {
	pub := &SlicePublisher[int]{Items: []int{1, 2, 3}}
	sub := &recordingSubscriber[int]{}
	pub.Subscribe(sub)

	sub.sub.Request(2)
	if got, want := sub.items, []int{1, 2}; !equalInts(got, want) {
		t.Fatalf("after requesting 2: got %v want %v", got, want)
	}
	if sub.completed {
		t.Fatalf("should not complete before last item delivered")
	}

	sub.sub.Request(5)
	if got, want := sub.items, []int{1, 2, 3}; !equalInts(got, want) {
		t.Fatalf("after requesting more: got %v want %v", got, want)
	}
	if !sub.completed {
		t.Fatalf("expect OnComplete once items exhausted")
	}
}

func TestSlicePublisher_NoDeliveryWithoutDemand(t *testing.T) {
	pub := &SlicePublisher[int]{Items: []int{1}}
	sub := &recordingSubscriber[int]{}
	pub.Subscribe(sub)
	if len(sub.items) != 0 {
		t.Fatalf("expect no items before any Request, got %v", sub.items)
	}
}

func TestFlatMapProcessor_FlattensAndPreservesOrder(t *testing.T) {
	upstream := &SlicePublisher[int]{Items: []int{1, 2, 3}}
	proc := &FlatMapProcessor[int, string]{
		Map: func(n int) ([]string, error) {
			out := make([]string, n)
			for i := range out {
				out[i] = "x"
			}
			return out, nil
		},
	}
	upstream.Subscribe(proc)

	sub := &recordingSubscriber[string]{}
	proc.Subscribe(sub)
	sub.sub.Request(100)

	if got, want := len(sub.items), 1+2+3; got != want {
		t.Fatalf("expect %d flattened items, got %d: %v", want, got, sub.items)
	}
	if !sub.completed {
		t.Fatalf("expect downstream OnComplete after upstream exhausted")
	}
}

func TestFlatMapProcessor_RespectsDownstreamDemand(t *testing.T) {
	upstream := &SlicePublisher[int]{Items: []int{1, 1, 1}}
	proc := &FlatMapProcessor[int, int]{
		Map: func(n int) ([]int, error) { return []int{n}, nil },
	}
	upstream.Subscribe(proc)

	sub := &recordingSubscriber[int]{}
	proc.Subscribe(sub)

	sub.sub.Request(1)
	if len(sub.items) != 1 {
		t.Fatalf("expect exactly 1 item delivered, got %v", sub.items)
	}
	if sub.completed {
		t.Fatalf("should not complete while upstream still has items")
	}

	sub.sub.Request(2)
	if len(sub.items) != 3 {
		t.Fatalf("expect 3 items delivered after more demand, got %v", sub.items)
	}
	if !sub.completed {
		t.Fatalf("expect completion once upstream and queue are drained")
	}
}

func TestFlatMapProcessor_MapErrorEmitsFailureFrameThenOnError(t *testing.T) {
	boom := errors.New("boom")
	upstream := &SlicePublisher[int]{Items: []int{1, 2}}
	proc := &FlatMapProcessor[int, string]{
		Map: func(n int) ([]string, error) {
			if n == 2 {
				return nil, boom
			}
			return []string{"ok"}, nil
		},
		OnFailure: func(err error) (string, bool) {
			return "terminal:" + err.Error(), true
		},
	}
	upstream.Subscribe(proc)

	sub := &recordingSubscriber[string]{}
	proc.Subscribe(sub)
	sub.sub.Request(100)

	want := []string{"ok", "terminal:boom"}
	if !equalStringsStreaming(sub.items, want) {
		t.Fatalf("got %v want %v", sub.items, want)
	}
	if sub.err != boom {
		t.Fatalf("expect OnError(boom), got %v", sub.err)
	}
	if sub.completed {
		t.Fatalf("expect OnError, not OnComplete, on failure")
	}
}

func TestMessagePublisher_DecodesFramesFromReaderUnderDemand(t *testing.T) {
	msg := eventstream.Message{
		Headers: eventstream.Headers{{Name: eventstream.HeaderMessageType, Value: eventstream.StringHeaderValue("event")}},
		Payload: []byte("hello"),
	}
	encoded, err := eventstream.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var wire bytes.Buffer
	wire.Write(encoded)
	wire.Write(encoded)

	pub := NewMessagePublisher(&wire)
	sub := &recordingSubscriber[eventstream.Message]{}
	pub.Subscribe(sub)

	sub.sub.Request(1)
	if len(sub.items) != 1 {
		t.Fatalf("expect 1 message after requesting 1, got %d", len(sub.items))
	}

	sub.sub.Request(10)
	if len(sub.items) != 2 {
		t.Fatalf("expect 2 messages total, got %d", len(sub.items))
	}
	if !sub.completed {
		t.Fatalf("expect OnComplete at EOF")
	}
}

func TestMessagePublisher_ReaderErrorSurfacesAsOnError(t *testing.T) {
	pub := NewMessagePublisher(errReader{err: errors.New("io broke")})
	sub := &recordingSubscriber[eventstream.Message]{}
	pub.Subscribe(sub)
	sub.sub.Request(1)
	if sub.err == nil {
		t.Fatalf("expect OnError from a failing reader")
	}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

var _ io.Reader = errReader{}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStringsStreaming(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
