package eventstream

import (
	"bytes"
	"testing"
	"time"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	msg := Message{
		Headers: Headers{
			{Name: HeaderMessageType, Value: StringHeaderValue(MessageTypeEvent)},
			{Name: HeaderEventType, Value: StringHeaderValue("Chunk")},
			{Name: "flag", Value: BoolHeaderValue(true)},
			{Name: "count", Value: IntegerHeaderValue(42)},
			{Name: "when", Value: TimestampHeaderValue(time.UnixMilli(1234567890).UTC())},
		},
		Payload: []byte(`{"hello":"world"}`),
	}

	encoded, err := Encode(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	d := NewDecoder()
	msgs, err := d.Feed(encoded)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expect 1 message, got %d", len(msgs))
	}

	got := msgs[0]
	if !bytes.Equal(got.Payload, msg.Payload) {
		t.Errorf("payload mismatch: got %q want %q", got.Payload, msg.Payload)
	}

	et, ok := got.Headers.Get(HeaderEventType)
	if !ok {
		t.Fatalf("expect event-type header")
	}
	if s, _ := et.String(); s != "Chunk" {
		t.Errorf("event-type: got %q want %q", s, "Chunk")
	}

	count, ok := got.Headers.Get("count")
	if !ok {
		t.Fatalf("expect count header")
	}
	if n, _ := count.Int64(); n != 42 {
		t.Errorf("count: got %d want 42", n)
	}
}

func TestDecode_SplitAcrossFeeds(t *testing.T) {
	msg := Message{
		Headers: Headers{{Name: HeaderEventType, Value: StringHeaderValue("Chunk")}},
		Payload: []byte("0123456789"),
	}
	encoded, err := Encode(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	d := NewDecoder()

	// feed byte by byte to exercise partial-prelude and partial-body paths
	var all []Message
	for i := range encoded {
		msgs, err := d.Feed(encoded[i : i+1])
		if err != nil {
			t.Fatalf("feed byte %d: %v", i, err)
		}
		all = append(all, msgs...)
	}

	if len(all) != 1 {
		t.Fatalf("expect 1 message assembled across feeds, got %d", len(all))
	}
	if !bytes.Equal(all[0].Payload, msg.Payload) {
		t.Errorf("payload mismatch: got %q want %q", all[0].Payload, msg.Payload)
	}
}

func TestDecode_MultipleMessagesInOneFeed(t *testing.T) {
	m1 := Message{Payload: []byte("first")}
	m2 := Message{Payload: []byte("second")}

	e1, err := Encode(m1)
	if err != nil {
		t.Fatalf("encode m1: %v", err)
	}
	e2, err := Encode(m2)
	if err != nil {
		t.Fatalf("encode m2: %v", err)
	}

	d := NewDecoder()
	msgs, err := d.Feed(append(e1, e2...))
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expect 2 messages, got %d", len(msgs))
	}
	if string(msgs[0].Payload) != "first" || string(msgs[1].Payload) != "second" {
		t.Errorf("unexpected payloads: %q, %q", msgs[0].Payload, msgs[1].Payload)
	}
}

func TestDecode_PreludeCRCMismatchIsFatal(t *testing.T) {
	msg := Message{Payload: []byte("x")}
	encoded, err := Encode(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// flip a bit inside the prelude CRC field
	encoded[9] ^= 0xff

	d := NewDecoder()
	if _, err := d.Feed(encoded); err == nil {
		t.Fatalf("expect prelude crc error, got none")
	}

	// the decoder must stay in its error state for subsequent feeds
	if _, err := d.Feed(nil); err == nil {
		t.Fatalf("expect decoder to remain in error state")
	}
}

func TestDecode_MessageCRCMismatchIsFatal(t *testing.T) {
	msg := Message{Payload: []byte("hello world")}
	encoded, err := Encode(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// flip a bit in the payload, which invalidates the trailing message crc
	// without touching the prelude
	encoded[preludeLen] ^= 0xff

	d := NewDecoder()
	if _, err := d.Feed(encoded); err == nil {
		t.Fatalf("expect message crc error, got none")
	}
}
