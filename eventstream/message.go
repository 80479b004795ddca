// Package eventstream implements the binary event-stream framing used to
// carry a sequence of typed messages over a single HTTP body: a prelude
// giving the total and header lengths guarded by its own CRC-32, a block
// of typed headers, an opaque payload, and a trailing CRC-32 over the
// entire message.
package eventstream

// Message is one decoded (or to-be-encoded) event-stream frame: an
// ordered set of headers and an opaque payload. The shape layer in
// package eventstreamapi interprets Headers to route Payload to a
// modeled event, exception, or initial message.
type Message struct {
	Headers Headers
	Payload []byte
}
