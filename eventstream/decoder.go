package eventstream

import (
	"encoding/binary"
	"fmt"
)

type decoderState int

const (
	stateAwaitPrelude decoderState = iota
	stateAwaitRest
	stateError
)

// Decoder incrementally parses a byte stream into a sequence of
// Messages. Feed may be called repeatedly as bytes arrive off the wire;
// each call returns every message that became fully available, in
// order. Once a CRC mismatch is observed the decoder enters a permanent
// Error state: the stream is considered corrupt and unrecoverable, and
// every subsequent Feed call returns the same error.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	state decoderState

	buf []byte // internal accumulation buffer, doubled in capacity as needed

	totalLen int
	hdrLen   int

	err error
}

// NewDecoder returns a Decoder ready to accept bytes via Feed.
func NewDecoder() *Decoder {
	return &Decoder{buf: make([]byte, 0, 4096)}
}

// Feed appends p to the decoder's internal buffer (copying it -- no
// reference to p is retained past this call) and returns every message
// that completed as a result.
func (d *Decoder) Feed(p []byte) ([]Message, error) {
	if d.state == stateError {
		return nil, d.err
	}

	d.append(p)

	var msgs []Message
	for {
		before := d.state
		msg, ok, err := d.step()
		if err != nil {
			d.state = stateError
			d.err = err
			return msgs, err
		}
		if !ok {
			if d.state != before {
				continue
			}
			return msgs, nil
		}
		msgs = append(msgs, msg)
	}
}

func (d *Decoder) append(p []byte) {
	if len(p) == 0 {
		return
	}
	need := len(d.buf) + len(p)
	if cap(d.buf) < need {
		newCap := cap(d.buf)
		if newCap == 0 {
			newCap = 4096
		}
		for newCap < need {
			newCap *= 2
		}
		grown := make([]byte, len(d.buf), newCap)
		copy(grown, d.buf)
		d.buf = grown
	}
	d.buf = append(d.buf, p...)
}

// step attempts to advance the state machine by exactly one transition,
// returning a completed Message when AwaitRest finishes.
func (d *Decoder) step() (Message, bool, error) {
	switch d.state {
	case stateAwaitPrelude:
		if len(d.buf) < preludeLen {
			return Message{}, false, nil
		}

		gotCRC := binary.BigEndian.Uint32(d.buf[8:12])
		wantCRC := ieeeCRC32(d.buf[0:8])
		if gotCRC != wantCRC {
			return Message{}, false, fmt.Errorf("eventstream: prelude crc mismatch: got %#x want %#x", gotCRC, wantCRC)
		}

		d.totalLen = int(binary.BigEndian.Uint32(d.buf[0:4]))
		d.hdrLen = int(binary.BigEndian.Uint32(d.buf[4:8]))
		if d.totalLen < preludeLen+crcLen || d.hdrLen > d.totalLen-preludeLen-crcLen {
			return Message{}, false, fmt.Errorf("eventstream: invalid prelude: totalLen=%d hdrLen=%d", d.totalLen, d.hdrLen)
		}

		d.state = stateAwaitRest
		return Message{}, false, nil

	case stateAwaitRest:
		if len(d.buf) < d.totalLen {
			return Message{}, false, nil
		}

		frame := d.buf[:d.totalLen]
		gotCRC := binary.BigEndian.Uint32(frame[d.totalLen-crcLen : d.totalLen])
		wantCRC := ieeeCRC32(frame[:d.totalLen-crcLen])
		if gotCRC != wantCRC {
			return Message{}, false, fmt.Errorf("eventstream: message crc mismatch: got %#x want %#x", gotCRC, wantCRC)
		}

		hdrStart := preludeLen
		hdrEnd := hdrStart + d.hdrLen
		hdrs, err := decodeHeaders(frame[hdrStart:hdrEnd])
		if err != nil {
			return Message{}, false, err
		}

		payload := make([]byte, d.totalLen-crcLen-hdrEnd)
		copy(payload, frame[hdrEnd:d.totalLen-crcLen])

		remaining := len(d.buf) - d.totalLen
		copy(d.buf, d.buf[d.totalLen:])
		d.buf = d.buf[:remaining]

		d.state = stateAwaitPrelude
		d.totalLen = 0
		d.hdrLen = 0

		return Message{Headers: hdrs, Payload: payload}, true, nil
	}

	return Message{}, false, fmt.Errorf("eventstream: decoder is in an unrecoverable error state")
}
