package streaming

import (
	"io"
	"sync"

	"github.com/smithykit/runtime/eventstream"
)

// MessagePublisher decodes an HTTP response body into eventstream
// frames on demand. It reads from the underlying body only as far as
// needed to satisfy outstanding downstream demand, so an unread,
// backpressured event stream never pulls more bytes off the wire than
// the consumer has asked for.
type MessagePublisher struct {
	r       io.Reader
	dec     *eventstream.Decoder
	readBuf []byte
}

// NewMessagePublisher wraps r, decoding the bytes read from it as
// event-stream frames.
func NewMessagePublisher(r io.Reader) *MessagePublisher {
	return &MessagePublisher{r: r, dec: eventstream.NewDecoder(), readBuf: make([]byte, 4096)}
}

func (p *MessagePublisher) Subscribe(sub Subscriber[eventstream.Message]) {
	state := &messagePublisherState{pub: p, sub: sub}
	s := &demandSubscription{}
	s.onRequest = func(int64) { state.drain(s) }
	s.onCancel = func() { state.cancel() }
	sub.OnSubscribe(s)
}

type messagePublisherState struct {
	mu      sync.Mutex
	pub     *MessagePublisher
	sub     Subscriber[eventstream.Message]
	pending []eventstream.Message
	eof     bool
	done    bool
}

func (st *messagePublisherState) drain(s *demandSubscription) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.done {
		return
	}
	for s.take() {
		for len(st.pending) == 0 {
			if st.eof {
				st.done = true
				st.sub.OnComplete()
				return
			}
			n, err := st.pub.r.Read(st.pub.readBuf)
			if n > 0 {
				msgs, decErr := st.pub.dec.Feed(st.pub.readBuf[:n])
				if decErr != nil {
					st.done = true
					st.sub.OnError(decErr)
					return
				}
				st.pending = append(st.pending, msgs...)
			}
			if err != nil {
				if err == io.EOF {
					st.eof = true
					continue
				}
				st.done = true
				st.sub.OnError(err)
				return
			}
		}
		item := st.pending[0]
		st.pending = st.pending[1:]
		st.sub.OnNext(item)
	}
}

func (st *messagePublisherState) cancel() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.done = true
	if closer, ok := st.pub.r.(io.Closer); ok {
		closer.Close()
	}
}

var _ Publisher[eventstream.Message] = (*MessagePublisher)(nil)
