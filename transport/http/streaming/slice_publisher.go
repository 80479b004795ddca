package streaming

import "sync"

// SlicePublisher republishes a fixed slice of items under demand. It is
// mainly useful in tests and for shapes whose full contents are already
// resident in memory (a non-streaming union's worth of events, say).
type SlicePublisher[T any] struct {
	Items []T
}

func (p *SlicePublisher[T]) Subscribe(sub Subscriber[T]) {
	state := &sliceSubscriptionState[T]{items: p.Items, sub: sub}
	s := &demandSubscription{}
	s.onRequest = func(int64) { state.drain(s) }
	s.onCancel = func() { state.cancel() }
	sub.OnSubscribe(s)
}

type sliceSubscriptionState[T any] struct {
	mu   sync.Mutex
	items []T
	idx  int
	sub  Subscriber[T]
	done bool
}

func (st *sliceSubscriptionState[T]) drain(s *demandSubscription) {
	st.mu.Lock()
	if st.done {
		st.mu.Unlock()
		return
	}
	for s.take() {
		if st.idx >= len(st.items) {
			st.done = true
			st.mu.Unlock()
			st.sub.OnComplete()
			return
		}
		item := st.items[st.idx]
		st.idx++
		st.mu.Unlock()
		st.sub.OnNext(item)
		st.mu.Lock()
		if st.done {
			break
		}
	}
	st.mu.Unlock()
}

func (st *sliceSubscriptionState[T]) cancel() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.done = true
}

var _ Publisher[int] = (*SlicePublisher[int])(nil)
