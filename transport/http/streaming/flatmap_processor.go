package streaming

import "sync"

// FlatMapProcessor is both a Subscriber of In and a Publisher of Out. It
// buffers upstream items, applies Map to each, and republishes the
// results downstream under the downstream subscriber's own demand.
//
// It requests exactly one upstream item at a time: a single-item
// internal buffer is enough because one input yields zero or more
// downstream items, and the next upstream item is only requested once
// the output queue from the previous one has fully drained. This
// preserves input order and keeps emission paced to downstream demand.
type FlatMapProcessor[In, Out any] struct {
	// Map turns one upstream item into zero or more downstream items.
	Map func(In) ([]Out, error)

	// OnFailure, if set, turns a Map or upstream error into a terminal
	// frame delivered downstream via OnNext immediately before OnError.
	OnFailure func(error) (Out, bool)

	mu             sync.Mutex
	upstream       Subscription
	downstream     Subscriber[Out]
	downSub        *demandSubscription
	queue          []Out
	failed         bool
	pendingErr     error
	upstreamClosed bool
	completed      bool
}

func (p *FlatMapProcessor[In, Out]) Subscribe(sub Subscriber[Out]) {
	p.mu.Lock()
	p.downstream = sub
	p.downSub = &demandSubscription{}
	p.downSub.onRequest = func(int64) { p.flush() }
	p.downSub.onCancel = func() {
		p.mu.Lock()
		upstream := p.upstream
		p.mu.Unlock()
		if upstream != nil {
			upstream.Cancel()
		}
	}
	p.mu.Unlock()
	sub.OnSubscribe(p.downSub)
}

func (p *FlatMapProcessor[In, Out]) OnSubscribe(sub Subscription) {
	p.mu.Lock()
	p.upstream = sub
	p.mu.Unlock()
	sub.Request(1)
}

func (p *FlatMapProcessor[In, Out]) OnNext(item In) {
	outs, err := p.Map(item)
	p.mu.Lock()
	p.queue = append(p.queue, outs...)
	if err != nil {
		p.failed = true
		p.pendingErr = err
		if p.OnFailure != nil {
			if frame, ok := p.OnFailure(err); ok {
				p.queue = append(p.queue, frame)
			}
		}
	}
	p.mu.Unlock()
	p.flush()
}

func (p *FlatMapProcessor[In, Out]) OnError(err error) {
	p.mu.Lock()
	p.failed = true
	p.pendingErr = err
	if p.OnFailure != nil {
		if frame, ok := p.OnFailure(err); ok {
			p.queue = append(p.queue, frame)
		}
	}
	p.mu.Unlock()
	p.flush()
}

func (p *FlatMapProcessor[In, Out]) OnComplete() {
	p.mu.Lock()
	p.upstreamClosed = true
	p.mu.Unlock()
	p.flush()
}

// flush delivers as much of the queue as downstream demand allows, then
// either requests the next upstream item (queue drained, stream still
// open), completes, or errors -- emitting the failure frame queued by
// OnFailure, if any, before calling OnError.
//
// It never holds p.mu while calling out to downstream or upstream: a
// synchronous, blocking Publisher (reading a real HTTP body, say) can
// call straight back into OnNext/OnError/OnComplete before Request
// returns, and those methods take p.mu themselves. Each iteration
// re-acquires the lock only to read and mutate state, releasing it
// before the one external call that iteration makes.
func (p *FlatMapProcessor[In, Out]) flush() {
	for {
		p.mu.Lock()
		if p.downSub == nil || p.completed {
			p.mu.Unlock()
			return
		}

		if len(p.queue) > 0 && p.downSub.take() {
			item := p.queue[0]
			p.queue = p.queue[1:]
			p.mu.Unlock()
			p.downstream.OnNext(item)
			continue
		}
		if len(p.queue) > 0 {
			p.mu.Unlock()
			return
		}

		switch {
		case p.failed:
			p.completed = true
			err := p.pendingErr
			p.mu.Unlock()
			p.downstream.OnError(err)
		case p.upstreamClosed:
			p.completed = true
			p.mu.Unlock()
			p.downstream.OnComplete()
		case p.upstream != nil:
			upstream := p.upstream
			p.mu.Unlock()
			upstream.Request(1)
		default:
			p.mu.Unlock()
		}
		return
	}
}

var (
	_ Subscriber[int] = (*FlatMapProcessor[int, int])(nil)
	_ Publisher[int]  = (*FlatMapProcessor[int, int])(nil)
)
