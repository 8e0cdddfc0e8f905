// Package asynchook moves datecodec.Hooks calls off the decode path.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{RejectEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	dc, _ := datecodec.New(datecodec.Options{Hooks: hooks})
//
// Events are dropped when the queue is full.
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/datecodec"
)

type Hooks struct {
	inner   datecodec.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards q against send-after-close
	closed  bool
	dropped atomic.Uint64
}

var _ datecodec.Hooks = (*Hooks)(nil)

func New(inner datecodec.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Later events are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) DecodeRejected(typ string, r datecodec.Reason) {
	h.try(func() { h.inner.DecodeRejected(typ, r) })
}
func (h *Hooks) LayoutFallback(l string)       { h.try(func() { h.inner.LayoutFallback(l) }) }
func (h *Hooks) EpochCoerced(typ string)       { h.try(func() { h.inner.EpochCoerced(typ) }) }
func (h *Hooks) MemoSetRejected(k string)      { h.try(func() { h.inner.MemoSetRejected(k) }) }
func (h *Hooks) MemoSelfHeal(k, reason string) { h.try(func() { h.inner.MemoSelfHeal(k, reason) }) }
