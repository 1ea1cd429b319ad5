package recognition

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned for a result whose request was superseded by a newer
// one for the same key.
var ErrStale = errors.New("recognition superseded by a newer request")

// Tracker enforces "latest request wins" per key. Starting a request cancels
// the previous in-flight request for the same key, and a result that arrives
// after being superseded is discarded.
type Tracker struct {
	mu      sync.Mutex
	pending map[string]*ticket
	seq     uint64
}

type ticket struct {
	seq    uint64
	cancel context.CancelFunc
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{pending: make(map[string]*ticket)}
}

// Begin registers a new request for key and returns a context that is
// cancelled when a newer request for key begins. finish must be called with
// the request's result error; it returns ErrStale when the request was
// superseded, otherwise err unchanged.
func (t *Tracker) Begin(ctx context.Context, key string) (context.Context, func(err error) error) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	t.seq++
	tk := &ticket{seq: t.seq, cancel: cancel}
	if prev, ok := t.pending[key]; ok {
		prev.cancel()
	}
	t.pending[key] = tk
	t.mu.Unlock()

	finish := func(err error) error {
		defer cancel()

		t.mu.Lock()
		defer t.mu.Unlock()
		cur, ok := t.pending[key]
		if !ok || cur.seq != tk.seq {
			return ErrStale
		}
		delete(t.pending, key)
		return err
	}
	return ctx, finish
}

// InFlight reports how many keys have a request pending.
func (t *Tracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}
