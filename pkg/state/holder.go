// Package state holds the widget's input values and last predicted price and
// notifies subscribers whenever either changes.
package state

import (
	"sync"

	"github.com/goliatone/go-houseprice/pkg/model"
)

// Snapshot is an immutable view of the holder at one point in time. Version
// increases by one on every applied change, PriceVersion only when a price is
// applied.
type Snapshot struct {
	Data         model.HouseData
	Price        model.Price
	Version      uint64
	PriceVersion uint64
}

// Token identifies one submission attempt. Tokens are issued in strictly
// increasing order.
type Token uint64

// Listener receives the snapshot produced by a change.
type Listener func(Snapshot)

// Holder owns the HouseData and Price for a single widget instance. It is safe
// for concurrent use.
type Holder struct {
	mu        sync.RWMutex
	snap      Snapshot
	lastToken Token

	listenersMu sync.Mutex
	listeners   map[uint64]Listener
	nextID      uint64
}

// New returns a holder with every field empty and no price.
func New() *Holder {
	return &Holder{listeners: make(map[uint64]Listener)}
}

// Snapshot returns the current state.
func (h *Holder) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}

// SetField replaces the value of one field. Values are stored as given.
func (h *Holder) SetField(field model.Field, value string) error {
	h.mu.Lock()
	next, err := h.snap.Data.With(field, value)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	h.snap.Data = next
	h.snap.Version++
	snap := h.snap
	h.mu.Unlock()

	h.notify(snap)
	return nil
}

// SetPrice replaces the predicted price unconditionally.
func (h *Holder) SetPrice(value float64) {
	h.mu.Lock()
	h.snap.Price = model.PriceOf(value)
	h.snap.Version++
	h.snap.PriceVersion++
	snap := h.snap
	h.mu.Unlock()

	h.notify(snap)
}

// BeginSubmission issues the token for a new submission attempt. Any token
// issued earlier becomes stale.
func (h *Holder) BeginSubmission() Token {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastToken++
	return h.lastToken
}

// SetPriceFor applies value only when token is the most recently issued one.
// It reports whether the price was applied.
func (h *Holder) SetPriceFor(token Token, value float64) bool {
	h.mu.Lock()
	if token != h.lastToken {
		h.mu.Unlock()
		return false
	}
	h.snap.Price = model.PriceOf(value)
	h.snap.Version++
	h.snap.PriceVersion++
	snap := h.snap
	h.mu.Unlock()

	h.notify(snap)
	return true
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription.
func (h *Holder) Subscribe(fn Listener) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	h.listenersMu.Lock()
	if h.listeners == nil {
		h.listeners = make(map[uint64]Listener)
	}
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.listenersMu.Lock()
			delete(h.listeners, id)
			h.listenersMu.Unlock()
		})
	}
}

// listeners run outside h.mu so they may read the holder again.
func (h *Holder) notify(snap Snapshot) {
	h.listenersMu.Lock()
	fns := make([]Listener, 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.listenersMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
