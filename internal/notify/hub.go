// Package notify implements the in-process fanout of reservation
// events to connected notification-stream clients.  Delivery is
// best-effort: nothing is persisted, nothing is replayed, and a
// subscriber that cannot keep up simply misses events.
package notify

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub owns the set of currently connected subscribers.  It is created
// once at server start, shared by the HTTP layer, and closed at
// shutdown so every open event stream terminates cleanly.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan []byte]struct{}
	closed bool
}

// subscriberBuffer is the per-subscriber channel depth.  A subscriber
// whose buffer is full when an event is published misses that event
// rather than blocking the publisher.
const subscriberBuffer = 16

// NewHub returns an empty hub ready to accept subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan []byte]struct{})}
}

// Subscribe registers a new subscriber and returns its event channel
// together with a cancel function.  The channel is closed either by
// cancel or when the hub shuts down.  Cancel is safe to call more
// than once.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
			h.mu.Unlock()
		})
	}
	return ch, cancel
}

// Publish serializes v as JSON and sends it to every subscriber.  The
// send never blocks; subscribers with a full buffer are skipped.
func (h *Hub) Publish(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("notify: marshal event failed: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for ch := range h.subs {
		select {
		case ch <- data:
		default:
			// Slow consumer; it misses this event.
		}
	}
}

// SubscriberCount returns the number of currently connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close terminates the hub.  All subscriber channels are closed and
// any later Publish or Subscribe becomes a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}
