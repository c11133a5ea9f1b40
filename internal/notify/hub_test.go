package notify

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	ID        string `json:"id"`
	NumGuests int    `json:"numguests"`
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	h := NewHub()
	defer h.Close()

	ch1, cancel1 := h.Subscribe()
	ch2, cancel2 := h.Subscribe()
	defer cancel1()
	defer cancel2()
	require.Equal(t, 2, h.SubscriberCount())

	h.Publish(testEvent{ID: "6109dc9adcf23a013990701d", NumGuests: 4})

	for _, ch := range []<-chan []byte{ch1, ch2} {
		select {
		case data := <-ch:
			var ev testEvent
			require.NoError(t, json.Unmarshal(data, &ev))
			assert.Equal(t, "6109dc9adcf23a013990701d", ev.ID)
			assert.Equal(t, 4, ev.NumGuests)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestCancelRemovesSubscriber(t *testing.T) {
	h := NewHub()
	defer h.Close()

	ch, cancel := h.Subscribe()
	require.Equal(t, 1, h.SubscriberCount())

	cancel()
	cancel() // idempotent
	assert.Equal(t, 0, h.SubscriberCount())

	_, open := <-ch
	assert.False(t, open, "cancelled subscriber channel must be closed")
}

func TestSlowSubscriberMissesEventsWithoutBlocking(t *testing.T) {
	h := NewHub()
	defer h.Close()

	ch, cancel := h.Subscribe()
	defer cancel()

	// Never read: the buffer fills and further publishes are dropped.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			h.Publish(testEvent{NumGuests: i})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestCloseTerminatesSubscribers(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Close()
	_, open := <-ch
	assert.False(t, open)

	// After close everything is a no-op.
	h.Publish(testEvent{})
	ch2, cancel2 := h.Subscribe()
	defer cancel2()
	_, open = <-ch2
	assert.False(t, open)
	assert.Equal(t, 0, h.SubscriberCount())
}

func TestConcurrentSubscribePublish(t *testing.T) {
	h := NewHub()
	defer h.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, cancel := h.Subscribe()
				cancel()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.Publish(testEvent{NumGuests: j})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, h.SubscriberCount())
}
