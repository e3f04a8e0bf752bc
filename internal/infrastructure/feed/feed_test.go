package feed

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"homefood/internal/domain/entity"
)

func TestHubPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	var mu sync.Mutex
	got := make(map[string]int)
	subscribe := func(name string) *Subscription {
		return hub.Subscribe("order-1", func([]*entity.Message) {
			mu.Lock()
			got[name]++
			mu.Unlock()
		})
	}

	a := subscribe("a")
	b := subscribe("b")
	defer a.Cancel()
	defer b.Cancel()

	hub.Publish("order-1", nil)
	hub.Publish("order-2", nil)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, got["a"])
	assert.Equal(t, 1, got["b"])
}

func TestSubscriptionCancelBlocksDelivery(t *testing.T) {
	hub := NewHub()

	var mu sync.Mutex
	calls := 0
	sub := hub.Subscribe("order-1", func([]*entity.Message) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	hub.Publish("order-1", nil)
	sub.Cancel()
	hub.Publish("order-1", nil)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestSubscriptionCancelIsIdempotent(t *testing.T) {
	hub := NewHub()

	sub := hub.Subscribe("order-1", func([]*entity.Message) {})
	sub.Cancel()
	sub.Cancel()

	hub.Publish("order-1", nil)
}

func TestHubConcurrentPublishAndCancel(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		sub := hub.Subscribe("order-1", func([]*entity.Message) {})
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Publish("order-1", nil)
		}()
		go func() {
			defer wg.Done()
			sub.Cancel()
		}()
	}
	wg.Wait()
}
