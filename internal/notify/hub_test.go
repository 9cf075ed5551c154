package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversInSubscriptionOrder(t *testing.T) {
	hub := NewHub()
	var got []string
	hub.Subscribe(func(ctx context.Context, c Change) error {
		got = append(got, "first:"+c.HouseholdID)
		return nil
	})
	hub.Subscribe(func(ctx context.Context, c Change) error {
		got = append(got, "second:"+string(c.Kind))
		return nil
	})

	hub.Publish(context.Background(), Change{HouseholdID: "h1", Kind: KindBatch})

	require.Equal(t, []string{"first:h1", "second:batch"}, got)
}

func TestHubKeepsGoingAfterHandlerError(t *testing.T) {
	hub := NewHub()
	called := false
	hub.Subscribe(func(ctx context.Context, c Change) error {
		return errors.New("boom")
	})
	hub.Subscribe(func(ctx context.Context, c Change) error {
		called = true
		return nil
	})

	hub.Publish(context.Background(), Change{HouseholdID: "h1", Kind: KindProduct})

	assert.True(t, called)
}

func TestHubConcurrentPublish(t *testing.T) {
	hub := NewHub()
	var mu sync.Mutex
	count := 0
	hub.Subscribe(func(ctx context.Context, c Change) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Publish(context.Background(), Change{HouseholdID: "h", Kind: KindShopping})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, count)
}
