package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case <-sub.Changes():
	case <-time.After(time.Second):
		t.Fatal("expected a tick")
	}
}

func assertNoTick(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case <-sub.Changes():
		t.Fatal("unexpected tick")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_InitialTick(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(context.Background(), CollectionPosts)
	defer sub.Cancel()

	drain(t, sub)
	assertNoTick(t, sub)
}

func TestHub_NotifyReachesOnlyThatCollection(t *testing.T) {
	hub := NewHub()
	posts := hub.Subscribe(context.Background(), CollectionPosts)
	orders := hub.Subscribe(context.Background(), CollectionOrders)
	defer posts.Cancel()
	defer orders.Cancel()
	drain(t, posts)
	drain(t, orders)

	hub.Notify(CollectionPosts)
	drain(t, posts)
	assertNoTick(t, orders)
}

func TestHub_CoalescesPendingTicks(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(context.Background(), CollectionProducts)
	defer sub.Cancel()
	drain(t, sub)

	// Several changes while the subscriber is busy collapse into one tick.
	hub.Notify(CollectionProducts)
	hub.Notify(CollectionProducts)
	hub.Notify(CollectionProducts)

	drain(t, sub)
	assertNoTick(t, sub)
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(context.Background(), CollectionArticles)
	drain(t, sub)

	sub.Cancel()
	hub.Notify(CollectionArticles)
	assertNoTick(t, sub)

	// Double cancel is safe.
	sub.Cancel()
}

func TestHub_ContextCancellationDetaches(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	sub := hub.Subscribe(ctx, CollectionPosts)
	drain(t, sub)

	cancel()
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		_, still := hub.subs[CollectionPosts][sub]
		return !still
	}, time.Second, 10*time.Millisecond)

	hub.Notify(CollectionPosts)
	assertNoTick(t, sub)
}

func TestHub_IndependentSubscribersEachGetTicks(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe(context.Background(), CollectionPosts)
	b := hub.Subscribe(context.Background(), CollectionPosts)
	defer a.Cancel()
	defer b.Cancel()
	drain(t, a)
	drain(t, b)

	hub.Notify(CollectionPosts)
	drain(t, a)
	drain(t, b)
	assert.NotEqual(t, a, b)
}
