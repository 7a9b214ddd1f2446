// Package feed fans collection change notifications out to live
// subscribers. Services ping the hub after every successful mutation; each
// subscriber re-queries its collection and pushes a full replacement
// snapshot downstream, mirroring how the original document store delivered
// feeds. Notifications within one collection are coalesced; ordering across
// collections is not guaranteed.
package feed

import (
	"context"
	"sync"
)

// Collection names carried by the hub.
const (
	CollectionPosts    = "posts"
	CollectionProducts = "products"
	CollectionArticles = "articles"
	CollectionOrders   = "orders"
	CollectionUsers    = "users"
)

// Subscription is a cancelable handle on one collection's change stream.
// Changes delivers one tick per (coalesced) batch of changes; the caller
// re-fetches the snapshot on each tick. Cancel is safe to call more than
// once and must run on teardown so the hub stops tracking the subscriber.
type Subscription struct {
	collection string
	ch         chan struct{}
	hub        *Hub
	once       sync.Once
}

// Changes returns the notification channel.
func (s *Subscription) Changes() <-chan struct{} { return s.ch }

// Cancel detaches the subscription from the hub.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

// Hub tracks live subscriptions per collection.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

// Subscribe opens a change stream for one collection. The first tick is
// delivered immediately so subscribers render an initial snapshot. The
// subscription is canceled automatically when ctx ends.
func (h *Hub) Subscribe(ctx context.Context, collection string) *Subscription {
	sub := &Subscription{
		collection: collection,
		ch:         make(chan struct{}, 1),
		hub:        h,
	}
	sub.ch <- struct{}{}

	h.mu.Lock()
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[*Subscription]struct{})
	}
	h.subs[collection][sub] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		sub.Cancel()
	}()
	return sub
}

// Notify wakes every subscriber of a collection. The send is non-blocking:
// a subscriber with a pending tick simply coalesces this change into it.
func (h *Hub) Notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[collection] {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[sub.collection], sub)
}
