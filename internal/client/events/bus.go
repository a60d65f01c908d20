// Package events is a small in-process publish/subscribe channel for
// client-wide signals such as a login state change.
package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Event names a broadcast signal. Events carry no payload.
type Event string

const (
	LoginChanged Event = "loginChanged"
)

// Handler is invoked synchronously for every published event it subscribed to.
type Handler func(ctx context.Context, event Event)

// SubscriptionID identifies a registered handler for Unsubscribe.
type SubscriptionID string

type subscription struct {
	id      SubscriptionID
	event   Event
	handler Handler
}

// Bus delivers events to subscribers in subscription order.
// It is safe for concurrent use.
type Bus struct {
	mu   sync.RWMutex
	subs []subscription
}

// NewBus returns a Bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for event and returns an ID for Unsubscribe.
func (b *Bus) Subscribe(event Event, h Handler) SubscriptionID {
	id := SubscriptionID(uuid.NewString())

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscription{id: id, event: event, handler: h})
	return id
}

// Unsubscribe removes the handler registered under id. It reports whether a
// handler was removed.
func (b *Bus) Unsubscribe(id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish calls every handler subscribed to event. Handlers run outside the
// bus lock, so they may subscribe or unsubscribe themselves.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	targets := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.event == event {
			targets = append(targets, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range targets {
		h(ctx, event)
	}
}
