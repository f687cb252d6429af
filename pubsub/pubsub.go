// Package pubsub is a minimal generic fan-out used to stream drum events
// to websocket clients.
package pubsub

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var plog zerolog.Logger

func init() {
	plog = log.With().Str("component", "pubsub").Logger()
}

type SubscriptionID int64

type Pubsub[T any] struct {
	nextID      SubscriptionID
	subscribers map[SubscriptionID]chan T
	mu          sync.RWMutex
}

func New[T any]() *Pubsub[T] {
	return &Pubsub[T]{
		subscribers: make(map[SubscriptionID]chan T),
	}
}

// Subscribe registers a new listener. The channel is buffered so one slow
// reader only drops its own messages.
func (ps *Pubsub[T]) Subscribe() (SubscriptionID, <-chan T) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch := make(chan T, 16)
	id := ps.nextID

	ps.subscribers[id] = ch
	ps.nextID += 1

	return id, ch
}

func (ps *Pubsub[T]) Unsubscribe(id SubscriptionID) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch, ok := ps.subscribers[id]
	if !ok {
		return
	}

	delete(ps.subscribers, id)
	close(ch)
}

// Publish delivers msg to every subscriber without blocking; full channels
// drop the message.
func (ps *Pubsub[T]) Publish(msg T) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for id, ch := range ps.subscribers {
		select {
		case ch <- msg:
		default:
			plog.Warn().
				Int64("subscription_id", int64(id)).
				Interface("message", msg).
				Msg("Message dropped, channel full")
		}
	}
}
