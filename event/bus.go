// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: event/bus.go
// Summary: Typed broadcast bus with explicit subscription tokens.
// Usage: Views subscribe to the workspace bus and receive model snapshots.
// Notes: Handlers run synchronously on the broadcasting goroutine and must
// not subscribe or unsubscribe from inside a handler.

package event

import "sync"

// Listener receives broadcast events.
type Listener[T any] interface {
	OnEvent(ev T)
}

// Subscription identifies one listener registration. Holding the token is
// the only way to unsubscribe; there is no identity comparison of
// listeners.
type Subscription struct {
	id uint64
}

type entry[T any] struct {
	id       uint64
	listener Listener[T]
}

// Bus broadcasts events of one type to subscribers in subscription order.
type Bus[T any] struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners []entry[T]
	closed    bool
}

// NewBus returns an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers a listener and returns its token. A nil token is
// returned after Close.
func (b *Bus[T]) Subscribe(l Listener[T]) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.nextID++
	b.listeners = append(b.listeners, entry[T]{id: b.nextID, listener: l})
	return &Subscription{id: b.nextID}
}

// SubscribeFunc registers a plain function as a listener.
func (b *Bus[T]) SubscribeFunc(fn func(T)) *Subscription {
	return b.Subscribe(funcListener[T](fn))
}

// Unsubscribe removes the registration identified by the token. Unknown or
// nil tokens are ignored.
func (b *Bus[T]) Unsubscribe(s *Subscription) {
	if s == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, e := range b.listeners {
		if e.id == s.id {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Broadcast delivers ev to every listener in subscription order.
func (b *Bus[T]) Broadcast(ev T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, e := range b.listeners {
		e.listener.OnEvent(ev)
	}
}

// Len reports the number of live subscriptions.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

// Close drops all listeners and rejects new subscriptions. Broadcasting
// after Close is a no-op.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.listeners = nil
}

type funcListener[T any] func(T)

func (f funcListener[T]) OnEvent(ev T) { f(ev) }
