/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
// Package pubsub provides synchronous in-process subscriptions. Listeners
// are called on the publishing goroutine in the order they subscribed.
package pubsub

import (
	"sync"

	"github.com/rs/xid"
)

// Subscription represents a subscription of a listener to events of type E.
type Subscription[E any] struct {
	id       string
	listener func(E)
}

// ID returns the id of this subscription.
func (s *Subscription[E]) ID() string {
	return s.id
}

// Publisher keeps the subscriptions to events of type E.
type Publisher[E any] struct {
	mu            sync.RWMutex
	subscriptions []*Subscription[E]
}

// NewPublisher creates a new instance of Publisher.
func NewPublisher[E any]() *Publisher[E] {
	return &Publisher[E]{}
}

// Subscribe registers the given listener and returns the id to unsubscribe.
func (p *Publisher[E]) Subscribe(listener func(E)) string {
	sub := &Subscription[E]{
		id:       xid.New().String(),
		listener: listener,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscriptions = append(p.subscriptions, sub)

	return sub.id
}

// Unsubscribe removes the subscription of the given id. It returns false if
// there is no such subscription.
func (p *Publisher[E]) Unsubscribe(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, sub := range p.subscriptions {
		if sub.id == id {
			p.subscriptions = append(p.subscriptions[:i:i], p.subscriptions[i+1:]...)
			return true
		}
	}

	return false
}

// Len returns the number of subscriptions.
func (p *Publisher[E]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.subscriptions)
}

// Publish calls the listeners with the given event. The listeners are
// called without holding the lock, so they may subscribe or unsubscribe.
func (p *Publisher[E]) Publish(event E) {
	p.mu.RLock()
	subs := make([]*Subscription[E], len(p.subscriptions))
	copy(subs, p.subscriptions)
	p.mu.RUnlock()

	for _, sub := range subs {
		sub.listener(event)
	}
}
