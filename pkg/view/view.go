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
// Package view provides a headless editor view: an immutable editor state
// changed by transactions, plugins with their own state and decorations, and
// focus events. Drawing is left to a render hook.
package view

import (
	"sync"

	"github.com/yorkie-team/cursors/internal/log"
	"github.com/yorkie-team/cursors/pkg/pubsub"
)

// EventType is the type of the events of a View.
type EventType string

const (
	// EventFocusIn occurs when the view gains focus.
	EventFocusIn EventType = "focusin"

	// EventFocusOut occurs when the view loses focus.
	EventFocusOut EventType = "focusout"

	// EventUpdate occurs after the view has applied a transaction and
	// rendered.
	EventUpdate EventType = "update"
)

// Event is an event of a View.
type Event struct {
	Type EventType
	View *View
}

// View is a headless editor view. A transaction dispatched to the view is
// applied to the state, then the plugin views are updated, then the view is
// rendered.
type View struct {
	mu        sync.Mutex
	state     *State
	focused   bool
	destroyed bool

	pluginViews []PluginView
	seenStates  []*State
	events      map[EventType]*pubsub.Publisher[Event]
	render      func(view *View)
	logger      log.Logger
}

// New creates a new View of the given state and creates the views of its
// plugins.
func New(state *State, opts ...Option) *View {
	options := newOptions(opts...)
	v := &View{
		state:  state,
		render: options.Render,
		logger: options.Logger,
		events: map[EventType]*pubsub.Publisher[Event]{
			EventFocusIn:  pubsub.NewPublisher[Event](),
			EventFocusOut: pubsub.NewPublisher[Event](),
			EventUpdate:   pubsub.NewPublisher[Event](),
		},
	}

	for _, plugin := range state.Plugins() {
		if plugin.View != nil {
			v.pluginViews = append(v.pluginViews, plugin.View(v))
			v.seenStates = append(v.seenStates, state)
		}
	}
	if v.render != nil {
		v.render(v)
	}

	return v
}

// State returns the current state of the view.
func (v *View) State() *State {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.state
}

// Dispatch applies the given transaction to the state of the view. Dispatch
// may be called again from a plugin view while the view is being updated.
// Each plugin view is given the last state it was updated with as the
// previous state, and is not updated again once a nested dispatch has
// brought it to the current state.
func (v *View) Dispatch(tr *Transaction) {
	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		v.logger.Debugf("dispatch on destroyed view ignored")
		return
	}
	v.state = v.state.Apply(tr)
	pluginViews := v.pluginViews
	v.mu.Unlock()

	for i, pluginView := range pluginViews {
		if prevState, ok := v.advance(i); ok {
			pluginView.Update(v, prevState)
		}
	}

	if v.render != nil {
		v.render(v)
	}
	v.events[EventUpdate].Publish(Event{Type: EventUpdate, View: v})
}

// Decorations returns the decorations of the plugins for the current state.
func (v *View) Decorations() []*DecorationSet {
	state := v.State()

	var sets []*DecorationSet
	for _, plugin := range state.Plugins() {
		if plugin.Decorations == nil {
			continue
		}
		if set := plugin.Decorations(state); set != nil {
			sets = append(sets, set)
		}
	}
	return sets
}

// HasFocus returns whether the view has focus.
func (v *View) HasFocus() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.focused
}

// Focus gives focus to the view.
func (v *View) Focus() {
	v.setFocus(true)
}

// Blur takes focus away from the view.
func (v *View) Blur() {
	v.setFocus(false)
}

func (v *View) setFocus(focused bool) {
	v.mu.Lock()
	if v.destroyed || v.focused == focused {
		v.mu.Unlock()
		return
	}
	v.focused = focused
	v.mu.Unlock()

	eventType := EventFocusOut
	if focused {
		eventType = EventFocusIn
	}
	v.events[eventType].Publish(Event{Type: eventType, View: v})
}

// On registers the given handler of the given event and returns the id to
// remove it with Off.
func (v *View) On(eventType EventType, handler func(Event)) string {
	publisher, ok := v.events[eventType]
	if !ok {
		v.logger.Warnf("unknown event type: %s", eventType)
		return ""
	}
	return publisher.Subscribe(handler)
}

// Off removes the handler of the given id.
func (v *View) Off(id string) {
	for _, publisher := range v.events {
		if publisher.Unsubscribe(id) {
			return
		}
	}
}

// Listeners returns the number of the handlers of the given event.
func (v *View) Listeners(eventType EventType) int {
	publisher, ok := v.events[eventType]
	if !ok {
		return 0
	}
	return publisher.Len()
}

// IsDestroyed returns whether the view has been destroyed.
func (v *View) IsDestroyed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.destroyed
}

// Destroy destroys the plugin views. The view ignores transactions and focus
// changes afterwards.
func (v *View) Destroy() {
	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		return
	}
	v.destroyed = true
	pluginViews := v.pluginViews
	v.pluginViews = nil
	v.seenStates = nil
	v.mu.Unlock()

	for _, pluginView := range pluginViews {
		pluginView.Destroy()
	}
}

// advance records that the i-th plugin view is updated to the current state
// and returns the state it was updated with before. It returns false if the
// plugin view is already up to date or the view is destroyed.
func (v *View) advance(i int) (*State, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if i >= len(v.seenStates) || v.seenStates[i] == v.state {
		return nil, false
	}
	prevState := v.seenStates[i]
	v.seenStates[i] = v.state
	return prevState, true
}
