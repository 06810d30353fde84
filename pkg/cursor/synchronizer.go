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
package cursor

import (
	"sync"

	"github.com/yorkie-team/cursors/pkg/awareness"
	"github.com/yorkie-team/cursors/pkg/view"
)

// Synchronizer publishes the local cursor to the awareness and asks the
// view to redraw the cursors when the awareness changes.
type Synchronizer struct {
	view      View
	awareness Awareness
	binding   Binding
	key       *view.PluginKey
	options   Options

	mu             sync.Mutex
	awarenessSubID string
	focusInID      string
	focusOutID     string
	destroyed      bool
}

// NewSynchronizer creates a new Synchronizer and starts listening to the
// awareness and the focus of the view.
func NewSynchronizer(
	v View,
	aw Awareness,
	binding Binding,
	key *view.PluginKey,
	opts ...Option,
) *Synchronizer {
	s := &Synchronizer{
		view:      v,
		awareness: aw,
		binding:   binding,
		key:       key,
		options:   newOptions(opts...),
	}

	s.awarenessSubID = aw.Subscribe(s.handleAwarenessChange)
	s.focusInID = v.On(view.EventFocusIn, s.handleFocus)
	s.focusOutID = v.On(view.EventFocusOut, s.handleFocus)

	return s
}

// Update publishes the local cursor if it changed.
func (s *Synchronizer) Update(v *view.View, prevState *view.State) {
	s.UpdateCursor()
}

// UpdateCursor publishes the selection of the view as the local cursor when
// the view has focus and the document is live, and clears the local cursor
// otherwise. Nothing is published when the cursor did not change.
func (s *Synchronizer) UpdateCursor() {
	name := s.options.FieldName
	current, _ := decodeField(s.awareness.LocalState()[name])

	if s.view.HasFocus() && isLive(s.binding) {
		selection := s.options.SelectionSelector(s.view.State())
		anchor := ToStable(s.binding, selection.Anchor, AssocAfter)
		head := ToStable(s.binding, selection.Head, AssocAfter)
		if current == nil || !current.Head.Equal(head) || !current.Anchor.Equal(anchor) {
			s.options.Logger.Debugf("publish cursor %d-%d", selection.Anchor, selection.Head)
			s.awareness.SetLocalField(name, Field{Anchor: anchor, Head: head})
			s.options.Metrics.AddPublish(false)
		}
		return
	}

	if current != nil {
		s.options.Logger.Debugf("clear cursor")
		s.awareness.SetLocalField(name, nil)
		s.options.Metrics.AddPublish(true)
	}
}

// Destroy stops listening and clears the local cursor. The clear is
// published even if no cursor was set, but only counted if one was.
func (s *Synchronizer) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	s.mu.Unlock()

	s.awareness.Unsubscribe(s.awarenessSubID)
	s.view.Off(s.focusInID)
	s.view.Off(s.focusOutID)

	current, _ := decodeField(s.awareness.LocalState()[s.options.FieldName])
	s.awareness.SetLocalField(s.options.FieldName, nil)
	if current != nil {
		s.options.Metrics.AddPublish(true)
	}
}

func (s *Synchronizer) handleFocus(event view.Event) {
	s.UpdateCursor()
}

// handleAwarenessChange asks the view to recompute the decorations.
func (s *Synchronizer) handleAwarenessChange(change awareness.Change) {
	if s.view.IsDestroyed() {
		return
	}

	tr := s.view.State().Tr().SetMeta(s.key, Meta{AwarenessUpdated: true})
	s.view.Dispatch(tr)
}
