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
// Package binding binds a Document to a View. Local edits of the view are
// applied to the document, and the changes of the other replicas applied to
// the document are dispatched to the view as transactions.
package binding

import (
	"sync"

	"github.com/yorkie-team/cursors/internal/log"
	"github.com/yorkie-team/cursors/pkg/cursor"
	"github.com/yorkie-team/cursors/pkg/document"
	"github.com/yorkie-team/cursors/pkg/view"
)

// PluginName is the name of the key of the sync plugin.
const PluginName = "y-sync"

// SyncState is the state of the sync plugin in the editor state.
type SyncState struct {
	// IsChangeOrigin is true when the transaction that produced the state
	// came from the document.
	IsChangeOrigin bool
}

// Binding keeps a Document and a View in sync.
type Binding struct {
	mu        sync.Mutex
	doc       *document.Document
	key       *view.PluginKey
	view      *view.View
	subID     string
	pending   []view.Step
	destroyed bool

	logger log.Logger
}

// New creates a new Binding of the given document. The binding is bound to
// a view when the view is created with the plugin of the binding.
func New(doc *document.Document, opts ...Option) *Binding {
	options := newOptions(opts...)
	return &Binding{
		doc:    doc,
		key:    view.NewPluginKey(PluginName),
		logger: options.Logger.With("doc", doc.Key()),
	}
}

// Key returns the key of the sync plugin.
func (b *Binding) Key() *view.PluginKey {
	return b.key
}

// Document returns the bound document.
func (b *Binding) Document() *document.Document {
	return b.doc
}

// Plugin returns the sync plugin of this binding. The plugin must be given
// to the state of exactly one view.
func (b *Binding) Plugin() *view.Plugin {
	return &view.Plugin{
		Key: b.key,
		State: &view.StateField{
			Init: func(state *view.State) any {
				return SyncState{}
			},
			Apply: func(tr *view.Transaction, value any, oldState, newState *view.State) any {
				origin := b.IsChangeOrigin(tr)
				if !origin && tr.DocChanged() {
					b.enqueue(tr.Steps())
				}
				return SyncState{IsChangeOrigin: origin}
			},
		},
		View: func(v *view.View) view.PluginView {
			b.bind(v)
			return &syncView{binding: b}
		},
	}
}

// Mapping returns the structural mapping of the document.
func (b *Binding) Mapping() cursor.Mapping {
	return b.doc.Content()
}

// Size returns the size of the document.
func (b *Binding) Size() int {
	return b.doc.Len()
}

// LocalPeerID returns the id of the actor of the document.
func (b *Binding) LocalPeerID() string {
	return b.doc.ActorID().String()
}

// IsChangeOrigin returns whether the given transaction carries changes of
// the other replicas.
func (b *Binding) IsChangeOrigin(tr *view.Transaction) bool {
	origin, _ := tr.Meta(b.key).(bool)
	return origin
}

// IsLive returns whether the binding is bound to a view and the document
// shows its live content.
func (b *Binding) IsLive() bool {
	b.mu.Lock()
	bound := b.view != nil && !b.destroyed
	b.mu.Unlock()

	return bound && b.doc.IsLive()
}

// Destroy unbinds the view and stops listening to the document.
func (b *Binding) Destroy() {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return
	}
	b.destroyed = true
	subID := b.subID
	b.subID = ""
	b.view = nil
	b.pending = nil
	b.mu.Unlock()

	if subID != "" {
		b.doc.Unsubscribe(subID)
	}
	b.logger.Debugf("binding destroyed")
}

func (b *Binding) bind(v *view.View) {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		b.logger.Warnf("bind on destroyed binding ignored")
		return
	}
	prevSubID := b.subID
	b.view = v
	b.subID = b.doc.Subscribe(b.handleEvent)
	b.mu.Unlock()

	if prevSubID != "" {
		b.doc.Unsubscribe(prevSubID)
	}
}

func (b *Binding) enqueue(steps []view.Step) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, steps...)
}

// flush applies the pending steps of the view to the document.
func (b *Binding) flush() {
	b.mu.Lock()
	steps := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, step := range steps {
		if _, err := b.doc.Edit(step.From, step.To, step.Content); err != nil {
			b.logger.Errorf("apply step [%d, %d) to document: %v", step.From, step.To, err)
			return
		}
	}
}

// handleEvent dispatches the changes of the other replicas to the view. A
// change of the live state is dispatched as an empty transaction so that
// the view redraws what depends on it.
func (b *Binding) handleEvent(event document.Event) {
	switch event.Type {
	case document.RemoteChangeEvent, document.SnapshotEvent, document.StatusChangedEvent:
	default:
		return
	}

	b.mu.Lock()
	v := b.view
	b.mu.Unlock()
	if v == nil || v.IsDestroyed() {
		return
	}

	tr := v.State().Tr()
	for _, change := range event.Changes {
		if err := tr.Replace(change.From, change.To, change.Content); err != nil {
			b.logger.Errorf("remote change of %s out of sync with view: %v", event.ActorID, err)
			return
		}
	}
	tr.SetMeta(b.key, true)
	v.Dispatch(tr)
}

type syncView struct {
	binding *Binding
}

// Update applies the local edits of the last transactions to the document.
func (s *syncView) Update(v *view.View, prevState *view.State) {
	s.binding.flush()
}

// Destroy destroys the binding.
func (s *syncView) Destroy() {
	s.binding.Destroy()
}
