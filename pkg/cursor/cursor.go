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
// Package cursor shares the selections of peers editing a replicated text.
// The local selection is published to the awareness as stable positions
// that survive concurrent edits, and the selections of remote peers are
// resolved back to offsets and drawn as carets and highlights.
package cursor

import (
	"github.com/yorkie-team/cursors/pkg/awareness"
	"github.com/yorkie-team/cursors/pkg/document/crdt"
	"github.com/yorkie-team/cursors/pkg/view"
)

// Mapping is the structural mapping of a replicated text between offsets
// and the IDs of its characters.
type Mapping interface {
	// ElementKey returns the key identifying the text element.
	ElementKey() string

	// CharIDAt returns the ID of the character at the given index.
	CharIDAt(index int) (*crdt.RGATreeSplitNodeID, error)

	// IndexOfChar returns the current index of the character of the given
	// ID. ok is false if the character has been removed.
	IndexOfChar(id *crdt.RGATreeSplitNodeID) (int, bool)

	// Len returns the length of the text.
	Len() int
}

// Binding is the handle of a replicated document bound to a view.
type Binding interface {
	// Mapping returns the mapping of the current content of the document.
	Mapping() Mapping

	// Size returns the current size of the document.
	Size() int

	// LocalPeerID returns the id of the local peer.
	LocalPeerID() string

	// IsChangeOrigin returns whether the given transaction carries edits
	// of the other peers.
	IsChangeOrigin(tr *view.Transaction) bool

	// IsLive returns false while the document shows a snapshot or is not
	// bound to a view.
	IsLive() bool
}

// Awareness is the ephemeral store of the states of the peers.
type Awareness interface {
	LocalPeerID() string
	States() []awareness.PeerState
	LocalState() awareness.State
	SetLocalField(name string, value any)
	Subscribe(listener func(awareness.Change)) string
	Unsubscribe(id string)
}

// View is the editor view the cursor plugin runs in.
type View interface {
	State() *view.State
	HasFocus() bool
	Dispatch(tr *view.Transaction)
	On(eventType view.EventType, handler func(view.Event)) string
	Off(id string)
	IsDestroyed() bool
}

func isLive(binding Binding) bool {
	return binding != nil && binding.IsLive()
}
