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
	"github.com/yorkie-team/cursors/pkg/view"
)

// caretSide draws the caret after the content inserted at its position.
const caretSide = 10

// Decorations computes the carets and highlights of the remote peers whose
// cursors can be resolved in the current document. The set is empty while
// the binding is not live.
func Decorations(
	fieldName string,
	state *view.State,
	binding Binding,
	aw Awareness,
	builder CaretBuilder,
) *view.DecorationSet {
	if !isLive(binding) {
		return view.EmptyDecorationSet()
	}

	localPeerID := binding.LocalPeerID()
	maxPos := max(state.Size()-1, 0)

	var decorations []*view.Decoration
	for _, peer := range aw.States() {
		if peer.PeerID == localPeerID || peer.PeerID == aw.LocalPeerID() {
			continue
		}

		field, ok := decodeField(peer.State[fieldName])
		if !ok {
			continue
		}
		anchor, ok := ToAbsolute(binding, field.Anchor)
		if !ok {
			continue
		}
		head, ok := ToAbsolute(binding, field.Head)
		if !ok {
			continue
		}
		anchor = min(anchor, maxPos)
		head = min(head, maxPos)

		user := identityOf(peer.PeerID, peer.State)
		decorations = append(decorations, view.Widget(head, builder(user), view.WidgetSpec{
			Key:  peer.PeerID,
			Side: caretSide,
		}))
		if anchor != head {
			decorations = append(decorations, view.Inline(
				min(anchor, head),
				max(anchor, head),
				map[string]string{"style": "background-color: " + user.Color + "70"},
				view.InlineSpec{InclusiveStart: false, InclusiveEnd: true},
			))
		}
	}

	return view.NewDecorationSet(decorations...)
}
