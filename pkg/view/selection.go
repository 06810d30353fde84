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
package view

// Selection is a text selection. Anchor is the side that stays in place
// when the selection is extended, and Head is the side that moves.
type Selection struct {
	Anchor int
	Head   int
}

// NewSelection creates a Selection of the given anchor and head.
func NewSelection(anchor, head int) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// Caret creates an empty Selection at the given position.
func Caret(pos int) Selection {
	return Selection{Anchor: pos, Head: pos}
}

// From returns the lower bound of the selection.
func (s Selection) From() int {
	return min(s.Anchor, s.Head)
}

// To returns the upper bound of the selection.
func (s Selection) To() int {
	return max(s.Anchor, s.Head)
}

// Empty returns whether the selection is a caret.
func (s Selection) Empty() bool {
	return s.Anchor == s.Head
}

// Map maps the selection through the given mapping and clamps it to the
// given document size.
func (s Selection) Map(mapping *Mapping, size int) Selection {
	return Selection{
		Anchor: clamp(mapping.Map(s.Anchor, 1), 0, size),
		Head:   clamp(mapping.Map(s.Head, 1), 0, size),
	}
}

func clamp(pos, lo, hi int) int {
	return max(lo, min(pos, hi))
}
