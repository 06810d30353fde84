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
	"github.com/yorkie-team/cursors/pkg/document/crdt"
	"github.com/yorkie-team/cursors/pkg/document/time"
)

// Assoc is the side a StablePosition sticks to.
type Assoc int

const (
	// AssocBefore sticks to the character before the position.
	AssocBefore Assoc = -1

	// AssocAfter sticks to the character after the position.
	AssocAfter Assoc = 0
)

// ItemID is the serialized ID of a character.
type ItemID struct {
	Lamport   int64  `json:"lamport"`
	Delimiter uint32 `json:"delimiter"`
	Actor     string `json:"actor"`
	Offset    int    `json:"offset"`
}

func newItemID(id *crdt.RGATreeSplitNodeID) *ItemID {
	createdAt := id.CreatedAt()
	return &ItemID{
		Lamport:   createdAt.Lamport(),
		Delimiter: createdAt.Delimiter(),
		Actor:     createdAt.ActorIDHex(),
		Offset:    id.Offset(),
	}
}

func (i *ItemID) nodeID() (*crdt.RGATreeSplitNodeID, error) {
	actorID, err := time.ActorIDFromHex(i.Actor)
	if err != nil {
		return nil, err
	}
	return crdt.NewRGATreeSplitNodeID(time.NewTicket(i.Lamport, i.Delimiter, actorID), i.Offset), nil
}

// StablePosition is a position in a text anchored to a character instead of
// an offset. Item is nil for the boundaries of the text: the start when
// Assoc is AssocBefore and the end otherwise.
type StablePosition struct {
	Type  string  `json:"type"`
	Item  *ItemID `json:"item"`
	Assoc Assoc   `json:"assoc"`
}

// Equal returns whether the two positions anchor to the same character of
// the same text with the same side.
func (p StablePosition) Equal(other StablePosition) bool {
	if p.Type != other.Type || p.Assoc != other.Assoc {
		return false
	}
	if p.Item == nil || other.Item == nil {
		return p.Item == nil && other.Item == nil
	}
	return *p.Item == *other.Item
}

// ToStable returns the stable position of the given offset of the document
// of the binding. The offset must be in [0, size].
func ToStable(binding Binding, offset int, assoc Assoc) StablePosition {
	mapping := binding.Mapping()
	pos := StablePosition{Type: mapping.ElementKey(), Assoc: assoc}

	index := offset
	if assoc < 0 {
		index--
	}
	if index < 0 || index >= mapping.Len() {
		return pos
	}

	id, err := mapping.CharIDAt(index)
	if err != nil {
		return pos
	}
	pos.Item = newItemID(id)
	return pos
}

// ToAbsolute returns the current offset of the given stable position. ok is
// false if the anchored character has been removed, the position belongs
// to another text, or the offset is out of the document.
func ToAbsolute(binding Binding, pos StablePosition) (int, bool) {
	mapping := binding.Mapping()
	if pos.Type != mapping.ElementKey() {
		return 0, false
	}

	size := binding.Size()
	if pos.Item == nil {
		if pos.Assoc < 0 {
			return 0, true
		}
		return size, true
	}

	id, err := pos.Item.nodeID()
	if err != nil {
		return 0, false
	}
	index, ok := mapping.IndexOfChar(id)
	if !ok {
		return 0, false
	}
	if pos.Assoc < 0 {
		index++
	}
	if index < 0 || index > size {
		return 0, false
	}

	return index, true
}
