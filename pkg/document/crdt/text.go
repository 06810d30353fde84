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

package crdt

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/yorkie-team/cursors/pkg/document/time"
)

// TextValue is a value of Text.
type TextValue struct {
	value string
}

// NewTextValue creates a value of Text.
func NewTextValue(value string) *TextValue {
	return &TextValue{
		value: value,
	}
}

// Value returns the value of this text value.
func (t *TextValue) Value() string {
	return t.value
}

// Len returns the length of this value.
// It is calculated in UTF-16 code units.
func (t *TextValue) Len() int {
	encoded := utf16.Encode([]rune(t.value))
	return len(encoded)
}

// String returns the string representation of this value.
func (t *TextValue) String() string {
	return t.value
}

// Marshal returns the JSON encoding of this text.
func (t *TextValue) Marshal() string {
	val, err := json.Marshal(t.value)
	if err != nil {
		// a Go string always has a JSON encoding
		panic(err)
	}
	return `{"val":` + string(val) + `}`
}

// Split splits this value by the given offset.
func (t *TextValue) Split(offset int) RGATreeSplitValue {
	value := t.value
	encoded := utf16.Encode([]rune(value))
	t.value = string(utf16.Decode(encoded[0:offset]))

	return NewTextValue(string(utf16.Decode(encoded[offset:])))
}

// DeepCopy copies itself deeply.
func (t *TextValue) DeepCopy() RGATreeSplitValue {
	return &TextValue{
		value: t.value,
	}
}

// InitialTextNode creates an initial node of Text. The text is edited
// as this node is split into multiple nodes.
func InitialTextNode() *RGATreeSplitNode[*TextValue] {
	return NewRGATreeSplitNode(initialNodeID, &TextValue{
		value: "",
	})
}

// Text is an extended data type for the contents of a text editor.
type Text struct {
	rgaTreeSplit *RGATreeSplit[*TextValue]
	createdAt    *time.Ticket
}

// NewText creates a new instance of Text.
func NewText(elements *RGATreeSplit[*TextValue], createdAt *time.Ticket) *Text {
	return &Text{
		rgaTreeSplit: elements,
		createdAt:    createdAt,
	}
}

// String returns the string representation of this Text.
func (t *Text) String() string {
	return t.rgaTreeSplit.string()
}

// Marshal returns the JSON encoding of this Text.
func (t *Text) Marshal() string {
	var values []string

	node := t.rgaTreeSplit.initialHead.next
	for node != nil {
		if node.removedAt == nil {
			values = append(values, node.Marshal())
		}
		node = node.next
	}

	return fmt.Sprintf("[%s]", strings.Join(values, ","))
}

// DeepCopy copies itself deeply.
func (t *Text) DeepCopy() (*Text, error) {
	rgaTreeSplit := NewRGATreeSplit(InitialTextNode())
	current := rgaTreeSplit.InitialHead()

	for _, node := range t.Nodes() {
		copied := NewRGATreeSplitNode(node.id, node.value.DeepCopy().(*TextValue))
		copied.removedAt = node.removedAt
		current = rgaTreeSplit.InsertAfter(current, copied)
		if copied.removedAt != nil {
			rgaTreeSplit.removedNodeMap[copied.id.key()] = copied
		}

		insPrevID := node.InsPrevID()
		if insPrevID != nil {
			insPrevNode := rgaTreeSplit.FindNode(insPrevID)
			if insPrevNode == nil {
				return nil, fmt.Errorf("insPrev %s: %w", insPrevID.StructureAsString(), ErrNodeNotFound)
			}
			current.SetInsPrev(insPrevNode)
		}
	}

	return NewText(rgaTreeSplit, t.createdAt), nil
}

// CreatedAt returns the creation time of this Text.
func (t *Text) CreatedAt() *time.Ticket {
	return t.createdAt
}

// ElementKey returns the key that identifies this Text among the elements
// of a document. It is stable across replicas.
func (t *Text) ElementKey() string {
	return t.createdAt.Key()
}

// Len returns the length of the live content in UTF-16 code units.
func (t *Text) Len() int {
	return t.rgaTreeSplit.Len()
}

// CreateRange returns a pair of RGATreeSplitNodePos of the given integer offsets.
func (t *Text) CreateRange(from, to int) (*RGATreeSplitNodePos, *RGATreeSplitNodePos, error) {
	return t.rgaTreeSplit.createRange(from, to)
}

// Edit edits the given range with the given content. It returns the changes
// of the linear content it caused and the latest creation time of the
// removed characters by actor.
func (t *Text) Edit(
	from,
	to *RGATreeSplitNodePos,
	latestCreatedAtMapByActor map[string]*time.Ticket,
	content string,
	executedAt *time.Ticket,
) ([]*TextChange, map[string]*time.Ticket, error) {
	return t.rgaTreeSplit.edit(
		from,
		to,
		latestCreatedAtMapByActor,
		NewTextValue(content),
		executedAt,
	)
}

// CharIDAt returns the ID of the character at the given index.
func (t *Text) CharIDAt(index int) (*RGATreeSplitNodeID, error) {
	return t.rgaTreeSplit.findCharID(index)
}

// IndexOfChar returns the current index of the character of the given ID.
// ok is false if the character has been removed or purged.
func (t *Text) IndexOfChar(id *RGATreeSplitNodeID) (int, bool) {
	if id == nil {
		return 0, false
	}
	return t.rgaTreeSplit.indexOfChar(id)
}

// Nodes returns the internal nodes of this Text.
func (t *Text) Nodes() []*RGATreeSplitNode[*TextValue] {
	return t.rgaTreeSplit.nodes()
}

// StructureAsString returns a String containing the metadata of the text
// for debugging purpose.
func (t *Text) StructureAsString() string {
	return t.rgaTreeSplit.StructureAsString()
}

// CheckWeight returns false when there is an incorrect weight node.
// for debugging purpose.
func (t *Text) CheckWeight() bool {
	return t.rgaTreeSplit.CheckWeight()
}

// RemovedNodesLen returns length of removed nodes.
func (t *Text) RemovedNodesLen() int {
	return t.rgaTreeSplit.removedNodesLen()
}

// PurgeRemovedNodesBefore physically purges nodes that have been removed
// at or before the given ticket.
func (t *Text) PurgeRemovedNodesBefore(ticket *time.Ticket) int {
	return t.rgaTreeSplit.purgeRemovedNodesBefore(ticket)
}
