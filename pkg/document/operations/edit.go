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
package operations

import (
	"fmt"

	"github.com/yorkie-team/cursors/pkg/document/crdt"
	"github.com/yorkie-team/cursors/pkg/document/time"
)

// Edit is an operation representing editing Text.
type Edit struct {
	// parentCreatedAt is the creation time of the Text that executes
	// Edit.
	parentCreatedAt *time.Ticket

	// from represents the start point of the editing range.
	from *crdt.RGATreeSplitNodePos

	// to represents the end point of the editing range.
	to *crdt.RGATreeSplitNodePos

	// maxCreatedAtMapByActor is a map that stores the latest creation time
	// by actor for the nodes included in the editing range.
	maxCreatedAtMapByActor map[string]*time.Ticket

	// content is the content of text added when editing.
	content string

	// executedAt is the time the operation was executed.
	executedAt *time.Ticket
}

// NewEdit creates a new instance of Edit.
func NewEdit(
	parentCreatedAt *time.Ticket,
	from *crdt.RGATreeSplitNodePos,
	to *crdt.RGATreeSplitNodePos,
	maxCreatedAtMapByActor map[string]*time.Ticket,
	content string,
	executedAt *time.Ticket,
) *Edit {
	return &Edit{
		parentCreatedAt:        parentCreatedAt,
		from:                   from,
		to:                     to,
		maxCreatedAtMapByActor: maxCreatedAtMapByActor,
		content:                content,
		executedAt:             executedAt,
	}
}

// Execute executes this operation on the given document(`root`).
func (e *Edit) Execute(root *crdt.Root) ([]*crdt.TextChange, error) {
	text := root.FindByCreatedAt(e.parentCreatedAt)
	if text == nil {
		return nil, fmt.Errorf("edit %s: %w", e.parentCreatedAt.Key(), ErrNotApplicableDataType)
	}

	// NOTE: each replica builds its own value since the value of a node is
	// mutated when the node is split.
	changes, _, err := text.Edit(e.from, e.to, e.maxCreatedAtMapByActor, e.content, e.executedAt)
	if err != nil {
		return nil, err
	}

	return changes, nil
}

// From returns the start point of the editing range.
func (e *Edit) From() *crdt.RGATreeSplitNodePos {
	return e.from
}

// To returns the end point of the editing range.
func (e *Edit) To() *crdt.RGATreeSplitNodePos {
	return e.to
}

// ExecutedAt returns execution time of this operation.
func (e *Edit) ExecutedAt() *time.Ticket {
	return e.executedAt
}

// ParentCreatedAt returns the creation time of the Text.
func (e *Edit) ParentCreatedAt() *time.Ticket {
	return e.parentCreatedAt
}

// Content returns the content of Edit.
func (e *Edit) Content() string {
	return e.content
}

// MaxCreatedAtMapByActor returns the map that stores the latest creation time
// by actor for the nodes included in the editing range.
func (e *Edit) MaxCreatedAtMapByActor() map[string]*time.Ticket {
	return e.maxCreatedAtMapByActor
}
