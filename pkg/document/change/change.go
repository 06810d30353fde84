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
// Package change provides the implementation of Change. Change is a set of
// operations that can be applied to a document.
package change

import (
	"github.com/yorkie-team/cursors/pkg/document/crdt"
	"github.com/yorkie-team/cursors/pkg/document/operations"
)

// Change represents a unit of modification in the document.
type Change struct {
	// id is the unique identifier of the change.
	id ID

	// message is used to save a description of the change.
	message string

	// operations represent a series of user edits.
	operations []operations.Operation
}

// New creates a new instance of Change.
func New(id ID, message string, operations []operations.Operation) *Change {
	return &Change{
		id:         id,
		message:    message,
		operations: operations,
	}
}

// Execute applies this change to the given root. The returned changes
// of the linear content are in the order the operations were executed.
func (c *Change) Execute(root *crdt.Root) ([]*crdt.TextChange, error) {
	var changes []*crdt.TextChange
	for _, op := range c.operations {
		opChanges, err := op.Execute(root)
		if err != nil {
			return nil, err
		}
		changes = append(changes, opChanges...)
	}

	return changes, nil
}

// ID returns the ID of this change.
func (c *Change) ID() ID {
	return c.id
}

// Message returns the message of this change.
func (c *Change) Message() string {
	return c.message
}

// Operations returns the operations of this change.
func (c *Change) Operations() []operations.Operation {
	return c.operations
}
