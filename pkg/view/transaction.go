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

import (
	"fmt"
	"unicode/utf16"

	"github.com/yorkie-team/cursors/pkg/errors"
)

// ErrInvalidStep occurs when a step replaces a range outside the document.
var ErrInvalidStep = errors.InvalidArgument("invalid step").WithCode("ErrInvalidStep")

// Step replaces the range [From, To) of the document with Content.
type Step struct {
	From    int
	To      int
	Content string
}

// Transaction is a set of changes to a State: steps that replace parts of
// the document, a selection and metadata.
type Transaction struct {
	before    *State
	doc       []uint16
	steps     []Step
	mapping   *Mapping
	selection *Selection
	meta      map[any]any
}

func newTransaction(state *State) *Transaction {
	return &Transaction{
		before:  state,
		doc:     state.doc,
		mapping: NewMapping(),
		meta:    make(map[any]any),
	}
}

// Before returns the state this transaction started from.
func (tr *Transaction) Before() *State {
	return tr.before
}

// Replace replaces the range [from, to) of the current document of this
// transaction with the given content. Offsets are in UTF-16 code units.
func (tr *Transaction) Replace(from, to int, content string) error {
	if from < 0 || to < from || to > len(tr.doc) {
		return fmt.Errorf("replace [%d, %d) of size %d: %w", from, to, len(tr.doc), ErrInvalidStep)
	}

	inserted := utf16.Encode([]rune(content))
	if from == to && len(inserted) == 0 {
		return nil
	}

	doc := make([]uint16, 0, len(tr.doc)-(to-from)+len(inserted))
	doc = append(doc, tr.doc[:from]...)
	doc = append(doc, inserted...)
	doc = append(doc, tr.doc[to:]...)
	tr.doc = doc

	tr.steps = append(tr.steps, Step{From: from, To: to, Content: content})
	tr.mapping.AppendMap(NewStepMap(from, to-from, len(inserted)))
	return nil
}

// Insert inserts the given content at the given position.
func (tr *Transaction) Insert(pos int, content string) error {
	return tr.Replace(pos, pos, content)
}

// Delete deletes the range [from, to).
func (tr *Transaction) Delete(from, to int) error {
	return tr.Replace(from, to, "")
}

// Steps returns the steps of this transaction.
func (tr *Transaction) Steps() []Step {
	return tr.steps
}

// DocChanged returns whether this transaction changes the document.
func (tr *Transaction) DocChanged() bool {
	return len(tr.steps) > 0
}

// Mapping returns the mapping of the positions before this transaction to
// the positions after it.
func (tr *Transaction) Mapping() *Mapping {
	return tr.mapping
}

// Doc returns the current document of this transaction.
func (tr *Transaction) Doc() string {
	return string(utf16.Decode(tr.doc))
}

// Size returns the size of the current document of this transaction.
func (tr *Transaction) Size() int {
	return len(tr.doc)
}

// SetSelection sets the selection after this transaction.
func (tr *Transaction) SetSelection(selection Selection) *Transaction {
	tr.selection = &selection
	return tr
}

// SelectionSet returns whether the selection was set explicitly.
func (tr *Transaction) SelectionSet() bool {
	return tr.selection != nil
}

// SetMeta stores the metadata of the given key.
func (tr *Transaction) SetMeta(key any, value any) *Transaction {
	tr.meta[key] = value
	return tr
}

// Meta returns the metadata of the given key, or nil.
func (tr *Transaction) Meta(key any) any {
	return tr.meta[key]
}
