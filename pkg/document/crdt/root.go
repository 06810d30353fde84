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

// Package crdt provides the implementation of the CRDT data structure.
// The CRDT data structure is a data structure that can be replicated and
// shared among multiple replicas.
package crdt

import (
	"sort"

	"github.com/yorkie-team/cursors/pkg/document/time"
)

// Root is a structure represents the root of a document. It has a hash table
// of all text elements to find a specific element when applying remote
// changes.
//
// Every element has a unique time ticket at creation, which allows us to find
// a particular element.
type Root struct {
	textMapByCreatedAt map[string]*Text
}

// NewRoot creates a new instance of Root.
func NewRoot(texts ...*Text) *Root {
	r := &Root{
		textMapByCreatedAt: make(map[string]*Text),
	}

	for _, text := range texts {
		r.RegisterText(text)
	}

	return r
}

// RegisterText registers the given text to hash table.
func (r *Root) RegisterText(text *Text) {
	r.textMapByCreatedAt[text.CreatedAt().Key()] = text
}

// FindByCreatedAt returns the text of given creation time.
func (r *Root) FindByCreatedAt(createdAt *time.Ticket) *Text {
	return r.textMapByCreatedAt[createdAt.Key()]
}

// Texts returns the registered texts ordered by their creation time.
func (r *Root) Texts() []*Text {
	texts := make([]*Text, 0, len(r.textMapByCreatedAt))
	for _, text := range r.textMapByCreatedAt {
		texts = append(texts, text)
	}
	sort.Slice(texts, func(i, j int) bool {
		return texts[i].CreatedAt().Compare(texts[j].CreatedAt()) < 0
	})
	return texts
}

// DeepCopy copies itself deeply.
func (r *Root) DeepCopy() (*Root, error) {
	root := NewRoot()
	for _, text := range r.textMapByCreatedAt {
		copied, err := text.DeepCopy()
		if err != nil {
			return nil, err
		}
		root.RegisterText(copied)
	}
	return root, nil
}

// GarbageCollect purges elements that were removed before the given time.
func (r *Root) GarbageCollect(ticket *time.Ticket) int {
	count := 0
	for _, text := range r.textMapByCreatedAt {
		count += text.PurgeRemovedNodesBefore(ticket)
	}
	return count
}

// GarbageLen returns the count of removed nodes waiting to be purged.
func (r *Root) GarbageLen() int {
	count := 0
	for _, text := range r.textMapByCreatedAt {
		count += text.RemovedNodesLen()
	}
	return count
}
