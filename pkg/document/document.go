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
// Package document provides a replicated text document. Local edits are
// recorded as changes to be sent to other replicas, and the changes of other
// replicas are applied with ApplyChanges.
package document

import (
	"fmt"
	"sync"

	"github.com/yorkie-team/cursors/internal/log"
	"github.com/yorkie-team/cursors/pkg/document/change"
	"github.com/yorkie-team/cursors/pkg/document/crdt"
	"github.com/yorkie-team/cursors/pkg/document/operations"
	"github.com/yorkie-team/cursors/pkg/document/time"
	"github.com/yorkie-team/cursors/pkg/errors"
	"github.com/yorkie-team/cursors/pkg/pubsub"
)

// StatusType represents the status of the document.
type StatusType int

const (
	// StatusDetached means that the document is not attached to the client.
	StatusDetached StatusType = iota

	// StatusAttached means that this document is attached to the client.
	StatusAttached

	// StatusRemoved means that this document is removed. If the document is removed,
	// it cannot be edited.
	StatusRemoved
)

// String returns the string representation of the status.
func (s StatusType) String() string {
	switch s {
	case StatusDetached:
		return "detached"
	case StatusAttached:
		return "attached"
	case StatusRemoved:
		return "removed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

var (
	// ErrDocumentRemoved occurs when the document is removed.
	ErrDocumentRemoved = errors.FailedPrecond("document is removed").WithCode("ErrDocumentRemoved")

	// ErrInvalidRange occurs when the range of an edit is out of the content.
	ErrInvalidRange = errors.InvalidArgument("invalid edit range").WithCode("ErrInvalidRange")

	// ErrElementNotFound occurs when a change targets an unknown element.
	ErrElementNotFound = errors.NotFound("element not found").WithCode("ErrElementNotFound")

	// contentCreatedAt is the creation time of the content text. Every
	// replica creates the content at the same time so that positions
	// refer to the same element.
	contentCreatedAt = time.NewTicket(time.InitialLamport, 1, time.InitialActorID)
)

// Snapshot is a frozen copy of the content at a point in time.
type Snapshot struct {
	root    *crdt.Root
	lamport int64
}

// Lamport returns the lamport clock of the document when the snapshot was taken.
func (s *Snapshot) Lamport() int64 {
	return s.lamport
}

// Content returns the content of the snapshot.
func (s *Snapshot) Content() string {
	text := s.root.FindByCreatedAt(contentCreatedAt)
	if text == nil {
		return ""
	}
	return text.String()
}

// Document represents a replicated text and contains logical clocks.
type Document struct {
	mu sync.Mutex

	key          string
	status       StatusType
	root         *crdt.Root
	content      *crdt.Text
	changeID     change.ID
	localChanges []*change.Change
	snapshot     *Snapshot

	events *pubsub.Publisher[Event]
	logger log.Logger
}

// New creates a new instance of Document edited by the given actor.
func New(key string, actorID time.ActorID, opts ...Option) *Document {
	options := newOptions(opts...)
	content := crdt.NewText(crdt.NewRGATreeSplit(crdt.InitialTextNode()), contentCreatedAt)

	return &Document{
		key:      key,
		status:   StatusDetached,
		root:     crdt.NewRoot(content),
		content:  content,
		changeID: change.InitialID.SetActor(actorID),
		events:   pubsub.NewPublisher[Event](),
		logger:   options.Logger.With("doc", key, "actor", actorID.String()),
	}
}

// Key returns the key of this document.
func (d *Document) Key() string {
	return d.key
}

// Edit replaces the content of the given range with the given content. It
// returns the change to be applied to the other replicas, or nil if the
// edit changes nothing.
func (d *Document) Edit(from, to int, content string, message ...string) (*change.Change, error) {
	d.mu.Lock()
	if d.status == StatusRemoved {
		d.mu.Unlock()
		return nil, ErrDocumentRemoved
	}
	if from == to && content == "" {
		d.mu.Unlock()
		return nil, nil
	}

	ctx := change.NewContext(d.changeID.Next(), messageOf(message))
	fromPos, toPos, err := d.content.CreateRange(from, to)
	if err != nil {
		d.mu.Unlock()
		return nil, fmt.Errorf("edit [%d, %d): %w: %s", from, to, ErrInvalidRange, err)
	}

	ticket := ctx.IssueTimeTicket()
	changes, maxCreatedAtMapByActor, err := d.content.Edit(fromPos, toPos, nil, content, ticket)
	if err != nil {
		d.mu.Unlock()
		return nil, fmt.Errorf("edit [%d, %d): %w", from, to, err)
	}
	ctx.Push(operations.NewEdit(
		d.content.CreatedAt(),
		fromPos,
		toPos,
		maxCreatedAtMapByActor,
		content,
		ticket,
	))

	c := ctx.ToChange()
	d.localChanges = append(d.localChanges, c)
	d.changeID = ctx.ID()
	actorID := d.changeID.ActorID()
	d.mu.Unlock()

	d.logger.Debugf("local edit [%d, %d) %q", from, to, content)
	d.events.Publish(Event{
		Type:    LocalChangeEvent,
		ActorID: actorID,
		Changes: changes,
	})

	return c, nil
}

// ApplyChanges applies the changes of other replicas to the document.
func (d *Document) ApplyChanges(changes ...*change.Change) error {
	for _, c := range changes {
		d.mu.Lock()
		textChanges, err := c.Execute(d.root)
		if err != nil {
			d.mu.Unlock()
			return fmt.Errorf("apply change of %s: %w", c.ID().ActorID(), err)
		}
		d.changeID = d.changeID.SyncLamport(c.ID().Lamport())
		d.mu.Unlock()

		d.logger.Debugf("remote change of %s applied: %d changes", c.ID().ActorID(), len(textChanges))
		d.events.Publish(Event{
			Type:    RemoteChangeEvent,
			ActorID: c.ID().ActorID(),
			Changes: textChanges,
		})
	}

	return nil
}

// HasLocalChanges returns whether this document has local changes or not.
func (d *Document) HasLocalChanges() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.localChanges) > 0
}

// FlushLocalChanges returns the local changes to send to the other replicas
// and forgets them.
func (d *Document) FlushLocalChanges() []*change.Change {
	d.mu.Lock()
	defer d.mu.Unlock()

	changes := d.localChanges
	d.localChanges = nil
	return changes
}

// Attach marks this document as attached.
func (d *Document) Attach() error {
	return d.setStatus(StatusAttached)
}

// Detach marks this document as detached.
func (d *Document) Detach() error {
	return d.setStatus(StatusDetached)
}

// Remove marks this document as removed. A removed document cannot be
// edited anymore.
func (d *Document) Remove() error {
	return d.setStatus(StatusRemoved)
}

func (d *Document) setStatus(status StatusType) error {
	d.mu.Lock()
	if d.status == StatusRemoved {
		d.mu.Unlock()
		return ErrDocumentRemoved
	}
	if d.status == status {
		d.mu.Unlock()
		return nil
	}
	d.status = status
	d.mu.Unlock()

	d.logger.Debugf("status changed to %s", status)
	d.events.Publish(Event{
		Type:   StatusChangedEvent,
		Status: status,
	})
	return nil
}

// Status returns the status of this document.
func (d *Document) Status() StatusType {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.status
}

// IsAttached returns the whether this document is attached or not.
func (d *Document) IsAttached() bool {
	return d.Status() == StatusAttached
}

// CreateSnapshot freezes the current content.
func (d *Document) CreateSnapshot() (*Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	root, err := d.root.DeepCopy()
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		root:    root,
		lamport: d.changeID.Lamport(),
	}, nil
}

// SetSnapshot shows the given snapshot instead of the live content. While
// a snapshot is set the document is not live.
func (d *Document) SetSnapshot(snapshot *Snapshot) {
	d.mu.Lock()
	d.snapshot = snapshot
	d.mu.Unlock()

	d.events.Publish(Event{Type: SnapshotEvent})
}

// ClearSnapshot goes back to the live content.
func (d *Document) ClearSnapshot() {
	d.SetSnapshot(nil)
}

// Snapshot returns the snapshot being shown, or nil.
func (d *Document) Snapshot() *Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.snapshot
}

// IsLive returns whether the document is attached and shows the live
// content.
func (d *Document) IsLive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.status == StatusAttached && d.snapshot == nil
}

// Subscribe registers the given listener of the events of this document.
func (d *Document) Subscribe(listener func(Event)) string {
	return d.events.Subscribe(listener)
}

// Unsubscribe removes the listener of the given subscription id.
func (d *Document) Unsubscribe(id string) {
	d.events.Unsubscribe(id)
}

// Content returns the content text. Callers must not edit it directly.
func (d *Document) Content() *crdt.Text {
	return d.content
}

// String returns the content of this document.
func (d *Document) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.content.String()
}

// Len returns the length of the content in UTF-16 code units.
func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.content.Len()
}

// Marshal returns the JSON encoding of the content of this document.
func (d *Document) Marshal() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.content.Marshal()
}

// GarbageCollect purges characters that were removed before the given time.
func (d *Document) GarbageCollect(ticket *time.Ticket) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.root.GarbageCollect(ticket)
}

// GarbageLen returns the count of removed characters waiting to be purged.
func (d *Document) GarbageLen() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.root.GarbageLen()
}

// Lamport returns the Lamport clock of this document.
func (d *Document) Lamport() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.changeID.Lamport()
}

// ActorID returns ID of the actor currently editing the document.
func (d *Document) ActorID() time.ActorID {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.changeID.ActorID()
}

// LastTimeTicket returns a ticket after every change this document has seen.
// Removals at or before it can be purged once every replica has seen them.
func (d *Document) LastTimeTicket() *time.Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.changeID.NewTimeTicket(time.MaxDelimiter)
}

func messageOf(message []string) string {
	if len(message) == 0 {
		return ""
	}
	return message[0]
}
