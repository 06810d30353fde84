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
package document

import (
	"github.com/yorkie-team/cursors/pkg/document/crdt"
	"github.com/yorkie-team/cursors/pkg/document/time"
)

// EventType represents the type of the event that occurs in the document.
type EventType string

const (
	// LocalChangeEvent is an event indicating that the document has been
	// edited by the local actor.
	LocalChangeEvent EventType = "local-change"

	// RemoteChangeEvent is an event indicating that a change of another
	// actor has been applied to the document.
	RemoteChangeEvent EventType = "remote-change"

	// StatusChangedEvent is an event indicating that the document has been
	// attached, detached or removed.
	StatusChangedEvent EventType = "status-changed"

	// SnapshotEvent is an event indicating that a snapshot has been set to
	// or cleared from the document.
	SnapshotEvent EventType = "snapshot"
)

// Event represents an event that occurs in the document.
type Event struct {
	Type EventType

	// ActorID is the actor of the change for change events.
	ActorID time.ActorID

	// Changes are the changes of the content, in the coordinates of the
	// content right before each of them is applied.
	Changes []*crdt.TextChange

	// Status is the status of the document for StatusChangedEvent.
	Status StatusType
}
