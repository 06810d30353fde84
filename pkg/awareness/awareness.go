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
// Package awareness provides an ephemeral store of the states of the peers
// editing a document together, such as their cursors and identities. States
// are not persisted. Each peer owns its own state and the latest clock wins.
package awareness

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	gotime "time"

	"github.com/hashicorp/go-memdb"

	"github.com/yorkie-team/cursors/internal/log"
	"github.com/yorkie-team/cursors/pkg/errors"
	"github.com/yorkie-team/cursors/pkg/pubsub"
)

const (
	// OriginLocal is the origin of the changes made by the local peer.
	OriginLocal = "local"

	// OriginTimeout is the origin of the changes made by removing outdated
	// peers.
	OriginTimeout = "timeout"
)

var (
	// ErrInvalidUpdate occurs when the given update cannot be decoded.
	ErrInvalidUpdate = errors.InvalidArgument("invalid awareness update").WithCode("ErrInvalidUpdate")

	// ErrEmptyPeerID occurs when the awareness is created without a peer id.
	ErrEmptyPeerID = errors.InvalidArgument("peer id is empty").WithCode("ErrEmptyPeerID")
)

// State is the state of a peer. A nil State means the peer is offline.
type State map[string]any

// PeerState is the state of a peer with its id.
type PeerState struct {
	PeerID string
	State  State
}

// Change describes the peers whose states changed.
type Change struct {
	Added   []string
	Updated []string
	Removed []string

	// Origin is OriginLocal for the changes of the local peer, OriginTimeout
	// for removed outdated peers, and the origin given to ApplyUpdate or
	// RemovePeers otherwise.
	Origin string
}

// IsEmpty returns whether no peer changed.
func (c Change) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0
}

// peerRecord is a row of the peers table. Records are never mutated after
// insertion; an update inserts a new record.
type peerRecord struct {
	ID          string
	Clock       uint64
	State       State
	LastUpdated gotime.Time
}

// Awareness is the ephemeral store of the states of the peers.
type Awareness struct {
	mu      sync.Mutex
	db      *memdb.MemDB
	peerID  string
	clock   uint64
	now     func() gotime.Time
	changes *pubsub.Publisher[Change]
	logger  log.Logger
}

// New creates a new instance of Awareness of the given local peer. The
// local state starts empty.
func New(peerID string, opts ...Option) (*Awareness, error) {
	if peerID == "" {
		return nil, ErrEmptyPeerID
	}

	options := newOptions(opts...)
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	a := &Awareness{
		db:      db,
		peerID:  peerID,
		now:     options.Now,
		changes: pubsub.NewPublisher[Change](),
		logger:  options.Logger.With("peer", peerID),
	}
	if err := a.put(&peerRecord{
		ID:          peerID,
		State:       State{},
		LastUpdated: a.now(),
	}); err != nil {
		return nil, err
	}

	return a, nil
}

// LocalPeerID returns the id of the local peer.
func (a *Awareness) LocalPeerID() string {
	return a.peerID
}

// LocalState returns a copy of the state of the local peer, or nil if the
// local peer is offline.
func (a *Awareness) LocalState() State {
	state, _ := a.State(a.peerID)
	return state
}

// State returns a copy of the state of the given peer.
func (a *Awareness) State(peerID string) (State, bool) {
	record, err := a.find(peerID)
	if err != nil || record == nil || record.State == nil {
		return nil, false
	}
	return copyState(record.State), true
}

// States returns the states of the online peers ordered by peer id.
func (a *Awareness) States() []PeerState {
	txn := a.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblPeers, "id")
	if err != nil {
		a.logger.Errorf("iterate peers: %v", err)
		return nil
	}

	var states []PeerState
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		record := raw.(*peerRecord)
		if record.State == nil {
			continue
		}
		states = append(states, PeerState{
			PeerID: record.ID,
			State:  copyState(record.State),
		})
	}

	return states
}

// SetLocalState replaces the state of the local peer. A nil state marks the
// local peer as offline.
func (a *Awareness) SetLocalState(state State) {
	a.mu.Lock()
	prev, err := a.find(a.peerID)
	if err != nil {
		a.mu.Unlock()
		a.logger.Errorf("find local peer: %v", err)
		return
	}

	a.clock++
	record := &peerRecord{
		ID:          a.peerID,
		Clock:       a.clock,
		State:       copyState(state),
		LastUpdated: a.now(),
	}
	if err := a.put(record); err != nil {
		a.mu.Unlock()
		a.logger.Errorf("set local state: %v", err)
		return
	}
	a.mu.Unlock()

	change := Change{Origin: OriginLocal}
	switch {
	case state == nil:
		if prev != nil && prev.State != nil {
			change.Removed = []string{a.peerID}
		}
	case prev == nil || prev.State == nil:
		change.Added = []string{a.peerID}
	case !reflect.DeepEqual(prev.State, record.State):
		change.Updated = []string{a.peerID}
	}

	a.publish(change)
}

// SetLocalField sets the field of the given name in the state of the local
// peer. A nil value removes the value of the field but keeps the field.
func (a *Awareness) SetLocalField(name string, value any) {
	state := a.LocalState()
	if state == nil {
		state = State{}
	}
	state[name] = value
	a.SetLocalState(state)
}

// Subscribe registers the given listener of the changes of the states.
func (a *Awareness) Subscribe(listener func(Change)) string {
	return a.changes.Subscribe(listener)
}

// Unsubscribe removes the listener of the given subscription id.
func (a *Awareness) Unsubscribe(id string) {
	a.changes.Unsubscribe(id)
}

// RemovePeers marks the given remote peers as offline.
func (a *Awareness) RemovePeers(origin string, peerIDs ...string) {
	a.mu.Lock()
	change := Change{Origin: origin}
	for _, peerID := range peerIDs {
		if peerID == a.peerID {
			continue
		}

		record, err := a.find(peerID)
		if err != nil || record == nil || record.State == nil {
			continue
		}

		if err := a.put(&peerRecord{
			ID:          peerID,
			Clock:       record.Clock,
			LastUpdated: a.now(),
		}); err != nil {
			a.logger.Errorf("remove peer %s: %v", peerID, err)
			continue
		}
		change.Removed = append(change.Removed, peerID)
	}
	a.mu.Unlock()

	a.publish(change)
}

// RemoveOutdatedPeers marks the remote peers that have not been updated
// within the given timeout as offline. It returns the removed peer ids.
func (a *Awareness) RemoveOutdatedPeers(timeout gotime.Duration) []string {
	deadline := a.now().Add(-timeout)

	var outdated []string
	for _, record := range a.records() {
		if record.ID != a.peerID && record.State != nil && record.LastUpdated.Before(deadline) {
			outdated = append(outdated, record.ID)
		}
	}

	if len(outdated) > 0 {
		a.RemovePeers(OriginTimeout, outdated...)
	}
	return outdated
}

func (a *Awareness) publish(change Change) {
	if change.IsEmpty() {
		return
	}

	a.logger.Debugf(
		"awareness changed by %s: added %v, updated %v, removed %v",
		change.Origin, change.Added, change.Updated, change.Removed,
	)
	a.changes.Publish(change)
}

func (a *Awareness) find(peerID string) (*peerRecord, error) {
	txn := a.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblPeers, "id", peerID)
	if err != nil {
		return nil, fmt.Errorf("find peer %s: %w", peerID, err)
	}
	if raw == nil {
		return nil, nil
	}

	return raw.(*peerRecord), nil
}

func (a *Awareness) records() []*peerRecord {
	txn := a.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblPeers, "id")
	if err != nil {
		return nil
	}

	var records []*peerRecord
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		records = append(records, raw.(*peerRecord))
	}
	return records
}

func (a *Awareness) put(record *peerRecord) error {
	txn := a.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(tblPeers, record); err != nil {
		return fmt.Errorf("insert peer %s: %w", record.ID, err)
	}

	txn.Commit()
	return nil
}

func copyState(state State) State {
	if state == nil {
		return nil
	}

	copied := make(State, len(state))
	for k, v := range state {
		copied[k] = v
	}
	return copied
}

// peerUpdate is the wire form of the state of a peer.
type peerUpdate struct {
	PeerID string `json:"peerId"`
	Clock  uint64 `json:"clock"`
	State  State  `json:"state"`
}

// Update is an encoded set of peer states to be applied to other replicas.
type Update []byte

// EncodeUpdate encodes the states of the given peers. Offline peers are
// encoded with a nil state.
func (a *Awareness) EncodeUpdate(peerIDs ...string) (Update, error) {
	updates := make([]peerUpdate, 0, len(peerIDs))
	for _, peerID := range peerIDs {
		record, err := a.find(peerID)
		if err != nil {
			return nil, err
		}
		if record == nil {
			continue
		}
		updates = append(updates, peerUpdate{
			PeerID: record.ID,
			Clock:  record.Clock,
			State:  record.State,
		})
	}

	data, err := json.Marshal(updates)
	if err != nil {
		return nil, fmt.Errorf("encode awareness update: %w", err)
	}
	return data, nil
}

// DecodeUpdate decodes the given update into peer ids and states.
func DecodeUpdate(update Update) ([]PeerState, error) {
	var updates []peerUpdate
	if err := json.Unmarshal(update, &updates); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUpdate, err)
	}

	states := make([]PeerState, len(updates))
	for i, u := range updates {
		states[i] = PeerState{PeerID: u.PeerID, State: u.State}
	}
	return states, nil
}

// ApplyUpdate applies the update of other replicas. The state of a peer is
// replaced only if its clock is newer than the known one.
func (a *Awareness) ApplyUpdate(update Update, origin string) error {
	var updates []peerUpdate
	if err := json.Unmarshal(update, &updates); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUpdate, err)
	}

	a.mu.Lock()
	change := Change{Origin: origin}
	republish := false
	for _, u := range updates {
		if u.PeerID == "" {
			continue
		}

		prev, err := a.find(u.PeerID)
		if err != nil {
			a.mu.Unlock()
			return err
		}

		var prevClock uint64
		if prev != nil {
			prevClock = prev.Clock
		}
		if !(prevClock < u.Clock || (prevClock == u.Clock && u.State == nil && prev != nil && prev.State != nil)) {
			continue
		}

		// Other replicas cannot mark the local peer as offline while it is
		// online; it bumps its clock to override them instead.
		if u.PeerID == a.peerID {
			if u.State == nil && prev != nil && prev.State != nil {
				a.clock = max(a.clock, u.Clock) + 1
				if err := a.put(&peerRecord{
					ID:          a.peerID,
					Clock:       a.clock,
					State:       prev.State,
					LastUpdated: a.now(),
				}); err != nil {
					a.mu.Unlock()
					return err
				}
				republish = true
			}
			continue
		}

		if err := a.put(&peerRecord{
			ID:          u.PeerID,
			Clock:       u.Clock,
			State:       u.State,
			LastUpdated: a.now(),
		}); err != nil {
			a.mu.Unlock()
			return err
		}

		switch {
		case u.State == nil:
			if prev != nil && prev.State != nil {
				change.Removed = append(change.Removed, u.PeerID)
			}
		case prev == nil || prev.State == nil:
			change.Added = append(change.Added, u.PeerID)
		case !reflect.DeepEqual(prev.State, u.State):
			change.Updated = append(change.Updated, u.PeerID)
		}
	}
	a.mu.Unlock()

	if republish {
		a.logger.Debugf("local peer marked offline by %s, clock bumped to %d", origin, a.clock)
	}
	a.publish(change)
	return nil
}
