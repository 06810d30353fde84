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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yorkie-team/cursors/pkg/document/time"
	"github.com/yorkie-team/cursors/pkg/llrb"
	"github.com/yorkie-team/cursors/pkg/splay"
)

var (
	// ErrIndexOutOfRange is returned when the given index is outside the text.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNodeNotFound is returned when the node of the given position is missing.
	ErrNodeNotFound = errors.New("node not found")

	initialNodeID = NewRGATreeSplitNodeID(time.InitialTicket, 0)
)

// RGATreeSplitValue is a value of RGATreeSplitNode.
type RGATreeSplitValue interface {
	Split(offset int) RGATreeSplitValue
	Len() int
	DeepCopy() RGATreeSplitValue
	String() string
	Marshal() string
}

// RGATreeSplitNodeID is an ID of RGATreeSplitNode. Since a node is split
// on edit, the ID of the n-th character of an insertion is
// (createdAt, n) no matter how the node holding it was split.
type RGATreeSplitNodeID struct {
	createdAt *time.Ticket
	offset    int

	// cachedKey is the cache of the string representation of the ID.
	cachedKey string
}

// NewRGATreeSplitNodeID creates a new instance of RGATreeSplitNodeID.
func NewRGATreeSplitNodeID(createdAt *time.Ticket, offset int) *RGATreeSplitNodeID {
	return &RGATreeSplitNodeID{
		createdAt: createdAt,
		offset:    offset,
	}
}

// Compare returns an integer comparing two ID. The result will be 0 if
// id==other, -1 if id < other, and +1 if id > other. If the receiver or
// argument is nil, it would panic at runtime.
func (id *RGATreeSplitNodeID) Compare(other llrb.Key) int {
	o := other.(*RGATreeSplitNodeID)
	if compare := id.createdAt.Compare(o.createdAt); compare != 0 {
		return compare
	}

	if id.offset > o.offset {
		return 1
	} else if id.offset < o.offset {
		return -1
	}

	return 0
}

// Equal returns whether given ID equals to this ID or not.
func (id *RGATreeSplitNodeID) Equal(other *RGATreeSplitNodeID) bool {
	return id.Compare(other) == 0
}

// CreatedAt returns the creation time of this ID.
func (id *RGATreeSplitNodeID) CreatedAt() *time.Ticket {
	return id.createdAt
}

// Offset returns the offset of this ID.
func (id *RGATreeSplitNodeID) Offset() int {
	return id.offset
}

// Split creates a new ID with an offset from this ID.
func (id *RGATreeSplitNodeID) Split(offset int) *RGATreeSplitNodeID {
	return NewRGATreeSplitNodeID(id.createdAt, id.offset+offset)
}

// StructureAsString returns a String containing the metadata of the node id
// for debugging purpose.
func (id *RGATreeSplitNodeID) StructureAsString() string {
	return fmt.Sprintf("%s:%d", id.createdAt.StructureAsString(), id.offset)
}

func (id *RGATreeSplitNodeID) hasSameCreatedAt(other *RGATreeSplitNodeID) bool {
	return id.createdAt.Compare(other.createdAt) == 0
}

// key returns a string representation of the ID. The result will be
// cached in the key field to prevent instantiation of a new string.
func (id *RGATreeSplitNodeID) key() string {
	if id.cachedKey == "" {
		id.cachedKey = id.createdAt.Key() + ":" + strconv.Itoa(id.offset)
	}

	return id.cachedKey
}

// RGATreeSplitNodePos is the position of the text inside the node.
type RGATreeSplitNodePos struct {
	id             *RGATreeSplitNodeID
	relativeOffset int
}

// NewRGATreeSplitNodePos creates a new instance of RGATreeSplitNodePos.
func NewRGATreeSplitNodePos(id *RGATreeSplitNodeID, offset int) *RGATreeSplitNodePos {
	return &RGATreeSplitNodePos{id, offset}
}

func (pos *RGATreeSplitNodePos) getAbsoluteID() *RGATreeSplitNodeID {
	return NewRGATreeSplitNodeID(pos.id.createdAt, pos.id.offset+pos.relativeOffset)
}

// StructureAsString returns a String containing the metadata of the position
// for debugging purpose.
func (pos *RGATreeSplitNodePos) StructureAsString() string {
	return fmt.Sprintf("%s:%d", pos.id.StructureAsString(), pos.relativeOffset)
}

// ID returns the ID of this RGATreeSplitNodePos.
func (pos *RGATreeSplitNodePos) ID() *RGATreeSplitNodeID {
	return pos.id
}

// RelativeOffset returns the relative offset of this RGATreeSplitNodePos.
func (pos *RGATreeSplitNodePos) RelativeOffset() int {
	return pos.relativeOffset
}

// Equal returns the whether the given pos equals or not.
func (pos *RGATreeSplitNodePos) Equal(other *RGATreeSplitNodePos) bool {
	if !pos.id.Equal(other.id) {
		return false
	}
	return pos.relativeOffset == other.relativeOffset
}

// RGATreeSplitNode is a node of RGATreeSplit.
type RGATreeSplitNode[V RGATreeSplitValue] struct {
	id        *RGATreeSplitNodeID
	indexNode *splay.Node[*RGATreeSplitNode[V]]
	value     V
	removedAt *time.Ticket

	prev    *RGATreeSplitNode[V]
	next    *RGATreeSplitNode[V]
	insPrev *RGATreeSplitNode[V]
	insNext *RGATreeSplitNode[V]
}

// NewRGATreeSplitNode creates a new instance of RGATreeSplitNode.
func NewRGATreeSplitNode[V RGATreeSplitValue](id *RGATreeSplitNodeID, value V) *RGATreeSplitNode[V] {
	node := &RGATreeSplitNode[V]{
		id:    id,
		value: value,
	}
	node.indexNode = splay.NewNode(node)

	return node
}

// ID returns the ID of this RGATreeSplitNode.
func (s *RGATreeSplitNode[V]) ID() *RGATreeSplitNodeID {
	return s.id
}

// InsPrevID returns previous node ID at the time of this node insertion.
func (s *RGATreeSplitNode[V]) InsPrevID() *RGATreeSplitNodeID {
	if s.insPrev == nil {
		return nil
	}

	return s.insPrev.id
}

func (s *RGATreeSplitNode[V]) contentLen() int {
	return s.value.Len()
}

// Len returns the length of this node. Removed nodes have no length.
func (s *RGATreeSplitNode[V]) Len() int {
	if s.removedAt != nil {
		return 0
	}
	return s.contentLen()
}

// RemovedAt return the remove time of this node.
func (s *RGATreeSplitNode[V]) RemovedAt() *time.Ticket {
	return s.removedAt
}

// Marshal returns the JSON encoding of this node.
func (s *RGATreeSplitNode[V]) Marshal() string {
	return s.value.Marshal()
}

// String returns the string representation of this node.
func (s *RGATreeSplitNode[V]) String() string {
	return s.value.String()
}

// Value returns the value of this node.
func (s *RGATreeSplitNode[V]) Value() V {
	return s.value
}

// SetInsPrev sets previous node of this node insertion.
func (s *RGATreeSplitNode[V]) SetInsPrev(node *RGATreeSplitNode[V]) {
	s.insPrev = node
	node.insNext = s
}

func (s *RGATreeSplitNode[V]) setPrev(node *RGATreeSplitNode[V]) {
	s.prev = node
	node.next = s
}

func (s *RGATreeSplitNode[V]) split(offset int) *RGATreeSplitNode[V] {
	newNode := NewRGATreeSplitNode(
		s.id.Split(offset),
		s.value.Split(offset).(V),
	)
	newNode.removedAt = s.removedAt
	return newNode
}

func (s *RGATreeSplitNode[V]) createdAt() *time.Ticket {
	return s.id.createdAt
}

// structureAsString returns a String containing the metadata of the node
// for debugging purpose.
func (s *RGATreeSplitNode[V]) structureAsString() string {
	return fmt.Sprintf("%s %q", s.id.StructureAsString(), s.value.String())
}

// Remove marks this node as removed (tombstone) if it was created before
// the latest creation time the editor knew about.
func (s *RGATreeSplitNode[V]) Remove(removedAt *time.Ticket, latestCreatedAt *time.Ticket) bool {
	if !s.createdAt().After(latestCreatedAt) &&
		(s.removedAt == nil || removedAt.After(s.removedAt)) {
		s.removedAt = removedAt
		return true
	}
	return false
}

// TextChange is a change of the linear content caused by an edit, in the
// coordinates of the text right before the change is applied.
type TextChange struct {
	From    int
	To      int
	Content string
}

// RGATreeSplit is a block-based list with improved index-based lookup in RGA.
// The difference from RGATreeList is that it has data on a block basis to
// reduce the size of CRDT metadata. When an Edit occurs on a block,
// the block is split.
type RGATreeSplit[V RGATreeSplitValue] struct {
	initialHead *RGATreeSplitNode[V]
	treeByIndex *splay.Tree[*RGATreeSplitNode[V]]
	treeByID    *llrb.Tree[*RGATreeSplitNodeID, *RGATreeSplitNode[V]]

	// removedNodeMap is a map to store removed nodes. It is used to
	// delete the node physically when the garbage collection is executed.
	removedNodeMap map[string]*RGATreeSplitNode[V]
}

// NewRGATreeSplit creates a new instance of RGATreeSplit.
func NewRGATreeSplit[V RGATreeSplitValue](initialHead *RGATreeSplitNode[V]) *RGATreeSplit[V] {
	treeByIndex := splay.NewTree(initialHead.indexNode)
	treeByID := llrb.NewTree[*RGATreeSplitNodeID, *RGATreeSplitNode[V]]()
	treeByID.Put(initialHead.ID(), initialHead)

	return &RGATreeSplit[V]{
		initialHead:    initialHead,
		treeByIndex:    treeByIndex,
		treeByID:       treeByID,
		removedNodeMap: make(map[string]*RGATreeSplitNode[V]),
	}
}

// Len returns the length of the live content.
func (s *RGATreeSplit[V]) Len() int {
	return s.treeByIndex.Len()
}

func (s *RGATreeSplit[V]) createRange(from, to int) (*RGATreeSplitNodePos, *RGATreeSplitNodePos, error) {
	if from < 0 || to < from || to > s.Len() {
		return nil, nil, fmt.Errorf("range [%d, %d) of length %d: %w", from, to, s.Len(), ErrIndexOutOfRange)
	}

	fromPos, err := s.findNodePos(from)
	if err != nil {
		return nil, nil, err
	}
	if from == to {
		return fromPos, fromPos, nil
	}

	toPos, err := s.findNodePos(to)
	if err != nil {
		return nil, nil, err
	}

	return fromPos, toPos, nil
}

func (s *RGATreeSplit[V]) findNodePos(index int) (*RGATreeSplitNodePos, error) {
	splayNode, offset, err := s.treeByIndex.Find(index)
	if err != nil {
		return nil, fmt.Errorf("find node of index %d: %w", index, err)
	}
	node := splayNode.Value()
	return &RGATreeSplitNodePos{
		id:             node.ID(),
		relativeOffset: offset,
	}, nil
}

// findCharID returns the ID of the character at the given index.
func (s *RGATreeSplit[V]) findCharID(index int) (*RGATreeSplitNodeID, error) {
	if index < 0 || index >= s.Len() {
		return nil, fmt.Errorf("char %d of length %d: %w", index, s.Len(), ErrIndexOutOfRange)
	}

	// Find returns the left node on a boundary, so looking up the end of
	// the character always lands on the node holding it.
	splayNode, offset, err := s.treeByIndex.Find(index + 1)
	if err != nil {
		return nil, fmt.Errorf("find char %d: %w", index, err)
	}

	return splayNode.Value().id.Split(offset - 1), nil
}

// indexOfChar returns the index of the character of the given ID. ok is
// false if the character was removed or purged.
func (s *RGATreeSplit[V]) indexOfChar(id *RGATreeSplitNodeID) (int, bool) {
	node := s.findFloorNode(id)
	if node == nil || node.removedAt != nil {
		return 0, false
	}

	relativeOffset := id.offset - node.id.offset
	if relativeOffset < 0 || relativeOffset >= node.contentLen() {
		return 0, false
	}

	index := s.treeByIndex.IndexOf(node.indexNode)
	if index < 0 {
		return 0, false
	}

	return index + relativeOffset, true
}

func (s *RGATreeSplit[V]) findNodeWithSplit(
	pos *RGATreeSplitNodePos,
	updatedAt *time.Ticket,
) (*RGATreeSplitNode[V], *RGATreeSplitNode[V], error) {
	absoluteID := pos.getAbsoluteID()
	node, err := s.findFloorNodePreferToLeft(absoluteID)
	if err != nil {
		return nil, nil, err
	}

	relativeOffset := absoluteID.offset - node.id.offset
	if _, err := s.splitNode(node, relativeOffset); err != nil {
		return nil, nil, err
	}

	for node.next != nil && node.next.createdAt().After(updatedAt) {
		node = node.next
	}

	return node, node.next, nil
}

func (s *RGATreeSplit[V]) findFloorNodePreferToLeft(id *RGATreeSplitNodeID) (*RGATreeSplitNode[V], error) {
	node := s.findFloorNode(id)
	if node == nil {
		return nil, fmt.Errorf("%s: %w", id.StructureAsString(), ErrNodeNotFound)
	}

	if id.offset > 0 && node.id.offset == id.offset {
		// NOTE: InsPrev may not be present due to GC.
		if node.insPrev == nil {
			return node, nil
		}
		node = node.insPrev
	}

	return node, nil
}

func (s *RGATreeSplit[V]) splitNode(node *RGATreeSplitNode[V], offset int) (*RGATreeSplitNode[V], error) {
	if offset > node.contentLen() {
		return nil, fmt.Errorf("offset %d of node %s: %w", offset, node.structureAsString(), ErrIndexOutOfRange)
	}

	if offset == 0 {
		return node, nil
	} else if offset == node.contentLen() {
		return node.next, nil
	}

	splitNode := node.split(offset)
	s.treeByIndex.UpdateWeight(splitNode.indexNode)
	s.InsertAfter(node, splitNode)

	insNext := node.insNext
	if insNext != nil {
		insNext.SetInsPrev(splitNode)
	}
	splitNode.SetInsPrev(node)
	if splitNode.removedAt != nil {
		s.removedNodeMap[splitNode.id.key()] = splitNode
	}

	return splitNode, nil
}

// InsertAfter inserts the given node after the given previous node.
func (s *RGATreeSplit[V]) InsertAfter(prev, node *RGATreeSplitNode[V]) *RGATreeSplitNode[V] {
	next := prev.next
	node.setPrev(prev)
	if next != nil {
		next.setPrev(node)
	}

	s.treeByID.Put(node.id, node)
	s.treeByIndex.InsertAfter(prev.indexNode, node.indexNode)

	return node
}

// InitialHead returns the head node of this RGATreeSplit.
func (s *RGATreeSplit[V]) InitialHead() *RGATreeSplitNode[V] {
	return s.initialHead
}

// FindNode returns the node of the given ID.
func (s *RGATreeSplit[V]) FindNode(id *RGATreeSplitNodeID) *RGATreeSplitNode[V] {
	if id == nil {
		return nil
	}

	return s.findFloorNode(id)
}

// CheckWeight returns false when there is an incorrect weight node.
// for debugging purpose.
func (s *RGATreeSplit[V]) CheckWeight() bool {
	return s.treeByIndex.CheckWeight()
}

func (s *RGATreeSplit[V]) findFloorNode(id *RGATreeSplitNodeID) *RGATreeSplitNode[V] {
	key, value, ok := s.treeByID.Floor(id)
	if !ok {
		return nil
	}

	if !key.Equal(id) && !key.hasSameCreatedAt(id) {
		return nil
	}

	return value
}

func (s *RGATreeSplit[V]) edit(
	from *RGATreeSplitNodePos,
	to *RGATreeSplitNodePos,
	latestCreatedAtMapByActor map[string]*time.Ticket,
	content V,
	editedAt *time.Ticket,
) ([]*TextChange, map[string]*time.Ticket, error) {
	// 01. Split nodes with from and to
	_, toRight, err := s.findNodeWithSplit(to, editedAt)
	if err != nil {
		return nil, nil, err
	}
	fromLeft, fromRight, err := s.findNodeWithSplit(from, editedAt)
	if err != nil {
		return nil, nil, err
	}

	// 02. Collect the index of the insertion and the live ranges to delete
	// before any weight changes.
	insertAt := s.treeByIndex.IndexOf(fromLeft.indexNode) + fromLeft.Len()
	nodesToDelete := s.findBetween(fromRight, toRight)
	indexes := make([]int, len(nodesToDelete))
	for i, node := range nodesToDelete {
		indexes[i] = s.treeByIndex.IndexOf(node.indexNode)
	}

	// 03. Delete between from and to
	latestCreatedAtMap, removed := s.deleteNodes(nodesToDelete, latestCreatedAtMapByActor, editedAt)
	changes := toDeletionChanges(nodesToDelete, indexes, removed)

	// 04. Insert a new node
	if content.Len() > 0 {
		s.InsertAfter(fromLeft, NewRGATreeSplitNode(NewRGATreeSplitNodeID(editedAt, 0), content))

		if len(changes) == 1 && changes[0].From == insertAt {
			changes[0].Content = content.String()
		} else {
			changes = append(changes, &TextChange{
				From:    insertAt,
				To:      insertAt,
				Content: content.String(),
			})
		}
	}

	// 05. Register removed nodes for garbage collection
	for _, node := range removed {
		s.removedNodeMap[node.id.key()] = node
	}

	return changes, latestCreatedAtMap, nil
}

// toDeletionChanges merges the removed nodes into contiguous ranges. The
// ranges are returned from right to left so that each of them can be applied
// in order without shifting the ones that follow.
func toDeletionChanges[V RGATreeSplitValue](
	candidates []*RGATreeSplitNode[V],
	indexes []int,
	removed map[int]*RGATreeSplitNode[V],
) []*TextChange {
	var changes []*TextChange
	for i, node := range candidates {
		if _, ok := removed[i]; !ok {
			continue
		}

		from := indexes[i]
		to := from + node.contentLen()
		if len(changes) > 0 && changes[0].To == from {
			changes[0].To = to
			continue
		}
		changes = append([]*TextChange{{From: from, To: to}}, changes...)
	}

	return changes
}

func (s *RGATreeSplit[V]) findBetween(from, to *RGATreeSplitNode[V]) []*RGATreeSplitNode[V] {
	current := from
	var nodes []*RGATreeSplitNode[V]
	for current != nil && current != to {
		nodes = append(nodes, current)
		current = current.next
	}
	return nodes
}

// deleteNodes removes the given candidates and returns the latest creation
// time of the removed nodes by actor and the live nodes it removed, keyed
// by their position in candidates.
func (s *RGATreeSplit[V]) deleteNodes(
	candidates []*RGATreeSplitNode[V],
	latestCreatedAtMapByActor map[string]*time.Ticket,
	editedAt *time.Ticket,
) (map[string]*time.Ticket, map[int]*RGATreeSplitNode[V]) {
	createdAtMapByActor := make(map[string]*time.Ticket)
	removed := make(map[int]*RGATreeSplitNode[V])

	if len(candidates) == 0 {
		return createdAtMapByActor, removed
	}

	// There are 2 types of nodes in `candidates`: should delete, should not delete.
	// `nodesToKeep` contains nodes should not delete,
	// then is used to find the boundary of the range to be deleted.
	var nodesToKeep []*RGATreeSplitNode[V]
	leftEdge, rightEdge := candidates[0].prev, candidates[len(candidates)-1].next
	nodesToKeep = append(nodesToKeep, leftEdge)

	for i, node := range candidates {
		actorIDHex := node.createdAt().ActorIDHex()

		var latestCreatedAt *time.Ticket
		if latestCreatedAtMapByActor == nil {
			latestCreatedAt = time.MaxTicket
		} else if createdAt, ok := latestCreatedAtMapByActor[actorIDHex]; ok {
			latestCreatedAt = createdAt
		} else {
			latestCreatedAt = time.InitialTicket
		}

		wasLive := node.removedAt == nil
		if node.Remove(editedAt, latestCreatedAt) {
			latest := createdAtMapByActor[actorIDHex]
			createdAt := node.id.createdAt
			if latest == nil || createdAt.After(latest) {
				createdAtMapByActor[actorIDHex] = createdAt
			}

			if wasLive {
				removed[i] = node
			}
		} else {
			nodesToKeep = append(nodesToKeep, node)
		}
	}
	nodesToKeep = append(nodesToKeep, rightEdge)
	s.deleteIndexNodes(nodesToKeep)

	return createdAtMapByActor, removed
}

// deleteIndexNodes clears the index nodes of the given deletion boundaries.
// The boundaries mean the nodes that will not be deleted in the range.
func (s *RGATreeSplit[V]) deleteIndexNodes(boundaries []*RGATreeSplitNode[V]) {
	for i := 0; i < len(boundaries)-1; i++ {
		leftBoundary := boundaries[i]
		rightBoundary := boundaries[i+1]
		if leftBoundary.next == rightBoundary {
			continue
		} else if rightBoundary == nil {
			s.treeByIndex.DeleteRange(leftBoundary.indexNode, nil)
		} else {
			s.treeByIndex.DeleteRange(leftBoundary.indexNode, rightBoundary.indexNode)
		}
	}
}

func (s *RGATreeSplit[V]) string() string {
	builder := strings.Builder{}

	node := s.initialHead.next
	for node != nil {
		if node.removedAt == nil {
			builder.WriteString(node.String())
		}
		node = node.next
	}

	return builder.String()
}

func (s *RGATreeSplit[V]) nodes() []*RGATreeSplitNode[V] {
	var nodes []*RGATreeSplitNode[V]

	node := s.initialHead.next
	for node != nil {
		nodes = append(nodes, node)
		node = node.next
	}

	return nodes
}

// StructureAsString returns a String containing the metadata of the nodes
// for debugging purpose.
func (s *RGATreeSplit[V]) StructureAsString() string {
	builder := strings.Builder{}

	node := s.initialHead
	for node != nil {
		if node.removedAt != nil {
			builder.WriteString(fmt.Sprintf("{%s}", node.structureAsString()))
		} else {
			builder.WriteString(fmt.Sprintf("[%s]", node.structureAsString()))
		}
		node = node.next
	}

	return builder.String()
}

// removedNodesLen returns length of removed nodes
func (s *RGATreeSplit[V]) removedNodesLen() int {
	return len(s.removedNodeMap)
}

// purgeRemovedNodesBefore physically purges nodes that have been removed.
func (s *RGATreeSplit[V]) purgeRemovedNodesBefore(ticket *time.Ticket) int {
	count := 0
	for key, node := range s.removedNodeMap {
		if node.removedAt != nil && ticket.Compare(node.removedAt) >= 0 {
			s.treeByIndex.Delete(node.indexNode)
			s.purge(node)
			s.treeByID.Remove(node.id)
			delete(s.removedNodeMap, key)
			count++
		}
	}

	return count
}

// purge physically purge the given node from RGATreeSplit.
func (s *RGATreeSplit[V]) purge(node *RGATreeSplitNode[V]) {
	node.prev.next = node.next
	if node.next != nil {
		node.next.prev = node.prev
	}
	node.prev, node.next = nil, nil

	if node.insPrev != nil {
		node.insPrev.insNext = node.insNext
	}
	if node.insNext != nil {
		node.insNext.insPrev = node.insPrev
	}
	node.insPrev, node.insNext = nil, nil
}
