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

// Package llrb provides a Left-leaning Red-Black tree implementation. The
// text CRDT uses it to find the node holding a character ID. A node is keyed
// by the ID of its first character, so Floor finds the node a character
// ended up in after splits, both for remote edits and for resolving stable
// positions.
package llrb

import (
	"strings"
)

// Key represents key of Tree.
type Key interface {
	// Compare gives the result of a 3-way comparison
	// a.Compare(b) = 1 => a > b
	// a.Compare(b) = 0 => a == b
	// a.Compare(b) = -1 => a < b
	Compare(k Key) int
}

// Value represents the data stored in the nodes of Tree.
type Value interface {
	String() string
}

// Node is a node of Tree.
type Node[K Key, V Value] struct {
	key   K
	value V
	left  *Node[K, V]
	right *Node[K, V]
	isRed bool
}

// NewNode creates a new instance of Node.
func NewNode[K Key, V Value](key K, value V, isRed bool) *Node[K, V] {
	return &Node[K, V]{
		key:   key,
		value: value,
		isRed: isRed,
	}
}

// Tree is an implementation of Left-leaning Red-Black Tree.
// Original paper on Left-leaning Red-Black Trees:
// http://www.cs.princeton.edu/~rs/talks/LLRB/LLRB.pdf
//
// Invariant 1: No red node has a red child
// Invariant 2: Every leaf path has the same number of black nodes
// Invariant 3: Only the left child can be red (left leaning)
type Tree[K Key, V Value] struct {
	root *Node[K, V]
	size int
}

// NewTree creates a new instance of Tree.
func NewTree[K Key, V Value]() *Tree[K, V] {
	return &Tree[K, V]{}
}

// Put puts the value of the given key.
func (t *Tree[K, V]) Put(k K, v V) V {
	t.root = t.put(t.root, k, v)
	t.root.isRed = false
	return v
}

// Get returns the value of the given key.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	node := t.root
	for node != nil {
		compare := key.Compare(node.key)
		if compare < 0 {
			node = node.left
		} else if compare > 0 {
			node = node.right
		} else {
			return node.value, true
		}
	}

	var zeroV V
	return zeroV, false
}

// Remove removes the value of the given key. Removing a missing key is a
// no-op.
func (t *Tree[K, V]) Remove(key K) {
	if _, ok := t.Get(key); !ok {
		return
	}

	if !isRed(t.root.left) && !isRed(t.root.right) {
		t.root.isRed = true
	}

	t.root = t.remove(t.root, key)
	if t.root != nil {
		t.root.isRed = false
	}
}

// Floor returns the greatest key less than or equal to the given key. ok is
// false when every key in the tree is greater than the given key.
func (t *Tree[K, V]) Floor(key K) (K, V, bool) {
	var floor *Node[K, V]
	node := t.root

	for node != nil {
		compare := key.Compare(node.key)
		if compare == 0 {
			return node.key, node.value, true
		}

		if compare < 0 {
			node = node.left
		} else {
			floor = node
			node = node.right
		}
	}

	if floor == nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}

	return floor.key, floor.value, true
}

// Len returns the number of nodes in this tree.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// String returns the values of this tree in key order.
func (t *Tree[K, V]) String() string {
	var str []string
	traverseInOrder(t.root, func(node *Node[K, V]) {
		str = append(str, node.value.String())
	})
	return strings.Join(str, ",")
}

func (t *Tree[K, V]) put(node *Node[K, V], key K, value V) *Node[K, V] {
	if node == nil {
		t.size++
		return NewNode(key, value, true)
	}

	compare := key.Compare(node.key)
	if compare < 0 {
		node.left = t.put(node.left, key, value)
	} else if compare > 0 {
		node.right = t.put(node.right, key, value)
	} else {
		node.value = value
	}

	return fixUp(node)
}

func (t *Tree[K, V]) remove(node *Node[K, V], key K) *Node[K, V] {
	if key.Compare(node.key) < 0 {
		if !isRed(node.left) && !isRed(node.left.left) {
			node = moveRedLeft(node)
		}
		node.left = t.remove(node.left, key)
		return fixUp(node)
	}

	if isRed(node.left) {
		node = rotateRight(node)
	}

	if key.Compare(node.key) == 0 && node.right == nil {
		t.size--
		return nil
	}

	if !isRed(node.right) && !isRed(node.right.left) {
		node = moveRedRight(node)
	}

	if key.Compare(node.key) == 0 {
		t.size--
		smallest := minNode(node.right)
		node.value = smallest.value
		node.key = smallest.key
		node.right = removeMin(node.right)
	} else {
		node.right = t.remove(node.right, key)
	}

	return fixUp(node)
}

func rotateLeft[K Key, V Value](node *Node[K, V]) *Node[K, V] {
	right := node.right
	node.right = right.left
	right.left = node
	right.isRed = right.left.isRed
	right.left.isRed = true
	return right
}

func rotateRight[K Key, V Value](node *Node[K, V]) *Node[K, V] {
	left := node.left
	node.left = left.right
	left.right = node
	left.isRed = left.right.isRed
	left.right.isRed = true
	return left
}

func flipColors[K Key, V Value](node *Node[K, V]) {
	node.isRed = !node.isRed
	node.left.isRed = !node.left.isRed
	node.right.isRed = !node.right.isRed
}

func moveRedLeft[K Key, V Value](node *Node[K, V]) *Node[K, V] {
	flipColors(node)
	if isRed(node.right.left) {
		node.right = rotateRight(node.right)
		node = rotateLeft(node)
		flipColors(node)
	}
	return node
}

func moveRedRight[K Key, V Value](node *Node[K, V]) *Node[K, V] {
	flipColors(node)
	if isRed(node.left.left) {
		node = rotateRight(node)
		flipColors(node)
	}
	return node
}

func removeMin[K Key, V Value](node *Node[K, V]) *Node[K, V] {
	if node.left == nil {
		return nil
	}

	if !isRed(node.left) && !isRed(node.left.left) {
		node = moveRedLeft(node)
	}

	node.left = removeMin(node.left)
	return fixUp(node)
}

func minNode[K Key, V Value](node *Node[K, V]) *Node[K, V] {
	for node.left != nil {
		node = node.left
	}
	return node
}

func fixUp[K Key, V Value](node *Node[K, V]) *Node[K, V] {
	if isRed(node.right) && !isRed(node.left) {
		node = rotateLeft(node)
	}

	if isRed(node.left) && isRed(node.left.left) {
		node = rotateRight(node)
	}

	if isRed(node.left) && isRed(node.right) {
		flipColors(node)
	}

	return node
}

func isRed[K Key, V Value](node *Node[K, V]) bool {
	return node != nil && node.isRed
}

func traverseInOrder[K Key, V Value](node *Node[K, V], callback func(node *Node[K, V])) {
	if node == nil {
		return
	}

	traverseInOrder(node.left, callback)
	callback(node)
	traverseInOrder(node.right, callback)
}
