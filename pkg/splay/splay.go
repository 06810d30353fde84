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

// Package splay provides a weighted splay tree. The text CRDT uses it to
// translate between linear offsets and the nodes holding the characters.
// Nodes are weighted by their visible length, so removed characters take no
// room, and the recently touched nodes stay near the root, which suits
// editing around a cursor.
package splay

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfIndex is returned when the given index is out of index.
var ErrOutOfIndex = errors.New("out of index")

// Value represents the data stored in the nodes of Tree.
type Value interface {
	Len() int
	String() string
}

// Node is a node of Tree. Its weight is the total length of the values in
// the subtree rooted at it.
type Node[V Value] struct {
	value  V
	weight int

	left   *Node[V]
	right  *Node[V]
	parent *Node[V]
}

// NewNode creates a new instance of Node.
func NewNode[V Value](value V) *Node[V] {
	n := &Node[V]{
		value: value,
	}
	n.InitWeight()
	return n
}

// Value returns the value of this Node.
func (n *Node[V]) Value() V {
	return n.value
}

// InitWeight resets the weight of this node to the length of its own value.
func (n *Node[V]) InitWeight() {
	n.weight = n.value.Len()
}

func (n *Node[V]) leftWeight() int {
	if n.left == nil {
		return 0
	}
	return n.left.weight
}

func (n *Node[V]) rightWeight() int {
	if n.right == nil {
		return 0
	}
	return n.right.weight
}

func (n *Node[V]) unlink() {
	n.parent = nil
	n.right = nil
	n.left = nil
}

func (n *Node[V]) hasLinks() bool {
	return n.parent != nil || n.left != nil || n.right != nil
}

// Tree is a weighted binary search tree based on Splay tree.
// original paper on Splay Trees: https://www.cs.cmu.edu/~sleator/papers/self-adjusting.pdf
type Tree[V Value] struct {
	root *Node[V]
}

// NewTree creates a new instance of Tree.
func NewTree[V Value](root *Node[V]) *Tree[V] {
	return &Tree[V]{
		root: root,
	}
}

// Insert inserts the node at the last.
func (t *Tree[V]) Insert(node *Node[V]) *Node[V] {
	if t.root == nil {
		t.root = node
		return node
	}

	return t.InsertAfter(t.rightmost(), node)
}

// InsertAfter inserts the node after the given previous node.
func (t *Tree[V]) InsertAfter(prev *Node[V], node *Node[V]) *Node[V] {
	t.Splay(prev)
	t.root = node
	node.right = prev.right
	if prev.right != nil {
		prev.right.parent = node
	}
	node.left = prev
	prev.parent = node
	prev.right = nil

	t.UpdateWeight(prev)
	t.UpdateWeight(node)

	return node
}

// Splay moves the given node to the root.
func (t *Tree[V]) Splay(node *Node[V]) {
	if node == nil {
		return
	}

	for {
		switch {
		case isLeftChild(node.parent) && isRightChild(node):
			// zig-zag
			t.rotateLeft(node)
			t.rotateRight(node)
		case isRightChild(node.parent) && isLeftChild(node):
			// zig-zag
			t.rotateRight(node)
			t.rotateLeft(node)
		case isLeftChild(node.parent) && isLeftChild(node):
			// zig-zig
			t.rotateRight(node.parent)
			t.rotateRight(node)
		case isRightChild(node.parent) && isRightChild(node):
			// zig-zig
			t.rotateLeft(node.parent)
			t.rotateLeft(node)
		default:
			// zig
			if isLeftChild(node) {
				t.rotateRight(node)
			} else if isRightChild(node) {
				t.rotateLeft(node)
			}
			t.updateTreeWeight(node)
			return
		}
	}
}

// IndexOf returns the offset at which the value of the given node starts,
// or -1 if the node is not part of this tree.
func (t *Tree[V]) IndexOf(node *Node[V]) int {
	if node == nil || node != t.root && !node.hasLinks() {
		return -1
	}

	index := 0
	current := node
	var prev *Node[V]
	for current != nil {
		if prev == nil || prev == current.right {
			index += current.value.Len() + current.leftWeight()
		}
		prev = current
		current = current.parent
	}
	return index - node.value.Len()
}

// Find returns the node containing the given index and the offset of the
// index within that node. When the index falls on a boundary between two
// nodes, the left node is returned with an offset equal to its length.
func (t *Tree[V]) Find(index int) (*Node[V], int, error) {
	if t.root == nil {
		return nil, 0, nil
	}

	node := t.root
	offset := index
	for {
		if node.left != nil && offset <= node.leftWeight() {
			node = node.left
		} else if node.right != nil && node.leftWeight()+node.value.Len() < offset {
			offset -= node.leftWeight() + node.value.Len()
			node = node.right
		} else {
			offset -= node.leftWeight()
			break
		}
	}

	if offset < 0 || offset > node.value.Len() {
		return nil, 0, fmt.Errorf("node length %d, index %d: %w", node.value.Len(), offset, ErrOutOfIndex)
	}

	return node, offset, nil
}

// String returns a string containing node values.
func (t *Tree[V]) String() string {
	var builder strings.Builder
	traverseInOrder(t.root, func(node *Node[V]) {
		builder.WriteString(node.value.String())
	})
	return builder.String()
}

// AnnotatedString returns a string containing the weight and length of each
// node for debugging purpose.
func (t *Tree[V]) AnnotatedString() string {
	var builder strings.Builder
	traverseInOrder(t.root, func(node *Node[V]) {
		builder.WriteString(fmt.Sprintf(
			"[%d,%d]%s",
			node.weight,
			node.value.Len(),
			node.value.String(),
		))
	})
	return builder.String()
}

// CheckWeight returns false when there is an incorrect weight node.
// for debugging purpose.
func (t *Tree[V]) CheckWeight() bool {
	valid := true
	traversePostorder(t.root, func(node *Node[V]) {
		if node.weight != node.value.Len()+node.leftWeight()+node.rightWeight() {
			valid = false
		}
	})
	return valid
}

// UpdateWeight recalculates the weight of this node with the value and children.
func (t *Tree[V]) UpdateWeight(node *Node[V]) {
	node.weight = node.value.Len() + node.leftWeight() + node.rightWeight()
}

func (t *Tree[V]) updateTreeWeight(node *Node[V]) {
	for node != nil {
		t.UpdateWeight(node)
		node = node.parent
	}
}

// Delete deletes the given node from this Tree.
func (t *Tree[V]) Delete(node *Node[V]) {
	t.Splay(node)

	left, right := node.left, node.right
	if left != nil {
		left.parent = nil
	}
	if right != nil {
		right.parent = nil
	}

	if left != nil {
		leftTree := NewTree(left)
		rightmost := leftTree.rightmost()
		leftTree.Splay(rightmost)
		leftTree.root.right = right
		if right != nil {
			right.parent = leftTree.root
		}
		t.root = leftTree.root
	} else {
		t.root = right
	}

	node.unlink()
	if t.root != nil {
		t.UpdateWeight(t.root)
	}
}

// DeleteRange separates the nodes between the given boundaries from the
// weight of this Tree. The separated nodes stay linked, but their weights
// are reset so that they no longer count toward any index. leftBoundary
// must exist; a nil rightBoundary means the range runs to the end.
func (t *Tree[V]) DeleteRange(leftBoundary, rightBoundary *Node[V]) {
	if rightBoundary == nil {
		t.Splay(leftBoundary)
		t.cutOffRight(leftBoundary)
		return
	}

	t.Splay(leftBoundary)
	t.Splay(rightBoundary)
	if rightBoundary.left != leftBoundary {
		t.rotateRight(leftBoundary)
	}
	t.cutOffRight(leftBoundary)
}

// Len returns the total weight of this Tree.
func (t *Tree[V]) Len() int {
	if t.root == nil {
		return 0
	}

	return t.root.weight
}

func (t *Tree[V]) cutOffRight(root *Node[V]) {
	traversePostorder(root.right, func(node *Node[V]) { node.InitWeight() })
	t.updateTreeWeight(root)
}

func (t *Tree[V]) rotateLeft(pivot *Node[V]) {
	root := pivot.parent
	t.replaceChild(root, pivot)

	root.right = pivot.left
	if root.right != nil {
		root.right.parent = root
	}

	pivot.left = root
	root.parent = pivot

	t.UpdateWeight(root)
	t.UpdateWeight(pivot)
}

func (t *Tree[V]) rotateRight(pivot *Node[V]) {
	root := pivot.parent
	t.replaceChild(root, pivot)

	root.left = pivot.right
	if root.left != nil {
		root.left.parent = root
	}

	pivot.right = root
	root.parent = pivot

	t.UpdateWeight(root)
	t.UpdateWeight(pivot)
}

// replaceChild puts pivot in the place root occupies under root's parent.
func (t *Tree[V]) replaceChild(root, pivot *Node[V]) {
	if root.parent == nil {
		t.root = pivot
	} else if root == root.parent.left {
		root.parent.left = pivot
	} else {
		root.parent.right = pivot
	}
	pivot.parent = root.parent
}

func (t *Tree[V]) rightmost() *Node[V] {
	node := t.root
	for node.right != nil {
		node = node.right
	}
	return node
}

func traverseInOrder[V Value](node *Node[V], callback func(node *Node[V])) {
	if node == nil {
		return
	}

	traverseInOrder(node.left, callback)
	callback(node)
	traverseInOrder(node.right, callback)
}

func traversePostorder[V Value](node *Node[V], callback func(node *Node[V])) {
	if node == nil {
		return
	}

	traversePostorder(node.left, callback)
	traversePostorder(node.right, callback)
	callback(node)
}

func isLeftChild[V Value](node *Node[V]) bool {
	return node != nil && node.parent != nil && node.parent.left == node
}

func isRightChild[V Value](node *Node[V]) bool {
	return node != nil && node.parent != nil && node.parent.right == node
}
