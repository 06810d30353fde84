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

package splay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/cursors/pkg/splay"
)

type stringValue struct {
	content string
	removed bool
}

func newSplayNode(content string) *splay.Node[*stringValue] {
	return splay.NewNode(&stringValue{
		content: content,
	})
}

func (v *stringValue) Len() int {
	if v.removed {
		return 0
	}
	return len(v.content)
}

func (v *stringValue) String() string {
	return v.content
}

func TestSplayTree(t *testing.T) {
	t.Run("insert and splay test", func(t *testing.T) {
		tree := splay.NewTree[*stringValue](nil)

		node, idx, err := tree.Find(0)
		assert.NoError(t, err)
		assert.Nil(t, node)
		assert.Equal(t, 0, idx)

		nodeA := tree.Insert(newSplayNode("A2"))
		assert.Equal(t, "[2,2]A2", tree.AnnotatedString())
		nodeB := tree.Insert(newSplayNode("B23"))
		assert.Equal(t, "[2,2]A2[5,3]B23", tree.AnnotatedString())
		nodeC := tree.Insert(newSplayNode("C234"))
		assert.Equal(t, "[2,2]A2[5,3]B23[9,4]C234", tree.AnnotatedString())
		nodeD := tree.Insert(newSplayNode("D2345"))
		assert.Equal(t, "[2,2]A2[5,3]B23[9,4]C234[14,5]D2345", tree.AnnotatedString())

		tree.Splay(nodeB)
		assert.Equal(t, "[2,2]A2[14,3]B23[9,4]C234[5,5]D2345", tree.AnnotatedString())

		assert.Equal(t, 0, tree.IndexOf(nodeA))
		assert.Equal(t, 2, tree.IndexOf(nodeB))
		assert.Equal(t, 5, tree.IndexOf(nodeC))
		assert.Equal(t, 9, tree.IndexOf(nodeD))

		node, offset, err := tree.Find(1)
		require.NoError(t, err)
		assert.Equal(t, nodeA, node)
		assert.Equal(t, 1, offset)

		node, offset, err = tree.Find(7)
		require.NoError(t, err)
		assert.Equal(t, nodeC, node)
		assert.Equal(t, 2, offset)

		node, offset, err = tree.Find(11)
		require.NoError(t, err)
		assert.Equal(t, nodeD, node)
		assert.Equal(t, 2, offset)

		_, _, err = tree.Find(15)
		assert.ErrorIs(t, err, splay.ErrOutOfIndex)
		assert.True(t, tree.CheckWeight())
	})

	t.Run("deletion test", func(t *testing.T) {
		tree := splay.NewTree[*stringValue](nil)

		nodeH := tree.Insert(newSplayNode("H"))
		assert.Equal(t, "[1,1]H", tree.AnnotatedString())
		nodeE := tree.Insert(newSplayNode("E"))
		nodeL := tree.Insert(newSplayNode("LL"))
		nodeO := tree.Insert(newSplayNode("O"))
		assert.Equal(t, "HELLO", tree.String())
		assert.Equal(t, 5, tree.Len())

		tree.Delete(nodeE)
		assert.Equal(t, "HLLO", tree.String())
		assert.Equal(t, -1, tree.IndexOf(nodeE))
		assert.Equal(t, 0, tree.IndexOf(nodeH))
		assert.Equal(t, 1, tree.IndexOf(nodeL))
		assert.Equal(t, 3, tree.IndexOf(nodeO))
		assert.True(t, tree.CheckWeight())
	})

	t.Run("range deletion test", func(t *testing.T) {
		tree := splay.NewTree[*stringValue](nil)
		head := tree.Insert(newSplayNode(""))
		a := tree.Insert(newSplayNode("aa"))
		b := tree.Insert(newSplayNode("bb"))
		c := tree.Insert(newSplayNode("cc"))
		d := tree.Insert(newSplayNode("dd"))
		assert.Equal(t, 8, tree.Len())

		b.Value().removed = true
		c.Value().removed = true
		tree.DeleteRange(a, d)
		assert.Equal(t, 4, tree.Len())
		assert.Equal(t, 0, tree.IndexOf(head))
		assert.Equal(t, 2, tree.IndexOf(d))
		assert.True(t, tree.CheckWeight())

		d.Value().removed = true
		tree.DeleteRange(a, nil)
		assert.Equal(t, 2, tree.Len())
		assert.True(t, tree.CheckWeight())
	})
}
