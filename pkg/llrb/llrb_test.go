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

package llrb_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yorkie-team/cursors/pkg/llrb"
)

type intKey struct {
	key int
}

func newIntKey(key int) *intKey {
	return &intKey{key: key}
}

func (k *intKey) Compare(other llrb.Key) int {
	o := other.(*intKey)
	if k.key > o.key {
		return 1
	} else if k.key < o.key {
		return -1
	}
	return 0
}

type intValue struct {
	value int
}

func (v *intValue) String() string {
	return strconv.Itoa(v.value)
}

func shuffled(n int) []int {
	a := rand.Perm(n)
	return a
}

func TestTree(t *testing.T) {
	t.Run("keeping order test", func(t *testing.T) {
		tree := llrb.NewTree[*intKey, *intValue]()

		for _, value := range shuffled(10) {
			tree.Put(newIntKey(value), &intValue{value})
		}
		assert.Equal(t, "0,1,2,3,4,5,6,7,8,9", tree.String())
		assert.Equal(t, 10, tree.Len())

		tree.Remove(newIntKey(8))
		assert.Equal(t, "0,1,2,3,4,5,6,7,9", tree.String())

		tree.Remove(newIntKey(2))
		assert.Equal(t, "0,1,3,4,5,6,7,9", tree.String())

		tree.Remove(newIntKey(5))
		assert.Equal(t, "0,1,3,4,6,7,9", tree.String())
		assert.Equal(t, 7, tree.Len())

		tree.Remove(newIntKey(42))
		assert.Equal(t, 7, tree.Len())
	})

	t.Run("floor test", func(t *testing.T) {
		tree := llrb.NewTree[*intKey, *intValue]()
		for _, value := range []int{10, 20, 30} {
			tree.Put(newIntKey(value), &intValue{value})
		}

		key, value, ok := tree.Floor(newIntKey(25))
		assert.True(t, ok)
		assert.Equal(t, 20, key.key)
		assert.Equal(t, 20, value.value)

		key, _, ok = tree.Floor(newIntKey(30))
		assert.True(t, ok)
		assert.Equal(t, 30, key.key)

		key, _, ok = tree.Floor(newIntKey(99))
		assert.True(t, ok)
		assert.Equal(t, 30, key.key)

		_, _, ok = tree.Floor(newIntKey(5))
		assert.False(t, ok)
	})

	t.Run("remove every key test", func(t *testing.T) {
		tree := llrb.NewTree[*intKey, *intValue]()
		for _, value := range shuffled(100) {
			tree.Put(newIntKey(value), &intValue{value})
		}
		for _, value := range shuffled(100) {
			tree.Remove(newIntKey(value))
			_, ok := tree.Get(newIntKey(value))
			assert.False(t, ok)
		}
		assert.Equal(t, 0, tree.Len())
		assert.Equal(t, "", tree.String())
	})
}
