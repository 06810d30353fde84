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
package cursor_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/cursors/pkg/cursor"
	"github.com/yorkie-team/cursors/pkg/document/time"
)

func TestTranslator(t *testing.T) {
	t.Run("round trip test", func(t *testing.T) {
		a, _ := newPeers(t, "hello 🌷 world")
		size := a.binding.Size()
		require.Equal(t, 14, size)

		for offset := 0; offset <= size; offset++ {
			for _, assoc := range []cursor.Assoc{cursor.AssocBefore, cursor.AssocAfter} {
				pos := cursor.ToStable(a.binding, offset, assoc)
				resolved, ok := cursor.ToAbsolute(a.binding, pos)
				require.True(t, ok, "offset %d assoc %d", offset, assoc)
				assert.Equal(t, offset, resolved, "offset %d assoc %d", offset, assoc)
			}
		}
	})

	t.Run("boundary test", func(t *testing.T) {
		a, _ := newPeers(t, "abc")

		start := cursor.ToStable(a.binding, 0, cursor.AssocBefore)
		assert.Nil(t, start.Item)
		end := cursor.ToStable(a.binding, 3, cursor.AssocAfter)
		assert.Nil(t, end.Item)

		a.edit(t, 0, 0, "xx")
		a.edit(t, 5, 5, "yy")
		pos, ok := cursor.ToAbsolute(a.binding, start)
		assert.True(t, ok)
		assert.Equal(t, 0, pos)
		pos, ok = cursor.ToAbsolute(a.binding, end)
		assert.True(t, ok)
		assert.Equal(t, 7, pos)
	})

	t.Run("remote edit test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		after := cursor.ToStable(a.binding, 5, cursor.AssocAfter)
		before := cursor.ToStable(a.binding, 5, cursor.AssocBefore)

		b.edit(t, 8, 8, "---")
		syncDoc(t, b, a)
		pos, ok := cursor.ToAbsolute(a.binding, after)
		assert.True(t, ok)
		assert.Equal(t, 5, pos)

		b.edit(t, 0, 0, "oh, ")
		syncDoc(t, b, a)
		assert.Equal(t, "oh, hello wo---rld", a.view.State().Doc())
		pos, ok = cursor.ToAbsolute(a.binding, after)
		assert.True(t, ok)
		assert.Equal(t, 9, pos)
		pos, ok = cursor.ToAbsolute(a.binding, before)
		assert.True(t, ok)
		assert.Equal(t, 9, pos)

		b.edit(t, 9, 9, "!")
		syncDoc(t, b, a)
		pos, _ = cursor.ToAbsolute(a.binding, after)
		assert.Equal(t, 10, pos)
		pos, _ = cursor.ToAbsolute(a.binding, before)
		assert.Equal(t, 9, pos)
	})

	t.Run("deletion test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		pos := cursor.ToStable(a.binding, 5, cursor.AssocAfter)
		next := cursor.ToStable(a.binding, 6, cursor.AssocAfter)

		b.edit(t, 5, 6, "")
		syncDoc(t, b, a)
		_, ok := cursor.ToAbsolute(a.binding, pos)
		assert.False(t, ok)
		resolved, ok := cursor.ToAbsolute(a.binding, next)
		assert.True(t, ok)
		assert.Equal(t, 5, resolved)

		assert.Positive(t, a.doc.GarbageCollect(time.MaxTicket))
		_, ok = cursor.ToAbsolute(a.binding, pos)
		assert.False(t, ok)
		resolved, ok = cursor.ToAbsolute(a.binding, next)
		assert.True(t, ok)
		assert.Equal(t, 5, resolved)
	})

	t.Run("foreign position test", func(t *testing.T) {
		a, _ := newPeers(t, "hello")
		pos := cursor.ToStable(a.binding, 1, cursor.AssocAfter)

		foreign := pos
		foreign.Type = "1:0:ffffffffffffffffffffffff"
		_, ok := cursor.ToAbsolute(a.binding, foreign)
		assert.False(t, ok)

		malformed := pos
		malformed.Item = &cursor.ItemID{Lamport: 1, Actor: "not hex"}
		_, ok = cursor.ToAbsolute(a.binding, malformed)
		assert.False(t, ok)

		missing := pos
		missing.Item = &cursor.ItemID{Lamport: 42, Actor: a.id()}
		_, ok = cursor.ToAbsolute(a.binding, missing)
		assert.False(t, ok)
	})

	t.Run("equal test", func(t *testing.T) {
		a, _ := newPeers(t, "hello")
		pos := cursor.ToStable(a.binding, 1, cursor.AssocAfter)

		assert.True(t, pos.Equal(cursor.ToStable(a.binding, 1, cursor.AssocAfter)))
		assert.False(t, pos.Equal(cursor.ToStable(a.binding, 2, cursor.AssocAfter)))
		assert.False(t, pos.Equal(cursor.ToStable(a.binding, 2, cursor.AssocBefore)))
		assert.False(t, pos.Equal(cursor.ToStable(a.binding, 5, cursor.AssocAfter)))
		assert.True(t, cursor.ToStable(a.binding, 5, cursor.AssocAfter).Equal(
			cursor.ToStable(a.binding, 5, cursor.AssocAfter),
		))

		data, err := json.Marshal(pos)
		require.NoError(t, err)
		var decoded cursor.StablePosition
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, pos.Equal(decoded))
	})
}
