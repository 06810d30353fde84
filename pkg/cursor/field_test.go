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
package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yorkie-team/cursors/pkg/awareness"
)

func TestDecodeField(t *testing.T) {
	pos := StablePosition{
		Type:  "0:1:000000000000000000000000",
		Item:  &ItemID{Lamport: 3, Delimiter: 1, Actor: "000000000000000000000001", Offset: 2},
		Assoc: AssocAfter,
	}
	field := Field{Anchor: pos, Head: pos}

	tests := []struct {
		name  string
		value any
		ok    bool
	}{
		{"nil", nil, false},
		{"value", field, true},
		{"pointer", &field, true},
		{"nil pointer", (*Field)(nil), false},
		{"decoded json", map[string]any{
			"anchor": map[string]any{"type": pos.Type, "item": map[string]any{
				"lamport": float64(3), "delimiter": float64(1), "actor": "000000000000000000000001", "offset": float64(2),
			}, "assoc": float64(0)},
			"head": map[string]any{"type": pos.Type, "item": map[string]any{
				"lamport": float64(3), "delimiter": float64(1), "actor": "000000000000000000000001", "offset": float64(2),
			}, "assoc": float64(0)},
		}, true},
		{"missing head", map[string]any{"anchor": map[string]any{"type": pos.Type}}, false},
		{"wrong shape", "cursor", false},
		{"wrong field type", map[string]any{"anchor": 1, "head": 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, ok := decodeField(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, decoded.Anchor.Equal(pos))
				assert.True(t, decoded.Head.Equal(pos))
			}
		})
	}
}

func TestIdentityOf(t *testing.T) {
	tests := []struct {
		name     string
		state    awareness.State
		expected Identity
	}{
		{"missing", awareness.State{}, Identity{Name: "User: p1", Color: DefaultColor}},
		{"value", awareness.State{UserFieldName: Identity{Name: "kim", Color: "#123456"}}, Identity{Name: "kim", Color: "#123456"}},
		{"pointer", awareness.State{UserFieldName: &Identity{Name: "kim"}}, Identity{Name: "kim", Color: DefaultColor}},
		{"decoded json", awareness.State{UserFieldName: map[string]any{"color": "#abcdef"}}, Identity{Name: "User: p1", Color: "#abcdef"}},
		{"wrong shape", awareness.State{UserFieldName: 42}, Identity{Name: "User: p1", Color: DefaultColor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, identityOf("p1", tt.state))
			assert.Equal(t, identityOf("p1", tt.state), identityOf("p1", tt.state))
		})
	}
}
