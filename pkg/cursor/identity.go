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
	"github.com/yorkie-team/cursors/pkg/awareness"
	"github.com/yorkie-team/cursors/pkg/view"
)

const (
	// UserFieldName is the name of the awareness field holding the identity
	// of a peer.
	UserFieldName = "user"

	// DefaultColor is the color of peers without one.
	DefaultColor = "#ffa500"
)

// Identity is the identity of a peer drawn with its cursor.
type Identity struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CaretBuilder builds the element of the caret of a peer.
type CaretBuilder func(user Identity) *view.Element

// DefaultCaretBuilder draws the caret as a bordered span labeled with the
// name of the peer.
func DefaultCaretBuilder(user Identity) *view.Element {
	return view.NewElement("span", map[string]string{
		"class": "ProseMirror-yjs-cursor",
		"style": "border-color: " + user.Color,
	}, view.NewElement("div", map[string]string{
		"style": "background-color: " + user.Color,
	}, view.NewText(user.Name)))
}

// identityOf returns the identity of the given peer, filling the missing
// values with defaults derived from the peer id.
func identityOf(peerID string, state awareness.State) Identity {
	var user Identity
	switch v := state[UserFieldName].(type) {
	case Identity:
		user = v
	case *Identity:
		if v != nil {
			user = *v
		}
	case map[string]any:
		user.Name, _ = v["name"].(string)
		user.Color, _ = v["color"].(string)
	case map[string]string:
		user.Name = v["name"]
		user.Color = v["color"]
	}

	if user.Color == "" {
		user.Color = DefaultColor
	}
	if user.Name == "" {
		user.Name = "User: " + peerID
	}
	return user
}
