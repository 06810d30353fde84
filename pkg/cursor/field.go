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
	"encoding/json"
)

// DefaultFieldName is the name of the awareness field holding the cursor.
const DefaultFieldName = "cursor"

// Field is the cursor of a peer published to the awareness.
type Field struct {
	Anchor StablePosition `json:"anchor"`
	Head   StablePosition `json:"head"`
}

// decodeField decodes the cursor field of a peer. The local peer stores a
// Field while the fields of remote peers arrive as decoded JSON. ok is
// false when there is no cursor or it cannot be decoded.
func decodeField(value any) (*Field, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case Field:
		return &v, true
	case *Field:
		return v, v != nil
	}

	bytes, err := json.Marshal(value)
	if err != nil {
		return nil, false
	}
	field := &Field{}
	if err := json.Unmarshal(bytes, field); err != nil {
		return nil, false
	}
	if field.Anchor.Type == "" || field.Head.Type == "" {
		return nil, false
	}

	return field, true
}
