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

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidation(t *testing.T) {
	t.Run("ValidateValue test", func(t *testing.T) {
		err := ValidateValue("alice", "required,slug,min=2,max=30")
		assert.NoError(t, err)

		err = ValidateValue("Alice Kim", "required,slug,min=2,max=30")
		require.Error(t, err)
		assert.Equal(t, "slug", err.(Violation).Tag)

		err = ValidateValue("1m30s", "duration")
		assert.NoError(t, err)

		err = ValidateValue("one minute", "duration")
		require.Error(t, err)
		assert.Equal(t, "duration", err.(Violation).Tag)

		err = ValidateValue("-5s", "duration")
		require.Error(t, err)
		assert.Equal(t, "duration", err.(Violation).Tag)

		err = ValidateValue("#ffa500", "hexcolor")
		assert.NoError(t, err)
	})

	t.Run("ValidateStruct test", func(t *testing.T) {
		type Peer struct {
			Name  string `validate:"required,slug"`
			Color string `validate:"omitempty,hexcolor"`
		}

		assert.NoError(t, ValidateStruct(Peer{Name: "alice", Color: "#00ff00"}))

		err := ValidateStruct(Peer{Name: "Alice!", Color: "green"})
		structError, ok := err.(*StructError)
		require.True(t, ok)
		require.Len(t, structError.Violations, 2)
		assert.Equal(t, "slug", structError.Violations[0].Tag)
		assert.Equal(t, "Peer.Name", structError.Violations[0].Field)
		assert.Equal(t, "hexcolor", structError.Violations[1].Tag)
		assert.Contains(t, err.Error(), "Name must only contain lowercase letters")
	})

	t.Run("custom rule test", func(t *testing.T) {
		require.NoError(t, RegisterValidation("custom", func(v FieldLevel) bool {
			return v.Field().String() == "custom"
		}))
		require.NoError(t, RegisterTranslation("custom", "{0} must be custom"))

		assert.NoError(t, ValidateValue("custom", "required,custom"))

		err := ValidateValue("custom-invalid-value", "required,custom")
		require.Error(t, err)
		assert.Equal(t, "custom", err.(Violation).Tag)
	})
}
