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

package scenario_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/cursors/internal/scenario"
	"github.com/yorkie-team/cursors/internal/validation"
	"github.com/yorkie-team/cursors/pkg/cursor"
)

func TestNewConfigFromFile(t *testing.T) {
	t.Run("fail read config file test", func(t *testing.T) {
		conf := scenario.NewConfig()
		assert.NoError(t, conf.Validate())
		assert.Equal(t, scenario.DefaultDocumentKey, conf.Document.Key)
		assert.Equal(t, scenario.DefaultFieldName, conf.FieldName)
		assert.Equal(t, scenario.DefaultOutdatedTimeout.String(), conf.OutdatedTimeout)

		_, err := scenario.NewConfigFromFile("nowhere.yml")
		assert.Error(t, err)
	})

	t.Run("read config file test", func(t *testing.T) {
		conf, err := scenario.NewConfigFromFile("scenario.sample.yml")
		require.NoError(t, err)
		require.NoError(t, conf.Validate())

		assert.Equal(t, "sample-doc", conf.Document.Key)
		assert.Equal(t, "hello world", conf.Document.Content)
		assert.Equal(t, cursor.DefaultFieldName, conf.FieldName)

		timeout, err := conf.ParseOutdatedTimeout()
		require.NoError(t, err)
		assert.Equal(t, scenario.DefaultOutdatedTimeout, timeout)

		require.Len(t, conf.Peers, 2)
		assert.Equal(t, "#ff0000", conf.Peers[0].Color)
		assert.Equal(t, cursor.DefaultColor, conf.Peers[1].Color)

		require.Len(t, conf.Steps, 5)
		assert.Equal(t, scenario.ActionSelect, conf.Steps[1].Action)
		assert.Equal(t, 5, conf.Steps[1].Head)
		assert.Equal(t, "oh, ", conf.Steps[3].Text)
	})
}

func TestConfigValidate(t *testing.T) {
	newConfig := func() *scenario.Config {
		conf := scenario.NewConfig()
		conf.Peers = []*scenario.PeerConfig{{Name: "alice", Color: "#ff0000"}, {Name: "bob", Color: "#00ff00"}}
		return conf
	}

	t.Run("invalid fields test", func(t *testing.T) {
		conf := newConfig()
		conf.Peers[0].Color = "red"
		conf.Steps = []*scenario.StepConfig{{Action: "jump", Peer: "alice"}}

		err := conf.Validate()
		var structError *validation.StructError
		require.True(t, errors.As(err, &structError))
		require.Len(t, structError.Violations, 2)
		assert.Equal(t, "hexcolor", structError.Violations[0].Tag)
		assert.Equal(t, "oneof", structError.Violations[1].Tag)
	})

	t.Run("invalid duration test", func(t *testing.T) {
		conf := newConfig()
		conf.Steps = []*scenario.StepConfig{{Action: scenario.ActionWait, Duration: "soon"}}

		var structError *validation.StructError
		require.True(t, errors.As(conf.Validate(), &structError))
		assert.Equal(t, "duration", structError.Violations[0].Tag)
	})

	t.Run("no peers test", func(t *testing.T) {
		conf := newConfig()
		conf.Peers = nil
		assert.Error(t, conf.Validate())
	})

	t.Run("duplicated peer test", func(t *testing.T) {
		conf := newConfig()
		conf.Peers[1].Name = "alice"
		assert.ErrorIs(t, conf.Validate(), scenario.ErrDuplicatedPeer)
	})

	t.Run("unknown peer test", func(t *testing.T) {
		conf := newConfig()
		conf.Steps = []*scenario.StepConfig{
			{Action: scenario.ActionSync},
			{Action: scenario.ActionFocus, Peer: "carol"},
		}
		assert.ErrorIs(t, conf.Validate(), scenario.ErrUnknownPeer)

		conf.Steps[1].Peer = "bob"
		assert.NoError(t, conf.Validate())
	})
}
