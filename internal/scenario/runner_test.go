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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/cursors/internal/log"
	"github.com/yorkie-team/cursors/internal/scenario"
	"github.com/yorkie-team/cursors/pkg/errors"
)

func newRunner(t *testing.T, content string) *scenario.Runner {
	conf := scenario.NewConfig()
	conf.Document.Content = content
	conf.Peers = []*scenario.PeerConfig{
		{Name: "alice", Color: "#ff0000"},
		{Name: "bob", Color: "#00ff00"},
	}

	r, err := scenario.NewRunner(conf, log.Nop())
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func step(t *testing.T, r *scenario.Runner, steps ...*scenario.StepConfig) {
	for _, s := range steps {
		require.NoError(t, r.Step(s))
	}
}

func peerOf(t *testing.T, report *scenario.Report, name string) *scenario.PeerReport {
	for _, p := range report.Peers {
		if p.Name == name {
			return p
		}
	}
	require.FailNow(t, "no peer "+name)
	return nil
}

func overlaysOf(p *scenario.PeerReport, overlayType scenario.OverlayType) []*scenario.Overlay {
	var overlays []*scenario.Overlay
	for _, o := range p.Overlays {
		if o.Type == overlayType {
			overlays = append(overlays, o)
		}
	}
	return overlays
}

func TestRunner(t *testing.T) {
	t.Run("run sample scenario test", func(t *testing.T) {
		conf, err := scenario.NewConfigFromFile("scenario.sample.yml")
		require.NoError(t, err)

		r, err := scenario.NewRunner(conf, log.Nop())
		require.NoError(t, err)
		defer r.Close()

		report, err := r.Run(context.Background())
		require.NoError(t, err)

		alice := peerOf(t, report, "alice")
		assert.Equal(t, "oh, hello world", alice.Content)
		assert.True(t, alice.Live)
		assert.True(t, alice.Focused)
		assert.Equal(t, &scenario.Cursor{Anchor: 4, Head: 9}, alice.Cursor)
		assert.Empty(t, alice.Overlays)

		bob := peerOf(t, report, "bob")
		assert.Equal(t, "oh, hello world", bob.Content)
		assert.Nil(t, bob.Cursor)

		carets := overlaysOf(bob, scenario.OverlayCaret)
		require.Len(t, carets, 1)
		assert.Equal(t, "alice", carets[0].Owner)
		assert.Equal(t, "alice", carets[0].Label)
		assert.Equal(t, 9, carets[0].From)

		highlights := overlaysOf(bob, scenario.OverlayHighlight)
		require.Len(t, highlights, 1)
		assert.Equal(t, 4, highlights[0].From)
		assert.Equal(t, 9, highlights[0].To)
		assert.Equal(t, "background-color: #ff000070", highlights[0].Label)

		assert.Greater(t, report.Metrics.Publishes, 0.0)
		assert.Greater(t, report.Metrics.Recomputes, 0.0)
		assert.Greater(t, report.Metrics.Remaps, 0.0)
	})

	t.Run("blur removes the cursor test", func(t *testing.T) {
		r := newRunner(t, "hello world")
		step(t, r,
			&scenario.StepConfig{Action: scenario.ActionFocus, Peer: "bob"},
			&scenario.StepConfig{Action: scenario.ActionSelect, Peer: "bob", Anchor: 6, Head: 11},
			&scenario.StepConfig{Action: scenario.ActionSync},
		)

		carets := overlaysOf(peerOf(t, r.Report(), "alice"), scenario.OverlayCaret)
		require.Len(t, carets, 1)
		assert.Equal(t, "bob", carets[0].Owner)
		assert.Equal(t, 10, carets[0].From)

		step(t, r,
			&scenario.StepConfig{Action: scenario.ActionBlur, Peer: "bob"},
			&scenario.StepConfig{Action: scenario.ActionSync},
		)
		report := r.Report()
		assert.Nil(t, peerOf(t, report, "bob").Cursor)
		assert.Empty(t, peerOf(t, report, "alice").Overlays)
	})

	t.Run("snapshot hides the cursors test", func(t *testing.T) {
		r := newRunner(t, "hello world")
		step(t, r,
			&scenario.StepConfig{Action: scenario.ActionFocus, Peer: "bob"},
			&scenario.StepConfig{Action: scenario.ActionSelect, Peer: "bob", Anchor: 2, Head: 2},
			&scenario.StepConfig{Action: scenario.ActionSync},
			&scenario.StepConfig{Action: scenario.ActionSnapshot, Peer: "alice"},
		)

		alice := peerOf(t, r.Report(), "alice")
		assert.False(t, alice.Live)
		assert.True(t, alice.Attached)
		assert.NotZero(t, alice.Snapshot)
		assert.Empty(t, alice.Overlays)

		step(t, r,
			&scenario.StepConfig{Action: scenario.ActionInsert, Peer: "bob", From: 11, Text: "!"},
			&scenario.StepConfig{Action: scenario.ActionSync},
		)
		alice = peerOf(t, r.Report(), "alice")
		assert.Equal(t, "hello world", alice.Content)
		assert.Equal(t, "hello world!", peerOf(t, r.Report(), "bob").Content)

		step(t, r, &scenario.StepConfig{Action: scenario.ActionRestore, Peer: "alice"})
		alice = peerOf(t, r.Report(), "alice")
		assert.True(t, alice.Live)
		assert.Zero(t, alice.Snapshot)
		assert.Equal(t, "hello world!", alice.Content)
		require.Len(t, alice.Overlays, 1)
		assert.Equal(t, 2, alice.Overlays[0].From)
	})

	t.Run("detach hides the cursors test", func(t *testing.T) {
		r := newRunner(t, "hello world")
		step(t, r,
			&scenario.StepConfig{Action: scenario.ActionFocus, Peer: "bob"},
			&scenario.StepConfig{Action: scenario.ActionSync},
			&scenario.StepConfig{Action: scenario.ActionDetach, Peer: "alice"},
		)
		alice := peerOf(t, r.Report(), "alice")
		assert.False(t, alice.Attached)
		assert.Empty(t, alice.Overlays)

		step(t, r, &scenario.StepConfig{Action: scenario.ActionAttach, Peer: "alice"})
		assert.Len(t, peerOf(t, r.Report(), "alice").Overlays, 1)
	})

	t.Run("prune outdated peers test", func(t *testing.T) {
		r := newRunner(t, "hello world")
		step(t, r,
			&scenario.StepConfig{Action: scenario.ActionFocus, Peer: "bob"},
			&scenario.StepConfig{Action: scenario.ActionSync},
			&scenario.StepConfig{Action: scenario.ActionWait, Duration: "10s"},
			&scenario.StepConfig{Action: scenario.ActionPrune},
		)
		assert.Len(t, peerOf(t, r.Report(), "alice").Overlays, 1)

		step(t, r,
			&scenario.StepConfig{Action: scenario.ActionWait, Duration: "1m"},
			&scenario.StepConfig{Action: scenario.ActionPrune},
		)
		assert.Empty(t, peerOf(t, r.Report(), "alice").Overlays)
	})

	t.Run("failing step test", func(t *testing.T) {
		conf := scenario.NewConfig()
		conf.Document.Content = "abc"
		conf.Steps = []*scenario.StepConfig{
			{Action: scenario.ActionInsert, Peer: "peer", From: 10, Text: "x"},
		}

		r, err := scenario.NewRunner(conf, log.Nop())
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Run(context.Background())
		assert.ErrorContains(t, err, "step 0 insert")
	})

	t.Run("closed runner test", func(t *testing.T) {
		r := newRunner(t, "")
		r.Close()
		r.Close()

		err := r.Step(&scenario.StepConfig{Action: scenario.ActionSync})
		assert.ErrorIs(t, err, scenario.ErrRunnerClosed)
		assert.True(t, errors.IsStatus(err, errors.ErrCodeFailedPrecondition))
	})

	t.Run("canceled context test", func(t *testing.T) {
		conf := scenario.NewConfig()
		conf.Steps = []*scenario.StepConfig{{Action: scenario.ActionSync}}
		r, err := scenario.NewRunner(conf, log.Nop())
		require.NoError(t, err)
		defer r.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = r.Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
