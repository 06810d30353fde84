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

package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/cursors/internal/scenario"
)

func TestPrintReport(t *testing.T) {
	report := &scenario.Report{
		Peers: []*scenario.PeerReport{
			{
				Name:    "alice",
				Content: "hello",
				Live:    true,
				Focused: true,
				Cursor:  &scenario.Cursor{Anchor: 0, Head: 5},
			},
			{
				Name:    "bob",
				Content: "hello",
				Live:    true,
				Overlays: []*scenario.Overlay{
					{Type: scenario.OverlayHighlight, From: 0, To: 4},
					{Type: scenario.OverlayCaret, Owner: "alice", From: 4, To: 4, Label: "alice"},
				},
			},
		},
		Metrics: &scenario.MetricsReport{Recomputes: 3, Remaps: 2, Publishes: 1},
	}

	newCmd := func() (*cobra.Command, *bytes.Buffer) {
		cmd := &cobra.Command{}
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		return cmd, out
	}

	t.Run("table output test", func(t *testing.T) {
		cmd, out := newCmd()
		require.NoError(t, printReport(cmd, "", report))
		assert.Contains(t, out.String(), "0..5")
		assert.Contains(t, out.String(), "highlight[0,4) caret(alice)@4")
		assert.Contains(t, out.String(), "RECOMPUTES 3")
	})

	t.Run("json output test", func(t *testing.T) {
		cmd, out := newCmd()
		require.NoError(t, printReport(cmd, "json", report))
		assert.Contains(t, out.String(), `"owner": "alice"`)
	})

	t.Run("yaml output test", func(t *testing.T) {
		cmd, out := newCmd()
		require.NoError(t, printReport(cmd, "yaml", report))
		assert.Contains(t, out.String(), "publishes: 1")
	})

	t.Run("unknown output test", func(t *testing.T) {
		cmd, _ := newCmd()
		assert.Error(t, printReport(cmd, "xml", report))
		assert.Error(t, validateOutput("xml"))
		assert.NoError(t, validateOutput("json"))
	})
}
