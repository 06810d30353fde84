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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/cursors/internal/log"
	"github.com/yorkie-team/cursors/pkg/awareness"
	"github.com/yorkie-team/cursors/pkg/binding"
	"github.com/yorkie-team/cursors/pkg/cursor"
	"github.com/yorkie-team/cursors/pkg/document"
	"github.com/yorkie-team/cursors/pkg/document/time"
	"github.com/yorkie-team/cursors/pkg/view"
)

// peer is an editor of a shared document with its own awareness.
type peer struct {
	doc       *document.Document
	binding   *binding.Binding
	awareness *awareness.Awareness
	view      *view.View
	metrics   *cursor.Metrics
}

func newPeer(t *testing.T, viewOpts ...view.Option) *peer {
	return newPeerWithOptions(t, viewOpts)
}

func newPeerWithOptions(t *testing.T, viewOpts []view.Option, opts ...cursor.Option) *peer {
	doc := document.New("doc", time.NewActorID(), document.WithLogger(log.Nop()))
	require.NoError(t, doc.Attach())

	aw, err := awareness.New(doc.ActorID().String(), awareness.WithLogger(log.Nop()))
	require.NoError(t, err)

	b := binding.New(doc, binding.WithLogger(log.Nop()))
	metrics := cursor.NewMetrics()
	state := view.NewState(view.StateConfig{
		Doc: doc.String(),
		Plugins: []*view.Plugin{
			b.Plugin(),
			cursor.Plugin(aw, b, append([]cursor.Option{
				cursor.WithLogger(log.Nop()),
				cursor.WithMetrics(metrics),
			}, opts...)...),
		},
	})

	return &peer{
		doc:       doc,
		binding:   b,
		awareness: aw,
		view:      view.New(state, append([]view.Option{view.WithLogger(log.Nop())}, viewOpts...)...),
		metrics:   metrics,
	}
}

// newPeers creates two peers sharing the given content.
func newPeers(t *testing.T, content string) (*peer, *peer) {
	a, b := newPeer(t), newPeer(t)
	a.edit(t, 0, 0, content)
	syncDoc(t, a, b)
	require.Equal(t, content, b.view.State().Doc())
	return a, b
}

func (p *peer) id() string {
	return p.awareness.LocalPeerID()
}

func (p *peer) edit(t *testing.T, from, to int, content string) {
	tr := p.view.State().Tr()
	require.NoError(t, tr.Replace(from, to, content))
	p.view.Dispatch(tr)
}

func (p *peer) selectRange(anchor, head int) {
	p.view.Dispatch(p.view.State().Tr().SetSelection(view.NewSelection(anchor, head)))
}

func (p *peer) localField() any {
	return p.awareness.LocalState()[cursor.DefaultFieldName]
}

func (p *peer) decorations() []*view.Decoration {
	sets := p.view.Decorations()
	if len(sets) == 0 {
		return nil
	}
	return sets[0].All()
}

func syncDoc(t *testing.T, from, to *peer) {
	require.NoError(t, to.doc.ApplyChanges(from.doc.FlushLocalChanges()...))
}

func syncAwareness(t *testing.T, from, to *peer) {
	update, err := from.awareness.EncodeUpdate(from.id())
	require.NoError(t, err)
	require.NoError(t, to.awareness.ApplyUpdate(update, "remote"))
}

func counterValue(t *testing.T, metrics *cursor.Metrics, name string) float64 {
	families, err := metrics.Registry().Gather()
	require.NoError(t, err)

	total := 0.0
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func TestScenarios(t *testing.T) {
	t.Run("remote selection is drawn test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		b.view.Focus()
		b.selectRange(0, 5)
		syncAwareness(t, b, a)

		decorations := a.decorations()
		require.Len(t, decorations, 2)

		highlight := decorations[0]
		assert.Equal(t, view.InlineDecoration, highlight.Type())
		assert.Equal(t, 0, highlight.From())
		assert.Equal(t, 5, highlight.To())
		assert.Equal(t, view.InlineSpec{InclusiveStart: false, InclusiveEnd: true}, highlight.InlineSpec())
		assert.Equal(t, "background-color: #ffa50070", highlight.Attrs()["style"])

		caret := decorations[1]
		assert.Equal(t, view.WidgetDecoration, caret.Type())
		assert.Equal(t, 5, caret.From())
		assert.Equal(t, view.WidgetSpec{Key: b.id(), Side: 10}, caret.WidgetSpec())
		assert.Equal(t, "User: "+b.id(), caret.Element().TextContent())
	})

	t.Run("focus out removes the remote cursor test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		b.view.Focus()
		b.selectRange(0, 5)
		syncAwareness(t, b, a)
		require.Len(t, a.decorations(), 2)

		b.view.Blur()
		assert.Nil(t, b.localField())
		syncAwareness(t, b, a)
		assert.Empty(t, a.decorations())
	})

	t.Run("local insertion before the remote cursor test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		b.view.Focus()
		b.selectRange(0, 5)
		syncAwareness(t, b, a)

		a.edit(t, 0, 0, "x")
		decorations := a.decorations()
		require.Len(t, decorations, 2)
		assert.Equal(t, 6, decorations[1].From())

		recomputed := cursor.Decorations(
			cursor.DefaultFieldName, a.view.State(), a.binding, a.awareness, cursor.DefaultCaretBuilder,
		).All()
		require.Len(t, recomputed, 2)
		assert.Equal(t, 1, recomputed[0].From())
		assert.Equal(t, 6, recomputed[0].To())
		assert.Equal(t, 6, recomputed[1].From())
	})
}

func TestDecorations(t *testing.T) {
	t.Run("self exclusion test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		a.view.Focus()
		a.selectRange(2, 4)
		require.NotNil(t, a.localField())
		assert.Empty(t, a.decorations())

		syncAwareness(t, a, b)
		syncAwareness(t, b, a)
		assert.Len(t, b.decorations(), 2)
		assert.Empty(t, a.decorations())
	})

	t.Run("clamping test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		b.view.Focus()
		b.selectRange(11, 11)
		syncAwareness(t, b, a)

		decorations := a.decorations()
		require.Len(t, decorations, 1)
		assert.Equal(t, 10, decorations[0].From())

		b.selectRange(0, 11)
		syncAwareness(t, b, a)
		decorations = a.decorations()
		require.Len(t, decorations, 2)
		assert.Equal(t, 0, decorations[0].From())
		assert.Equal(t, 10, decorations[0].To())
		assert.Equal(t, 10, decorations[1].From())
	})

	t.Run("deleted anchor drops the peer test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		b.view.Focus()
		b.selectRange(6, 8)
		syncAwareness(t, b, a)
		require.Len(t, a.decorations(), 2)

		b.edit(t, 5, 11, "")
		syncDoc(t, b, a)
		assert.Equal(t, "hello", a.view.State().Doc())
		assert.Empty(t, a.decorations())
	})

	t.Run("identity test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		b.awareness.SetLocalField(cursor.UserFieldName, cursor.Identity{Name: "bob", Color: "#00ff00"})
		b.view.Focus()
		b.selectRange(0, 1)
		syncAwareness(t, b, a)

		decorations := a.decorations()
		require.Len(t, decorations, 2)
		assert.Equal(t, "background-color: #00ff0070", decorations[0].Attrs()["style"])
		assert.Equal(t, "bob", decorations[1].Element().TextContent())
		assert.Equal(t,
			`<span class="ProseMirror-yjs-cursor" style="border-color: #00ff00">`+
				`<div style="background-color: #00ff00">bob</div></span>`,
			decorations[1].Element().String(),
		)
	})

	t.Run("custom caret builder and field name test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		b.awareness.SetLocalField("pointer", cursor.Field{
			Anchor: cursor.ToStable(b.binding, 3, cursor.AssocAfter),
			Head:   cursor.ToStable(b.binding, 3, cursor.AssocAfter),
		})
		syncAwareness(t, b, a)

		builder := func(user cursor.Identity) *view.Element {
			return view.NewElement("i", nil, view.NewText(user.Name))
		}
		set := cursor.Decorations("pointer", a.view.State(), a.binding, a.awareness, builder)
		require.Equal(t, 1, set.Len())
		assert.Equal(t, "<i>User: "+b.id()+"</i>", set.All()[0].Element().String())
		assert.Empty(t, a.decorations())
	})

	t.Run("plugin options test", func(t *testing.T) {
		opts := []cursor.Option{
			cursor.WithFieldName("pointer"),
			cursor.WithSelectionSelector(func(state *view.State) view.Selection {
				head := state.Selection().Head
				return view.NewSelection(head, head)
			}),
			cursor.WithCaretBuilder(func(user cursor.Identity) *view.Element {
				return view.NewElement("i", nil, view.NewText(user.Name))
			}),
		}
		a := newPeerWithOptions(t, nil, opts...)
		b := newPeerWithOptions(t, nil, opts...)
		a.edit(t, 0, 0, "hello world")
		syncDoc(t, a, b)

		b.view.Focus()
		b.selectRange(7, 2)
		assert.Nil(t, b.localField())
		field, ok := b.awareness.LocalState()["pointer"].(cursor.Field)
		require.True(t, ok)
		assert.Equal(t, cursor.ToStable(b.binding, 2, cursor.AssocAfter), field.Anchor)
		assert.Equal(t, cursor.ToStable(b.binding, 2, cursor.AssocAfter), field.Head)

		syncAwareness(t, b, a)
		decorations := a.decorations()
		require.Len(t, decorations, 1)
		assert.Equal(t, view.WidgetDecoration, decorations[0].Type())
		assert.Equal(t, 2, decorations[0].From())
		assert.Equal(t, "<i>User: "+b.id()+"</i>", decorations[0].Element().String())

		a.awareness.RemovePeers("remote", b.id())
		assert.Empty(t, a.decorations())
	})

	t.Run("not live test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		b.view.Focus()
		b.selectRange(0, 5)
		syncAwareness(t, b, a)
		require.Len(t, a.decorations(), 2)

		snapshot, err := a.doc.CreateSnapshot()
		require.NoError(t, err)
		a.doc.SetSnapshot(snapshot)
		assert.Empty(t, a.decorations())

		a.doc.ClearSnapshot()
		assert.Len(t, a.decorations(), 2)

		assert.Equal(t, 0, cursor.Decorations(
			cursor.DefaultFieldName, a.view.State(), nil, a.awareness, cursor.DefaultCaretBuilder,
		).Len())
	})

	t.Run("apply rule test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		b.view.Focus()
		b.selectRange(0, 5)
		syncAwareness(t, b, a)

		recomputes := counterValue(t, a.metrics, "cursors_decorations_recomputes_total")
		remaps := counterValue(t, a.metrics, "cursors_decorations_remaps_total")

		a.edit(t, 11, 11, "!")
		assert.Equal(t, recomputes, counterValue(t, a.metrics, "cursors_decorations_recomputes_total"))
		assert.Equal(t, remaps+1, counterValue(t, a.metrics, "cursors_decorations_remaps_total"))

		syncDoc(t, a, b)
		b.edit(t, 0, 0, "oh, ")
		syncDoc(t, b, a)
		assert.Equal(t, recomputes+1, counterValue(t, a.metrics, "cursors_decorations_recomputes_total"))

		b.selectRange(0, 2)
		syncAwareness(t, b, a)
		assert.Equal(t, recomputes+2, counterValue(t, a.metrics, "cursors_decorations_recomputes_total"))
		assert.Equal(t, remaps+1, counterValue(t, a.metrics, "cursors_decorations_remaps_total"))
	})
}

func TestSynchronizer(t *testing.T) {
	t.Run("publish if changed test", func(t *testing.T) {
		_, b := newPeers(t, "hello world")
		assert.Nil(t, b.localField())

		b.selectRange(0, 5)
		assert.Nil(t, b.localField())

		b.view.Focus()
		field, ok := b.localField().(cursor.Field)
		require.True(t, ok)
		assert.Equal(t, cursor.ToStable(b.binding, 0, cursor.AssocAfter), field.Anchor)
		assert.Equal(t, cursor.ToStable(b.binding, 5, cursor.AssocAfter), field.Head)
		assert.Equal(t, 1.0, counterValue(t, b.metrics, "cursors_awareness_publishes_total"))

		b.selectRange(0, 5)
		assert.Equal(t, 1.0, counterValue(t, b.metrics, "cursors_awareness_publishes_total"))

		b.selectRange(1, 5)
		assert.Equal(t, 2.0, counterValue(t, b.metrics, "cursors_awareness_publishes_total"))

		b.view.Blur()
		assert.Nil(t, b.localField())
		assert.Equal(t, 3.0, counterValue(t, b.metrics, "cursors_awareness_publishes_total"))
	})

	t.Run("publish before render test", func(t *testing.T) {
		var fields []any
		var p *peer
		p = newPeer(t, view.WithRender(func(v *view.View) {
			if p != nil {
				fields = append(fields, p.localField())
			}
		}))
		p.edit(t, 0, 0, "hello")
		p.view.Focus()
		fields = nil

		p.selectRange(1, 3)
		require.NotEmpty(t, fields)
		last, ok := fields[len(fields)-1].(cursor.Field)
		require.True(t, ok)
		assert.Equal(t, cursor.ToStable(p.binding, 3, cursor.AssocAfter), last.Head)
	})

	t.Run("not live test", func(t *testing.T) {
		_, b := newPeers(t, "hello world")
		snapshot, err := b.doc.CreateSnapshot()
		require.NoError(t, err)
		b.doc.SetSnapshot(snapshot)

		b.view.Focus()
		b.selectRange(0, 5)
		assert.Nil(t, b.localField())

		b.doc.ClearSnapshot()
		assert.NotNil(t, b.localField())
	})

	t.Run("destroy test", func(t *testing.T) {
		a, b := newPeers(t, "hello world")
		b.view.Focus()
		b.selectRange(0, 5)
		require.NotNil(t, b.localField())
		syncAwareness(t, b, a)
		require.Len(t, a.decorations(), 2)

		b.view.Destroy()
		assert.Nil(t, b.localField())
		assert.Equal(t, 2.0, counterValue(t, b.metrics, "cursors_awareness_publishes_total"))
		assert.Equal(t, 0, b.view.Listeners(view.EventFocusIn))
		assert.Equal(t, 0, b.view.Listeners(view.EventFocusOut))

		syncAwareness(t, b, a)
		assert.Empty(t, a.decorations())
	})

	t.Run("destroy while unfocused test", func(t *testing.T) {
		_, b := newPeers(t, "hello world")
		b.view.Destroy()
		assert.Equal(t, 0.0, counterValue(t, b.metrics, "cursors_awareness_publishes_total"))

		state, ok := b.awareness.State(b.id())
		require.True(t, ok)
		value, exists := state[cursor.DefaultFieldName]
		assert.True(t, exists)
		assert.Nil(t, value)
	})
}
