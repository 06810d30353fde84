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

package scenario

import (
	"github.com/yorkie-team/cursors/pkg/cursor"
	"github.com/yorkie-team/cursors/pkg/view"
)

// OverlayType is the type of an overlay drawn for a remote peer.
type OverlayType string

// Below are the types of the overlays.
const (
	OverlayCaret     OverlayType = "caret"
	OverlayHighlight OverlayType = "highlight"
)

// Overlay is a caret or a highlight drawn in the editor of a peer.
type Overlay struct {
	Type OverlayType `json:"type" yaml:"type"`

	// Owner is the name of the peer a caret belongs to.
	Owner string `json:"owner,omitempty" yaml:"owner,omitempty"`
	From  int    `json:"from" yaml:"from"`
	To    int    `json:"to" yaml:"to"`

	// Label is the text drawn with a caret, or the style of a highlight.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Cursor is the cursor a peer publishes.
type Cursor struct {
	Anchor int `json:"anchor" yaml:"anchor"`
	Head   int `json:"head" yaml:"head"`
}

// PeerReport is the state of the editor of a peer.
type PeerReport struct {
	Name string `json:"name" yaml:"name"`

	// Content is the content shown by the peer, the one of its snapshot
	// while a snapshot is set.
	Content  string `json:"content" yaml:"content"`
	Attached bool   `json:"attached" yaml:"attached"`
	Live     bool   `json:"live" yaml:"live"`

	// Snapshot is the lamport clock of the snapshot being shown, 0 if none.
	Snapshot int64      `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
	Focused  bool       `json:"focused" yaml:"focused"`
	Cursor   *Cursor    `json:"cursor,omitempty" yaml:"cursor,omitempty"`
	Overlays []*Overlay `json:"overlays" yaml:"overlays"`
}

// MetricsReport sums up the counters of the cursors of all the peers.
type MetricsReport struct {
	Recomputes float64 `json:"recomputes" yaml:"recomputes"`
	Remaps     float64 `json:"remaps" yaml:"remaps"`
	Publishes  float64 `json:"publishes" yaml:"publishes"`
}

// Report is the state of all the peers after a scenario.
type Report struct {
	Peers   []*PeerReport  `json:"peers" yaml:"peers"`
	Metrics *MetricsReport `json:"metrics" yaml:"metrics"`
}

// Report returns the current state of all the peers.
func (r *Runner) Report() *Report {
	report := &Report{Metrics: r.metricsReport()}
	for _, p := range r.peers {
		report.Peers = append(report.Peers, r.peerReport(p))
	}
	return report
}

func (r *Runner) peerReport(p *peer) *PeerReport {
	state := p.view.State()
	pr := &PeerReport{
		Name:     p.name,
		Content:  state.Doc(),
		Attached: p.doc.IsAttached(),
		Live:     p.binding.IsLive(),
		Focused:  p.view.HasFocus(),
		Overlays: []*Overlay{},
	}
	if snapshot := p.doc.Snapshot(); snapshot != nil {
		pr.Content = snapshot.Content()
		pr.Snapshot = snapshot.Lamport()
	}

	if field, ok := p.awareness.LocalState()[r.config.FieldName].(cursor.Field); ok {
		anchor, okAnchor := cursor.ToAbsolute(p.binding, field.Anchor)
		head, okHead := cursor.ToAbsolute(p.binding, field.Head)
		if okAnchor && okHead {
			pr.Cursor = &Cursor{Anchor: anchor, Head: head}
		}
	}

	for _, set := range p.view.Decorations() {
		for _, deco := range set.All() {
			pr.Overlays = append(pr.Overlays, r.overlayOf(deco))
		}
	}

	return pr
}

func (r *Runner) overlayOf(deco *view.Decoration) *Overlay {
	if deco.Type() == view.WidgetDecoration {
		owner := deco.WidgetSpec().Key
		if name, ok := r.names[owner]; ok {
			owner = name
		}
		return &Overlay{
			Type:  OverlayCaret,
			Owner: owner,
			From:  deco.From(),
			To:    deco.To(),
			Label: deco.Element().TextContent(),
		}
	}

	return &Overlay{
		Type:  OverlayHighlight,
		From:  deco.From(),
		To:    deco.To(),
		Label: deco.Attrs()["style"],
	}
}

func (r *Runner) metricsReport() *MetricsReport {
	report := &MetricsReport{}
	families, err := r.metrics.Registry().Gather()
	if err != nil {
		r.logger.Warnf("gather metrics: %v", err)
		return report
	}

	for _, family := range families {
		total := 0.0
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}

		switch family.GetName() {
		case "cursors_decorations_recomputes_total":
			report.Recomputes = total
		case "cursors_decorations_remaps_total":
			report.Remaps = total
		case "cursors_awareness_publishes_total":
			report.Publishes = total
		}
	}
	return report
}
