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

// Package scenario replays scripted editing sessions of several peers
// sharing a document, and reports the cursors each of them draws.
package scenario

import (
	"context"
	"fmt"
	gotime "time"

	"github.com/yorkie-team/cursors/internal/log"
	"github.com/yorkie-team/cursors/pkg/awareness"
	"github.com/yorkie-team/cursors/pkg/binding"
	"github.com/yorkie-team/cursors/pkg/cursor"
	"github.com/yorkie-team/cursors/pkg/document"
	"github.com/yorkie-team/cursors/pkg/document/change"
	"github.com/yorkie-team/cursors/pkg/document/time"
	"github.com/yorkie-team/cursors/pkg/errors"
	"github.com/yorkie-team/cursors/pkg/view"
)

// OriginRelay is the origin of the awareness updates exchanged by the
// runner.
const OriginRelay = "relay"

// ErrRunnerClosed occurs when a step is run after the runner is closed.
var ErrRunnerClosed = errors.FailedPrecond("runner is closed").WithCode("ErrRunnerClosed")

// peer is an editor taking part in the scenario.
type peer struct {
	name      string
	doc       *document.Document
	awareness *awareness.Awareness
	binding   *binding.Binding
	view      *view.View
}

// Runner replays the steps of a scenario.
type Runner struct {
	config  *Config
	timeout gotime.Duration
	peers   []*peer
	byName  map[string]*peer
	names   map[string]string
	metrics *cursor.Metrics
	now     gotime.Time
	closed  bool
	logger  log.Logger
}

// NewRunner creates the peers of the given scenario and syncs the initial
// content of the document to all of them.
func NewRunner(conf *Config, logger log.Logger) (*Runner, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	timeout, err := conf.ParseOutdatedTimeout()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.DefaultLogger()
	}

	r := &Runner{
		config:  conf,
		timeout: timeout,
		byName:  make(map[string]*peer),
		names:   make(map[string]string),
		metrics: cursor.NewMetrics(),
		now:     gotime.Unix(0, 0).UTC(),
		logger:  logger,
	}

	for _, pc := range conf.Peers {
		p, err := r.newPeer(pc)
		if err != nil {
			r.Close()
			return nil, err
		}
		r.peers = append(r.peers, p)
		r.byName[pc.Name] = p
		r.names[p.awareness.LocalPeerID()] = pc.Name
	}

	if conf.Document.Content != "" {
		if err := r.peers[0].edit(0, 0, conf.Document.Content); err != nil {
			r.Close()
			return nil, err
		}
		if err := r.sync(); err != nil {
			r.Close()
			return nil, err
		}
	}

	return r, nil
}

func (r *Runner) newPeer(conf *PeerConfig) (*peer, error) {
	logger := r.logger.With("peer", conf.Name)

	doc := document.New(r.config.Document.Key, time.NewActorID(), document.WithLogger(logger))
	if err := doc.Attach(); err != nil {
		return nil, err
	}

	aw, err := awareness.New(
		doc.ActorID().String(),
		awareness.WithLogger(logger),
		awareness.WithNow(func() gotime.Time { return r.now }),
	)
	if err != nil {
		return nil, err
	}
	aw.SetLocalField(cursor.UserFieldName, cursor.Identity{Name: conf.Name, Color: conf.Color})

	b := binding.New(doc, binding.WithLogger(logger))
	state := view.NewState(view.StateConfig{
		Doc: doc.String(),
		Plugins: []*view.Plugin{
			b.Plugin(),
			cursor.Plugin(
				aw, b,
				cursor.WithFieldName(r.config.FieldName),
				cursor.WithLogger(logger),
				cursor.WithMetrics(r.metrics),
			),
		},
	})

	return &peer{
		name:      conf.Name,
		doc:       doc,
		awareness: aw,
		binding:   b,
		view:      view.New(state, view.WithLogger(logger)),
	}, nil
}

// Run replays every step of the scenario and returns the report of the
// final state. It stops at the first failing step.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	for i, step := range r.config.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.Step(step); err != nil {
			return nil, fmt.Errorf("step %d %s: %w", i, step.Action, err)
		}
	}

	return r.Report(), nil
}

// Step runs the given step.
func (r *Runner) Step(step *StepConfig) error {
	if r.closed {
		return ErrRunnerClosed
	}

	if step.Action.isGlobal() {
		return r.runGlobal(step)
	}

	p, ok := r.byName[step.Peer]
	if !ok {
		return fmt.Errorf("%s: %w", step.Peer, ErrUnknownPeer)
	}
	r.logger.Debugf("%s %s", p.name, step.Action)

	switch step.Action {
	case ActionFocus:
		p.view.Focus()
	case ActionBlur:
		p.view.Blur()
	case ActionSelect:
		p.view.Dispatch(p.view.State().Tr().SetSelection(view.NewSelection(step.Anchor, step.Head)))
	case ActionInsert:
		return p.edit(step.From, step.From, step.Text)
	case ActionDelete:
		return p.edit(step.From, step.To, "")
	case ActionDetach:
		return p.doc.Detach()
	case ActionAttach:
		return p.doc.Attach()
	case ActionSnapshot:
		snapshot, err := p.doc.CreateSnapshot()
		if err != nil {
			return err
		}
		p.doc.SetSnapshot(snapshot)
	case ActionRestore:
		p.doc.ClearSnapshot()
	default:
		return fmt.Errorf("unsupported action %q", step.Action)
	}

	return nil
}

func (r *Runner) runGlobal(step *StepConfig) error {
	switch step.Action {
	case ActionSync:
		return r.sync()
	case ActionWait:
		d, err := gotime.ParseDuration(step.Duration)
		if err != nil {
			return fmt.Errorf("parse duration: %w", err)
		}
		r.now = r.now.Add(d)
	case ActionPrune:
		for _, p := range r.peers {
			if removed := p.awareness.RemoveOutdatedPeers(r.timeout); len(removed) > 0 {
				r.logger.Debugf("%s pruned %d peers", p.name, len(removed))
			}
		}
	}
	return nil
}

// sync exchanges the pending changes and the awareness state of every peer
// with all the others. Changes are exchanged before the awareness states so
// that the cursors are resolved against the merged content.
func (r *Runner) sync() error {
	pending := make([][]*change.Change, len(r.peers))
	for i, p := range r.peers {
		pending[i] = p.doc.FlushLocalChanges()
	}

	for i, from := range r.peers {
		if len(pending[i]) == 0 {
			continue
		}
		for j, to := range r.peers {
			if i == j {
				continue
			}
			if err := to.doc.ApplyChanges(pending[i]...); err != nil {
				return fmt.Errorf("sync %s to %s: %w", from.name, to.name, err)
			}
		}
	}

	for _, from := range r.peers {
		update, err := from.awareness.EncodeUpdate(from.awareness.LocalPeerID())
		if err != nil {
			return err
		}
		for _, to := range r.peers {
			if to == from {
				continue
			}
			if err := to.awareness.ApplyUpdate(update, OriginRelay); err != nil {
				return fmt.Errorf("sync awareness %s to %s: %w", from.name, to.name, err)
			}
		}
	}

	return nil
}

// Close destroys the views of the peers. Closing twice is a no-op.
func (r *Runner) Close() {
	if r.closed {
		return
	}
	r.closed = true

	for _, p := range r.peers {
		p.view.Destroy()
	}
}

// Metrics returns the metrics shared by the cursors of all the peers.
func (r *Runner) Metrics() *cursor.Metrics {
	return r.metrics
}

func (p *peer) edit(from, to int, content string) error {
	tr := p.view.State().Tr()
	if err := tr.Replace(from, to, content); err != nil {
		return err
	}
	p.view.Dispatch(tr)
	return nil
}
