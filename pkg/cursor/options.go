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
	"github.com/yorkie-team/cursors/internal/log"
	"github.com/yorkie-team/cursors/pkg/view"
)

// SelectionSelector returns the selection to publish from the state.
type SelectionSelector func(state *view.State) view.Selection

// Option configures Options.
type Option func(*Options)

// Options configures how we set up the cursor plugin.
type Options struct {
	// CaretBuilder builds the carets of the remote peers.
	CaretBuilder CaretBuilder

	// SelectionSelector selects the local selection to publish.
	SelectionSelector SelectionSelector

	// FieldName is the name of the awareness field holding the cursor.
	FieldName string

	// Logger is the logger of the plugin.
	Logger log.Logger

	// Metrics counts the work of the plugin. It is optional.
	Metrics *Metrics
}

// WithCaretBuilder configures the builder of the carets.
func WithCaretBuilder(builder CaretBuilder) Option {
	return func(o *Options) { o.CaretBuilder = builder }
}

// WithSelectionSelector configures the selector of the local selection.
func WithSelectionSelector(selector SelectionSelector) Option {
	return func(o *Options) { o.SelectionSelector = selector }
}

// WithFieldName configures the name of the awareness field.
func WithFieldName(name string) Option {
	return func(o *Options) { o.FieldName = name }
}

// WithLogger configures the logger of the plugin.
func WithLogger(logger log.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithMetrics configures the metrics of the plugin.
func WithMetrics(metrics *Metrics) Option {
	return func(o *Options) { o.Metrics = metrics }
}

func newOptions(opts ...Option) Options {
	options := Options{
		CaretBuilder: DefaultCaretBuilder,
		SelectionSelector: func(state *view.State) view.Selection {
			return state.Selection()
		},
		FieldName: DefaultFieldName,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = log.New("cursor")
	}
	return options
}
