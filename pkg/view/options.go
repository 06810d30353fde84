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
package view

import (
	"github.com/yorkie-team/cursors/internal/log"
)

// Option configures Options.
type Option func(*Options)

// Options configures how we set up the view.
type Options struct {
	// Render is called after the view is created and after every
	// transaction. It is responsible for drawing the decorations.
	Render func(view *View)

	// Logger is the logger used by the view.
	Logger log.Logger
}

// WithRender configures the render hook of the view.
func WithRender(render func(view *View)) Option {
	return func(o *Options) { o.Render = render }
}

// WithLogger configures the Logger of the view.
func WithLogger(logger log.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func newOptions(opts ...Option) Options {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = log.New("view")
	}
	return options
}
