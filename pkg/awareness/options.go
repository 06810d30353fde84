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
package awareness

import (
	gotime "time"

	"github.com/yorkie-team/cursors/internal/log"
)

// Option configures Options.
type Option func(*Options)

// Options configures how we set up the awareness.
type Options struct {
	// Logger is the logger used by the awareness.
	Logger log.Logger

	// Now returns the current time. It is used to find outdated peers.
	Now func() gotime.Time
}

// WithLogger configures the Logger of the awareness.
func WithLogger(logger log.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithNow configures the clock of the awareness.
func WithNow(now func() gotime.Time) Option {
	return func(o *Options) { o.Now = now }
}

func newOptions(opts ...Option) Options {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = log.New("awareness")
	}
	if options.Now == nil {
		options.Now = gotime.Now
	}
	return options
}
