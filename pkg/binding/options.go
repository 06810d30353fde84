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
package binding

import (
	"github.com/yorkie-team/cursors/internal/log"
)

// Option configures Options.
type Option func(*Options)

// Options configures how we set up the binding.
type Options struct {
	// Logger is the logger of the binding.
	Logger log.Logger
}

// WithLogger configures the logger of the binding.
func WithLogger(logger log.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func newOptions(opts ...Option) Options {
	options := Options{
		Logger: log.New("binding"),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
