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
	"github.com/yorkie-team/cursors/pkg/view"
)

// PluginName is the name of the key of the cursor plugin.
const PluginName = "yjs-cursor"

// Meta is the metadata of the cursor plugin in a transaction.
type Meta struct {
	// AwarenessUpdated forces the decorations to be recomputed.
	AwarenessUpdated bool
}

// Plugin creates the cursor plugin. The plugin must come after the plugin
// that applies the edits of the view to the document of the binding, so
// that the local cursor is computed against the edited document.
func Plugin(aw Awareness, binding Binding, opts ...Option) *view.Plugin {
	options := newOptions(opts...)
	key := view.NewPluginKey(PluginName)

	decorations := func(state *view.State) *view.DecorationSet {
		options.Metrics.AddRecompute()
		return Decorations(options.FieldName, state, binding, aw, options.CaretBuilder)
	}

	return &view.Plugin{
		Key: key,
		State: &view.StateField{
			Init: func(state *view.State) any {
				return decorations(state)
			},
			Apply: func(tr *view.Transaction, value any, oldState, newState *view.State) any {
				meta, _ := tr.Meta(key).(Meta)
				if (binding != nil && binding.IsChangeOrigin(tr)) || meta.AwarenessUpdated {
					return decorations(newState)
				}

				options.Metrics.AddRemap()
				return value.(*view.DecorationSet).Map(tr.Mapping())
			},
		},
		View: func(v *view.View) view.PluginView {
			return NewSynchronizer(v, aw, binding, key, opts...)
		},
		Decorations: func(state *view.State) *view.DecorationSet {
			set, _ := key.GetState(state).(*view.DecorationSet)
			return set
		},
	}
}
