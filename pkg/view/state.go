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
	"unicode/utf16"
)

// StateConfig is the configuration of a new State.
type StateConfig struct {
	Doc       string
	Selection *Selection
	Plugins   []*Plugin
}

// State is an immutable state of the editor: the document, the selection
// and the states of the plugins.
type State struct {
	doc       []uint16
	selection Selection
	plugins   []*Plugin
	fields    map[*PluginKey]any
}

// NewState creates a new State and initializes the states of the plugins in
// the order they are given.
func NewState(config StateConfig) *State {
	doc := utf16.Encode([]rune(config.Doc))
	selection := Caret(0)
	if config.Selection != nil {
		selection = Selection{
			Anchor: clamp(config.Selection.Anchor, 0, len(doc)),
			Head:   clamp(config.Selection.Head, 0, len(doc)),
		}
	}

	state := &State{
		doc:       doc,
		selection: selection,
		plugins:   config.Plugins,
		fields:    make(map[*PluginKey]any),
	}
	for _, plugin := range config.Plugins {
		if plugin.State != nil {
			state.fields[plugin.Key] = plugin.State.Init(state)
		}
	}

	return state
}

// Doc returns the document.
func (s *State) Doc() string {
	return string(utf16.Decode(s.doc))
}

// Size returns the size of the document in UTF-16 code units.
func (s *State) Size() int {
	return len(s.doc)
}

// Selection returns the selection.
func (s *State) Selection() Selection {
	return s.selection
}

// Plugins returns the plugins of this state.
func (s *State) Plugins() []*Plugin {
	return s.plugins
}

// Tr starts a transaction from this state.
func (s *State) Tr() *Transaction {
	return newTransaction(s)
}

// Apply applies the given transaction and returns the new state. The states
// of the plugins are applied in the order of the plugins.
func (s *State) Apply(tr *Transaction) *State {
	selection := s.selection.Map(tr.mapping, len(tr.doc))
	if tr.selection != nil {
		selection = Selection{
			Anchor: clamp(tr.selection.Anchor, 0, len(tr.doc)),
			Head:   clamp(tr.selection.Head, 0, len(tr.doc)),
		}
	}

	next := &State{
		doc:       tr.doc,
		selection: selection,
		plugins:   s.plugins,
		fields:    make(map[*PluginKey]any, len(s.fields)),
	}
	for _, plugin := range s.plugins {
		if plugin.State != nil {
			next.fields[plugin.Key] = plugin.State.Apply(tr, s.fields[plugin.Key], s, next)
		}
	}

	return next
}
