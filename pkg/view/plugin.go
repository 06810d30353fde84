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

// PluginKey identifies a plugin and gives access to its state.
type PluginKey struct {
	name string
}

// NewPluginKey creates a new PluginKey of the given name.
func NewPluginKey(name string) *PluginKey {
	return &PluginKey{name: name}
}

// Name returns the name of this key.
func (k *PluginKey) Name() string {
	return k.name
}

// GetState returns the state of the plugin of this key in the given state.
func (k *PluginKey) GetState(state *State) any {
	return state.fields[k]
}

// StateField is the state of a plugin kept in the editor state.
type StateField struct {
	// Init creates the initial value of the field.
	Init func(state *State) any

	// Apply computes the next value of the field from a transaction. newState
	// holds the fields of the plugins before this one.
	Apply func(tr *Transaction, value any, oldState, newState *State) any
}

// PluginView is the part of a plugin that lives as long as the view.
type PluginView interface {
	// Update is called after the view has applied a transaction.
	Update(view *View, prevState *State)

	// Destroy is called when the view is destroyed.
	Destroy()
}

// Plugin extends the editor with a state field, a view and decorations.
type Plugin struct {
	Key *PluginKey

	State *StateField

	// View creates the plugin view when the view is created.
	View func(view *View) PluginView

	// Decorations returns the decorations to draw for the given state.
	Decorations func(state *State) *DecorationSet
}
