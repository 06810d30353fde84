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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yorkie-team/cursors/internal/validation"
	"github.com/yorkie-team/cursors/pkg/cursor"
)

// Below are the default values of the scenario config.
const (
	DefaultDocumentKey     = "scenario"
	DefaultFieldName       = cursor.DefaultFieldName
	DefaultOutdatedTimeout = 30 * time.Second
)

// Action is the kind of a step.
type Action string

// Below are the actions a step can take.
const (
	// ActionFocus focuses the editor of the peer.
	ActionFocus Action = "focus"

	// ActionBlur takes the focus away from the editor of the peer.
	ActionBlur Action = "blur"

	// ActionSelect moves the selection of the peer to Anchor and Head.
	ActionSelect Action = "select"

	// ActionInsert inserts Text at From.
	ActionInsert Action = "insert"

	// ActionDelete deletes the range [From, To).
	ActionDelete Action = "delete"

	// ActionSync exchanges the document changes and awareness states of
	// every peer with all the others.
	ActionSync Action = "sync"

	// ActionDetach detaches the document of the peer.
	ActionDetach Action = "detach"

	// ActionAttach attaches the document of the peer again.
	ActionAttach Action = "attach"

	// ActionSnapshot shows a frozen copy of the document of the peer.
	ActionSnapshot Action = "snapshot"

	// ActionRestore goes back to the live document of the peer.
	ActionRestore Action = "restore"

	// ActionWait moves the clock of the scenario forward by Duration.
	ActionWait Action = "wait"

	// ActionPrune removes, on every peer, the remote peers that have not
	// been heard of within the outdated timeout.
	ActionPrune Action = "prune"
)

var (
	// ErrDuplicatedPeer occurs when two peers have the same name.
	ErrDuplicatedPeer = errors.New("duplicated peer")

	// ErrUnknownPeer occurs when a step refers to a peer that is not declared.
	ErrUnknownPeer = errors.New("unknown peer")
)

// isGlobal returns whether the action applies to all peers at once.
func (a Action) isGlobal() bool {
	return a == ActionSync || a == ActionWait || a == ActionPrune
}

// DocumentConfig is the configuration of the shared document.
type DocumentConfig struct {
	// Key is the key of the document.
	Key string `yaml:"Key" validate:"required,slug"`

	// Content is the initial content, written by the first peer and synced
	// to the others before the steps run.
	Content string `yaml:"Content"`
}

// PeerConfig is the configuration of an editor.
type PeerConfig struct {
	Name  string `yaml:"Name" validate:"required,slug,max=30"`
	Color string `yaml:"Color" validate:"omitempty,hexcolor"`
}

// StepConfig is a step of the scenario.
type StepConfig struct {
	Action Action `yaml:"Action" validate:"required,oneof=focus blur select insert delete sync detach attach snapshot restore wait prune"`
	Peer   string `yaml:"Peer"`

	Anchor int `yaml:"Anchor" validate:"min=0"`
	Head   int `yaml:"Head" validate:"min=0"`

	From int    `yaml:"From" validate:"min=0"`
	To   int    `yaml:"To" validate:"min=0"`
	Text string `yaml:"Text"`

	Duration string `yaml:"Duration" validate:"omitempty,duration"`
}

// Config is the configuration of a scenario.
type Config struct {
	Document *DocumentConfig `yaml:"Document" validate:"required"`

	// FieldName is the awareness field that carries the cursors.
	FieldName string `yaml:"FieldName" validate:"required"`

	// OutdatedTimeout is how long a peer can stay silent before ActionPrune
	// removes it.
	OutdatedTimeout string `yaml:"OutdatedTimeout" validate:"required,duration"`

	Peers []*PeerConfig `yaml:"Peers" validate:"required,min=1,dive,required"`
	Steps []*StepConfig `yaml:"Steps" validate:"dive,required"`
}

// NewConfig returns a Config of a single peer with the default values.
func NewConfig() *Config {
	conf := &Config{
		Peers: []*PeerConfig{{Name: "peer"}},
	}
	conf.ensureDefaultValue()
	return conf
}

// NewConfigFromFile returns a Config struct for the given scenario file.
func NewConfigFromFile(path string) (*Config, error) {
	conf := &Config{}
	bytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	if err = yaml.Unmarshal(bytes, conf); err != nil {
		return nil, fmt.Errorf("unmarshal scenario file: %w", err)
	}

	conf.ensureDefaultValue()
	return conf, nil
}

// Validate returns an error if the provided Config is invalidated.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("validate scenario: %w", err)
	}

	names := make(map[string]bool, len(c.Peers))
	for _, peer := range c.Peers {
		if names[peer.Name] {
			return fmt.Errorf("%s: %w", peer.Name, ErrDuplicatedPeer)
		}
		names[peer.Name] = true
	}

	for i, step := range c.Steps {
		if step.Action.isGlobal() {
			continue
		}
		if !names[step.Peer] {
			return fmt.Errorf("step %d %s %q: %w", i, step.Action, step.Peer, ErrUnknownPeer)
		}
	}

	return nil
}

// ParseOutdatedTimeout returns the outdated timeout as a duration.
func (c *Config) ParseOutdatedTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.OutdatedTimeout)
	if err != nil {
		return 0, fmt.Errorf("parse outdated timeout: %w", err)
	}
	return d, nil
}

// ensureDefaultValue sets the value of the option to which the default value
// should be applied when the user does not input it.
func (c *Config) ensureDefaultValue() {
	if c.Document == nil {
		c.Document = &DocumentConfig{}
	}
	if c.Document.Key == "" {
		c.Document.Key = DefaultDocumentKey
	}
	if c.FieldName == "" {
		c.FieldName = DefaultFieldName
	}
	if c.OutdatedTimeout == "" {
		c.OutdatedTimeout = DefaultOutdatedTimeout.String()
	}
	for _, peer := range c.Peers {
		if peer != nil && peer.Color == "" {
			peer.Color = cursor.DefaultColor
		}
	}
}
