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
	"sort"
)

// DecorationType is the type of a Decoration.
type DecorationType int

const (
	// WidgetDecoration is a zero-width element drawn at a position.
	WidgetDecoration DecorationType = iota

	// InlineDecoration adds attributes to the text of a range.
	InlineDecoration
)

// WidgetSpec is the spec of a widget decoration.
type WidgetSpec struct {
	// Key identifies the widget among redraws.
	Key string

	// Side controls which side of the position the widget is drawn on and
	// how it is mapped. Widgets with a negative side stick to the content
	// before them.
	Side int
}

// InlineSpec is the spec of an inline decoration.
type InlineSpec struct {
	// InclusiveStart tells whether content inserted at the start of the
	// range becomes part of it.
	InclusiveStart bool

	// InclusiveEnd tells whether content inserted at the end of the range
	// becomes part of it.
	InclusiveEnd bool
}

// Decoration is an overlay drawn over the document. Decorations are
// immutable.
type Decoration struct {
	typ        DecorationType
	from       int
	to         int
	element    *Element
	widgetSpec WidgetSpec
	attrs      map[string]string
	inlineSpec InlineSpec
}

// Widget creates a widget decoration drawing the given element at pos.
func Widget(pos int, element *Element, spec WidgetSpec) *Decoration {
	return &Decoration{
		typ:        WidgetDecoration,
		from:       pos,
		to:         pos,
		element:    element,
		widgetSpec: spec,
	}
}

// Inline creates an inline decoration adding the given attributes to the
// range [from, to).
func Inline(from, to int, attrs map[string]string, spec InlineSpec) *Decoration {
	return &Decoration{
		typ:        InlineDecoration,
		from:       from,
		to:         to,
		attrs:      attrs,
		inlineSpec: spec,
	}
}

// Type returns the type of this decoration.
func (d *Decoration) Type() DecorationType {
	return d.typ
}

// From returns the start of this decoration.
func (d *Decoration) From() int {
	return d.from
}

// To returns the end of this decoration. It equals From for widgets.
func (d *Decoration) To() int {
	return d.to
}

// Element returns the element of a widget decoration.
func (d *Decoration) Element() *Element {
	return d.element
}

// WidgetSpec returns the spec of a widget decoration.
func (d *Decoration) WidgetSpec() WidgetSpec {
	return d.widgetSpec
}

// Attrs returns the attributes of an inline decoration.
func (d *Decoration) Attrs() map[string]string {
	return d.attrs
}

// InlineSpec returns the spec of an inline decoration.
func (d *Decoration) InlineSpec() InlineSpec {
	return d.inlineSpec
}

// Map maps this decoration through the given mapping. ok is false if the
// decoration does not survive the mapping.
func (d *Decoration) Map(mapping *Mapping) (*Decoration, bool) {
	switch d.typ {
	case WidgetDecoration:
		assoc := 1
		if d.widgetSpec.Side < 0 {
			assoc = -1
		}
		result := mapping.MapResult(d.from, assoc)
		if result.Deleted {
			return nil, false
		}

		mapped := *d
		mapped.from, mapped.to = result.Pos, result.Pos
		return &mapped, true
	default:
		fromAssoc, toAssoc := 1, -1
		if d.inlineSpec.InclusiveStart {
			fromAssoc = -1
		}
		if d.inlineSpec.InclusiveEnd {
			toAssoc = 1
		}

		from := mapping.Map(d.from, fromAssoc)
		to := mapping.Map(d.to, toAssoc)
		if from >= to {
			return nil, false
		}

		mapped := *d
		mapped.from, mapped.to = from, to
		return &mapped, true
	}
}

// DecorationSet is an immutable set of decorations ordered by position.
// Decorations at the same position keep the order they were added in.
type DecorationSet struct {
	decorations []*Decoration
}

var emptyDecorationSet = &DecorationSet{}

// EmptyDecorationSet returns the empty DecorationSet.
func EmptyDecorationSet() *DecorationSet {
	return emptyDecorationSet
}

// NewDecorationSet creates a DecorationSet of the given decorations.
func NewDecorationSet(decorations ...*Decoration) *DecorationSet {
	if len(decorations) == 0 {
		return emptyDecorationSet
	}

	sorted := make([]*Decoration, len(decorations))
	copy(sorted, decorations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].from < sorted[j].from
	})
	return &DecorationSet{decorations: sorted}
}

// Map maps the decorations of this set through the given mapping, dropping
// the ones that do not survive.
func (s *DecorationSet) Map(mapping *Mapping) *DecorationSet {
	if len(s.decorations) == 0 || len(mapping.Maps()) == 0 {
		return s
	}

	var mapped []*Decoration
	for _, d := range s.decorations {
		if m, ok := d.Map(mapping); ok {
			mapped = append(mapped, m)
		}
	}
	return NewDecorationSet(mapped...)
}

// Find returns the decorations touching the range [from, to].
func (s *DecorationSet) Find(from, to int) []*Decoration {
	var found []*Decoration
	for _, d := range s.decorations {
		if d.from <= to && d.to >= from {
			found = append(found, d)
		}
	}
	return found
}

// All returns every decoration of this set.
func (s *DecorationSet) All() []*Decoration {
	return s.decorations
}

// Len returns the number of decorations.
func (s *DecorationSet) Len() int {
	return len(s.decorations)
}
