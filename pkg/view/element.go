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
	"html"
	"sort"
	"strings"
)

// Element is a renderable node of a decoration, such as a caret.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Children []*Element

	// Text is the content of a text node. Text nodes have no tag.
	Text string
}

// NewElement creates a new Element of the given tag.
func NewElement(tag string, attrs map[string]string, children ...*Element) *Element {
	return &Element{
		Tag:      tag,
		Attrs:    attrs,
		Children: children,
	}
}

// NewText creates a new text node.
func NewText(text string) *Element {
	return &Element{Text: text}
}

// TextContent returns the text of this element and its descendants.
func (e *Element) TextContent() string {
	if e.Tag == "" {
		return e.Text
	}

	var builder strings.Builder
	for _, child := range e.Children {
		builder.WriteString(child.TextContent())
	}
	return builder.String()
}

// String returns the HTML representation of this element.
func (e *Element) String() string {
	var builder strings.Builder
	e.write(&builder)
	return builder.String()
}

func (e *Element) write(builder *strings.Builder) {
	if e.Tag == "" {
		builder.WriteString(html.EscapeString(e.Text))
		return
	}

	builder.WriteString("<" + e.Tag)
	keys := make([]string, 0, len(e.Attrs))
	for key := range e.Attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		builder.WriteString(" " + key + `="` + html.EscapeString(e.Attrs[key]) + `"`)
	}
	builder.WriteString(">")

	for _, child := range e.Children {
		child.write(builder)
	}
	builder.WriteString("</" + e.Tag + ">")
}
