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

// MapResult is the result of mapping a position with extra information.
type MapResult struct {
	// Pos is the mapped position.
	Pos int

	// Deleted tells whether the content on the side of the position given
	// by the associativity was deleted.
	Deleted bool
}

type stepRange struct {
	start   int
	oldSize int
	newSize int
}

// StepMap maps positions across a single replacement of the document.
type StepMap struct {
	ranges []stepRange
}

// NewStepMap creates a StepMap replacing oldSize units at start with
// newSize units.
func NewStepMap(start, oldSize, newSize int) *StepMap {
	if oldSize == 0 && newSize == 0 {
		return &StepMap{}
	}
	return &StepMap{ranges: []stepRange{{start: start, oldSize: oldSize, newSize: newSize}}}
}

// Map maps the given position. assoc decides the side the position sticks
// to when content is inserted at it: a negative assoc stays before the
// insertion, otherwise the position moves after it.
func (m *StepMap) Map(pos, assoc int) int {
	return m.MapResult(pos, assoc).Pos
}

// MapResult maps the given position and tells whether it was deleted.
func (m *StepMap) MapResult(pos, assoc int) MapResult {
	diff := 0
	for _, r := range m.ranges {
		if r.start > pos {
			break
		}

		end := r.start + r.oldSize
		if pos <= end {
			side := assoc
			if r.oldSize > 0 {
				if pos == r.start {
					side = -1
				} else if pos == end {
					side = 1
				}
			}

			result := r.start + diff
			if side >= 0 {
				result += r.newSize
			}

			deleted := pos != end
			if assoc < 0 {
				deleted = pos != r.start
			}
			return MapResult{Pos: result, Deleted: deleted}
		}
		diff += r.newSize - r.oldSize
	}

	return MapResult{Pos: pos + diff}
}

// Mapping is a pipeline of step maps.
type Mapping struct {
	maps []*StepMap
}

// NewMapping creates a Mapping of the given maps.
func NewMapping(maps ...*StepMap) *Mapping {
	return &Mapping{maps: maps}
}

// AppendMap adds the given map at the end of this mapping.
func (m *Mapping) AppendMap(stepMap *StepMap) {
	m.maps = append(m.maps, stepMap)
}

// Maps returns the step maps of this mapping.
func (m *Mapping) Maps() []*StepMap {
	return m.maps
}

// Map maps the given position through every step map.
func (m *Mapping) Map(pos, assoc int) int {
	return m.MapResult(pos, assoc).Pos
}

// MapResult maps the given position through every step map. The position is
// deleted if any of the step maps deleted it.
func (m *Mapping) MapResult(pos, assoc int) MapResult {
	deleted := false
	for _, stepMap := range m.maps {
		result := stepMap.MapResult(pos, assoc)
		if result.Deleted {
			deleted = true
		}
		pos = result.Pos
	}
	return MapResult{Pos: pos, Deleted: deleted}
}
