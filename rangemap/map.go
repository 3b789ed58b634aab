// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rangemap

import "sort"

// Entry is a single (key, value) pair stored in a RangeMap.
type Entry[I Index, V any] struct {
	Key   Range[I]
	Value V
}

// RangeMap is an ordered mapping from non-overlapping, non-empty Range
// keys to values of type V. Iteration order follows ascending Key.Begin.
//
// The map does not auto-merge adjacent equal-valued entries on insertion;
// see Consolidate for an explicit merge pass.
//
// Positions into the map (returned by LowerBound, Find, Insert, and so on)
// are plain ints: an index into the map's ordered entries, with len(entries)
// denoting End(). They are invalidated by any structural mutation
// (Insert, Split, Erase*, OverwriteRange) performed after they were taken.
type RangeMap[I Index, V any] struct {
	entries []Entry[I, V]
}

// New returns an empty RangeMap.
func New[I Index, V any]() *RangeMap[I, V] { return &RangeMap[I, V]{} }

// Len returns the number of stored entries.
func (m *RangeMap[I, V]) Len() int { return len(m.entries) }

// Empty reports whether the map has no entries.
func (m *RangeMap[I, V]) Empty() bool { return len(m.entries) == 0 }

// End returns the past-the-end position.
func (m *RangeMap[I, V]) End() int { return len(m.entries) }

// At returns a pointer to the entry at position it. The returned pointer
// is invalidated by the next structural mutation of the map.
func (m *RangeMap[I, V]) At(it int) *Entry[I, V] { return &m.entries[it] }

// lowerBoundIdx finds the first entry that intersects or follows key,
// accounting for a preceding entry that may extend into key.Begin.
func (m *RangeMap[I, V]) lowerBoundIdx(key Range[I]) int {
	if key.Invalid() {
		return len(m.entries)
	}
	idx := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Key.Begin >= key.Begin
	})
	if idx > 0 && key.Begin < m.entries[idx-1].Key.End {
		idx--
	}
	return idx
}

// LowerBound returns the position of the first entry that intersects or
// follows key. Note this differs from an ordinary ordered map's
// lower_bound: a preceding entry may still extend into key.
func (m *RangeMap[I, V]) LowerBound(key Range[I]) int { return m.lowerBoundIdx(key) }

// UpperBound returns the position of the first entry strictly greater
// than (disjoint from, and above) key.
func (m *RangeMap[I, V]) UpperBound(key Range[I]) int {
	if key.Invalid() {
		return len(m.entries)
	}
	return sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Key.Begin >= key.End
	})
}

// Find returns the position of the unique entry whose key includes index,
// or End() if there is none.
func (m *RangeMap[I, V]) Find(index I) int {
	idx := m.lowerBoundIdx(Range[I]{index, index + 1})
	if idx < len(m.entries) && m.entries[idx].Key.Includes(index) {
		return idx
	}
	return len(m.entries)
}

// FindKey returns the position of the entry whose key exactly equals key,
// or End() if there is none.
func (m *RangeMap[I, V]) FindKey(key Range[I]) int {
	idx := m.lowerBoundIdx(key)
	if idx < len(m.entries) && m.entries[idx].Key.Equal(key) {
		return idx
	}
	return len(m.entries)
}

func (m *RangeMap[I, V]) insertAt(idx int, e Entry[I, V]) {
	var zero Entry[I, V]
	m.entries = append(m.entries, zero)
	copy(m.entries[idx+1:], m.entries[idx:])
	m.entries[idx] = e
}

func (m *RangeMap[I, V]) removeAt(idx int) {
	copy(m.entries[idx:], m.entries[idx+1:])
	m.entries = m.entries[:len(m.entries)-1]
}

// Insert adds key→value if key is non-empty and does not intersect any
// existing key. It returns the position of the new (or conflicting) entry
// and whether the insertion took place; a conflict is not an error, only
// a no-op reported through the second return value.
func (m *RangeMap[I, V]) Insert(key Range[I], value V) (int, bool) {
	if !key.NonEmpty() {
		return len(m.entries), false
	}
	idx := m.lowerBoundIdx(key)
	if idx < len(m.entries) && m.entries[idx].Key.Intersects(key) {
		return idx, false
	}
	m.insertAt(idx, Entry[I, V]{key, value})
	return idx, true
}

// Split divides the entry at it into [Begin, index) and [index, End),
// both mapping to (copies of) the original value, provided it.Key
// includes index and index is strictly past it.Key.Begin. Otherwise it
// returns it unchanged. The returned position always refers to the lower
// half.
func (m *RangeMap[I, V]) Split(it int, index I) int {
	if it < 0 || it >= len(m.entries) {
		return it
	}
	key := m.entries[it].Key
	if !key.Includes(index) || !(key.Begin < index) {
		return it
	}
	value := m.entries[it].Value
	m.entries[it] = Entry[I, V]{Range[I]{key.Begin, index}, value}
	m.insertAt(it+1, Entry[I, V]{Range[I]{index, key.End}, value})
	return it
}

// splitAtBoundary ensures index is a clean break between entries, splitting
// whichever entry (if any) straddles it.
func (m *RangeMap[I, V]) splitAtBoundary(index I) {
	idx := m.lowerBoundIdx(Range[I]{index, index + 1})
	if idx >= len(m.entries) || !m.entries[idx].Key.Includes(index) {
		return
	}
	if m.entries[idx].Key.Begin == index {
		return
	}
	m.Split(idx, index)
}

// Erase removes the entry at position it.
func (m *RangeMap[I, V]) Erase(it int) int {
	m.removeAt(it)
	return it
}

// EraseIterRange removes every entry in the position range [first, last).
func (m *RangeMap[I, V]) EraseIterRange(first, last int) int {
	n := last - first
	if n <= 0 {
		return first
	}
	copy(m.entries[first:], m.entries[last:])
	m.entries = m.entries[:len(m.entries)-n]
	return first
}

// EraseRangeOrTouch removes (or trims) every entry intersecting bounds.
// touch is invoked on the mapped value of every entry fully contained in
// bounds (after any necessary boundary trim); if it returns false the
// entry is kept instead of erased. It returns the position following the
// affected span.
func (m *RangeMap[I, V]) EraseRangeOrTouch(bounds Range[I], touch func(*V) bool) int {
	if bounds.Empty() {
		return m.lowerBoundIdx(bounds)
	}
	m.splitAtBoundary(bounds.Begin)
	m.splitAtBoundary(bounds.End)
	idx := m.lowerBoundIdx(bounds)
	for idx < len(m.entries) && m.entries[idx].Key.Begin < bounds.End {
		if touch(&m.entries[idx].Value) {
			m.removeAt(idx)
		} else {
			idx++
		}
	}
	return idx
}

// EraseRange removes every entry intersecting bounds, trimming partially
// overlapped ends.
func (m *RangeMap[I, V]) EraseRange(bounds Range[I]) int {
	return m.EraseRangeOrTouch(bounds, func(*V) bool { return true })
}

// OverwriteRange erases every entry intersecting key (trimming partial
// overlaps) and inserts key→value in its place.
func (m *RangeMap[I, V]) OverwriteRange(key Range[I], value V) int {
	idx := m.EraseRangeOrTouch(key, func(*V) bool { return true })
	m.insertAt(idx, Entry[I, V]{key, value})
	return idx
}

// Clear removes every entry.
func (m *RangeMap[I, V]) Clear() { m.entries = nil }

// Consolidate merges maximal runs of adjacent entries with equal mapped
// values into single entries. V must be comparable for this to typecheck;
// maps over non-comparable values simply never call it.
func Consolidate[I Index, V comparable](m *RangeMap[I, V]) {
	if len(m.entries) == 0 {
		return
	}
	out := m.entries[:0:0]
	i := 0
	for i < len(m.entries) {
		j := i
		for j+1 < len(m.entries) &&
			m.entries[j+1].Key.Begin == m.entries[j].Key.End &&
			m.entries[j+1].Value == m.entries[j].Value {
			j++
		}
		if j == i {
			out = append(out, m.entries[i])
		} else {
			out = append(out, Entry[I, V]{
				Range[I]{m.entries[i].Key.Begin, m.entries[j].Key.End},
				m.entries[j].Value,
			})
		}
		i = j + 1
	}
	m.entries = out
}
