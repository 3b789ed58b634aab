// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rangemap

// SmallRangeMap is an array-backed specialization of RangeMap for a
// bounded, dense integer domain [0, limit): every position in the domain
// owns a slot, so point lookup is O(1) and no separate ordered index
// needs to be maintained.
//
// Each slot ranges[i] is dual-purpose: if i lies within an occupied
// entry, ranges[i] holds that entry's own [begin, end); otherwise it
// holds the inverted range (next occupied begin, previous occupied end),
// which lets a lookup at any position walk directly to its neighbors
// without a scan.
type SmallRangeMap[I Index, V any] struct {
	ranges []Range[I]
	values []V
	inUse  []bool
	size   int
	limit  I
}

// NewSmallRangeMap returns an empty SmallRangeMap over the domain [0, limit).
func NewSmallRangeMap[I Index, V any](limit I) *SmallRangeMap[I, V] {
	m := &SmallRangeMap[I, V]{limit: limit}
	m.init()
	return m
}

func (m *SmallRangeMap[I, V]) init() {
	n := int(m.limit)
	m.ranges = make([]Range[I], n)
	m.values = make([]V, n)
	m.inUse = make([]bool, n)
	m.size = 0
	empty := Range[I]{m.limit, 0}
	for i := range m.ranges {
		m.ranges[i] = empty
	}
}

// Limit returns the size of the backing domain.
func (m *SmallRangeMap[I, V]) Limit() I { return m.limit }

// SetLimit resizes the domain. Only valid on an empty map.
func (m *SmallRangeMap[I, V]) SetLimit(limit I) {
	if m.size != 0 {
		panic("rangemap: SetLimit called on a non-empty SmallRangeMap")
	}
	m.limit = limit
	m.init()
}

// Len returns the number of stored entries.
func (m *SmallRangeMap[I, V]) Len() int { return m.size }

// Empty reports whether the map has no entries.
func (m *SmallRangeMap[I, V]) Empty() bool { return m.size == 0 }

// End returns the past-the-end position.
func (m *SmallRangeMap[I, V]) End() int { return int(m.limit) }

// Begin returns the position of the first entry, or End() if empty.
func (m *SmallRangeMap[I, V]) Begin() int { return int(m.ranges[0].Begin) }

func (m *SmallRangeMap[I, V]) inBoundsIndex(index I) bool { return index < m.limit }

func (m *SmallRangeMap[I, V]) inBoundsKey(key Range[I]) bool {
	return key.Begin < m.limit && key.End <= m.limit
}

// Key returns the key of the entry occupying position pos. pos must be
// the begin position of an occupied entry.
func (m *SmallRangeMap[I, V]) Key(pos int) Range[I] { return m.ranges[pos] }

// Value returns a pointer to the value at position pos.
func (m *SmallRangeMap[I, V]) Value(pos int) *V { return &m.values[pos] }

func (m *SmallRangeMap[I, V]) isOpen(key Range[I]) bool {
	r := m.ranges[int(key.Begin)]
	return r.Invalid() && key.End <= r.Begin
}

func (m *SmallRangeMap[I, V]) constructValue(pos int, key Range[I], value V) {
	if m.inUse[pos] {
		panic("rangemap: construct over occupied SmallRangeMap slot")
	}
	m.values[pos] = value
	m.inUse[pos] = true
	m.size++
	_ = key
}

func (m *SmallRangeMap[I, V]) destructValue(pos int) {
	if m.inUse[pos] {
		m.size--
		var zero V
		m.values[pos] = zero
		m.inUse[pos] = false
	}
}

func (m *SmallRangeMap[I, V]) rerangeEnd(from, to int, newEnd I) {
	for i := from; i < to; i++ {
		m.ranges[i].End = newEnd
	}
}

func (m *SmallRangeMap[I, V]) rerangeBegin(from, to int, newBegin I) {
	for i := from; i < to; i++ {
		m.ranges[i].Begin = newBegin
	}
}

func (m *SmallRangeMap[I, V]) reslice(from, to int, value Range[I]) {
	for i := from; i < to; i++ {
		m.ranges[i] = value
	}
}

// resizeValueRight moves the value owning currentBegin to newBegin. It
// leaves ranges untouched; callers re-range the slots of the shrunken
// entry [newBegin, currentEnd) themselves.
func (m *SmallRangeMap[I, V]) resizeValueRight(currentBegin int, currentEnd I, newBegin int) {
	m.values[newBegin] = m.values[currentBegin]
	m.inUse[newBegin] = true
	m.destructValue(currentBegin)
	m.size++ // destructValue decremented; this slot remains occupied overall
}

func (m *SmallRangeMap[I, V]) nextRange(current int) int {
	next := int(m.ranges[current].End)
	if next < int(m.limit) && m.ranges[next].Invalid() {
		next = int(m.ranges[next].Begin)
	}
	return next
}

func (m *SmallRangeMap[I, V]) prevRange(current int) int {
	if current == 0 {
		return 0
	}
	prev := current - 1
	if m.ranges[prev].Valid() {
		return int(m.ranges[prev].Begin)
	}
	if prev != 0 {
		return m.prevRange(int(m.ranges[prev].End))
	}
	return prev
}

// Find returns the position of the unique entry whose key includes index,
// or End() if there is none.
func (m *SmallRangeMap[I, V]) Find(index I) int {
	if !m.inBoundsIndex(index) {
		return int(m.limit)
	}
	r := m.ranges[int(index)]
	if r.Valid() {
		return int(r.Begin)
	}
	return int(m.limit)
}

// FindKey returns the position of the entry whose key exactly equals key,
// or End() if there is none.
func (m *SmallRangeMap[I, V]) FindKey(key Range[I]) int {
	if !m.inBoundsKey(key) || key.Begin >= m.limit {
		return int(m.limit)
	}
	r := m.ranges[int(key.Begin)]
	if r.Begin == key.Begin && r.End == key.End {
		return int(key.Begin)
	}
	return int(m.limit)
}

// Insert adds key→value if key is non-empty, in bounds, and does not
// intersect any existing key. It returns the position of the new (or
// conflicting) entry and whether the insertion took place.
func (m *SmallRangeMap[I, V]) Insert(key Range[I], value V) (int, bool) {
	if !m.inBoundsKey(key) {
		panic("rangemap: key out of bounds for SmallRangeMap")
	}
	if key.Begin >= m.limit || !key.NonEmpty() {
		return int(m.limit), false
	}
	if !m.isOpen(key) {
		collisionBegin := m.ranges[int(key.Begin)].Begin
		return int(collisionBegin), false
	}
	m.emplaceOpen(key, value)
	return int(key.Begin), true
}

// emplaceOpen inserts into a verified-open [key.Begin, key.End) span.
func (m *SmallRangeMap[I, V]) emplaceOpen(key Range[I], value V) {
	b, e := int(key.Begin), int(key.End)
	m.reslice(b, e, key)
	prev := b
	for prev > 0 {
		prev--
		if m.ranges[prev].Valid() {
			break
		}
		m.ranges[prev].Begin = key.Begin
	}
	m.constructValue(b, key, value)
	next := e
	for next < int(m.limit) {
		if m.ranges[next].Valid() {
			break
		}
		m.ranges[next].End = key.End
		next++
	}
}

// Split divides the entry at it into [Begin, index) and [index, End);
// see RangeMap.Split for the contract.
func (m *SmallRangeMap[I, V]) Split(it int, index I) int {
	key := m.ranges[it]
	if !key.Includes(index) {
		return it
	}
	lower := Range[I]{key.Begin, index}
	if lower.Empty() {
		return it
	}
	upper := Range[I]{index, key.End}
	value := m.values[it]
	m.constructValue(int(upper.Begin), upper, value)
	m.reslice(int(upper.Begin), int(upper.End), upper)
	m.rerangeEnd(it, int(lower.End), lower.End)
	return it
}

// OverwriteRange erases every entry intersecting key (trimming partial
// overlaps) and inserts key→value in its place.
func (m *SmallRangeMap[I, V]) OverwriteRange(key Range[I], value V) int {
	if !m.inBoundsKey(key) {
		panic("rangemap: key out of bounds for SmallRangeMap")
	}
	if key.End > m.limit {
		return int(m.limit)
	}
	m.clearOutRange(key, true)
	m.constructValue(int(key.Begin), key, value)
	m.reslice(int(key.Begin), int(key.End), key)
	return int(key.Begin)
}

// EraseRange erases every entry intersecting bounds, trimming partially
// overlapped ends. It returns the position following the cleared span.
func (m *SmallRangeMap[I, V]) EraseRange(bounds Range[I]) int {
	if !m.inBoundsKey(bounds) {
		panic("rangemap: range out of bounds for SmallRangeMap")
	}
	if bounds.End > m.limit || bounds.Empty() {
		return int(m.limit)
	}
	empty := m.clearOutRange(bounds, false)
	return int(empty.End)
}

// Erase removes the single entry at position pos.
func (m *SmallRangeMap[I, V]) Erase(pos int) int { return m.eraseImpl(pos) }

// EraseIterRange removes every entry whose begin position lies in
// [first, last).
func (m *SmallRangeMap[I, V]) EraseIterRange(first, last int) int {
	if first >= last {
		return last
	}
	left := m.findEmptyLeft(first)
	m.clearAndSetRange(left, last, Range[I]{I(last), I(left)})
	return last
}

func (m *SmallRangeMap[I, V]) eraseImpl(pos int) int {
	m.destructValue(pos)
	prev := 0
	if pos != 0 {
		prev = m.prevRange(pos)
		prev = int(m.ranges[prev].End)
	}
	next := m.nextRange(pos)
	if next < int(m.limit) {
		next = int(m.ranges[next].Begin)
	}
	infill := Range[I]{I(next), I(prev)}
	m.reslice(prev, next, infill)
	return next
}

// LowerBound returns the position of the first entry that intersects or
// follows key.
func (m *SmallRangeMap[I, V]) LowerBound(key Range[I]) int {
	if !m.inBoundsIndex(key.Begin) {
		return int(m.limit)
	}
	return int(m.ranges[int(key.Begin)].Begin)
}

// UpperBound returns the position of the first entry strictly greater
// than (disjoint from, and above) key.
func (m *SmallRangeMap[I, V]) UpperBound(key Range[I]) int {
	if key.End >= m.limit {
		return int(m.limit)
	}
	endRange := m.ranges[int(key.End)]
	ub := int(endRange.Begin)
	if endRange.Valid() && key.End > endRange.Begin {
		ub = m.nextRange(int(endRange.Begin))
	}
	return ub
}

func (m *SmallRangeMap[I, V]) findInuseRight(r Range[I]) int {
	if r.End >= m.limit {
		return int(m.limit)
	}
	return int(m.ranges[int(r.End)].Begin)
}

func (m *SmallRangeMap[I, V]) findInuseLeft(r Range[I]) int {
	if r.Begin == 0 {
		return 0
	}
	return int(m.ranges[int(r.Begin)-1].End)
}

func (m *SmallRangeMap[I, V]) findEmpty(r Range[I]) Range[I] {
	return Range[I]{I(m.findInuseLeft(r)), I(m.findInuseRight(r))}
}

func (m *SmallRangeMap[I, V]) findEmptyLeft(pos int) int {
	return m.findInuseLeft(Range[I]{I(pos), I(pos)})
}

func (m *SmallRangeMap[I, V]) clearAndSetRange(from, to int, value Range[I]) {
	for i := from; i < to; i++ {
		if i == int(m.ranges[i].Begin) {
			m.destructValue(i)
		}
		m.ranges[i] = value
	}
}

// clearOutRange clears [clear.Begin, clear.End), trimming any entry that
// straddles either boundary, and returns the resulting empty span. If
// validClearRange is true the slots of clear are set to clear's own
// bounds, ready for the caller to occupy, and the empty slots on either
// side point at it; otherwise the whole empty span is marked as an open
// (invalid, neighbor-pointing) span.
func (m *SmallRangeMap[I, V]) clearOutRange(clear Range[I], validClearRange bool) Range[I] {
	first := m.ranges[int(clear.Begin)]

	if first.Equal(clear) {
		m.destructValue(int(clear.Begin))
		if validClearRange {
			return clear
		}
		empty := m.findEmpty(clear)
		m.reslice(int(empty.Begin), int(empty.End), Range[I]{empty.End, empty.Begin})
		return empty
	}

	emptyLeft := Range[I]{clear.Begin, clear.Begin}
	emptyRight := Range[I]{clear.End, clear.End}

	if first.Valid() && first.IncludesRange(clear) {
		if first.Begin < clear.Begin {
			m.rerangeEnd(int(first.Begin), int(clear.Begin), clear.Begin)
			if first.End > clear.End {
				value := m.values[int(first.Begin)]
				m.constructValue(int(clear.End), Range[I]{clear.End, first.End}, value)
				m.values[int(clear.End)] = value
				m.rerangeBegin(int(clear.End), int(first.End), clear.End)
			} else {
				emptyRight.End = I(m.findInuseRight(clear))
			}
		} else {
			m.resizeValueRight(int(first.Begin), first.End, int(clear.End))
			m.rerangeBegin(int(clear.End), int(first.End), clear.End)
			emptyLeft.Begin = I(m.findInuseLeft(clear))
		}
	} else {
		if first.Valid() {
			if first.Begin < clear.Begin {
				m.rerangeEnd(int(first.Begin), int(clear.Begin), clear.Begin)
			}
		} else {
			emptyLeft.Begin = I(m.findInuseLeft(clear))
		}
		if clear.End < m.limit {
			last := m.ranges[int(clear.End)]
			if last.Valid() {
				if last.Begin < clear.End {
					m.resizeValueRight(int(last.Begin), last.End, int(clear.End))
					m.rerangeBegin(int(clear.End), int(last.End), clear.End)
				}
			} else {
				emptyRight.End = last.Begin
			}
		}
	}

	empty := Range[I]{emptyLeft.Begin, emptyRight.End}
	for i := int(empty.Begin); i < int(empty.End); i++ {
		if int(m.ranges[i].Begin) == i {
			m.destructValue(i)
		}
	}

	if validClearRange {
		m.rerangeBegin(int(emptyLeft.Begin), int(emptyLeft.End), clear.Begin)
		m.reslice(int(clear.Begin), int(clear.End), clear)
		m.rerangeEnd(int(emptyRight.Begin), int(emptyRight.End), clear.End)
	} else {
		m.reslice(int(empty.Begin), int(empty.End), Range[I]{empty.End, empty.Begin})
	}
	return empty
}
