// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rangemap

// CachedLowerBound tracks the lower-bound position of a single advancing
// index into a RangeMap, so that repeated forward queries (Next/Seek by a
// small positive delta) cost O(1) amortized instead of a fresh O(log n)
// search each time.
type CachedLowerBound[I Index, V any] struct {
	m     *RangeMap[I, V]
	index I
	lb    int
	valid bool
}

// NewCachedLowerBound returns a CachedLowerBound positioned at index.
func (m *RangeMap[I, V]) NewCachedLowerBound(index I) *CachedLowerBound[I, V] {
	c := &CachedLowerBound[I, V]{m: m}
	c.setValue(index, m.lowerBoundIdx(Range[I]{index, index + 1}))
	return c
}

func (c *CachedLowerBound[I, V]) setValue(index I, lb int) {
	c.index = index
	c.lb = lb
	c.valid = c.computeValid()
}

func (c *CachedLowerBound[I, V]) computeValid() bool {
	return c.lb < len(c.m.entries) && c.m.entries[c.lb].Key.Includes(c.index)
}

// AtEnd reports whether the cached position has run off the end of the map.
func (c *CachedLowerBound[I, V]) AtEnd() bool { return c.lb >= len(c.m.entries) }

// Index returns the index this iterator is currently positioned at.
func (c *CachedLowerBound[I, V]) Index() I { return c.index }

// LowerBound returns the current cached map position.
func (c *CachedLowerBound[I, V]) LowerBound() int { return c.lb }

// Valid reports whether Index() falls within the entry at LowerBound().
func (c *CachedLowerBound[I, V]) Valid() bool { return c.valid }

// isLowerThan reports whether index still falls below the end of the
// entry (if any) at map position lb — i.e. whether lb remains correct
// for index without a re-search.
func (c *CachedLowerBound[I, V]) isLowerThan(index I, lb int) bool {
	return lb >= len(c.m.entries) || index < c.m.entries[lb].Key.End
}

func (c *CachedLowerBound[I, V]) update(index I) {
	c.index = index
	c.valid = c.computeValid()
}

// Next advances the iterator by one index.
func (c *CachedLowerBound[I, V]) Next() *CachedLowerBound[I, V] {
	next := c.index + 1
	if c.isLowerThan(next, c.lb) {
		c.update(next)
	} else {
		c.setValue(next, c.lb+1)
	}
	return c
}

// Seek moves the iterator to an arbitrary index, forward or backward.
func (c *CachedLowerBound[I, V]) Seek(index I) *CachedLowerBound[I, V] {
	switch {
	case index == c.index:
	case index > c.index:
		if c.isLowerThan(index, c.lb) {
			c.update(index)
		} else if c.isLowerThan(index, c.lb+1) {
			c.setValue(index, c.lb+1)
		} else {
			c.setValue(index, c.m.lowerBoundIdx(Range[I]{index, index + 1}))
		}
	default:
		c.setValue(index, c.m.lowerBoundIdx(Range[I]{index, index + 1}))
	}
	return c
}

// Offset moves the iterator forward by delta (delta may be zero).
func (c *CachedLowerBound[I, V]) Offset(delta I) *CachedLowerBound[I, V] {
	return c.Seek(c.index + delta)
}

// Invalidate forces a fresh search at the current index, for use after a
// mutation of the underlying map that may have moved entries around it.
func (c *CachedLowerBound[I, V]) Invalidate() *CachedLowerBound[I, V] {
	c.setValue(c.index, c.m.lowerBoundIdx(Range[I]{c.index, c.index + 1}))
	return c
}

// DistanceToEdge returns the distance from Index() to the end of the
// current entry if Valid, or to the beginning of the next entry (0 if
// AtEnd) otherwise.
func (c *CachedLowerBound[I, V]) DistanceToEdge() I {
	if c.valid {
		return c.m.entries[c.lb].Key.End - c.index
	}
	if c.AtEnd() {
		return 0
	}
	return c.m.entries[c.lb].Key.Begin - c.index
}
