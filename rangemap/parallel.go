// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rangemap

// ParallelIterator walks two RangeMaps of possibly different value types
// in lockstep over their shared index domain, exposing the maximal
// sub-range over which neither map transitions to a new entry (or a gap).
type ParallelIterator[I Index, VA any, VB any] struct {
	a   *CachedLowerBound[I, VA]
	b   *CachedLowerBound[I, VB]
	rng Range[I]
}

// NewParallelIterator positions a ParallelIterator at index over mapA/mapB.
func NewParallelIterator[I Index, VA any, VB any](
	mapA *RangeMap[I, VA], mapB *RangeMap[I, VB], index I,
) *ParallelIterator[I, VA, VB] {
	p := &ParallelIterator[I, VA, VB]{
		a: mapA.NewCachedLowerBound(index),
		b: mapB.NewCachedLowerBound(index),
	}
	p.rng = Range[I]{index, index + p.computeDelta()}
	return p
}

func (p *ParallelIterator[I, VA, VB]) computeDelta() I {
	da := p.a.DistanceToEdge()
	db := p.b.DistanceToEdge()
	switch {
	case da == 0:
		return db
	case db == 0:
		return da
	case da < db:
		return da
	default:
		return db
	}
}

// Range returns the current maximal sub-range.
func (p *ParallelIterator[I, VA, VB]) Range() Range[I] { return p.rng }

// A returns the cached lower-bound cursor into mapA.
func (p *ParallelIterator[I, VA, VB]) A() *CachedLowerBound[I, VA] { return p.a }

// B returns the cached lower-bound cursor into mapB.
func (p *ParallelIterator[I, VA, VB]) B() *CachedLowerBound[I, VB] { return p.b }

// Next advances past the current Range to the next maximal sub-range.
func (p *ParallelIterator[I, VA, VB]) Next() *ParallelIterator[I, VA, VB] {
	start := p.rng.End
	delta := p.rng.Distance()
	p.a.Offset(delta)
	p.b.Offset(delta)
	p.rng = Range[I]{start, start + p.computeDelta()}
	return p
}

// Seek repositions both cursors at index.
func (p *ParallelIterator[I, VA, VB]) Seek(index I) *ParallelIterator[I, VA, VB] {
	p.a.Seek(index)
	p.b.Seek(index)
	p.rng = Range[I]{index, index + p.computeDelta()}
	return p
}

// InvalidateA re-searches the A cursor (for use after mutating mapA) and
// recomputes the current range.
func (p *ParallelIterator[I, VA, VB]) InvalidateA() *ParallelIterator[I, VA, VB] {
	p.a.Invalidate()
	p.rng = Range[I]{p.rng.Begin, p.rng.Begin + p.computeDelta()}
	return p
}

// InvalidateB re-searches the B cursor (for use after mutating mapB) and
// recomputes the current range.
func (p *ParallelIterator[I, VA, VB]) InvalidateB() *ParallelIterator[I, VA, VB] {
	p.b.Invalidate()
	p.rng = Range[I]{p.rng.Begin, p.rng.Begin + p.computeDelta()}
	return p
}

// Updater resolves conflicts and gap-fills while splicing a source map
// into a destination map of a possibly different value type.
type Updater[VA any, VB any] interface {
	// Update folds src into an existing dst entry's value, in place.
	Update(dst *VA, src VB)
	// Insert converts a source value into a destination value for a gap
	// in dst. If ok is false, the gap is left unfilled.
	Insert(src VB) (value VA, ok bool)
}

// Splice merges src into dst: every sub-range of src that falls in a dst
// gap is inserted (via updater.Insert), and every sub-range that overlaps
// an existing dst entry is folded in (via updater.Update), splitting the
// overlapped dst entry as needed so only the intersecting portion is
// touched.
func Splice[I Index, VA any, VB any](dst *RangeMap[I, VA], src *RangeMap[I, VB], updater Updater[VA, VB]) {
	if src.Empty() {
		return
	}
	start := src.entries[0].Key.Begin
	p := NewParallelIterator[I, VA, VB](dst, src, start)
	for p.Range().NonEmpty() && !p.B().AtEnd() {
		rng := p.Range()
		if p.B().Valid() {
			srcVal := src.entries[p.B().LowerBound()].Value
			if p.A().Valid() {
				dstIdx := p.A().LowerBound()
				if dst.entries[dstIdx].Key.Equal(rng) {
					updater.Update(&dst.entries[dstIdx].Value, srcVal)
				} else {
					v := dst.entries[dstIdx].Value
					updater.Update(&v, srcVal)
					dst.OverwriteRange(rng, v)
					p.InvalidateA()
				}
			} else if nv, ok := updater.Insert(srcVal); ok {
				dst.Insert(rng, nv)
				p.InvalidateA()
			}
		}
		p.Next()
	}
}

// InfillUpdateOps supplies the two callbacks InfillUpdateRange needs: one
// for entries already present in the traversed range, one for gaps.
type InfillUpdateOps[I Index, V any] interface {
	// Update is called with the position of an existing entry fully
	// contained in the traversed range (after any necessary boundary
	// split); it may mutate the entry's value in place.
	Update(m *RangeMap[I, V], it int)
	// Infill is called with a gap [gap.Begin, gap.End) in the traversed
	// range and a hint position to insert before; it should insert
	// whatever entries it wants into that gap.
	Infill(m *RangeMap[I, V], posHint int, gap Range[I])
}

// InfillUpdateRange walks rng calling ops.Update on every existing entry
// it contains and ops.Infill on every gap between them, so that after it
// returns, rng has no gaps left unaddressed by ops.Infill. It returns the
// position following the traversed span.
func InfillUpdateRange[I Index, V any](m *RangeMap[I, V], rng Range[I], ops InfillUpdateOps[I, V]) int {
	if rng.Empty() {
		return m.lowerBoundIdx(rng)
	}
	if pos := m.lowerBoundIdx(rng); pos < m.End() && rng.Begin > m.entries[pos].Key.Begin {
		m.Split(pos, rng.Begin)
	}
	current := rng.Begin
	for current < rng.End {
		pos := m.lowerBoundIdx(Range[I]{current, current + 1})
		if pos >= m.End() || current < m.entries[pos].Key.Begin {
			gapEnd := rng.End
			if pos < m.End() && m.entries[pos].Key.Begin < gapEnd {
				gapEnd = m.entries[pos].Key.Begin
			}
			ops.Infill(m, pos, Range[I]{current, gapEnd})
			current = gapEnd
			continue
		}
		if m.entries[pos].Key.End > rng.End {
			m.Split(pos, rng.End)
			pos = m.lowerBoundIdx(Range[I]{current, current + 1})
		}
		ops.Update(m, pos)
		current = m.entries[pos].Key.End
	}
	return m.UpperBound(rng)
}
