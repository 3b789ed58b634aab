// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rangemap

import "testing"

func TestSmallRangeMapInsertFind(t *testing.T) {
	m := NewSmallRangeMap[int, string](32)
	if pos, ok := m.Insert(Range[int]{4, 10}, "A"); !ok || pos != 4 {
		t.Fatalf("Insert({4,10}) = (%d, %v), want (4, true)", pos, ok)
	}
	if pos, ok := m.Insert(Range[int]{10, 20}, "B"); !ok || pos != 10 {
		t.Fatalf("Insert({10,20}) = (%d, %v), want (10, true)", pos, ok)
	}
	if pos := m.Find(7); pos != 4 {
		t.Errorf("Find(7) = %d, want 4", pos)
	}
	if pos := m.Find(15); pos != 10 {
		t.Errorf("Find(15) = %d, want 10", pos)
	}
	if pos := m.Find(2); pos != m.End() {
		t.Errorf("Find(2) = %d, want End()", pos)
	}
	if pos, ok := m.Insert(Range[int]{8, 12}, "C"); ok || pos != 4 {
		t.Fatalf("Insert({8,12}) over occupied span = (%d, %v), want (4, false)", pos, ok)
	}
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
}

func TestSmallRangeMapEraseRange(t *testing.T) {
	m := NewSmallRangeMap[int, string](32)
	m.Insert(Range[int]{0, 10}, "A")
	m.Insert(Range[int]{10, 20}, "B")
	m.Insert(Range[int]{20, 30}, "C")
	m.EraseRange(Range[int]{3, 22})
	if pos := m.Find(0); pos != 0 {
		t.Errorf("Find(0) after erase = %d, want 0", pos)
	}
	if m.Key(0) != (Range[int]{0, 3}) {
		t.Errorf("Key(0) = %v, want {0,3}", m.Key(0))
	}
	if pos := m.Find(22); pos != 22 {
		t.Errorf("Find(22) after erase = %d, want 22", pos)
	}
	if m.Key(22) != (Range[int]{22, 30}) {
		t.Errorf("Key(22) = %v, want {22,30}", m.Key(22))
	}
	if pos := m.Find(10); pos != m.End() {
		t.Errorf("Find(10) after erase should miss, got %d", pos)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestSmallRangeMapOverwriteRange(t *testing.T) {
	m := NewSmallRangeMap[int, string](32)
	m.Insert(Range[int]{0, 10}, "A")
	m.Insert(Range[int]{10, 20}, "B")
	m.Insert(Range[int]{20, 30}, "C")
	m.OverwriteRange(Range[int]{5, 25}, "X")

	if m.Key(0) != (Range[int]{0, 5}) || *m.Value(0) != "A" {
		t.Errorf("slot 0 = %v/%v, want {0,5}/A", m.Key(0), *m.Value(0))
	}
	if m.Key(5) != (Range[int]{5, 25}) || *m.Value(5) != "X" {
		t.Errorf("slot 5 = %v/%v, want {5,25}/X", m.Key(5), *m.Value(5))
	}
	if m.Key(25) != (Range[int]{25, 30}) || *m.Value(25) != "C" {
		t.Errorf("slot 25 = %v/%v, want {25,30}/C", m.Key(25), *m.Value(25))
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestSmallRangeMapSplitAndErase(t *testing.T) {
	m := NewSmallRangeMap[int, string](16)
	m.Insert(Range[int]{0, 10}, "v")
	m.Split(0, 4)
	if m.Key(0) != (Range[int]{0, 4}) {
		t.Errorf("Key(0) after split = %v, want {0,4}", m.Key(0))
	}
	if m.Key(4) != (Range[int]{4, 10}) {
		t.Errorf("Key(4) after split = %v, want {4,10}", m.Key(4))
	}
	if m.Len() != 2 {
		t.Errorf("Len() after split = %d, want 2", m.Len())
	}
	m.Erase(4)
	if m.Find(4) != m.End() {
		t.Errorf("Find(4) after erase should miss")
	}
	if m.Find(0) != 0 || m.Key(0) != (Range[int]{0, 4}) {
		t.Errorf("erasing slot 4 corrupted slot 0: Key = %v", m.Key(0))
	}
	if m.Len() != 1 {
		t.Errorf("Len() after erase = %d, want 1", m.Len())
	}
}

func TestSmallRangeMapSetLimitRejectsNonEmpty(t *testing.T) {
	m := NewSmallRangeMap[int, string](8)
	m.Insert(Range[int]{0, 1}, "A")
	defer func() {
		if recover() == nil {
			t.Fatalf("SetLimit on a non-empty map should panic")
		}
	}()
	m.SetLimit(16)
}
