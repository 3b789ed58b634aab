// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package svec

import "testing"

func TestSmallVecPushBack(t *testing.T) {
	s := New[int](4)
	if s.Cap() != 4 {
		t.Fatalf("New(4).Cap() = %d, want 4", s.Cap())
	}
	for i := 0; i < 4; i++ {
		s.PushBack(i)
	}
	if s.Cap() != 4 {
		t.Errorf("Cap() after filling inline capacity = %d, want 4 (no reallocation)", s.Cap())
	}
	s.PushBack(4)
	if s.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", s.Len())
	}
	if s.Cap() < 5 {
		t.Errorf("Cap() after growth = %d, want >= 5", s.Cap())
	}
	for i := 0; i < 5; i++ {
		if *s.At(i) != i {
			t.Errorf("At(%d) = %d, want %d", i, *s.At(i), i)
		}
	}
	if *s.Front() != 0 || *s.Back() != 4 {
		t.Errorf("Front/Back = %d/%d, want 0/4", *s.Front(), *s.Back())
	}
}

func TestSmallVecResize(t *testing.T) {
	s := Of(1, 2, 3)
	s.Resize(5, -1)
	if s.Len() != 5 {
		t.Fatalf("Resize(5) Len() = %d, want 5", s.Len())
	}
	want := []int{1, 2, 3, -1, -1}
	for i, w := range want {
		if *s.At(i) != w {
			t.Errorf("At(%d) = %d, want %d", i, *s.At(i), w)
		}
	}
	s.Resize(2, 0)
	if s.Len() != 2 {
		t.Fatalf("Resize(2) Len() = %d, want 2", s.Len())
	}
	if *s.At(0) != 1 || *s.At(1) != 2 {
		t.Errorf("shrunk contents wrong: %v", s.Data())
	}
}

func TestSmallVecClearKeepsCapacity(t *testing.T) {
	s := New[int](8)
	s.PushBackFrom([]int{1, 2, 3})
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Clear() Len() = %d, want 0", s.Len())
	}
	if s.Cap() != 8 {
		t.Errorf("Clear() changed Cap() to %d, want 8", s.Cap())
	}
}

func TestSmallVecShrinkToFit(t *testing.T) {
	s := New[int](16)
	s.PushBackFrom([]int{1, 2, 3})
	s.ShrinkToFit()
	if s.Cap() != 3 {
		t.Errorf("ShrinkToFit() Cap() = %d, want 3", s.Cap())
	}
}

func TestEqual(t *testing.T) {
	a := Of(1, 2, 3)
	b := Of(1, 2, 3)
	c := Of(1, 2, 4)
	eq := func(x, y int) bool { return x == y }
	if !Equal(a, b, eq) {
		t.Errorf("Equal(a,b) = false, want true")
	}
	if Equal(a, c, eq) {
		t.Errorf("Equal(a,c) = true, want false")
	}
}
