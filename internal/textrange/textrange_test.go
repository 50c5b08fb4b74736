package textrange

import "testing"

func TestRangeBasics(t *testing.T) {
	r := NewRange(5, 10)
	if r.Start() != 5 || r.End() != 10 || r.Len() != 5 {
		t.Fatalf("unexpected range fields: %+v", r)
	}
	if r.IsEmpty() {
		t.Fatal("expected non-empty range")
	}
	if !PointRange(3).IsEmpty() {
		t.Fatal("expected point range to be empty")
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(5, 10)
	if !r.Contains(5) || !r.Contains(9) {
		t.Fatal("boundary-inclusive-start offsets should be contained")
	}
	if r.Contains(10) {
		t.Fatal("end offset is exclusive and must not be contained")
	}
	if !r.ContainsRange(NewRange(6, 8)) {
		t.Fatal("expected sub-range to be contained")
	}
	if r.ContainsRange(NewRange(4, 8)) {
		t.Fatal("range starting before r must not be contained")
	}
}

func TestRangeIntersects(t *testing.T) {
	a := NewRange(5, 10)
	b := NewRange(9, 12)
	c := NewRange(10, 12)
	if !a.IntersectsRange(b) {
		t.Fatal("overlapping ranges must intersect")
	}
	if a.IntersectsRange(c) {
		t.Fatal("adjacent half-open ranges must not intersect")
	}
	empty := PointRange(10)
	if a.IntersectsRange(empty) {
		t.Fatal("empty range at the boundary must not intersect")
	}
}

func TestNewRangePanicsOnInverted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for end < start")
		}
	}()
	NewRange(10, 5)
}
