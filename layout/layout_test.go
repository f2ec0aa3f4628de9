package layout

import (
	"errors"
	"testing"
)

func totalOf(rects []Rect, dir Direction) uint16 {
	var sum uint16
	for _, r := range rects {
		if dir == Horizontal {
			sum += r.Width
		} else {
			sum += r.Height
		}
	}
	return sum
}

func TestSplitOnlyLengths(t *testing.T) {
	area := Rect{Width: 10, Height: 1}
	rects, err := Split(area, Horizontal, []Constraint{Len(3), Len(4)})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if rects[0].Width != 3 || rects[1].Width != 4 {
		t.Errorf("got widths %d,%d want 3,4", rects[0].Width, rects[1].Width)
	}
	if rects[0].X != 0 || rects[1].X != 3 {
		t.Errorf("got offsets %d,%d want 0,3", rects[0].X, rects[1].X)
	}
}

func TestSplitEqualFillWeights(t *testing.T) {
	area := Rect{Width: 12, Height: 1}
	rects, err := Split(area, Horizontal, []Constraint{FillOf(1), FillOf(1), FillOf(1)})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	for _, r := range rects {
		if r.Width != 4 {
			t.Errorf("expected equal shares of 4, got %d", r.Width)
		}
	}
}

func TestSplitRatioHalves(t *testing.T) {
	area := Rect{Width: 10, Height: 1}
	rects, err := Split(area, Horizontal, []Constraint{RatioOf(1, 2), RatioOf(1, 2)})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if rects[0].Width != 5 || rects[1].Width != 5 {
		t.Errorf("got %d,%d want 5,5", rects[0].Width, rects[1].Width)
	}
}

func TestSplitLengthPlusFill(t *testing.T) {
	area := Rect{Width: 10, Height: 1}
	rects, err := Split(area, Horizontal, []Constraint{Len(3), FillOf(1)})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if rects[0].Width != 3 || rects[1].Width != 7 {
		t.Errorf("got %d,%d want 3,7", rects[0].Width, rects[1].Width)
	}
}

func TestSplitOverflow(t *testing.T) {
	area := Rect{Width: 6, Height: 1}
	_, err := Split(area, Horizontal, []Constraint{Len(4), Len(4), FillOf(1)})
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestSplitInvalidRatio(t *testing.T) {
	area := Rect{Width: 10, Height: 1}
	_, err := Split(area, Horizontal, []Constraint{RatioOf(1, 0)})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestSplitTilingScenario(t *testing.T) {
	// §8 scenario 5: [Length(3), Percent(20), Fill(1)] over width 10
	// yields widths 3,2,5 at offsets 0,3,5.
	area := Rect{Width: 10, Height: 1}
	rects, err := Split(area, Horizontal, []Constraint{Len(3), Pct(20), FillOf(1)})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	wantW := []uint16{3, 2, 5}
	wantX := []uint16{0, 3, 5}
	for i, r := range rects {
		if r.Width != wantW[i] || r.X != wantX[i] {
			t.Errorf("rect %d = {X:%d W:%d}, want {X:%d W:%d}", i, r.X, r.Width, wantX[i], wantW[i])
		}
	}
}

func TestSplitSumNeverExceedsTotal(t *testing.T) {
	cases := [][]Constraint{
		{Len(3), Len(4)},
		{FillOf(1), FillOf(2), FillOf(3)},
		{MinOf(2), MinOf(3), FillOf(1)},
		{MaxOf(5), FillOf(1)},
		{Len(2)},
	}
	for _, cs := range cases {
		area := Rect{Width: 10, Height: 1}
		rects, err := Split(area, Horizontal, cs)
		if err != nil {
			t.Fatalf("Split(%v): %v", cs, err)
		}
		if got := totalOf(rects, Horizontal); got > area.Width {
			t.Errorf("Split(%v): sum %d exceeds total %d", cs, got, area.Width)
		}
		// contiguity from offset 0
		var pos uint16
		for _, r := range rects {
			if r.X != pos {
				t.Errorf("Split(%v): rect at X=%d, expected contiguous offset %d", cs, r.X, pos)
			}
			pos += r.Width
		}
	}
}

func TestEmptyRect(t *testing.T) {
	if !(Rect{Width: 0, Height: 5}).Empty() {
		t.Error("zero width rect should be empty")
	}
	if !(Rect{Width: 5, Height: 0}).Empty() {
		t.Error("zero height rect should be empty")
	}
	if (Rect{Width: 1, Height: 1}).Empty() {
		t.Error("1x1 rect should not be empty")
	}
}

func TestIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 5, Height: 5}
	b := Rect{X: 3, Y: 3, Width: 5, Height: 5}
	got := Intersection(a, b)
	want := Rect{X: 3, Y: 3, Width: 2, Height: 2}
	if got != want {
		t.Errorf("Intersection = %+v, want %+v", got, want)
	}

	c := Rect{X: 10, Y: 10, Width: 2, Height: 2}
	if got := Intersection(a, c); got != (Rect{}) {
		t.Errorf("non-overlapping Intersection = %+v, want zero Rect", got)
	}
}

func TestNoConstraintsYieldsNoRects(t *testing.T) {
	rects, err := Split(Rect{Width: 10, Height: 10}, Horizontal, nil)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(rects) != 0 {
		t.Errorf("expected no rects, got %d", len(rects))
	}
}
