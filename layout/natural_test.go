package layout

import (
	"math"
	"testing"

	"github.com/stratawm/strata/scene"
)

func TestNaturalFourWindowsTileInQuadrants(t *testing.T) {
	bounds := scene.Rect{X: 0, Y: 0, W: 1000, H: 600}
	sizes := []scene.Size{
		{W: 800, H: 600},
		{W: 800, H: 600},
		{W: 800, H: 600},
		{W: 800, H: 600},
	}

	rects := Natural(sizes, bounds, false)
	if len(rects) != 4 {
		t.Fatalf("expected 4 rects, got %d", len(rects))
	}

	for i, r := range rects {
		if r.W > 500 || r.H > 300 {
			t.Fatalf("rect %d exceeds cell: %+v", i, r)
		}
		if r.X < 0 || r.Y < 0 || r.X+r.W > 1000 || r.Y+r.H > 600 {
			t.Fatalf("rect %d escapes bounds: %+v", i, r)
		}
	}
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			if overlaps(rects[i], rects[j]) {
				t.Fatalf("rects %d and %d overlap: %+v %+v", i, j, rects[i], rects[j])
			}
		}
	}
}

func TestNaturalPreservesAspectRatio(t *testing.T) {
	bounds := scene.Rect{X: 0, Y: 0, W: 1000, H: 600}
	sizes := []scene.Size{{W: 400, H: 200}, {W: 300, H: 600}}

	rects := Natural(sizes, bounds, false)
	for i, r := range rects {
		want := sizes[i].W / sizes[i].H
		got := r.W / r.H
		if math.Abs(got-want) > 0.001 {
			t.Errorf("rect %d aspect %f, want %f", i, got, want)
		}
	}
}

func TestNaturalNeverScalesUpByDefault(t *testing.T) {
	bounds := scene.Rect{X: 0, Y: 0, W: 1000, H: 600}
	sizes := []scene.Size{{W: 120, H: 90}}

	rects := Natural(sizes, bounds, false)
	if rects[0].W != 120 || rects[0].H != 90 {
		t.Fatalf("small window should keep intrinsic size, got %+v", rects[0])
	}
	if rects[0].X != (1000-120)/2.0 {
		t.Errorf("window not centered horizontally: %+v", rects[0])
	}

	rects = Natural(sizes, bounds, true)
	if rects[0].W <= 120 {
		t.Errorf("scaleUp should grow the window, got %+v", rects[0])
	}
}

func TestNaturalDeterministicForInputOrder(t *testing.T) {
	bounds := scene.Rect{X: 0, Y: 100, W: 800, H: 500}
	sizes := []scene.Size{{W: 640, H: 480}, {W: 200, H: 400}, {W: 800, H: 100}}

	first := Natural(sizes, bounds, false)
	second := Natural(sizes, bounds, false)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("rect %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestNaturalRowBalancing(t *testing.T) {
	bounds := scene.Rect{X: 0, Y: 0, W: 900, H: 600}
	sizes := make([]scene.Size, 5)
	for i := range sizes {
		sizes[i] = scene.Size{W: 900, H: 600}
	}

	// 5 windows round to 2 rows: 3 on the first, 2 on the second.
	rects := Natural(sizes, bounds, false)
	topRow := 0
	for _, r := range rects {
		if r.Y < 300 {
			topRow++
		}
	}
	if topRow != 3 {
		t.Fatalf("expected 3 windows in the top row, got %d", topRow)
	}
}

func TestNaturalEmptyInput(t *testing.T) {
	if rects := Natural(nil, scene.Rect{W: 100, H: 100}, false); rects != nil {
		t.Fatalf("expected nil for empty input, got %v", rects)
	}
}

func overlaps(a, b scene.Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}
