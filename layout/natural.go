// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/natural.go
// Summary: Natural exposé layout: tiles windows into balanced rows of aspect-fit cells.
// Usage: Pure function; the gesture controller calls it once per gesture and memoizes.

package layout

import (
	"math"

	"github.com/stratawm/strata/scene"
)

// Func assigns one rectangle per input size inside bounds. Implementations
// must be pure and deterministic for a given input order; ties are broken
// by input order. scaleUp allows results larger than the intrinsic size.
type Func func(sizes []scene.Size, bounds scene.Rect, scaleUp bool) []scene.Rect

// Natural tiles n windows into round(sqrt(n)) rows. Rows are filled in
// input order, earlier rows taking the remainder, and every window is
// aspect-fit and centered inside its cell. Output rectangles never overlap
// and stay inside bounds.
func Natural(sizes []scene.Size, bounds scene.Rect, scaleUp bool) []scene.Rect {
	n := len(sizes)
	if n == 0 {
		return nil
	}

	rows := int(math.Round(math.Sqrt(float64(n))))
	if rows < 1 {
		rows = 1
	}
	if rows > n {
		rows = n
	}

	perRow := n / rows
	extra := n % rows
	rowHeight := bounds.H / float64(rows)

	out := make([]scene.Rect, 0, n)
	next := 0
	for row := 0; row < rows; row++ {
		cols := perRow
		if row < extra {
			cols++
		}
		if cols == 0 {
			continue
		}
		cellW := bounds.W / float64(cols)
		rowY := bounds.Y + float64(row)*rowHeight
		for col := 0; col < cols; col++ {
			cell := scene.Rect{
				X: bounds.X + float64(col)*cellW,
				Y: rowY,
				W: cellW,
				H: rowHeight,
			}
			out = append(out, fitInCell(sizes[next], cell, scaleUp))
			next++
		}
	}
	return out
}

// fitInCell scales the window to the cell preserving aspect ratio and
// centers it. Without scaleUp the window keeps its intrinsic size when it
// already fits.
func fitInCell(size scene.Size, cell scene.Rect, scaleUp bool) scene.Rect {
	if size.Empty() {
		return scene.Rect{X: cell.Center().X, Y: cell.Center().Y}
	}
	scale := math.Min(cell.W/size.W, cell.H/size.H)
	if !scaleUp && scale > 1.0 {
		scale = 1.0
	}
	w := size.W * scale
	h := size.H * scale
	return scene.Rect{
		X: cell.X + (cell.W-w)/2,
		Y: cell.Y + (cell.H-h)/2,
		W: w,
		H: h,
	}
}
