// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/geometry.go
// Summary: Basic geometry types shared by the workspace core and scene engines.
// Usage: Points double as per-axis scale factors; rects are top-left anchored.

package scene

// Point is a 2D position in workspace pixels. Layer scale uses the same
// type with X/Y as per-axis factors.
type Point struct {
	X, Y float64
}

// Size is a width/height pair in workspace pixels.
type Size struct {
	W, H float64
}

// Empty reports whether the size has no drawable area.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Size returns the rectangle's extent.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
