// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/tcellscene/draw.go
// Summary: Render pass mapping scene rectangles to bordered terminal boxes.
// Notes: Opacity multiplies down the tree; the terminal has no blending, so
// translucent subtrees render dim and near-invisible ones are pruned.

package tcellscene

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/stratawm/strata/scene/memscene"
)

// boxCharset is the single-line border set: h, v, tl, tr, bl, br.
var boxCharset = [6]rune{'─', '│', '┌', '┐', '└', '┘'}

// minVisibleOpacity is the cutoff below which a subtree is not drawn.
const minVisibleOpacity = 0.05

type styleKey struct {
	fg  tcell.Color
	dim bool
}

func (v *View) style(fg tcell.Color, dim bool) tcell.Style {
	key := styleKey{fg: fg, dim: dim}
	if st, ok := v.styleCache[key]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(fg)
	if dim {
		st = st.Dim(true)
	}
	v.styleCache[key] = st
	return st
}

// draw projects the layer tree onto the terminal.
func (v *View) draw() {
	v.mu.Lock()
	sceneW, sceneH := v.sceneW, v.sceneH
	v.mu.Unlock()

	w, h := v.screen.Size()
	if w <= 0 || h <= 0 || sceneW <= 0 || sceneH <= 0 {
		return
	}
	sx := float64(w) / sceneW
	sy := float64(h) / sceneH

	v.screen.Clear()
	for _, root := range v.src.Roots() {
		v.drawLayer(root, sx, sy, 1.0)
	}
	v.screen.Show()
}

// drawLayer draws one layer box and recurses into its children. opacity is
// the accumulated product of ancestor opacities.
func (v *View) drawLayer(l *memscene.Layer, sx, sy, opacity float64) {
	opacity *= l.Opacity()
	if opacity <= minVisibleOpacity {
		return
	}

	b := l.RenderBounds()
	x0 := int(math.Round(b.X * sx))
	y0 := int(math.Round(b.Y * sy))
	x1 := int(math.Round((b.X + b.W) * sx))
	y1 := int(math.Round((b.Y + b.H) * sy))

	if x1-x0 >= 2 && y1-y0 >= 2 {
		st := v.style(layerColor(l.Key()), opacity < 0.999)
		v.drawBox(x0, y0, x1, y1, st)
		v.drawLabel(x0, y0, x1, layerLabel(l), st)
	}

	for _, c := range l.Children() {
		v.drawLayer(c, sx, sy, opacity)
	}
}

// drawBox draws a single-line border. tcell clips cells outside the screen.
func (v *View) drawBox(x0, y0, x1, y1 int, st tcell.Style) {
	right, bottom := x1-1, y1-1
	for x := x0 + 1; x < right; x++ {
		v.screen.SetContent(x, y0, boxCharset[0], nil, st)
		v.screen.SetContent(x, bottom, boxCharset[0], nil, st)
	}
	for y := y0 + 1; y < bottom; y++ {
		v.screen.SetContent(x0, y, boxCharset[1], nil, st)
		v.screen.SetContent(right, y, boxCharset[1], nil, st)
	}
	v.screen.SetContent(x0, y0, boxCharset[2], nil, st)
	v.screen.SetContent(right, y0, boxCharset[3], nil, st)
	v.screen.SetContent(x0, bottom, boxCharset[4], nil, st)
	v.screen.SetContent(right, bottom, boxCharset[5], nil, st)
}

// drawLabel centers the label on the top border, trimming to the box width.
func (v *View) drawLabel(x0, y0, x1 int, label string, st tcell.Style) {
	inner := x1 - x0 - 2
	if label == "" || inner < 3 {
		return
	}
	text := runewidth.Truncate(" "+label+" ", inner, "…")
	col := x0 + 1 + (inner-runewidth.StringWidth(text))/2
	for _, ch := range text {
		v.screen.SetContent(col, y0, ch, nil, st.Bold(true))
		col += runewidth.RuneWidth(ch)
	}
}

func layerLabel(l *memscene.Layer) string {
	if c := l.Content(); c != nil {
		return c.String()
	}
	return l.Key()
}

// layerColor picks a border color from the key vocabulary of the workspace
// views so window boxes stand apart from the chrome around them.
func layerColor(key string) tcell.Color {
	switch {
	case strings.HasPrefix(key, "window_selector"), strings.HasPrefix(key, "workspace_selector"):
		return tcell.ColorYellow
	case strings.HasPrefix(key, "window_"):
		return tcell.ColorWhite
	case strings.HasPrefix(key, "dock"):
		return tcell.ColorTeal
	case key == "app_switcher":
		return tcell.ColorFuchsia
	case key == "dnd_view":
		return tcell.ColorGreen
	default:
		return tcell.ColorGray
	}
}
