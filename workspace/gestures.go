// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/gestures.go
// Summary: Show-all and show-desktop gesture controllers: per-mille accumulators with hysteresis.
// Notes: Mid-gesture updates track 1:1 with no transition; the end event settles the state and
//        animates the remainder.

package workspace

import (
	"math"

	"github.com/stratawm/strata/scene"
	"github.com/stratawm/strata/shell"
)

// gestureScale converts a continuous delta into per-mille counter steps.
const gestureScale = 1000.0

// settleGesture applies the end-of-gesture hysteresis to a raw counter.
// From the on state the gesture stays on at or above the off threshold;
// from the off state it turns on at or above the on threshold. The counter
// snaps to 0 or 1000.
func (w *Workspace) settleGesture(counter int32, settled bool) (int32, bool) {
	if settled {
		if counter >= w.tun.offThreshold {
			return gestureScale, true
		}
		return 0, false
	}
	if counter >= w.tun.onThreshold {
		return gestureScale, true
	}
	return 0, false
}

// exposeWindow is the per-window data the gesture paths need, copied out of
// the model so no lock is held while layers animate.
type exposeWindow struct {
	id         shell.SurfaceID
	x, y, w, h float64
	title      string
	layer      scene.Layer
}

// exposeWindows returns the non-minimized windows in stacking order.
func (w *Workspace) exposeWindows() []exposeWindow {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]exposeWindow, 0, len(w.model.windowOrder))
	for _, id := range w.model.windowOrder {
		win, ok := w.model.windowFor(id)
		if !ok || win.Minimized {
			continue
		}
		out = append(out, exposeWindow{
			id:    id,
			x:     win.X,
			y:     win.Y,
			w:     win.W,
			h:     win.H,
			title: win.Title,
			layer: win.Layer,
		})
	}
	return out
}

// ExposeShowAll advances the show-all gesture. delta is the increment since
// the previous call; endGesture marks the gesture's final event and settles
// the state through hysteresis.
func (w *Workspace) ExposeShowAll(delta float64, endGesture bool) {
	counter := w.showAllGesture.Load() + int32(delta*gestureScale)
	if endGesture {
		var settled bool
		counter, settled = w.settleGesture(counter, w.showAll.Load())
		w.showAll.Store(settled)
	}
	w.showAllGesture.Store(counter)

	progress := clampFloat(float64(counter)/gestureScale, 0, 1)

	bounds := w.workspaceLayer.RenderBounds()
	exposeArea := scene.Rect{
		X: 0,
		Y: w.tun.selectorHeight,
		W: bounds.W,
		H: bounds.H - w.tun.paddingTop - w.tun.paddingBottom - w.tun.selectorHeight,
	}

	windows := w.exposeWindows()
	bin := w.exposeLayout(windows, exposeArea)

	// Easing shapes perceived velocity only; the settled end states are
	// still exactly 0 and 1.
	eased := math.Pow(progress, w.tun.showAllExponent)

	var transition *scene.Transition
	if endGesture {
		transition = scene.EaseIn(w.tun.showAllDuration)
	}

	selectorY := lerp(-200, 0, eased)
	selectorOpacity := lerp(0, 1, eased)
	w.workspaceSelector.Layer().SetPosition(scene.Point{X: 0, Y: selectorY}, transition)
	w.workspaceSelector.Layer().SetOpacity(selectorOpacity, transition)

	dockY := lerp(w.tun.dockHiddenY, w.tun.dockExposeY, eased)
	w.dock.ViewLayer().SetPosition(scene.Point{X: 0, Y: dockY}, transition)

	state := SelectorState{}
	changes := make([]scene.Change, 0, 2*len(windows))
	index := 0
	for _, win := range windows {
		rect, ok := bin[win.id]
		if !ok || win.layer == nil {
			continue
		}
		scale := math.Min(math.Min(rect.W/win.w, rect.H/win.h), 1.0)
		state.Rects = append(state.Rects, WindowSelection{
			X:       rect.X,
			Y:       rect.Y,
			W:       win.w * scale,
			H:       win.h * scale,
			Visible: true,
			Title:   win.title,
			Index:   index,
		})
		index++

		animScale := lerp(1.0, scale, eased)
		x := lerp(win.x, rect.X, eased)
		y := lerp(win.y, rect.Y, eased)
		changes = append(changes,
			win.layer.ChangePosition(scene.Point{X: x, Y: y}),
			win.layer.ChangeScale(scene.Point{X: animScale, Y: animScale}),
		)
	}
	w.engine.ApplyChanges(changes, transition)
	w.windowSelector.UpdateState(state)

	if endGesture {
		w.exposeMu.Lock()
		w.exposeBin = make(map[shell.SurfaceID]scene.Rect)
		w.exposeMu.Unlock()
	}
}

// exposeLayout returns the memoized exposé slots, computing them on the
// first call of a gesture. Windows that appear mid-gesture have no slot and
// are left alone until the next gesture.
func (w *Workspace) exposeLayout(windows []exposeWindow, area scene.Rect) map[shell.SurfaceID]scene.Rect {
	w.exposeMu.Lock()
	defer w.exposeMu.Unlock()

	if len(w.exposeBin) == 0 {
		sizes := make([]scene.Size, len(windows))
		for i, win := range windows {
			sizes[i] = scene.Size{W: win.w, H: win.h}
		}
		rects := w.layoutFn(sizes, area, false)
		for i, win := range windows {
			if i < len(rects) {
				w.exposeBin[win.id] = rects[i]
			}
		}
	}

	out := make(map[shell.SurfaceID]scene.Rect, len(w.exposeBin))
	for id, rect := range w.exposeBin {
		out[id] = rect
	}
	return out
}

// ExposeShowDesktop advances the show-desktop gesture, sliding every
// non-minimized window toward fully off-screen at full progress.
func (w *Workspace) ExposeShowDesktop(delta float64, endGesture bool) {
	counter := w.showDesktopGesture.Load() + int32(delta*gestureScale)
	if endGesture {
		var settled bool
		counter, settled = w.settleGesture(counter, w.showDesktop.Load())
		w.showDesktop.Store(settled)
	}
	w.showDesktopGesture.Store(counter)

	progress := clampFloat(float64(counter)/gestureScale, 0, 1)

	var transition *scene.Transition
	if endGesture {
		transition = scene.EaseIn(w.tun.showDesktopDuration)
	}

	for _, win := range w.exposeWindows() {
		if win.layer == nil {
			continue
		}
		x := lerp(win.x, -win.w, progress)
		y := lerp(win.y, -win.h, progress)
		win.layer.SetPosition(scene.Point{X: x, Y: y}, transition)
	}
}
