// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/windowview.go
// Summary: Per-window presentation wrapper (layer + genie effect) and the façade's view registry.

package workspace

import (
	"github.com/stratawm/strata/scene"
	"github.com/stratawm/strata/shell"
)

// WindowView owns the scene resources of one window: its base layer and the
// genie effect used by the minimize animation. Views are created lazily and
// live until RemoveWindowView.
type WindowView struct {
	Surface     shell.SurfaceID
	WindowLayer scene.Layer
	Genie       scene.GenieEffect
}

// Minimize squeezes the window toward the dock slot rectangle.
func (v *WindowView) Minimize(target scene.Rect) {
	v.Genie.SetDestination(target)
	v.Genie.Apply()
}

// Unminimize releases the genie distortion, expanding from the slot bounds.
func (v *WindowView) Unminimize(from scene.Rect) {
	v.Genie.SetDestination(from)
	v.Genie.Release()
}

// GetOrAddWindowView returns the view for a known window, creating it on
// first use. Windows ingested without a layer get one here, attached under
// the windows container. Returns nil for unknown surfaces.
func (w *Workspace) GetOrAddWindowView(id shell.SurfaceID) *WindowView {
	w.viewsMu.Lock()
	defer w.viewsMu.Unlock()

	if view, ok := w.windowViews[id]; ok {
		return view
	}

	w.mu.Lock()
	win, ok := w.model.windowFor(id)
	if !ok {
		w.mu.Unlock()
		return nil
	}
	if win.Layer == nil {
		layer := w.engine.NewLayer()
		layer.SetKey("window_" + string(id))
		layer.SetPosition(scene.Point{X: win.X, Y: win.Y}, nil)
		layer.SetSize(scene.Size{W: win.W, H: win.H}, nil)
		win.Layer = layer
	}
	layer := win.Layer
	w.mu.Unlock()

	if layer.Parent() == nil {
		w.engine.AddLayerTo(layer, w.windowsLayer)
	}
	view := &WindowView{
		Surface:     id,
		WindowLayer: layer,
		Genie:       w.engine.NewGenieEffect(layer),
	}
	w.windowViews[id] = view
	return view
}

// GetWindowView returns the registered view for id, if any.
func (w *Workspace) GetWindowView(id shell.SurfaceID) (*WindowView, bool) {
	w.viewsMu.RLock()
	defer w.viewsMu.RUnlock()
	view, ok := w.windowViews[id]
	return view, ok
}

// SetWindowView registers a view built elsewhere, replacing any previous
// registration for the surface.
func (w *Workspace) SetWindowView(id shell.SurfaceID, view *WindowView) {
	w.viewsMu.Lock()
	defer w.viewsMu.Unlock()
	w.windowViews[id] = view
}

// RemoveWindowView drops the registration. The caller is responsible for
// removing the layer from the scene when the surface is gone.
func (w *Workspace) RemoveWindowView(id shell.SurfaceID) {
	w.viewsMu.Lock()
	defer w.viewsMu.Unlock()
	delete(w.windowViews, id)
}
