// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/dock.go
// Summary: Dock strip: launcher and running-app slots plus drawers for minimized windows.
// Notes: The gesture controller owns the strip's position; the dock only manages its contents.

package workspace

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/stratawm/strata/config"
	"github.com/stratawm/strata/scene"
	"github.com/stratawm/strata/shell"
)

// DockModel is the dock's derived render state. Focus is the pointer's x
// position over the strip for icon magnification, -500 when idle.
type DockModel struct {
	Launchers   []Application
	RunningApps []Application
	Minimized   []MinimizedRef
	Width       int
	Focus       float64
}

func newDockModel() DockModel {
	return DockModel{Focus: -500}
}

// DockView subscribes to workspace snapshots and rebuilds its slot layers:
// launchers from config, running apps in first-seen order, then one drawer
// per minimized window. Drawers are handed to the minimize flow for
// reparenting and collapse animations.
type DockView struct {
	eng        scene.Engine
	drawerSize float64

	mu         sync.Mutex
	model      DockModel
	viewLayer  scene.Layer
	itemLayers map[string]scene.Layer
	drawers    map[shell.SurfaceID]scene.Layer

	active atomic.Bool
}

func NewDockView(eng scene.Engine, cfg config.Config) *DockView {
	layer := eng.NewLayer()
	layer.SetKey("dock")
	eng.AddLayer(layer)

	model := newDockModel()
	for _, id := range cfg.GetStringSlice("dock", "launchers") {
		model.Launchers = append(model.Launchers, Application{ID: id})
	}

	d := &DockView{
		eng:        eng,
		drawerSize: cfg.GetFloat("dock", "drawer_size", 130),
		model:      model,
		viewLayer:  layer,
		itemLayers: make(map[string]scene.Layer),
		drawers:    make(map[shell.SurfaceID]scene.Layer),
	}
	d.active.Store(true)
	d.relayoutLocked()
	return d
}

func (d *DockView) ViewLayer() scene.Layer {
	return d.viewLayer
}

// Alive reports whether the dock participates in hit testing.
func (d *DockView) Alive() bool {
	return d.active.Load()
}

// OnEvent consumes a workspace snapshot: refreshes launcher records with
// resolved app info, derives the running list and mirrors minimized state.
func (d *DockView) OnEvent(snap Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, launcher := range d.model.Launchers {
		if app, ok := snap.Apps[launcher.ID]; ok {
			d.model.Launchers[i] = app
		}
	}
	running := make([]Application, 0, len(snap.ZAppOrder))
	for _, id := range snap.ZAppOrder {
		if app, ok := snap.Apps[id]; ok {
			running = append(running, app)
		}
	}
	d.model.RunningApps = running
	d.model.Minimized = append([]MinimizedRef(nil), snap.Minimized...)

	d.relayoutLocked()
}

// Model returns a copy of the dock's render state.
func (d *DockView) Model() DockModel {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.model
	out.Launchers = append([]Application(nil), d.model.Launchers...)
	out.RunningApps = append([]Application(nil), d.model.RunningApps...)
	out.Minimized = append([]MinimizedRef(nil), d.model.Minimized...)
	return out
}

// SetFocus records the pointer x over the strip; -500 marks idle.
func (d *DockView) SetFocus(x float64) {
	d.mu.Lock()
	d.model.Focus = x
	d.mu.Unlock()
}

// ContainsPoint hit-tests the strip in scene coordinates.
func (d *DockView) ContainsPoint(x, y float64) bool {
	return d.viewLayer.RenderBounds().Contains(x, y)
}

// AddWindowDrawer allocates a drawer slot for a minimizing window at the end
// of the strip. The slot reserves its rect immediately; the width expansion
// animates in. Returns the drawer layer and the expansion animation.
func (d *DockView) AddWindowDrawer(win *Window) (scene.Layer, scene.Animation) {
	d.mu.Lock()
	slot := len(d.dockItemsLocked()) + len(d.drawers)

	layer := d.eng.NewLayer()
	layer.SetKey("dock_drawer_" + string(win.Surface))
	layer.SetContent(labelContent(win.Title))
	d.drawers[win.Surface] = layer
	d.mu.Unlock()

	d.eng.AddLayerTo(layer, d.viewLayer)
	layer.SetPosition(scene.Point{X: float64(slot) * d.drawerSize, Y: 0}, nil)
	layer.SetSize(scene.Size{W: 0, H: d.drawerSize}, nil)
	anim := layer.SetSize(scene.Size{W: d.drawerSize, H: d.drawerSize}, scene.EaseOut(300*time.Millisecond))
	return layer, anim
}

// RemoveWindowDrawer releases the drawer slot for an unminimizing window.
// The layer stays in the scene; the caller animates the collapse and removes
// it when done.
func (d *DockView) RemoveWindowDrawer(id shell.SurfaceID) (scene.Layer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	layer, ok := d.drawers[id]
	if ok {
		delete(d.drawers, id)
	}
	return layer, ok
}

// dockItemsLocked is the ordered slot list: launchers first, then running
// apps not already pinned as launchers.
func (d *DockView) dockItemsLocked() []Application {
	items := make([]Application, 0, len(d.model.Launchers)+len(d.model.RunningApps))
	seen := make(map[string]bool)
	for _, app := range d.model.Launchers {
		if !seen[app.ID] {
			seen[app.ID] = true
			items = append(items, app)
		}
	}
	for _, app := range d.model.RunningApps {
		if !seen[app.ID] {
			seen[app.ID] = true
			items = append(items, app)
		}
	}
	return items
}

// relayoutLocked rebuilds the slot layers and resizes the strip.
func (d *DockView) relayoutLocked() {
	items := d.dockItemsLocked()

	wanted := make(map[string]bool, len(items))
	for _, app := range items {
		wanted[app.ID] = true
	}
	for id, layer := range d.itemLayers {
		if !wanted[id] {
			layer.Remove()
			delete(d.itemLayers, id)
		}
	}

	for i, app := range items {
		layer, ok := d.itemLayers[app.ID]
		if !ok {
			layer = d.eng.NewLayer()
			layer.SetKey("dock_app_" + app.ID)
			d.eng.AddLayerTo(layer, d.viewLayer)
			d.itemLayers[app.ID] = layer
		}
		layer.SetContent(imageContent{name: app.ID, img: app.Icon})
		layer.SetPosition(scene.Point{X: float64(i) * d.drawerSize, Y: 0}, nil)
		layer.SetSize(scene.Size{W: d.drawerSize, H: d.drawerSize}, nil)
	}

	// Drawers keep their insertion order after the app slots.
	slot := len(items)
	for _, ref := range d.model.Minimized {
		layer, ok := d.drawers[ref.Surface]
		if !ok {
			continue
		}
		layer.SetPosition(scene.Point{X: float64(slot) * d.drawerSize, Y: 0}, nil)
		slot++
	}

	width := float64(slot) * d.drawerSize
	d.model.Width = int(width)
	d.viewLayer.SetSize(scene.Size{W: width, H: d.drawerSize}, nil)
}
