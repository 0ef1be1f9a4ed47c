// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/model.go
// Summary: Workspace data model: application/window caches, z-order, MRU and minimized lists.
// Notes: Model methods are not goroutine safe. The Workspace façade serializes all access.

package workspace

import (
	"image"

	"github.com/stratawm/strata/scene"
	"github.com/stratawm/strata/shell"
)

// Application is the per-app record kept across ingests. Identity is the app
// id. Name and IconPath stay empty until desktop-entry resolution succeeds;
// Icon stays nil. Applications are never deleted, only enriched.
type Application struct {
	ID       string      `json:"id"`
	Name     string      `json:"name,omitempty"`
	IconPath string      `json:"icon_path,omitempty"`
	Icon     image.Image `json:"-"`
}

// Window is the per-surface record kept across ingests. Identity is the
// surface id. Layer and Element are presentation/shell handles owned by
// their respective subsystems; the model only references them.
type Window struct {
	Surface    shell.SurfaceID
	AppID      string
	Title      string
	X, Y, W, H float64
	Fullscreen bool
	Maximized  bool
	Minimized  bool

	Layer   scene.Layer
	Element shell.WindowElement
}

// MinimizedWindow pairs a minimized surface with its shell element so the
// dock can restore or close it without a cache lookup.
type MinimizedWindow struct {
	Surface shell.SurfaceID
	Element shell.WindowElement
}

// WindowEntry is one window report from the shell layer, consumed by the
// ingest resync. Frame carries the latest geometry and title.
type WindowEntry struct {
	Element shell.WindowElement
	Layer   scene.Layer
	Frame   shell.Frame
}

// Model aggregates everything the views observe. The caches (apps, windows)
// persist across ingests so resolved app info and window flags survive a
// resync; the order lists are rebuilt on every ingest.
type Model struct {
	apps       map[string]*Application
	windows    map[shell.SurfaceID]*Window
	appWindows map[string][]shell.SurfaceID

	// zAppOrder is append-only first-seen order and defines app indices.
	// recentApps is MRU, front = most recent. windowOrder is the current
	// stacking order, rebuilt each ingest.
	zAppOrder   []string
	recentApps  []string
	windowOrder []shell.SurfaceID
	minimized   []MinimizedWindow

	currentApp int
	width      int
	version    uint64
}

func newModel() *Model {
	return &Model{
		apps:       make(map[string]*Application),
		windows:    make(map[shell.SurfaceID]*Window),
		appWindows: make(map[string][]shell.SurfaceID),
	}
}

// ingest resynchronizes the model from a full window list in stacking order.
// Entries without a surface or an app id are skipped. The current app index
// follows the last processed entry; a pass that processes nothing leaves it
// untouched. Returns the app ids that still need icon resolution,
// de-duplicated.
func (m *Model) ingest(entries []WindowEntry) []string {
	m.zAppOrder = nil
	m.windowOrder = nil
	m.appWindows = make(map[string][]shell.SurfaceID)

	var wantIcons []string
	requested := make(map[string]bool)

	for _, e := range entries {
		if e.Element == nil {
			continue
		}
		id := e.Element.SurfaceID()
		if id == "" {
			continue
		}
		appID := e.Element.AppID()
		if appID == "" {
			continue
		}

		win, ok := m.windows[id]
		if !ok {
			win = &Window{Surface: id}
		}
		if e.Layer != nil {
			win.Layer = e.Layer
		}
		win.AppID = appID
		win.Element = e.Element
		win.X = e.Frame.X
		win.Y = e.Frame.Y
		win.W = e.Frame.W
		win.H = e.Frame.H
		win.Title = e.Frame.Title
		win.Fullscreen = e.Frame.Fullscreen
		win.Maximized = e.Frame.Maximized

		appIndex := indexOfString(m.zAppOrder, appID)
		if appIndex < 0 {
			m.zAppOrder = append(m.zAppOrder, appID)
			appIndex = len(m.zAppOrder) - 1
		}
		if indexOfString(m.recentApps, appID) < 0 {
			m.recentApps = append([]string{appID}, m.recentApps...)
		}

		app, ok := m.apps[appID]
		if !ok {
			app = &Application{ID: appID}
			m.apps[appID] = app
		}

		m.appWindows[appID] = append(m.appWindows[appID], id)
		m.windows[id] = win
		m.windowOrder = append(m.windowOrder, id)

		if app.Icon == nil && !requested[appID] {
			requested[appID] = true
			wantIcons = append(wantIcons, appID)
		}

		m.currentApp = appIndex
	}

	m.retainConsistent()
	return wantIcons
}

// retainConsistent drops MRU entries whose app has no remaining window and
// minimized entries whose window left the stacking order.
func (m *Model) retainConsistent() {
	keptApps := m.recentApps[:0]
	for _, id := range m.recentApps {
		if indexOfString(m.zAppOrder, id) >= 0 {
			keptApps = append(keptApps, id)
		}
	}
	m.recentApps = keptApps

	keptMin := m.minimized[:0]
	for _, mw := range m.minimized {
		if indexOfSurface(m.windowOrder, mw.Surface) >= 0 {
			keptMin = append(keptMin, mw)
		}
	}
	m.minimized = keptMin
}

// updateGeometry patches a cached window in place. This is the per-frame
// path; callers do not publish for it.
func (m *Model) updateGeometry(id shell.SurfaceID, f shell.Frame) bool {
	win, ok := m.windows[id]
	if !ok {
		return false
	}
	win.X = f.X
	win.Y = f.Y
	win.W = f.W
	win.H = f.H
	win.Title = f.Title
	win.Fullscreen = f.Fullscreen
	win.Maximized = f.Maximized
	return true
}

// setMinimized flips the minimized flag and keeps the side list in sync.
// Returns false when the window is unknown or already in the wanted state.
func (m *Model) setMinimized(id shell.SurfaceID, minimized bool) (*Window, bool) {
	win, ok := m.windows[id]
	if !ok || win.Minimized == minimized {
		return nil, false
	}
	win.Minimized = minimized
	if minimized {
		m.minimized = append(m.minimized, MinimizedWindow{Surface: id, Element: win.Element})
	} else {
		kept := m.minimized[:0]
		for _, mw := range m.minimized {
			if mw.Surface != id {
				kept = append(kept, mw)
			}
		}
		m.minimized = kept
	}
	return win, true
}

func (m *Model) windowFor(id shell.SurfaceID) (*Window, bool) {
	win, ok := m.windows[id]
	return win, ok
}

func (m *Model) application(appID string) (*Application, bool) {
	app, ok := m.apps[appID]
	return app, ok
}

// currentAppID resolves the current app index. An empty z-order means no
// current app; the index is never trusted blindly.
func (m *Model) currentAppID() (string, bool) {
	if m.currentApp < 0 || m.currentApp >= len(m.zAppOrder) {
		return "", false
	}
	return m.zAppOrder[m.currentApp], true
}

// appWindowIDs returns a copy of the surface ids belonging to appID, in
// stacking order. Unknown apps yield an empty slice.
func (m *Model) appWindowIDs(appID string) []shell.SurfaceID {
	ids := m.appWindows[appID]
	out := make([]shell.SurfaceID, len(ids))
	copy(out, ids)
	return out
}

func (m *Model) isMinimized(id shell.SurfaceID) bool {
	win, ok := m.windows[id]
	return ok && win.Minimized
}

func indexOfString(list []string, want string) int {
	for i, s := range list {
		if s == want {
			return i
		}
	}
	return -1
}

func indexOfSurface(list []shell.SurfaceID, want shell.SurfaceID) int {
	for i, s := range list {
		if s == want {
			return i
		}
	}
	return -1
}
