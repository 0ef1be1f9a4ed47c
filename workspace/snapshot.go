// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/snapshot.go
// Summary: Immutable snapshot of the workspace model, broadcast to views and serialized to disk.
// Notes: Slices and structs are copied; decoded icon images are shared, they never mutate.

package workspace

import "github.com/stratawm/strata/shell"

// WindowRef is the published form of a window. It carries no layer or shell
// handles so snapshots stay safe to hold beyond the lock.
type WindowRef struct {
	Surface    shell.SurfaceID `json:"surface"`
	AppID      string          `json:"app_id"`
	Title      string          `json:"title,omitempty"`
	X          float64         `json:"x"`
	Y          float64         `json:"y"`
	W          float64         `json:"w"`
	H          float64         `json:"h"`
	Fullscreen bool            `json:"fullscreen,omitempty"`
	Maximized  bool            `json:"maximized,omitempty"`
	Minimized  bool            `json:"minimized,omitempty"`
}

// MinimizedRef identifies one dock-parked window.
type MinimizedRef struct {
	Surface shell.SurfaceID `json:"surface"`
	Title   string          `json:"title,omitempty"`
}

// Snapshot is the event type broadcast after every published mutation and
// the JSON document SnapshotStore persists. Version increases by one per
// publish, so observers can discard out-of-order deliveries.
type Snapshot struct {
	Apps            map[string]Application        `json:"apps"`
	Windows         map[shell.SurfaceID]WindowRef `json:"windows"`
	ZAppOrder       []string                      `json:"z_app_order"`
	RecentApps      []string                      `json:"recent_apps"`
	WindowOrder     []shell.SurfaceID             `json:"window_order"`
	Minimized       []MinimizedRef                `json:"minimized"`
	CurrentApp      string                        `json:"current_app,omitempty"`
	CurrentAppIndex int                           `json:"current_app_index"`
	Width           int                           `json:"width"`
	Version         uint64                        `json:"version"`
}

// CurrentApplication returns the snapshot's current app record.
func (s Snapshot) CurrentApplication() (Application, bool) {
	if s.CurrentApp == "" {
		return Application{}, false
	}
	app, ok := s.Apps[s.CurrentApp]
	return app, ok
}

// snapshot clones the model into its published form. Callers hold the model
// lock; the result shares nothing mutable with the model.
func (m *Model) snapshot() Snapshot {
	snap := Snapshot{
		Apps:            make(map[string]Application, len(m.apps)),
		Windows:         make(map[shell.SurfaceID]WindowRef, len(m.windows)),
		ZAppOrder:       append([]string(nil), m.zAppOrder...),
		RecentApps:      append([]string(nil), m.recentApps...),
		WindowOrder:     append([]shell.SurfaceID(nil), m.windowOrder...),
		Minimized:       make([]MinimizedRef, 0, len(m.minimized)),
		CurrentAppIndex: m.currentApp,
		Width:           m.width,
		Version:         m.version,
	}
	for id, app := range m.apps {
		snap.Apps[id] = *app
	}
	for id, win := range m.windows {
		snap.Windows[id] = WindowRef{
			Surface:    win.Surface,
			AppID:      win.AppID,
			Title:      win.Title,
			X:          win.X,
			Y:          win.Y,
			W:          win.W,
			H:          win.H,
			Fullscreen: win.Fullscreen,
			Maximized:  win.Maximized,
			Minimized:  win.Minimized,
		}
	}
	for _, mw := range m.minimized {
		title := ""
		if win, ok := m.windows[mw.Surface]; ok {
			title = win.Title
		}
		snap.Minimized = append(snap.Minimized, MinimizedRef{Surface: mw.Surface, Title: title})
	}
	if id, ok := m.currentAppID(); ok {
		snap.CurrentApp = id
	}
	return snap
}
