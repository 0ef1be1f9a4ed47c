// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/wayland.go
// Summary: Wayland window element backed by an xdg-toplevel handle.

package shell

import "sync"

// Toplevel is the protocol-side handle of an xdg toplevel. SendClose is a
// fire-and-forget protocol request.
type Toplevel interface {
	SendClose()
}

// WaylandWindow adapts one xdg toplevel to the workspace core. App id and
// title follow the client's most recent commits.
type WaylandWindow struct {
	mu       sync.Mutex
	id       SurfaceID
	appID    string
	title    string
	toplevel Toplevel
}

// NewWaylandWindow wraps a mapped toplevel. toplevel may be nil in tests;
// RequestClose is then a no-op.
func NewWaylandWindow(id SurfaceID, toplevel Toplevel) *WaylandWindow {
	return &WaylandWindow{id: id, toplevel: toplevel}
}

func (w *WaylandWindow) SurfaceID() SurfaceID { return w.id }

func (w *WaylandWindow) AppID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.appID
}

func (w *WaylandWindow) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *WaylandWindow) Backend() Backend { return BackendWayland }

func (w *WaylandWindow) RequestClose() error {
	if w.toplevel != nil {
		w.toplevel.SendClose()
	}
	return nil
}

// SetAppID records the app id from the client's latest commit.
func (w *WaylandWindow) SetAppID(appID string) {
	w.mu.Lock()
	w.appID = appID
	w.mu.Unlock()
}

// SetTitle records the title from the client's latest commit.
func (w *WaylandWindow) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
}

func (w *WaylandWindow) sealedElement() {}
