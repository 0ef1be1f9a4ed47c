// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/x11.go
// Summary: X11 window element backed by an Xwayland surface handle.

package shell

import "sync"

// XSurface is the handle of an Xwayland-managed window. Close may fail when
// the X connection is gone.
type XSurface interface {
	Close() error
}

// X11Window adapts one Xwayland surface to the workspace core. The app id
// is derived from the window class and does not change after mapping.
type X11Window struct {
	mu      sync.Mutex
	id      SurfaceID
	class   string
	title   string
	surface XSurface
}

// NewX11Window wraps a mapped Xwayland surface with the window class the
// client advertised. surface may be nil in tests; RequestClose is then a
// no-op.
func NewX11Window(id SurfaceID, class string, surface XSurface) *X11Window {
	return &X11Window{id: id, class: class, surface: surface}
}

func (w *X11Window) SurfaceID() SurfaceID { return w.id }

func (w *X11Window) AppID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.class
}

func (w *X11Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *X11Window) Backend() Backend { return BackendX11 }

func (w *X11Window) RequestClose() error {
	if w.surface == nil {
		return nil
	}
	return w.surface.Close()
}

// SetTitle records the title from the most recent property update.
func (w *X11Window) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
}

func (w *X11Window) sealedElement() {}
