// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/shell.go
// Summary: Backend-neutral window element abstraction consumed by the workspace core.
// Usage: The compositor side constructs Wayland or X11 elements; the core never
// sees protocol types.
// Notes: WindowElement is a closed set. The backend of an element is fixed at
// construction and drives backend-specific behavior such as close requests.

package shell

// SurfaceID identifies a mapped surface for the lifetime of its window.
type SurfaceID string

// Backend names the protocol family a window element belongs to.
type Backend int

const (
	BackendWayland Backend = iota
	BackendX11
)

func (b Backend) String() string {
	switch b {
	case BackendWayland:
		return "wayland"
	case BackendX11:
		return "x11"
	default:
		return "unknown"
	}
}

// Frame is the per-pass geometry and metadata report for a mapped window.
type Frame struct {
	X, Y, W, H float64
	Title      string
	Fullscreen bool
	Maximized  bool
}

// WindowElement is a live handle on a mapped toplevel window. The interface
// is sealed; the only implementations are WaylandWindow and X11Window, so
// backend dispatch is total.
type WindowElement interface {
	SurfaceID() SurfaceID
	// AppID returns the application id the client reported, or "" when the
	// toplevel has not identified itself yet.
	AppID() string
	Title() string
	Backend() Backend
	// RequestClose asks the client to close the window. Wayland elements
	// send xdg_toplevel.close; X11 elements close through the X connection.
	RequestClose() error

	sealedElement()
}
