// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/memscene/genie.go
// Summary: Recording genie effect; the in-memory engine does not deform pixels.

package memscene

import (
	"sync"

	"github.com/stratawm/strata/scene"
)

// Genie records the destination and apply state of a minimize deformation
// so callers and tests can observe the requested effect.
type Genie struct {
	mu      sync.Mutex
	layer   *Layer
	dest    scene.Rect
	applied bool
}

func (g *Genie) SetDestination(r scene.Rect) {
	g.mu.Lock()
	g.dest = r
	g.mu.Unlock()
}

func (g *Genie) Apply() {
	g.mu.Lock()
	g.applied = true
	g.mu.Unlock()
}

func (g *Genie) Release() {
	g.mu.Lock()
	g.applied = false
	g.mu.Unlock()
}

// Destination returns the most recent target rectangle.
func (g *Genie) Destination() scene.Rect {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dest
}

// Applied reports whether the effect is currently active.
func (g *Genie) Applied() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.applied
}
