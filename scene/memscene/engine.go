// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/memscene/engine.go
// Summary: In-memory scene engine backing tests, the simulator, and headless runs.
// Usage: Construct with New, hand it to workspace.New, drive the clock with Update.
// Notes: Properties snap to their targets when a transition elapses; there is no
// interpolation, rendering stays an external concern.

package memscene

import (
	"sync"

	"github.com/stratawm/strata/scene"
)

// Engine implements scene.Engine with plain in-memory layers. Immediate
// property sets apply synchronously; transitioned sets queue until Update
// has advanced the clock past their delay and duration.
type Engine struct {
	mu      sync.Mutex
	roots   []*Layer
	layers  []*Layer
	pending []*animation
}

// New returns an empty engine with a clock at zero.
func New() *Engine {
	return &Engine{}
}

// NewLayer creates a detached layer with scale 1 and opacity 1.
func (e *Engine) NewLayer() scene.Layer {
	l := &Layer{
		eng:     e,
		scale:   scene.Point{X: 1, Y: 1},
		opacity: 1.0,
	}
	e.mu.Lock()
	e.layers = append(e.layers, l)
	e.mu.Unlock()
	return l
}

// AddLayer attaches a layer to the scene root.
func (e *Engine) AddLayer(l scene.Layer) {
	ml := l.(*Layer)
	e.mu.Lock()
	e.detachLocked(ml)
	ml.parent = nil
	e.roots = append(e.roots, ml)
	e.mu.Unlock()
}

// AddLayerTo attaches child under parent keeping its local position.
func (e *Engine) AddLayerTo(child, parent scene.Layer) {
	c, p := child.(*Layer), parent.(*Layer)
	e.mu.Lock()
	e.detachLocked(c)
	c.parent = p
	p.children = append(p.children, c)
	e.mu.Unlock()
}

// AddLayerPositioned attaches child under parent, adjusting the child's
// local position so its scene position does not move.
func (e *Engine) AddLayerPositioned(child, parent scene.Layer) {
	c, p := child.(*Layer), parent.(*Layer)
	e.mu.Lock()
	abs := c.absOriginLocked()
	parentAbs := p.absOriginLocked()
	e.detachLocked(c)
	c.parent = p
	p.children = append(p.children, c)
	c.position = scene.Point{X: abs.X - parentAbs.X, Y: abs.Y - parentAbs.Y}
	e.mu.Unlock()
}

// NewGenieEffect returns a recording genie bound to the layer.
func (e *Engine) NewGenieEffect(l scene.Layer) scene.GenieEffect {
	return &Genie{layer: l.(*Layer)}
}

// ApplyChanges applies staged changes as one group. With a nil transition
// every change lands synchronously; otherwise the group completes together
// once the clock passes the transition.
func (e *Engine) ApplyChanges(changes []scene.Change, t *scene.Transition) scene.Animation {
	staged := make([]*stagedChange, 0, len(changes))
	for _, c := range changes {
		if sc, ok := c.(*stagedChange); ok {
			staged = append(staged, sc)
		}
	}
	apply := func() []func() {
		var hooks []func()
		for _, sc := range staged {
			hooks = append(hooks, sc.applyLocked()...)
		}
		return hooks
	}
	if instant(t) {
		e.mu.Lock()
		hooks := apply()
		e.mu.Unlock()
		runAll(hooks)
		return doneAnimation{}
	}
	return e.schedule(t, apply)
}

// Update advances the clock by dt seconds and completes every pending
// animation whose delay and duration have elapsed. Callbacks run on the
// caller's goroutine, in scheduling order. Update(0) is a no-op flush;
// reparenting and immediate sets are always current.
func (e *Engine) Update(dt float64) {
	type firing struct {
		starts   []func()
		hooks    []func()
		finishes []func()
	}
	var fire []firing

	e.mu.Lock()
	remaining := e.pending[:0]
	for _, a := range e.pending {
		starts, hooks, finishes, done := a.advance(dt)
		if !done {
			remaining = append(remaining, a)
		}
		if len(starts) > 0 || len(hooks) > 0 || len(finishes) > 0 {
			fire = append(fire, firing{starts, hooks, finishes})
		}
	}
	e.pending = remaining
	e.mu.Unlock()

	for _, f := range fire {
		runAll(f.starts)
		runAll(f.hooks)
		runAll(f.finishes)
	}
}

// Roots returns the root layers in attach order.
func (e *Engine) Roots() []*Layer {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Layer, len(e.roots))
	copy(out, e.roots)
	return out
}

// Layers returns every live layer, attached or not.
func (e *Engine) Layers() []*Layer {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Layer, 0, len(e.layers))
	for _, l := range e.layers {
		if !l.removed {
			out = append(out, l)
		}
	}
	return out
}

// PendingAnimations reports how many scheduled transitions have not
// finished yet.
func (e *Engine) PendingAnimations() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

func (e *Engine) schedule(t *scene.Transition, apply func() []func()) *animation {
	a := &animation{
		delay:    t.Delay.Seconds(),
		duration: t.Duration.Seconds(),
		apply:    apply,
	}
	e.mu.Lock()
	e.pending = append(e.pending, a)
	e.mu.Unlock()
	return a
}

func (e *Engine) detachLocked(l *Layer) {
	if l.parent != nil {
		l.parent.children = removeLayer(l.parent.children, l)
		l.parent = nil
		return
	}
	e.roots = removeLayer(e.roots, l)
}

func removeLayer(list []*Layer, l *Layer) []*Layer {
	for i, c := range list {
		if c == l {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func instant(t *scene.Transition) bool {
	return t == nil || (t.Duration <= 0 && t.Delay <= 0)
}

func runAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
