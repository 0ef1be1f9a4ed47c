// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/memscene/layer.go
// Summary: Layer state and property setters for the in-memory engine.
// Notes: All state is guarded by the engine mutex; callbacks run unlocked so
// handlers may re-enter layer methods.

package memscene

import "github.com/stratawm/strata/scene"

// Layer holds the retained state of one scene node.
type Layer struct {
	eng *Engine

	key      string
	position scene.Point
	size     scene.Size
	scale    scene.Point
	opacity  float64
	content  scene.Content

	parent   *Layer
	children []*Layer
	removed  bool

	resizeFns []func(scene.Layer)
}

func (l *Layer) SetKey(key string) {
	l.eng.mu.Lock()
	l.key = key
	l.eng.mu.Unlock()
}

func (l *Layer) Key() string {
	l.eng.mu.Lock()
	defer l.eng.mu.Unlock()
	return l.key
}

func (l *Layer) SetPosition(p scene.Point, t *scene.Transition) scene.Animation {
	return l.animate(t, func() []func() {
		l.position = p
		return nil
	})
}

func (l *Layer) SetSize(s scene.Size, t *scene.Transition) scene.Animation {
	return l.animate(t, func() []func() {
		return l.setSizeLocked(s)
	})
}

func (l *Layer) SetScale(s scene.Point, t *scene.Transition) scene.Animation {
	return l.animate(t, func() []func() {
		l.scale = s
		return nil
	})
}

func (l *Layer) SetOpacity(o float64, t *scene.Transition) scene.Animation {
	return l.animate(t, func() []func() {
		l.opacity = o
		return nil
	})
}

func (l *Layer) ChangePosition(p scene.Point) scene.Change {
	return &stagedChange{layer: l, apply: func() []func() {
		l.position = p
		return nil
	}}
}

func (l *Layer) ChangeScale(s scene.Point) scene.Change {
	return &stagedChange{layer: l, apply: func() []func() {
		l.scale = s
		return nil
	}}
}

func (l *Layer) Position() scene.Point {
	l.eng.mu.Lock()
	defer l.eng.mu.Unlock()
	return l.position
}

func (l *Layer) Size() scene.Size {
	l.eng.mu.Lock()
	defer l.eng.mu.Unlock()
	return l.size
}

func (l *Layer) Scale() scene.Point {
	l.eng.mu.Lock()
	defer l.eng.mu.Unlock()
	return l.scale
}

func (l *Layer) Opacity() float64 {
	l.eng.mu.Lock()
	defer l.eng.mu.Unlock()
	return l.opacity
}

// RenderBounds composes ancestor positions with the layer's own scale.
// Ancestor scale does not cascade; the workspace tree never nests scaled
// containers.
func (l *Layer) RenderBounds() scene.Rect {
	l.eng.mu.Lock()
	defer l.eng.mu.Unlock()
	origin := l.absOriginLocked()
	return scene.Rect{
		X: origin.X,
		Y: origin.Y,
		W: l.size.W * l.scale.X,
		H: l.size.H * l.scale.Y,
	}
}

func (l *Layer) Parent() scene.Layer {
	l.eng.mu.Lock()
	defer l.eng.mu.Unlock()
	if l.parent == nil {
		return nil
	}
	return l.parent
}

func (l *Layer) SetContent(c scene.Content) {
	l.eng.mu.Lock()
	l.content = c
	l.eng.mu.Unlock()
}

func (l *Layer) Content() scene.Content {
	l.eng.mu.Lock()
	defer l.eng.mu.Unlock()
	return l.content
}

func (l *Layer) RemoveDrawContent() {
	l.eng.mu.Lock()
	l.content = nil
	l.eng.mu.Unlock()
}

func (l *Layer) OnResize(fn func(scene.Layer)) {
	l.eng.mu.Lock()
	l.resizeFns = append(l.resizeFns, fn)
	l.eng.mu.Unlock()
}

// Remove detaches the layer from its parent and marks it and its subtree
// dead. Pending animations on removed layers still run; their targets are
// simply no longer visible.
func (l *Layer) Remove() {
	l.eng.mu.Lock()
	l.eng.detachLocked(l)
	markRemoved(l)
	l.eng.mu.Unlock()
}

// Removed reports whether Remove was called on the layer or an ancestor.
func (l *Layer) Removed() bool {
	l.eng.mu.Lock()
	defer l.eng.mu.Unlock()
	return l.removed
}

// Children returns the layer's direct sublayers in attach order.
func (l *Layer) Children() []*Layer {
	l.eng.mu.Lock()
	defer l.eng.mu.Unlock()
	out := make([]*Layer, len(l.children))
	copy(out, l.children)
	return out
}

func (l *Layer) animate(t *scene.Transition, apply func() []func()) scene.Animation {
	if instant(t) {
		l.eng.mu.Lock()
		hooks := apply()
		l.eng.mu.Unlock()
		runAll(hooks)
		return doneAnimation{}
	}
	return l.eng.schedule(t, apply)
}

func (l *Layer) setSizeLocked(s scene.Size) []func() {
	if l.size == s {
		return nil
	}
	l.size = s
	hooks := make([]func(), 0, len(l.resizeFns))
	for _, fn := range l.resizeFns {
		fn := fn
		hooks = append(hooks, func() { fn(l) })
	}
	return hooks
}

func (l *Layer) absOriginLocked() scene.Point {
	origin := l.position
	for p := l.parent; p != nil; p = p.parent {
		origin.X += p.position.X
		origin.Y += p.position.Y
	}
	return origin
}

func markRemoved(l *Layer) {
	l.removed = true
	for _, c := range l.children {
		markRemoved(c)
	}
}
