// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/scene.go
// Summary: Narrow interfaces the workspace core uses to drive a retained scene graph.
// Usage: The core depends only on these; engines (memscene, compositor bindings) implement them.
// Notes: Interpolation and rendering are engine concerns, not part of this contract.

package scene

// Content is an opaque payload a view attaches to a layer. Engines decide
// how to draw it; debug engines may use the string form as a label.
type Content interface {
	String() string
}

// Animation is a handle to an in-flight property change. Callbacks fire on
// the goroutine that advances the engine clock. Both return the handle so
// calls can be chained.
type Animation interface {
	OnStart(fn func()) Animation
	OnFinish(fn func()) Animation
}

// Change is a staged property update produced by a Layer and applied as a
// group through Engine.ApplyChanges, so several layers animate under one
// shared transition.
type Change interface {
	Layer() Layer
}

// Layer is one node of the scene graph. All setters accept an optional
// transition; nil applies the change immediately.
type Layer interface {
	SetKey(key string)
	Key() string

	SetPosition(p Point, t *Transition) Animation
	SetSize(s Size, t *Transition) Animation
	SetScale(s Point, t *Transition) Animation
	SetOpacity(o float64, t *Transition) Animation

	// ChangePosition and ChangeScale stage updates for Engine.ApplyChanges.
	ChangePosition(p Point) Change
	ChangeScale(s Point) Change

	Position() Point
	Size() Size
	Scale() Point
	Opacity() float64

	// RenderBounds returns the layer's rectangle in scene coordinates,
	// accounting for ancestor positions and the layer's own scale.
	RenderBounds() Rect

	Parent() Layer

	SetContent(c Content)
	Content() Content
	// RemoveDrawContent detaches the layer's content so the engine stops
	// drawing it while the layer itself stays in the tree.
	RemoveDrawContent()

	// OnResize registers fn to run after the layer's size changes. The
	// handler may read RenderBounds for the updated extent.
	OnResize(fn func(Layer))

	// Remove detaches the layer and its sublayers from the scene.
	Remove()
}

// GenieEffect deforms a window layer toward a destination rectangle, used
// by the minimize animation. Engines without shader support may treat it
// as a plain move/scale toward the destination.
type GenieEffect interface {
	SetDestination(r Rect)
	Apply()
	Release()
}

// Engine owns the layer tree and the animation clock.
type Engine interface {
	NewLayer() Layer

	// AddLayer attaches a layer to the scene root.
	AddLayer(l Layer)
	// AddLayerTo attaches child under parent keeping its local position.
	AddLayerTo(child, parent Layer)
	// AddLayerPositioned attaches child under parent, recomputing the
	// child's local position so its on-screen position is unchanged.
	AddLayerPositioned(child, parent Layer)

	NewGenieEffect(l Layer) GenieEffect

	// ApplyChanges applies staged changes as one group under a shared
	// transition. A nil transition applies them immediately.
	ApplyChanges(changes []Change, t *Transition) Animation

	// Update advances the animation clock by dt seconds. Update(0) only
	// flushes layout so RenderBounds reflects pending reparenting.
	Update(dt float64)
}
