// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/dnd.go
// Summary: Drag-and-drop: transient drag view and the action fallback chain.

package workspace

import (
	"strings"
	"time"

	"github.com/stratawm/strata/scene"
)

// Action is a drag-and-drop action bitmask matching the data-device
// protocol values.
type Action uint32

const (
	ActionNone Action = 0
	ActionCopy Action = 1 << 0
	ActionMove Action = 1 << 1
	ActionAsk  Action = 1 << 2
)

func (a Action) String() string {
	if a == ActionNone {
		return "none"
	}
	var parts []string
	if a&ActionCopy != 0 {
		parts = append(parts, "copy")
	}
	if a&ActionMove != 0 {
		parts = append(parts, "move")
	}
	if a&ActionAsk != 0 {
		parts = append(parts, "ask")
	}
	return strings.Join(parts, "|")
}

// ChooseAction picks the effective drag action. A preferred single action
// among move, copy and ask wins when the source offers it; otherwise the
// fallback order is ask, copy, move, none.
func ChooseAction(available, preferred Action) Action {
	switch preferred {
	case ActionMove, ActionCopy, ActionAsk:
		if available&preferred == preferred {
			return preferred
		}
	}
	if available&ActionAsk != 0 {
		return ActionAsk
	}
	if available&ActionCopy != 0 {
		return ActionCopy
	}
	if available&ActionMove != 0 {
		return ActionMove
	}
	return ActionNone
}

// DndView is the transient layer that follows the pointer during a drag.
// It starts transparent; SetInitialPosition reveals it, Drop fades it out
// and removes it from the scene.
type DndView struct {
	layer        scene.Layer
	contentLayer scene.Layer
	initial      scene.Point
}

func NewDndView(eng scene.Engine, parent scene.Layer) *DndView {
	layer := eng.NewLayer()
	layer.SetKey("dnd_view")
	layer.SetOpacity(0.0, nil)
	contentLayer := eng.NewLayer()

	eng.AddLayerTo(layer, parent)
	eng.AddLayerTo(contentLayer, layer)

	return &DndView{layer: layer, contentLayer: contentLayer}
}

func (v *DndView) Layer() scene.Layer {
	return v.layer
}

func (v *DndView) ContentLayer() scene.Layer {
	return v.contentLayer
}

// SetContent installs the dragged payload's visual.
func (v *DndView) SetContent(c scene.Content) {
	v.contentLayer.SetContent(c)
}

// SetInitialPosition places the view at the grab point and reveals it.
func (v *DndView) SetInitialPosition(p scene.Point) {
	v.initial = p
	v.layer.SetPosition(p, nil)
	v.layer.SetOpacity(1.0, nil)
}

func (v *DndView) InitialPosition() scene.Point {
	return v.initial
}

// MoveTo tracks the pointer. Direct set, no transition.
func (v *DndView) MoveTo(x, y float64) {
	v.layer.SetPosition(scene.Point{X: x, Y: y}, nil)
}

// Drop fades the view out and removes it from the scene when done.
func (v *DndView) Drop() scene.Animation {
	anim := v.layer.SetOpacity(0.0, scene.EaseOut(300*time.Millisecond))
	anim.OnFinish(func() {
		v.layer.Remove()
	})
	return anim
}
