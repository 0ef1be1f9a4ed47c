// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/workspaceselector.go
// Summary: Workspace selector strip shown above the exposé area during show-all.

package workspace

import (
	"github.com/stratawm/strata/config"
	"github.com/stratawm/strata/scene"
)

// WorkspaceSelectorView is the fixed-height strip the show-all gesture
// slides in from the top. At rest it sits off-screen and transparent; the
// gesture controller drives its position and opacity.
type WorkspaceSelectorView struct {
	layer  scene.Layer
	height float64
}

func NewWorkspaceSelectorView(layer scene.Layer, cfg config.Config) *WorkspaceSelectorView {
	height := cfg.GetFloat("workspace_selector", "height", 250)
	layer.SetPosition(scene.Point{X: 0, Y: -200}, nil)
	layer.SetOpacity(0.0, nil)
	layer.SetSize(scene.Size{W: 0, H: height}, nil)
	return &WorkspaceSelectorView{layer: layer, height: height}
}

func (v *WorkspaceSelectorView) Layer() scene.Layer {
	return v.layer
}

func (v *WorkspaceSelectorView) Height() float64 {
	return v.height
}

// SetWidth follows workspace resizes so the strip spans the full width.
func (v *WorkspaceSelectorView) SetWidth(width float64) {
	v.layer.SetSize(scene.Size{W: width, H: v.height}, nil)
}
