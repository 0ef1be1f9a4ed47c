// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/background.go
// Summary: Wallpaper view. Stays transparent until an image is set.

package workspace

import (
	"image"
	"sync"

	"github.com/stratawm/strata/scene"
)

// BackgroundView draws the workspace wallpaper on the layer the façade
// allocated for it.
type BackgroundView struct {
	layer scene.Layer

	mu  sync.Mutex
	img image.Image
}

func NewBackgroundView(layer scene.Layer) *BackgroundView {
	return &BackgroundView{layer: layer}
}

// SetImage installs the wallpaper and makes the layer visible.
func (v *BackgroundView) SetImage(img image.Image) {
	v.mu.Lock()
	v.img = img
	v.mu.Unlock()

	v.layer.SetContent(imageContent{name: "background", img: img})
	v.layer.SetOpacity(1.0, nil)
}

func (v *BackgroundView) Image() image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.img
}

func (v *BackgroundView) Layer() scene.Layer {
	return v.layer
}
