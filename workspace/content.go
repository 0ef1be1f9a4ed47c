// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/content.go
// Summary: Layer content payloads the views attach: decoded images and text labels.

package workspace

import "image"

// imageContent carries a decoded image. Debug engines draw the name, real
// engines upload the pixels.
type imageContent struct {
	name string
	img  image.Image
}

func (c imageContent) String() string { return c.name }

// Image exposes the pixels to engines that can draw them.
func (c imageContent) Image() image.Image { return c.img }

// labelContent is plain text, used for drawer titles and debug output.
type labelContent string

func (c labelContent) String() string { return string(c) }
