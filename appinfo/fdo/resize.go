// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: appinfo/fdo/resize.go
// Summary: Aspect-preserving icon downscale.

package fdo

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// resizeToFit downscales img so neither edge exceeds maxEdge, preserving
// aspect ratio. Images that already fit are returned unmodified; icons are
// never upscaled.
func resizeToFit(img image.Image, maxEdge int) image.Image {
	if img == nil || maxEdge <= 0 {
		return img
	}
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return img
	}
	if srcW <= maxEdge && srcH <= maxEdge {
		return img
	}

	scale := math.Min(float64(maxEdge)/float64(srcW), float64(maxEdge)/float64(srcH))
	dstW := int(math.Round(float64(srcW) * scale))
	dstH := int(math.Round(float64(srcH) * scale))
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
