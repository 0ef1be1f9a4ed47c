// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: appinfo/fdo/icons.go
// Summary: Icon lookup over hicolor theme directories and pixmaps.
// Notes: Prefers the largest raster not exceeding maxSize, then scalable
// SVG, then pixmaps. Only hicolor is searched; themed lookup belongs to the
// toolkit side.

package fdo

import (
	"path/filepath"
	"strconv"
)

var iconSizes = []int{512, 256, 192, 128, 96, 64, 48, 32}

var rasterExts = []string{".png", ".jpg", ".jpeg"}

// findIcon resolves an icon name (or absolute path) to a file path, or ""
// when nothing matches.
func findIcon(dataDirs []string, icon string, maxSize int) string {
	if icon == "" {
		return ""
	}
	if filepath.IsAbs(icon) {
		if fileExists(icon) {
			return icon
		}
		return ""
	}

	for _, size := range iconSizes {
		if size > maxSize {
			continue
		}
		dim := strconv.Itoa(size) + "x" + strconv.Itoa(size)
		for _, dir := range dataDirs {
			base := filepath.Join(dir, "icons", "hicolor", dim, "apps")
			for _, ext := range rasterExts {
				p := filepath.Join(base, icon+ext)
				if fileExists(p) {
					return p
				}
			}
		}
	}

	for _, dir := range dataDirs {
		p := filepath.Join(dir, "icons", "hicolor", "scalable", "apps", icon+".svg")
		if fileExists(p) {
			return p
		}
	}

	for _, dir := range dataDirs {
		for _, ext := range rasterExts {
			p := filepath.Join(dir, "pixmaps", icon+ext)
			if fileExists(p) {
				return p
			}
		}
	}
	return ""
}
