// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: appinfo/appinfo.go
// Summary: App id to desktop metadata resolution consumed by the workspace core.
// Usage: The core calls Resolve off the write path; a miss is an empty Info,
// not an error.

package appinfo

import (
	"context"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"
)

// Info is the desktop metadata known for an application id. Zero fields
// mean the corresponding piece could not be resolved.
type Info struct {
	Name     string
	IconPath string
	Icon     image.Image
}

// Empty reports whether resolution produced nothing usable.
func (i Info) Empty() bool {
	return i.Name == "" && i.IconPath == "" && i.Icon == nil
}

// Resolver looks up desktop metadata for an application id. Implementations
// must treat unknown ids as (Info{}, nil); errors are reserved for lookup
// machinery failures.
type Resolver interface {
	Resolve(ctx context.Context, appID string) (Info, error)
}

// Nop resolves nothing. Useful for tests and headless runs.
type Nop struct{}

func (Nop) Resolve(context.Context, string) (Info, error) { return Info{}, nil }

// LoadImage decodes a raster image from disk. PNG and JPEG are registered;
// callers needing other formats register their decoders the usual way.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
