// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: appinfo/fdo/resolver.go
// Summary: Freedesktop resolver: desktop entries, icon lookup, image decode,
// SQLite-backed result cache.
// Usage: Construct with New and hand to workspace.New as the appinfo.Resolver.
// Notes: Resolution misses are empty results, never errors. The cache keys on
// the desktop file's mtime so edited entries re-resolve.

package fdo

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/stratawm/strata/appinfo"
)

// Config controls where the resolver looks and how large decoded icons get.
type Config struct {
	// DataDirs are XDG data roots searched for applications/ and icons/.
	// Empty means $XDG_DATA_HOME plus $XDG_DATA_DIRS.
	DataDirs []string

	// CachePath is the SQLite cache file. Empty disables the cache.
	CachePath string

	// MaxIconSize is the largest icon size considered during lookup.
	MaxIconSize int

	// IconTarget is the edge length decoded icons are downscaled to.
	IconTarget int
}

// DefaultConfig returns the standard XDG search setup.
func DefaultConfig() Config {
	return Config{
		DataDirs:    xdgDataDirs(),
		MaxIconSize: 512,
		IconTarget:  256,
	}
}

// Resolver implements appinfo.Resolver against the freedesktop on-disk
// layout.
type Resolver struct {
	cfg   Config
	cache *entryCache
}

// New builds a resolver. The cache is optional; a cache open failure is an
// error since the caller asked for persistence.
func New(cfg Config) (*Resolver, error) {
	if len(cfg.DataDirs) == 0 {
		cfg.DataDirs = xdgDataDirs()
	}
	if cfg.MaxIconSize <= 0 {
		cfg.MaxIconSize = 512
	}
	if cfg.IconTarget <= 0 {
		cfg.IconTarget = 256
	}
	r := &Resolver{cfg: cfg}
	if cfg.CachePath != "" {
		cache, err := openEntryCache(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("fdo: open cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

// Close releases the cache database.
func (r *Resolver) Close() error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Close()
}

// Resolve finds the desktop entry for appID, locates its icon, and decodes
// a downscaled image. Any piece that cannot be resolved stays zero.
func (r *Resolver) Resolve(ctx context.Context, appID string) (appinfo.Info, error) {
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return appinfo.Info{}, nil
	}

	if r.cache != nil {
		if row, ok := r.cache.lookup(ctx, appID); ok && desktopUnchanged(row.desktopPath, row.desktopMtime) {
			return appinfo.Info{
				Name:     row.name,
				IconPath: row.iconPath,
				Icon:     r.decode(row.iconPath),
			}, nil
		}
	}

	entryPath := findDesktopEntry(r.cfg.DataDirs, appID)
	if entryPath == "" {
		return appinfo.Info{}, nil
	}
	entry, err := parseDesktopEntry(entryPath)
	if err != nil {
		log.Printf("fdo: parse %s: %v", entryPath, err)
		return appinfo.Info{}, nil
	}

	iconPath := ""
	if entry.Icon != "" {
		iconPath = findIcon(r.cfg.DataDirs, entry.Icon, r.cfg.MaxIconSize)
	}

	if r.cache != nil {
		mtime := int64(0)
		if fi, err := os.Stat(entryPath); err == nil {
			mtime = fi.ModTime().UnixNano()
		}
		if err := r.cache.store(ctx, cacheRow{
			appID:        appID,
			name:         entry.Name,
			iconPath:     iconPath,
			desktopPath:  entryPath,
			desktopMtime: mtime,
		}); err != nil {
			log.Printf("fdo: cache store %s: %v", appID, err)
		}
	}

	return appinfo.Info{
		Name:     entry.Name,
		IconPath: iconPath,
		Icon:     r.decode(iconPath),
	}, nil
}

// decode loads and downscales a raster icon. SVG paths and decode failures
// yield nil; the path alone is still useful to callers.
func (r *Resolver) decode(path string) image.Image {
	if path == "" || strings.EqualFold(filepath.Ext(path), ".svg") {
		return nil
	}
	decoded, err := appinfo.LoadImage(path)
	if err != nil {
		log.Printf("fdo: decode %s: %v", path, err)
		return nil
	}
	return resizeToFit(decoded, r.cfg.IconTarget)
}

func desktopUnchanged(path string, mtime int64) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.ModTime().UnixNano() == mtime
}

func xdgDataDirs() []string {
	var dirs []string
	if home := os.Getenv("XDG_DATA_HOME"); home != "" {
		dirs = append(dirs, home)
	} else if userHome, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(userHome, ".local", "share"))
	}
	env := os.Getenv("XDG_DATA_DIRS")
	if env == "" {
		env = "/usr/local/share:/usr/share"
	}
	for _, d := range strings.Split(env, ":") {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
