// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: appinfo/fdo/desktop.go
// Summary: Desktop entry location and parsing.
// Notes: Lookup order is exact file name, case-insensitive file name, then a
// StartupWMClass scan, matching how X11 clients advertise themselves.

package fdo

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// desktopEntry is the subset of the Desktop Entry group the workspace uses.
type desktopEntry struct {
	Name      string
	Icon      string
	NoDisplay bool
}

// findDesktopEntry returns the path of the desktop file for appID, or ""
// when no data dir has one.
func findDesktopEntry(dataDirs []string, appID string) string {
	for _, dir := range dataDirs {
		apps := filepath.Join(dir, "applications")
		exact := filepath.Join(apps, appID+".desktop")
		if fileExists(exact) {
			return exact
		}
		if p := matchDesktopFile(apps, appID); p != "" {
			return p
		}
	}
	for _, dir := range dataDirs {
		if p := matchByWMClass(filepath.Join(dir, "applications"), appID); p != "" {
			return p
		}
	}
	return ""
}

// matchDesktopFile compares file stems case-insensitively, so "Firefox"
// still finds firefox.desktop.
func matchDesktopFile(appsDir, appID string) string {
	entries, err := os.ReadDir(appsDir)
	if err != nil {
		return ""
	}
	want := strings.ToLower(appID)
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".desktop") {
			continue
		}
		stem := strings.ToLower(strings.TrimSuffix(name, ".desktop"))
		if stem == want {
			return filepath.Join(appsDir, name)
		}
	}
	return ""
}

// matchByWMClass parses every entry in the directory and matches on
// StartupWMClass. Slow path, only reached when name matching failed.
// Hidden stub entries are skipped so a visible window never resolves to a
// NoDisplay helper.
func matchByWMClass(appsDir, appID string) string {
	entries, err := os.ReadDir(appsDir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".desktop") {
			continue
		}
		path := filepath.Join(appsDir, e.Name())
		cfg, err := ini.Load(path)
		if err != nil {
			continue
		}
		sec := cfg.Section("Desktop Entry")
		if sec.Key("NoDisplay").MustBool(false) {
			continue
		}
		class := sec.Key("StartupWMClass").String()
		if class != "" && strings.EqualFold(class, appID) {
			return path
		}
	}
	return ""
}

func parseDesktopEntry(path string) (desktopEntry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return desktopEntry{}, err
	}
	sec := cfg.Section("Desktop Entry")
	return desktopEntry{
		Name:      sec.Key("Name").String(),
		Icon:      sec.Key("Icon").String(),
		NoDisplay: sec.Key("NoDisplay").MustBool(false),
	}, nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
