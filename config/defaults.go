// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the system configuration file.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("gestures", Section{
		"show_all_duration_ms":     200,
		"show_desktop_duration_ms": 500,
		"on_threshold":             0.1,
		"off_threshold":            0.9,
		"show_all_exponent":        0.65,
	})
	cfg.RegisterDefaults("workspace_selector", Section{
		"height":         250,
		"padding_top":    10,
		"padding_bottom": 10,
	})
	cfg.RegisterDefaults("dock", Section{
		"hidden_y":    -20,
		"expose_y":    250,
		"drawer_size": 130,
		"launchers":   []interface{}{},
	})
	cfg.RegisterDefaults("app_switcher", Section{
		"debounce_ms":      300,
		"show_delay_ms":    100,
		"show_duration_ms": 100,
		"hide_duration_ms": 300,
	})
	cfg.RegisterDefaults("background", Section{
		"image": "",
	})
	cfg.RegisterDefaults("icons", Section{
		"max_size":    512,
		"target_size": 256,
	})
}
