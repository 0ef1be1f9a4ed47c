// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/appswitcher.go
// Summary: App switcher: debounced MRU-derived app list with wraparound cycling.
// Notes: Refreshes are generation-tagged; a newer snapshot supersedes an in-flight one.

package workspace

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/stratawm/strata/config"
	"github.com/stratawm/strata/scene"
)

// AppSwitcherModel is the switcher's derived render state.
type AppSwitcherModel struct {
	Apps       []Application
	CurrentApp int
	Width      int
}

// AppSwitcherView subscribes to workspace snapshots. Content refreshes run
// after a short debounce so rapid churn collapses into one update; cycling
// and visibility react immediately.
type AppSwitcherView struct {
	wrapLayer scene.Layer
	viewLayer scene.Layer

	debounce     time.Duration
	showDelay    time.Duration
	showDuration time.Duration
	hideDuration time.Duration

	mu    sync.Mutex
	model AppSwitcherModel

	active atomic.Bool
	gen    atomic.Uint64
}

func NewAppSwitcherView(eng scene.Engine, cfg config.Config) *AppSwitcherView {
	wrap := eng.NewLayer()
	wrap.SetKey("app_switcher")
	wrap.SetOpacity(0.0, nil)
	eng.AddLayer(wrap)

	layer := eng.NewLayer()
	eng.AddLayerTo(layer, wrap)

	return &AppSwitcherView{
		wrapLayer:    wrap,
		viewLayer:    layer,
		debounce:     cfg.GetDurationMS("app_switcher", "debounce_ms", 300*time.Millisecond),
		showDelay:    cfg.GetDurationMS("app_switcher", "show_delay_ms", 100*time.Millisecond),
		showDuration: cfg.GetDurationMS("app_switcher", "show_duration_ms", 100*time.Millisecond),
		hideDuration: cfg.GetDurationMS("app_switcher", "hide_duration_ms", 300*time.Millisecond),
		model:        AppSwitcherModel{Width: 1000},
	}
}

func (v *AppSwitcherView) WrapLayer() scene.Layer {
	return v.wrapLayer
}

func (v *AppSwitcherView) ViewLayer() scene.Layer {
	return v.viewLayer
}

// Alive reports whether the switcher is showing.
func (v *AppSwitcherView) Alive() bool {
	return v.active.Load()
}

// OnEvent schedules a debounced content refresh. Only the refresh belonging
// to the newest snapshot applies; earlier ones are discarded on arrival.
func (v *AppSwitcherView) OnEvent(snap Snapshot) {
	gen := v.gen.Add(1)
	time.AfterFunc(v.debounce, func() {
		if v.gen.Load() != gen {
			return
		}
		apps := switcherApps(snap)

		v.mu.Lock()
		current := v.model.CurrentApp
		if len(apps) == 0 {
			current = 0
		} else if current+1 > len(apps) {
			current = len(apps) - 1
		}
		v.model.Apps = apps
		v.model.CurrentApp = current
		if snap.Width > 0 {
			v.model.Width = snap.Width
		}
		v.mu.Unlock()
	})
}

// switcherApps derives the switcher entries from the MRU list, oldest
// first, de-duplicated by id.
func switcherApps(snap Snapshot) []Application {
	seen := make(map[string]bool, len(snap.RecentApps))
	apps := make([]Application, 0, len(snap.RecentApps))
	for i := len(snap.RecentApps) - 1; i >= 0; i-- {
		id := snap.RecentApps[i]
		if seen[id] {
			continue
		}
		seen[id] = true
		if app, ok := snap.Apps[id]; ok {
			apps = append(apps, app)
		}
	}
	return apps
}

// Next advances the selection with wraparound and shows the switcher. The
// first invocation while hidden restarts from the front of the list.
func (v *AppSwitcherView) Next() {
	v.cycle(1)
}

// Previous steps the selection backwards with wraparound and shows the
// switcher.
func (v *AppSwitcherView) Previous() {
	v.cycle(-1)
}

func (v *AppSwitcherView) cycle(step int) {
	v.mu.Lock()
	current := v.model.CurrentApp
	if !v.active.Load() {
		current = 0
	}
	if n := len(v.model.Apps); n > 0 {
		current = (current + step + n) % n
	} else {
		current = 0
	}
	v.model.CurrentApp = current
	v.mu.Unlock()

	v.active.Store(true)
	v.wrapLayer.SetOpacity(1.0, &scene.Transition{Duration: v.showDuration, Delay: v.showDelay})
}

// Hide fades the switcher out; the selection is reset on the next cycle.
func (v *AppSwitcherView) Hide() {
	v.active.Store(false)
	v.wrapLayer.SetOpacity(0.0, &scene.Transition{Duration: v.hideDuration})
}

// CurrentApp returns the selected entry.
func (v *AppSwitcherView) CurrentApp() (Application, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.model.CurrentApp < 0 || v.model.CurrentApp >= len(v.model.Apps) {
		return Application{}, false
	}
	return v.model.Apps[v.model.CurrentApp], true
}

// Model returns a copy of the switcher's render state.
func (v *AppSwitcherView) Model() AppSwitcherModel {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := v.model
	out.Apps = append([]Application(nil), v.model.Apps...)
	return out
}
