// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/windowselector.go
// Summary: Exposé hit-test state: one selectable rectangle per shown window.

package workspace

import (
	"sync"

	"github.com/stratawm/strata/scene"
)

// WindowSelection is one selectable window rectangle in the exposé grid.
// W and H are the window's size at its exposé scale; X and Y come from the
// layout slot.
type WindowSelection struct {
	X, Y, W, H float64
	Visible    bool
	Title      string
	Index      int
}

// SelectorState is rebuilt by every show-all gesture update. Current is the
// hovered entry's index, nil when the pointer is over no window.
type SelectorState struct {
	Rects   []WindowSelection
	Current *int
}

// WindowSelectorView tracks which exposé rectangle the pointer is over and
// reports the pick when the user selects one.
type WindowSelectorView struct {
	layer scene.Layer

	mu       sync.RWMutex
	state    SelectorState
	onSelect func(index int)
}

func NewWindowSelectorView(eng scene.Engine) *WindowSelectorView {
	layer := eng.NewLayer()
	layer.SetKey("window_selector")
	eng.AddLayer(layer)
	return &WindowSelectorView{layer: layer}
}

func (v *WindowSelectorView) Layer() scene.Layer {
	return v.layer
}

// UpdateState replaces the selector state. The hover mark resets with it;
// the next pointer motion re-establishes it.
func (v *WindowSelectorView) UpdateState(state SelectorState) {
	v.mu.Lock()
	v.state = state
	v.mu.Unlock()
}

// State returns a copy safe to read outside the lock.
func (v *WindowSelectorView) State() SelectorState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := SelectorState{Rects: append([]WindowSelection(nil), v.state.Rects...)}
	if v.state.Current != nil {
		cur := *v.state.Current
		out.Current = &cur
	}
	return out
}

// PointerMotion updates the hover mark and reports the hit entry.
func (v *WindowSelectorView) PointerMotion(x, y float64) (WindowSelection, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range v.state.Rects {
		if !r.Visible {
			continue
		}
		if (scene.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}).Contains(x, y) {
			idx := r.Index
			v.state.Current = &idx
			return r, true
		}
	}
	v.state.Current = nil
	return WindowSelection{}, false
}

// CurrentSelection returns the hovered entry, if any.
func (v *WindowSelectorView) CurrentSelection() (WindowSelection, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.state.Current == nil {
		return WindowSelection{}, false
	}
	for _, r := range v.state.Rects {
		if r.Index == *v.state.Current {
			return r, true
		}
	}
	return WindowSelection{}, false
}

// SetOnSelect registers the pick callback, fired by Choose.
func (v *WindowSelectorView) SetOnSelect(fn func(index int)) {
	v.mu.Lock()
	v.onSelect = fn
	v.mu.Unlock()
}

// Choose resolves the entry under (x, y), fires the pick callback and
// returns the entry. No callback fires on a miss.
func (v *WindowSelectorView) Choose(x, y float64) (WindowSelection, bool) {
	sel, ok := v.PointerMotion(x, y)
	if !ok {
		return WindowSelection{}, false
	}
	v.mu.RLock()
	fn := v.onSelect
	v.mu.RUnlock()
	if fn != nil {
		fn(sel.Index)
	}
	return sel, true
}
