// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/easing.go
// Summary: Easing functions and the Transition descriptor for animated property changes.
// Usage: Pass a *Transition to layer setters; nil means apply immediately.

package scene

import "time"

// EasingFunc maps animation progress [0,1] to an eased value [0,1].
type EasingFunc func(t float64) float64

// Common easing functions
var (
	// EaseLinear - no easing, constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep - smooth S-curve, accelerates at start and decelerates at end
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseInQuad - quadratic ease-in (slow start, accelerating)
	EaseInQuad EasingFunc = func(t float64) float64 {
		return t * t
	}

	// EaseOutQuad - quadratic ease-out (fast start, decelerating)
	EaseOutQuad EasingFunc = func(t float64) float64 {
		return t * (2.0 - t)
	}

	// EaseInCubic - cubic ease-in (slower start)
	EaseInCubic EasingFunc = func(t float64) float64 {
		return t * t * t
	}

	// EaseOutCubic - cubic ease-out
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}
)

// Transition describes how a property change is animated. A nil *Transition
// applies the change immediately with no animation.
type Transition struct {
	Duration time.Duration
	Delay    time.Duration
	Easing   EasingFunc
}

// EaseIn returns a cubic ease-in transition of the given duration.
func EaseIn(d time.Duration) *Transition {
	return &Transition{Duration: d, Easing: EaseInCubic}
}

// EaseOut returns a cubic ease-out transition of the given duration.
func EaseOut(d time.Duration) *Transition {
	return &Transition{Duration: d, Easing: EaseOutCubic}
}
