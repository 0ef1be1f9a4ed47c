// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/memscene/animation.go
// Summary: Pending and completed animation handles plus staged group changes.

package memscene

import (
	"sync"

	"github.com/stratawm/strata/scene"
)

// animation is a scheduled property change waiting on the engine clock.
// apply runs under the engine mutex and returns resize hooks to run after
// unlock. Lifecycle flags live behind their own mutex so callbacks can be
// registered from any goroutine.
type animation struct {
	delay    float64
	duration float64
	elapsed  float64

	mu       sync.Mutex
	started  bool
	finished bool
	onStart  []func()
	onFinish []func()

	apply func() []func()
}

// advance moves the animation clock forward. The caller holds the engine
// mutex; apply therefore runs locked while the returned callbacks are the
// caller's to run after unlock. done reports that the animation completed.
func (a *animation) advance(dt float64) (starts, hooks, finishes []func(), done bool) {
	a.elapsed += dt

	a.mu.Lock()
	if !a.started && a.elapsed >= a.delay {
		a.started = true
		starts = a.onStart
		a.onStart = nil
	}
	if !a.finished && a.elapsed >= a.delay+a.duration {
		a.finished = true
		finishes = a.onFinish
		a.onFinish = nil
		done = true
	}
	a.mu.Unlock()

	if done {
		hooks = a.apply()
	}
	return starts, hooks, finishes, done
}

func (a *animation) OnStart(fn func()) scene.Animation {
	a.mu.Lock()
	started := a.started
	if !started {
		a.onStart = append(a.onStart, fn)
	}
	a.mu.Unlock()
	if started {
		fn()
	}
	return a
}

func (a *animation) OnFinish(fn func()) scene.Animation {
	a.mu.Lock()
	finished := a.finished
	if !finished {
		a.onFinish = append(a.onFinish, fn)
	}
	a.mu.Unlock()
	if finished {
		fn()
	}
	return a
}

// doneAnimation is returned for immediate property sets. Callbacks run as
// soon as they are registered.
type doneAnimation struct{}

func (doneAnimation) OnStart(fn func()) scene.Animation {
	fn()
	return doneAnimation{}
}

func (doneAnimation) OnFinish(fn func()) scene.Animation {
	fn()
	return doneAnimation{}
}

// stagedChange is a property update captured by ChangePosition/ChangeScale
// and applied through Engine.ApplyChanges.
type stagedChange struct {
	layer *Layer
	apply func() []func()
}

func (c *stagedChange) Layer() scene.Layer { return c.layer }

func (c *stagedChange) applyLocked() []func() { return c.apply() }
