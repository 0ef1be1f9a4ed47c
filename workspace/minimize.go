// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/minimize.go
// Summary: Minimize/unminimize flows: immediate model updates, serialized visual phases.
// Notes: Each surface has a FIFO of visual operations. A toggle arriving while an
//        animation runs queues behind it instead of racing the scene graph.

package workspace

import (
	"sync"

	"github.com/stratawm/strata/scene"
	"github.com/stratawm/strata/shell"
)

// opQueue serializes the visual phases of one window. An operation runs
// until it calls done; later operations wait their turn.
type opQueue struct {
	mu    sync.Mutex
	busy  bool
	queue []func(done func())
}

func (q *opQueue) run(op func(done func())) {
	q.mu.Lock()
	if q.busy {
		q.queue = append(q.queue, op)
		q.mu.Unlock()
		return
	}
	q.busy = true
	q.mu.Unlock()
	op(q.done)
}

func (q *opQueue) done() {
	q.mu.Lock()
	if len(q.queue) == 0 {
		q.busy = false
		q.mu.Unlock()
		return
	}
	next := q.queue[0]
	q.queue = q.queue[1:]
	q.mu.Unlock()
	next(q.done)
}

func (w *Workspace) queueFor(id shell.SurfaceID) *opQueue {
	w.opMu.Lock()
	defer w.opMu.Unlock()
	q, ok := w.opQueues[id]
	if !ok {
		q = &opQueue{}
		w.opQueues[id] = q
	}
	return q
}

// MinimizeWindow marks the window minimized, parks its layer in a dock
// drawer with the genie effect and publishes once. Already-minimized
// windows and unknown surfaces are no-ops.
func (w *Workspace) MinimizeWindow(id shell.SurfaceID) {
	w.mu.Lock()
	win, ok := w.model.setMinimized(id, true)
	if !ok {
		w.mu.Unlock()
		return
	}
	winCopy := *win
	w.model.version++
	snap := w.model.snapshot()
	w.mu.Unlock()

	if view, hasView := w.GetWindowView(id); hasView {
		w.queueFor(id).run(func(done func()) {
			drawer, _ := w.dock.AddWindowDrawer(&winCopy)
			w.engine.AddLayerPositioned(view.WindowLayer, drawer)

			bounds := drawer.RenderBounds()
			view.Minimize(scene.Rect{
				X: bounds.X,
				Y: bounds.Y,
				W: w.tun.drawerSize,
				H: w.tun.drawerSize,
			})

			// The drawer is still expanding; follow its size so the genie
			// keeps pointing at the final slot. The hook outlives this
			// operation, so it must not re-apply once the window restores.
			drawer.OnResize(func(l scene.Layer) {
				if !w.IsMinimized(id) {
					return
				}
				b := l.RenderBounds()
				view.Genie.SetDestination(b)
				view.Genie.Apply()
			})
			done()
		})
	}

	w.bus.Broadcast(snap)
}

// UnminimizeWindow restores the window: the model updates and publishes
// immediately, then the drawer collapses, the layer reparents back under
// the windows container and eases to its pre-minimize position.
func (w *Workspace) UnminimizeWindow(id shell.SurfaceID) {
	w.mu.Lock()
	win, ok := w.model.setMinimized(id, false)
	if !ok {
		w.mu.Unlock()
		return
	}
	posX, posY := win.X, win.Y
	w.model.version++
	snap := w.model.snapshot()
	w.mu.Unlock()

	if view, hasView := w.GetWindowView(id); hasView {
		w.queueFor(id).run(func(done func()) {
			drawer, ok := w.dock.RemoveWindowDrawer(id)
			if !ok {
				done()
				return
			}
			// Flush pending reparenting so the drawer bounds are current.
			w.engine.Update(0)
			bounds := drawer.RenderBounds()

			layer := view.WindowLayer
			anim := drawer.SetSize(
				scene.Size{W: 0, H: w.tun.drawerSize},
				&scene.Transition{
					Delay:    w.tun.unminimizeDelay,
					Duration: w.tun.unminimizeDuration,
					Easing:   scene.EaseOutQuad,
				},
			)
			anim.OnStart(func() {
				layer.RemoveDrawContent()
				w.engine.AddLayerPositioned(layer, w.windowsLayer)
				layer.SetPosition(scene.Point{X: posX, Y: posY}, scene.EaseOut(w.tun.unminimizeDuration))
			})
			anim.OnFinish(func() {
				drawer.Remove()
				done()
			})

			view.Unminimize(bounds)
		})
	}

	w.bus.Broadcast(snap)
}
