// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/applier.go
// Summary: Background icon resolution: epoch-tagged lookups applied by a single goroutine.
// Notes: Results are serialized through a channel; the applier never blocks the interactive
//        path, it gives up after a bounded lock retry and drops the result.

package workspace

import (
	"context"
	"log"
	"time"

	"github.com/stratawm/strata/appinfo"
)

const resolveTimeout = 5 * time.Second

// iconResult is one completed resolution, tagged with the epoch it was
// scheduled under so superseded lookups are discarded.
type iconResult struct {
	appID string
	epoch uint64
	info  appinfo.Info
}

// scheduleIconResolve starts a fire-and-forget lookup per app id. Each
// schedule bumps the app's epoch, invalidating older in-flight lookups.
func (w *Workspace) scheduleIconResolve(appIDs []string) {
	for _, appID := range appIDs {
		w.epochMu.Lock()
		w.epochs[appID]++
		epoch := w.epochs[appID]
		w.epochMu.Unlock()
		go w.resolveIcon(appID, epoch)
	}
}

func (w *Workspace) resolveIcon(appID string, epoch uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	info, err := w.resolver.Resolve(ctx, appID)
	if err != nil {
		log.Printf("Workspace: icon resolution for %s failed: %v", appID, err)
		return
	}
	if info.Empty() {
		// A miss keeps the placeholder; the next ingest retries while the
		// app still has no icon.
		return
	}

	select {
	case w.iconCh <- iconResult{appID: appID, epoch: epoch, info: info}:
	case <-w.stopCh:
	}
}

// runApplier drains resolution results on one goroutine so background model
// writes are serialized.
func (w *Workspace) runApplier() {
	defer close(w.doneCh)
	for {
		select {
		case res := <-w.iconCh:
			w.applyIconResult(res)
		case <-w.stopCh:
			return
		}
	}
}

func (w *Workspace) applyIconResult(res iconResult) {
	if !w.lockModelWithRetry() {
		log.Printf("Workspace: dropping icon result for %s, model busy", res.appID)
		return
	}

	w.epochMu.Lock()
	current := w.epochs[res.appID]
	w.epochMu.Unlock()
	if current != res.epoch {
		w.mu.Unlock()
		return
	}

	app, ok := w.model.application(res.appID)
	if !ok {
		app = &Application{ID: res.appID}
		w.model.apps[res.appID] = app
	}
	if app.IconPath == res.info.IconPath {
		w.mu.Unlock()
		return
	}
	app.Name = res.info.Name
	app.IconPath = res.info.IconPath
	app.Icon = res.info.Icon
	w.model.version++
	snap := w.model.snapshot()
	w.mu.Unlock()

	log.Printf("Workspace: resolved app info for %s (%q, %s)", res.appID, app.Name, app.IconPath)
	w.bus.Broadcast(snap)
}

// lockModelWithRetry takes the model write lock with bounded backoff so the
// interactive path always wins contention. Returns false when exhausted.
func (w *Workspace) lockModelWithRetry() bool {
	backoff := time.Millisecond
	for attempt := 0; attempt < 8; attempt++ {
		if w.mu.TryLock() {
			return true
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return false
}
