package workspace

import (
	"testing"

	"github.com/stratawm/strata/scene/memscene"
)

func TestMinimizeRoundTripPublishesTwice(t *testing.T) {
	w, _ := newTestWorkspace(t)
	w.SetSize(1000, 600)
	w.IngestWindowElements([]WindowEntry{testEntry("s1", "alpha", 100, 50, 800, 600, "one")})
	w.GetOrAddWindowView("s1")

	rec := &snapRecorder{}
	w.Events().Subscribe(rec)

	w.MinimizeWindow("s1")
	if !w.IsMinimized("s1") {
		t.Fatalf("window should be minimized in the model")
	}
	snap, _ := rec.last()
	if len(snap.Minimized) != 1 || snap.Minimized[0].Surface != "s1" {
		t.Fatalf("snapshot should list the minimized window, got %+v", snap.Minimized)
	}
	if !snap.Windows["s1"].Minimized {
		t.Fatalf("window ref should carry the minimized flag")
	}

	w.UnminimizeWindow("s1")
	if w.IsMinimized("s1") {
		t.Fatalf("window should be restored in the model")
	}
	snap, _ = rec.last()
	if len(snap.Minimized) != 0 {
		t.Fatalf("snapshot should drop the restored window, got %+v", snap.Minimized)
	}

	if rec.count() != 2 {
		t.Fatalf("round trip should publish exactly twice, got %d", rec.count())
	}
	rec.mu.Lock()
	if rec.snaps[1].Version != rec.snaps[0].Version+1 {
		t.Fatalf("versions must increase by one: %d then %d", rec.snaps[0].Version, rec.snaps[1].Version)
	}
	rec.mu.Unlock()

	// Redundant toggles and unknown surfaces publish nothing.
	w.UnminimizeWindow("s1")
	w.MinimizeWindow("ghost")
	if rec.count() != 2 {
		t.Fatalf("no-op toggles must not publish, got %d", rec.count())
	}
}

func TestMinimizeParksLayerInDockDrawer(t *testing.T) {
	w, eng := newTestWorkspace(t)
	w.SetSize(1000, 600)
	w.IngestWindowElements([]WindowEntry{testEntry("s1", "alpha", 100, 50, 800, 600, "one")})
	view := w.GetOrAddWindowView("s1")

	w.MinimizeWindow("s1")

	parent := view.WindowLayer.Parent()
	if parent == nil || parent.Key() != "dock_drawer_s1" {
		t.Fatalf("window layer should reparent under its drawer, got %v", parent)
	}
	// Reparenting keeps the scene position until the genie takes over.
	if b := view.WindowLayer.RenderBounds(); !approxEq(b.X, 100) || !approxEq(b.Y, 50) {
		t.Fatalf("reparent moved the window, bounds %+v", b)
	}

	genie := view.Genie.(*memscene.Genie)
	if !genie.Applied() {
		t.Fatalf("genie should be applied on minimize")
	}
	// One running app occupies slot 0; the drawer takes slot 1 on the
	// hidden strip, squeezing the window into a drawer-sized square.
	dest := genie.Destination()
	if !approxEq(dest.X, 130) || !approxEq(dest.Y, -20) || !approxEq(dest.W, 130) || !approxEq(dest.H, 130) {
		t.Fatalf("genie destination wrong: %+v", dest)
	}

	// The drawer expansion retargets the genie to the settled bounds.
	eng.Update(0.4)
	dest = genie.Destination()
	if !approxEq(dest.W, 130) || !approxEq(dest.H, 130) || !approxEq(dest.X, 130) {
		t.Fatalf("genie should follow the settled drawer, got %+v", dest)
	}
	if !genie.Applied() {
		t.Fatalf("genie should stay applied while minimized")
	}
}

func TestUnminimizeRestoresWindowAfterAnimation(t *testing.T) {
	w, eng := newTestWorkspace(t)
	w.SetSize(1000, 600)
	w.IngestWindowElements([]WindowEntry{testEntry("s1", "alpha", 100, 50, 800, 600, "one")})
	view := w.GetOrAddWindowView("s1")

	w.MinimizeWindow("s1")
	eng.Update(0.4)
	drawer := view.WindowLayer.Parent().(*memscene.Layer)

	w.UnminimizeWindow("s1")
	// The model flips immediately; the layer stays parked until the
	// collapse delay elapses.
	if w.IsMinimized("s1") {
		t.Fatalf("model should restore immediately")
	}
	if view.WindowLayer.Parent() != drawer {
		t.Fatalf("layer should remain parked during the collapse delay")
	}

	eng.Update(0.25)
	if view.WindowLayer.Parent() != w.WindowsLayer() {
		t.Fatalf("layer should reparent under the windows container at restore start")
	}

	eng.Update(0.3)
	if pos := view.WindowLayer.Position(); !approxEq(pos.X, 100) || !approxEq(pos.Y, 50) {
		t.Fatalf("window should ease back to its pre-minimize position, got %+v", pos)
	}
	if !drawer.Removed() {
		t.Fatalf("drawer should leave the scene after the collapse")
	}
	genie := view.Genie.(*memscene.Genie)
	if genie.Applied() {
		t.Fatalf("genie must stay released after the restore completes")
	}
}

func TestMinimizeToggleWhileAnimatingQueuesSerially(t *testing.T) {
	w, eng := newTestWorkspace(t)
	w.SetSize(1000, 600)
	w.IngestWindowElements([]WindowEntry{testEntry("s1", "alpha", 100, 50, 800, 600, "one")})
	view := w.GetOrAddWindowView("s1")

	w.MinimizeWindow("s1")
	eng.Update(0.4)
	firstDrawer := view.WindowLayer.Parent().(*memscene.Layer)

	w.UnminimizeWindow("s1")
	w.MinimizeWindow("s1")

	// The model reflects the latest request at once; the second visual
	// phase waits for the restore to finish instead of racing it.
	if !w.IsMinimized("s1") {
		t.Fatalf("model should be minimized again immediately")
	}
	if view.WindowLayer.Parent() != firstDrawer {
		t.Fatalf("re-minimize must queue behind the running restore")
	}

	eng.Update(0.25) // restore starts: reparent to the windows container
	if view.WindowLayer.Parent() != w.WindowsLayer() {
		t.Fatalf("restore phase should reparent to the windows container first")
	}

	eng.Update(0.3) // restore completes, queued minimize runs
	parent := view.WindowLayer.Parent()
	if parent == nil || parent.Key() != "dock_drawer_s1" {
		t.Fatalf("queued minimize should park the window again, parent %v", parent)
	}
	if parent == firstDrawer {
		t.Fatalf("queued minimize should allocate a fresh drawer")
	}
	if !firstDrawer.Removed() {
		t.Fatalf("first drawer should be gone")
	}
}

func TestMinimizeWithoutViewSkipsVisualFlow(t *testing.T) {
	w, _ := newTestWorkspace(t)
	w.IngestWindowElements([]WindowEntry{testEntry("s1", "alpha", 0, 0, 100, 100, "")})

	w.MinimizeWindow("s1")
	if !w.IsMinimized("s1") {
		t.Fatalf("model minimize should work without a view")
	}
	if _, ok := w.Dock().RemoveWindowDrawer("s1"); ok {
		t.Fatalf("no drawer should be allocated without a view")
	}

	w.UnminimizeWindow("s1")
	if w.IsMinimized("s1") {
		t.Fatalf("model restore should work without a view")
	}
}

func TestOpQueueRunsOperationsInOrder(t *testing.T) {
	q := &opQueue{}
	var order []string
	var release func()

	q.run(func(done func()) {
		order = append(order, "first")
		release = done
	})
	q.run(func(done func()) {
		order = append(order, "second")
		done()
	})

	if len(order) != 1 || order[0] != "first" {
		t.Fatalf("second op must wait for the first, got %v", order)
	}
	release()
	if len(order) != 2 || order[1] != "second" {
		t.Fatalf("queued op should run on release, got %v", order)
	}

	// Queue drained: the next op runs immediately.
	q.run(func(done func()) {
		order = append(order, "third")
		done()
	})
	if len(order) != 3 || order[2] != "third" {
		t.Fatalf("idle queue should run ops directly, got %v", order)
	}
}
