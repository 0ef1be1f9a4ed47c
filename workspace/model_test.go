package workspace

import (
	"image"
	"reflect"
	"testing"

	"github.com/stratawm/strata/shell"
)

func testEntry(id shell.SurfaceID, appID string, x, y, w, h float64, title string) WindowEntry {
	el := shell.NewWaylandWindow(id, nil)
	el.SetAppID(appID)
	el.SetTitle(title)
	return WindowEntry{
		Element: el,
		Frame:   shell.Frame{X: x, Y: y, W: w, H: h, Title: title},
	}
}

func TestIngestIdempotent(t *testing.T) {
	entries := []WindowEntry{
		testEntry("s1", "org.app.alpha", 0, 0, 800, 600, "alpha one"),
		testEntry("s2", "org.app.beta", 10, 10, 640, 480, "beta"),
		testEntry("s3", "org.app.alpha", 20, 20, 800, 600, "alpha two"),
	}

	m := newModel()
	m.ingest(entries)
	first := m.snapshot()

	m.ingest(entries)
	second := m.snapshot()

	if !reflect.DeepEqual(first.ZAppOrder, second.ZAppOrder) {
		t.Fatalf("z order changed on re-ingest: %v vs %v", first.ZAppOrder, second.ZAppOrder)
	}
	if !reflect.DeepEqual(first.RecentApps, second.RecentApps) {
		t.Fatalf("recent apps changed on re-ingest: %v vs %v", first.RecentApps, second.RecentApps)
	}
	if !reflect.DeepEqual(first.WindowOrder, second.WindowOrder) {
		t.Fatalf("window order changed on re-ingest: %v vs %v", first.WindowOrder, second.WindowOrder)
	}
	if first.CurrentApp != second.CurrentApp || first.CurrentAppIndex != second.CurrentAppIndex {
		t.Fatalf("current app changed on re-ingest: %q/%d vs %q/%d",
			first.CurrentApp, first.CurrentAppIndex, second.CurrentApp, second.CurrentAppIndex)
	}
	if !reflect.DeepEqual(m.appWindowIDs("org.app.alpha"), []shell.SurfaceID{"s1", "s3"}) {
		t.Fatalf("app windows changed on re-ingest: %v", m.appWindowIDs("org.app.alpha"))
	}
}

func TestIngestCurrentAppFollowsLastProcessedEntry(t *testing.T) {
	m := newModel()
	m.ingest([]WindowEntry{
		testEntry("s1", "alpha", 0, 0, 100, 100, ""),
		testEntry("s2", "beta", 0, 0, 100, 100, ""),
		testEntry("s3", "alpha", 0, 0, 100, 100, ""),
	})
	if id, ok := m.currentAppID(); !ok || id != "alpha" {
		t.Fatalf("expected current app alpha, got %q ok=%v", id, ok)
	}
	if m.currentApp != 0 {
		t.Fatalf("alpha was seen first, index should be 0, got %d", m.currentApp)
	}

	m.ingest([]WindowEntry{
		testEntry("s1", "alpha", 0, 0, 100, 100, ""),
		testEntry("s2", "beta", 0, 0, 100, 100, ""),
	})
	if id, ok := m.currentAppID(); !ok || id != "beta" {
		t.Fatalf("expected current app beta, got %q ok=%v", id, ok)
	}
	if m.currentApp != 1 {
		t.Fatalf("beta index should be 1, got %d", m.currentApp)
	}
}

func TestIngestSkipsEntriesWithoutAppID(t *testing.T) {
	anon := shell.NewWaylandWindow("anon", nil)

	m := newModel()
	m.ingest([]WindowEntry{
		testEntry("s1", "alpha", 0, 0, 100, 100, ""),
		{Element: anon, Frame: shell.Frame{W: 50, H: 50}},
	})

	if _, ok := m.windowFor("anon"); ok {
		t.Fatalf("entry without app id must not be cached")
	}
	if id, ok := m.currentAppID(); !ok || id != "alpha" {
		t.Fatalf("current app should follow the last entry with an app id, got %q ok=%v", id, ok)
	}
	if len(m.windowOrder) != 1 {
		t.Fatalf("expected 1 ordered window, got %d", len(m.windowOrder))
	}
}

func TestIngestMRUOrdering(t *testing.T) {
	m := newModel()
	m.ingest([]WindowEntry{
		testEntry("s1", "alpha", 0, 0, 100, 100, ""),
		testEntry("s2", "beta", 0, 0, 100, 100, ""),
	})
	if !reflect.DeepEqual(m.recentApps, []string{"beta", "alpha"}) {
		t.Fatalf("after first pass want [beta alpha], got %v", m.recentApps)
	}

	// Both apps survive: relative order is retained.
	m.ingest([]WindowEntry{
		testEntry("s1", "alpha", 0, 0, 100, 100, ""),
		testEntry("s2", "beta", 0, 0, 100, 100, ""),
	})
	if !reflect.DeepEqual(m.recentApps, []string{"beta", "alpha"}) {
		t.Fatalf("stable pass must retain order, got %v", m.recentApps)
	}

	// Alpha disappears, then reappears: it moves to the front.
	m.ingest([]WindowEntry{
		testEntry("s2", "beta", 0, 0, 100, 100, ""),
	})
	if !reflect.DeepEqual(m.recentApps, []string{"beta"}) {
		t.Fatalf("departed app must be filtered, got %v", m.recentApps)
	}
	m.ingest([]WindowEntry{
		testEntry("s2", "beta", 0, 0, 100, 100, ""),
		testEntry("s1", "alpha", 0, 0, 100, 100, ""),
	})
	if !reflect.DeepEqual(m.recentApps, []string{"alpha", "beta"}) {
		t.Fatalf("reappearing app must move to front, got %v", m.recentApps)
	}
}

func TestIngestAppWindowsNeverDuplicate(t *testing.T) {
	entries := []WindowEntry{
		testEntry("s1", "alpha", 0, 0, 100, 100, ""),
		testEntry("s2", "alpha", 0, 0, 100, 100, ""),
	}

	m := newModel()
	for i := 0; i < 3; i++ {
		m.ingest(entries)
	}

	ids := m.appWindowIDs("alpha")
	seen := make(map[shell.SurfaceID]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate surface id %s in app windows %v", id, ids)
		}
		seen[id] = true
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 windows for alpha, got %v", ids)
	}
}

func TestIngestPreservesWindowIdentity(t *testing.T) {
	m := newModel()
	m.ingest([]WindowEntry{testEntry("s1", "alpha", 0, 0, 800, 600, "old")})

	win, ok := m.windowFor("s1")
	if !ok {
		t.Fatalf("window not cached after ingest")
	}
	if _, changed := m.setMinimized("s1", true); !changed {
		t.Fatalf("minimize should apply")
	}

	// Re-ingest with fresh geometry: the cached Window object is reused, so
	// the minimized flag and identity survive while geometry updates.
	m.ingest([]WindowEntry{testEntry("s1", "alpha", 5, 6, 1024, 768, "new")})
	again, ok := m.windowFor("s1")
	if !ok {
		t.Fatalf("window lost on re-ingest")
	}
	if again != win {
		t.Fatalf("window identity not preserved across ingest")
	}
	if !again.Minimized {
		t.Fatalf("minimized flag lost on re-ingest")
	}
	if again.X != 5 || again.W != 1024 || again.Title != "new" {
		t.Fatalf("geometry not refreshed: %+v", again)
	}
}

func TestIngestFiltersStaleMinimized(t *testing.T) {
	m := newModel()
	m.ingest([]WindowEntry{
		testEntry("s1", "alpha", 0, 0, 100, 100, ""),
		testEntry("s2", "beta", 0, 0, 100, 100, ""),
	})
	m.setMinimized("s1", true)
	if len(m.minimized) != 1 {
		t.Fatalf("expected 1 minimized entry, got %d", len(m.minimized))
	}

	// s1 is gone from the shell report: its minimized entry is dropped.
	m.ingest([]WindowEntry{testEntry("s2", "beta", 0, 0, 100, 100, "")})
	if len(m.minimized) != 0 {
		t.Fatalf("stale minimized entry survived: %v", m.minimized)
	}
	// The window itself stays cached.
	if _, ok := m.windowFor("s1"); !ok {
		t.Fatalf("windows cache must keep the destroyed window record")
	}
}

func TestIngestIndexedIDsAlwaysCached(t *testing.T) {
	m := newModel()
	m.ingest([]WindowEntry{
		testEntry("s1", "alpha", 0, 0, 100, 100, ""),
		testEntry("s2", "beta", 0, 0, 100, 100, ""),
	})
	m.setMinimized("s2", true)

	for _, id := range m.windowOrder {
		if _, ok := m.windows[id]; !ok {
			t.Fatalf("window order id %s missing from cache", id)
		}
	}
	for app, ids := range m.appWindows {
		for _, id := range ids {
			if _, ok := m.windows[id]; !ok {
				t.Fatalf("app %s window %s missing from cache", app, id)
			}
		}
	}
	for _, mw := range m.minimized {
		if _, ok := m.windows[mw.Surface]; !ok {
			t.Fatalf("minimized id %s missing from cache", mw.Surface)
		}
	}
}

func TestIngestRequestsIconsOncePerApp(t *testing.T) {
	m := newModel()
	want := m.ingest([]WindowEntry{
		testEntry("s1", "alpha", 0, 0, 100, 100, ""),
		testEntry("s2", "alpha", 0, 0, 100, 100, ""),
		testEntry("s3", "beta", 0, 0, 100, 100, ""),
	})
	if !reflect.DeepEqual(want, []string{"alpha", "beta"}) {
		t.Fatalf("expected one request per app, got %v", want)
	}

	// Resolved apps are not requested again.
	m.apps["alpha"].Icon = image.NewNRGBA(image.Rect(0, 0, 1, 1))
	want = m.ingest([]WindowEntry{
		testEntry("s1", "alpha", 0, 0, 100, 100, ""),
		testEntry("s3", "beta", 0, 0, 100, 100, ""),
	})
	if !reflect.DeepEqual(want, []string{"beta"}) {
		t.Fatalf("resolved app should not be re-requested, got %v", want)
	}
}

func TestUpdateGeometryPatchesInPlace(t *testing.T) {
	m := newModel()
	m.ingest([]WindowEntry{testEntry("s1", "alpha", 0, 0, 800, 600, "t")})

	ok := m.updateGeometry("s1", shell.Frame{X: 1, Y: 2, W: 3, H: 4, Title: "u", Fullscreen: true})
	if !ok {
		t.Fatalf("patch of a known window should succeed")
	}
	win, _ := m.windowFor("s1")
	if win.X != 1 || win.Y != 2 || win.W != 3 || win.H != 4 || win.Title != "u" || !win.Fullscreen {
		t.Fatalf("patch not applied: %+v", win)
	}

	if m.updateGeometry("nope", shell.Frame{}) {
		t.Fatalf("patch of an unknown window must report false")
	}
}

func TestCurrentAppDefensiveOnEmptyOrder(t *testing.T) {
	m := newModel()
	if _, ok := m.currentAppID(); ok {
		t.Fatalf("empty z order must have no current app")
	}

	// A stale index beyond the rebuilt order is treated as no current app.
	m.ingest([]WindowEntry{
		testEntry("s1", "alpha", 0, 0, 100, 100, ""),
		testEntry("s2", "beta", 0, 0, 100, 100, ""),
	})
	m.ingest([]WindowEntry{testEntry("s1", "alpha", 0, 0, 100, 100, "")})
	if m.currentApp != 0 {
		t.Fatalf("current app should follow the only remaining entry, got %d", m.currentApp)
	}
	m.currentApp = 7
	if _, ok := m.currentAppID(); ok {
		t.Fatalf("out of range index must be rejected")
	}
}

func TestSetMinimizedStateTransitions(t *testing.T) {
	m := newModel()
	m.ingest([]WindowEntry{testEntry("s1", "alpha", 0, 0, 100, 100, "")})

	if _, ok := m.setMinimized("ghost", true); ok {
		t.Fatalf("unknown window must not minimize")
	}
	win, ok := m.setMinimized("s1", true)
	if !ok || !win.Minimized {
		t.Fatalf("minimize should flip the flag")
	}
	if _, ok := m.setMinimized("s1", true); ok {
		t.Fatalf("double minimize must be a no-op")
	}
	if !m.isMinimized("s1") {
		t.Fatalf("isMinimized should report true")
	}

	win, ok = m.setMinimized("s1", false)
	if !ok || win.Minimized {
		t.Fatalf("unminimize should flip the flag back")
	}
	if len(m.minimized) != 0 {
		t.Fatalf("minimized list should be empty, got %v", m.minimized)
	}
	if _, ok := m.setMinimized("s1", false); ok {
		t.Fatalf("double unminimize must be a no-op")
	}
}

func TestSnapshotIsDetachedFromModel(t *testing.T) {
	m := newModel()
	m.ingest([]WindowEntry{
		testEntry("s1", "alpha", 0, 0, 800, 600, "one"),
		testEntry("s2", "beta", 0, 0, 640, 480, "two"),
	})
	snap := m.snapshot()

	m.ingest([]WindowEntry{testEntry("s2", "beta", 0, 0, 640, 480, "two")})
	m.updateGeometry("s2", shell.Frame{X: 99, Y: 99, W: 1, H: 1})

	if len(snap.WindowOrder) != 2 || len(snap.ZAppOrder) != 2 {
		t.Fatalf("snapshot mutated by later model changes: %+v", snap)
	}
	if snap.Windows["s2"].X == 99 {
		t.Fatalf("snapshot window shares state with the model")
	}
	if snap.CurrentApp != "beta" {
		t.Fatalf("expected current app beta in snapshot, got %q", snap.CurrentApp)
	}
}
