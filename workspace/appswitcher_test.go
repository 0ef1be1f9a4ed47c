package workspace

import (
	"testing"
	"time"

	"github.com/stratawm/strata/config"
	"github.com/stratawm/strata/scene/memscene"
)

func newTestSwitcher(t *testing.T) (*AppSwitcherView, *memscene.Engine) {
	t.Helper()
	eng := memscene.New()
	v := NewAppSwitcherView(eng, config.Config{
		"app_switcher": config.Section{"debounce_ms": 5},
	})
	return v, eng
}

func switcherSnapshot(recent []string, apps ...string) Snapshot {
	snap := Snapshot{Apps: make(map[string]Application), RecentApps: recent}
	for _, id := range apps {
		snap.Apps[id] = Application{ID: id}
	}
	return snap
}

func TestSwitcherRefreshDerivesAppsFromMRU(t *testing.T) {
	v, _ := newTestSwitcher(t)

	// MRU front is the most recent app; the switcher lists oldest first.
	v.OnEvent(switcherSnapshot([]string{"gamma", "beta", "alpha"}, "alpha", "beta", "gamma"))
	waitUntil(t, time.Second, func() bool { return len(v.Model().Apps) == 3 })

	m := v.Model()
	if m.Apps[0].ID != "alpha" || m.Apps[1].ID != "beta" || m.Apps[2].ID != "gamma" {
		t.Fatalf("expected [alpha beta gamma], got %v", switcherIDs(m))
	}
}

func TestSwitcherRefreshSkipsUnknownAndDuplicateIDs(t *testing.T) {
	v, _ := newTestSwitcher(t)

	// "ghost" has no app record; "alpha" appears twice in the MRU list.
	v.OnEvent(switcherSnapshot([]string{"alpha", "ghost", "beta", "alpha"}, "alpha", "beta"))
	waitUntil(t, time.Second, func() bool { return len(v.Model().Apps) == 2 })

	m := v.Model()
	if m.Apps[0].ID != "alpha" || m.Apps[1].ID != "beta" {
		t.Fatalf("expected de-duplicated [alpha beta], got %v", switcherIDs(m))
	}
}

func TestSwitcherRefreshDebounceSupersede(t *testing.T) {
	v, _ := newTestSwitcher(t)

	v.OnEvent(switcherSnapshot([]string{"alpha"}, "alpha"))
	v.OnEvent(switcherSnapshot([]string{"beta", "alpha"}, "alpha", "beta"))

	waitUntil(t, time.Second, func() bool { return len(v.Model().Apps) == 2 })

	// The superseded refresh must not land late and shrink the list back.
	time.Sleep(20 * time.Millisecond)
	if got := len(v.Model().Apps); got != 2 {
		t.Fatalf("stale refresh overwrote the model, %d apps", got)
	}
}

func TestSwitcherCyclingWrapsAround(t *testing.T) {
	v, _ := newTestSwitcher(t)
	v.OnEvent(switcherSnapshot([]string{"gamma", "beta", "alpha"}, "alpha", "beta", "gamma"))
	waitUntil(t, time.Second, func() bool { return len(v.Model().Apps) == 3 })

	// First Next while hidden restarts from the front, then advances.
	v.Next()
	assertSelected(t, v, "beta")
	v.Next()
	assertSelected(t, v, "gamma")
	v.Next()
	assertSelected(t, v, "alpha")

	// Three more steps from index 0 wrap back to index 0.
	v.Next()
	v.Next()
	v.Next()
	assertSelected(t, v, "alpha")

	// Previous from index 0 wraps to the last entry.
	v.Previous()
	assertSelected(t, v, "gamma")
}

func TestSwitcherPreviousFromHiddenStartsFromFront(t *testing.T) {
	v, _ := newTestSwitcher(t)
	v.OnEvent(switcherSnapshot([]string{"gamma", "beta", "alpha"}, "alpha", "beta", "gamma"))
	waitUntil(t, time.Second, func() bool { return len(v.Model().Apps) == 3 })

	v.Previous()
	assertSelected(t, v, "gamma")
}

func TestSwitcherHideResetsSelectionOnNextCycle(t *testing.T) {
	v, eng := newTestSwitcher(t)
	v.OnEvent(switcherSnapshot([]string{"gamma", "beta", "alpha"}, "alpha", "beta", "gamma"))
	waitUntil(t, time.Second, func() bool { return len(v.Model().Apps) == 3 })

	v.Next()
	v.Next()
	assertSelected(t, v, "gamma")
	eng.Update(0.25)
	if v.WrapLayer().Opacity() != 1.0 {
		t.Fatalf("switcher should be visible while cycling, opacity %f", v.WrapLayer().Opacity())
	}
	if !v.Alive() {
		t.Fatalf("switcher should report alive while showing")
	}

	v.Hide()
	eng.Update(0.35)
	if v.WrapLayer().Opacity() != 0.0 {
		t.Fatalf("switcher should fade out on hide, opacity %f", v.WrapLayer().Opacity())
	}
	if v.Alive() {
		t.Fatalf("switcher should report hidden after Hide")
	}

	// The stale selection does not survive the hide.
	v.Next()
	assertSelected(t, v, "beta")
}

func TestSwitcherClampsWhenListShrinks(t *testing.T) {
	v, _ := newTestSwitcher(t)
	v.OnEvent(switcherSnapshot([]string{"gamma", "beta", "alpha"}, "alpha", "beta", "gamma"))
	waitUntil(t, time.Second, func() bool { return len(v.Model().Apps) == 3 })

	v.Next()
	v.Next()
	assertSelected(t, v, "gamma")

	// Two apps quit: the selection clamps to the last remaining index.
	v.OnEvent(switcherSnapshot([]string{"alpha"}, "alpha"))
	waitUntil(t, time.Second, func() bool { return len(v.Model().Apps) == 1 })
	if got := v.Model().CurrentApp; got != 0 {
		t.Fatalf("selection should clamp to 0, got %d", got)
	}
	assertSelected(t, v, "alpha")

	// Everything quits: no selection remains.
	v.OnEvent(switcherSnapshot(nil))
	waitUntil(t, time.Second, func() bool { return len(v.Model().Apps) == 0 })
	if _, ok := v.CurrentApp(); ok {
		t.Fatalf("empty switcher must have no current app")
	}
}

func TestSwitcherCycleOnEmptyList(t *testing.T) {
	v, _ := newTestSwitcher(t)

	v.Next()
	if _, ok := v.CurrentApp(); ok {
		t.Fatalf("cycling an empty list must select nothing")
	}
	if got := v.Model().CurrentApp; got != 0 {
		t.Fatalf("empty cycle should keep index 0, got %d", got)
	}
	v.Previous()
	if got := v.Model().CurrentApp; got != 0 {
		t.Fatalf("empty cycle should keep index 0, got %d", got)
	}
}

func assertSelected(t *testing.T, v *AppSwitcherView, want string) {
	t.Helper()
	app, ok := v.CurrentApp()
	if !ok {
		t.Fatalf("no selection, want %q", want)
	}
	if app.ID != want {
		t.Fatalf("selected %q, want %q", app.ID, want)
	}
}

func switcherIDs(m AppSwitcherModel) []string {
	ids := make([]string, len(m.Apps))
	for i, app := range m.Apps {
		ids[i] = app.ID
	}
	return ids
}
