// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/workspace.go
// Summary: Workspace façade: owns the model, the views, gesture state and the icon pipeline.
// Usage: The compositor/input layer talks to this type only; views observe snapshots via the bus.
// Notes: Model writes hold mu; snapshots are cloned under the lock and broadcast after unlock.

package workspace

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stratawm/strata/appinfo"
	"github.com/stratawm/strata/config"
	"github.com/stratawm/strata/event"
	"github.com/stratawm/strata/layout"
	"github.com/stratawm/strata/scene"
	"github.com/stratawm/strata/shell"
)

// Workspace coordinates the model, the gesture controller and the views.
type Workspace struct {
	engine   scene.Engine
	cfg      config.Config
	resolver appinfo.Resolver
	layoutFn layout.Func

	mu    sync.RWMutex
	model *Model

	bus *event.Bus[Snapshot]

	workspaceLayer  scene.Layer
	backgroundLayer scene.Layer
	windowsLayer    scene.Layer
	overlayLayer    scene.Layer

	appSwitcher       *AppSwitcherView
	dock              *DockView
	windowSelector    *WindowSelectorView
	workspaceSelector *WorkspaceSelectorView
	background        *BackgroundView

	showAll            atomic.Bool
	showDesktop        atomic.Bool
	showAllGesture     atomic.Int32
	showDesktopGesture atomic.Int32

	exposeMu  sync.Mutex
	exposeBin map[shell.SurfaceID]scene.Rect

	viewsMu     sync.RWMutex
	windowViews map[shell.SurfaceID]*WindowView

	opMu     sync.Mutex
	opQueues map[shell.SurfaceID]*opQueue

	epochMu sync.Mutex
	epochs  map[string]uint64

	iconCh    chan iconResult
	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once

	tun tunables
}

// tunables caches the config values the hot paths read.
type tunables struct {
	selectorHeight float64
	paddingTop     float64
	paddingBottom  float64

	dockHiddenY float64
	dockExposeY float64
	drawerSize  float64

	showAllDuration     time.Duration
	showDesktopDuration time.Duration
	onThreshold         int32
	offThreshold        int32
	showAllExponent     float64

	unminimizeDelay    time.Duration
	unminimizeDuration time.Duration
}

func loadTunables(cfg config.Config) tunables {
	return tunables{
		selectorHeight:      cfg.GetFloat("workspace_selector", "height", 250),
		paddingTop:          cfg.GetFloat("workspace_selector", "padding_top", 10),
		paddingBottom:       cfg.GetFloat("workspace_selector", "padding_bottom", 10),
		dockHiddenY:         cfg.GetFloat("dock", "hidden_y", -20),
		dockExposeY:         cfg.GetFloat("dock", "expose_y", 250),
		drawerSize:          cfg.GetFloat("dock", "drawer_size", 130),
		showAllDuration:     cfg.GetDurationMS("gestures", "show_all_duration_ms", 200*time.Millisecond),
		showDesktopDuration: cfg.GetDurationMS("gestures", "show_desktop_duration_ms", 500*time.Millisecond),
		onThreshold:         int32(cfg.GetFloat("gestures", "on_threshold", 0.1) * gestureScale),
		offThreshold:        int32(cfg.GetFloat("gestures", "off_threshold", 0.9) * gestureScale),
		showAllExponent:     cfg.GetFloat("gestures", "show_all_exponent", 0.65),
		unminimizeDelay:     200 * time.Millisecond,
		unminimizeDuration:  300 * time.Millisecond,
	}
}

// New builds a workspace on the system configuration with no icon
// resolution. The compositor entry point uses NewWithDeps.
func New(engine scene.Engine) *Workspace {
	return NewWithDeps(engine, config.System(), appinfo.Nop{}, layout.Natural)
}

// NewWithDeps wires a Workspace with explicit dependencies. It exists
// primarily to support tests and alternative resolvers.
func NewWithDeps(engine scene.Engine, cfg config.Config, resolver appinfo.Resolver, layoutFn layout.Func) *Workspace {
	if resolver == nil {
		resolver = appinfo.Nop{}
	}
	if layoutFn == nil {
		layoutFn = layout.Natural
	}
	tun := loadTunables(cfg)

	workspaceLayer := engine.NewLayer()
	workspaceLayer.SetKey("workspace")

	backgroundLayer := engine.NewLayer()
	backgroundLayer.SetOpacity(0.0, nil)

	windowsLayer := engine.NewLayer()
	windowsLayer.SetKey("windows_container")

	overlayLayer := engine.NewLayer()
	overlayLayer.SetKey("overlay_view")

	workspaceSelectorLayer := engine.NewLayer()
	workspaceSelectorLayer.SetKey("workspace_selector_layer")

	engine.AddLayer(workspaceLayer)
	engine.AddLayerTo(backgroundLayer, workspaceLayer)
	engine.AddLayerTo(windowsLayer, workspaceLayer)
	engine.AddLayerTo(workspaceSelectorLayer, workspaceLayer)

	appSwitcher := NewAppSwitcherView(engine, cfg)
	dock := NewDockView(engine, cfg)

	engine.AddLayer(overlayLayer)

	dock.ViewLayer().SetPosition(scene.Point{X: 0, Y: tun.dockHiddenY}, nil)

	background := NewBackgroundView(backgroundLayer)
	if path := cfg.GetString("background", "image", ""); path != "" {
		if img, err := appinfo.LoadImage(path); err != nil {
			log.Printf("Workspace: background image %s: %v", path, err)
		} else {
			background.SetImage(img)
		}
	}

	windowSelector := NewWindowSelectorView(engine)
	workspaceSelector := NewWorkspaceSelectorView(workspaceSelectorLayer, cfg)

	w := &Workspace{
		engine:            engine,
		cfg:               cfg,
		resolver:          resolver,
		layoutFn:          layoutFn,
		model:             newModel(),
		bus:               event.NewBus[Snapshot](),
		workspaceLayer:    workspaceLayer,
		backgroundLayer:   backgroundLayer,
		windowsLayer:      windowsLayer,
		overlayLayer:      overlayLayer,
		appSwitcher:       appSwitcher,
		dock:              dock,
		windowSelector:    windowSelector,
		workspaceSelector: workspaceSelector,
		background:        background,
		exposeBin:         make(map[shell.SurfaceID]scene.Rect),
		windowViews:       make(map[shell.SurfaceID]*WindowView),
		opQueues:          make(map[shell.SurfaceID]*opQueue),
		epochs:            make(map[string]uint64),
		iconCh:            make(chan iconResult, 16),
		stopCh:            make(chan struct{}),
		doneCh:            make(chan struct{}),
		tun:               tun,
	}

	w.bus.Subscribe(appSwitcher)
	w.bus.Subscribe(dock)

	go w.runApplier()

	log.Printf("Workspace: created, drawer size %.0f, selector height %.0f", tun.drawerSize, tun.selectorHeight)
	return w
}

// Events exposes the snapshot bus for additional observers.
func (w *Workspace) Events() *event.Bus[Snapshot] {
	return w.bus
}

func (w *Workspace) Engine() scene.Engine                       { return w.engine }
func (w *Workspace) Dock() *DockView                            { return w.dock }
func (w *Workspace) AppSwitcher() *AppSwitcherView              { return w.appSwitcher }
func (w *Workspace) WindowSelector() *WindowSelectorView        { return w.windowSelector }
func (w *Workspace) WorkspaceSelector() *WorkspaceSelectorView  { return w.workspaceSelector }
func (w *Workspace) Background() *BackgroundView                { return w.background }
func (w *Workspace) WindowsLayer() scene.Layer                  { return w.windowsLayer }
func (w *Workspace) OverlayLayer() scene.Layer                  { return w.overlayLayer }

// IngestWindowElements resynchronizes the model from the shell's full
// window list and publishes one snapshot. Icon resolution for apps without
// one is scheduled fire-and-forget.
func (w *Workspace) IngestWindowElements(entries []WindowEntry) {
	w.mu.Lock()
	wantIcons := w.model.ingest(entries)
	w.model.version++
	snap := w.model.snapshot()
	w.mu.Unlock()

	w.scheduleIconResolve(wantIcons)
	w.bus.Broadcast(snap)
}

// UpdateWindowGeometry patches one window in place. Per-frame path: no
// snapshot is published.
func (w *Workspace) UpdateWindowGeometry(id shell.SurfaceID, frame shell.Frame) {
	w.mu.Lock()
	w.model.updateGeometry(id, frame)
	w.mu.Unlock()
}

// SetSize records the workspace extent and publishes. The layer scaffolding
// follows so gesture geometry sees the new bounds.
func (w *Workspace) SetSize(width, height float64) {
	w.workspaceLayer.SetSize(scene.Size{W: width, H: height}, nil)
	w.workspaceSelector.SetWidth(width)

	w.mu.Lock()
	w.model.width = int(width)
	w.model.version++
	snap := w.model.snapshot()
	w.mu.Unlock()

	w.bus.Broadcast(snap)
}

// Width returns the workspace pixel width from the last SetSize.
func (w *Workspace) Width() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.model.width
}

// Snapshot clones the current model without publishing.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.model.snapshot()
}

// CurrentApp returns the app the stacking order marks as current.
func (w *Workspace) CurrentApp() (Application, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	id, ok := w.model.currentAppID()
	if !ok {
		return Application{}, false
	}
	app, ok := w.model.application(id)
	if !ok {
		return Application{}, false
	}
	return *app, true
}

// CurrentAppWindows returns the surface ids of the current app, in stacking
// order.
func (w *Workspace) CurrentAppWindows() []shell.SurfaceID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	id, ok := w.model.currentAppID()
	if !ok {
		return nil
	}
	return w.model.appWindowIDs(id)
}

// AppWindows returns the surface ids owned by appID, in stacking order.
func (w *Workspace) AppWindows(appID string) []shell.SurfaceID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.model.appWindowIDs(appID)
}

// WindowForSurface returns a copy of the cached window record.
func (w *Workspace) WindowForSurface(id shell.SurfaceID) (Window, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	win, ok := w.model.windowFor(id)
	if !ok {
		return Window{}, false
	}
	return *win, true
}

// IsMinimized reports the minimized flag for a known surface.
func (w *Workspace) IsMinimized(id shell.SurfaceID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.model.isMinimized(id)
}

// QuitApp asks every window of the app to close. Close errors are logged
// and skipped; the shell reports the windows going away on a later ingest.
func (w *Workspace) QuitApp(appID string) {
	w.mu.RLock()
	ids := w.model.appWindowIDs(appID)
	elements := make([]shell.WindowElement, 0, len(ids))
	for _, id := range ids {
		if win, ok := w.model.windowFor(id); ok && win.Element != nil {
			elements = append(elements, win.Element)
		}
	}
	w.mu.RUnlock()

	for _, el := range elements {
		if err := el.RequestClose(); err != nil {
			log.Printf("Workspace: close request for %s failed: %v", el.SurfaceID(), err)
		}
	}
}

// QuitCurrentApp closes the app the model marks as current.
func (w *Workspace) QuitCurrentApp() {
	if app, ok := w.CurrentApp(); ok {
		w.QuitApp(app.ID)
	}
}

// QuitSwitcherApp closes the app selected in the app switcher.
func (w *Workspace) QuitSwitcherApp() {
	if app, ok := w.appSwitcher.CurrentApp(); ok {
		w.QuitApp(app.ID)
	}
}

// IsCursorOverDock hit-tests the dock strip.
func (w *Workspace) IsCursorOverDock(x, y float64) bool {
	return w.dock.Alive() && w.dock.ContainsPoint(x, y)
}

// ShowAll reports the settled show-all state.
func (w *Workspace) ShowAll() bool {
	return w.showAll.Load()
}

// ShowDesktop reports the settled show-desktop state.
func (w *Workspace) ShowDesktop() bool {
	return w.showDesktop.Load()
}

// SaveSnapshot persists the current model state through the store.
func (w *Workspace) SaveSnapshot(store *SnapshotStore) error {
	return store.Save(w.Snapshot())
}

// LoadSnapshot reads a persisted snapshot back. The result is returned, not
// applied: live window state comes only from the shell.
func (w *Workspace) LoadSnapshot(store *SnapshotStore) (Snapshot, error) {
	return store.Load()
}

// Close stops the icon applier and closes the bus. Further broadcasts are
// dropped by the bus; façade methods stay callable.
func (w *Workspace) Close() {
	w.closeOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.bus.Close()
	})
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}
