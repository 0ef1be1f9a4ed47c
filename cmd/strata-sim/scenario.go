// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/strata-sim/scenario.go
// Summary: YAML scenario format: synthetic windows plus scripted workspace steps.
// Notes: Decoding is strict, unknown fields fail early so typos surface before
// the UI starts. A scenario without steps ingests every declared window.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stratawm/strata/scene/memscene"
	"github.com/stratawm/strata/shell"
	"github.com/stratawm/strata/workspace"
)

// Scenario declares the synthetic windows available to the simulator and an
// optional scripted step list applied before interaction starts.
type Scenario struct {
	Size    ScenarioSize     `yaml:"size,omitempty"`
	Windows []ScenarioWindow `yaml:"windows"`
	Steps   []ScenarioStep   `yaml:"steps,omitempty"`
}

// ScenarioSize is the workspace extent in scene units.
type ScenarioSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ScenarioWindow is one synthetic toplevel surface.
type ScenarioWindow struct {
	ID    string  `yaml:"id"`
	App   string  `yaml:"app"`
	Title string  `yaml:"title,omitempty"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
}

// ScenarioStep is a single scripted action. Exactly one field may be set.
type ScenarioStep struct {
	// Ingest resynchronizes the workspace with the named windows; windows
	// left off the list depart, like a shell resync.
	Ingest     []string     `yaml:"ingest,omitempty"`
	Minimize   string       `yaml:"minimize,omitempty"`
	Unminimize string       `yaml:"unminimize,omitempty"`
	Gesture    *GestureStep `yaml:"gesture,omitempty"`
	// Switcher is one of next, previous, hide.
	Switcher string `yaml:"switcher,omitempty"`
	// Advance moves the animation clock forward by this many seconds.
	Advance float64       `yaml:"advance,omitempty"`
	Resize  *ScenarioSize `yaml:"resize,omitempty"`
}

// GestureStep feeds one swipe sample (or the gesture end) to the workspace.
type GestureStep struct {
	// Kind is show_all or show_desktop.
	Kind  string  `yaml:"kind"`
	Delta float64 `yaml:"delta,omitempty"`
	End   bool    `yaml:"end,omitempty"`
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	scn, err := decodeScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scn, nil
}

func decodeScenario(data []byte) (*Scenario, error) {
	var scn Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&scn); err != nil && err != io.EOF {
		return nil, err
	}
	scn.fillDefaults()
	if err := scn.validate(); err != nil {
		return nil, err
	}
	return &scn, nil
}

// defaultScenario gives the interactive mode something on screen when no
// scenario file is passed.
func defaultScenario() *Scenario {
	scn := &Scenario{
		Windows: []ScenarioWindow{
			{ID: "w1", App: "org.strata.editor", Title: "Editor", X: 90, Y: 60, W: 640, H: 420},
			{ID: "w2", App: "org.strata.terminal", Title: "Terminal", X: 420, Y: 220, W: 560, H: 360},
			{ID: "w3", App: "org.strata.files", Title: "Files", X: 720, Y: 120, W: 420, H: 500},
		},
	}
	scn.fillDefaults()
	return scn
}

func (s *Scenario) fillDefaults() {
	if s.Size.Width <= 0 {
		s.Size.Width = 1280
	}
	if s.Size.Height <= 0 {
		s.Size.Height = 800
	}
}

func (s *Scenario) validate() error {
	ids := make(map[string]bool, len(s.Windows))
	for i, w := range s.Windows {
		if w.ID == "" {
			return fmt.Errorf("window %d: missing id", i+1)
		}
		if w.App == "" {
			return fmt.Errorf("window %q: missing app", w.ID)
		}
		if ids[w.ID] {
			return fmt.Errorf("window %q: duplicate id", w.ID)
		}
		ids[w.ID] = true
	}
	for i, st := range s.Steps {
		if err := st.validate(ids); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st ScenarioStep) validate(windows map[string]bool) error {
	actions := 0
	if len(st.Ingest) > 0 {
		actions++
	}
	if st.Minimize != "" {
		actions++
	}
	if st.Unminimize != "" {
		actions++
	}
	if st.Gesture != nil {
		actions++
	}
	if st.Switcher != "" {
		actions++
	}
	if st.Advance != 0 {
		actions++
	}
	if st.Resize != nil {
		actions++
	}
	if actions != 1 {
		return fmt.Errorf("want exactly one action, got %d", actions)
	}

	for _, id := range st.Ingest {
		if !windows[id] {
			return fmt.Errorf("ingest: unknown window %q", id)
		}
	}
	if st.Minimize != "" && !windows[st.Minimize] {
		return fmt.Errorf("minimize: unknown window %q", st.Minimize)
	}
	if st.Unminimize != "" && !windows[st.Unminimize] {
		return fmt.Errorf("unminimize: unknown window %q", st.Unminimize)
	}
	if st.Gesture != nil {
		switch st.Gesture.Kind {
		case "show_all", "show_desktop":
		default:
			return fmt.Errorf("gesture: unknown kind %q", st.Gesture.Kind)
		}
	}
	switch st.Switcher {
	case "", "next", "previous", "hide":
	default:
		return fmt.Errorf("switcher: unknown action %q", st.Switcher)
	}
	if st.Advance < 0 {
		return fmt.Errorf("advance: negative clock step %v", st.Advance)
	}
	if st.Resize != nil && (st.Resize.Width <= 0 || st.Resize.Height <= 0) {
		return fmt.Errorf("resize: extent must be positive")
	}
	return nil
}

// simWindow pairs a synthetic shell element with the geometry it reports.
type simWindow struct {
	element *shell.WaylandWindow
	frame   shell.Frame
}

// simulation binds a workspace to the scenario's synthetic windows.
type simulation struct {
	ws      *workspace.Workspace
	eng     *memscene.Engine
	windows map[string]*simWindow
	order   []string
}

func newSimulation(ws *workspace.Workspace, eng *memscene.Engine, scn *Scenario) *simulation {
	sim := &simulation{
		ws:      ws,
		eng:     eng,
		windows: make(map[string]*simWindow, len(scn.Windows)),
	}
	for _, sw := range scn.Windows {
		el := shell.NewWaylandWindow(shell.SurfaceID(sw.ID), nil)
		el.SetAppID(sw.App)
		el.SetTitle(sw.Title)
		sim.windows[sw.ID] = &simWindow{
			element: el,
			frame:   shell.Frame{X: sw.X, Y: sw.Y, W: sw.W, H: sw.H, Title: sw.Title},
		}
		sim.order = append(sim.order, sw.ID)
	}
	return sim
}

// runScript applies the scripted steps. An empty script ingests every
// declared window so the interactive session starts populated.
func (s *simulation) runScript(steps []ScenarioStep) error {
	if len(steps) == 0 {
		return s.ingest(s.order)
	}
	for i, step := range steps {
		if err := s.applyStep(step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *simulation) applyStep(step ScenarioStep) error {
	switch {
	case len(step.Ingest) > 0:
		return s.ingest(step.Ingest)
	case step.Minimize != "":
		s.ws.MinimizeWindow(shell.SurfaceID(step.Minimize))
	case step.Unminimize != "":
		s.ws.UnminimizeWindow(shell.SurfaceID(step.Unminimize))
	case step.Gesture != nil:
		switch step.Gesture.Kind {
		case "show_all":
			s.ws.ExposeShowAll(step.Gesture.Delta, step.Gesture.End)
		case "show_desktop":
			s.ws.ExposeShowDesktop(step.Gesture.Delta, step.Gesture.End)
		}
	case step.Switcher != "":
		switch step.Switcher {
		case "next":
			s.ws.AppSwitcher().Next()
		case "previous":
			s.ws.AppSwitcher().Previous()
		case "hide":
			s.ws.AppSwitcher().Hide()
		}
	case step.Advance != 0:
		s.eng.Update(step.Advance)
	case step.Resize != nil:
		s.ws.SetSize(step.Resize.Width, step.Resize.Height)
	default:
		return fmt.Errorf("empty step")
	}
	return nil
}

func (s *simulation) ingest(ids []string) error {
	entries := make([]workspace.WindowEntry, 0, len(ids))
	for _, id := range ids {
		w, ok := s.windows[id]
		if !ok {
			return fmt.Errorf("unknown window %q", id)
		}
		entries = append(entries, workspace.WindowEntry{Element: w.element, Frame: w.frame})
	}
	s.ws.IngestWindowElements(entries)
	for _, id := range ids {
		s.ws.GetOrAddWindowView(shell.SurfaceID(id))
	}
	return nil
}

// minimizeCurrent parks the first restored window of the current app.
func (s *simulation) minimizeCurrent() {
	for _, id := range s.ws.CurrentAppWindows() {
		if !s.ws.IsMinimized(id) {
			s.ws.MinimizeWindow(id)
			return
		}
	}
}

// unminimizeFirst restores the oldest parked window.
func (s *simulation) unminimizeFirst() {
	for _, ref := range s.ws.Snapshot().Minimized {
		s.ws.UnminimizeWindow(ref.Surface)
		return
	}
}
