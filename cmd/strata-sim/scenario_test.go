// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/strata-sim/scenario_test.go
// Summary: Scenario decoding, validation, and scripted workspace runs.

package main

import (
	"strings"
	"testing"

	"github.com/stratawm/strata/appinfo"
	"github.com/stratawm/strata/config"
	"github.com/stratawm/strata/layout"
	"github.com/stratawm/strata/scene/memscene"
	"github.com/stratawm/strata/workspace"
)

const demoScenario = `
size:
  width: 1000
  height: 600
windows:
  - id: w1
    app: org.example.editor
    title: Editor
    x: 100
    y: 80
    w: 640
    h: 420
  - id: w2
    app: org.example.terminal
    x: 300
    y: 200
    w: 500
    h: 300
steps:
  - ingest: [w1, w2]
  - minimize: w1
  - advance: 0.4
  - gesture:
      kind: show_all
      delta: 0.5
  - gesture:
      kind: show_all
      end: true
  - advance: 0.25
`

func TestDecodeScenario(t *testing.T) {
	scn, err := decodeScenario([]byte(demoScenario))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if scn.Size.Width != 1000 || scn.Size.Height != 600 {
		t.Fatalf("size = %+v", scn.Size)
	}
	if len(scn.Windows) != 2 || scn.Windows[0].ID != "w1" || scn.Windows[1].App != "org.example.terminal" {
		t.Fatalf("windows = %+v", scn.Windows)
	}
	if len(scn.Steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(scn.Steps))
	}
	g := scn.Steps[3].Gesture
	if g == nil || g.Kind != "show_all" || g.Delta != 0.5 || g.End {
		t.Fatalf("gesture step = %+v", g)
	}
}

func TestDecodeScenarioRejectsUnknownFields(t *testing.T) {
	_, err := decodeScenario([]byte("windows:\n  - id: w1\n    app: a\n    frobnicate: 3\n"))
	if err == nil {
		t.Fatalf("unknown field should fail the decode")
	}
}

func TestDecodeScenarioAppliesSizeDefaults(t *testing.T) {
	scn, err := decodeScenario([]byte("windows:\n  - id: w1\n    app: a\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if scn.Size.Width != 1280 || scn.Size.Height != 800 {
		t.Fatalf("defaults not applied, size = %+v", scn.Size)
	}
}

func TestScenarioValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "duplicate window id",
			yaml: "windows:\n  - id: w1\n    app: a\n  - id: w1\n    app: b\n",
			want: "duplicate id",
		},
		{
			name: "missing app",
			yaml: "windows:\n  - id: w1\n",
			want: "missing app",
		},
		{
			name: "two actions in one step",
			yaml: "windows:\n  - id: w1\n    app: a\nsteps:\n  - minimize: w1\n    advance: 1\n",
			want: "exactly one action",
		},
		{
			name: "unknown gesture kind",
			yaml: "windows:\n  - id: w1\n    app: a\nsteps:\n  - gesture:\n      kind: wobble\n",
			want: "unknown kind",
		},
		{
			name: "unknown switcher action",
			yaml: "windows:\n  - id: w1\n    app: a\nsteps:\n  - switcher: sideways\n",
			want: "unknown action",
		},
		{
			name: "ingest references unknown window",
			yaml: "windows:\n  - id: w1\n    app: a\nsteps:\n  - ingest: [w9]\n",
			want: "unknown window",
		},
		{
			name: "negative advance",
			yaml: "windows:\n  - id: w1\n    app: a\nsteps:\n  - advance: -2\n",
			want: "negative clock step",
		},
	}
	for _, tc := range cases {
		_, err := decodeScenario([]byte(tc.yaml))
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestDefaultScenarioIsValid(t *testing.T) {
	scn := defaultScenario()
	if err := scn.validate(); err != nil {
		t.Fatalf("default scenario invalid: %v", err)
	}
	if len(scn.Windows) == 0 {
		t.Fatalf("default scenario should declare windows")
	}
	if scn.Size.Width <= 0 || scn.Size.Height <= 0 {
		t.Fatalf("default scenario missing size, got %+v", scn.Size)
	}
}

func newTestSimulation(t *testing.T, scn *Scenario) *simulation {
	t.Helper()
	eng := memscene.New()
	ws := workspace.NewWithDeps(eng, config.Config{}, appinfo.Nop{}, layout.Natural)
	t.Cleanup(ws.Close)
	ws.SetSize(scn.Size.Width, scn.Size.Height)
	return newSimulation(ws, eng, scn)
}

func TestRunScriptDrivesWorkspace(t *testing.T) {
	scn, err := decodeScenario([]byte(demoScenario))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	sim := newTestSimulation(t, scn)

	if err := sim.runScript(scn.Steps); err != nil {
		t.Fatalf("run script: %v", err)
	}

	snap := sim.ws.Snapshot()
	if len(snap.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(snap.Windows))
	}
	if len(snap.Minimized) != 1 || snap.Minimized[0].Surface != "w1" {
		t.Fatalf("expected w1 parked, got %+v", snap.Minimized)
	}
	if !sim.ws.ShowAll() {
		t.Fatalf("ended show-all gesture should settle on")
	}
	if _, ok := sim.ws.GetWindowView("w2"); !ok {
		t.Fatalf("ingest should create window views")
	}
}

func TestRunScriptEmptyIngestsAllWindows(t *testing.T) {
	scn := defaultScenario()
	sim := newTestSimulation(t, scn)

	if err := sim.runScript(nil); err != nil {
		t.Fatalf("run script: %v", err)
	}

	snap := sim.ws.Snapshot()
	if len(snap.Windows) != len(scn.Windows) {
		t.Fatalf("expected %d windows, got %d", len(scn.Windows), len(snap.Windows))
	}
}

func TestRunScriptRejectsUnknownWindow(t *testing.T) {
	scn := defaultScenario()
	sim := newTestSimulation(t, scn)

	if err := sim.applyStep(ScenarioStep{Ingest: []string{"nope"}}); err == nil {
		t.Fatalf("unknown window must fail the step")
	}
}
