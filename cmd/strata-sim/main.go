// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/strata-sim/main.go
// Summary: Interactive workspace simulator: synthetic windows, keyboard gestures,
// terminal scene rendering.
// Usage: Run `strata-sim` in a terminal, or `strata-sim -scenario demo.yaml
// -headless` to script a session and print the resulting snapshot.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/stratawm/strata/appinfo"
	"github.com/stratawm/strata/appinfo/fdo"
	"github.com/stratawm/strata/config"
	"github.com/stratawm/strata/layout"
	"github.com/stratawm/strata/scene/memscene"
	"github.com/stratawm/strata/scene/tcellscene"
	"github.com/stratawm/strata/workspace"
)

// gestureRamp is the swipe distance one keypress feeds into a gesture.
const gestureRamp = 0.1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("strata-sim", flag.ContinueOnError)
	scenarioPath := fs.String("scenario", "", "YAML scenario with synthetic windows and scripted steps")
	headless := fs.Bool("headless", false, "apply the scripted steps without a terminal UI and print the snapshot")
	savePath := fs.String("save", "", "write the final snapshot to this file on exit")
	configPath := fs.String("config", "", "workspace config JSON (default: the system strata.json)")
	iconCache := fs.String("icon-cache", "", "SQLite cache for desktop entry resolution (empty: uncached)")
	noIcons := fs.Bool("no-icons", false, "skip desktop entry and icon resolution")
	logPath := fs.String("log", "", "append log output to this file (interactive mode discards logs by default)")
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: strata-sim [flags]\n\nInteractive keys:\n")
		fmt.Fprintf(out, "  tab / shift-tab  cycle the app switcher\n")
		fmt.Fprintf(out, "  enter            hide the switcher\n")
		fmt.Fprintf(out, "  e / w            ramp the show-all gesture open / back\n")
		fmt.Fprintf(out, "  E                end the show-all gesture\n")
		fmt.Fprintf(out, "  d / s            ramp the show-desktop gesture open / back\n")
		fmt.Fprintf(out, "  D                end the show-desktop gesture\n")
		fmt.Fprintf(out, "  m / u            minimize / restore a window of the current app\n")
		fmt.Fprintf(out, "  q / esc          quit and print the snapshot\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	scn := defaultScenario()
	if *scenarioPath != "" {
		loaded, err := loadScenario(*scenarioPath)
		if err != nil {
			return fmt.Errorf("load scenario: %w", err)
		}
		scn = loaded
	}

	cfg := config.System()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		cfg = make(config.Config)
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	}

	interactive := !*headless && term.IsTerminal(int(os.Stdout.Fd()))
	if err := setupLogging(interactive, *logPath); err != nil {
		return err
	}

	var resolver appinfo.Resolver = appinfo.Nop{}
	if !*noIcons {
		fcfg := fdo.DefaultConfig()
		fcfg.CachePath = *iconCache
		if r, err := fdo.New(fcfg); err != nil {
			log.Printf("Sim: icon resolver disabled: %v", err)
		} else {
			resolver = r
			defer r.Close()
		}
	}

	eng := memscene.New()
	ws := workspace.NewWithDeps(eng, cfg, resolver, layout.Natural)
	defer ws.Close()
	ws.SetSize(scn.Size.Width, scn.Size.Height)

	sim := newSimulation(ws, eng, scn)
	if err := sim.runScript(scn.Steps); err != nil {
		return err
	}

	if interactive {
		if err := runInteractive(sim, scn); err != nil {
			return err
		}
	}

	return printSnapshot(sim, *savePath)
}

// setupLogging keeps log noise off the tcell display. Interactive sessions
// discard logs unless a file is given; headless runs keep stderr.
func setupLogging(interactive bool, path string) error {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		return nil
	}
	if interactive {
		log.SetOutput(io.Discard)
	}
	return nil
}

// runInteractive owns the animation clock and the key bindings; the view
// owns the terminal and the draw loop.
func runInteractive(sim *simulation, scn *Scenario) error {
	view, err := tcellscene.New(sim.eng, scn.Size.Width, scn.Size.Height)
	if err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer view.Close()

	errCh := make(chan error, 1)
	go func() { errCh <- view.Run() }()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-view.Keys():
			if handleKey(sim, ev) {
				return nil
			}
			view.RequestRefresh()
		case <-ticker.C:
			now := time.Now()
			sim.eng.Update(now.Sub(last).Seconds())
			last = now
			view.RequestRefresh()
		case err := <-errCh:
			return err
		case <-view.Done():
			return nil
		}
	}
}

// handleKey applies one key binding. Returns true to quit.
func handleKey(sim *simulation, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyTab:
		sim.ws.AppSwitcher().Next()
	case tcell.KeyBacktab:
		sim.ws.AppSwitcher().Previous()
	case tcell.KeyEnter:
		sim.ws.AppSwitcher().Hide()
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'e':
			sim.ws.ExposeShowAll(gestureRamp, false)
		case 'w':
			sim.ws.ExposeShowAll(-gestureRamp, false)
		case 'E':
			sim.ws.ExposeShowAll(0, true)
		case 'd':
			sim.ws.ExposeShowDesktop(gestureRamp, false)
		case 's':
			sim.ws.ExposeShowDesktop(-gestureRamp, false)
		case 'D':
			sim.ws.ExposeShowDesktop(0, true)
		case 'm':
			sim.minimizeCurrent()
		case 'u':
			sim.unminimizeFirst()
		}
	}
	return false
}

// printSnapshot emits the final model state as JSON and optionally persists
// it through the snapshot store.
func printSnapshot(sim *simulation, savePath string) error {
	snap := sim.ws.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	if savePath != "" {
		if err := sim.ws.SaveSnapshot(workspace.NewSnapshotStore(savePath)); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}
	return nil
}
