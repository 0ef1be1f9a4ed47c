// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/tcellscene/view.go
// Summary: Terminal debug visualizer projecting a memscene layer tree onto tcell.
// Usage: Build with New (installs a real terminal screen) or NewWithScreen (an
// already initialized screen, e.g. tcell's simulation screen in tests), start
// the loop with Run, read key events from Keys.
// Notes: The view only reads the scene. The caller owns the engine clock and
// signals frames with RequestRefresh.

package tcellscene

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/stratawm/strata/scene/memscene"
)

// View renders the layer tree of an in-memory scene engine as bordered
// terminal boxes, one box per visible layer, labels taken from layer keys
// or content, z-order following attach order.
type View struct {
	src    *memscene.Engine
	screen tcell.Screen

	mu     sync.Mutex
	sceneW float64
	sceneH float64

	quit        chan struct{}
	keys        chan *tcell.EventKey
	refreshChan chan bool
	closeOnce   sync.Once

	styleCache map[styleKey]tcell.Style
}

// New initializes the terminal with tcell and attaches a visualizer to src.
// sceneW and sceneH give the scene coordinate extent mapped onto the screen.
func New(src *memscene.Engine, sceneW, sceneH float64) (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewWithScreen(src, screen, sceneW, sceneH), nil
}

// NewWithScreen attaches a visualizer to an already initialized screen.
func NewWithScreen(src *memscene.Engine, screen tcell.Screen, sceneW, sceneH float64) *View {
	defStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	screen.SetStyle(defStyle)
	screen.HideCursor()

	return &View{
		src:         src,
		screen:      screen,
		sceneW:      sceneW,
		sceneH:      sceneH,
		quit:        make(chan struct{}),
		keys:        make(chan *tcell.EventKey, 10),
		refreshChan: make(chan bool, 1),
		styleCache:  make(map[styleKey]tcell.Style),
	}
}

// Keys delivers key events to the owner of the view. The channel is never
// closed; select against Done.
func (v *View) Keys() <-chan *tcell.EventKey { return v.keys }

// Done is closed when the view shuts down.
func (v *View) Done() <-chan struct{} { return v.quit }

// SetSceneSize changes the scene extent mapped onto the terminal.
func (v *View) SetSceneSize(w, h float64) {
	v.mu.Lock()
	v.sceneW, v.sceneH = w, h
	v.mu.Unlock()
	v.RequestRefresh()
}

// RequestRefresh signals the loop to redraw on the next frame tick.
func (v *View) RequestRefresh() {
	select {
	case v.refreshChan <- true:
	default:
	}
}

// Run starts the event and rendering loop and blocks until Close.
func (v *View) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGWINCH)

	eventChan := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-v.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	dirty := true
	for {
		select {
		case <-sigChan:
			v.screen.Sync()
			dirty = true
		case ev := <-eventChan:
			v.handleEvent(ev)
			dirty = true
		case <-v.refreshChan:
			dirty = true
		case <-ticker.C:
			if dirty {
				v.draw()
				dirty = false
			}
		case <-v.quit:
			return nil
		}
	}
}

// handleEvent forwards keys to the owner and keeps the screen in sync on
// terminal resizes. Keys are dropped when the owner lags a full buffer.
func (v *View) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		select {
		case v.keys <- ev:
		default:
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
}

// Close stops the loop and restores the terminal.
func (v *View) Close() {
	v.closeOnce.Do(func() {
		close(v.quit)
		v.screen.Fini()
	})
}
