//go:build !headless

// Package present's ebiten backend, grounded on video_backend_ebiten.go:
// a mutex-guarded frame buffer fed by Render, blitted to an
// *ebiten.Image in Draw, with ebiten.IsKeyPressed polled in Update and
// translated to held buttons.
package present

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"dmgcore/pkg/joypad"
)

// scale is the integer window scale factor, following the ClampScale
// convention (1-4) but fixed here since this core has a single,
// non-negotiable resolution.
const scale = 4

// EbitenPresenter implements Presenter with a real window.
type EbitenPresenter struct {
	title string

	mu      sync.RWMutex
	frame   []byte
	img     *ebiten.Image
	started bool
	held    [8]bool
}

// NewEbitenPresenter returns a Presenter that opens a scaled window
// titled title on Start.
func NewEbitenPresenter(title string) *EbitenPresenter {
	return &EbitenPresenter{
		title: title,
		frame: make([]byte, screenWidth*screenHeight*4),
	}
}

func (e *EbitenPresenter) Start() error {
	if e.started {
		return nil
	}
	e.started = true
	ebiten.SetWindowSize(screenWidth*scale, screenHeight*scale)
	ebiten.SetWindowTitle(e.title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		if err := ebiten.RunGame(e); err != nil {
			fmt.Printf("present: ebiten exited: %v\n", err)
		}
	}()
	return nil
}

func (e *EbitenPresenter) Stop() error {
	e.started = false
	return nil
}

func (e *EbitenPresenter) IsStarted() bool { return e.started }

func (e *EbitenPresenter) Render(frame []byte) error {
	if len(frame) != len(e.frame) {
		return fmt.Errorf("present: frame length %d, want %d", len(frame), len(e.frame))
	}
	e.mu.Lock()
	copy(e.frame, frame)
	e.mu.Unlock()
	return nil
}

// keyMap pairs each joypad button with the key that drives it. Arrow
// keys for the d-pad, Z/X for A/B, Enter/RightShift for Start/Select —
// the layout real Game Boy emulators converged on.
var keyMap = [8]ebiten.Key{
	joypad.Right:  ebiten.KeyArrowRight,
	joypad.Left:   ebiten.KeyArrowLeft,
	joypad.Up:     ebiten.KeyArrowUp,
	joypad.Down:   ebiten.KeyArrowDown,
	joypad.A:      ebiten.KeyZ,
	joypad.B:      ebiten.KeyX,
	joypad.Select: ebiten.KeyShiftRight,
	joypad.Start:  ebiten.KeyEnter,
}

func (e *EbitenPresenter) PollInput() []joypad.Button {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var held []joypad.Button
	for b, pressed := range e.held {
		if pressed {
			held = append(held, joypad.Button(b))
		}
	}
	return held
}

// Update satisfies ebiten.Game: it is called on ebiten's own loop and
// just samples key state into held, so PollInput (called from the
// emulation goroutine) never touches ebiten's API directly.
func (e *EbitenPresenter) Update() error {
	if !e.started {
		return ebiten.Termination
	}
	e.mu.Lock()
	for b, key := range keyMap {
		e.held[b] = ebiten.IsKeyPressed(key)
	}
	e.mu.Unlock()
	return nil
}

func (e *EbitenPresenter) Draw(screen *ebiten.Image) {
	if e.img == nil {
		e.img = ebiten.NewImage(screenWidth, screenHeight)
	}
	e.mu.RLock()
	e.img.WritePixels(e.frame)
	e.mu.RUnlock()
	screen.DrawImage(e.img, nil)
}

func (e *EbitenPresenter) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}
