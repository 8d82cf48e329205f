// Package present implements the presentation layer: turning a rendered
// frame into pixels on screen and turning keyboard state into joypad
// button state. The core itself stays free of this; cmd/dmgrun wires a
// Presenter in front of a machine.Machine.
package present

import "dmgcore/pkg/joypad"

// Presenter is the minimal surface every backend implements: a small
// interface (grounded on video_interface.go's VideoOutput) sized to
// what this core's single fixed 160x144 RGBA framebuffer needs.
type Presenter interface {
	Start() error
	Stop() error

	// Render pushes one RGBA8 frame (video.Video.Framebuffer, row-major,
	// ScreenWidth*ScreenHeight*4 bytes) to the display.
	Render(frame []byte) error

	// PollInput returns every button currently held, for the caller to
	// replay into a *joypad.Joypad via Reset+SetPressed each frame.
	PollInput() []joypad.Button

	IsStarted() bool
}

const (
	screenWidth  = 160
	screenHeight = 144
)
