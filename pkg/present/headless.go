//go:build headless

// The headless backend, grounded on video_backend_headless.go:
// satisfies Presenter with no display, for CI and
// cmd/dmgrun -backend=headless.
package present

import (
	"sync/atomic"

	"dmgcore/pkg/joypad"
)

// HeadlessPresenter discards every frame and reports no input held. It
// exists so a cycle-budget run can exercise the full machine loop
// without a display.
type HeadlessPresenter struct {
	started    bool
	frameCount uint64
}

func NewHeadlessPresenter(string) *HeadlessPresenter {
	return &HeadlessPresenter{}
}

func (h *HeadlessPresenter) Start() error { h.started = true; return nil }
func (h *HeadlessPresenter) Stop() error  { h.started = false; return nil }
func (h *HeadlessPresenter) IsStarted() bool { return h.started }

func (h *HeadlessPresenter) Render(frame []byte) error {
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

func (h *HeadlessPresenter) FrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *HeadlessPresenter) PollInput() []joypad.Button { return nil }
