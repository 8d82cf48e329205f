//go:build !windows

// The terminal backend, grounded on terminal_host.go (golang.org/x/term
// raw-mode stdin) and video_terminal.go's cursorPollWindow idea for
// turning discrete keystrokes into a held/not held signal with no
// OS-level key-release event to rely on.
package present

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"dmgcore/pkg/joypad"
)

// heldWindow is how long a keystroke counts as "held" after arriving,
// matching cursorPollWindow's order of magnitude for terminal-driven
// polling loops.
const heldWindow = 200 * time.Millisecond

// shades runs darkest-to-lightest; framebuffer bytes are grayscale
// (video.Video.writePixel stores the same shade in R, G and B).
const shades = " .:-=+*#%@"

// TerminalPresenter downsamples the framebuffer to a block-character
// grid sized to the controlling terminal, and reads raw stdin for
// input — useful when no GUI is available.
type TerminalPresenter struct {
	fd       int
	oldState *term.State
	started  bool

	mu       sync.Mutex
	lastSeen [8]time.Time

	stopCh chan struct{}
	done   chan struct{}
}

func NewTerminalPresenter(string) *TerminalPresenter {
	return &TerminalPresenter{fd: int(os.Stdin.Fd())}
}

// keyBindings maps a raw stdin byte to the button it drives. wasd for
// the d-pad (arrow keys don't arrive as single bytes without parsing
// escape sequences, which a polling terminal presenter doesn't need),
// j/k for B/A, Enter/Space for Start/Select.
var keyBindings = map[byte]joypad.Button{
	'w': joypad.Up, 'a': joypad.Left, 's': joypad.Down, 'd': joypad.Right,
	'k': joypad.A, 'j': joypad.B,
	'\r': joypad.Start, '\n': joypad.Start, ' ': joypad.Select,
}

func (t *TerminalPresenter) Start() error {
	if t.started {
		return nil
	}
	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("present: failed to set raw terminal mode: %w", err)
	}
	t.oldState = oldState
	if err := syscall.SetNonblock(t.fd, true); err != nil {
		_ = term.Restore(t.fd, t.oldState)
		return fmt.Errorf("present: failed to set nonblocking stdin: %w", err)
	}
	t.started = true
	t.stopCh = make(chan struct{})
	t.done = make(chan struct{})
	go t.readLoop()
	return nil
}

func (t *TerminalPresenter) Stop() error {
	if !t.started {
		return nil
	}
	close(t.stopCh)
	<-t.done
	t.started = false
	if t.oldState != nil {
		err := term.Restore(t.fd, t.oldState)
		t.oldState = nil
		return err
	}
	return nil
}

func (t *TerminalPresenter) IsStarted() bool { return t.started }

func (t *TerminalPresenter) readLoop() {
	defer close(t.done)
	buf := make([]byte, 1)
	for {
		select {
		case <-t.stopCh:
			return
		default:
		}
		n, err := syscall.Read(t.fd, buf)
		if n > 0 {
			if b, ok := keyBindings[buf[0]]; ok {
				t.mu.Lock()
				t.lastSeen[b] = time.Now()
				t.mu.Unlock()
			}
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || n == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
	}
}

func (t *TerminalPresenter) PollInput() []joypad.Button {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	var held []joypad.Button
	for b, seen := range t.lastSeen {
		if !seen.IsZero() && now.Sub(seen) <= heldWindow {
			held = append(held, joypad.Button(b))
		}
	}
	return held
}

// Render downsamples frame to the controlling terminal's width and
// prints it as a block-character grid, falling back to a fixed
// 80x25 grid if the terminal size can't be queried.
func (t *TerminalPresenter) Render(frame []byte) error {
	cols, rows := 80, 25
	if w, h, err := term.GetSize(t.fd); err == nil && w > 0 && h > 0 {
		cols, rows = w, h-1
	}
	if cols > screenWidth {
		cols = screenWidth
	}
	if rows > screenHeight {
		rows = screenHeight
	}

	var b strings.Builder
	b.WriteString("\x1b[H")
	cellW := screenWidth / cols
	cellH := screenHeight / rows
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			b.WriteByte(shades[averageShade(frame, col*cellW, row*cellH, cellW, cellH)])
		}
		b.WriteByte('\n')
	}
	_, err := os.Stdout.WriteString(b.String())
	return err
}

func averageShade(frame []byte, x0, y0, w, h int) int {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	var sum, count int
	for y := y0; y < y0+h && y < screenHeight; y++ {
		for x := x0; x < x0+w && x < screenWidth; x++ {
			sum += int(frame[(y*screenWidth+x)*4])
			count++
		}
	}
	if count == 0 {
		return 0
	}
	// frame stores brightness (255 = white) and shades runs dark-to-light,
	// so the average maps straight onto the index with no inversion.
	avg := sum / count
	idx := avg * (len(shades) - 1) / 255
	return idx
}
