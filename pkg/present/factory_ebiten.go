//go:build !headless

package present

import "fmt"

// New builds the Presenter named by backend ("ebiten", "window" or ""
// for the windowed default; "terminal" for the block-character
// renderer), mirroring NewVideoOutput's backend switch.
func New(backend, title string) (Presenter, error) {
	switch backend {
	case "", "ebiten", "window":
		return NewEbitenPresenter(title), nil
	case "terminal":
		return NewTerminalPresenter(title), nil
	default:
		return nil, fmt.Errorf("present: unknown backend %q", backend)
	}
}
