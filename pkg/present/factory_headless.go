//go:build headless

package present

import "fmt"

// New builds the Presenter named by backend under the headless build
// tag: only "headless" (the default) and "terminal" are available,
// since ebiten is excluded entirely from this build.
func New(backend, title string) (Presenter, error) {
	switch backend {
	case "", "headless":
		return NewHeadlessPresenter(title), nil
	case "terminal":
		return NewTerminalPresenter(title), nil
	default:
		return nil, fmt.Errorf("present: unknown backend %q (headless build)", backend)
	}
}
