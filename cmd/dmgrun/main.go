// Command dmgrun runs a cartridge image against the core, either in a
// window, headless for a fixed cycle budget, or as a block-character
// terminal renderer. Its command tree is grounded on
// oisee-z80-optimizer/cmd/z80opt/main.go: a cobra root command with
// flag-bearing subcommands and fmt.Println/os.Exit(1) error reporting
// rather than a logging library, matching main.go's own plain
// diagnostics style.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dmgcore/pkg/machine"
	"dmgcore/pkg/memory"
	"dmgcore/pkg/present"
)

func main() {
	root := &cobra.Command{
		Use:   "dmgrun",
		Short: "Run or inspect a DMG-class cartridge image",
	}
	root.AddCommand(newRunCmd(), newInspectCmd())
	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		cartPath  string
		bootPath  string
		backend   string
		cycles    int64
		frameRate int
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a cartridge and run it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartridge(cartPath, bootPath, backend, cycles, frameRate, verbose)
		},
	}
	cmd.Flags().StringVar(&cartPath, "cart", "", "cartridge image path (required)")
	cmd.Flags().StringVar(&bootPath, "boot", "", "boot ROM path (256 bytes, optional)")
	cmd.Flags().StringVar(&backend, "backend", "", "presentation backend: ebiten (default) or terminal; with -tags headless: headless (default) or terminal")
	cmd.Flags().Int64Var(&cycles, "cycles", 0, "cycle budget for headless runs (0 = unbounded)")
	cmd.Flags().IntVar(&frameRate, "fps", 60, "target frames per second for windowed/terminal backends")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print CPU state every frame")
	_ = cmd.MarkFlagRequired("cart")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var cartPath string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print cartridge diagnostics without running the core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectCartridge(cartPath)
		},
	}
	cmd.Flags().StringVar(&cartPath, "cart", "", "cartridge image path (required)")
	_ = cmd.MarkFlagRequired("cart")
	return cmd
}

func loadCartridgeImage(path string) (*memory.Cartridge, []byte, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading cartridge %s: %w", path, err)
	}
	cart, err := memory.NewCartridge(image)
	if err != nil {
		return nil, nil, err
	}
	return cart, image, nil
}

// inspectCartridge loads a cartridge and reports header-adjacent facts
// without driving the core — useful because this core implements only
// the two fixed ROM banks, and a user pointing it at a larger,
// bank-switched cartridge should be told so up front rather than have
// the upper banks silently ignored.
func inspectCartridge(cartPath string) error {
	_, image, err := loadCartridgeImage(cartPath)
	if err != nil {
		return err
	}
	fmt.Printf("file:        %s\n", cartPath)
	fmt.Printf("length:      %d bytes\n", len(image))
	fmt.Printf("entry point: %02X %02X %02X %02X\n", image[0x100], image[0x101], image[0x102], image[0x103])
	fmt.Printf("title:       %s\n", sanitizeTitle(image[0x134:0x144]))
	banks := len(image) / 0x4000
	fmt.Printf("ROM banks:   %d (0x4000 bytes each)\n", banks)
	if banks > 2 {
		fmt.Printf("warning: this core only maps the first two banks (fixed + switchable); bank switching is not implemented\n")
	}
	return nil
}

func sanitizeTitle(raw []byte) string {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		if b == 0 {
			break
		}
		if b < 0x20 || b > 0x7E {
			continue
		}
		out = append(out, b)
	}
	return string(out)
}

func loadBootImage(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	boot, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading boot ROM %s: %w", path, err)
	}
	if len(boot) != 256 {
		return nil, fmt.Errorf("boot ROM %s is %d bytes, want exactly 256", path, len(boot))
	}
	return boot, nil
}

func runCartridge(cartPath, bootPath, backend string, cycleBudget int64, frameRate int, verbose bool) error {
	cart, _, err := loadCartridgeImage(cartPath)
	if err != nil {
		return err
	}
	boot, err := loadBootImage(bootPath)
	if err != nil {
		return err
	}

	bus := memory.New(cart, boot)
	m := machine.New(bus)

	presenter, err := present.New(backend, "dmgcore - "+cartPath)
	if err != nil {
		return err
	}
	if err := presenter.Start(); err != nil {
		return fmt.Errorf("starting presenter: %w", err)
	}
	defer presenter.Stop()

	frameInterval := time.Second / time.Duration(frameRate)
	var frames uint64
	for {
		if cycleBudget > 0 && m.Cycles >= uint64(cycleBudget) {
			break
		}
		if !presenter.IsStarted() {
			break
		}

		for _, b := range presenter.PollInput() {
			bus.Joypad.SetPressed(b)
		}

		if err := m.RunFrame(); err != nil {
			return err
		}
		if err := presenter.Render(bus.Video.Framebuffer); err != nil {
			return fmt.Errorf("rendering frame %d: %w", frames, err)
		}
		frames++
		if verbose {
			fmt.Printf("frame %d cycles %d: %s\n", frames, m.Cycles, m.CPU.String())
		}

		bus.Joypad.Reset()
		time.Sleep(frameInterval)
	}
	return nil
}
