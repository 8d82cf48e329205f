package memory

import "fmt"

const (
	fixedBankSize = 0x4000
	cartMinLength = 0x8000
)

// LoadError reports a cartridge that failed to load.
type LoadError struct {
	Length int
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cartridge load failed: %s (length=%d)", e.Reason, e.Length)
}

// Cartridge holds the two fixed-size ROM banks this core supports.
// Bytes beyond the first 0x8000 are accepted by NewCartridge but
// otherwise ignored — bank switching beyond these two banks is out of
// scope.
type Cartridge struct {
	fixed      [fixedBankSize]byte
	switchable [fixedBankSize]byte
}

// NewCartridge builds a Cartridge from a raw image. An image shorter
// than 0x8000 bytes cannot supply both fixed banks and is rejected.
func NewCartridge(image []byte) (*Cartridge, error) {
	if len(image) < cartMinLength {
		return nil, &LoadError{Length: len(image), Reason: "image shorter than the minimum two ROM banks (0x8000 bytes)"}
	}
	c := &Cartridge{}
	copy(c.fixed[:], image[:fixedBankSize])
	copy(c.switchable[:], image[fixedBankSize:cartMinLength])
	return c, nil
}

func (c *Cartridge) ReadByte(addr uint16) byte {
	if addr < fixedBankSize {
		return c.fixed[addr]
	}
	return c.switchable[addr-fixedBankSize]
}

// WriteByte accepts a write anywhere in ROM space with no observable
// effect — a real cartridge would treat this as a bank-switch command,
// which this core does not model.
func (c *Cartridge) WriteByte(uint16, byte) {}
