// Package memory implements the 16-bit flat address bus: partitioned
// dispatch across boot overlay, cartridge ROM, VRAM, work RAM, OAM,
// MMIO, HRAM and IE, plus the OAM-DMA transfer — memory_bus.rs:299
// left DMA as a stub comment with no logic; this module gives it a
// real implementation.
package memory

import (
	"fmt"

	"dmgcore/pkg/interrupt"
	"dmgcore/pkg/joypad"
	"dmgcore/pkg/timer"
	"dmgcore/pkg/video"
)

const (
	wramSize = 0x2000
	eramSize = 0x2000
	hramSize = 0x7F
)

// UnexpectedMMIOError reports an access to an MMIO address outside the
// documented register set: a fatal condition meant to surface ROM bugs
// or unimplemented hardware early, rather than absorb it silently like
// the documented no-op regions.
type UnexpectedMMIOError struct {
	Addr  uint16
	Write bool
}

func (e *UnexpectedMMIOError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("unexpected MMIO %s at 0x%04X", op, e.Addr)
}

// Bus wires the cartridge and every clocked peripheral behind the
// single 16-bit address space. It owns VRAM, OAM, work/external/high
// RAM, and the boot overlay; the CPU mutates all of these only through
// Bus.ReadByte/WriteByte.
type Bus struct {
	cart *Cartridge

	boot       [256]byte
	bootLoaded bool
	bootActive bool

	wram [wramSize]byte
	eram [eramSize]byte
	hram [hramSize]byte

	Video      *video.Video
	Timer      *timer.Timer
	Interrupts *interrupt.Controller
	Joypad     *joypad.Joypad
}

// New wires a Bus around cart with fresh peripherals. bootImage may be
// nil; if present it must be exactly 256 bytes.
func New(cart *Cartridge, bootImage []byte) *Bus {
	b := &Bus{
		cart:       cart,
		Video:      video.New(),
		Timer:      timer.New(),
		Interrupts: interrupt.New(),
		Joypad:     joypad.New(),
	}
	if len(bootImage) > 0 {
		copy(b.boot[:], bootImage)
		b.bootLoaded = true
		b.bootActive = true
	}
	return b
}

func (b *Bus) ReadByte(addr uint16) byte {
	switch {
	case addr <= 0x00FF && b.bootActive:
		return b.boot[addr]
	case addr <= 0x7FFF:
		return b.cart.ReadByte(addr)
	case addr <= 0x9FFF:
		return b.Video.ReadVRAM(addr - 0x8000)
	case addr <= 0xBFFF:
		return b.eram[addr-0xA000]
	case addr <= 0xDFFF:
		return b.wram[addr-0xC000]
	case addr <= 0xFDFF:
		return b.wram[addr-0xE000]
	case addr <= 0xFE9F:
		return b.Video.ReadOAM(addr - 0xFE00)
	case addr <= 0xFEFF:
		return 0xFF
	case addr <= 0xFF7F:
		return b.readMMIO(addr)
	case addr <= 0xFFFE:
		return b.hram[addr-0xFF80]
	default: // 0xFFFF
		return b.Interrupts.ReadIE()
	}
}

func (b *Bus) WriteByte(addr uint16, v byte) {
	switch {
	case addr <= 0x7FFF:
		b.cart.WriteByte(addr, v)
	case addr <= 0x9FFF:
		b.Video.WriteVRAM(addr-0x8000, v)
	case addr <= 0xBFFF:
		b.eram[addr-0xA000] = v
	case addr <= 0xDFFF:
		b.wram[addr-0xC000] = v
	case addr <= 0xFDFF:
		b.wram[addr-0xE000] = v
	case addr <= 0xFE9F:
		b.Video.WriteOAM(addr-0xFE00, v)
	case addr <= 0xFEFF:
		// unusable range: writes silently dropped
	case addr <= 0xFF7F:
		b.writeMMIO(addr, v)
	case addr <= 0xFFFE:
		b.hram[addr-0xFF80] = v
	default: // 0xFFFF
		b.Interrupts.WriteIE(v)
	}
}

func (b *Bus) readMMIO(addr uint16) byte {
	switch addr {
	case 0xFF00:
		return b.Joypad.Read()
	case 0xFF04:
		return b.Timer.ReadDivider()
	case 0xFF05:
		return b.Timer.ReadCounter()
	case 0xFF06:
		return b.Timer.ReadModulo()
	case 0xFF07:
		return b.Timer.ReadControl()
	case 0xFF0F:
		return b.Interrupts.ReadIF()
	case 0xFF40:
		return b.Video.ReadLCDC()
	case 0xFF41:
		return b.Video.ReadSTAT()
	case 0xFF42:
		return b.Video.ReadSCY()
	case 0xFF43:
		return b.Video.ReadSCX()
	case 0xFF44:
		return b.Video.ReadLY()
	case 0xFF45:
		return b.Video.ReadLYC()
	case 0xFF46:
		return 0xFF // DMA register is write-only in practice
	case 0xFF47:
		return b.Video.ReadBGP()
	case 0xFF48:
		return b.Video.ReadOBP0()
	case 0xFF49:
		return b.Video.ReadOBP1()
	case 0xFF4A:
		return b.Video.ReadWY()
	case 0xFF4B:
		return b.Video.ReadWX()
	case 0xFF50:
		if b.bootActive {
			return 0x00
		}
		return 0x01
	default:
		panic(&UnexpectedMMIOError{Addr: addr})
	}
}

func (b *Bus) writeMMIO(addr uint16, v byte) {
	switch addr {
	case 0xFF00:
		b.Joypad.Write(v)
	case 0xFF04:
		b.Timer.WriteDivider(v)
	case 0xFF05:
		b.Timer.WriteCounter(v)
	case 0xFF06:
		b.Timer.WriteModulo(v)
	case 0xFF07:
		b.Timer.WriteControl(v)
	case 0xFF0F:
		b.Interrupts.WriteIF(v)
	case 0xFF40:
		b.Video.WriteLCDC(v)
	case 0xFF41:
		b.Video.WriteSTAT(v)
	case 0xFF42:
		b.Video.WriteSCY(v)
	case 0xFF43:
		b.Video.WriteSCX(v)
	case 0xFF44:
		// LY is read-only; writes ignored
	case 0xFF45:
		b.Video.WriteLYC(v)
	case 0xFF46:
		b.runOAMDMA(v)
	case 0xFF47:
		b.Video.WriteBGP(v)
	case 0xFF48:
		b.Video.WriteOBP0(v)
	case 0xFF49:
		b.Video.WriteOBP1(v)
	case 0xFF4A:
		b.Video.WriteWY(v)
	case 0xFF4B:
		b.Video.WriteWX(v)
	case 0xFF50:
		b.bootActive = false
	default:
		panic(&UnexpectedMMIOError{Addr: addr, Write: true})
	}
}

// runOAMDMA copies 160 bytes from v*0x100 into OAM, as a write to
// 0xFF46 triggers on real hardware. The copy is functional only — no
// cycle-accurate timing is modeled.
func (b *Bus) runOAMDMA(v byte) {
	src := uint16(v) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.Video.WriteOAM(i, b.ReadByte(src+i))
	}
}

// Step advances every clocked peripheral by cycles and merges their
// interrupt assertions into IF.
func (b *Bus) Step(cycles int) {
	if overflowed := b.Timer.Step(cycles); overflowed {
		b.Interrupts.Request(interrupt.Timer)
	}
	vblank, stat := b.Video.Step(cycles)
	if vblank {
		b.Interrupts.Request(interrupt.VBlank)
	}
	if stat {
		b.Interrupts.Request(interrupt.LCDStat)
	}
}
