package cpu

import "testing"

func TestAdd8HalfAndFullCarry(t *testing.T) {
	var r Registers
	r.A = 0xFE
	add8(&r, 3, 0)
	if r.A != 0x01 {
		t.Fatalf("A = 0x%02X, want 0x01", r.A)
	}
	z, n, h, c := UnpackFlags(r.F)
	if z || n || !h || !c {
		t.Fatalf("flags Z=%v N=%v H=%v C=%v, want Z=false N=false H=true C=true", z, n, h, c)
	}
}

func TestAdd8ZeroResult(t *testing.T) {
	var r Registers
	r.A = 0x00
	add8(&r, 0x00, 0)
	if r.A != 0 || !r.Flag(FlagZ) {
		t.Fatalf("expected A=0 Z=true, got A=0x%02X F=0x%02X", r.A, r.F)
	}
}

func TestSub8SetsNAndBorrow(t *testing.T) {
	var r Registers
	r.A = 0x00
	sub8(&r, 0x01, 0, true)
	if r.A != 0xFF {
		t.Fatalf("A = 0x%02X, want 0xFF", r.A)
	}
	z, n, h, c := UnpackFlags(r.F)
	if z || !n || !h || !c {
		t.Fatalf("flags Z=%v N=%v H=%v C=%v, want Z=false N=true H=true C=true", z, n, h, c)
	}
}

func TestCPDoesNotStoreResult(t *testing.T) {
	var r Registers
	r.A = 0x10
	sub8(&r, 0x10, 0, false)
	if r.A != 0x10 {
		t.Fatalf("CP must not modify A, got 0x%02X", r.A)
	}
	if !r.Flag(FlagZ) {
		t.Fatalf("expected Z set for equal comparison")
	}
}

func TestDAAAfterAddition(t *testing.T) {
	// 0x0A as a packed-BCD stray nibble: DAA must fold it into 0x10.
	var r Registers
	r.A = 0x0A
	daa(&r)
	if r.A != 0x10 {
		t.Fatalf("DAA on 0x0A = 0x%02X, want 0x10", r.A)
	}
	if r.Flag(FlagH) {
		t.Fatalf("DAA must always clear H")
	}
}

func TestDAARoundTripsBCDAddition(t *testing.T) {
	var r Registers
	r.A = 0x45
	add8(&r, 0x38, 0) // 0x45 + 0x38 = 0x7D binary
	daa(&r)
	if r.A != 0x83 {
		t.Fatalf("BCD 45+38 via DAA = 0x%02X, want 0x83", r.A)
	}
}

func TestIncDecPreserveCarry(t *testing.T) {
	var r Registers
	r.SetFlag(FlagC, true)
	res := inc8(&r, 0xFF)
	if res != 0x00 || !r.Flag(FlagZ) || !r.Flag(FlagC) {
		t.Fatalf("INC wraparound: res=0x%02X Z=%v C=%v", res, r.Flag(FlagZ), r.Flag(FlagC))
	}
	res = dec8(&r, 0x00)
	if res != 0xFF || !r.Flag(FlagC) || !r.Flag(FlagN) {
		t.Fatalf("DEC wraparound: res=0x%02X C=%v N=%v", res, r.Flag(FlagC), r.Flag(FlagN))
	}
}

func TestAddHLCarriesFromBit11And15(t *testing.T) {
	var r Registers
	r.SetHL(0x0FFF)
	r.SetFlag(FlagZ, true)
	addHL(&r, 0x0001)
	if r.HL() != 0x1000 {
		t.Fatalf("HL = 0x%04X, want 0x1000", r.HL())
	}
	if !r.Flag(FlagH) || r.Flag(FlagC) || !r.Flag(FlagZ) {
		t.Fatalf("expected H=true C=false Z unchanged(true), got H=%v C=%v Z=%v",
			r.Flag(FlagH), r.Flag(FlagC), r.Flag(FlagZ))
	}
}

func TestAddSPSignedNegativeOffset(t *testing.T) {
	result, flags := addSPSigned(0x1000, -1)
	if result != 0x0FFF {
		t.Fatalf("SP+(-1) from 0x1000 = 0x%04X, want 0x0FFF", result)
	}
	_, n, _, _ := UnpackFlags(flags)
	if n {
		t.Fatalf("ADD SP,e8 must always clear N")
	}
}

func TestRotatesCarryOutMatchesShiftedBit(t *testing.T) {
	res := rlc(0x80)
	if res.value != 0x01 || !res.carryOut {
		t.Fatalf("RLC 0x80 = 0x%02X carry=%v, want 0x01 true", res.value, res.carryOut)
	}
	res = rrc(0x01)
	if res.value != 0x80 || !res.carryOut {
		t.Fatalf("RRC 0x01 = 0x%02X carry=%v, want 0x80 true", res.value, res.carryOut)
	}
	res = sra(0x81)
	if res.value != 0xC0 || !res.carryOut {
		t.Fatalf("SRA 0x81 = 0x%02X carry=%v, want 0xC0 true (sign bit preserved)", res.value, res.carryOut)
	}
	res = srl(0x81)
	if res.value != 0x40 || !res.carryOut {
		t.Fatalf("SRL 0x81 = 0x%02X carry=%v, want 0x40 true", res.value, res.carryOut)
	}
}

func TestSwapExchangesNibbles(t *testing.T) {
	if v := swap(0xA5); v != 0x5A {
		t.Fatalf("swap(0xA5) = 0x%02X, want 0x5A", v)
	}
}

func TestBitTestForcesHSetsZFromBit(t *testing.T) {
	var r Registers
	bitTest(&r, 0x00, 3)
	if !r.Flag(FlagZ) || !r.Flag(FlagH) || r.Flag(FlagN) {
		t.Fatalf("BIT on clear bit: Z=%v H=%v N=%v, want Z=true H=true N=false",
			r.Flag(FlagZ), r.Flag(FlagH), r.Flag(FlagN))
	}
	bitTest(&r, 0x08, 3)
	if r.Flag(FlagZ) {
		t.Fatalf("BIT on set bit should clear Z")
	}
}

func TestAccumulatorRotatesAlwaysClearZ(t *testing.T) {
	var r Registers
	r.A = 0x00
	applyAccumulatorRotateFlags(&r, true)
	if r.Flag(FlagZ) {
		t.Fatalf("RLCA/RLA/RRCA/RRA must force Z=false even when A ends at zero")
	}
}
