package joypad

import "testing"

func TestNoColumnSelectedReadsAllOnes(t *testing.T) {
	j := New()
	j.Write(0x30) // both select bits set -> neither column selected
	j.SetPressed(A)
	if j.Read() != 0xFF {
		t.Fatalf("Read() = 0x%02X, want 0xFF with no column selected", j.Read())
	}
}

func TestDpadColumnReportsHeldDirections(t *testing.T) {
	j := New()
	j.Write(0x20) // bit4=0 selects dpad, bit5=1 buttons not selected
	j.SetPressed(Right)
	j.SetPressed(Down)
	got := j.Read()
	// low nibble: bit0=Right(pressed->0) bit1=Left(1) bit2=Up(1) bit3=Down(pressed->0)
	wantNibble := byte(0b0110)
	if got&0x0F != wantNibble {
		t.Fatalf("Read() low nibble = 0b%04b, want 0b%04b", got&0x0F, wantNibble)
	}
}

func TestButtonColumnReportsHeldButtons(t *testing.T) {
	j := New()
	j.Write(0x10) // bit5=0 selects buttons
	j.SetPressed(Start)
	got := j.Read()
	wantNibble := byte(0b0111) // bit3=Start pressed->0, others released->1
	if got&0x0F != wantNibble {
		t.Fatalf("Read() low nibble = 0b%04b, want 0b%04b", got&0x0F, wantNibble)
	}
}

func TestResetClearsAllHeldButtons(t *testing.T) {
	j := New()
	j.Write(0x20)
	j.SetPressed(Right)
	if j.Read()&0x01 != 0 {
		t.Fatalf("expected Right bit clear (pressed) before Reset")
	}
	j.Reset()
	if j.Read()&0x01 != 1 {
		t.Fatalf("expected Right bit set (released) after Reset")
	}
}

func TestUnselectedHighBitsAlwaysSet(t *testing.T) {
	j := New()
	j.Write(0x00)
	if j.Read()&0xC0 != 0xC0 {
		t.Fatalf("bits 6-7 must always read as 1, got 0x%02X", j.Read())
	}
}
