package interrupt

import "testing"

func TestHighBitsAlwaysReadAsSet(t *testing.T) {
	c := New()
	if c.ReadIE() != 0xE0 || c.ReadIF() != 0xE0 {
		t.Fatalf("IE=0x%02X IF=0x%02X, want 0xE0 0xE0 at reset", c.ReadIE(), c.ReadIF())
	}
	c.WriteIE(0xFF)
	c.WriteIF(0xFF)
	if c.ReadIE() != 0xFF || c.ReadIF() != 0xFF {
		t.Fatalf("IE=0x%02X IF=0x%02X, want 0xFF 0xFF after writing all bits", c.ReadIE(), c.ReadIF())
	}
}

func TestRequestAndClear(t *testing.T) {
	c := New()
	c.Request(Timer)
	if c.ReadIF()&(1<<Timer) == 0 {
		t.Fatalf("Timer bit not set after Request")
	}
	c.Clear(Timer)
	if c.ReadIF()&(1<<Timer) != 0 {
		t.Fatalf("Timer bit still set after Clear")
	}
}

func TestPendingRequiresBothIEAndIF(t *testing.T) {
	c := New()
	c.Request(Timer)
	if _, ok := c.Pending(); ok {
		t.Fatalf("Pending should be false when IE has not enabled the source")
	}
	c.WriteIE(1 << Timer)
	bit, ok := c.Pending()
	if !ok || bit != Timer {
		t.Fatalf("Pending = %v %v, want Timer true", bit, ok)
	}
}

func TestPendingPicksLowestBit(t *testing.T) {
	c := New()
	c.WriteIE(0x1F)
	c.Request(Joypad)
	c.Request(LCDStat)
	c.Request(Timer)
	bit, ok := c.Pending()
	if !ok || bit != LCDStat {
		t.Fatalf("Pending = %v %v, want LCDStat (lowest of the three)", bit, ok)
	}
}

func TestAnyPendingIgnoresIE(t *testing.T) {
	c := New()
	if c.AnyPending() {
		t.Fatalf("AnyPending should be false with nothing requested")
	}
	c.Request(Serial)
	if !c.AnyPending() {
		t.Fatalf("AnyPending must be true on any IF bit regardless of IE")
	}
}

func TestVectorTable(t *testing.T) {
	want := [5]uint16{0x40, 0x48, 0x50, 0x58, 0x60}
	if Vector != want {
		t.Fatalf("Vector = %v, want %v", Vector, want)
	}
}
