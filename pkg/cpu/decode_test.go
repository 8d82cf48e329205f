package cpu

import "testing"

// The eleven illegal unprefixed opcodes named in the component design.
var wantIllegal = []byte{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func TestDecodeUnprefixedIsTotal(t *testing.T) {
	illegal := make(map[byte]bool, len(wantIllegal))
	for _, op := range wantIllegal {
		illegal[op] = true
	}

	for b := 0; b < 256; b++ {
		inst := Decode(byte(b), false)
		if illegal[byte(b)] {
			if !inst.Undefined {
				t.Errorf("opcode 0x%02X: expected undefined, decoded as %s", b, mnemonicName(inst.Op))
			}
			continue
		}
		if inst.Undefined {
			t.Errorf("opcode 0x%02X: decoded as undefined but is not in the illegal set", b)
		}
		if inst.Op == OpUndefined {
			t.Errorf("opcode 0x%02X: zero-value mnemonic on a defined opcode", b)
		}
		if inst.Length < 1 || inst.Length > 3 {
			t.Errorf("opcode 0x%02X: implausible length %d", b, inst.Length)
		}
	}

	if len(illegal) != 11 {
		t.Fatalf("expected exactly 11 illegal opcodes, test table has %d", len(illegal))
	}
}

func TestDecodeCBIsTotalAndNeverUndefined(t *testing.T) {
	for b := 0; b < 256; b++ {
		inst := Decode(byte(b), true)
		if inst.Undefined {
			t.Errorf("CB opcode 0x%02X: decoded as undefined; CB table has no illegal entries", b)
		}
		if inst.Length != 2 {
			t.Errorf("CB opcode 0x%02X: expected length 2, got %d", b, inst.Length)
		}
		if !inst.Prefixed {
			t.Errorf("CB opcode 0x%02X: Prefixed flag not set", b)
		}
	}
}

func TestDecodeIndirectIncDecAddressing(t *testing.T) {
	cases := []struct {
		opcode byte
		op     Mnemonic
		dst    OperandKind
		src    OperandKind
	}{
		{0x02, OpLD, OperIndBC, OperReg8},
		{0x12, OpLD, OperIndDE, OperReg8},
		{0x0A, OpLD, OperReg8, OperIndBC},
		{0x1A, OpLD, OperReg8, OperIndDE},
		{0x22, OpLD, OperIndInc, OperReg8},
		{0x2A, OpLD, OperReg8, OperIndInc},
		{0x32, OpLD, OperIndDec, OperReg8},
		{0x3A, OpLD, OperReg8, OperIndDec},
	}
	for _, c := range cases {
		inst := Decode(c.opcode, false)
		if inst.Op != c.op || inst.Dst.Kind != c.dst || inst.Src.Kind != c.src {
			t.Errorf("opcode 0x%02X: got op=%s dst=%d src=%d, want op=%s dst=%d src=%d",
				c.opcode, mnemonicName(inst.Op), inst.Dst.Kind, inst.Src.Kind,
				mnemonicName(c.op), c.dst, c.src)
		}
	}
}

func TestDecodeConditionalBranchesCarryCondition(t *testing.T) {
	inst := Decode(0xC2, false) // JP NZ,nn
	if inst.Op != OpJP || inst.Cond != CondNZ || inst.Length != 3 {
		t.Fatalf("JP NZ,nn decoded wrong: %+v", inst)
	}
	inst = Decode(0xDA, false) // JP C,nn
	if inst.Op != OpJP || inst.Cond != CondC {
		t.Fatalf("JP C,nn decoded wrong: %+v", inst)
	}
	inst = Decode(0x28, false) // JR Z,e8
	if inst.Op != OpJR || inst.Cond != CondZ || inst.Length != 2 {
		t.Fatalf("JR Z,e8 decoded wrong: %+v", inst)
	}
}

func TestDecodeRSTVectors(t *testing.T) {
	for i, opcode := range []byte{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF} {
		inst := Decode(opcode, false)
		if inst.Op != OpRST || int(inst.Bit) != i {
			t.Errorf("RST opcode 0x%02X: got bit=%d, want %d", opcode, inst.Bit, i)
		}
	}
}

func TestDecodeCBBlockBoundaries(t *testing.T) {
	if inst := Decode(0x00, true); inst.Op != OpRLC {
		t.Fatalf("CB 0x00 should be RLC, got %s", mnemonicName(inst.Op))
	}
	if inst := Decode(0x3F, true); inst.Op != OpSRL {
		t.Fatalf("CB 0x3F should be SRL, got %s", mnemonicName(inst.Op))
	}
	if inst := Decode(0x40, true); inst.Op != OpBIT || inst.Bit != 0 {
		t.Fatalf("CB 0x40 should be BIT 0,B, got %+v", inst)
	}
	if inst := Decode(0x7F, true); inst.Op != OpBIT || inst.Bit != 7 {
		t.Fatalf("CB 0x7F should be BIT 7,A, got %+v", inst)
	}
	if inst := Decode(0x80, true); inst.Op != OpRES || inst.Bit != 0 {
		t.Fatalf("CB 0x80 should be RES 0,B, got %+v", inst)
	}
	if inst := Decode(0xBF, true); inst.Op != OpRES || inst.Bit != 7 {
		t.Fatalf("CB 0xBF should be RES 7,A, got %+v", inst)
	}
	if inst := Decode(0xC0, true); inst.Op != OpSET || inst.Bit != 0 {
		t.Fatalf("CB 0xC0 should be SET 0,B, got %+v", inst)
	}
	if inst := Decode(0xFF, true); inst.Op != OpSET || inst.Bit != 7 {
		t.Fatalf("CB 0xFF should be SET 7,A, got %+v", inst)
	}
}

func TestDecodePushPopAFSpecialCase(t *testing.T) {
	inst := Decode(0xF5, false) // PUSH AF
	if inst.Op != OpPUSH || inst.Dst.Kind != OperRegAF {
		t.Fatalf("PUSH AF decoded wrong: %+v", inst)
	}
	inst = Decode(0xF1, false) // POP AF
	if inst.Op != OpPOP || inst.Dst.Kind != OperRegAF {
		t.Fatalf("POP AF decoded wrong: %+v", inst)
	}
	inst = Decode(0xC5, false) // PUSH BC
	if inst.Op != OpPUSH || inst.Dst.Kind != OperReg16 || inst.Dst.Pair != PairBC {
		t.Fatalf("PUSH BC decoded wrong: %+v", inst)
	}
}

func TestDecodeHaltIsNotLDHLHL(t *testing.T) {
	inst := Decode(0x76, false)
	if inst.Op != OpHALT {
		t.Fatalf("opcode 0x76 must decode as HALT, got %s", mnemonicName(inst.Op))
	}
}
