package cpu

// Decode translates one opcode byte into an Instruction. prefixed is
// true when the byte follows a 0xCB prefix byte (selecting the second,
// total 256-entry table). Decode never touches memory: it is a pure
// function of (opcode, prefixed).
//
// Structural layout follows the real SM83 encoding: the regular blocks
// (8-bit loads, ALU-over-r, and the entire CB table) are built from the
// 3-bit register/operation fields rather than hand-enumerated, mirroring
// how a regs8 lookup array turns an encoded field into a register
// reference (cpu_z80.go).
func Decode(opcode byte, prefixed bool) Instruction {
	if prefixed {
		return decodeCB(opcode)
	}
	return decodeBase(opcode)
}

// reg8FromBits maps the 3-bit register field used throughout the
// unprefixed and CB tables to an Operand. Field value 6 means (HL).
func reg8FromBits(bits byte) Operand {
	switch bits {
	case 0:
		return Operand{Kind: OperReg8, Reg: RegB}
	case 1:
		return Operand{Kind: OperReg8, Reg: RegC}
	case 2:
		return Operand{Kind: OperReg8, Reg: RegD}
	case 3:
		return Operand{Kind: OperReg8, Reg: RegE}
	case 4:
		return Operand{Kind: OperReg8, Reg: RegH}
	case 5:
		return Operand{Kind: OperReg8, Reg: RegL}
	case 6:
		return Operand{Kind: OperIndHL}
	default:
		return Operand{Kind: OperReg8, Reg: RegA}
	}
}

// isIndHL is true when bits==6 (the operand is (HL), costing extra cycles).
func isIndHL(bits byte) bool { return bits == 6 }

var pairSPTable = [4]RegPair{PairBC, PairDE, PairHL, PairSP}
var condTable = [4]Condition{CondNZ, CondZ, CondNC, CondC}

var illegalOpcodes = map[byte]bool{
	0xD3: true, 0xDB: true, 0xDD: true, 0xE3: true, 0xE4: true,
	0xEB: true, 0xEC: true, 0xED: true, 0xF4: true, 0xFC: true, 0xFD: true,
}

// aluMnemonics is the order of the eight ALU-over-r operations as laid
// out in the 0x80-0xBF and 0xC6/0xCE/.../0xFE blocks.
var aluMnemonics = [8]Mnemonic{OpADD, OpADC, OpSUB, OpSBC, OpAND, OpXOR, OpOR, OpCP}

func operandLength(op Operand) uint8 {
	switch op.Kind {
	case OperImm8, OperIOImm8:
		return 1
	case OperImm16, OperAddr16:
		return 2
	case OperSPPlusE:
		return 1
	default:
		return 0
	}
}

func decodeBase(opcode byte) Instruction {
	inst := Instruction{Opcode: opcode, Length: 1}

	if illegalOpcodes[opcode] {
		inst.Op = OpUndefined
		inst.Undefined = true
		return inst
	}

	y := (opcode >> 3) & 0x07
	z := opcode & 0x07

	switch {
	case opcode == 0x00:
		inst.Op = OpNOP
	case opcode == 0x10:
		inst.Op = OpSTOP
		inst.Length = 2
	case opcode == 0x76:
		inst.Op = OpHALT
	case opcode >= 0x40 && opcode <= 0x7F:
		// LD r,r' block (0x76 already handled above as HALT).
		inst.Op = OpLD
		inst.Dst = reg8FromBits(y)
		inst.Src = reg8FromBits(z)
	case opcode >= 0x80 && opcode <= 0xBF:
		// ALU A,r block.
		inst.Op = aluMnemonics[y]
		inst.Src = reg8FromBits(z)
	case opcode&0xC7 == 0x04:
		// INC r8 (bits 00yyy100)
		inst.Op = OpINC
		inst.Dst = reg8FromBits(y)
	case opcode&0xC7 == 0x05:
		// DEC r8 (bits 00yyy101)
		inst.Op = OpDEC
		inst.Dst = reg8FromBits(y)
	case opcode&0xC7 == 0x06:
		// LD r8,n (bits 00yyy110)
		inst.Op = OpLD
		inst.Dst = reg8FromBits(y)
		inst.Src = Operand{Kind: OperImm8}
		inst.Length = 2
	case opcode&0xCF == 0x01:
		// LD rr,nn (bits 00pp0001)
		inst.Op = OpLD16
		inst.Dst = Operand{Kind: OperReg16, Pair: pairSPTable[(opcode>>4)&3]}
		inst.Src = Operand{Kind: OperImm16}
		inst.Length = 3
	case opcode&0xCF == 0x03:
		// INC rr
		inst.Op = OpINC16
		inst.Dst = Operand{Kind: OperReg16, Pair: pairSPTable[(opcode>>4)&3]}
	case opcode&0xCF == 0x0B:
		// DEC rr
		inst.Op = OpDEC16
		inst.Dst = Operand{Kind: OperReg16, Pair: pairSPTable[(opcode>>4)&3]}
	case opcode&0xCF == 0x09:
		// ADD HL,rr
		inst.Op = OpADDHL
		inst.Src = Operand{Kind: OperReg16, Pair: pairSPTable[(opcode>>4)&3]}
	case opcode == 0x02: // LD (BC),A
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperIndBC}
		inst.Src = Operand{Kind: OperReg8, Reg: RegA}
	case opcode == 0x12: // LD (DE),A
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperIndDE}
		inst.Src = Operand{Kind: OperReg8, Reg: RegA}
	case opcode == 0x0A: // LD A,(BC)
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperReg8, Reg: RegA}
		inst.Src = Operand{Kind: OperIndBC}
	case opcode == 0x1A: // LD A,(DE)
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperReg8, Reg: RegA}
		inst.Src = Operand{Kind: OperIndDE}
	case opcode == 0x22: // LD (HL+),A
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperIndInc}
		inst.Src = Operand{Kind: OperReg8, Reg: RegA}
	case opcode == 0x2A: // LD A,(HL+)
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperReg8, Reg: RegA}
		inst.Src = Operand{Kind: OperIndInc}
	case opcode == 0x32: // LD (HL-),A
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperIndDec}
		inst.Src = Operand{Kind: OperReg8, Reg: RegA}
	case opcode == 0x3A: // LD A,(HL-)
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperReg8, Reg: RegA}
		inst.Src = Operand{Kind: OperIndDec}
	case opcode == 0x08: // LD (nn),SP
		inst.Op = OpLD16
		inst.Dst = Operand{Kind: OperAddr16}
		inst.Src = Operand{Kind: OperReg16, Pair: PairSP}
		inst.Length = 3
	case opcode == 0xF9: // LD SP,HL
		inst.Op = OpLD16
		inst.Dst = Operand{Kind: OperReg16, Pair: PairSP}
		inst.Src = Operand{Kind: OperReg16, Pair: PairHL}
	case opcode == 0xF8: // LD HL,SP+e8
		inst.Op = OpLD16
		inst.Dst = Operand{Kind: OperReg16, Pair: PairHL}
		inst.Src = Operand{Kind: OperSPPlusE}
		inst.Length = 2
	case opcode == 0xE8: // ADD SP,e8
		inst.Op = OpADDSP
		inst.Src = Operand{Kind: OperSPPlusE}
		inst.Length = 2
	case opcode&0xC7 == 0xC6:
		// ALU A,n (bits 11yyy110)
		inst.Op = aluMnemonics[y]
		inst.Src = Operand{Kind: OperImm8}
		inst.Length = 2
	case opcode&0xCF == 0xC5:
		// PUSH rr (AF in place of SP)
		inst.Op = OpPUSH
		inst.Dst = pushPopOperand((opcode >> 4) & 3)
	case opcode&0xCF == 0xC1:
		// POP rr
		inst.Op = OpPOP
		inst.Dst = pushPopOperand((opcode >> 4) & 3)
	case opcode == 0xC3: // JP nn
		inst.Op = OpJP
		inst.Src = Operand{Kind: OperImm16}
		inst.Length = 3
	case opcode == 0xE9: // JP (HL)
		inst.Op = OpJPHL
	case opcode&0xE7 == 0xC2 && opcode != 0xE9:
		// JP cc,nn
		inst.Op = OpJP
		inst.Cond = condTable[(opcode>>3)&3]
		inst.Src = Operand{Kind: OperImm16}
		inst.Length = 3
	case opcode == 0x18: // JR e8
		inst.Op = OpJR
		inst.Src = Operand{Kind: OperImm8}
		inst.Length = 2
	case opcode&0xE7 == 0x20:
		// JR cc,e8
		inst.Op = OpJR
		inst.Cond = condTable[(opcode>>3)&3]
		inst.Src = Operand{Kind: OperImm8}
		inst.Length = 2
	case opcode == 0xCD: // CALL nn
		inst.Op = OpCALL
		inst.Src = Operand{Kind: OperImm16}
		inst.Length = 3
	case opcode&0xE7 == 0xC4:
		// CALL cc,nn
		inst.Op = OpCALL
		inst.Cond = condTable[(opcode>>3)&3]
		inst.Src = Operand{Kind: OperImm16}
		inst.Length = 3
	case opcode == 0xC9: // RET
		inst.Op = OpRET
	case opcode == 0xD9: // RETI
		inst.Op = OpRETI
	case opcode&0xE7 == 0xC0:
		// RET cc
		inst.Op = OpRET
		inst.Cond = condTable[(opcode>>3)&3]
	case opcode&0xC7 == 0xC7:
		// RST n
		inst.Op = OpRST
		inst.Bit = (opcode >> 3) & 7
	case opcode == 0xE0: // LDH (n),A
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperIOImm8}
		inst.Src = Operand{Kind: OperReg8, Reg: RegA}
		inst.Length = 2
	case opcode == 0xF0: // LDH A,(n)
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperReg8, Reg: RegA}
		inst.Src = Operand{Kind: OperIOImm8}
		inst.Length = 2
	case opcode == 0xE2: // LD (C),A
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperIOC}
		inst.Src = Operand{Kind: OperReg8, Reg: RegA}
	case opcode == 0xF2: // LD A,(C)
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperReg8, Reg: RegA}
		inst.Src = Operand{Kind: OperIOC}
	case opcode == 0xEA: // LD (nn),A
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperAddr16}
		inst.Src = Operand{Kind: OperReg8, Reg: RegA}
		inst.Length = 3
	case opcode == 0xFA: // LD A,(nn)
		inst.Op = OpLD
		inst.Dst = Operand{Kind: OperReg8, Reg: RegA}
		inst.Src = Operand{Kind: OperAddr16}
		inst.Length = 3
	case opcode == 0xF3: // DI
		inst.Op = OpDI
	case opcode == 0xFB: // EI
		inst.Op = OpEI
	case opcode == 0x3F: // CCF
		inst.Op = OpCCF
	case opcode == 0x37: // SCF
		inst.Op = OpSCF
	case opcode == 0x27: // DAA
		inst.Op = OpDAA
	case opcode == 0x2F: // CPL
		inst.Op = OpCPL
	case opcode == 0x07: // RLCA
		inst.Op = OpRLCA
	case opcode == 0x17: // RLA
		inst.Op = OpRLA
	case opcode == 0x0F: // RRCA
		inst.Op = OpRRCA
	case opcode == 0x1F: // RRA
		inst.Op = OpRRA
	default:
		inst.Op = OpUndefined
		inst.Undefined = true
	}

	if inst.Length == 1 {
		inst.Length = 1 + operandLength(inst.Dst) + operandLength(inst.Src)
	}
	return inst
}

func pushPopOperand(bits byte) Operand {
	if bits == 3 {
		return Operand{Kind: OperRegAF}
	}
	return Operand{Kind: OperReg16, Pair: pairSPTable[bits]}
}

// cbRotateMnemonics is the order of the eight rotate/shift operations
// across the 0x00-0x3F CB block.
var cbRotateMnemonics = [8]Mnemonic{OpRLC, OpRRC, OpRL, OpRR, OpSLA, OpSRA, OpSWAP, OpSRL}

// decodeCB is total over 0x00-0xFF by construction: every byte falls
// into exactly one of the four regular 64-entry blocks.
func decodeCB(opcode byte) Instruction {
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07
	inst := Instruction{Opcode: opcode, Prefixed: true, Length: 2}
	operand := reg8FromBits(z)

	switch {
	case opcode < 0x40:
		inst.Op = cbRotateMnemonics[y]
		inst.Dst = operand
	case opcode < 0x80:
		inst.Op = OpBIT
		inst.Dst = operand
		inst.Bit = y
	case opcode < 0xC0:
		inst.Op = OpRES
		inst.Dst = operand
		inst.Bit = y
	default:
		inst.Op = OpSET
		inst.Dst = operand
		inst.Bit = y
	}
	return inst
}
