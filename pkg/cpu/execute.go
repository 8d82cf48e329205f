package cpu

// execute runs a decoded instruction to completion: all of its operand
// fetches, register/memory effects and flag updates, and returns its
// cycle cost. Conditional forms always consume their operand bytes
// even when the branch is not taken, matching real fetch behavior.
func (c *CPU) execute(inst Instruction) int {
	switch inst.Op {
	case OpNOP:
		return 4

	case OpHALT:
		c.Halted = true
		return 4

	case OpSTOP:
		c.fetchByte() // mandatory padding byte
		c.Halted = true
		return 4

	case OpLD:
		v := c.load8(inst.Src)
		c.store8(inst.Dst, v)
		return ldCycles(inst)

	case OpLD16:
		return c.executeLD16(inst)

	case OpPUSH:
		c.push16(c.getPairOrAF(inst.Dst))
		return 16

	case OpPOP:
		c.setPairOrAF(inst.Dst, c.pop16())
		return 12

	case OpADD:
		v := c.load8(inst.Src)
		add8(&c.Registers, v, 0)
		return aluCycles(inst)
	case OpADC:
		v := c.load8(inst.Src)
		add8(&c.Registers, v, boolBit(c.Flag(FlagC)))
		return aluCycles(inst)
	case OpSUB:
		v := c.load8(inst.Src)
		sub8(&c.Registers, v, 0, true)
		return aluCycles(inst)
	case OpSBC:
		v := c.load8(inst.Src)
		sub8(&c.Registers, v, boolBit(c.Flag(FlagC)), true)
		return aluCycles(inst)
	case OpAND:
		v := c.load8(inst.Src)
		and8(&c.Registers, v)
		return aluCycles(inst)
	case OpOR:
		v := c.load8(inst.Src)
		or8(&c.Registers, v)
		return aluCycles(inst)
	case OpXOR:
		v := c.load8(inst.Src)
		xor8(&c.Registers, v)
		return aluCycles(inst)
	case OpCP:
		v := c.load8(inst.Src)
		sub8(&c.Registers, v, 0, false)
		return aluCycles(inst)

	case OpINC:
		v := c.load8(inst.Dst)
		c.store8(inst.Dst, inc8(&c.Registers, v))
		return incDecCycles(inst.Dst)
	case OpDEC:
		v := c.load8(inst.Dst)
		c.store8(inst.Dst, dec8(&c.Registers, v))
		return incDecCycles(inst.Dst)

	case OpINC16:
		c.setPair(inst.Dst.Pair, c.getPair(inst.Dst.Pair)+1)
		return 8
	case OpDEC16:
		c.setPair(inst.Dst.Pair, c.getPair(inst.Dst.Pair)-1)
		return 8
	case OpADDHL:
		addHL(&c.Registers, c.getPair(inst.Src.Pair))
		return 8
	case OpADDSP:
		e := int8(c.fetchByte())
		result, flags := addSPSigned(c.SP, e)
		c.SP = result
		c.F = flags
		return 16

	case OpJP:
		target := c.fetchWord()
		taken := c.evalCond(inst.Cond)
		if taken {
			c.PC = target
		}
		return branchCycles(inst.Cond, taken, 16, 12)
	case OpJPHL:
		c.PC = c.HL()
		return 4
	case OpJR:
		e := int8(c.fetchByte())
		taken := c.evalCond(inst.Cond)
		if taken {
			c.PC = uint16(int32(c.PC) + int32(e))
		}
		return branchCycles(inst.Cond, taken, 12, 8)
	case OpCALL:
		target := c.fetchWord()
		taken := c.evalCond(inst.Cond)
		if taken {
			c.push16(c.PC)
			c.PC = target
		}
		return branchCycles(inst.Cond, taken, 24, 12)
	case OpRET:
		taken := c.evalCond(inst.Cond)
		if taken {
			c.PC = c.pop16()
		}
		if inst.Cond == CondNone {
			return 16
		}
		return branchCycles(inst.Cond, taken, 20, 8)
	case OpRETI:
		c.PC = c.pop16()
		c.IME = true
		c.imePending = 0
		return 16
	case OpRST:
		c.push16(c.PC)
		c.PC = uint16(inst.Bit) * 8
		return 16

	case OpDI:
		c.IME = false
		c.imePending = 0
		return 4
	case OpEI:
		c.imePending = 2
		return 4

	case OpCCF:
		ccf(&c.Registers)
		return 4
	case OpSCF:
		scf(&c.Registers)
		return 4
	case OpDAA:
		daa(&c.Registers)
		return 4
	case OpCPL:
		cpl(&c.Registers)
		return 4

	case OpRLCA:
		res := rlc(c.A)
		c.A = res.value
		applyAccumulatorRotateFlags(&c.Registers, res.carryOut)
		return 4
	case OpRLA:
		res := rl(c.A, c.Flag(FlagC))
		c.A = res.value
		applyAccumulatorRotateFlags(&c.Registers, res.carryOut)
		return 4
	case OpRRCA:
		res := rrc(c.A)
		c.A = res.value
		applyAccumulatorRotateFlags(&c.Registers, res.carryOut)
		return 4
	case OpRRA:
		res := rr(c.A, c.Flag(FlagC))
		c.A = res.value
		applyAccumulatorRotateFlags(&c.Registers, res.carryOut)
		return 4

	case OpRLC, OpRRC, OpRL, OpRR, OpSLA, OpSRA, OpSRL:
		return c.executeCBShift(inst)
	case OpSWAP:
		v := c.load8(inst.Dst)
		res := swap(v)
		c.store8(inst.Dst, res)
		c.F = PackFlags(res == 0, false, false, false)
		return cbCycles(inst.Dst)
	case OpBIT:
		v := c.load8(inst.Dst)
		bitTest(&c.Registers, v, inst.Bit)
		if inst.Dst.Kind == OperIndHL {
			return 12
		}
		return 8
	case OpRES:
		v := c.load8(inst.Dst)
		c.store8(inst.Dst, v&^(1<<inst.Bit))
		return cbCycles(inst.Dst)
	case OpSET:
		v := c.load8(inst.Dst)
		c.store8(inst.Dst, v|(1<<inst.Bit))
		return cbCycles(inst.Dst)
	}

	panic(&UndefinedOpcodeError{Opcode: inst.Opcode, PC: c.PC, Prior: c.last, Prefixed: inst.Prefixed})
}

func (c *CPU) executeLD16(inst Instruction) int {
	switch {
	case inst.Src.Kind == OperImm16 && inst.Dst.Kind == OperReg16:
		c.setPair(inst.Dst.Pair, c.fetchWord())
		return 12
	case inst.Dst.Kind == OperAddr16 && inst.Src.Pair == PairSP:
		addr := c.fetchWord()
		c.writeWord(addr, c.SP)
		return 20
	case inst.Dst.Pair == PairSP && inst.Src.Pair == PairHL:
		c.SP = c.HL()
		return 8
	case inst.Dst.Pair == PairHL && inst.Src.Kind == OperSPPlusE:
		e := int8(c.fetchByte())
		result, flags := addSPSigned(c.SP, e)
		c.SetHL(result)
		c.F = flags
		return 12
	}
	panic("unreachable LD16 form")
}

func (c *CPU) executeCBShift(inst Instruction) int {
	v := c.load8(inst.Dst)
	var res shiftResult
	switch inst.Op {
	case OpRLC:
		res = rlc(v)
	case OpRRC:
		res = rrc(v)
	case OpRL:
		res = rl(v, c.Flag(FlagC))
	case OpRR:
		res = rr(v, c.Flag(FlagC))
	case OpSLA:
		res = sla(v)
	case OpSRA:
		res = sra(v)
	case OpSRL:
		res = srl(v)
	}
	c.store8(inst.Dst, res.value)
	applyCBFlags(&c.Registers, res.value, res.carryOut)
	return cbCycles(inst.Dst)
}

func (c *CPU) evalCond(cond Condition) bool {
	switch cond {
	case CondNone:
		return true
	case CondZ:
		return c.Flag(FlagZ)
	case CondNZ:
		return !c.Flag(FlagZ)
	case CondC:
		return c.Flag(FlagC)
	case CondNC:
		return !c.Flag(FlagC)
	}
	return true
}

// load8 reads an 8-bit operand, fetching any immediate bytes it needs
// from the instruction stream.
func (c *CPU) load8(op Operand) byte {
	switch op.Kind {
	case OperReg8:
		return c.get8(op.Reg)
	case OperIndHL:
		return c.readByte(c.HL())
	case OperIndBC:
		return c.readByte(c.BC())
	case OperIndDE:
		return c.readByte(c.DE())
	case OperIndInc:
		v := c.readByte(c.HL())
		c.SetHL(c.HL() + 1)
		return v
	case OperIndDec:
		v := c.readByte(c.HL())
		c.SetHL(c.HL() - 1)
		return v
	case OperImm8:
		return c.fetchByte()
	case OperIOC:
		return c.readByte(0xFF00 + uint16(c.C))
	case OperIOImm8:
		n := c.fetchByte()
		return c.readByte(0xFF00 + uint16(n))
	case OperAddr16:
		return c.readByte(c.fetchWord())
	}
	panic("invalid 8-bit load source")
}

// store8 writes an 8-bit operand, fetching any immediate address bytes
// it needs from the instruction stream.
func (c *CPU) store8(op Operand, v byte) {
	switch op.Kind {
	case OperReg8:
		c.set8(op.Reg, v)
	case OperIndHL:
		c.writeByte(c.HL(), v)
	case OperIndBC:
		c.writeByte(c.BC(), v)
	case OperIndDE:
		c.writeByte(c.DE(), v)
	case OperIndInc:
		c.writeByte(c.HL(), v)
		c.SetHL(c.HL() + 1)
	case OperIndDec:
		c.writeByte(c.HL(), v)
		c.SetHL(c.HL() - 1)
	case OperIOC:
		c.writeByte(0xFF00+uint16(c.C), v)
	case OperIOImm8:
		n := c.fetchByte()
		c.writeByte(0xFF00+uint16(n), v)
	case OperAddr16:
		c.writeByte(c.fetchWord(), v)
	default:
		panic("invalid 8-bit store destination")
	}
}

func (c *CPU) get8(r Reg8) byte {
	switch r {
	case RegA:
		return c.A
	case RegB:
		return c.B
	case RegC:
		return c.C
	case RegD:
		return c.D
	case RegE:
		return c.E
	case RegH:
		return c.H
	case RegL:
		return c.L
	}
	panic("invalid 8-bit register")
}

func (c *CPU) set8(r Reg8, v byte) {
	switch r {
	case RegA:
		c.A = v
	case RegB:
		c.B = v
	case RegC:
		c.C = v
	case RegD:
		c.D = v
	case RegE:
		c.E = v
	case RegH:
		c.H = v
	case RegL:
		c.L = v
	default:
		panic("invalid 8-bit register")
	}
}

func (c *CPU) getPair(p RegPair) uint16 {
	switch p {
	case PairBC:
		return c.BC()
	case PairDE:
		return c.DE()
	case PairHL:
		return c.HL()
	case PairSP:
		return c.SP
	}
	panic("invalid register pair")
}

func (c *CPU) setPair(p RegPair, v uint16) {
	switch p {
	case PairBC:
		c.SetBC(v)
	case PairDE:
		c.SetDE(v)
	case PairHL:
		c.SetHL(v)
	case PairSP:
		c.SP = v
	default:
		panic("invalid register pair")
	}
}

func (c *CPU) getPairOrAF(op Operand) uint16 {
	if op.Kind == OperRegAF {
		return c.AF()
	}
	return c.getPair(op.Pair)
}

func (c *CPU) setPairOrAF(op Operand, v uint16) {
	if op.Kind == OperRegAF {
		c.SetAF(v)
		return
	}
	c.setPair(op.Pair, v)
}

func ldCycles(inst Instruction) int {
	if inst.Dst.Kind == OperIOImm8 || inst.Src.Kind == OperIOImm8 {
		return 12
	}
	if inst.Dst.Kind == OperAddr16 || inst.Src.Kind == OperAddr16 {
		return 16
	}
	if inst.Dst.Kind == OperIOC || inst.Src.Kind == OperIOC {
		return 8
	}
	if inst.Dst.Kind == OperIndBC || inst.Src.Kind == OperIndBC ||
		inst.Dst.Kind == OperIndDE || inst.Src.Kind == OperIndDE ||
		inst.Dst.Kind == OperIndInc || inst.Src.Kind == OperIndInc ||
		inst.Dst.Kind == OperIndDec || inst.Src.Kind == OperIndDec {
		return 8
	}
	if inst.Dst.Kind == OperIndHL && inst.Src.Kind == OperImm8 {
		return 12
	}
	if inst.Dst.Kind == OperIndHL || inst.Src.Kind == OperIndHL {
		return 8
	}
	if inst.Src.Kind == OperImm8 {
		return 8
	}
	return 4
}

func aluCycles(inst Instruction) int {
	if inst.Src.Kind == OperIndHL {
		return 8
	}
	if inst.Src.Kind == OperImm8 {
		return 8
	}
	return 4
}

func incDecCycles(op Operand) int {
	if op.Kind == OperIndHL {
		return 12
	}
	return 4
}

func cbCycles(op Operand) int {
	if op.Kind == OperIndHL {
		return 16
	}
	return 8
}

func branchCycles(cond Condition, taken bool, takenCost, fallthroughCost int) int {
	if cond == CondNone || taken {
		return takenCost
	}
	return fallthroughCost
}

func mnemonicName(op Mnemonic) string {
	names := map[Mnemonic]string{
		OpNOP: "NOP", OpLD: "LD", OpLD16: "LD16", OpPUSH: "PUSH", OpPOP: "POP",
		OpADD: "ADD", OpADC: "ADC", OpSUB: "SUB", OpSBC: "SBC", OpAND: "AND",
		OpOR: "OR", OpXOR: "XOR", OpCP: "CP", OpINC: "INC", OpDEC: "DEC",
		OpINC16: "INC16", OpDEC16: "DEC16", OpADDHL: "ADD HL", OpADDSP: "ADD SP",
		OpJP: "JP", OpJPHL: "JP (HL)", OpJR: "JR", OpCALL: "CALL", OpRET: "RET",
		OpRETI: "RETI", OpRST: "RST", OpDI: "DI", OpEI: "EI", OpHALT: "HALT",
		OpSTOP: "STOP", OpCCF: "CCF", OpSCF: "SCF", OpDAA: "DAA", OpCPL: "CPL",
		OpRLCA: "RLCA", OpRLA: "RLA", OpRRCA: "RRCA", OpRRA: "RRA",
		OpRLC: "RLC", OpRRC: "RRC", OpRL: "RL", OpRR: "RR", OpSLA: "SLA",
		OpSRA: "SRA", OpSRL: "SRL", OpSWAP: "SWAP", OpBIT: "BIT", OpRES: "RES", OpSET: "SET",
	}
	if name, ok := names[op]; ok {
		return name
	}
	return "?"
}
