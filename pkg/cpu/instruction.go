package cpu

// Condition selects a branch condition code for JP/JR/CALL/RET.
type Condition int

const (
	CondNone Condition = iota
	CondZ
	CondNZ
	CondC
	CondNC
)

// OperandKind tags one of the fourteen operand kinds an Instruction
// can reference (OperNone marks an unused slot).
type OperandKind int

const (
	OperNone OperandKind = iota
	OperReg8
	OperReg16   // BC, DE, HL, SP
	OperRegAF   // the AF pair, for PUSH/POP only
	OperIndHL   // (HL)
	OperIndInc  // (HL+)
	OperIndDec  // (HL-)
	OperIndBC   // (BC)
	OperIndDE   // (DE)
	OperImm8    // n
	OperImm16   // nn
	OperIOC     // (0xFF00+C)
	OperIOImm8  // (0xFF00+n)
	OperAddr16  // (nn)
	OperSPPlusE // SP+e8, e.g. LD HL,SP+e8
)

// Operand describes one operand slot of a decoded instruction.
type Operand struct {
	Kind OperandKind
	Reg  Reg8
	Pair RegPair
}

// Mnemonic names the operation an Instruction performs. The decoder's
// job ends at producing one of these plus operands; pkg/cpu's executor
// does the rest.
type Mnemonic int

const (
	OpUndefined Mnemonic = iota
	OpNOP
	OpLD
	OpLD16
	OpPUSH
	OpPOP
	OpADD
	OpADC
	OpSUB
	OpSBC
	OpAND
	OpOR
	OpXOR
	OpCP
	OpINC
	OpDEC
	OpINC16
	OpDEC16
	OpADDHL
	OpADDSP
	OpJP
	OpJPHL
	OpJR
	OpCALL
	OpRET
	OpRETI
	OpRST
	OpDI
	OpEI
	OpHALT
	OpSTOP
	OpCCF
	OpSCF
	OpDAA
	OpCPL
	OpRLCA
	OpRLA
	OpRRCA
	OpRRA
	OpRLC
	OpRRC
	OpRL
	OpRR
	OpSLA
	OpSRA
	OpSRL
	OpSWAP
	OpBIT
	OpRES
	OpSET
)

// Instruction is the decoded, fully typed form of one opcode byte (or
// CB-prefixed byte pair). It never reads memory; the decoder is pure.
type Instruction struct {
	Op        Mnemonic
	Dst, Src  Operand
	Cond      Condition
	Bit       uint8 // BIT/RES/SET bit index, or RST vector / 8
	Length    uint8 // total instruction length in bytes, incl. opcode(s)
	Opcode    byte  // the opcode byte itself, for diagnostics
	Prefixed  bool
	Undefined bool
}
