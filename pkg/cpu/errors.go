package cpu

import "fmt"

// UndefinedOpcodeError is raised when the fetch/decode stage lands on
// one of the eleven illegal unprefixed opcodes. Real software never
// issues these; there is no recovery path, so the core reports the
// opcode, its address, and the instruction that ran just before it and
// lets the caller decide what to do with a fatal core.
type UndefinedOpcodeError struct {
	Opcode   byte
	PC       uint16
	Prior    string
	Prefixed bool
}

func (e *UndefinedOpcodeError) Error() string {
	kind := "opcode"
	if e.Prefixed {
		kind = "CB opcode"
	}
	return fmt.Sprintf("undefined %s 0x%02X at PC=0x%04X (prior: %s)", kind, e.Opcode, e.PC, e.Prior)
}
