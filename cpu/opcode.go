package cpu

// Opcode is a decoded instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOP     = Opcode(0x00)  // nop
	OP_MOV     = Opcode(0x01)  // mov
	OP_ADD     = Opcode(0x02)  // add
	OP_SUB     = Opcode(0x03)  // sub
	OP_END     = Opcode(0x87)  // end
	OP_UNKNOWN = Opcode(0x100) // unknown
)

// Opcodes lists the defined opcodes, in encoding order.
var Opcodes = []Opcode{OP_NOP, OP_MOV, OP_ADD, OP_SUB, OP_END}

// Decode maps a fetched byte to its opcode, or OP_UNKNOWN.
func Decode(value byte) Opcode {
	switch Opcode(value) {
	case OP_NOP:
		return OP_NOP
	case OP_MOV:
		return OP_MOV
	case OP_ADD:
		return OP_ADD
	case OP_SUB:
		return OP_SUB
	case OP_END:
		return OP_END
	default:
		return OP_UNKNOWN
	}
}

// Byte returns the encoding of the opcode.
func (op Opcode) Byte() (value byte, ok bool) {
	if op == OP_UNKNOWN || op < 0 || op > 0xff {
		return
	}

	return byte(op), true
}

// Length returns the number of bytes consumed by the instruction before
// the next fetch.
func (op Opcode) Length() int {
	switch op {
	case OP_NOP, OP_MOV, OP_ADD, OP_SUB:
		return 2
	case OP_END:
		return 0
	default:
		return 1
	}
}

// Halt is the reason the processor stopped.
type Halt int

//go:generate go tool stringer -linecomment -type=Halt
const (
	HALT_NONE    = Halt(0) // running
	HALT_END     = Halt(1) // end
	HALT_FETCH   = Halt(2) // fetch
	HALT_OPERAND = Halt(3) // operand
)
