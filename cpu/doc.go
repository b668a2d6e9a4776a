// Package cpu implements the processor and assembler for the accumulator
// machine.
//
// The processor has an instruction register, an operand register and a
// single 8-bit accumulator. Every defined instruction is an opcode byte
// followed by an immediate operand byte; the opcode decides how far the
// cursor advances before the next fetch. Execution stops at the END
// opcode, or when the cursor runs off the end of memory.
//
// The assembler provides a small assembly language for the instruction set,
// supporting labels, equates, raw bytes, and compile-time expression
// evaluation.
package cpu
