// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/accvm/memory"
)

var _cpu_defines = map[string]string{}

func init() {
	for _, op := range Opcodes {
		_cpu_defines["OP_"+strings.ToUpper(op.String())] = fmt.Sprintf("0x%02x", int(op))
	}
}

// Bus is the view of memory used by the processor. The processor only
// ever reads from it.
type Bus interface {
	// Len returns the number of addressable bytes.
	Len() int
	// Read returns the byte at index, or an error wrapping
	// memory.ErrOutOfRange.
	Read(index int) (value byte, err error)
}

var _ Bus = (*memory.Memory)(nil)

// Cpu is the simulation context for the accumulator machine processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory Bus // Memory holding the instruction stream.

	Ip          int  // Cursor of the next fetch.
	Instruction byte // Instruction register: last fetched opcode byte.
	Operand     byte // Operand register: last fetched operand byte.
	Accumulator byte // Accumulator.

	Running bool // Cleared once, when the processor halts.
	Halt    Halt // Reason for the halt.
	Ticks   int  // Cycle counter.
	Unknown int  // Unknown opcodes skipped.
}

// NewCpu creates a new running CPU attached to a memory bus.
func NewCpu(bus Bus) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: bus,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers and cursor.
// - Zeros statistics counters.
// - Powers the processor on.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Ip = 0
	cpu.Instruction = 0
	cpu.Operand = 0
	cpu.Accumulator = 0
	cpu.Ticks = 0
	cpu.Unknown = 0
	cpu.Halt = HALT_NONE
	cpu.Running = true
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"ip", "ir", "or", "acc", "ticks", "halt",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("0x%02x", cpu.Ip)
		case "ir":
			strval = fmt.Sprintf("0x%02x %v", cpu.Instruction, Decode(cpu.Instruction))
		case "or":
			strval = fmt.Sprintf("0x%02x", cpu.Operand)
		case "acc":
			strval = fmt.Sprintf("0x%02x", cpu.Accumulator)
		case "ticks":
			strval = fmt.Sprintf("%d", cpu.Ticks)
		case "halt":
			strval = cpu.Halt.String()
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// stop halts the processor. There is no transition back to running.
func (cpu *Cpu) stop(reason Halt) {
	if !cpu.Running {
		return
	}

	cpu.Running = false
	cpu.Halt = reason

	if cpu.Verbose {
		log.Printf("cpu: 0x%02x: halt (%v)", cpu.Ip, reason)
	}
}

// fetch reads the byte at index. Reading past the end of memory halts
// the processor for the given reason.
func (cpu *Cpu) fetch(index int, reason Halt) (value byte, err error) {
	value, err = cpu.Memory.Read(index)
	if errors.Is(err, memory.ErrOutOfRange) {
		cpu.stop(reason)
		err = ErrHalted
	}

	return
}

// Tick executes a single fetch-execute cycle.
// Returns ErrHalted on the cycle that halts the processor, and on every
// call after that.
func (cpu *Cpu) Tick() (err error) {
	if !cpu.Running {
		err = ErrHalted
		return
	}

	value, err := cpu.fetch(cpu.Ip, HALT_FETCH)
	if err != nil {
		return
	}

	cpu.Instruction = value
	op := Decode(value)

	var operand byte
	if op != OP_END {
		operand, err = cpu.fetch(cpu.Ip+1, HALT_OPERAND)
		if err != nil {
			return
		}
		cpu.Operand = operand
	}

	if cpu.Verbose {
		log.Printf("%02x: %v 0x%02x", cpu.Ip, op, operand)
	}

	length := cpu.Execute(op, operand)
	if !cpu.Running {
		err = ErrHalted
		return
	}

	cpu.Ticks += 1
	cpu.Ip += length

	if cpu.Ip >= cpu.Memory.Len() {
		cpu.stop(HALT_FETCH)
		err = ErrHalted
	}

	return
}

// Execute applies a single decoded instruction to the registers, and
// returns the instruction length.
func (cpu *Cpu) Execute(op Opcode, operand byte) (length int) {
	switch op {
	case OP_NOP:
		// pass
	case OP_MOV:
		cpu.Accumulator = operand
	case OP_ADD:
		// byte arithmetic wraps modulo 256
		cpu.Accumulator += operand
	case OP_SUB:
		cpu.Accumulator -= operand
	case OP_END:
		cpu.stop(HALT_END)
	default: // OP_UNKNOWN
		cpu.Unknown += 1
		log.Printf("cpu: 0x%02x: unknown opcode 0x%02x", cpu.Ip, cpu.Instruction)
	}

	return op.Length()
}

// Run ticks the processor until it halts.
func (cpu *Cpu) Run() (err error) {
	for err == nil {
		err = cpu.Tick()
	}

	if errors.Is(err, ErrHalted) {
		err = nil
	}

	return
}
