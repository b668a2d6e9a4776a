// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"time"

	"github.com/ezrec/accvm/cpu"
	"github.com/ezrec/accvm/internal"
	"github.com/ezrec/accvm/memory"
	"github.com/ezrec/accvm/translate"
)

const (
	DEFAULT_DELAY = 10 * time.Millisecond // Default pacing between cycles.
)

// Emulator state. CPU + memory + program listing.
type Emulator struct {
	Verbose  bool          // If set, enables verbose logging.
	Delay    time.Duration // Wall clock delay after each cycle in Run.
	*cpu.Cpu               // Reference to the CPU simulation.
	Ram      *memory.Memory
	Program  *cpu.Program // Listing of the loaded program, if assembled.
}

// NewEmulator creates a new emulator with size bytes of memory.
func NewEmulator(size int) (emu *Emulator) {
	ram := memory.NewMemory(size)

	emu = &Emulator{
		Cpu:     cpu.NewCpu(ram),
		Ram:     ram,
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"MEMORY_SIZE": fmt.Sprintf("%v", emu.Ram.Len()),
	}

	return internal.IterSeq2Concat(maps.All(defines),
		emu.Cpu.Defines(),
	)
}

// Load replaces the memory contents with image, and resets the CPU.
func (emu *Emulator) Load(image []byte) (err error) {
	err = emu.Ram.Load(image)
	if err != nil {
		return
	}

	emu.Reset()

	return
}

// LoadImage loads a hex image, see memory.ParseImage.
func (emu *Emulator) LoadImage(input io.Reader) (err error) {
	image, err := memory.ParseImage(input, emu.Ram.Len())
	if err != nil {
		return
	}

	err = emu.Load(image)
	if err != nil {
		return
	}

	emu.Program = &cpu.Program{}

	return
}

// Assemble assembles source, and loads the result.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	image, err := prog.Binary(emu.Ram.Len())
	if err != nil {
		return
	}

	err = emu.Load(image)
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Reset the CPU state. Memory is left as loaded.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// LineNo returns the source line number for the current cursor, or 0.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Ip)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	ip := emu.Cpu.Ip
	lineno := emu.LineNo()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		err = &ErrRuntime{Ip: ip, LineNo: lineno, Err: err}
	}

	return
}

// Run ticks until the CPU halts, waiting Delay after each cycle.
// Cancelling ctx stops the run, leaving the CPU as it is.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}

		if emu.Delay <= 0 {
			err = ctx.Err()
			if err != nil {
				return
			}
			continue
		}

		if timer == nil {
			timer = time.NewTimer(emu.Delay)
		} else {
			timer.Reset(emu.Delay)
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()
			if emu.Verbose {
				log.Printf("emulator: 0x%02x: %v", emu.Cpu.Ip, err)
			}
			return
		case <-timer.C:
		}
	}
}

// Report writes the summary of the final CPU state.
func (emu *Emulator) Report(w io.Writer) (err error) {
	p := func(key string, args ...any) {
		if err == nil {
			_, err = translate.Fprintf(w, key, args...)
		}
	}

	c := emu.Cpu
	switch c.Halt {
	case cpu.HALT_END:
		p("program ended: 0x%02x\n", c.Instruction)
	case cpu.HALT_FETCH:
		p("program ran off the end of memory at 0x%02x\n", c.Ip)
	case cpu.HALT_OPERAND:
		p("program ran off the end of memory reading the operand at 0x%02x\n", c.Ip)
	default:
		p("program still running at 0x%02x\n", c.Ip)
	}

	p("[+] CPU Cycled: %d\n", c.Ticks)
	p("IR:  0x%02x (%v)\n", c.Instruction, cpu.Decode(c.Instruction))
	p("OR:  0x%02x\n", c.Operand)
	p("ACC: 0x%02x\n", c.Accumulator)

	if c.Unknown > 0 {
		p("unknown opcodes skipped: %d\n", c.Unknown)
	}

	return
}
