package cpu

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/accvm/memory"
)

// newTestCpu builds a CPU over a canonical memory holding program,
// zero padded.
func newTestCpu(t *testing.T, program ...byte) *Cpu {
	data := make([]byte, memory.DEFAULT_SIZE)
	copy(data, program)

	mem := memory.NewMemory(memory.DEFAULT_SIZE)
	require.NoError(t, mem.Load(data))

	return NewCpu(mem)
}

func TestCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t)

	assert.True(cpu.Running)
	assert.Equal(HALT_NONE, cpu.Halt)
	assert.Equal(0, cpu.Ip)
	assert.Equal(0, cpu.Ticks)
	assert.Equal(byte(0), cpu.Instruction)
	assert.Equal(byte(0), cpu.Operand)
	assert.Equal(byte(0), cpu.Accumulator)

	keys := map[string]string{}
	for key, value := range cpu.Defines() {
		keys[key] = value
	}
	assert.Equal("0x01", keys["OP_MOV"])
	assert.Equal("0x87", keys["OP_END"])
	assert.Equal(5, len(keys))
}

func TestCpuRun(t *testing.T) {
	table := [](struct {
		name        string
		program     []byte
		accumulator byte
		ticks       int
		halt        Halt
		ip          int
		instruction byte
		operand     byte
		unknown     int
	}){
		{"mov", []byte{0x01, 0x2a, 0x87}, 0x2a, 1, HALT_END, 2, 0x87, 0x2a, 0},
		{"mov overwrites", []byte{0x01, 0x05, 0x01, 0x07, 0x87}, 0x07, 2, HALT_END, 4, 0x87, 0x07, 0},
		{"add wraps", []byte{0x02, 0xff, 0x02, 0x01, 0x87}, 0x00, 2, HALT_END, 4, 0x87, 0x01, 0},
		{"sub wraps", []byte{0x03, 0x01, 0x87}, 0xff, 1, HALT_END, 2, 0x87, 0x01, 0},
		{"mov add sub", []byte{0x01, 0x10, 0x02, 0x22, 0x03, 0x02, 0x87}, 0x30, 3, HALT_END, 6, 0x87, 0x02, 0},
		{"end first", []byte{0x87, 0x01}, 0x00, 0, HALT_END, 0, 0x87, 0x00, 0},
		{"all nop", nil, 0x00, 16, HALT_FETCH, 32, 0x00, 0x00, 0},
		{"nop operand ignored", []byte{0x00, 0x55, 0x87}, 0x00, 1, HALT_END, 2, 0x87, 0x55, 0},
		{"unknown", []byte{0x99, 0x01, 0x2a, 0x87}, 0x2a, 2, HALT_END, 3, 0x87, 0x2a, 1},
		{"unknown then nop", []byte{0x99}, 0x00, 16, HALT_OPERAND, 31, 0x00, 0x00, 1},
		{"unknown run", []byte{0x04, 0x05, 0x06, 0x01, 0x09, 0x87}, 0x09, 4, HALT_END, 5, 0x87, 0x09, 3},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			cpu := newTestCpu(t, entry.program...)

			err := cpu.Run()
			assert.NoError(err)

			assert.False(cpu.Running)
			assert.Equal(entry.halt, cpu.Halt)
			assert.Equal(entry.accumulator, cpu.Accumulator)
			assert.Equal(entry.ticks, cpu.Ticks)
			assert.Equal(entry.ip, cpu.Ip)
			assert.Equal(entry.instruction, cpu.Instruction)
			assert.Equal(entry.operand, cpu.Operand)
			assert.Equal(entry.unknown, cpu.Unknown)
		})
	}
}

func TestCpuTick(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0x02, 0xff, 0x02, 0x01, 0x87)

	assert.NoError(cpu.Tick())
	assert.Equal(byte(0xff), cpu.Accumulator)
	assert.Equal(2, cpu.Ip)
	assert.Equal(1, cpu.Ticks)

	assert.NoError(cpu.Tick())
	assert.Equal(byte(0x00), cpu.Accumulator)
	assert.Equal(4, cpu.Ip)
	assert.Equal(2, cpu.Ticks)

	assert.ErrorIs(cpu.Tick(), ErrHalted)
	assert.False(cpu.Running)
	assert.Equal(HALT_END, cpu.Halt)

	// Halted is terminal.
	for range 3 {
		assert.ErrorIs(cpu.Tick(), ErrHalted)
	}
	assert.Equal(2, cpu.Ticks)
	assert.Equal(4, cpu.Ip)
	assert.Equal(HALT_END, cpu.Halt)
}

func TestCpuUnknownAdvance(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0x99, 0x01, 0x2a)
	cpu.Accumulator = 0x11

	assert.NoError(cpu.Tick())
	assert.Equal(1, cpu.Ip)
	assert.Equal(1, cpu.Ticks)
	assert.Equal(byte(0x11), cpu.Accumulator)
	assert.Equal(byte(0x99), cpu.Instruction)
	assert.Equal(byte(0x01), cpu.Operand)
	assert.True(cpu.Running)
}

func TestCpuUnknownDiagnostic(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	log.SetOutput(out)
	defer log.SetOutput(os.Stderr)

	cpu := newTestCpu(t, 0x99, 0x00, 0x87)
	assert.NoError(cpu.Run())

	assert.True(strings.Contains(out.String(), "unknown opcode 0x99"), out.String())
	assert.Equal(1, cpu.Unknown)
}

func TestCpuOperandOffEnd(t *testing.T) {
	assert := assert.New(t)

	data := make([]byte, memory.DEFAULT_SIZE)
	data[0] = 0x99
	data[memory.DEFAULT_SIZE-1] = byte(OP_MOV)

	cpu := newTestCpu(t, data...)
	cpu.Verbose = true
	assert.NoError(cpu.Run())

	assert.Equal(HALT_OPERAND, cpu.Halt)
	assert.Equal(memory.DEFAULT_SIZE-1, cpu.Ip)
	assert.Equal(byte(OP_MOV), cpu.Instruction)
	assert.Equal(byte(0x00), cpu.Accumulator)
	assert.Equal(16, cpu.Ticks)
}

func TestCpuExecute(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op      Opcode
		input   byte
		operand byte
		output  byte
		length  int
	}){
		{OP_NOP, 0x12, 0x34, 0x12, 2},
		{OP_MOV, 0x12, 0x34, 0x34, 2},
		{OP_ADD, 0x12, 0x34, 0x46, 2},
		{OP_ADD, 0x80, 0x80, 0x00, 2},
		{OP_ADD, 0xff, 0xff, 0xfe, 2},
		{OP_SUB, 0x34, 0x12, 0x22, 2},
		{OP_SUB, 0x00, 0xff, 0x01, 2},
		{OP_UNKNOWN, 0x12, 0x34, 0x12, 1},
	}

	for _, entry := range table {
		cpu := newTestCpu(t)
		cpu.Accumulator = entry.input
		length := cpu.Execute(entry.op, entry.operand)
		assert.Equal(entry.output, cpu.Accumulator, "%v", entry)
		assert.Equal(entry.length, length, "%v", entry)
		assert.True(cpu.Running)
	}

	cpu := newTestCpu(t)
	assert.Equal(0, cpu.Execute(OP_END, 0))
	assert.False(cpu.Running)
	assert.Equal(HALT_END, cpu.Halt)
}

func TestCpuReset(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0x01, 0x2a, 0x87)
	assert.NoError(cpu.Run())
	assert.False(cpu.Running)

	cpu.Reset()
	assert.True(cpu.Running)
	assert.Equal(HALT_NONE, cpu.Halt)
	assert.Equal(0, cpu.Ticks)
	assert.Equal(byte(0), cpu.Accumulator)
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, 0x01, 0x2a, 0x87)
	assert.NoError(cpu.Run())

	text := cpu.String()
	assert.Contains(text, "   ip: 0x02\n")
	assert.Contains(text, "   ir: 0x87 end\n")
	assert.Contains(text, "  acc: 0x2a\n")
	assert.Contains(text, "ticks: 1\n")
	assert.Contains(text, " halt: end\n")
}

var errBusFault = errors.New("bus fault")

// faultBus fails every read past a limit with a non range error.
type faultBus struct {
	limit int
}

func (fb *faultBus) Len() int {
	return 32
}

func (fb *faultBus) Read(index int) (value byte, err error) {
	if index >= fb.limit {
		err = errBusFault
	}
	return
}

func TestCpuBusFault(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(&faultBus{limit: 3})

	assert.NoError(cpu.Tick())
	err := cpu.Tick()
	assert.ErrorIs(err, errBusFault)
	assert.True(cpu.Running)
	assert.Equal(1, cpu.Ticks)
}
