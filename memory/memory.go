// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory provides the fixed size byte memory that holds the
// instruction stream of the accumulator machine.
package memory

const (
	DEFAULT_SIZE = 32 // Canonical memory size, in bytes.
)

// Memory is a fixed capacity array of byte cells.
type Memory struct {
	cells []byte
}

// NewMemory creates a zeroed memory of size bytes.
func NewMemory(size int) (mem *Memory) {
	if size <= 0 {
		panic("memory size must be positive")
	}

	mem = &Memory{
		cells: make([]byte, size),
	}

	return
}

// Len returns the size of the memory.
func (mem *Memory) Len() int {
	return len(mem.cells)
}

// Load replaces the full contents of the memory.
// The data must be exactly the size of the memory; on failure the
// previous contents are left untouched.
func (mem *Memory) Load(data []byte) (err error) {
	if len(data) != len(mem.cells) {
		err = &ErrLoad{Size: len(mem.cells), Length: len(data)}
		return
	}

	copy(mem.cells, data)

	return
}

// Read returns the byte at index.
func (mem *Memory) Read(index int) (value byte, err error) {
	if index < 0 || index >= len(mem.cells) {
		err = &ErrAddress{Index: index, Size: len(mem.cells)}
		return
	}

	value = mem.cells[index]
	return
}

// Write stores value at index.
func (mem *Memory) Write(index int, value byte) (err error) {
	if index < 0 || index >= len(mem.cells) {
		err = &ErrAddress{Index: index, Size: len(mem.cells)}
		return
	}

	mem.cells[index] = value
	return
}

// Bytes returns a copy of the memory contents.
func (mem *Memory) Bytes() []byte {
	return append([]byte(nil), mem.cells...)
}

// Reset zeroes the memory.
func (mem *Memory) Reset() {
	clear(mem.cells)
}
