package cpu

// Line is a line of assembled source with its location and generated bytes.
type Line struct {
	LineNo int
	Ip     int
	Words  []string
	Bytes  []byte
}

type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the source line that generated the byte at ip.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, line := range prog.Lines {
		if ip >= line.Ip && ip < line.Ip+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: ip - line.Ip,
			}
			break
		}
	}

	return
}

// Size returns the number of bytes spanned by the program.
func (prog *Program) Size() (size int) {
	for _, line := range prog.Lines {
		size = max(size, line.Ip+len(line.Bytes))
	}

	return
}

// Binary lays the program out in a memory image of size bytes.
// Bytes not covered by the program are zero.
func (prog *Program) Binary(size int) (data []byte, err error) {
	if prog.Size() > size {
		err = &ErrProgram{Size: prog.Size(), Limit: size}
		return
	}

	data = make([]byte, size)
	for _, line := range prog.Lines {
		copy(data[line.Ip:], line.Bytes)
	}

	return
}
