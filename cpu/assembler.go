package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// mnemonicMap maps instruction names to opcodes.
var mnemonicMap = map[string]Opcode{
	"nop": OP_NOP,
	"mov": OP_MOV,
	"add": OP_ADD,
	"sub": OP_SUB,
	"end": OP_END,
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass assembler for the accumulator machine.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	ip int // Location counter.
}

// Predefine defines a new equate or redefines an existing equate.
// Predefines survive across calls to Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// parseInt returns the integer value of a simple word.
func (asm *Assembler) parseInt(word string) (value int64, err error) {
	if len(word) > 0 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// valueOf returns the byte value of a simple word.
// Negative values down to -128 are encoded as two's complement.
func (asm *Assembler) valueOf(word string) (value byte, err error) {
	v64, err := asm.parseInt(word)
	if err != nil {
		return
	}

	if v64 < -0x80 || v64 > 0xff {
		err = ErrValueRange(v64)
		return
	}

	value = byte(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, err := asm.parseInt(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, is_label := asm.Label[label]
		_, is_equate := asm.Equate[label]
		if is_label || is_equate {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.ip
		asm.Equate[label] = fmt.Sprintf("%d", asm.ip)
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// emit appends a line of generated bytes at the location counter.
func (asm *Assembler) emit(lineno int, words []string, data ...byte) {
	asm.Lines = append(asm.Lines, Line{
		LineNo: lineno,
		Ip:     asm.ip,
		Words:  slices.Clone(words),
		Bytes:  data,
	})
	asm.ip += len(data)
}

// parseWords assembles an expanded line.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	args := words[1:]

	switch name := strings.ToLower(words[0]); name {
	case ".org":
		if len(args) != 1 {
			err = ErrOrgSyntax
			return
		}
		var ip int64
		ip, err = asm.parseInt(args[0])
		if err != nil {
			return
		}
		if ip < int64(asm.ip) {
			err = ErrOrgBackwards
			return
		}
		asm.ip = int(ip)
	case ".byte":
		if len(args) == 0 {
			err = ErrByteMissing
			return
		}
		data := make([]byte, len(args))
		for n, arg := range args {
			data[n], err = asm.valueOf(arg)
			if err != nil {
				return
			}
		}
		asm.emit(lineno, words, data...)
	default:
		op, ok := mnemonicMap[name]
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		code, _ := op.Byte()
		switch op {
		case OP_END:
			if len(args) != 0 {
				err = ErrOpcodeExtraArgs
				return
			}
			asm.emit(lineno, words, code)
		case OP_NOP:
			if len(args) > 1 {
				err = ErrOpcodeExtraArgs
				return
			}
			var operand byte
			if len(args) == 1 {
				operand, err = asm.valueOf(args[0])
				if err != nil {
					return
				}
			}
			asm.emit(lineno, words, code, operand)
		default:
			if len(args) == 0 {
				err = ErrOpcodeValueMissing
				return
			}
			if len(args) > 1 {
				err = ErrOpcodeExtraArgs
				return
			}
			var operand byte
			operand, err = asm.valueOf(args[0])
			if err != nil {
				return
			}
			asm.emit(lineno, words, code, operand)
		}
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.ip = 0
	asm.Lines = asm.Lines[:0]
	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}
