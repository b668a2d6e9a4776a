package cpu

import (
	"errors"

	"github.com/ezrec/accvm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted = errors.New(f("halted"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrOrgBackwards       = errors.New(f(".org moves backwards"))
	ErrByteMissing        = errors.New(f(".byte without values"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrProgramSize        = errors.New(f("program exceeds memory"))
)

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrValueRange is returned for a value that does not fit in a byte.
type ErrValueRange int64

func (err ErrValueRange) Error() string {
	return f("%d does not fit in a byte", int64(err))
}

// ErrProgram is returned when a program does not fit in memory.
type ErrProgram struct {
	Size  int
	Limit int
}

func (err *ErrProgram) Error() string {
	return f("program of %d bytes exceeds memory of %d bytes", err.Size, err.Limit)
}

func (err *ErrProgram) Unwrap() error {
	return ErrProgramSize
}
