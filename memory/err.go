package memory

import (
	"errors"

	"github.com/ezrec/accvm/translate"
)

var f = translate.From

var (
	ErrOutOfRange    = errors.New(f("address out of range"))
	ErrMalformedLoad = errors.New(f("malformed load"))
	ErrImageSyntax   = errors.New(f("image syntax"))
)

// ErrAddress is returned for an access outside of the memory.
type ErrAddress struct {
	Index int // Index that was accessed.
	Size  int // Size of the memory.
}

func (err *ErrAddress) Error() string {
	return f("address 0x%02x out of range (size %d)", err.Index, err.Size)
}

func (err *ErrAddress) Is(target error) bool {
	return target == ErrOutOfRange
}

// ErrLoad is returned when a load does not match the memory size.
type ErrLoad struct {
	Size   int // Size of the memory.
	Length int // Length of the rejected load.
}

func (err *ErrLoad) Error() string {
	return f("load of %d bytes into memory of %d bytes", err.Length, err.Size)
}

func (err *ErrLoad) Is(target error) bool {
	return target == ErrMalformedLoad
}

// ErrToken is returned for an image token that is not a hex byte.
type ErrToken struct {
	Index int    // Position of the token in the image.
	Token string // Offending token.
}

func (err *ErrToken) Error() string {
	return f("token %d '%v' is not a hex byte", err.Index, err.Token)
}

func (err *ErrToken) Unwrap() error {
	return ErrImageSyntax
}
