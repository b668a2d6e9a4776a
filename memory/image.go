package memory

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	IMAGE_LINE_TOKENS = 16 // Tokens per line written by WriteImage.
)

// ParseImage reads a whitespace separated list of hex bytes, each
// optionally prefixed by '0x', into a buffer of exactly size bytes.
// Tokens past size are ignored; a short image is zero padded.
func ParseImage(input io.Reader, size int) (data []byte, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Split(bufio.ScanWords)

	data = make([]byte, size)

	var index int
	for scanner.Scan() {
		if index >= size {
			// Drain the rest so read errors still surface.
			continue
		}

		token := scanner.Text()
		hex := token
		if strings.HasPrefix(hex, "0x") || strings.HasPrefix(hex, "0X") {
			hex = hex[2:]
		}

		var value uint64
		value, err = strconv.ParseUint(hex, 16, 8)
		if err != nil {
			err = &ErrToken{Index: index, Token: token}
			data = nil
			return
		}

		data[index] = byte(value)
		index++
	}

	err = scanner.Err()
	if err != nil {
		data = nil
	}

	return
}

// WriteImage writes data in the form read by ParseImage.
func WriteImage(output io.Writer, data []byte) (err error) {
	w := bufio.NewWriter(output)

	for n, value := range data {
		sep := " "
		if (n+1)%IMAGE_LINE_TOKENS == 0 || n == len(data)-1 {
			sep = "\n"
		}
		_, err = fmt.Fprintf(w, "0x%02x%s", value, sep)
		if err != nil {
			return
		}
	}

	err = w.Flush()
	return
}
