package markterm

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports input that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	// Control bytes only count against inputs of at least binarySample
	// bytes.
	binarySample      = 64
	maxControlPercent = 2
)

// ValidateInput accepts UTF-8 text. A NUL byte, or control bytes making up
// maxControlPercent of an input of binarySample bytes or more, mark it as
// binary. Errors carry the offset of the first offending byte.
func ValidateInput(src []byte) error {
	if off := invalidUTF8(src); off >= 0 {
		return fmt.Errorf("%w at byte %d", ErrInvalidUTF8, off)
	}
	if off := bytes.IndexByte(src, 0x00); off >= 0 {
		return fmt.Errorf("%w: NUL at byte %d", ErrBinaryInput, off)
	}
	if len(src) < binarySample {
		return nil
	}
	if n := countControl(src); n*100 >= len(src)*maxControlPercent {
		return fmt.Errorf("%w: %d of %d bytes are control characters", ErrBinaryInput, n, len(src))
	}
	return nil
}

// invalidUTF8 returns the offset of the first invalid sequence, or -1.
func invalidUTF8(src []byte) int {
	if utf8.Valid(src) {
		return -1
	}
	for off := 0; off < len(src); {
		r, size := utf8.DecodeRune(src[off:])
		if r == utf8.RuneError && size == 1 {
			return off
		}
		off += size
	}
	return -1
}

func countControl(src []byte) int {
	n := 0
	for _, b := range src {
		if isControlByte(b) {
			n++
		}
	}
	return n
}

// isControlByte excludes tab, newline, vertical tab, form feed and carriage
// return.
func isControlByte(b byte) bool {
	return b < 0x09 || (b > 0x0D && b < 0x20) || b == 0x7F
}
