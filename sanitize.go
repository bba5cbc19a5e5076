package formwizard

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxInputSize bounds one command line, or one document pasted with edit.
// FORMWIZARD_MAX_INPUT_SIZE overrides it.
var MaxInputSize = 64 * 1024

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput rejects oversized or invalid UTF-8 input and strips control
// characters other than newline, tab and carriage return, so terminal escapes typed
// or pasted by the user never reach the document.
func SanitizeInput(input string) (string, error) {
	if limit := maxInputSize(); len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(input, unsafeControl) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if unsafeControl(r) {
			return -1
		}
		return r
	}, input), nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

func maxInputSize() int {
	if val := os.Getenv("FORMWIZARD_MAX_INPUT_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return MaxInputSize
}
