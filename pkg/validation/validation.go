package validation

import (
	"errors"
	"strings"
	"unicode/utf16"
)

// MinTextLength is the shortest job description either workflow accepts.
const MinTextLength = 20

// Error is a local, pre-network validation failure. Its text is shown to
// the user as is.
type Error string

func (e Error) Error() string { return string(e) }

// Is reports whether err is (or wraps) a validation Error.
func Is(err error) bool {
	var v Error
	return errors.As(err, &v)
}

// MinLength fails with msg when the trimmed text is shorter than n.
// Length is counted in UTF-16 code units, the way the web client counts it,
// so a character outside the BMP counts as two.
func MinLength(text string, n int, msg string) error {
	if Length(strings.TrimSpace(text)) < n {
		return Error(msg)
	}
	return nil
}

// Length returns the UTF-16 length of s.
func Length(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// Required fails with msg when value is blank.
func Required(value, msg string) error {
	if strings.TrimSpace(value) == "" {
		return Error(msg)
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
