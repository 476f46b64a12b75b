package xmlapi

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// CheckText returns an error if s is not valid UTF-8 or holds a character xml 1.0 does not allow
func CheckText(s string) error {
	if !utf8.ValidString(s) {
		return errors.New("invalid UTF-8")
	}
	for i, r := range s {
		if !isXMLChar(r) {
			return errors.Errorf("illegal character code %U at offset %d", r, i)
		}
	}
	return nil
}

// isXMLChar follows the Char production of xml 1.0
func isXMLChar(r rune) bool {
	switch {
	case r == 0x09, r == 0x0A, r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	default:
		return false
	}
}
