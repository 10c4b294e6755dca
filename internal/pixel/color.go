// internal/pixel/color.go
package pixel

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ParseHexColor parses "RRGGBB", with or without a leading '#'.
func ParseHexColor(s string) ([3]byte, error) {
	var c [3]byte

	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return c, fmt.Errorf("pixel: colour %q: want 6 hex digits", s)
	}
	if _, err := hex.Decode(c[:], []byte(s)); err != nil {
		return c, fmt.Errorf("pixel: colour %q: %w", s, err)
	}
	return c, nil
}
