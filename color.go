package markterm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor reports a color string that is not #RGB or #RRGGBB.
var ErrInvalidColor = errors.New("invalid hex color")

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// ParseColor parses "#RGB" or "#RRGGBB" (the leading '#' is optional, digits
// are case-insensitive). The short form duplicates each digit, so "#F52" is
// "#FF5522".
func ParseColor(hex string) (Color, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 3 && len(digits) != 6 {
		return Color{}, fmt.Errorf("parse color %q: %w", hex, ErrInvalidColor)
	}
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return Color{}, fmt.Errorf("parse color %q: %w", hex, ErrInvalidColor)
		}
	}
	c, err := colorful.Hex("#" + strings.ToLower(digits))
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w: %v", hex, ErrInvalidColor, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

func mustColor(hex string) *Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return &c
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// sgr returns the "R;G;B" triple used by true-color SGR parameters.
func (c Color) sgr() string {
	return strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
