package markterm

import (
	"fmt"
	"io"
	"strings"
)

const (
	sgrStart = "\x1b["
	sgrReset = "\x1b[0m"
)

// TextStyle is the single text attribute applied by an ElementTheme.
type TextStyle uint8

const (
	Normal TextStyle = iota
	Bold
	Italics
	Underlined
	Strikethrough
)

var textStyleNames = [...]string{
	Normal:        "normal",
	Bold:          "bold",
	Italics:       "italics",
	Underlined:    "underlined",
	Strikethrough: "strikethrough",
}

// code returns the SGR parameter for the style, empty for Normal.
func (s TextStyle) code() string {
	switch s {
	case Bold:
		return "1"
	case Italics:
		return "3"
	case Underlined:
		return "4"
	case Strikethrough:
		return "9"
	default:
		return ""
	}
}

func (s TextStyle) String() string {
	if int(s) < len(textStyleNames) {
		return textStyleNames[s]
	}
	return fmt.Sprintf("TextStyle(%d)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s TextStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *TextStyle) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	if name == "" {
		*s = Normal
		return nil
	}
	for i, n := range textStyleNames {
		if n == name {
			*s = TextStyle(i)
			return nil
		}
	}
	return fmt.Errorf("unknown text style %q", string(text))
}

// ElementTheme styles one syntactic element. Nil colors keep the terminal
// default.
type ElementTheme struct {
	FG    *Color    `toml:"fg"`
	BG    *Color    `toml:"bg"`
	Style TextStyle `toml:"style"`
}

// NewElementTheme builds an ElementTheme from optional hex colors. Empty
// strings leave the color unset.
func NewElementTheme(fg, bg string, style TextStyle) (ElementTheme, error) {
	e := ElementTheme{Style: style}
	if fg != "" {
		c, err := ParseColor(fg)
		if err != nil {
			return ElementTheme{}, fmt.Errorf("foreground: %w", err)
		}
		e.FG = &c
	}
	if bg != "" {
		c, err := ParseColor(bg)
		if err != nil {
			return ElementTheme{}, fmt.Errorf("background: %w", err)
		}
		e.BG = &c
	}
	return e, nil
}

// IsPlain reports whether the theme carries no color and no style.
func (e ElementTheme) IsPlain() bool {
	return e.FG == nil && e.BG == nil && e.Style == Normal
}

// Open returns the opening SGR sequence: style code, then background, then
// foreground. It is empty for a plain theme.
func (e ElementTheme) Open() string {
	if e.IsPlain() {
		return ""
	}
	var b strings.Builder
	b.WriteString(sgrStart)
	code := e.Style.code()
	if e.FG == nil && e.BG == nil {
		b.WriteString(code)
		b.WriteByte('m')
		return b.String()
	}
	if code != "" {
		b.WriteString(code)
		b.WriteByte(';')
	}
	if e.BG != nil {
		b.WriteString("48;2;")
		b.WriteString(e.BG.sgr())
	}
	if e.BG != nil && e.FG != nil {
		b.WriteByte(';')
	}
	if e.FG != nil {
		b.WriteString("38;2;")
		b.WriteString(e.FG.sgr())
	}
	b.WriteByte('m')
	return b.String()
}

// Wrap writes the opening sequence, lets body write the text, then writes the
// reset sequence. A plain theme writes nothing around body. The reset is
// still attempted when body fails; body's error wins.
func (e ElementTheme) Wrap(w io.Writer, body func(io.Writer) error) error {
	if e.IsPlain() {
		return body(w)
	}
	if _, err := io.WriteString(w, e.Open()); err != nil {
		return err
	}
	bodyErr := body(w)
	if _, err := io.WriteString(w, sgrReset); err != nil && bodyErr == nil {
		return err
	}
	return bodyErr
}
