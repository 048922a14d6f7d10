package markterm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/avi1989/markterm/internal/palette"
)

// ErrUnknownTheme reports a theme name that is not built in.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme binds an ElementTheme to every element the renderer styles. All slots
// are always present; a slot without color or style passes text through.
type Theme struct {
	Name string

	// Header1 styles level 1 headings.
	Header1 ElementTheme
	// HeaderX styles headings of level 2 and deeper.
	HeaderX   ElementTheme
	CodeBlock ElementTheme
	// Indents belongs to block quotes. Quotes are only prefixed, not colored.
	Indents  ElementTheme
	Link     ElementTheme
	List     ElementTheme
	Strong   ElementTheme
	Emphasis ElementTheme
	// Delete styles strikethrough text.
	Delete ElementTheme
}

func themeFromPalette(name string, p palette.Palette) Theme {
	return Theme{
		Name:      name,
		Header1:   element(p.Header1FG, p.Header1BG, Normal),
		HeaderX:   element(p.HeaderXFG, "", Normal),
		CodeBlock: element(p.CodeBlockFG, p.CodeBlockBG, Normal),
		Indents:   element(p.IndentsFG, "", Normal),
		Link:      element(p.LinkFG, "", Underlined),
		List:      element("", "", Normal),
		Strong:    element("", "", Bold),
		Emphasis:  element("", "", Italics),
		Delete:    element("", "", Strikethrough),
	}
}

func element(fg, bg string, style TextStyle) ElementTheme {
	e := ElementTheme{Style: style}
	if fg != "" {
		e.FG = mustColor(fg)
	}
	if bg != "" {
		e.BG = mustColor(bg)
	}
	return e
}

// DarkTheme returns the palette for dark terminal backgrounds.
func DarkTheme() Theme {
	return themeFromPalette("dark", palette.Dark)
}

// LightTheme returns the palette for light terminal backgrounds.
func LightTheme() Theme {
	return themeFromPalette("light", palette.Light)
}

var builtinThemes = map[string]func() Theme{
	"dark":  DarkTheme,
	"light": LightTheme,
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name. The empty name is the dark
// theme.
func ThemeByName(name string) (Theme, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return DarkTheme(), true
	}
	build, ok := builtinThemes[normalized]
	if !ok {
		return Theme{}, false
	}
	return build(), true
}

// slotFile is one slot table of a theme file. Colors stay strings until
// NewElementTheme parses them, so decode errors keep ErrInvalidColor.
type slotFile struct {
	FG    string    `toml:"fg"`
	BG    string    `toml:"bg"`
	Style TextStyle `toml:"style"`
}

type themeFile struct {
	Name      string    `toml:"name"`
	Header1   *slotFile `toml:"header_1"`
	HeaderX   *slotFile `toml:"header_x"`
	CodeBlock *slotFile `toml:"code_block"`
	Indents   *slotFile `toml:"indents"`
	Link      *slotFile `toml:"link"`
	List      *slotFile `toml:"list"`
	Strong    *slotFile `toml:"strong"`
	Emphasis  *slotFile `toml:"emphasis"`
	Delete    *slotFile `toml:"delete"`
}

// LoadTheme decodes a TOML theme. Each table names a slot and replaces it
// whole; slots without a table keep base's value.
func LoadTheme(r io.Reader, base Theme) (Theme, error) {
	var f themeFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return Theme{}, fmt.Errorf("load theme: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Theme{}, fmt.Errorf("load theme: unknown keys %s", strings.Join(keys, ", "))
	}
	theme := base
	if f.Name != "" {
		theme.Name = f.Name
	}
	slots := []struct {
		key string
		src *slotFile
		dst *ElementTheme
	}{
		{"header_1", f.Header1, &theme.Header1},
		{"header_x", f.HeaderX, &theme.HeaderX},
		{"code_block", f.CodeBlock, &theme.CodeBlock},
		{"indents", f.Indents, &theme.Indents},
		{"link", f.Link, &theme.Link},
		{"list", f.List, &theme.List},
		{"strong", f.Strong, &theme.Strong},
		{"emphasis", f.Emphasis, &theme.Emphasis},
		{"delete", f.Delete, &theme.Delete},
	}
	for _, s := range slots {
		if s.src == nil {
			continue
		}
		e, err := NewElementTheme(s.src.FG, s.src.BG, s.src.Style)
		if err != nil {
			return Theme{}, fmt.Errorf("load theme: %s %w", s.key, err)
		}
		*s.dst = e
	}
	return theme, nil
}

// LoadThemeFile reads a TOML theme from path. See LoadTheme.
func LoadThemeFile(path string, base Theme) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, fmt.Errorf("load theme: %w", err)
	}
	defer f.Close()
	theme, err := LoadTheme(f, base)
	if err != nil {
		return Theme{}, fmt.Errorf("%s: %w", path, err)
	}
	return theme, nil
}
