package markterm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInvalidColorChoice reports an unknown color mode name.
var ErrInvalidColorChoice = errors.New("invalid color choice")

// ColorChoice decides whether output carries escape sequences.
type ColorChoice uint8

const (
	// ColorAuto colors output only when the writer is a terminal.
	ColorAuto ColorChoice = iota
	// ColorAlways colors output regardless of the writer.
	ColorAlways
	// ColorNever writes plain text.
	ColorNever
)

func (c ColorChoice) String() string {
	switch c {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorChoice parses "auto", "always" or "never".
func ParseColorChoice(s string) (ColorChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("%w %q: expected auto|always|never", ErrInvalidColorChoice, s)
	}
}

// Colorize reports whether output to w should be colored.
func (c ColorChoice) Colorize(w io.Writer) bool {
	switch c {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return IsTerminal(w)
	}
}

// IsTerminal reports whether w is a file descriptor attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader io.Reader
	Writer io.Writer
	// Theme is resolved from the terminal background when nil.
	Theme   *Theme
	Color   ColorChoice
	Options []RenderOption
}

// Render reads Markdown from Reader and writes it styled to Writer.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	return render(src, req.Theme, req.Writer, req.Color.Colorize(req.Writer), newRenderConfig(req.Options))
}

// RenderText writes text to w. With colorize false the output holds no
// escape sequences.
func RenderText(text string, theme *Theme, w io.Writer, colorize bool, opts ...RenderOption) error {
	if w == nil {
		return fmt.Errorf("render: writer is nil")
	}
	return render([]byte(text), theme, w, colorize, newRenderConfig(opts))
}

// RenderFile renders the Markdown file at path to w.
func RenderFile(path string, theme *Theme, w io.Writer, colorize bool, opts ...RenderOption) error {
	if w == nil {
		return fmt.Errorf("render file: writer is nil")
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("render file: %w", err)
	}
	return render(src, theme, w, colorize, newRenderConfig(opts))
}

// RenderTextToStdout renders text to standard output.
func RenderTextToStdout(text string, theme *Theme, choice ColorChoice, opts ...RenderOption) error {
	return toStdout(choice, func(w io.Writer, colorize bool) error {
		return RenderText(text, theme, w, colorize, opts...)
	})
}

// RenderFileToStdout renders the Markdown file at path to standard output.
func RenderFileToStdout(path string, theme *Theme, choice ColorChoice, opts ...RenderOption) error {
	return toStdout(choice, func(w io.Writer, colorize bool) error {
		return RenderFile(path, theme, w, colorize, opts...)
	})
}

func toStdout(choice ColorChoice, fn func(w io.Writer, colorize bool) error) error {
	out := bufio.NewWriter(os.Stdout)
	err := fn(out, choice.Colorize(os.Stdout))
	if flushErr := out.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("render: %w", flushErr)
	}
	return err
}

func render(src []byte, theme *Theme, w io.Writer, colorize bool, cfg renderConfig) error {
	if err := ValidateInput(src); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if cfg.stripFrontMatter {
		src = stripFrontMatter(src)
	}
	var t Theme
	if theme != nil {
		t = *theme
	} else {
		d := cfg.detector
		if d == nil {
			d = TerminalDetector{}
		}
		t = ResolveTheme(context.Background(), d)
	}
	wk := &walker{
		source:   src,
		theme:    t,
		colorize: colorize,
		width:    cfg.width,
	}
	if err := wk.walk(w, parseMarkdown(src)); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
