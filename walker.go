package markterm

import (
	"bytes"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const (
	osc8Start   = "\x1b]8;;"
	osc8ST      = "\x1b\\"
	osc8End     = osc8Start + osc8ST
	quotePrefix = "│ "
	bullet      = "\n• "
)

var templateBraces = strings.NewReplacer("{{", "", "}}", "")

// controlIntroducers removes ESC and the C1 CSI from document text so the
// source cannot start escape sequences of its own.
var controlIntroducers = strings.NewReplacer("\x1b", "", "\u009b", "")

func sanitize(s string) string {
	if !strings.ContainsAny(s, "\x1b\u009b") {
		return s
	}
	return controlIntroducers.Replace(s)
}

func newParser() parser.Parser {
	return goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()
}

// parseMarkdown parses GFM source. goldmark accepts any input, so this
// never fails.
func parseMarkdown(src []byte) ast.Node {
	return newParser().Parse(text.NewReader(src))
}

// walker renders one parsed document. It holds no state beyond the call.
type walker struct {
	source   []byte
	theme    Theme
	colorize bool
	width    int
	// wrapping is set while a paragraph is rendered for word wrapping.
	// reflow cannot measure OSC 8 sequences, so links are written
	// without them then.
	wrapping bool
}

// styled wraps body in e. Without color every element is a plain wrapper.
func (r *walker) styled(w io.Writer, e ElementTheme, body func(io.Writer) error) error {
	if !r.colorize {
		return body(w)
	}
	return e.Wrap(w, body)
}

func (r *walker) children(w io.Writer, n ast.Node) error {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := r.walk(w, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *walker) walk(w io.Writer, node ast.Node) error {
	switch n := node.(type) {
	case *ast.Document, *ast.List:
		return r.children(w, n)

	case *ast.Paragraph, *ast.TextBlock:
		return r.paragraph(w, n)

	case *ast.Text:
		return r.text(w, n)

	case *ast.String:
		_, err := io.WriteString(w, sanitize(string(n.Value)))
		return err

	case *ast.Emphasis:
		e := r.theme.Emphasis
		if n.Level >= 2 {
			e = r.theme.Strong
		}
		return r.styled(w, e, func(w io.Writer) error { return r.children(w, n) })

	case *extast.Strikethrough:
		return r.styled(w, r.theme.Delete, func(w io.Writer) error { return r.children(w, n) })

	case *ast.Blockquote:
		return r.blockquote(w, n)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return r.codeBlock(w, n)

	case *ast.CodeSpan:
		return r.codeSpan(w, n)

	case *ast.Heading:
		return r.heading(w, n)

	case *ast.Link:
		return r.link(w, string(n.Destination))

	case *ast.AutoLink:
		url := string(n.URL(r.source))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		return r.link(w, url)

	case *ast.ListItem:
		if _, err := io.WriteString(w, bullet); err != nil {
			return err
		}
		if err := r.children(w, n); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err

	default:
		// Images, tables, HTML, thematic breaks and task check boxes are
		// not rendered.
		return nil
	}
}

// paragraph surrounds a paragraph made only of inline code with newlines.
func (r *walker) paragraph(w io.Writer, n ast.Node) error {
	codeOnly := true
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() != ast.KindCodeSpan {
			codeOnly = false
			break
		}
	}
	if codeOnly {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	if r.width > 0 {
		var buf bytes.Buffer
		r.wrapping = true
		err := r.children(&buf, n)
		r.wrapping = false
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, wordwrap.String(buf.String(), r.width)); err != nil {
			return err
		}
	} else if err := r.children(w, n); err != nil {
		return err
	}
	if codeOnly {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (r *walker) text(w io.Writer, n *ast.Text) error {
	value := n.Segment.Value(r.source)
	if !n.IsRaw() {
		value = util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(value)))
	}
	if _, err := io.WriteString(w, sanitize(string(value))); err != nil {
		return err
	}
	if n.SoftLineBreak() || n.HardLineBreak() {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// blockquote renders its children aside and prefixes every resulting line.
func (r *walker) blockquote(w io.Writer, n *ast.Blockquote) error {
	var buf bytes.Buffer
	if err := r.children(&buf, n); err != nil {
		return err
	}
	for _, line := range splitLines(buf.String()) {
		if _, err := io.WriteString(w, quotePrefix+line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// splitLines splits on '\n' and drops a trailing '\r' per line. A final line
// ending does not start an empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func (r *walker) codeBlock(w io.Writer, n ast.Node) error {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(r.source))
	}
	code := buf.String()
	if trimmed := strings.TrimSuffix(code, "\r\n"); trimmed != code {
		code = trimmed
	} else {
		code = strings.TrimSuffix(code, "\n")
	}
	code = sanitize(code)

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	if err := r.styled(w, r.theme.CodeBlock, writeString(code)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// codeSpan pads inline code with a space on each side. Template braces
// "{{" and "}}" are dropped.
func (r *walker) codeSpan(w io.Writer, n *ast.CodeSpan) error {
	var b strings.Builder
	b.WriteByte(' ')
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			value := t.Segment.Value(r.source)
			if bytes.HasSuffix(value, []byte("\n")) {
				b.Write(value[:len(value)-1])
				b.WriteByte(' ')
			} else {
				b.Write(value)
			}
		case *ast.String:
			b.Write(t.Value)
		}
	}
	b.WriteByte(' ')
	code := sanitize(templateBraces.Replace(b.String()))
	return r.styled(w, r.theme.CodeBlock, writeString(code))
}

// heading writes levels 2 to 4 with their hash marks. Level 1 and levels
// past 4 carry no marker.
func (r *walker) heading(w io.Writer, n *ast.Heading) error {
	if _, err := io.WriteString(w, "\n "); err != nil {
		return err
	}
	e := r.theme.HeaderX
	marker := ""
	switch n.Level {
	case 1:
		e = r.theme.Header1
	case 2, 3, 4:
		marker = strings.Repeat("#", n.Level)
	}
	if marker != "" {
		if _, err := io.WriteString(w, marker); err != nil {
			return err
		}
	}
	err := r.styled(w, e, func(w io.Writer) error {
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := r.children(w, n); err != nil {
			return err
		}
		_, err := io.WriteString(w, " ")
		return err
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, " \n\n")
	return err
}

// link shows the URL as its own label. In color mode the label is an OSC 8
// hyperlink to the URL, except inside a wrapped paragraph.
func (r *walker) link(w io.Writer, url string) error {
	url = sanitize(url)
	if !r.colorize || r.wrapping {
		return r.styled(w, r.theme.Link, writeString(url))
	}
	if _, err := io.WriteString(w, osc8Start+url+osc8ST); err != nil {
		return err
	}
	if err := r.styled(w, r.theme.Link, writeString(url)); err != nil {
		return err
	}
	_, err := io.WriteString(w, osc8End)
	return err
}

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}
