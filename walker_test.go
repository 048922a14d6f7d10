package markterm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderElements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		plain string
		color string
	}{
		{
			name:  "header 1",
			src:   "# This is a test",
			plain: "\n  This is a test  \n\n",
			color: "\n \x1b[48;2;97;85;251m This is a test \x1b[0m \n\n",
		},
		{
			name:  "header 2",
			src:   "## This is a test",
			plain: "\n ## This is a test  \n\n",
			color: "\n ##\x1b[38;2;1;175;253m This is a test \x1b[0m \n\n",
		},
		{
			name:  "inline code paragraph",
			src:   "`This is a test`",
			plain: "\n This is a test \n",
			color: "\n\x1b[48;2;48;48;48;38;2;255;96;96m This is a test \x1b[0m\n",
		},
		{
			name:  "link",
			src:   "[Google](http://google.com)",
			plain: "http://google.com",
			color: "\x1b]8;;http://google.com\x1b\\\x1b[4;38;2;0;135;135mhttp://google.com\x1b[0m\x1b]8;;\x1b\\",
		},
		{
			name:  "autolink",
			src:   "<http://google.com>",
			plain: "http://google.com",
			color: "\x1b]8;;http://google.com\x1b\\\x1b[4;38;2;0;135;135mhttp://google.com\x1b[0m\x1b]8;;\x1b\\",
		},
		{
			name:  "list",
			src:   "- List Item 1\n- List Item 2",
			plain: "\n• List Item 1\n\n• List Item 2\n",
			color: "\n• List Item 1\n\n• List Item 2\n",
		},
		{
			name:  "blockquote",
			src:   "> This is a blockquote",
			plain: "│ This is a blockquote\n",
			color: "│ This is a blockquote\n",
		},
		{
			name:  "line break",
			src:   "This is a  \ntest",
			plain: "This is a\ntest",
			color: "This is a\ntest",
		},
		{
			name:  "strong",
			src:   "**This is text**",
			plain: "This is text",
			color: "\x1b[1mThis is text\x1b[0m",
		},
		{
			name:  "emphasis",
			src:   "*This is text*",
			plain: "This is text",
			color: "\x1b[3mThis is text\x1b[0m",
		},
		{
			name:  "strikethrough",
			src:   "~Delete~",
			plain: "Delete",
			color: "\x1b[9mDelete\x1b[0m",
		},
		{
			name:  "code block",
			src:   "```\ncode here\n```",
			plain: "\ncode here\n",
			color: "\n\x1b[48;2;48;48;48;38;2;255;96;96mcode here\x1b[0m\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.plain, renderPlain(t, tc.src))
			assert.Equal(t, tc.color, renderColor(t, tc.src))
		})
	}
}

func TestRenderPlainOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"setext heading", "Title\n=====", "\n  Title  \n\n"},
		{"header 3", "### Deep", "\n ### Deep  \n\n"},
		{"header 4", "#### Deeper", "\n #### Deeper  \n\n"},
		{"header 5 has no marker", "##### Five", "\n  Five  \n\n"},
		{"header 6 has no marker", "###### Six", "\n  Six  \n\n"},
		{"soft break", "one\ntwo", "one\ntwo"},
		{"blocks are not separated", "a\n\nb", "ab"},
		{"two line blockquote", "> line one\n> line two", "│ line one\n│ line two\n"},
		{"inline code inside text", "Use `x` now", "Use  x  now"},
		{"template braces", "`{{name}}`", "\n name \n"},
		{"multi line code block", "```go\na\nb\n```", "\na\nb\n"},
		{"indented code block", "    indented", "\nindented\n"},
		{"nested list", "- a\n  - b", "\n• a\n• b\n\n"},
		{"task item", "- [ ] todo", "\n• todo\n"},
		{"entity", "Tom &amp; Jerry", "Tom & Jerry"},
		{"heading with emphasis", "## A *b*", "\n ## A b  \n\n"},
		{"image", "![alt](img.png)", ""},
		{"table", "| a |\n|---|\n| b |", ""},
		{"html block", "<div>x</div>", ""},
		{"thematic break", "***", ""},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, renderPlain(t, tc.src))
		})
	}
}

func TestRenderColorNested(t *testing.T) {
	t.Parallel()

	got := renderColor(t, "**bold *both***")
	assert.Equal(t, "\x1b[1mbold \x1b[3mboth\x1b[0m\x1b[0m", got)

	got = renderColor(t, "`{{x}}` tail")
	assert.Equal(t, "\x1b[48;2;48;48;48;38;2;255;96;96m x \x1b[0m tail", got)
}

func TestPlainOutputHasNoEscapes(t *testing.T) {
	t.Parallel()

	src := "# Title\n\n## Sub\n\nSome **bold**, *em* and ~gone~ with `code` and [a link](https://example.com).\n\n" +
		"> quoted\n> twice\n\n- one\n- two\n\n```\nblock\n```\n"
	got := renderPlain(t, src)
	assert.NotContains(t, got, "\x1b")
	assert.Equal(t, stripANSI(renderColor(t, src)), got)
}

func TestRenderIsRepeatable(t *testing.T) {
	t.Parallel()

	src := "# Title\n\n- [x](http://x.y)\n\n> q\n"
	assert.Equal(t, renderColor(t, src), renderColor(t, src))
	assert.Equal(t, renderPlain(t, src), renderPlain(t, src))
}

func TestRenderWithWidth(t *testing.T) {
	t.Parallel()

	got := renderWith(t, "one two three four", DarkTheme(), false, WithWidth(8))
	assert.Equal(t, "one two\nthree\nfour", got)

	got = renderWith(t, "one two three four", DarkTheme(), false, WithWidth(0))
	assert.Equal(t, "one two three four", got)

	got = renderWith(t, "one two three four", DarkTheme(), false, WithWidth(-3))
	assert.Equal(t, "one two three four", got)
}

func TestRenderPlainTheme(t *testing.T) {
	t.Parallel()

	got := renderWith(t, "# Title", Theme{Name: "plain"}, true)
	assert.Equal(t, "\n  Title  \n\n", got)
}

func TestRenderStopsOnWriteError(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 3} {
		w := &failingWriter{n: n}
		theme := DarkTheme()
		err := RenderText("# Title\n\nbody", &theme, w, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, errWriteFailed)
		// One write fails, nothing is attempted after the first failure
		// except the reset of an already opened element.
		assert.LessOrEqual(t, w.writes, n+2)
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a"}, splitLines("a"))
	assert.Equal(t, []string{"a"}, splitLines("a\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb\r\n"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb"))
}

func BenchmarkWalk(b *testing.B) {
	src := []byte(strings.Repeat("# Head\n\nSome **bold** text with `code` and [a](http://a.b).\n\n- item\n\n", 50))
	theme := DarkTheme()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var out bytes.Buffer
		if err := render(src, &theme, &out, true, renderConfig{}); err != nil {
			b.Fatal(err)
		}
	}
}

func TestRenderDropsSourceEscapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		plain string
	}{
		{"text", "\x1b[31mred\x1b[0m text", "[31mred[0m text"},
		{"code span", "`\x1b[2J`", "\n [2J \n"},
		{"fenced block", "```\n\x1b]8;;evil\x1b\\\n```", "\n]8;;evil\\\n"},
		{"numeric reference", "a&#27;[31mb", "a[31mb"},
		{"c1 csi", "a\u009b31mb", "a31mb"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := renderPlain(t, tc.src)
			assert.Equal(t, tc.plain, got)
			assert.NotContains(t, got, "\x1b")

			colored := renderColor(t, tc.src)
			assert.Equal(t, tc.plain, stripANSI(colored))
		})
	}
}

func TestRenderEmailAutolinks(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"<foo@bar.com>", "foo@bar.com"} {
		assert.Equal(t, "mailto:foo@bar.com", renderPlain(t, src), src)
		assert.Equal(t,
			"\x1b]8;;mailto:foo@bar.com\x1b\\\x1b[4;38;2;0;135;135mmailto:foo@bar.com\x1b[0m\x1b]8;;\x1b\\",
			renderColor(t, src), src)
	}
	assert.Equal(t, "mailto:foo@bar.com", renderPlain(t, "<mailto:foo@bar.com>"))
}

func TestRenderCRLFCodeBlock(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\nx\n", renderPlain(t, "```\r\nx\r\n```"))
	assert.Equal(t, "\n\x1b[48;2;48;48;48;38;2;255;96;96mx\x1b[0m\n", renderColor(t, "```\r\nx\r\n```"))
}

func TestRenderWrappedLinkWidth(t *testing.T) {
	t.Parallel()

	got := renderWith(t, "see [x](http://a.b/c) done", DarkTheme(), true, WithWidth(20))
	assert.Equal(t, "see \x1b[4;38;2;0;135;135mhttp://a.b/c\x1b[0m\ndone", got)
	assert.NotContains(t, got, osc8Start)

	// Headings are not wrapped and keep the hyperlink.
	got = renderWith(t, "## [x](http://a.b)", DarkTheme(), true, WithWidth(20))
	assert.Contains(t, got, osc8Start+"http://a.b"+osc8ST)
}

func TestLinkDropsEscapes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	plain := &walker{theme: DarkTheme()}
	require.NoError(t, plain.link(&buf, "http://a.b/\x1b[0m"))
	assert.Equal(t, "http://a.b/[0m", buf.String())

	buf.Reset()
	colored := &walker{theme: DarkTheme(), colorize: true}
	require.NoError(t, colored.link(&buf, "http://a.b/\x1b]8;;x\x1b\\"))
	assert.Equal(t,
		"\x1b]8;;http://a.b/]8;;x\\\x1b\\\x1b[4;38;2;0;135;135mhttp://a.b/]8;;x\\\x1b[0m\x1b]8;;\x1b\\",
		buf.String())
}
