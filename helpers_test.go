package markterm

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	osc8Regexp = regexp.MustCompile(`\x1b]8;;[^\x1b]*\x1b\\`)
)

func stripANSI(s string) string {
	return osc8Regexp.ReplaceAllString(ansiRegexp.ReplaceAllString(s, ""), "")
}

var errWriteFailed = errors.New("write failed")

// failingWriter accepts n writes and fails every write after that.
type failingWriter struct {
	n      int
	buf    bytes.Buffer
	writes int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.n <= 0 {
		return 0, errWriteFailed
	}
	w.n--
	return w.buf.Write(p)
}

func renderWith(t *testing.T, src string, theme Theme, colorize bool, opts ...RenderOption) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, RenderText(src, &theme, &out, colorize, opts...))
	return out.String()
}

func renderColor(t *testing.T, src string) string {
	t.Helper()
	return renderWith(t, src, DarkTheme(), true)
}

func renderPlain(t *testing.T, src string) string {
	t.Helper()
	return renderWith(t, src, DarkTheme(), false)
}
