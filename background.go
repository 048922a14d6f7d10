package markterm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// DefaultProbeTimeout bounds the terminal background query.
const DefaultProbeTimeout = 500 * time.Millisecond

// Background is the terminal background brightness.
type Background uint8

const (
	BackgroundDark Background = iota
	BackgroundLight
)

func (b Background) String() string {
	if b == BackgroundLight {
		return "light"
	}
	return "dark"
}

// BackgroundDetector reports the terminal background.
type BackgroundDetector interface {
	DetectBackground(ctx context.Context) (Background, error)
}

// BackgroundFunc adapts a function to BackgroundDetector.
type BackgroundFunc func(ctx context.Context) (Background, error)

// DetectBackground calls f.
func (f BackgroundFunc) DetectBackground(ctx context.Context) (Background, error) {
	return f(ctx)
}

var errProbeBusy = errors.New("background probe already running")

// probeMu keeps a single terminal query in flight. The query reads the
// terminal's reply from the same fd, so two at once would steal each
// other's answer.
var probeMu sync.Mutex

// TerminalDetector queries the terminal attached to Output through termenv.
//
// ctx is only checked before the query starts. termenv waits up to its own
// OSC timeout (5s) for the reply and cannot be interrupted, so when
// DetectBackground gives up earlier the query keeps running in the
// background: it holds the probe lock, further queries fail with a busy
// error until it ends, and the terminal stays out of echo mode meanwhile.
type TerminalDetector struct {
	// Output is the terminal to query. Nil means os.Stdout.
	Output io.Writer
}

// DetectBackground asks the terminal for its background color. It fails
// when another query is running or the probe panics.
func (d TerminalDetector) DetectBackground(ctx context.Context) (bg Background, err error) {
	if !probeMu.TryLock() {
		return BackgroundDark, errProbeBusy
	}
	defer probeMu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			bg, err = BackgroundDark, fmt.Errorf("background probe: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return BackgroundDark, err
	}
	w := d.Output
	if w == nil {
		w = os.Stdout
	}
	if termenv.NewOutput(w).HasDarkBackground() {
		return BackgroundDark, nil
	}
	return BackgroundLight, nil
}

// DetectBackground runs d with a timeout. Any failure, timeout or panic
// yields BackgroundDark.
func DetectBackground(ctx context.Context, d BackgroundDetector, timeout time.Duration) Background {
	if d == nil {
		return BackgroundDark
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		bg  Background
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{BackgroundDark, fmt.Errorf("background probe: %v", r)}
			}
		}()
		bg, err := d.DetectBackground(ctx)
		done <- result{bg, err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return BackgroundDark
		}
		return res.bg
	case <-ctx.Done():
		return BackgroundDark
	}
}

// ThemeFor returns the built-in theme for a background.
func ThemeFor(bg Background) Theme {
	if bg == BackgroundLight {
		return LightTheme()
	}
	return DarkTheme()
}

// ResolveTheme picks the built-in theme matching the background reported by
// d within DefaultProbeTimeout.
func ResolveTheme(ctx context.Context, d BackgroundDetector) Theme {
	return ThemeFor(DetectBackground(ctx, d, DefaultProbeTimeout))
}

// DefaultTheme picks the dark or light theme from the background of the
// terminal on stdout. It never fails; an unknown background is dark.
func DefaultTheme() Theme {
	return ResolveTheme(context.Background(), TerminalDetector{})
}
