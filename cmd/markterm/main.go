// Command markterm renders Markdown files, globs, URLs or stdin to the
// terminal.
package main

import (
	"context"
	"os"

	"pkt.systems/version"
)

func init() {
	version.SetDefaultModule("github.com/avi1989/markterm")
}

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
