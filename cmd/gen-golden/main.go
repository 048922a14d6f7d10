// Command gen-golden regenerates the plain and colored golden files for
// every testdata/<name>.md, using the dark theme.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/avi1989/markterm"
)

// sample.md is only used by benchmarks.
var skip = map[string]bool{"sample.md": true}

func main() {
	root := "testdata"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	paths, err := filepath.Glob(filepath.Join(root, "*.md"))
	if err != nil {
		fatalf("glob %s: %v", root, err)
	}
	sort.Strings(paths)
	theme := markterm.DarkTheme()
	wrote := 0
	for _, path := range paths {
		if skip[filepath.Base(path)] {
			continue
		}
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		for _, mode := range []struct {
			suffix   string
			colorize bool
		}{
			{".plain.golden", false},
			{".color.golden", true},
		} {
			var out bytes.Buffer
			if err := markterm.RenderText(string(src), &theme, &out, mode.colorize); err != nil {
				fatalf("render %s: %v", path, err)
			}
			goldenPath := strings.TrimSuffix(path, ".md") + mode.suffix
			if err := os.WriteFile(goldenPath, out.Bytes(), 0o644); err != nil {
				fatalf("write %s: %v", goldenPath, err)
			}
			fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
			wrote++
		}
	}
	if wrote == 0 {
		fatalf("no markdown files found under %s", root)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
