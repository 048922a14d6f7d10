package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type inputKind uint8

const (
	inputFile inputKind = iota
	inputURL
)

func (k inputKind) String() string {
	if k == inputURL {
		return "url"
	}
	return "file"
}

type input struct {
	name string
	kind inputKind
}

const globMeta = "*?[{"

// expandInputs turns command line arguments into files and URLs in argument
// order. Globs are expanded in lexical order and must match at least one
// file.
func expandInputs(args []string) ([]input, error) {
	var inputs []input
	for _, raw := range args {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, fmt.Errorf("empty input argument")
		}
		if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
			switch strings.ToLower(u.Scheme) {
			case "http", "https":
				inputs = append(inputs, input{name: raw, kind: inputURL})
				continue
			case "file":
				path := u.Path
				if path == "" {
					path = u.Host
				}
				inputs = append(inputs, input{name: normalizePath(path), kind: inputFile})
				continue
			}
		}
		path := normalizePath(raw)
		if !strings.ContainsAny(raw, globMeta) || isFile(path) {
			inputs = append(inputs, input{name: path, kind: inputFile})
			continue
		}
		matches, err := expandGlob(path)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			inputs = append(inputs, input{name: m, kind: inputFile})
		}
	}
	return inputs, nil
}

func expandGlob(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %s", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	return filepath.Clean(path)
}
