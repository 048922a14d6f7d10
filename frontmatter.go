package markterm

import "bytes"

var frontMatterDelimiters = [][]byte{[]byte("---"), []byte("+++"), []byte(";;;")}

// stripFrontMatter drops a leading front matter block. The block opens with
// a delimiter line, its first line must look like metadata and it must be
// closed by the same delimiter; otherwise src is returned unchanged.
func stripFrontMatter(src []byte) []byte {
	open, rest, ok := cutLine(src)
	if !ok {
		return src
	}
	delim := frontMatterDelimiter(open)
	if delim == nil {
		return src
	}
	first, _, ok := cutLine(rest)
	if !ok || !looksLikeMetadata(first) {
		return src
	}
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = cutLine(rest)
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return rest
		}
	}
	return src
}

// cutLine splits off the first line, without its line ending. ok is false
// for empty input.
func cutLine(src []byte) (line, rest []byte, ok bool) {
	if len(src) == 0 {
		return nil, nil, false
	}
	line, rest, _ = bytes.Cut(src, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, true
}

func frontMatterDelimiter(line []byte) []byte {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(line, []byte("\xef\xbb\xbf")))
	for _, d := range frontMatterDelimiters {
		if bytes.Equal(trimmed, d) {
			return d
		}
	}
	return nil
}

func looksLikeMetadata(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return true
	}
	return bytes.ContainsAny(trimmed, ":=")
}
