// Package fs provides file-backed plumbing for collection indexes: the
// atomic writer that emits the paired jsonl files, and the scanner,
// loader, resolver and extractor that read them back at query time.
package fs

import (
	"bufio"
	"io"
)

// maxLineBytes bounds a single jsonl line; detailed summaries can get long.
const maxLineBytes = 4 * 1024 * 1024

func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return s
}
