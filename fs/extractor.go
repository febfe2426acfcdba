package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docdex"
)

// Extractor reads an exact line window from a documentation file. It never
// truncates: a file that has shrunk below the recorded window fails with
// ESTALE, which signals that the collection should be rebuilt.
type Extractor struct{}

// Extract reads exactly limit lines starting at the 1-indexed offset of
// relativePath under the collection root. The returned text ends with a
// newline.
func (e *Extractor) Extract(ctx context.Context, col docdex.Collection, relativePath string, offset, limit int) (string, error) {
	if offset < 1 {
		return "", docdex.Errorf(docdex.EINVALID, "offset must be >= 1, got %d", offset)
	}
	if limit < 1 {
		return "", docdex.Errorf(docdex.EINVALID, "limit must be >= 1, got %d", limit)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := filepath.FromSlash(relativePath)
	if filepath.IsAbs(rel) {
		return "", docdex.Errorf(docdex.EINVALID, "relative path %q must not be absolute", relativePath)
	}
	rel = filepath.Clean(rel)
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", docdex.Errorf(docdex.EINVALID, "relative path %q escapes collection root", relativePath)
	}

	f, err := os.Open(filepath.Join(col.Root, rel))
	if err != nil {
		return "", docdex.Errorf(docdex.ESTALE, "%q no longer exists under %q; rebuild the collection", relativePath, col.Root)
	}
	defer f.Close()

	want := offset + limit - 1
	lines := make([]string, 0, limit)
	scanner := newLineScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if line >= offset && line <= want {
			lines = append(lines, scanner.Text())
		}
		if line == want {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", docdex.Errorf(docdex.EPARSE, "%s: %v", relativePath, err)
	}
	if line < want {
		return "", docdex.Errorf(docdex.ESTALE, "%q has %d lines, need %d; rebuild the collection", relativePath, line, want)
	}

	return strings.Join(lines, "\n") + "\n", nil
}
