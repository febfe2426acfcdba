package fs

import (
	"context"
	"encoding/json"
	"os"

	"github.com/fwojciec/docdex"
)

// Resolver maps an index number to its sections.jsonl counterpart,
// verifying that the two index files still agree on that line. A mismatch
// means the pair is corrupt and the query must not trust it.
type Resolver struct{}

// Resolve returns the SectionEntry at line index of sections.jsonl.
// An index beyond index.jsonl returns EOUTOFRANGE; a sections.jsonl that
// is shorter than index.jsonl, or that names a different file on that
// line, returns ESYNC.
func (r *Resolver) Resolve(ctx context.Context, col docdex.Collection, index int) (*docdex.SectionEntry, error) {
	if index < 0 {
		return nil, docdex.Errorf(docdex.EOUTOFRANGE, "index %d out of range for collection %q", index, col.Root)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	indexLine, found, err := readLineAt(col.IndexPath(), index)
	if err != nil {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "collection %q not found", col.Root)
	}
	if !found {
		return nil, docdex.Errorf(docdex.EOUTOFRANGE, "index %d out of range for collection %q", index, col.Root)
	}

	sectionsLine, found, err := readLineAt(col.SectionsPath(), index)
	if err != nil {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "collection %q not found", col.Root)
	}
	if !found {
		return nil, docdex.Errorf(docdex.ESYNC, "%s is missing line %d present in %s", col.SectionsPath(), index+1, col.IndexPath())
	}

	var indexEntry docdex.IndexEntry
	if err := json.Unmarshal(indexLine, &indexEntry); err != nil {
		return nil, docdex.Errorf(docdex.EPARSE, "%s line %d: %v", col.IndexPath(), index+1, err)
	}
	var sectionEntry docdex.SectionEntry
	if err := json.Unmarshal(sectionsLine, &sectionEntry); err != nil {
		return nil, docdex.Errorf(docdex.EPARSE, "%s line %d: %v", col.SectionsPath(), index+1, err)
	}

	if indexEntry.RelativePath != sectionEntry.RelativePath || indexEntry.Index != sectionEntry.Index {
		return nil, docdex.Errorf(docdex.ESYNC, "line %d of collection %q names %q in %s but %q in %s",
			index+1, col.Root,
			indexEntry.RelativePath, docdex.IndexFileName,
			sectionEntry.RelativePath, docdex.SectionsFileName)
	}

	return &sectionEntry, nil
}

// readLineAt returns the 0-indexed nth line of the file. The second return
// is false when the file has fewer than n+1 lines.
func readLineAt(path string, n int) ([]byte, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	scanner := newLineScanner(f)
	line := 0
	for scanner.Scan() {
		if line == n {
			// Copy out: the scanner reuses its buffer.
			b := make([]byte, len(scanner.Bytes()))
			copy(b, scanner.Bytes())
			return b, true, nil
		}
		line++
	}
	if err := scanner.Err(); err != nil {
		return nil, false, err
	}
	return nil, false, nil
}
