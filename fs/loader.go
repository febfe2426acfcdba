package fs

import (
	"context"
	"encoding/json"
	"os"

	"github.com/fwojciec/docdex"
)

// Loader reads a collection's entire index.jsonl into memory, in line
// order. Loading is the only fully eager query-time operation, so callers
// should triage collections via Scanner previews first.
type Loader struct{}

// Load returns every index entry of the collection. It re-checks that both
// index files still exist so drift between discovery and load surfaces as
// ENOTFOUND rather than a confusing read failure.
func (l *Loader) Load(ctx context.Context, col docdex.Collection) ([]docdex.IndexEntry, error) {
	for _, path := range []string{col.IndexPath(), col.SectionsPath()} {
		if _, err := os.Stat(path); err != nil {
			return nil, docdex.Errorf(docdex.ENOTFOUND, "collection %q not found", col.Root)
		}
	}

	f, err := os.Open(col.IndexPath())
	if err != nil {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "collection %q not found", col.Root)
	}
	defer f.Close()

	var entries []docdex.IndexEntry
	scanner := newLineScanner(f)
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var entry docdex.IndexEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, docdex.Errorf(docdex.EPARSE, "%s line %d: %v", col.IndexPath(), line+1, err)
		}
		if entry.Index != line {
			return nil, docdex.Errorf(docdex.ESYNC, "%s line %d: index %d does not match line position", col.IndexPath(), line+1, entry.Index)
		}
		entries = append(entries, entry)
		line++
	}
	if err := scanner.Err(); err != nil {
		return nil, docdex.Errorf(docdex.EPARSE, "%s: %v", col.IndexPath(), err)
	}

	return entries, nil
}
