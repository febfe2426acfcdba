package fs

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/docdex"
)

// DefaultSampleSize is the number of index lines a preview reads.
const DefaultSampleSize = 5

// Scanner discovers collections under a root directory. Discovery is
// cheap by design: it reads only the first few index lines of each
// collection so callers can triage relevance before paying for a load.
type Scanner struct {
	// SampleSize is the number of index entries included in each
	// preview. Zero means DefaultSampleSize.
	SampleSize int
}

// Discover recursively finds every directory holding both index files and
// returns previews sorted shallowest-path-first, then lexically. The bias
// toward shallow paths favors primary docs over nested vendor docs.
// Collections whose index cannot be previewed are omitted rather than
// failing the whole discovery.
func (s *Scanner) Discover(ctx context.Context, root string) ([]docdex.Preview, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "documentation root %q not found", root)
	}

	var roots []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if isCollectionRoot(path) {
			roots = append(roots, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(roots, func(i, j int) bool {
		di, dj := pathDepth(root, roots[i]), pathDepth(root, roots[j])
		if di != dj {
			return di < dj
		}
		return roots[i] < roots[j]
	})

	previews := make([]docdex.Preview, 0, len(roots))
	for _, r := range roots {
		preview, err := s.preview(r)
		if err != nil {
			// A corrupt or vanished collection must not hide the healthy
			// ones; discovery is cheap triage, the full load re-checks.
			continue
		}
		previews = append(previews, *preview)
	}

	return previews, nil
}

func (s *Scanner) preview(root string) (*docdex.Preview, error) {
	sampleSize := s.SampleSize
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	col := docdex.Collection{Root: root}
	f, err := os.Open(col.IndexPath())
	if err != nil {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "collection %q not found", root)
	}
	defer f.Close()

	preview := &docdex.Preview{Collection: col, Sample: []docdex.IndexEntry{}}
	scanner := newLineScanner(f)
	line := 0
	for scanner.Scan() {
		if line < sampleSize {
			var entry docdex.IndexEntry
			if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
				return nil, docdex.Errorf(docdex.EPARSE, "%s line %d: %v", col.IndexPath(), line+1, err)
			}
			preview.Sample = append(preview.Sample, entry)
		}
		line++
	}
	if err := scanner.Err(); err != nil {
		return nil, docdex.Errorf(docdex.EPARSE, "%s: %v", col.IndexPath(), err)
	}
	preview.Total = line

	return preview, nil
}

func isCollectionRoot(dir string) bool {
	for _, name := range []string{docdex.IndexFileName, docdex.SectionsFileName} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || info.IsDir() {
			return false
		}
	}
	return true
}

func pathDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
