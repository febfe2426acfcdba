package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/fwojciec/docdex"
)

// Writer emits the paired index.jsonl/sections.jsonl files for one
// collection. A rebuild replaces the pair wholesale: both files are
// written to temporary paths and renamed into place, so a reader sees
// one whole generation or the other. The Resolver's sync check guards
// the remaining window between the two renames.
type Writer struct {
	root string
}

// NewWriter creates a Writer for the given collection root.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// WriteCollection assigns sequential 0-based index numbers to docs in the
// order given and writes both index files. Line N of each file describes
// docs[N]. A duplicate relative path aborts the rebuild with EDUPLICATE.
func (w *Writer) WriteCollection(ctx context.Context, docs []*docdex.Document) error {
	seen := make(map[string]struct{}, len(docs))
	var indexBuf, sectionsBuf bytes.Buffer

	for i, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
		if _, ok := seen[doc.RelativePath]; ok {
			return docdex.Errorf(docdex.EDUPLICATE, "duplicate relative path %q in rebuild", doc.RelativePath)
		}
		seen[doc.RelativePath] = struct{}{}

		entry := docdex.IndexEntry{
			Index:        i,
			RelativePath: doc.RelativePath,
			Summary:      doc.Summary,
		}
		sections := doc.Sections
		if sections == nil {
			sections = []docdex.Section{}
		}
		sectionEntry := docdex.SectionEntry{
			Index:           i,
			RelativePath:    doc.RelativePath,
			DetailedSummary: doc.DetailedSummary,
			Sections:        sections,
		}

		if err := appendLine(&indexBuf, entry); err != nil {
			return err
		}
		if err := appendLine(&sectionsBuf, sectionEntry); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	col := docdex.Collection{Root: w.root}
	indexTmp := col.IndexPath() + ".tmp"
	sectionsTmp := col.SectionsPath() + ".tmp"

	if err := os.WriteFile(sectionsTmp, sectionsBuf.Bytes(), 0644); err != nil {
		return err
	}
	if err := os.WriteFile(indexTmp, indexBuf.Bytes(), 0644); err != nil {
		_ = os.Remove(sectionsTmp)
		return err
	}

	if err := os.Rename(sectionsTmp, col.SectionsPath()); err != nil {
		_ = os.Remove(sectionsTmp)
		_ = os.Remove(indexTmp)
		return err
	}
	if err := os.Rename(indexTmp, col.IndexPath()); err != nil {
		_ = os.Remove(indexTmp)
		return err
	}

	return nil
}

func appendLine(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	buf.WriteByte('\n')
	return nil
}
