package docdex

import "path/filepath"

// Index file names that mark a directory as a collection root.
const (
	IndexFileName    = "index.jsonl"
	SectionsFileName = "sections.jsonl"
)

// Collection identifies a documentation tree with its paired index files.
// The invariant across the pair is strict: both files always have identical
// line counts, and line N of each describes the same file.
type Collection struct {
	Root string `json:"root"`
}

// IndexPath returns the path to the collection's index.jsonl.
func (c Collection) IndexPath() string {
	return filepath.Join(c.Root, IndexFileName)
}

// SectionsPath returns the path to the collection's sections.jsonl.
func (c Collection) SectionsPath() string {
	return filepath.Join(c.Root, SectionsFileName)
}

// Preview is a cheap scope summary of a discovered collection: the first
// few index entries plus the total entry count, read without a full load.
type Preview struct {
	Collection Collection   `json:"collection"`
	Sample     []IndexEntry `json:"sample"`
	Total      int          `json:"total"`
}
