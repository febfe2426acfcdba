package docdex

// IndexEntry is one line of index.jsonl: the terse, scan-friendly tier of
// the index. Index is 0-based and per-collection, and always equals the
// entry's 0-indexed line position in both index files.
type IndexEntry struct {
	Index        int    `json:"index"`
	RelativePath string `json:"relative_path"`
	Summary      string `json:"summary"`
}

// Section is one heading-delimited slice of an indexed file, carrying the
// exact line window needed to read it back.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
	Summary string `json:"summary"`
}

// SectionEntry is one line of sections.jsonl: the detailed tier of the
// index. Its Index and RelativePath must equal the IndexEntry on the same
// line of index.jsonl.
type SectionEntry struct {
	Index           int       `json:"index"`
	RelativePath    string    `json:"relative_path"`
	DetailedSummary string    `json:"detailed_summary"`
	Sections        []Section `json:"sections"`
}

// Document describes one file within a collection rebuild: the summaries
// and sections that become a synchronized row pair in the index files.
type Document struct {
	RelativePath    string
	Summary         string
	DetailedSummary string
	Sections        []Section
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.RelativePath == "" {
		return Errorf(EINVALID, "document relative path required")
	}
	prev := 0
	for _, s := range d.Sections {
		if s.Offset < 1 {
			return Errorf(EINVALID, "section %q offset must be >= 1", s.Heading)
		}
		if s.Limit < 1 {
			return Errorf(EINVALID, "section %q limit must be >= 1", s.Heading)
		}
		if s.Offset <= prev {
			return Errorf(EINVALID, "section offsets must be strictly increasing at %q", s.Heading)
		}
		prev = s.Offset
	}
	return nil
}
