package docdex

import "context"

// Converter converts HTML to Markdown. It is used to ingest documentation
// trees that ship HTML files so the segmenter can index them.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// Ingester prepares non-markdown files in a documentation tree for
// indexing, typically by writing markdown siblings next to HTML sources.
type Ingester interface {
	// IngestTree walks root and converts what it finds, returning the
	// number of files converted.
	IngestTree(ctx context.Context, root string) (int, error)
}
