package htmltomarkdown

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdex"
)

// Ensure Ingester implements docdex.Ingester at compile time.
var _ docdex.Ingester = (*Ingester)(nil)

// Ingester converts .html files under a documentation root into sibling
// .md files. An existing .md sibling wins: hand-written markdown is never
// overwritten by a conversion.
type Ingester struct {
	conv docdex.Converter
}

// NewIngester creates an Ingester using the given converter. A nil
// converter gets the package default.
func NewIngester(conv docdex.Converter) *Ingester {
	if conv == nil {
		conv = NewConverter()
	}
	return &Ingester{conv: conv}
}

// IngestTree walks root and writes a markdown sibling for every .html
// file that does not already have one. Returns the number of files
// converted.
func (i *Ingester) IngestTree(ctx context.Context, root string) (int, error) {
	var htmlFiles []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext == ".html" || ext == ".htm" {
			htmlFiles = append(htmlFiles, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	converted := 0
	for _, path := range htmlFiles {
		target := strings.TrimSuffix(path, filepath.Ext(path)) + ".md"
		if _, err := os.Stat(target); err == nil {
			continue
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return converted, docdex.Errorf(docdex.EPARSE, "%q: %v", path, err)
		}

		markdown, err := i.conv.Convert(string(raw))
		if err != nil {
			return converted, docdex.Errorf(docdex.EPARSE, "%q: %v", path, err)
		}

		if title := ExtractTitle(string(raw)); title != "" && !strings.HasPrefix(markdown, "#") {
			markdown = "# " + title + "\n\n" + markdown
		}
		if !strings.HasSuffix(markdown, "\n") {
			markdown += "\n"
		}

		if err := os.WriteFile(target, []byte(markdown), 0644); err != nil {
			return converted, err
		}
		converted++
	}

	return converted, nil
}

// ExtractTitle returns the page title of an HTML document, or "".
func ExtractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
