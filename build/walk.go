package build

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// MarkdownFiles returns the slash-separated relative paths of every
// markdown file under root, sorted lexically. Dot-directories are skipped,
// as is anything matching an ignore glob. Ignore patterns match the
// relative path or the base name; a matching directory is pruned whole.
// The sorted order is what makes rebuilds deterministic: index numbers are
// assigned in this order.
func MarkdownFiles(root string, ignore []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		name := d.Name()
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if p == root {
				return nil
			}
			if strings.HasPrefix(name, ".") || ignored(rel, name, ignore) {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".md" && ext != ".markdown" {
			return nil
		}
		if ignored(rel, name, ignore) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func ignored(rel, name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
