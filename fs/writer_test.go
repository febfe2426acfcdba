package fs_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocs() []*docdex.Document {
	return []*docdex.Document{
		{
			RelativePath:    "guide/intro.md",
			Summary:         "Introduction to the system",
			DetailedSummary: "Longer summary of the introduction.",
			Sections: []docdex.Section{
				{Heading: "Overview", Level: 2, Offset: 1, Limit: 4, Summary: "overview"},
				{Heading: "Install", Level: 2, Offset: 5, Limit: 6, Summary: "install"},
			},
		},
		{
			RelativePath:    "guide/api.md",
			Summary:         "API reference",
			DetailedSummary: "Longer summary of the API.",
		},
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestWriter_WriteCollection(t *testing.T) {
	t.Parallel()

	t.Run("writes synchronized row pairs with sequential indexes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		err := w.WriteCollection(context.Background(), testDocs())
		require.NoError(t, err)

		indexLines := readLines(t, filepath.Join(dir, "index.jsonl"))
		sectionsLines := readLines(t, filepath.Join(dir, "sections.jsonl"))
		require.Len(t, indexLines, 2)
		require.Len(t, sectionsLines, 2)

		for i := range indexLines {
			var ie docdex.IndexEntry
			require.NoError(t, json.Unmarshal([]byte(indexLines[i]), &ie))
			var se docdex.SectionEntry
			require.NoError(t, json.Unmarshal([]byte(sectionsLines[i]), &se))

			assert.Equal(t, i, ie.Index)
			assert.Equal(t, i, se.Index)
			assert.Equal(t, ie.RelativePath, se.RelativePath)
		}
	})

	t.Run("file without sections gets an empty sections array", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		err := w.WriteCollection(context.Background(), testDocs())
		require.NoError(t, err)

		lines := readLines(t, filepath.Join(dir, "sections.jsonl"))
		assert.Contains(t, lines[1], `"sections":[]`)
	})

	t.Run("duplicate relative path aborts with EDUPLICATE", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		docs := []*docdex.Document{
			{RelativePath: "a.md", Summary: "one"},
			{RelativePath: "a.md", Summary: "two"},
		}

		err := w.WriteCollection(context.Background(), docs)

		require.Error(t, err)
		assert.Equal(t, docdex.EDUPLICATE, docdex.ErrorCode(err))
		assert.NoFileExists(t, filepath.Join(dir, "index.jsonl"))
		assert.NoFileExists(t, filepath.Join(dir, "sections.jsonl"))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		require.NoError(t, w.WriteCollection(context.Background(), testDocs()))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "unexpected temp file %s", e.Name())
		}
	})

	t.Run("rebuild replaces the previous generation wholesale", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		require.NoError(t, w.WriteCollection(context.Background(), testDocs()))
		require.NoError(t, w.WriteCollection(context.Background(), testDocs()[:1]))

		assert.Len(t, readLines(t, filepath.Join(dir, "index.jsonl")), 1)
		assert.Len(t, readLines(t, filepath.Join(dir, "sections.jsonl")), 1)
	})

	t.Run("identical input produces byte-identical files", func(t *testing.T) {
		t.Parallel()

		dirA, dirB := t.TempDir(), t.TempDir()
		require.NoError(t, fs.NewWriter(dirA).WriteCollection(context.Background(), testDocs()))
		require.NoError(t, fs.NewWriter(dirB).WriteCollection(context.Background(), testDocs()))

		for _, name := range []string{"index.jsonl", "sections.jsonl"} {
			a, err := os.ReadFile(filepath.Join(dirA, name))
			require.NoError(t, err)
			b, err := os.ReadFile(filepath.Join(dirB, name))
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	})

	t.Run("invalid section offsets abort with EINVALID", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		docs := []*docdex.Document{{
			RelativePath: "a.md",
			Sections: []docdex.Section{
				{Heading: "B", Level: 2, Offset: 5, Limit: 2},
				{Heading: "A", Level: 2, Offset: 3, Limit: 2},
			},
		}}

		err := w.WriteCollection(context.Background(), docs)

		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})
}
