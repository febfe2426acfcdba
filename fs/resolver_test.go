package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("returns the section entry at the index line", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		docs := []*docdex.Document{
			{RelativePath: "a.md", Summary: "a", DetailedSummary: "about a"},
			{
				RelativePath:    "b.md",
				Summary:         "b",
				DetailedSummary: "about b",
				Sections: []docdex.Section{
					{Heading: "Usage", Level: 2, Offset: 1, Limit: 3, Summary: "usage"},
				},
			},
		}
		require.NoError(t, fs.NewWriter(dir).WriteCollection(context.Background(), docs))

		resolver := &fs.Resolver{}
		entry, err := resolver.Resolve(context.Background(), docdex.Collection{Root: dir}, 1)

		require.NoError(t, err)
		assert.Equal(t, 1, entry.Index)
		assert.Equal(t, "b.md", entry.RelativePath)
		assert.Equal(t, "about b", entry.DetailedSummary)
		require.Len(t, entry.Sections, 1)
		assert.Equal(t, "Usage", entry.Sections[0].Heading)
	})

	t.Run("index beyond line count fails with EOUTOFRANGE", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeCollection(t, dir, 2)

		resolver := &fs.Resolver{}
		_, err := resolver.Resolve(context.Background(), docdex.Collection{Root: dir}, 2)

		require.Error(t, err)
		assert.Equal(t, docdex.EOUTOFRANGE, docdex.ErrorCode(err))
	})

	t.Run("negative index fails with EOUTOFRANGE", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeCollection(t, dir, 2)

		resolver := &fs.Resolver{}
		_, err := resolver.Resolve(context.Background(), docdex.Collection{Root: dir}, -1)

		require.Error(t, err)
		assert.Equal(t, docdex.EOUTOFRANGE, docdex.ErrorCode(err))
	})

	t.Run("diverging relative paths fail with ESYNC", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeCollection(t, dir, 2)
		sections := "{\"index\":0,\"relative_path\":\"docs/a.md\",\"detailed_summary\":\"\",\"sections\":[]}\n" +
			"{\"index\":1,\"relative_path\":\"docs/WRONG.md\",\"detailed_summary\":\"\",\"sections\":[]}\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sections.jsonl"), []byte(sections), 0644))

		resolver := &fs.Resolver{}
		_, err := resolver.Resolve(context.Background(), docdex.Collection{Root: dir}, 1)

		require.Error(t, err)
		assert.Equal(t, docdex.ESYNC, docdex.ErrorCode(err))
	})

	t.Run("truncated sections file fails with ESYNC", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeCollection(t, dir, 2)
		sections := "{\"index\":0,\"relative_path\":\"docs/a.md\",\"detailed_summary\":\"\",\"sections\":[]}\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sections.jsonl"), []byte(sections), 0644))

		resolver := &fs.Resolver{}
		_, err := resolver.Resolve(context.Background(), docdex.Collection{Root: dir}, 1)

		require.Error(t, err)
		assert.Equal(t, docdex.ESYNC, docdex.ErrorCode(err))
	})

	t.Run("missing collection fails with ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		resolver := &fs.Resolver{}
		_, err := resolver.Resolve(context.Background(), docdex.Collection{Root: filepath.Join(t.TempDir(), "gone")}, 0)

		require.Error(t, err)
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})
}
