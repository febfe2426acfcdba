package docdex_test

import (
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a well-formed document", func(t *testing.T) {
		t.Parallel()

		doc := &docdex.Document{
			RelativePath: "guide/intro.md",
			Summary:      "intro",
			Sections: []docdex.Section{
				{Heading: docdex.PreambleHeading, Level: 0, Offset: 1, Limit: 4},
				{Heading: "Install", Level: 2, Offset: 5, Limit: 10},
			},
		}
		require.NoError(t, doc.Validate())
	})

	t.Run("accepts a document with no sections", func(t *testing.T) {
		t.Parallel()

		doc := &docdex.Document{RelativePath: "empty.md"}
		require.NoError(t, doc.Validate())
	})

	t.Run("requires a relative path", func(t *testing.T) {
		t.Parallel()

		doc := &docdex.Document{}
		err := doc.Validate()
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("rejects a zero offset", func(t *testing.T) {
		t.Parallel()

		doc := &docdex.Document{
			RelativePath: "a.md",
			Sections:     []docdex.Section{{Heading: "A", Offset: 0, Limit: 1}},
		}
		err := doc.Validate()
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("rejects a zero limit", func(t *testing.T) {
		t.Parallel()

		doc := &docdex.Document{
			RelativePath: "a.md",
			Sections:     []docdex.Section{{Heading: "A", Offset: 1, Limit: 0}},
		}
		err := doc.Validate()
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("rejects out-of-order sections", func(t *testing.T) {
		t.Parallel()

		doc := &docdex.Document{
			RelativePath: "a.md",
			Sections: []docdex.Section{
				{Heading: "B", Offset: 5, Limit: 2},
				{Heading: "A", Offset: 1, Limit: 2},
			},
		}
		err := doc.Validate()
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})
}
