package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/build"
	main "github.com/fwojciec/docdex/cmd/docdex"
	"github.com/fwojciec/docdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubSummarizer() *mock.Summarizer {
	return &mock.Summarizer{
		SummarizeFn: func(_ context.Context, _ string) (string, string, error) {
			return "terse", "detailed", nil
		},
		SummarizeSectionFn: func(_ context.Context, _ string) (string, error) {
			return "section summary", nil
		},
	}
}

func TestBuildCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("indexes files and reports summary", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("## A\nbody\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "b.md"), []byte("## B\nbody\n"), 0644))

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Builder: &build.Builder{Summarizer: stubSummarizer(), RetryDelays: []time.Duration{}},
		}

		cmd := &main.BuildCmd{Root: root, Depth: 2}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Indexed 2 files")
		assert.FileExists(t, filepath.Join(root, "index.jsonl"))
		assert.FileExists(t, filepath.Join(root, "sections.jsonl"))
	})

	t.Run("exits 1 when some files fail", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "good.md"), []byte("## A\nbody\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "bad.md"), []byte("## B\nbody\n"), 0644))

		summarizer := &mock.Summarizer{
			SummarizeFn: func(_ context.Context, text string) (string, string, error) {
				if bytes.Contains([]byte(text), []byte("## B")) {
					return "", "", docdex.Errorf(docdex.EINTERNAL, "model unavailable")
				}
				return "terse", "detailed", nil
			},
			SummarizeSectionFn: func(_ context.Context, _ string) (string, error) {
				return "section summary", nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Builder: &build.Builder{Summarizer: summarizer, RetryDelays: []time.Duration{}},
		}

		cmd := &main.BuildCmd{Root: root, Depth: 2}
		err := cmd.Run(deps)

		var exitErr *main.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 1, exitErr.Code)
		assert.Contains(t, stderr.String(), "bad.md")
	})

	t.Run("exits 2 when the tree has no markdown files", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Builder: &build.Builder{Summarizer: stubSummarizer(), RetryDelays: []time.Duration{}},
		}

		cmd := &main.BuildCmd{Root: root, Depth: 2}
		err := cmd.Run(deps)

		var exitErr *main.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, stderr.String(), "no markdown files")
	})

	t.Run("exits 2 on a fatal error", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Builder: &build.Builder{RetryDelays: []time.Duration{}}, // no summarizer
		}

		cmd := &main.BuildCmd{Root: t.TempDir(), Depth: 2}
		err := cmd.Run(deps)

		var exitErr *main.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	err := &main.ExitError{Code: 2, Err: inner}
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := &main.ExitError{Code: 1}
	assert.Equal(t, "exit code 1", bare.Error())
}
