// Package build provides collection rebuild orchestration. It walks a
// documentation tree, segments each markdown file, summarizes files and
// sections through the configured Summarizer, and hands the results to
// the index writer as one synchronized generation.
package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/fs"
	"golang.org/x/sync/errgroup"
)

// DefaultFileTimeout bounds summarizer work for a single file.
const DefaultFileTimeout = 30 * time.Second

// Builder orchestrates a full rebuild of one collection.
type Builder struct {
	Summarizer   docdex.Summarizer
	TokenCounter docdex.TokenCounter // optional
	Ingester     docdex.Ingester     // optional HTML ingestion pass
	Depth        int                 // heading depth, 2 or 3; default 2
	Concurrency  int                 // default GOMAXPROCS
	FileTimeout  time.Duration       // per-file summarizer budget
	RetryDelays  []time.Duration
	Limiter      *Limiter // optional summarizer rate limit
	Ignore       []string // glob patterns excluded from the walk
}

// Result holds the outcome of a rebuild.
type Result struct {
	Indexed int
	Failed  int
	Bytes   int
	Tokens  int
	Errors  []FileError
}

// FileError records a per-file failure. Per-file failures never abort the
// batch; the file is excluded from the generation instead.
type FileError struct {
	RelativePath string
	Err          error
}

// ProgressEvent reports progress during a rebuild.
type ProgressEvent struct {
	Type         ProgressType
	Completed    int
	Total        int
	RelativePath string
	Error        error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting rebuild progress.
type ProgressFunc func(event ProgressEvent)

// fileResult holds the outcome of processing a single file.
type fileResult struct {
	position int
	relPath  string
	doc      *docdex.Document
	bytes    int
	err      error
}

// Build rebuilds the collection rooted at root. The progress callback, if
// provided, receives events as files are processed. The returned Result
// reports per-file failures; a non-nil error means the rebuild as a whole
// could not be trusted and nothing was written.
func (b *Builder) Build(ctx context.Context, root string, progress ProgressFunc) (*Result, error) {
	if b.Summarizer == nil {
		return nil, docdex.Errorf(docdex.EINVALID, "summarizer required")
	}

	if b.Ingester != nil {
		if _, err := b.Ingester.IngestTree(ctx, root); err != nil {
			return nil, err
		}
	}

	files, err := MarkdownFiles(root, b.Ignore)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return &Result{}, nil
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	resultCh := make(chan fileResult, len(files))

	var completed atomic.Int64
	total := len(files)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, relPath := range files {
			i, relPath := i, relPath
			g.Go(func() error {
				result := b.processFile(gctx, root, i, relPath)
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in position order so index assignment stays
	// deterministic regardless of worker scheduling.
	results := make([]fileResult, len(files))
	var fileErrors []FileError
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if result.err != nil {
			fileErrors = append(fileErrors, FileError{RelativePath: result.relPath, Err: result.err})
			if progress != nil {
				progress(ProgressEvent{
					Type:         ProgressFailed,
					Completed:    int(completed.Load()),
					Total:        total,
					RelativePath: result.relPath,
					Error:        result.err,
				})
			}
		} else if progress != nil {
			progress(ProgressEvent{
				Type:         ProgressCompleted,
				Completed:    int(completed.Load()),
				Total:        total,
				RelativePath: result.relPath,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var docs []*docdex.Document
	var totalBytes, totalTokens int
	for _, result := range results {
		if result.err != nil {
			continue
		}
		docs = append(docs, result.doc)
		totalBytes += result.bytes
		if b.TokenCounter != nil {
			if tokens, err := b.TokenCounter.CountTokens(ctx, result.doc.Summary+result.doc.DetailedSummary); err == nil {
				totalTokens += tokens
			}
		}
	}

	if err := fs.NewWriter(root).WriteCollection(ctx, docs); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &Result{
		Indexed: len(docs),
		Failed:  len(fileErrors),
		Bytes:   totalBytes,
		Tokens:  totalTokens,
		Errors:  fileErrors,
	}, nil
}

// processFile segments and summarizes a single file.
func (b *Builder) processFile(ctx context.Context, root string, position int, relPath string) fileResult {
	result := fileResult{position: position, relPath: relPath}

	raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		result.err = docdex.Errorf(docdex.EPARSE, "%q: %v", relPath, err)
		return result
	}
	if !utf8.Valid(raw) {
		result.err = docdex.Errorf(docdex.EPARSE, "%q is not valid UTF-8", relPath)
		return result
	}
	content := string(raw)
	result.bytes = len(content)

	depth := b.Depth
	if depth <= 0 {
		depth = 2
	}
	segments := docdex.SegmentMarkdown(content, depth)

	timeout := b.FileTimeout
	if timeout <= 0 {
		timeout = DefaultFileTimeout
	}
	fileCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	var terse, detailed string
	err = Retry(fileCtx, delays, nil, func(ctx context.Context) error {
		if err := b.Limiter.Wait(ctx); err != nil {
			return err
		}
		var err error
		terse, detailed, err = b.Summarizer.Summarize(ctx, content)
		return err
	})
	if err != nil {
		result.err = b.summarizeError(relPath, err)
		return result
	}

	lines := docdex.SplitLines(content)
	sections := make([]docdex.Section, 0, len(segments))
	for _, seg := range segments {
		segText := strings.Join(lines[seg.Offset-1:seg.Offset-1+seg.Limit], "\n")
		var summary string
		err := Retry(fileCtx, delays, nil, func(ctx context.Context) error {
			if err := b.Limiter.Wait(ctx); err != nil {
				return err
			}
			var err error
			summary, err = b.Summarizer.SummarizeSection(ctx, segText)
			return err
		})
		if err != nil {
			result.err = b.summarizeError(relPath, err)
			return result
		}
		sections = append(sections, docdex.Section{
			Heading: seg.Heading,
			Level:   seg.Level,
			Offset:  seg.Offset,
			Limit:   seg.Limit,
			Summary: summary,
		})
	}

	result.doc = &docdex.Document{
		RelativePath:    relPath,
		Summary:         terse,
		DetailedSummary: detailed,
		Sections:        sections,
	}
	return result
}

func (b *Builder) summarizeError(relPath string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return docdex.Errorf(docdex.ETIMEOUT, "summarizer timed out for %q", relPath)
	}
	return err
}
