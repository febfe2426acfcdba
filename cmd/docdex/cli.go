package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/build"
	"github.com/fwojciec/docdex/query"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Builder *build.Builder
	Session *query.Session
	Ranker  docdex.Ranker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Build       BuildCmd       `cmd:"" help:"Rebuild a collection's index"`
	Collections CollectionsCmd `cmd:"" help:"Discover collections under a documentation root"`
	Ask         AskCmd         `cmd:"" help:"Ask a question over indexed documentation"`
	Extract     ExtractCmd     `cmd:"" help:"Read an exact line window from an indexed file"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Root        string        `arg:"" help:"Collection root directory"`
	Depth       int           `default:"2" help:"Heading depth for sections (2 or 3)"`
	Concurrency int           `short:"c" default:"0" help:"Concurrent summarizer limit (0 = CPU count)"`
	Timeout     time.Duration `default:"30s" help:"Per-file summarizer timeout"`
	RPS         float64       `name:"rps" default:"0" help:"Summarizer calls per second (0 = unlimited)"`
	Ignore      []string      `help:"Glob patterns to exclude from the walk (repeatable)"`
	IngestHTML  bool          `name:"ingest-html" help:"Convert HTML files to markdown before indexing"`
	Backend     string        `default:"gemini" enum:"gemini,openai" help:"Summarizer backend"`
}

// CollectionsCmd is the "collections" subcommand.
type CollectionsCmd struct {
	Root   string `arg:"" help:"Documentation root to scan"`
	Sample int    `short:"s" default:"5" help:"Index lines to preview per collection"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Root     string `arg:"" help:"Documentation root to scan"`
	Question string `arg:"" help:"Question to ask about the documentation"`
	MaxPicks int    `default:"5" help:"Maximum entries the ranker may pick"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Root         string `arg:"" help:"Collection root directory"`
	RelativePath string `arg:"" help:"File path relative to the collection root"`
	Offset       int    `arg:"" help:"1-indexed first line"`
	Limit        int    `arg:"" help:"Number of lines"`
}
