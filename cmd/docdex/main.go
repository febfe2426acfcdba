package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/build"
	"github.com/fwojciec/docdex/gemini"
	"github.com/fwojciec/docdex/htmltomarkdown"
	docdexopenai "github.com/fwojciec/docdex/openai"
	"github.com/fwojciec/docdex/query"
	docdexslog "github.com/fwojciec/docdex/slog"
	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// tokenizerModel is used for token counting on extracted bundles.
const tokenizerModel = "gemini-2.5-flash"

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// ExitError carries a process exit code through command execution.
// Builds use 1 for partial per-file failures and 2 for fatal errors.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Environment files are optional; absence is not an error.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docdex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cmd == "build" {
		summarizer, err := newSummarizer(ctx, cli.Build.Backend, stderr)
		if err != nil {
			return err
		}

		var limiter *build.Limiter
		if cli.Build.RPS > 0 {
			limiter = build.NewLimiter(cli.Build.RPS, 1)
		}
		var ingester docdex.Ingester
		if cli.Build.IngestHTML {
			ingester = htmltomarkdown.NewIngester(nil)
		}

		deps.Builder = &build.Builder{
			Summarizer:  docdexslog.NewLoggingSummarizer(summarizer, deps.Logger),
			Ingester:    ingester,
			Depth:       cli.Build.Depth,
			Concurrency: cli.Build.Concurrency,
			FileTimeout: cli.Build.Timeout,
			Limiter:     limiter,
			Ignore:      cli.Build.Ignore,
		}
	}

	if cmd == "collections" {
		deps.Session = query.NewSession(query.WithSampleSize(cli.Collections.Sample))
	}

	if cmd == "extract" {
		deps.Session = query.NewSession()
	}

	if cmd == "ask" {
		client, err := newGeminiClient(ctx, stderr)
		if err != nil {
			return err
		}
		deps.Ranker = docdexslog.NewLoggingRanker(gemini.NewRanker(client, defaultModel), deps.Logger)

		cache, err := query.NewCache(0)
		if err != nil {
			return err
		}
		opts := []query.Option{query.WithCache(cache)}
		// Token counting on bundles is best effort.
		if counter, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
			opts = append(opts, query.WithTokenCounter(counter))
		}
		deps.Session = query.NewSession(opts...)
	}

	return kongCtx.Run(deps)
}

func newSummarizer(ctx context.Context, backend string, stderr io.Writer) (docdex.Summarizer, error) {
	switch backend {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set")
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return docdexopenai.NewSummarizer(openai.NewClient(apiKey), ""), nil
	default:
		client, err := newGeminiClient(ctx, stderr)
		if err != nil {
			return nil, err
		}
		return gemini.NewSummarizer(client, defaultModel), nil
	}
}

func newGeminiClient(ctx context.Context, stderr io.Writer) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}
