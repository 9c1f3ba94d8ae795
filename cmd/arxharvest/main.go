package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/arxharvest"
	"github.com/fwojciec/arxharvest/fs"
	"github.com/fwojciec/arxharvest/gemini"
	"github.com/fwojciec/arxharvest/goquery"
	"github.com/fwojciec/arxharvest/harvest"
	arxhttp "github.com/fwojciec/arxharvest/http"
	"github.com/fwojciec/arxharvest/keyword"
	"github.com/fwojciec/arxharvest/ollama"
	arxslog "github.com/fwojciec/arxharvest/slog"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Collaborators for end-to-end testing. Any left nil is wired to its
	// real implementation by Run.
	Fetcher  arxharvest.Fetcher
	Parser   arxharvest.ListingParser
	Keywords arxharvest.KeywordExtractor
	Writer   arxharvest.RecordWriter
	Archive  arxharvest.PageArchive
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Load .env file if present (ignore errors)
	_ = godotenv.Load()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("arxharvest"),
		kong.Description("Harvest bibliographic records from arXiv search result pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	// Decorators log at Info; without --verbose the handler filters them out.
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = arxhttp.NewFetcher(arxhttp.WithTimeout(cli.Timeout))
	}
	fetcher = arxslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	keywords := m.Keywords
	if keywords == nil {
		embedder, err := buildEmbedder(ctx, cli, stderr)
		if err != nil {
			return err
		}
		keywords = keyword.NewExtractor(embedder,
			keyword.WithTopN(cli.TopN),
			keyword.WithMaxPhraseWords(cli.MaxPhraseWords),
		)
	}
	keywords = arxslog.NewLoggingKeywordExtractor(keywords, logger)

	listingParser := m.Parser
	if listingParser == nil {
		listingParser = goquery.NewParser()
	}

	writer := m.Writer
	if writer == nil {
		writer = fs.NewWriter(cli.Out)
	}

	archive := m.Archive
	if archive == nil && cli.ArchivePages != "" {
		archive = fs.NewPageArchive(cli.ArchivePages)
	}
	if archive != nil {
		defer func() { _ = archive.Abort() }()
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Harvester: &harvest.Harvester{
			Fetcher:     fetcher,
			Parser:      listingParser,
			Keywords:    keywords,
			Writer:      writer,
			Archive:     archive,
			PageSize:    cli.PageSize,
			Delay:       cli.Delay,
			RetryDelays: retryDelays(cli.Retries),
		},
		Archive: archive,
	}

	cmd := &HarvestCmd{
		URL: cli.URL,
		Out: cli.Out,
	}

	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Out            string        `short:"o" default:"records.json" help:"Output file for harvested records"`
	PageSize       int           `default:"200" help:"Results per page; must match the size parameter in the URL"`
	Delay          time.Duration `default:"3s" help:"Pause between page requests"`
	Timeout        time.Duration `short:"t" default:"15s" help:"Fetch timeout per page"`
	Retries        int           `default:"0" help:"Fetch retries per page with exponential backoff"`
	Embedder       string        `default:"gemini" enum:"gemini,ollama" help:"Embedding backend for keyword extraction"`
	Model          string        `help:"Embedding model name (defaults to the backend's default)"`
	TopN           int           `default:"3" help:"Keywords to keep per abstract"`
	MaxPhraseWords int           `default:"3" help:"Longest keyword phrase in words"`
	ArchivePages   string        `placeholder:"DIR" help:"Archive raw HTML pages under DIR"`
	Verbose        bool          `short:"v" help:"Log fetch and extraction details"`
	URL            string        `arg:"" required:"" help:"arXiv advanced search URL to harvest"`
}

// buildEmbedder constructs the embedding backend selected on the command line.
func buildEmbedder(ctx context.Context, cli *CLI, stderr io.Writer) (arxharvest.Embedder, error) {
	if cli.Embedder == "ollama" {
		var opts []ollama.Option
		if baseURL := os.Getenv("OLLAMA_URL"); baseURL != "" {
			opts = append(opts, ollama.WithBaseURL(baseURL))
		}
		if cli.Model != "" {
			opts = append(opts, ollama.WithModel(cli.Model))
		}
		return ollama.NewEmbedder(opts...), nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	var opts []gemini.Option
	if cli.Model != "" {
		opts = append(opts, gemini.WithModel(cli.Model))
	}
	return gemini.NewEmbedder(client, opts...), nil
}

// retryDelays builds exponential backoff delays, one per retry: 1s, 2s, 4s, ...
func retryDelays(retries int) []time.Duration {
	if retries <= 0 {
		return nil
	}
	delays := make([]time.Duration, 0, retries)
	for i := 0; i < retries; i++ {
		delays = append(delays, time.Duration(1<<i)*time.Second)
	}
	return delays
}
