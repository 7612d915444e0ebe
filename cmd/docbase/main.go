package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/docbase/docbase/change"
	"github.com/docbase/docbase/crawl"
	"github.com/docbase/docbase/fs"
	"github.com/docbase/docbase/gemini"
	"github.com/docbase/docbase/goquery"
	"github.com/docbase/docbase/htmltomarkdown"
	dochttp "github.com/docbase/docbase/http"
	"github.com/docbase/docbase/ingest"
	"github.com/docbase/docbase/search"
	docslog "github.com/docbase/docbase/slog"
	"github.com/docbase/docbase/sqlite"
	"github.com/docbase/docbase/toml"
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
	// Home directory holding profiles and their databases. Set before
	// calling Run().
	Home string

	// SQLite database for the profile the invoked command targets.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Home: defaultHome(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docbase"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docbase --help' to see available commands")
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

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	deps.Configs = toml.NewConfigStore(filepath.Join(m.Home, "profiles"))

	// Commands that target a profile get that profile's database and stores.
	profile := profileArg(cli, cmd)
	if profile != "" && cmd != "profile" {
		profileDir := filepath.Join(m.Home, "profiles", profile)
		_ = os.MkdirAll(profileDir, 0755)
		m.DB = sqlite.NewDB(filepath.Join(profileDir, "docbase.db"))
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCBASE_HOME to use a different data directory\n")
			return fmt.Errorf("failed to open database for profile %q: %w", profile, err)
		}
		defer m.Close()

		deps.Meta = sqlite.NewMetadataStore(m.DB)
		deps.Changes = sqlite.NewChangeLog(m.DB)
		deps.Index = sqlite.NewIndexStore(m.DB)
	}

	switch cmd {
	case "ingest", "search", "ask":
		cfg, err := deps.Configs.Load(ctx, profile)
		if err != nil {
			return err
		}

		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		embedder := gemini.NewEmbedder(client, cfg.Model.Embedding)

		switch cmd {
		case "ingest":
			fetcher := docslog.NewLoggingFetcher(dochttp.NewFetcher(), logger)
			manager := &ingest.Manager{
				Configs: deps.Configs,
				Crawler: &crawl.Crawler{
					Fetcher: fetcher,
					Cache:   fs.NewPageCache(filepath.Join(m.Home, "profiles", profile, "pages")),
					Links:   goquery.NewLinkExtractor(),
					Robots:  crawl.NewRobotsCache(fetcher),
				},
				Scanner:   fs.NewScanner(),
				Parser:    fs.NewParser(),
				Converter: htmltomarkdown.NewConverter(),
				Meta:      deps.Meta,
				Changes:   deps.Changes,
				Embedder:  embedder,
				Index:     deps.Index,
			}
			deps.Tasks = docslog.NewLoggingTaskService(manager, logger)
			deps.Waiter = manager
		case "search", "ask":
			engine := search.NewEngine(deps.Index, embedder, cfg.Retrieval)
			deps.Searcher = docslog.NewLoggingSearcher(engine, logger)
			if cmd == "ask" {
				deps.Answerer = gemini.NewAnswerer(client, cfg.Model.LLM)
			}
		}
	case "changes":
		fetcher := docslog.NewLoggingFetcher(dochttp.NewFetcher(), logger)
		deps.Detector = &change.Detector{
			Fetcher: fetcher,
			Meta:    deps.Meta,
			Log:     deps.Changes,
			Cache:   fs.NewPageCache(filepath.Join(m.Home, "profiles", profile, "pages")),
		}
	case "status", "cancel":
		// Tasks live in-process; a fresh invocation has none, and the
		// commands report that through ENOTFOUND.
		deps.Tasks = &ingest.Manager{Configs: deps.Configs}
	}

	return kongCtx.Run(deps)
}

// profileArg returns the profile the invoked command targets, if any.
func profileArg(cli *CLI, cmd string) string {
	switch cmd {
	case "ingest":
		return cli.Ingest.Profile
	case "changes":
		return cli.Changes.Profile
	case "search":
		return cli.Search.Profile
	case "ask":
		return cli.Ask.Profile
	}
	return ""
}

func defaultHome() string {
	if path := os.Getenv("DOCBASE_HOME"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docbase"
	}
	dir := filepath.Join(home, ".docbase")
	_ = os.MkdirAll(dir, 0755)
	return dir
}
