package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/jmilosz/sitechat/crawl"
	"github.com/jmilosz/sitechat/fs"
	"github.com/jmilosz/sitechat/gemini"
	"github.com/jmilosz/sitechat/goquery"
	schttp "github.com/jmilosz/sitechat/http"
	"github.com/jmilosz/sitechat/ollama"
	scslog "github.com/jmilosz/sitechat/slog"
	"github.com/jmilosz/sitechat/sqlite"
	"github.com/jmilosz/sitechat/vectorize"
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
	// Database path and data directory. Set before calling Run().
	DBPath  string
	DataDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:  defaultDBPath(),
		DataDir: defaultDataDir(),
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
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitechat"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitechat --help' to see available commands")
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

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITECHAT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	deps.DB = m.DB
	deps.Sites = sqlite.NewSiteService(m.DB)
	deps.Pages = sqlite.NewPageService(m.DB)

	embedder := ollama.NewClient(ollama.WithBaseURL(os.Getenv("OLLAMA_HOST")))
	deps.Store = fs.NewStore(filepath.Join(m.DataDir, "vectors"), embedder)
	deps.Exports = fs.NewExporter(filepath.Join(m.DataDir, "exports"))

	deps.Auditor = vectorize.NewAuditor(deps.Sites, deps.Store, logger)
	deps.Deleter = vectorize.NewDeleter(deps.Sites, deps.Pages, deps.Store, deps.Exports, logger)
	deps.Pipeline = vectorize.NewPipeline(deps.Sites, deps.Store, logger)

	// Startup consistency check: sites whose index disappeared from disk
	// read as not indexed instead of failing later. The reconcile command
	// runs this itself and reports the count.
	if cmd != "reconcile" {
		if _, err := deps.Auditor.Reconcile(ctx); err != nil {
			logger.Warn("consistency check failed", "err", err)
		}
	}

	if cmd == "scrape" {
		deps.Crawler = &crawl.Crawler{
			Gate:      schttp.NewRobotsGate(logger),
			Fetcher:   scslog.NewLoggingFetcher(schttp.NewFetcher(), logger),
			Extractor: goquery.NewExtractor(),
			Limiter:   crawl.NewDomainLimiter(cli.Scrape.Delay),
			MaxPages:  cli.Scrape.MaxPages,
			Logger:    logger,
		}
	}

	if cmd == "ask" {
		switch cli.Ask.Backend {
		case "gemini":
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
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
			deps.Completer = gemini.NewCompleter(client)
		default:
			deps.Completer = embedder
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("SITECHAT_DB"); path != "" {
		return path
	}
	return filepath.Join(baseDir(), "sitechat.db")
}

func defaultDataDir() string {
	if dir := os.Getenv("SITECHAT_DATA"); dir != "" {
		return dir
	}
	return filepath.Join(baseDir(), "data")
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sitechat"
	}
	dir := filepath.Join(home, ".sitechat")
	_ = os.MkdirAll(dir, 0755)
	return dir
}
