package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/pix-sales/internal/sales"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

// globalFlags are shared by every subcommand
type globalFlags struct {
	logLevel      *string
	logJSON       *bool
	product       *string
	unitPrice     *string
	scanner       *string
	tesseractPath *string
	tesseractLang *string
	geminiKey     *string
	geminiModel   *string
	ollamaURL     *string
	ollamaModel   *string
	cachePath     *string
	rateLimit     *int
	concurrency   *int
}

func newGlobalFlags(fs *ff.FlagSet) *globalFlags {
	return &globalFlags{
		logLevel:      fs.StringLong("log-level", "info", "Log level: debug, info, warn or error"),
		logJSON:       fs.BoolLong("log-json", "Log as JSON instead of text"),
		product:       fs.StringLong("product", "Produto", "Product label applied to every receipt"),
		unitPrice:     fs.StringLong("unit-price", "0", "Unit price used to derive quantities, e.g. 5,50 (0 disables)"),
		scanner:       fs.StringLong("scanner", "tesseract", "Recognizer: 'tesseract', 'gemini' or 'ollama'"),
		tesseractPath: fs.StringLong("tesseract-path", "", "Path to the tesseract binary (default: search PATH)"),
		tesseractLang: fs.StringLong("tesseract-lang", "por", "Tesseract language data"),
		geminiKey:     fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)"),
		geminiModel:   fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name"),
		ollamaURL:     fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL"),
		ollamaModel:   fs.StringLong("ollama-model", "llava", "Ollama model name (e.g., llava, qwen2.5vl, minicpm-v)"),
		cachePath:     fs.StringLong("cache", "", "Transcript cache file; re-uploaded receipts are not recognized twice"),
		rateLimit:     fs.IntLong("rate-limit", 0, "Maximum remote recognizer calls per minute (0 for unlimited)"),
		concurrency:   fs.IntLong("concurrency", sales.DefaultConcurrency, "Receipts recognized at once"),
	}
}

func (g *globalFlags) batchConfig() (sales.BatchConfig, error) {
	price, err := sales.ParseUnitPrice(*g.unitPrice)
	if err != nil {
		return sales.BatchConfig{}, fmt.Errorf("parsing unit price %q: %w", *g.unitPrice, err)
	}
	if price.IsNegative() {
		return sales.BatchConfig{}, fmt.Errorf("unit price must not be negative: %s", price)
	}
	return sales.BatchConfig{ProductLabel: *g.product, UnitPrice: price}, nil
}

func setupLogging(level string, asJSON bool) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if asJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func newRootCommand(stdout io.Writer) *ff.Command {
	rootFlags := ff.NewFlagSet("pix-sales")
	global := newGlobalFlags(rootFlags)
	rootFlags.BoolLong("version", "Show version information")

	return &ff.Command{
		Name:      "pix-sales",
		Usage:     "pix-sales [FLAGS] <SUBCOMMAND>",
		ShortHelp: "Turn Pix payment receipts into a sales spreadsheet",
		Flags:     rootFlags,
		Subcommands: []*ff.Command{
			newServeCommand(rootFlags, global),
			newExtractCommand(rootFlags, global, stdout),
		},
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	// A .env file is optional; its values are read like any other PIX_SALES_* variable
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "error: loading .env: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(os.Stdout)
	if err := root.Parse(os.Args[1:], ff.WithEnvVarPrefix("PIX_SALES")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Command(root.GetSelected()))
		if errors.Is(err, ff.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := root.Run(ctx); err != nil {
		if errors.Is(err, ff.ErrNoExec) {
			fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Command(root))
			os.Exit(1)
		}
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
