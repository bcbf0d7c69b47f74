package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cfiloc"
	"github.com/fwojciec/cfiloc/epub"
	"github.com/fwojciec/cfiloc/fs"
	"github.com/fwojciec/cfiloc/node"
	cfislog "github.com/fwojciec/cfiloc/slog"
	"github.com/fwojciec/cfiloc/sqlite"
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
	// Default paths. Flags, environment and the config file override them.
	DBPath     string
	ConfigPath string
	CacheDir   string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. When nil, Run wires the defaults.
	BookService      cfiloc.BookService
	ParagraphService cfiloc.ParagraphService
	Generator        cfiloc.Generator
	Loader           cfiloc.Loader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	dir := defaultDir()
	return &Main{
		DBPath:     filepath.Join(dir, "cfiloc.db"),
		ConfigPath: filepath.Join(dir, "config.toml"),
		CacheDir:   filepath.Join(dir, "cache"),
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
		kong.Name("cfiloc"),
		kong.Description("Locate text in an EPUB and print an epubcfi range."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cfiloc --help' to see available commands")
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

	configPath := m.ConfigPath
	if cli.Config != "" {
		configPath = cli.Config
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set CFILOC_CONFIG to use a different config file\n")
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.CacheDir = firstNonEmpty(cfg.CacheDir, m.CacheDir)

	deps.Generator = m.Generator
	if deps.Generator == nil {
		gen, err := newGenerator(cfg, firstNonEmpty(cli.Generator, cfg.Generator))
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", cfiloc.ErrorMessage(err))
			return err
		}
		deps.Generator = fs.NewCachedGenerator(cfislog.NewLoggingGenerator(gen, deps.Logger))
	}
	deps.Loader = m.Loader
	if deps.Loader == nil {
		deps.Loader = cfislog.NewLoggingLoader(fs.NewLoader(), deps.Logger)
	}

	if needsDB(strings.Fields(kongCtx.Command())[0]) {
		dbPath := firstNonEmpty(cli.DB, cfg.DB, m.DBPath)
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}

		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set CFILOC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		deps.Books = sqlite.NewBookService(m.DB)
		deps.Paragraphs = sqlite.NewParagraphService(m.DB)
	}
	if m.BookService != nil {
		deps.Books = m.BookService
	}
	if m.ParagraphService != nil {
		deps.Paragraphs = m.ParagraphService
	}

	return kongCtx.Run(deps)
}

// needsDB reports whether a command uses the book library.
func needsDB(command string) bool {
	switch command {
	case "locate", "range":
		return false
	}
	return true
}

// newGenerator returns the generator named by kind.
func newGenerator(cfg *Config, kind string) (cfiloc.Generator, error) {
	switch kind {
	case "", GeneratorNative:
		return epub.NewGenerator(), nil
	case GeneratorNode:
		command := firstNonEmpty(cfg.Node.Command, node.DefaultCommand)
		script := cfg.Node.Script
		if cfg.Node.Command == "" && script == "" {
			script = node.DefaultScript
		}
		var args []string
		if script != "" {
			args = append(args, script)
		}
		return node.NewGenerator(command, args...), nil
	default:
		return nil, cfiloc.Errorf(cfiloc.EINVALID, "unknown generator %q", kind)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cfiloc"
	}
	return filepath.Join(home, ".cfiloc")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
