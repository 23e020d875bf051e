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
	"github.com/fwojciec/libcache"
	"github.com/fwojciec/libcache/etree"
	"github.com/fwojciec/libcache/fs"
	"github.com/fwojciec/libcache/importer"
	"github.com/fwojciec/libcache/python"
	"github.com/fwojciec/libcache/robot"
	libslog "github.com/fwojciec/libcache/slog"
	"github.com/fwojciec/libcache/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	loadEnvFiles()

	m := NewMain()

	// Run reports errors on stderr itself.
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// loadEnvFiles loads .env and .env.local from the working directory.
// Variables already set in the environment take precedence.
func loadEnvFiles() {
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	LibraryService libcache.LibraryService
	RunService     libcache.RunService

	// SilenceStdout redirects process stdout for the duration of an import.
	SilenceStdout func() (restore func())
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:        defaultDBPath(),
		SilenceStdout: silenceStdout,
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
		Ctx:           ctx,
		Stdout:        stdout,
		Stderr:        stderr,
		Logger:        slog.New(slog.NewTextHandler(stderr, nil)),
		Parser:        etree.NewParser(),
		Checksum:      fs.Checksum,
		SilenceStdout: m.SilenceStdout,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("libcache"),
		kong.Description("Resolve keyword libraries and cache their libdoc documentation."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"default_config": defaultConfigPath},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		err := fmt.Errorf("no command specified. Run 'libcache --help' to see available commands")
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		fmt.Fprintf(stderr, "Run 'libcache --help' for usage.\n")
		return err
	}
	cmd = strings.Fields(kongCtx.Command())[0]

	cfg, err := cli.loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", libcache.ErrorMessage(err))
		return err
	}
	deps.Config = cfg

	if cmd == "list" || cmd == "history" || cmd == "delete" || (cmd == "import" && !cli.Import.NoRecord) {
		if err := m.openDB(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set LIBCACHE_DB to use a different database path\n")
			fmt.Fprintf(stderr, "error: %s\n", err)
			return err
		}
		defer m.Close()

		if m.LibraryService == nil {
			m.LibraryService = sqlite.NewLibraryService(m.DB)
		}
		if m.RunService == nil {
			m.RunService = sqlite.NewRunService(m.DB)
		}
		deps.Libraries = m.LibraryService
		deps.Runs = m.RunService
	}

	switch cmd {
	case "env":
		deps.Interpreter = m.interpreter(cli, python.NewInterpreter(cfg.Python, cfg.SearchPaths), deps.Logger)
	case "import":
		searchPaths := append(splitList(cli.Import.SearchPaths), cfg.SearchPaths...)
		py := python.NewInterpreter(cfg.Python, searchPaths)
		interp := m.interpreter(cli, py, deps.Logger)

		env, err := interp.Probe(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", libcache.ErrorMessage(err))
			fmt.Fprintf(stderr, "Hint: Set --python or LIBCACHE_PYTHON to an interpreter with Robot Framework installed\n")
			return err
		}

		fallbacks, err := fs.FindFallbackLibraries(append(cli.Import.Fallback, cfg.FallbackDirs...), deps.Parser)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", libcache.ErrorMessage(err))
			return err
		}

		var loader python.ModuleLoader = py
		if cli.Import.StaticResolve {
			loader = python.NewFinder(env.ModuleSearchPath)
		}

		var (
			resolver  libcache.Resolver         = python.NewResolver(loader)
			freshness libcache.FreshnessChecker = fs.NewFreshnessChecker()
			generator libcache.Generator        = robot.NewGenerator(cfg.Python, searchPaths, deps.Parser)
		)
		if cli.Verbose {
			resolver = libslog.NewLoggingResolver(resolver, deps.Logger)
			freshness = libslog.NewLoggingFreshnessChecker(freshness, deps.Logger)
			generator = libslog.NewLoggingGenerator(generator, deps.Logger)
		}

		deps.Importer = &importer.Importer{
			Resolver:    resolver,
			Freshness:   freshness,
			Generator:   generator,
			Interpreter: interp,
			Fallbacks:   fallbacks,
			EnsureDir:   fs.EnsureDir,
		}
	}

	return kongCtx.Run(deps)
}

// openDB opens the library repository, creating its directory if needed.
func (m *Main) openDB() error {
	if m.DBPath != ":memory:" {
		if err := fs.EnsureDir(filepath.Dir(m.DBPath)); err != nil {
			return err
		}
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	return nil
}

func (m *Main) interpreter(cli *CLI, py *python.Interpreter, logger *slog.Logger) libcache.Interpreter {
	var interp libcache.Interpreter = py
	if cli.Verbose {
		interp = libslog.NewLoggingInterpreter(interp, logger)
	}
	return interp
}

func defaultDBPath() string {
	if path := os.Getenv("LIBCACHE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "libcache.db"
	}
	return filepath.Join(home, ".libcache", "libcache.db")
}

// splitList splits a comma separated argument, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
