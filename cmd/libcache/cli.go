package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/libcache"
	"github.com/fwojciec/libcache/importer"
	"github.com/fwojciec/libcache/yaml"
)

// defaultConfigPath is read when present and no config path is given.
const defaultConfigPath = "libcache.yaml"

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *libcache.Config

	Libraries   libcache.LibraryService
	Runs        libcache.RunService
	Importer    *importer.Importer
	Interpreter libcache.Interpreter
	Parser      libcache.LibdocParser

	// Checksum returns the content hash of a libdoc file.
	Checksum func(path string) (string, error)

	// SilenceStdout is optional.
	SilenceStdout func() (restore func())
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log pipeline steps to stderr"`
	Python  string `env:"LIBCACHE_PYTHON" help:"Python interpreter with Robot Framework installed"`
	Config  string `env:"LIBCACHE_CONFIG" type:"path" help:"YAML configuration file (default: ${default_config})"`

	Import   ImportCmd   `cmd:"" help:"Resolve libraries and generate or reuse their libdoc files"`
	Keywords KeywordsCmd `cmd:"" help:"List keywords of a cached library"`
	List     ListCmd     `cmd:"" help:"List recorded libraries"`
	History  HistoryCmd  `cmd:"" help:"List recent import runs"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a recorded library"`
	Env      EnvCmd      `cmd:"" help:"Print interpreter diagnostics"`
}

// AfterApply sets up logging once flags are parsed.
func (c *CLI) AfterApply(deps *Dependencies) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// loadConfig merges the configuration file under flags and environment.
func (c *CLI) loadConfig() (*libcache.Config, error) {
	path := c.Config
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := yaml.LoadConfig(path)
	if libcache.ErrorCode(err) == libcache.ENOTFOUND && c.Config == "" {
		cfg, err = &libcache.Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	if c.Python != "" {
		cfg.Python = c.Python
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Names       string   `arg:"" help:"Comma separated library names"`
	SearchPaths string   `arg:"" help:"Comma separated module search paths, may be empty"`
	CacheDir    string   `arg:"" type:"path" help:"Directory holding libdoc files"`
	Fallback    []string `name:"fallback" type:"path" help:"Directory of fallback libdoc files (repeatable)"`
	NoRecord    bool     `help:"Do not record results in the library repository"`

	StaticResolve bool `help:"Locate libraries by scanning the search path instead of importing them"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Library name"`
	Force bool   `help:"Confirm deletion"`
}

// KeywordsCmd is the "keywords" subcommand.
type KeywordsCmd struct {
	Name     string `arg:"" help:"Library name"`
	CacheDir string `env:"LIBCACHE_CACHE_DIR" type:"path" help:"Directory holding libdoc files"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Status string `help:"Only list libraries with this status (pending, success, error)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int `short:"n" default:"20" help:"Number of runs to show"`
}

// EnvCmd is the "env" subcommand.
type EnvCmd struct{}
