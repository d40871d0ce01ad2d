package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"clikit/internal/config"
	"clikit/internal/core"
	"clikit/internal/fsys"
	"clikit/internal/modules/scaffold"
	"clikit/internal/storage"
	"clikit/internal/storage/sqlite"
	"clikit/pkg/logger"
)

// Options глобальные флаги CLI.
type Options struct {
	ProjectRoot string
	ConfigPath  string
	Preset      string
	LogFormat   string
	Verbose     bool
}

// App агрегирует зависимости команд.
type App struct {
	Root      string
	Config    string
	Preset    string
	Verbose   bool
	Logger    core.Logger
	Templates *scaffold.Registry
}

// NewApp строит приложение: корень проекта, логгер и реестр шаблонов.
// Конфиг ищется в корне, если путь не задан явно.
func NewApp(ctx context.Context, opts Options, stderr io.Writer) (*App, error) {
	root := opts.ProjectRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working dir: %w", err)
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.Discover(abs)
	}

	format := opts.LogFormat
	if format == "" && cfgPath != "" {
		if cfg, err := config.LoadContext(ctx, cfgPath); err == nil {
			format = cfg.Log.Format
		}
	}

	return &App{
		Root:      abs,
		Config:    cfgPath,
		Preset:    opts.Preset,
		Verbose:   opts.Verbose,
		Logger:    newLogger(format, opts.Verbose, stderr),
		Templates: scaffold.Builtins(),
	}, nil
}

func newLogger(format string, verbose bool, w io.Writer) core.Logger {
	if format == "json" {
		level := logger.LevelFromEnv()
		if verbose {
			level = logger.ParseLevel("debug")
		}
		return logger.NewStructured(logger.NewJSON(w, level))
	}
	return logger.NewConsole(w, verbose)
}

// CommandContext строит контекст команды с файловой системой в корне проекта.
func (a *App) CommandContext(args []string) *core.CommandContext {
	return &core.CommandContext{
		ProjectRoot: a.Root,
		Logger:      a.Logger,
		Verbose:     a.Verbose,
		FS:          fsys.NewOS(a.Root),
		Args:        args,
	}
}

// OpenJournal открывает журнал отката; относительный путь берется от корня.
func (a *App) OpenJournal(cfg config.Config) (storage.Store, error) {
	path := cfg.Journal.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.Root, path)
	}
	st, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return st, nil
}

// LoadConfig загружает конфиг приложения.
func (a *App) LoadConfig(ctx context.Context) (config.Config, error) {
	return config.LoadContext(ctx, a.Config)
}
