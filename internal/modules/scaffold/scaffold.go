package scaffold

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"clikit/internal/config"
	"clikit/internal/core"
	"clikit/internal/executor"
	"clikit/internal/fsys"
	"clikit/internal/storage"
	"clikit/internal/validate"
)

var projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Options опции команды `clikit init`.
type Options struct {
	Name        string
	Template    string
	Module      string
	DryRun      bool
	Interactive bool
	SkipPrompts bool
	Force       bool
	ConfigPath  string
	Preset      string
	// ForceSet и DryRunSet отмечают флаги, явно заданные вызывающим,
	// в том числе значением false.
	ForceSet  bool
	DryRunSet bool
}

func (o Options) IsDryRun() bool      { return o.DryRun }
func (o Options) IsInteractive() bool { return o.Interactive }
func (o Options) SkipsPrompts() bool  { return o.SkipPrompts }

// Overlay накладывает явно заданные поля o на ответы prompted. Флаг
// считается заданным, если он true или отмечен в ForceSet/DryRunSet.
func (o Options) Overlay(prompted Options) Options {
	out := prompted
	if o.Name != "" {
		out.Name = o.Name
	}
	if o.Template != "" {
		out.Template = o.Template
	}
	if o.Module != "" {
		out.Module = o.Module
	}
	if o.ConfigPath != "" {
		out.ConfigPath = o.ConfigPath
	}
	if o.Preset != "" {
		out.Preset = o.Preset
	}
	if o.DryRunSet || o.DryRun {
		out.DryRun = o.DryRun
	}
	if o.ForceSet || o.Force {
		out.Force = o.Force
	}
	out.DryRunSet = o.DryRunSet
	out.ForceSet = o.ForceSet
	out.Interactive = o.Interactive
	out.SkipPrompts = o.SkipPrompts
	return out
}

// Deps зависимости генератора.
type Deps struct {
	Templates   *Registry
	Prompt      executor.PromptFunc[Options]
	OpenJournal func(cfg config.Config) (storage.Store, error)
}

// Report итог генерации проекта.
type Report struct {
	RunID    string   `json:"run_id,omitempty"`
	Project  string   `json:"project"`
	Template string   `json:"template"`
	Created  []string `json:"created"`
	DryRun   bool     `json:"dry_run"`
}

type request struct {
	Name     string
	Template string
	Module   string
}

// Run создает проект из шаблона: опрос, конфиг, dry-run, валидация и
// транзакционная запись файлов с откатом.
func Run(ctx context.Context, cc *core.CommandContext, deps Deps, opts Options) (Report, error) {
	return executor.WithPrompts(ctx, cc, opts, deps.Prompt, func(ctx context.Context, opts Options) (Report, error) {
		var override config.Override
		if opts.Template != "" {
			override.Template = &opts.Template
		}
		cfgOpts := executor.ConfigOptions[config.Config]{Config: opts.ConfigPath, Preset: opts.Preset, Override: override}
		return executor.WithConfig(ctx, cc, cfgOpts, config.LoadContext, func(ctx context.Context, cfg config.Config) (Report, error) {
			return executor.WithDryRun(ctx, cc, opts, func(ctx context.Context, opts Options) (Report, error) {
				req := request{Name: opts.Name, Template: cfg.Project.Template, Module: opts.Module}
				if req.Name == "" {
					req.Name = cfg.Project.Name
				}
				if req.Module == "" {
					req.Module = cfg.Project.Module
				}
				return executor.Gate(ctx, cc, req, rules(deps.Templates), func(ctx context.Context, req request) (Report, error) {
					return generate(ctx, cc, deps, cfg, opts, req)
				})
			})
		})
	})
}

func rules(templates *Registry) []executor.Rule[request] {
	nameValidator := validate.String("name").
		Map(func(s string) (string, error) { return strings.ToLower(strings.TrimSpace(s)), nil }).
		And(validate.StringLength(2, 64, "name")).
		And(validate.Pattern(projectNamePattern, "name must start with a letter and contain only lowercase letters, digits and dashes", "name"))
	templateValidator := validate.EnumValue(templates.Names(), "template")

	return []executor.Rule[request]{
		{Name: "project name", Validate: func(r request) (request, error) {
			name, err := nameValidator(r.Name)
			r.Name = name
			return r, err
		}},
		{Name: "template", Validate: func(r request) (request, error) {
			_, err := templateValidator(r.Template)
			return r, err
		}},
		{Name: "module path", Validate: func(r request) (request, error) {
			if r.Module == "" {
				r.Module = r.Name
			}
			if strings.ContainsAny(r.Module, " \t\n") {
				return r, core.Validation("module", "module must not contain whitespace")
			}
			return r, nil
		}},
	}
}

func generate(ctx context.Context, cc *core.CommandContext, deps Deps, cfg config.Config, opts Options, req request) (Report, error) {
	tpl, err := deps.Templates.Lookup(req.Template)
	if err != nil {
		return Report{}, core.Wrap(core.CodeValidation, err.Error(), err)
	}
	files, err := tpl.Render(Data{Name: req.Name, Module: req.Module})
	if err != nil {
		return Report{}, core.Wrap(core.CodeOperation, "Failed to render template "+req.Template, err)
	}

	fs := cc.FS
	if opts.DryRun {
		fs = fsys.NewDryRun(cc.FS, cc.Logger)
	}
	ops := plan(fs, req.Name, files, opts.Force)

	runID := uuid.NewString()
	txOpts := []executor.TxOption{executor.WithRunID(runID)}
	if deps.OpenJournal != nil && cfg.Journal.Enabled && !opts.DryRun {
		store, err := deps.OpenJournal(cfg)
		if err != nil {
			cc.Logger.Warning("Journal unavailable, continuing without it", "err", err)
		} else {
			defer store.Close()
			txOpts = append(txOpts, executor.WithJournal(store))
		}
	}

	created, err := executor.RunTransaction(ctx, cc, ops, txOpts...)
	if err != nil {
		return Report{}, err
	}
	var paths []string
	for _, p := range created {
		if p != "" {
			paths = append(paths, p)
		}
	}
	if !opts.DryRun {
		cc.Logger.Success(fmt.Sprintf("Created %s from template %s", req.Name, req.Template))
	}
	return Report{RunID: runID, Project: req.Name, Template: req.Template, Created: paths, DryRun: opts.DryRun}, nil
}

// plan строит операции: проверка цели, каталоги сверху вниз, затем файлы.
// Откат удаляет только то, чего не было до запуска.
func plan(fs core.FileSystem, root string, files []File, force bool) []executor.FileOperation[string] {
	ops := []executor.FileOperation[string]{{
		Name: "check " + root,
		Execute: func(ctx context.Context) (string, error) {
			exists, err := fs.Exists(root)
			if err != nil {
				return "", core.Wrap(core.CodeOperation, "Failed to inspect "+root, err)
			}
			if exists && !force {
				return "", core.New(core.CodeOperation, "Target already exists: "+root)
			}
			return "", nil
		},
	}}

	for _, dir := range directories(root, files) {
		ops = append(ops, mkdirOp(fs, dir))
	}
	for _, f := range files {
		ops = append(ops, writeOp(fs, path.Join(root, f.Path), f.Content))
	}
	return ops
}

func directories(root string, files []File) []string {
	seen := map[string]struct{}{root: {}}
	for _, f := range files {
		for dir := path.Dir(f.Path); dir != "." && dir != "/"; dir = path.Dir(dir) {
			seen[path.Join(root, dir)] = struct{}{}
		}
	}
	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool {
		di, dj := strings.Count(dirs[i], "/"), strings.Count(dirs[j], "/")
		if di != dj {
			return di < dj
		}
		return dirs[i] < dirs[j]
	})
	return dirs
}

func mkdirOp(fs core.FileSystem, dir string) executor.FileOperation[string] {
	var existed bool
	return executor.FileOperation[string]{
		Name: "mkdir " + dir,
		Execute: func(ctx context.Context) (string, error) {
			ok, err := fs.Exists(dir)
			if err != nil {
				return "", core.Wrap(core.CodeOperation, "Failed to inspect "+dir, err)
			}
			existed = ok
			if existed {
				return "", nil
			}
			if err := fs.MkdirAll(dir); err != nil {
				return "", core.Wrap(core.CodeOperation, "Failed to create directory "+dir, err)
			}
			return dir + "/", nil
		},
		Rollback: func(ctx context.Context) error {
			if existed {
				return nil
			}
			return fs.Remove(dir)
		},
	}
}

func writeOp(fs core.FileSystem, file string, content []byte) executor.FileOperation[string] {
	var previous []byte
	var existed bool
	return executor.FileOperation[string]{
		Name: "write " + file,
		Execute: func(ctx context.Context) (string, error) {
			ok, err := fs.Exists(file)
			if err != nil {
				return "", core.Wrap(core.CodeOperation, "Failed to inspect "+file, err)
			}
			existed = ok
			if existed {
				if previous, err = fs.ReadFile(file); err != nil {
					return "", core.Wrap(core.CodeOperation, "Failed to back up "+file, err)
				}
			}
			if err := fs.WriteFile(file, content); err != nil {
				return "", core.Wrap(core.CodeOperation, "Failed to write "+file, err)
			}
			return file, nil
		},
		Rollback: func(ctx context.Context) error {
			if existed {
				return fs.WriteFile(file, previous)
			}
			return fs.Remove(file)
		},
	}
}
