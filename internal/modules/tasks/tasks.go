package tasks

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"clikit/internal/config"
	"clikit/internal/core"
	"clikit/internal/executor"
)

// Options опции команды `clikit run`.
type Options struct {
	Names      []string
	BatchSize  int
	ConfigPath string
	Preset     string
}

// Result вывод одной задачи.
type Result struct {
	Name   string `json:"name"`
	Output string `json:"output,omitempty"`
}

// Run выполняет задачи из конфига пакетами. Пустой Names означает все
// задачи в порядке объявления.
func Run(ctx context.Context, cc *core.CommandContext, opts Options) ([]Result, error) {
	var override config.Override
	if opts.BatchSize > 0 {
		override.BatchSize = &opts.BatchSize
	}
	cfgOpts := executor.ConfigOptions[config.Config]{Config: opts.ConfigPath, Preset: opts.Preset, Override: override}
	return executor.WithConfig(ctx, cc, cfgOpts, config.LoadContext, func(ctx context.Context, cfg config.Config) ([]Result, error) {
		rules := []executor.Rule[selection]{
			{Name: "task selection", Validate: func(s selection) (selection, error) {
				selected, err := selectTasks(cfg, s.Names)
				s.Tasks = selected
				return s, err
			}},
		}
		return executor.Gate(ctx, cc, selection{Names: opts.Names}, rules, func(ctx context.Context, s selection) ([]Result, error) {
			return execute(ctx, cc, s.Tasks, cfg.Batch.Size)
		})
	})
}

// selection имена задач из командной строки и разрешенные по ним задачи.
type selection struct {
	Names []string
	Tasks []config.Task
}

func selectTasks(cfg config.Config, names []string) ([]config.Task, error) {
	if len(cfg.Tasks) == 0 {
		return nil, core.Validation("tasks", "No tasks configured")
	}
	if len(names) == 0 {
		return cfg.Tasks, nil
	}
	selected := make([]config.Task, 0, len(names))
	for _, name := range names {
		task, ok := cfg.TaskByName(name)
		if !ok {
			return nil, core.Validation("tasks", "Unknown task: "+name)
		}
		selected = append(selected, task)
	}
	return selected, nil
}

func execute(ctx context.Context, cc *core.CommandContext, selected []config.Task, batchSize int) ([]Result, error) {
	opts := executor.BatchOptions{
		BatchSize: batchSize,
		OnProgress: func(processed, total int) {
			cc.Logger.Info(fmt.Sprintf("Completed %d/%d tasks", processed, total))
		},
	}
	results, err := executor.RunBatch(ctx, selected, func(ctx context.Context, task config.Task) (Result, error) {
		cc.Logger.Step(task.Name)
		out, err := executor.RunSubprocess(ctx, cc, executor.SubprocessConfig{
			Command: task.Command,
			Args:    task.Args,
			Dir:     taskDir(cc.ProjectRoot, task.Dir),
			Env:     taskEnv(os.Environ(), task.Env),
		})
		if err != nil {
			return Result{}, err
		}
		return Result{Name: task.Name, Output: out}, nil
	}, opts)
	if err != nil {
		cc.Logger.Error("Task run failed", "err", core.MessageOf(err))
		return nil, err
	}
	cc.Logger.Success(fmt.Sprintf("Ran %d tasks", len(results)))
	return results, nil
}

// taskEnv накладывает env задачи на окружение родителя. Без env задачи
// возвращает nil, и процесс наследует окружение как есть.
func taskEnv(parent []string, env map[string]string) map[string]string {
	if len(env) == 0 {
		return nil
	}
	out := make(map[string]string, len(parent)+len(env))
	for _, kv := range parent {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			out[k] = v
		}
	}
	maps.Copy(out, env)
	return out
}

// taskDir разрешает относительный каталог задачи от корня проекта.
func taskDir(root, dir string) string {
	if dir == "" {
		return root
	}
	if filepath.IsAbs(dir) || root == "" {
		return dir
	}
	return filepath.Join(root, dir)
}
