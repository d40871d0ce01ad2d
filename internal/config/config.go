package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"clikit/internal/core"
)

// DefaultFile имя конфига, который ищется в корне проекта.
const DefaultFile = "clikit.yaml"

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Task описывает внешнюю команду для `clikit run`.
type Task struct {
	Name    string            `yaml:"name" validate:"required"`
	Command string            `yaml:"command" validate:"required"`
	Args    []string          `yaml:"args"`
	Dir     string            `yaml:"dir"`
	Env     map[string]string `yaml:"env"`
}

// Config описывает параметры инструмента.
type Config struct {
	Project struct {
		Name     string `yaml:"name"`
		Template string `yaml:"template" validate:"omitempty,alphanum"`
		Module   string `yaml:"module"`
	} `yaml:"project"`
	Log struct {
		Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
		Format string `yaml:"format" validate:"omitempty,oneof=console json"`
	} `yaml:"log"`
	Journal struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path" validate:"required_if=Enabled true"`
	} `yaml:"journal"`
	Batch struct {
		Size int `yaml:"size" validate:"gte=1,lte=256"`
	} `yaml:"batch"`
	Tasks []Task `yaml:"tasks" validate:"dive"`
	// Extra сохраняет ключи верхнего уровня, неизвестные инструменту.
	Extra map[string]any `yaml:",inline"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() Config {
	var cfg Config
	cfg.Project.Template = "basic"
	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	cfg.Journal.Enabled = false
	cfg.Journal.Path = ".clikit/journal.db"
	cfg.Batch.Size = 4
	return cfg
}

// Load читает конфиг из файла YAML, поверх значений по умолчанию.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- путь к конфигу задает пользователь CLI.
	if err != nil {
		return cfg, err
	}
	if len(data) == 0 {
		return cfg, errors.New("config file is empty")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := structValidator.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadContext подходит как executor.LoadFunc: ошибки получают код CONFIG_ERROR.
func LoadContext(ctx context.Context, path string) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, core.Wrap(core.CodeConfig, "Configuration load canceled", err)
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, core.Wrap(core.CodeConfig, fmt.Sprintf("Failed to load configuration %s: %v", path, err), err)
	}
	return cfg, nil
}

// Discover возвращает путь к DefaultFile в root, если файл существует.
func Discover(root string) string {
	if root == "" {
		root = "."
	}
	path := filepath.Join(root, DefaultFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Override частичные значения поверх загруженного конфига.
// nil-поля оставляют загруженное значение.
type Override struct {
	ProjectName *string
	Template    *string
	LogLevel    *string
	BatchSize   *int
	Extra       map[string]any
}

// Apply возвращает копию base с примененными переопределениями.
func (o Override) Apply(base Config) Config {
	out := base
	if o.ProjectName != nil {
		out.Project.Name = *o.ProjectName
	}
	if o.Template != nil {
		out.Project.Template = *o.Template
	}
	if o.LogLevel != nil {
		out.Log.Level = *o.LogLevel
	}
	if o.BatchSize != nil {
		out.Batch.Size = *o.BatchSize
	}
	if len(o.Extra) > 0 {
		extra := make(map[string]any, len(base.Extra)+len(o.Extra))
		for k, v := range base.Extra {
			extra[k] = v
		}
		for k, v := range o.Extra {
			extra[k] = v
		}
		out.Extra = extra
	}
	return out
}

// Empty сообщает, что переопределений нет.
func (o Override) Empty() bool {
	return o.ProjectName == nil && o.Template == nil && o.LogLevel == nil && o.BatchSize == nil && len(o.Extra) == 0
}

// TaskByName ищет задачу по имени.
func (c Config) TaskByName(name string) (Task, bool) {
	for _, t := range c.Tasks {
		if t.Name == name {
			return t, true
		}
	}
	return Task{}, false
}
