package executor

import (
	"context"
	"maps"

	"clikit/internal/core"
)

// Overrider накладывает частичные значения на загруженную конфигурацию.
type Overrider[C any] interface {
	Apply(base C) C
}

// MapOverride ключевое слияние для конфигураций-документов.
type MapOverride map[string]any

// Apply возвращает копию base, где ключи из m заменены или добавлены.
func (m MapOverride) Apply(base map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(m))
	maps.Copy(out, base)
	maps.Copy(out, m)
	return out
}

// ConfigOptions путь к конфигу, имя пресета и переопределения.
type ConfigOptions[C any] struct {
	Config   string
	Preset   string
	Override Overrider[C]
}

// LoadFunc загружает конфигурацию; пустой путь означает значение по умолчанию.
type LoadFunc[C any] func(ctx context.Context, path string) (C, error)

// WithConfig загружает конфигурацию, применяет переопределения и вызывает
// execute. Ошибка загрузки возвращается без изменений.
func WithConfig[C, R any](ctx context.Context, cc *core.CommandContext, opts ConfigOptions[C], load LoadFunc[C], execute func(ctx context.Context, cfg C) (R, error)) (R, error) {
	var zero R
	cfg, err := load(ctx, opts.Config)
	if err != nil {
		return zero, err
	}
	if opts.Preset != "" {
		// Пресет только объявляется; структура конфигурации не меняется.
		cc.Logger.Info("Applying preset: " + opts.Preset)
	}
	if opts.Override != nil {
		cfg = opts.Override.Apply(cfg)
	}
	return execute(ctx, cfg)
}
