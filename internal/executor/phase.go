package executor

import (
	"context"
	"fmt"

	"clikit/internal/core"
)

// Phase именованный шаг линейной цепочки преобразований.
type Phase[T any] struct {
	Name    string
	Execute func(ctx context.Context, data T) (T, error)
}

// RunPhases выполняет фазы по порядку, передавая выход одной на вход
// следующей. Первая ошибка прерывает цепочку и возвращается как есть.
func RunPhases[T any](ctx context.Context, cc *core.CommandContext, phases []Phase[T], initial T) (T, error) {
	data := initial
	for _, phase := range phases {
		if err := canceled(ctx); err != nil {
			return data, err
		}
		cc.Logger.Step(phase.Name)
		next, err := call(core.CodePhase, "Phase failed: "+phase.Name, func() (T, error) {
			return phase.Execute(ctx, data)
		})
		if err != nil {
			cc.Logger.Error(fmt.Sprintf("%s: %s", core.MessageOf(err), phase.Name))
			var zero T
			return zero, err
		}
		data = next
	}
	return data, nil
}
