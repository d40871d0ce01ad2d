package executor

import (
	"context"

	"clikit/internal/core"
)

// Promptable реализуют опции команд с интерактивным режимом.
// Overlay возвращает prompted, поверх которого наложены все поля,
// явно заданные в исходных опциях.
type Promptable[O any] interface {
	IsInteractive() bool
	SkipsPrompts() bool
	Overlay(prompted O) O
}

// PromptFunc запрашивает недостающие опции у пользователя.
type PromptFunc[O any] func(ctx context.Context, opts O) (O, error)

// WithPrompts опрашивает пользователя, если команда интерактивна, и
// объединяет ответы с опциями; значения из командной строки главнее.
func WithPrompts[O Promptable[O], R any](ctx context.Context, cc *core.CommandContext, opts O, prompt PromptFunc[O], execute func(ctx context.Context, opts O) (R, error)) (R, error) {
	if !opts.IsInteractive() || opts.SkipsPrompts() {
		return execute(ctx, opts)
	}
	cc.Logger.Info("Running in interactive mode...")
	prompted, err := call(core.CodePrompt, "Prompt panicked", func() (O, error) {
		return prompt(ctx, opts)
	})
	if err != nil {
		var zero R
		return zero, core.Wrap(core.CodePrompt, "Interactive prompts failed", err)
	}
	return execute(ctx, opts.Overlay(prompted))
}
