package executor

import (
	"context"

	"clikit/internal/core"
)

// DryRunBanner печатается перед выполнением в режиме dry-run.
const DryRunBanner = "🔍 DRY RUN MODE - No changes will be made"

// DryRunner реализуют опции с флагом dry-run.
type DryRunner interface {
	IsDryRun() bool
}

// WithDryRun только сообщает о режиме dry-run и всегда вызывает execute с
// теми же опциями. Подавлять эффекты должен сам execute.
func WithDryRun[O DryRunner, R any](ctx context.Context, cc *core.CommandContext, opts O, execute func(ctx context.Context, opts O) (R, error)) (R, error) {
	if opts.IsDryRun() {
		cc.Logger.Info(DryRunBanner)
	}
	return execute(ctx, opts)
}
