package executor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"clikit/internal/core"
	"clikit/internal/result"
)

// BatchOptions задает размер пакета и необязательный отчет о прогрессе.
type BatchOptions struct {
	BatchSize  int
	OnProgress func(processed, total int)
}

// RunBatch делит items на пакеты по BatchSize. Пакеты идут строго
// последовательно, элементы внутри пакета обрабатываются параллельно.
// После пакета с ошибкой следующие пакеты не запускаются; остальные
// элементы этого пакета уже могли быть обработаны.
func RunBatch[T, R any](ctx context.Context, items []T, process func(ctx context.Context, item T) (R, error), opts BatchOptions) ([]R, error) {
	if opts.BatchSize <= 0 {
		return nil, core.Validation("batchSize", fmt.Sprintf("batchSize must be a positive integer, got %d", opts.BatchSize))
	}
	total := len(items)
	out := make([]R, 0, total)
	for start := 0; start < total; start += opts.BatchSize {
		if err := canceled(ctx); err != nil {
			return nil, err
		}
		end := min(start+opts.BatchSize, total)
		outcomes := runGroup(ctx, items[start:end], start, process)
		for _, o := range outcomes {
			if !o.IsOk() {
				return nil, o.Error()
			}
			out = append(out, o.Value())
		}
		if opts.OnProgress != nil {
			opts.OnProgress(end, total)
		}
	}
	return out, nil
}

// runGroup запускает все элементы пакета и ждет их всех.
func runGroup[T, R any](ctx context.Context, group []T, offset int, process func(ctx context.Context, item T) (R, error)) []result.Result[R] {
	outcomes := make([]result.Result[R], len(group))
	var g errgroup.Group
	for i, item := range group {
		g.Go(func() error {
			v, err := call(core.CodeBatchItem, fmt.Sprintf("Failed to process item %d", offset+i), func() (R, error) {
				return process(ctx, item)
			})
			outcomes[i] = result.Of(v, err)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}
