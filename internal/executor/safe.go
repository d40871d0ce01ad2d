package executor

import (
	"context"

	"clikit/internal/core"
)

// call вызывает fn, превращая панику в *core.Error с заданным кодом.
func call[T any](code, message string, fn func() (T, error)) (out T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero T
			out, err = zero, core.FromPanic(code, message, rec)
		}
	}()
	return fn()
}

func canceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return core.Wrap(core.CodeCanceled, "Execution canceled", err)
	}
	return nil
}
