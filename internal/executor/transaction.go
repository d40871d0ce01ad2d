package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"clikit/internal/core"
	"clikit/internal/storage"
)

// FileOperation именованная операция с необязательной компенсацией.
// Rollback == nil означает "компенсировать нечего".
type FileOperation[T any] struct {
	Name     string
	Execute  func(ctx context.Context) (T, error)
	Rollback func(ctx context.Context) error
}

// TxOption настраивает RunTransaction.
type TxOption func(*txConfig)

type txConfig struct {
	journal storage.Journal
	runID   string
}

// WithJournal пишет ход выполнения и отката в журнал.
func WithJournal(j storage.Journal) TxOption {
	return func(c *txConfig) { c.journal = j }
}

// WithRunID задает идентификатор запуска вместо случайного.
func WithRunID(id string) TxOption {
	return func(c *txConfig) { c.runID = id }
}

// RunTransaction выполняет операции по порядку. При первой ошибке
// выполненные операции откатываются в обратном порядке; ошибки отката
// только логируются. Возвращается исходная ошибка.
func RunTransaction[T any](ctx context.Context, cc *core.CommandContext, ops []FileOperation[T], opts ...TxOption) ([]T, error) {
	cfg := txConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.runID == "" {
		cfg.runID = uuid.NewString()
	}
	tx := &transaction[T]{cc: cc, cfg: cfg}

	results := make([]T, 0, len(ops))
	for _, op := range ops {
		if err := canceled(ctx); err != nil {
			tx.rollback(ctx)
			return nil, err
		}
		out, err := call(core.CodeOperation, "Operation failed: "+op.Name, func() (T, error) {
			return op.Execute(ctx)
		})
		if err != nil {
			tx.journal(ctx, op.Name, storage.StatusFailed, err)
			tx.rollback(ctx)
			return nil, err
		}
		tx.completed = append(tx.completed, op)
		tx.journal(ctx, op.Name, storage.StatusCompleted, nil)
		results = append(results, out)
	}
	return results, nil
}

type transaction[T any] struct {
	cc        *core.CommandContext
	cfg       txConfig
	completed []FileOperation[T]
}

func (tx *transaction[T]) rollback(ctx context.Context) {
	tx.cc.Logger.Warning("Rolling back changes...")
	// Откат не должен зависеть от отмены исходного контекста.
	rbCtx := context.WithoutCancel(ctx)
	for i := len(tx.completed) - 1; i >= 0; i-- {
		op := tx.completed[i]
		if op.Rollback == nil {
			continue
		}
		if err := tx.undo(rbCtx, op); err != nil {
			tx.cc.Logger.Error("Failed to rollback: "+op.Name, "err", err)
			tx.journal(rbCtx, op.Name, storage.StatusRollbackFailed, err)
			continue
		}
		tx.cc.Logger.Info("Rolled back: " + op.Name)
		tx.journal(rbCtx, op.Name, storage.StatusRolledBack, nil)
	}
}

func (tx *transaction[T]) undo(ctx context.Context, op FileOperation[T]) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("rollback panicked: %v", rec)
		}
	}()
	return op.Rollback(ctx)
}

func (tx *transaction[T]) journal(ctx context.Context, name, status string, opErr error) {
	if tx.cfg.journal == nil {
		return
	}
	entry := storage.JournalEntry{RunID: tx.cfg.runID, Operation: name, Status: status}
	if opErr != nil {
		entry.Error = opErr.Error()
	}
	if err := tx.cfg.journal.Record(ctx, entry); err != nil && !errors.Is(err, context.Canceled) {
		tx.cc.Logger.Warning("Failed to journal: "+name, "err", err)
	}
}
