package storage

import (
	"context"
	"time"
)

// Статусы записей журнала транзакций.
const (
	StatusCompleted      = "completed"
	StatusFailed         = "failed"
	StatusRolledBack     = "rolled_back"
	StatusRollbackFailed = "rollback_failed"
)

// JournalEntry фиксирует шаг транзакционного исполнителя.
type JournalEntry struct {
	RunID     string    `json:"run_id"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	TS        time.Time `json:"ts"`
}

// JournalQuery задает фильтры выборки журнала.
type JournalQuery struct {
	RunID string
	From  time.Time
	To    time.Time
	Limit int
}

// RunSummary агрегирует записи одного запуска.
type RunSummary struct {
	RunID     string    `json:"run_id"`
	Entries   int       `json:"entries"`
	Failed    bool      `json:"failed"`
	StartedAt time.Time `json:"started_at"`
}

// Journal принимает записи журнала.
type Journal interface {
	Record(ctx context.Context, entry JournalEntry) error
}

// Store описывает операции хранилища.
type Store interface {
	Journal
	Entries(ctx context.Context, q JournalQuery) ([]JournalEntry, error)
	Runs(ctx context.Context, limit int) ([]RunSummary, error)
	Close() error
}
