package executor

import (
	"testing"

	"go.uber.org/goleak"

	"clikit/internal/core"
	"clikit/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestContext() (*core.CommandContext, *logger.Recorder) {
	rec := logger.NewRecorder()
	return &core.CommandContext{ProjectRoot: ".", Logger: rec}, rec
}

func messages(rec *logger.Recorder) []string {
	entries := rec.Entries()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}
