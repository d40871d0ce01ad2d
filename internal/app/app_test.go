package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"clikit/internal/config"
	"clikit/internal/storage"
	"clikit/pkg/logger"
)

func TestNewAppDiscoversConfig(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, config.DefaultFile)
	if err := os.WriteFile(cfgPath, []byte("log:\n  format: json\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var buf bytes.Buffer
	a, err := NewApp(context.Background(), Options{ProjectRoot: root}, &buf)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if a.Config != cfgPath {
		t.Fatalf("expected discovered config %s, got %s", cfgPath, a.Config)
	}
	if _, ok := a.Logger.(*logger.Structured); !ok {
		t.Fatalf("expected structured logger for json format, got %T", a.Logger)
	}
	if got := a.Templates.Names(); len(got) != 2 {
		t.Fatalf("unexpected templates: %v", got)
	}
}

func TestNewAppDefaultsToConsole(t *testing.T) {
	a, err := NewApp(context.Background(), Options{ProjectRoot: t.TempDir()}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if a.Config != "" {
		t.Fatalf("expected no config, got %s", a.Config)
	}
	if _, ok := a.Logger.(*logger.Console); !ok {
		t.Fatalf("expected console logger, got %T", a.Logger)
	}
	cc := a.CommandContext([]string{"x"})
	if cc.ProjectRoot != a.Root || cc.FS == nil || len(cc.Args) != 1 {
		t.Fatalf("unexpected context: %#v", cc)
	}
}

func TestOpenJournalRelativeToRoot(t *testing.T) {
	root := t.TempDir()
	a, err := NewApp(context.Background(), Options{ProjectRoot: root}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	cfg := config.Default()
	st, err := a.OpenJournal(cfg)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer st.Close()
	if err := st.Record(context.Background(), storage.JournalEntry{RunID: "r", Operation: "op", Status: storage.StatusCompleted}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".clikit", "journal.db")); err != nil {
		t.Fatalf("journal file missing: %v", err)
	}
}
