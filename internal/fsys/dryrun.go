package fsys

import (
	"fmt"

	"clikit/internal/core"
)

// DryRun читает через base, а записи только логирует.
type DryRun struct {
	base core.FileSystem
	log  core.Logger
}

// NewDryRun оборачивает base.
func NewDryRun(base core.FileSystem, log core.Logger) *DryRun {
	return &DryRun{base: base, log: log}
}

func (d *DryRun) ReadFile(path string) ([]byte, error) { return d.base.ReadFile(path) }

func (d *DryRun) Exists(path string) (bool, error) { return d.base.Exists(path) }

func (d *DryRun) WriteFile(path string, data []byte) error {
	d.log.Info(fmt.Sprintf("Would write %s (%d bytes)", path, len(data)))
	return nil
}

func (d *DryRun) MkdirAll(path string) error {
	d.log.Info("Would create directory " + path)
	return nil
}

func (d *DryRun) Remove(path string) error {
	d.log.Info("Would remove " + path)
	return nil
}
