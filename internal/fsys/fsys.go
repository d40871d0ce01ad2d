// Package fsys предоставляет реализации core.FileSystem.
package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var errOutsideRoot = errors.New("path escapes project root")

// OS работает с диском относительно корня проекта.
type OS struct {
	root string
}

// NewOS создает файловую систему с корнем root.
func NewOS(root string) *OS {
	if root == "" {
		root = "."
	}
	return &OS{root: filepath.Clean(root)}
}

// Root возвращает корень.
func (o *OS) Root() string { return o.root }

func (o *OS) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(o.root, path)
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, errOutsideRoot)
		}
		path = rel
	}
	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", path, errOutsideRoot)
	}
	return filepath.Join(o.root, clean), nil
}

func (o *OS) ReadFile(path string) ([]byte, error) {
	full, err := o.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full) // #nosec G304 -- путь ограничен корнем проекта.
}

func (o *OS) WriteFile(path string, data []byte) error {
	full, err := o.resolve(path)
	if err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644) // #nosec G306 -- файлы проекта должны быть читаемы.
}

func (o *OS) MkdirAll(path string) error {
	full, err := o.resolve(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(full, 0o755)
}

func (o *OS) Exists(path string) (bool, error) {
	full, err := o.resolve(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Remove удаляет файл или пустой каталог.
func (o *OS) Remove(path string) error {
	full, err := o.resolve(path)
	if err != nil {
		return err
	}
	return os.Remove(full)
}
