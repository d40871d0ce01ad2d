package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"clikit/internal/core"
)

// SubprocessConfig описывает запускаемый процесс.
// Пустой Dir означает текущий каталог, nil Env означает окружение родителя.
// Непустой Env заменяет окружение целиком.
type SubprocessConfig struct {
	Command string
	Args    []string
	Dir     string
	Env     map[string]string
}

// RunSubprocess запускает процесс и разрешается ровно одним исходом.
// В verbose-режиме потоки наследуются и stdout не захватывается,
// иначе stdout и stderr накапливаются как текст.
func RunSubprocess(ctx context.Context, cc *core.CommandContext, cfg SubprocessConfig) (string, error) {
	cmd := exec.CommandContext(ctx, cfg.Command, cfg.Args...)
	cmd.Dir = cfg.Dir
	if cfg.Env != nil {
		cmd.Env = envList(cfg.Env)
	}

	var stdout, stderr bytes.Buffer
	if cc.Verbose {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	cc.Logger.Debug("spawn", "command", cfg.Command, "args", strings.Join(cfg.Args, " "), "dir", cfg.Dir)
	if err := cmd.Start(); err != nil {
		return "", core.Wrap(core.CodeSubprocess, "Failed to spawn "+cfg.Command, err)
	}

	err := cmd.Wait()
	if err == nil {
		return stdout.String(), nil
	}
	if ctxErr := canceled(ctx); ctxErr != nil {
		return "", ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "", &core.Error{
			Code:    core.CodeSubprocessEx,
			Message: fmt.Sprintf("%s exited with code %d", cfg.Command, exitErr.ExitCode()),
			Details: stderr.String(),
			Cause:   err,
		}
	}
	return "", core.Wrap(core.CodeSubprocess, "Failed to spawn "+cfg.Command, err)
}

func envList(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
