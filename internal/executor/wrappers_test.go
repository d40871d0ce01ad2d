package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clikit/internal/core"
)

type dryOpts struct {
	DryRun bool
	Name   string
}

func (o dryOpts) IsDryRun() bool { return o.DryRun }

func TestWithDryRunOnlyAnnounces(t *testing.T) {
	for _, dry := range []bool{true, false} {
		cc, rec := newTestContext()
		var seen dryOpts
		got, err := WithDryRun(context.Background(), cc, dryOpts{DryRun: dry, Name: "x"}, func(ctx context.Context, o dryOpts) (string, error) {
			seen = o
			return "ran", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ran", got)
		assert.Equal(t, dryOpts{DryRun: dry, Name: "x"}, seen)
		if dry {
			assert.Equal(t, []string{"🔍 DRY RUN MODE - No changes will be made"}, rec.Messages("info"))
		} else {
			assert.Empty(t, rec.Entries())
		}
	}
}

type promptOpts struct {
	Interactive bool
	Skip        bool
	Name        string
	Template    string
}

func (o promptOpts) IsInteractive() bool { return o.Interactive }
func (o promptOpts) SkipsPrompts() bool  { return o.Skip }

func (o promptOpts) Overlay(prompted promptOpts) promptOpts {
	out := prompted
	out.Interactive = o.Interactive
	out.Skip = o.Skip
	if o.Name != "" {
		out.Name = o.Name
	}
	if o.Template != "" {
		out.Template = o.Template
	}
	return out
}

func TestWithPromptsMergesCallerWins(t *testing.T) {
	cc, rec := newTestContext()
	opts := promptOpts{Interactive: true, Name: "from-cli"}
	var got promptOpts
	_, err := WithPrompts(context.Background(), cc, opts,
		func(ctx context.Context, o promptOpts) (promptOpts, error) {
			return promptOpts{Name: "from-prompt", Template: "cli"}, nil
		},
		func(ctx context.Context, o promptOpts) (struct{}, error) {
			got = o
			return struct{}{}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "from-cli", got.Name)
	assert.Equal(t, "cli", got.Template)
	assert.Equal(t, []string{"Running in interactive mode..."}, messages(rec))
}

func TestWithPromptsSkipped(t *testing.T) {
	for _, opts := range []promptOpts{{Interactive: false}, {Interactive: true, Skip: true}} {
		cc, rec := newTestContext()
		prompted := false
		_, err := WithPrompts(context.Background(), cc, opts,
			func(ctx context.Context, o promptOpts) (promptOpts, error) {
				prompted = true
				return o, nil
			},
			func(ctx context.Context, o promptOpts) (promptOpts, error) { return o, nil })
		require.NoError(t, err)
		assert.False(t, prompted)
		assert.Empty(t, rec.Entries())
	}
}

func TestWithPromptsFailure(t *testing.T) {
	cc, _ := newTestContext()
	executed := false
	_, err := WithPrompts(context.Background(), cc, promptOpts{Interactive: true},
		func(ctx context.Context, o promptOpts) (promptOpts, error) {
			return o, errors.New("user aborted")
		},
		func(ctx context.Context, o promptOpts) (int, error) {
			executed = true
			return 0, nil
		})
	require.Error(t, err)
	assert.Equal(t, core.CodePrompt, core.CodeOf(err))
	assert.Equal(t, "Interactive prompts failed", err.Error())
	assert.False(t, executed)
}

func TestWithConfigMergesOverride(t *testing.T) {
	cc, rec := newTestContext()
	load := func(ctx context.Context, path string) (map[string]any, error) {
		assert.Equal(t, "clikit.yaml", path)
		return map[string]any{"name": "app", "batch": 4}, nil
	}
	var got map[string]any
	_, err := WithConfig(context.Background(), cc, ConfigOptions[map[string]any]{
		Config:   "clikit.yaml",
		Preset:   "strict",
		Override: MapOverride{"batch": 8, "extra": true},
	}, load, func(ctx context.Context, cfg map[string]any) (bool, error) {
		got = cfg
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "app", "batch": 8, "extra": true}, got)
	assert.Equal(t, []string{"Applying preset: strict"}, messages(rec))
}

func TestWithConfigLoadFailure(t *testing.T) {
	cc, _ := newTestContext()
	loadErr := core.New(core.CodeConfig, "Failed to load configuration")
	executed := false
	_, err := WithConfig(context.Background(), cc, ConfigOptions[map[string]any]{},
		func(ctx context.Context, path string) (map[string]any, error) {
			assert.Equal(t, "", path)
			return nil, loadErr
		},
		func(ctx context.Context, cfg map[string]any) (int, error) {
			executed = true
			return 0, nil
		})
	require.Same(t, loadErr, err)
	assert.False(t, executed)
}
