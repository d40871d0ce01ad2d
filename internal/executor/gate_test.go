package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clikit/internal/core"
	"clikit/internal/validate"
)

func TestGateRunsActionWithNormalizedValue(t *testing.T) {
	cc, rec := newTestContext()
	rules := []Rule[string]{
		{Name: "trim", Validate: func(s string) (string, error) { return strings.TrimSpace(s), nil }},
		{Name: "lowercase", Validate: func(s string) (string, error) { return strings.ToLower(s), nil }},
		ValidatorRule("length", validate.StringLength(2, 10, "name")),
	}
	got, err := Gate(context.Background(), cc, "  MyApp ", rules, func(ctx context.Context, s string) (string, error) {
		return "created " + s, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "created myapp", got)
	assert.Equal(t, []string{"All validations passed"}, messages(rec))
}

func TestGateStopsAtFirstFailingRule(t *testing.T) {
	cc, rec := newTestContext()
	laterCalled, actionCalled := false, false
	rules := []Rule[string]{
		ValidatorRule("name length", validate.StringLength(3, 10, "name")),
		{Name: "later", Validate: func(s string) (string, error) {
			laterCalled = true
			return s, nil
		}},
	}
	_, err := Gate(context.Background(), cc, "ab", rules, func(ctx context.Context, s string) (int, error) {
		actionCalled = true
		return 0, nil
	})
	require.Error(t, err)
	assert.Equal(t, "name must be at least 3 characters", err.Error())
	assert.Equal(t, core.CodeValidation, core.CodeOf(err))
	assert.False(t, laterCalled)
	assert.False(t, actionCalled)
	assert.Equal(t, []string{"Validation failed: name length"}, rec.Messages("error"))
}

func TestGateActionErrorPropagates(t *testing.T) {
	cc, _ := newTestContext()
	boom := errors.New("boom")
	_, err := Gate(context.Background(), cc, 1, nil, func(ctx context.Context, n int) (int, error) {
		return 0, boom
	})
	require.ErrorIs(t, err, boom)
}
