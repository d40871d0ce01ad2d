package executor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clikit/internal/core"
)

type progressCall struct {
	Processed, Total int
}

func TestRunBatchOrderAndProgress(t *testing.T) {
	var progress []progressCall
	got, err := RunBatch(context.Background(), []int{1, 2, 3, 4, 5},
		func(ctx context.Context, n int) (int, error) { return n * 2, nil },
		BatchOptions{BatchSize: 2, OnProgress: func(p, total int) {
			progress = append(progress, progressCall{p, total})
		}})
	require.NoError(t, err)
	if diff := cmp.Diff([]int{2, 4, 6, 8, 10}, got); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]progressCall{{2, 5}, {4, 5}, {5, 5}}, progress); diff != "" {
		t.Fatalf("unexpected progress (-want +got):\n%s", diff)
	}
}

func TestRunBatchStopsAfterFailingGroup(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	progressCalls := 0
	_, err := RunBatch(context.Background(), []int{1, 2, 3, 4, 5},
		func(ctx context.Context, n int) (int, error) {
			mu.Lock()
			seen = append(seen, n)
			mu.Unlock()
			if n == 3 {
				return 0, fmt.Errorf("Failed on item %d", n)
			}
			return n, nil
		},
		BatchOptions{BatchSize: 2, OnProgress: func(int, int) { progressCalls++ }})
	require.Error(t, err)
	assert.Equal(t, "Failed on item 3", err.Error())
	sort.Ints(seen)
	assert.Equal(t, []int{1, 2, 3, 4}, seen)
	assert.Equal(t, 1, progressCalls)
}

func TestRunBatchGroupRunsConcurrently(t *testing.T) {
	// Оба элемента пакета должны стартовать до того, как любой завершится.
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := RunBatch(context.Background(), []int{1, 2},
			func(ctx context.Context, n int) (int, error) {
				started <- struct{}{}
				<-release
				return n, nil
			}, BatchOptions{BatchSize: 2})
		done <- err
	}()
	<-started
	<-started
	close(release)
	require.NoError(t, <-done)
}

func TestRunBatchPanicsBecomeErrors(t *testing.T) {
	_, err := RunBatch(context.Background(), []string{"a", "b", "c"},
		func(ctx context.Context, s string) (string, error) {
			if s == "c" {
				panic(errors.New("bad item"))
			}
			return s, nil
		}, BatchOptions{BatchSize: 2})
	require.Error(t, err)
	assert.Equal(t, core.CodeBatchItem, core.CodeOf(err))
	assert.Equal(t, "Failed to process item 2", err.Error())
}

func TestRunBatchEdgeCases(t *testing.T) {
	got, err := RunBatch(context.Background(), nil,
		func(ctx context.Context, n int) (int, error) { return n, nil },
		BatchOptions{BatchSize: 3, OnProgress: func(int, int) { t.Fatalf("no progress expected") }})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = RunBatch(context.Background(), []int{1},
		func(ctx context.Context, n int) (int, error) { return n, nil },
		BatchOptions{BatchSize: 0})
	require.Error(t, err)
	assert.Equal(t, core.CodeValidation, core.CodeOf(err))
}
