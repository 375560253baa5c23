package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services/logger"
	"hotelbook/store"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueue() *SyncQueue {
	log := logger.NewDefaultLogger(logger.SilentLevel)
	return NewSyncQueue(store.New(store.Options{Logger: log}), log)
}

func TestDrainReplaysInOrder(t *testing.T) {
	q := newQueue()
	ctx := context.Background()
	var seen []int
	q.Register("note", func(ctx context.Context, action models.SyncAction) error {
		var n int
		if err := json.Unmarshal(action.Payload, &n); err != nil {
			return err
		}
		seen = append(seen, n)
		return nil
	})
	for i := 1; i <= 3; i++ {
		_, err := q.Enqueue(ctx, nil, "note", i)
		require.NoError(t, err)
	}

	report, err := q.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 0, report.Remaining)

	pending, err := q.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDrainKeepsFailedActions(t *testing.T) {
	q := newQueue()
	ctx := context.Background()
	var seen []string
	q.Register("step", func(ctx context.Context, action models.SyncAction) error {
		var name string
		if err := json.Unmarshal(action.Payload, &name); err != nil {
			return err
		}
		seen = append(seen, name)
		if name == "bad" {
			return fmt.Errorf("boom")
		}
		return nil
	})
	for _, name := range []string{"first", "bad", "last"} {
		_, err := q.Enqueue(ctx, nil, "step", name)
		require.NoError(t, err)
	}
	_, err := q.Enqueue(ctx, nil, "mystery", nil)
	require.NoError(t, err)

	report, err := q.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "bad", "last"}, seen)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 2, report.Remaining)

	pending, err := q.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "step", pending[0].Type)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Equal(t, "boom", pending[0].LastError)
	assert.Equal(t, "mystery", pending[1].Type)
	assert.Contains(t, pending[1].LastError, "no replay handler")

	_, err = q.Drain(ctx)
	require.NoError(t, err)
	pending, err = q.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pending[0].Attempts)
}

func TestDrainRecoversPanics(t *testing.T) {
	q := newQueue()
	ctx := context.Background()
	q.Register("explode", func(ctx context.Context, action models.SyncAction) error {
		panic("kaboom")
	})
	_, err := q.Enqueue(ctx, nil, "explode", map[string]int{"n": 1})
	require.NoError(t, err)

	report, err := q.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
}

func TestDrainSkipsWhenBusy(t *testing.T) {
	q := newQueue()
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})
	q.Register("slow", func(ctx context.Context, action models.SyncAction) error {
		close(started)
		<-release
		return nil
	})
	_, err := q.Enqueue(ctx, nil, "slow", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	var first *DrainReport
	go func() {
		defer wg.Done()
		first, _ = q.Drain(ctx)
	}()
	<-started

	second, err := q.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, second.Skipped)

	close(release)
	wg.Wait()
	require.NotNil(t, first)
	assert.Equal(t, 1, first.Processed)
}

func TestEnqueueRecordsActor(t *testing.T) {
	q := newQueue()
	action, err := q.Enqueue(context.Background(), &models.User{ID: 7, Role: "manager"}, "note", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), action.ActorID)
	assert.Equal(t, "manager", action.ActorRole)

	pending, err := q.Pending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(7), pending[0].ActorID)
}

func TestEnqueueRequiresType(t *testing.T) {
	q := newQueue()
	_, err := q.Enqueue(context.Background(), nil, "", nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRequiredField))
}

func TestMonitorRestoreCallbacks(t *testing.T) {
	log := logger.NewDefaultLogger(logger.SilentLevel)
	m := NewConnectivityMonitor(nil, log)
	calls := 0
	m.OnRestore(func(ctx context.Context) { calls++ })
	ctx := context.Background()

	assert.False(t, m.SetOnline(ctx, true))
	assert.False(t, m.SetOnline(ctx, false))
	assert.False(t, m.SetOnline(ctx, false))
	assert.True(t, m.SetOnline(ctx, true))
	assert.Equal(t, 1, calls)
	assert.NoError(t, m.Probe(ctx))
}
