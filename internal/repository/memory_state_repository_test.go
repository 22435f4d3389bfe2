package repository

import (
	"context"
	"skillpath_backend/internal/util"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ StateStore = (*MemoryStateRepository)(nil)
var _ StateStore = (*RedisStateRepository)(nil)
var _ StateStore = (*StateRepository)(nil)
var _ Purger = (*MemoryStateRepository)(nil)
var _ Purger = (*StateRepository)(nil)

func TestMemoryStateRepository_SetGetOverwrite(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStateRepository()

	_, err := repo.Get(ctx, "u1", util.KeyLearningGoals)
	assert.ErrorIs(t, err, util.ErrStateNotFound)

	require.NoError(t, repo.Set(ctx, "u1", util.KeyLearningGoals, []byte(`{"a":1}`), 0))
	require.NoError(t, repo.Set(ctx, "u1", util.KeyLearningGoals, []byte(`{"a":2}`), 0))

	val, err := repo.Get(ctx, "u1", util.KeyLearningGoals)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(val))

	// 不同用户互不可见
	_, err = repo.Get(ctx, "u2", util.KeyLearningGoals)
	assert.ErrorIs(t, err, util.ErrStateNotFound)
}

func TestMemoryStateRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStateRepository()

	value := []byte("plan")
	require.NoError(t, repo.Set(ctx, "u1", util.KeyLearningPlan, value, 0))
	value[0] = 'X'

	got, err := repo.Get(ctx, "u1", util.KeyLearningPlan)
	require.NoError(t, err)
	got[1] = 'Y'

	again, err := repo.Get(ctx, "u1", util.KeyLearningPlan)
	require.NoError(t, err)
	assert.Equal(t, "plan", string(again))
}

func TestMemoryStateRepository_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStateRepository()

	require.NoError(t, repo.Set(ctx, "u1", util.KeyLearningGoals, []byte("g"), 0))
	require.NoError(t, repo.Set(ctx, "u1", util.KeyLearningPlan, []byte("p"), 0))
	require.NoError(t, repo.Set(ctx, "u1", util.KeyUserSession, []byte("s"), 0))

	require.NoError(t, repo.Delete(ctx, "u1", util.KeyUserSession))
	_, err := repo.Get(ctx, "u1", util.KeyUserSession)
	assert.ErrorIs(t, err, util.ErrStateNotFound)

	_, err = repo.Get(ctx, "u1", util.KeyLearningPlan)
	assert.NoError(t, err)

	require.NoError(t, repo.Clear(ctx, "u1"))
	_, err = repo.Get(ctx, "u1", util.KeyLearningGoals)
	assert.ErrorIs(t, err, util.ErrStateNotFound)

	assert.NoError(t, repo.Delete(ctx, "missing", "missing"))
}

func TestMemoryStateRepository_ExpiryAndPurge(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStateRepository()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Set(ctx, "u1", util.KeyUserSession, []byte("s"), time.Minute))
	require.NoError(t, repo.Set(ctx, "u1", util.KeyLearningGoals, []byte("g"), 0))

	_, err := repo.Get(ctx, "u1", util.KeyUserSession)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = repo.Get(ctx, "u1", util.KeyUserSession)
	assert.ErrorIs(t, err, util.ErrStateNotFound)

	purged, err := repo.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = repo.Get(ctx, "u1", util.KeyLearningGoals)
	assert.NoError(t, err)
}

func TestMemoryStateRepository_SetNX(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStateRepository()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	created, err := repo.SetNX(ctx, "u1", util.KeyAccount, []byte("first"), 0)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.SetNX(ctx, "u1", util.KeyAccount, []byte("second"), 0)
	require.NoError(t, err)
	assert.False(t, created)

	val, err := repo.Get(ctx, "u1", util.KeyAccount)
	require.NoError(t, err)
	assert.Equal(t, "first", string(val))

	// 过期的记录可以被重新占用
	require.NoError(t, repo.Set(ctx, "u1", util.KeyUserSession, []byte("old"), time.Minute))
	now = now.Add(2 * time.Minute)
	created, err = repo.SetNX(ctx, "u1", util.KeyUserSession, []byte("new"), 0)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestMemoryStateRepository_SetNXSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStateRepository()

	const workers = 16
	results := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := repo.SetNX(ctx, "u1", util.KeyAccount, []byte("x"), 0)
			assert.NoError(t, err)
			results <- created
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for created := range results {
		if created {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}
