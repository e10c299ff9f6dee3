package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"shopbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetPutClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	sess, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, sess, "absent session means idle")

	put := domain.NewSession(42, domain.StepName)
	require.NoError(t, store.Put(ctx, put))

	sess, err = store.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, domain.StepName, sess.Step)

	require.NoError(t, store.Clear(ctx, 42))
	sess, err = store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	old := domain.NewSession(42, domain.StepPhone)
	old.CreatedAt = time.Now().Add(-2 * time.Minute)
	require.NoError(t, store.Put(ctx, old))

	sess, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, sess, "expired session reads as absent")
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	old := domain.NewSession(42, domain.StepPhone)
	old.CreatedAt = time.Now().Add(-24 * time.Hour)
	require.NoError(t, store.Put(ctx, old))

	sess, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, sess)
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	fresh := domain.NewSession(1, domain.StepName)
	stale := domain.NewSession(2, domain.StepCity)
	stale.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.Put(ctx, fresh))
	require.NoError(t, store.Put(ctx, stale))

	assert.Equal(t, 1, store.Sweep())

	sess, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, sess)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_ = store.Put(ctx, domain.NewSession(userID, domain.StepName))
			_, _ = store.Get(ctx, userID)
			_ = store.Clear(ctx, userID)
		}(int64(i % 5))
	}
	wg.Wait()
}

func TestMemoryStore_GetReturnsIndependentCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	put := domain.NewSession(42, domain.StepName)
	put.Set(domain.FieldName, "Alice")
	require.NoError(t, store.Put(ctx, put))

	// mutating what Put received must not reach the store
	put.Set(domain.FieldName, "Mallory")
	put.Step = domain.StepConfirm

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StepName, got.Step)
	assert.Equal(t, "Alice", got.Get(domain.FieldName))

	// mutating what Get returned must not reach the store either
	got.Set(domain.FieldName, "Eve")

	again, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, "Alice", again.Get(domain.FieldName))
}

func TestLocks_SerializePerUser(t *testing.T) {
	locks := NewLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(42)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}
