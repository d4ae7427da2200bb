package state

import (
	"context"
	"customerwizard/wizard/internal/domain"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *domain.WizardState {
	tree := domain.MustInterior(domain.Entry{
		Label: "Insurance",
		Node:  domain.NewLeaf("Liability"),
	})
	return &domain.WizardState{
		CustomerName: "Ada",
		CustomerType: "Business",
		Submitted:    true,
		Selected:     tree,
	}
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()
	key := uuid.NewString()

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Set(ctx, key, sampleState()))

	got, err = store.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.CustomerName)
	assert.True(t, sampleState().Selected.Equal(got.Selected))

	replacement := &domain.WizardState{CustomerName: "Grace"}
	require.NoError(t, store.Set(ctx, key, replacement))
	got, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.CustomerName)
	assert.Nil(t, got.Selected)

	require.NoError(t, store.Clear(ctx, key))
	require.NoError(t, store.Clear(ctx, key))

	got, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	require.NoError(t, store.Set(ctx, "k", sampleState()))

	first, err := store.Get(ctx, "k")
	require.NoError(t, err)
	first.CustomerName = "changed"

	second, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "Ada", second.CustomerName)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "a", sampleState()))
	require.NoError(t, store.Set(ctx, "b", sampleState()))

	now = now.Add(30 * time.Second)
	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.NotNil(t, got)

	now = now.Add(time.Minute)
	got, err = store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Equal(t, 1, store.Sweep())
	assert.Zero(t, store.Sweep())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := uuid.NewString()
			assert.NoError(t, store.Set(ctx, key, sampleState()))
			got, err := store.Get(ctx, key)
			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NoError(t, store.Clear(ctx, key))
		}()
	}
	wg.Wait()
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("WIZARD_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("WIZARD_TEST_REDIS_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(context.Background()).Err())

	exerciseStore(t, NewRedisStore(rdb, "wizard:test:", time.Minute))
}
