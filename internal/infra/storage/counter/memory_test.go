package counter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func TestMemoryStore_IncrementDecrement(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	key := domain.NewSlotKey(1, monday.Add(11*time.Hour), domain.Morning)

	ok, err := store.ConditionalIncrement(ctx, key, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.ConditionalIncrement(ctx, domain.NewSlotKey(1, monday, domain.Morning), 1)
	require.NoError(t, err)
	assert.False(t, ok, "same slot after date normalization")

	require.NoError(t, store.Decrement(ctx, key))
	require.NoError(t, store.Decrement(ctx, key))

	count, err := store.GetCount(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMemoryStore_MissingKey(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	key := domain.NewSlotKey(1, monday, domain.Afternoon)

	count, err := store.GetCount(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, store.Decrement(ctx, key))

	ok, err := store.ConditionalIncrement(ctx, key, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	counters, err := store.ListRange(ctx, 1, monday, monday)
	require.NoError(t, err)
	assert.Empty(t, counters)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	keys := []domain.SlotKey{
		domain.NewSlotKey(1, monday, domain.Morning),
		domain.NewSlotKey(1, monday, domain.Afternoon),
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		reserved = map[domain.HalfDay]int{}
	)
	for i := 0; i < 100; i++ {
		key := keys[i%2]
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.ConditionalIncrement(ctx, key, 20)
			if assert.NoError(t, err) && ok {
				mu.Lock()
				reserved[key.HalfDay]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, reserved[domain.Morning])
	assert.Equal(t, 20, reserved[domain.Afternoon])
}

func TestMemoryStore_ListRange(t *testing.T) {
	store := NewMemoryStore()
	store.now = func() time.Time { return monday }
	ctx := context.Background()

	for _, k := range []domain.SlotKey{
		domain.NewSlotKey(1, monday.AddDate(0, 0, 1), domain.Morning),
		domain.NewSlotKey(1, monday, domain.Afternoon),
		domain.NewSlotKey(1, monday, domain.Morning),
		domain.NewSlotKey(1, monday.AddDate(0, 0, 5), domain.Morning),
		domain.NewSlotKey(9, monday, domain.Morning),
	} {
		_, err := store.ConditionalIncrement(ctx, k, 3)
		require.NoError(t, err)
	}

	counters, err := store.ListRange(ctx, 1, monday, monday.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, counters, 3)

	assert.Equal(t, domain.Morning, counters[0].HalfDay)
	assert.Equal(t, domain.Afternoon, counters[1].HalfDay)
	assert.Equal(t, monday.AddDate(0, 0, 1), counters[2].Date)
	assert.Equal(t, monday, counters[0].UpdatedAt)
}
