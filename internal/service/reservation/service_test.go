package reservation

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	"github.com/m04kA/SMC-DeliverySlots/internal/infra/storage/counter"
	"github.com/m04kA/SMC-DeliverySlots/pkg/logger"
	"github.com/m04kA/SMC-DeliverySlots/pkg/metrics"
	"github.com/m04kA/SMC-DeliverySlots/pkg/types"
)

const companyID int64 = 3

// 2025-10-13 - понедельник
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type stubResolver struct {
	schedule domain.EffectiveDaySchedule
	err      error
}

func (r *stubResolver) Resolve(_ context.Context, _ int64, _ time.Time) (domain.EffectiveDaySchedule, error) {
	return r.schedule, r.err
}

type recordingMetrics struct {
	mu       sync.Mutex
	results  map[string]int
	releases int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{results: make(map[string]int)}
}

func (m *recordingMetrics) IncReservation(_ string, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result]++
}

func (m *recordingMetrics) IncRelease(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releases++
}

type failingCounters struct {
	*counter.MemoryStore
}

func (f *failingCounters) ConditionalIncrement(context.Context, domain.SlotKey, int) (bool, error) {
	return false, errors.New("connection reset")
}

func openMonday(morningCap int) domain.EffectiveDaySchedule {
	return domain.EffectiveDaySchedule{
		CompanyID: companyID,
		Date:      monday,
		Morning: domain.HalfDaySchedule{
			HalfDay:     domain.Morning,
			Enabled:     true,
			Window:      &domain.TimeWindow{Start: types.MustTimeString("09:00"), End: types.MustTimeString("13:00")},
			MaxCapacity: morningCap,
		},
		Afternoon: domain.HalfDaySchedule{HalfDay: domain.Afternoon},
	}
}

func newTestService(schedule domain.EffectiveDaySchedule) (*Service, *counter.MemoryStore, *recordingMetrics) {
	store := counter.NewMemoryStore()
	m := newRecordingMetrics()
	svc := NewService(&stubResolver{schedule: schedule}, store, m, logger.NewWithWriter(io.Discard, "error"))
	return svc, store, m
}

func TestService_Reserve_ConcurrentNeverExceedsCapacity(t *testing.T) {
	const (
		capacity = 7
		callers  = 50
	)
	svc, _, m := newTestService(openMonday(capacity))
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		reserved atomic.Int32
		rejected atomic.Int32
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := svc.Reserve(ctx, companyID, monday, domain.Morning)
			if !assert.NoError(t, err) {
				return
			}
			if ok {
				reserved.Add(1)
			} else {
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, capacity, reserved.Load())
	assert.EqualValues(t, callers-capacity, rejected.Load())

	count, err := svc.Count(ctx, companyID, monday, domain.Morning)
	require.NoError(t, err)
	assert.Equal(t, capacity, count)

	assert.Equal(t, capacity, m.results[metrics.ReservationReserved])
	assert.Equal(t, callers-capacity, m.results[metrics.ReservationRejected])
}

func TestService_ReserveReleaseRoundTrip(t *testing.T) {
	svc, _, m := newTestService(openMonday(5))
	ctx := context.Background()

	before, err := svc.Count(ctx, companyID, monday, domain.Morning)
	require.NoError(t, err)

	ok, err := svc.Reserve(ctx, companyID, monday.Add(10*time.Hour), domain.Morning)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.Release(ctx, companyID, monday, domain.Morning))

	after, err := svc.Count(ctx, companyID, monday, domain.Morning)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, m.releases)
}

func TestService_ReleaseAtZeroStaysZero(t *testing.T) {
	svc, _, _ := newTestService(openMonday(5))
	ctx := context.Background()

	require.NoError(t, svc.Release(ctx, companyID, monday, domain.Morning))
	require.NoError(t, svc.Release(ctx, companyID, monday, domain.Morning))

	count, err := svc.Count(ctx, companyID, monday, domain.Morning)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestService_ReleaseIgnoresSchedule(t *testing.T) {
	store := counter.NewMemoryStore()
	ctx := context.Background()
	key := domain.NewSlotKey(companyID, monday, domain.Afternoon)

	_, err := store.ConditionalIncrement(ctx, key, 1)
	require.NoError(t, err)

	svc := NewService(&stubResolver{schedule: domain.ClosedDay(companyID, monday)}, store, nil, logger.NewWithWriter(io.Discard, "error"))
	require.NoError(t, svc.Release(ctx, companyID, monday, domain.Afternoon))

	count, err := store.GetCount(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestService_Reserve_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled half-day", func(t *testing.T) {
		svc, _, m := newTestService(openMonday(5))

		ok, err := svc.Reserve(ctx, companyID, monday, domain.Afternoon)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 1, m.results[metrics.ReservationRejected])
	})

	t.Run("zero capacity", func(t *testing.T) {
		svc, store, _ := newTestService(openMonday(0))

		ok, err := svc.Reserve(ctx, companyID, monday, domain.Morning)
		require.NoError(t, err)
		assert.False(t, ok)

		counters, err := store.ListRange(ctx, companyID, monday, monday)
		require.NoError(t, err)
		assert.Empty(t, counters)
	})

	t.Run("full", func(t *testing.T) {
		svc, _, _ := newTestService(openMonday(1))

		ok, err := svc.Reserve(ctx, companyID, monday, domain.Morning)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = svc.Reserve(ctx, companyID, monday, domain.Morning)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalid half-day", func(t *testing.T) {
		svc, _, _ := newTestService(openMonday(1))

		_, err := svc.Reserve(ctx, companyID, monday, domain.HalfDay("evening"))
		assert.ErrorIs(t, err, ErrInvalidHalfDay)
		assert.ErrorIs(t, svc.Release(ctx, companyID, monday, domain.HalfDay("")), ErrInvalidHalfDay)
	})
}

func TestService_Reserve_Errors(t *testing.T) {
	ctx := context.Background()
	log := logger.NewWithWriter(io.Discard, "error")

	t.Run("resolver error", func(t *testing.T) {
		m := newRecordingMetrics()
		svc := NewService(&stubResolver{err: errors.New("timeout")}, counter.NewMemoryStore(), m, log)

		_, err := svc.Reserve(ctx, companyID, monday, domain.Morning)
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, 1, m.results[metrics.ReservationFailed])
	})

	t.Run("counter error", func(t *testing.T) {
		svc := NewService(&stubResolver{schedule: openMonday(3)}, &failingCounters{MemoryStore: counter.NewMemoryStore()}, nil, log)

		ok, err := svc.Reserve(ctx, companyID, monday, domain.Morning)
		assert.ErrorIs(t, err, ErrInternal)
		assert.False(t, ok)
	})
}

func TestService_CapacityChangeAppliesImmediately(t *testing.T) {
	resolver := &stubResolver{schedule: openMonday(3)}
	store := counter.NewMemoryStore()
	svc := NewService(resolver, store, nil, logger.NewWithWriter(io.Discard, "error"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := svc.Reserve(ctx, companyID, monday, domain.Morning)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// Вместимость уменьшили после резервирований
	resolver.schedule = openMonday(2)
	ok, err := svc.Reserve(ctx, companyID, monday, domain.Morning)
	require.NoError(t, err)
	assert.False(t, ok)

	count, err := svc.Count(ctx, companyID, monday, domain.Morning)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
