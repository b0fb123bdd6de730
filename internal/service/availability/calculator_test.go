package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	"github.com/m04kA/SMC-DeliverySlots/pkg/types"
)

const companyID int64 = 7

// 2025-10-13 - понедельник
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ResolveRange(ctx context.Context, id int64, start, end time.Time) ([]domain.EffectiveDaySchedule, error) {
	args := m.Called(ctx, id, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EffectiveDaySchedule), args.Error(1)
}

type mockCounters struct {
	mock.Mock
}

func (m *mockCounters) ListRange(ctx context.Context, id int64, start, end time.Time) ([]domain.SlotCounter, error) {
	args := m.Called(ctx, id, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SlotCounter), args.Error(1)
}

func window(start, end string) *domain.TimeWindow {
	return &domain.TimeWindow{Start: types.MustTimeString(start), End: types.MustTimeString(end)}
}

func openDay(date time.Time, morningCap, afternoonCap int) domain.EffectiveDaySchedule {
	return domain.EffectiveDaySchedule{
		CompanyID: companyID,
		Date:      date,
		Morning:   domain.HalfDaySchedule{HalfDay: domain.Morning, Enabled: true, Window: window("09:00", "13:00"), MaxCapacity: morningCap},
		Afternoon: domain.HalfDaySchedule{HalfDay: domain.Afternoon, Enabled: true, Window: window("14:00", "18:00"), MaxCapacity: afternoonCap},
	}
}

func counter(date time.Time, h domain.HalfDay, n int) domain.SlotCounter {
	return domain.SlotCounter{SlotKey: domain.NewSlotKey(companyID, date, h), CurrentCount: n}
}

func TestCalculate_RemainingAndAvailability(t *testing.T) {
	schedules := []domain.EffectiveDaySchedule{openDay(monday, 10, 3)}
	counters := []domain.SlotCounter{
		counter(monday, domain.Morning, 4),
		counter(monday, domain.Afternoon, 3),
	}

	got := Calculate(schedules, counters, false)

	require.Len(t, got, 1)
	require.Len(t, got[0].Slots, 2)

	morning := got[0].Slots[0]
	assert.Equal(t, domain.Morning, morning.HalfDay)
	assert.Equal(t, 10, morning.MaxCapacity)
	assert.Equal(t, 4, morning.CurrentCount)
	assert.Equal(t, 6, morning.Remaining)
	assert.True(t, morning.IsAvailable)
	assert.Equal(t, *window("09:00", "13:00"), morning.Window)

	afternoon := got[0].Slots[1]
	assert.Equal(t, 0, afternoon.Remaining)
	assert.False(t, afternoon.IsAvailable)
}

func TestCalculate_OnlyAvailableDropsFullSlots(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	schedules := []domain.EffectiveDaySchedule{openDay(monday, 2, 2), openDay(tuesday, 2, 2)}
	counters := []domain.SlotCounter{
		counter(monday, domain.Morning, 2),
		counter(monday, domain.Afternoon, 2),
		counter(tuesday, domain.Morning, 2),
	}

	got := Calculate(schedules, counters, true)

	require.Len(t, got, 1)
	assert.Equal(t, tuesday, got[0].Date)
	require.Len(t, got[0].Slots, 1)
	assert.Equal(t, domain.Afternoon, got[0].Slots[0].HalfDay)
}

func TestCalculate_DisabledDayOmitted(t *testing.T) {
	schedules := []domain.EffectiveDaySchedule{
		domain.ClosedDay(companyID, monday),
		openDay(monday.AddDate(0, 0, 1), 5, 5),
	}

	got := Calculate(schedules, nil, false)

	require.Len(t, got, 1)
	assert.Equal(t, monday.AddDate(0, 0, 1), got[0].Date)
}

func TestCalculate_EnabledWithoutWindowSkipped(t *testing.T) {
	day := openDay(monday, 5, 5)
	day.Afternoon.Window = nil

	got := Calculate([]domain.EffectiveDaySchedule{day}, nil, false)

	require.Len(t, got, 1)
	require.Len(t, got[0].Slots, 1)
	assert.Equal(t, domain.Morning, got[0].Slots[0].HalfDay)
}

func TestCalculate_CountAboveShrunkCapacityClamped(t *testing.T) {
	got := Calculate(
		[]domain.EffectiveDaySchedule{openDay(monday, 2, 5)},
		[]domain.SlotCounter{counter(monday, domain.Morning, 4)},
		false,
	)

	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Slots[0].CurrentCount)
	assert.Equal(t, 0, got[0].Slots[0].Remaining)
	assert.False(t, got[0].Slots[0].IsAvailable)
}

func TestCalculate_ReasonAndOrder(t *testing.T) {
	reason := "праздник"
	later := openDay(monday.AddDate(0, 0, 2), 1, 1)
	later.Reason = &reason

	got := Calculate([]domain.EffectiveDaySchedule{later, openDay(monday, 1, 1)}, nil, false)

	require.Len(t, got, 2)
	assert.Equal(t, monday, got[0].Date)
	assert.Nil(t, got[0].Reason)
	assert.Equal(t, &reason, got[1].Reason)
}

func TestCalculator_GetAvailability(t *testing.T) {
	ctx := context.Background()
	end := monday.AddDate(0, 0, 1)

	t.Run("reads counters when something is bookable", func(t *testing.T) {
		resolver := new(mockResolver)
		counters := new(mockCounters)
		resolver.On("ResolveRange", ctx, companyID, monday, end).Return([]domain.EffectiveDaySchedule{
			openDay(monday, 10, 10),
			domain.ClosedDay(companyID, end),
		}, nil)
		counters.On("ListRange", ctx, companyID, monday, end).Return([]domain.SlotCounter{
			counter(monday, domain.Morning, 9),
		}, nil)

		got, err := NewCalculator(resolver, counters).GetAvailability(ctx, companyID, monday, end.Add(10*time.Hour), false)
		require.NoError(t, err)

		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].Slots[0].Remaining)
		counters.AssertExpectations(t)
	})

	t.Run("skips counters when nothing is bookable", func(t *testing.T) {
		resolver := new(mockResolver)
		counters := new(mockCounters)
		resolver.On("ResolveRange", ctx, companyID, monday, end).Return([]domain.EffectiveDaySchedule{
			domain.ClosedDay(companyID, monday),
			domain.ClosedDay(companyID, end),
		}, nil)

		got, err := NewCalculator(resolver, counters).GetAvailability(ctx, companyID, monday, end, false)
		require.NoError(t, err)

		assert.Empty(t, got)
		counters.AssertNotCalled(t, "ListRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := NewCalculator(new(mockResolver), new(mockCounters)).GetAvailability(ctx, companyID, end, monday, false)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("resolver error", func(t *testing.T) {
		resolver := new(mockResolver)
		resolver.On("ResolveRange", ctx, companyID, monday, end).Return(nil, errors.New("db down"))

		_, err := NewCalculator(resolver, new(mockCounters)).GetAvailability(ctx, companyID, monday, end, false)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestCalculator_Load(t *testing.T) {
	ctx := context.Background()
	end := monday.AddDate(0, 0, 1)

	closedAfternoon := openDay(monday, 4, 4)
	closedAfternoon.Afternoon.Enabled = false

	resolver := new(mockResolver)
	counters := new(mockCounters)
	resolver.On("ResolveRange", ctx, companyID, monday, end).Return([]domain.EffectiveDaySchedule{
		closedAfternoon,
		domain.ClosedDay(companyID, end),
	}, nil)
	counters.On("ListRange", ctx, companyID, monday, end).Return([]domain.SlotCounter{
		counter(monday, domain.Morning, 3),
		counter(monday, domain.Afternoon, 2),
		counter(end, domain.Morning, 1),
	}, nil)

	loads, err := NewCalculator(resolver, counters).Load(ctx, companyID, monday, end)
	require.NoError(t, err)
	require.Len(t, loads, 3)

	assert.Equal(t, 3, loads[0].CurrentCount)
	assert.Equal(t, 4, loads[0].MaxCapacity)
	assert.True(t, loads[0].Bookable)

	assert.Equal(t, 4, loads[1].MaxCapacity)
	assert.False(t, loads[1].Bookable)

	assert.Equal(t, 0, loads[2].MaxCapacity)
	assert.False(t, loads[2].Bookable)
}
