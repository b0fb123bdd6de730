package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	overrideRepo "github.com/m04kA/SMC-DeliverySlots/internal/infra/storage/override"
	scheduleRepo "github.com/m04kA/SMC-DeliverySlots/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-DeliverySlots/pkg/ptr"
	"github.com/m04kA/SMC-DeliverySlots/pkg/types"
)

const companyID int64 = 42

// 2025-10-13 - понедельник
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type mockWeeklyRepo struct {
	mock.Mock
}

func (m *mockWeeklyRepo) Get(ctx context.Context, id int64) (*domain.WeeklyScheduleConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyScheduleConfig), args.Error(1)
}

type mockOverrideRepo struct {
	mock.Mock
}

func (m *mockOverrideRepo) GetByDate(ctx context.Context, id int64, date time.Time) (*domain.DateOverride, error) {
	args := m.Called(ctx, id, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DateOverride), args.Error(1)
}

func (m *mockOverrideRepo) ListRange(ctx context.Context, id int64, start, end time.Time) ([]*domain.DateOverride, error) {
	args := m.Called(ctx, id, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DateOverride), args.Error(1)
}

func window(start, end string) *domain.TimeWindow {
	return &domain.TimeWindow{Start: types.MustTimeString(start), End: types.MustTimeString(end)}
}

func weeklyConfig() *domain.WeeklyScheduleConfig {
	cfg := &domain.WeeklyScheduleConfig{
		CompanyID:                companyID,
		MinAdvanceSlots:          1,
		DefaultMorningCapacity:   10,
		DefaultAfternoonCapacity: 6,
	}
	cfg.Days[time.Monday] = domain.DaySchedule{
		Enabled:   true,
		Morning:   window("09:00", "13:00"),
		Afternoon: window("14:00", "18:00"),
	}
	cfg.Days[time.Tuesday] = domain.DaySchedule{
		Enabled:           true,
		Morning:           window("10:00", "12:00"),
		AfternoonCapacity: ptr.Ptr(2),
	}
	return cfg
}

func TestMerge_NoOverrideUsesWeeklyDefaults(t *testing.T) {
	cfg := weeklyConfig()

	got := Merge(companyID, monday, cfg, nil)

	assert.False(t, got.Overridden)
	assert.True(t, got.Morning.Bookable())
	assert.Equal(t, 10, got.Morning.MaxCapacity)
	assert.Equal(t, *window("09:00", "13:00"), *got.Morning.Window)
	assert.Equal(t, 6, got.Afternoon.MaxCapacity)
	assert.True(t, got.Afternoon.Bookable())
}

func TestMerge_WeekdayCapacityAndMissingWindow(t *testing.T) {
	got := Merge(companyID, monday.AddDate(0, 0, 1), weeklyConfig(), nil)

	assert.True(t, got.Morning.Bookable())
	// Вместимость дня недели задана, но окна нет - половина дня не бронируется
	assert.Equal(t, 2, got.Afternoon.MaxCapacity)
	assert.False(t, got.Afternoon.Bookable())
}

func TestMerge_DisabledWeekday(t *testing.T) {
	got := Merge(companyID, monday.AddDate(0, 0, 6), weeklyConfig(), nil) // воскресенье

	assert.False(t, got.HasBookable())
}

func TestMerge_OverrideCapacityKeepsWeeklyWindow(t *testing.T) {
	override := &domain.DateOverride{
		CompanyID:        companyID,
		Date:             monday,
		MorningEnabled:   true,
		AfternoonEnabled: true,
		MorningCapacity:  ptr.Ptr(3),
		Reason:           ptr.Ptr("инвентаризация"),
	}

	got := Merge(companyID, monday, weeklyConfig(), override)

	assert.True(t, got.Overridden)
	assert.Equal(t, 3, got.Morning.MaxCapacity)
	assert.Equal(t, *window("09:00", "13:00"), *got.Morning.Window)
	assert.Equal(t, 6, got.Afternoon.MaxCapacity)
	require.NotNil(t, got.Reason)
	assert.Equal(t, "инвентаризация", *got.Reason)
}

func TestMerge_OverrideEnablesDisabledWeekday(t *testing.T) {
	sunday := monday.AddDate(0, 0, 6)
	override := &domain.DateOverride{
		Date:           sunday,
		MorningEnabled: true,
		MorningWindow:  window("11:00", "15:00"),
	}

	got := Merge(companyID, sunday, weeklyConfig(), override)

	assert.True(t, got.Morning.Bookable())
	assert.Equal(t, 10, got.Morning.MaxCapacity)
	assert.Equal(t, *window("11:00", "15:00"), *got.Morning.Window)
	assert.False(t, got.Afternoon.Enabled)
}

func TestMerge_OverrideClosesDay(t *testing.T) {
	got := Merge(companyID, monday, weeklyConfig(), &domain.DateOverride{Date: monday})

	assert.False(t, got.HasBookable())
	assert.True(t, got.Overridden)
}

func TestMerge_DoesNotShareWindowsWithConfig(t *testing.T) {
	cfg := weeklyConfig()

	got := Merge(companyID, monday, cfg, nil)
	got.Morning.Window.Start = "07:00"

	assert.Equal(t, types.TimeString("09:00"), cfg.Days[time.Monday].Morning.Start)
}

func TestMerge_NoConfig(t *testing.T) {
	override := &domain.DateOverride{Date: monday, MorningEnabled: true, MorningWindow: window("09:00", "10:00")}

	got := Merge(companyID, monday, nil, override)

	assert.False(t, got.HasBookable())
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("with override", func(t *testing.T) {
		weekly := new(mockWeeklyRepo)
		overrides := new(mockOverrideRepo)
		weekly.On("Get", ctx, companyID).Return(weeklyConfig(), nil)
		overrides.On("GetByDate", ctx, companyID, monday).
			Return(&domain.DateOverride{Date: monday, AfternoonEnabled: true}, nil)

		got, err := NewResolver(weekly, overrides).Resolve(ctx, companyID, monday.Add(15*time.Hour))
		require.NoError(t, err)

		assert.False(t, got.Morning.Enabled)
		assert.True(t, got.Afternoon.Bookable())
		overrides.AssertExpectations(t)
	})

	t.Run("override not found", func(t *testing.T) {
		weekly := new(mockWeeklyRepo)
		overrides := new(mockOverrideRepo)
		weekly.On("Get", ctx, companyID).Return(weeklyConfig(), nil)
		overrides.On("GetByDate", ctx, companyID, monday).Return(nil, overrideRepo.ErrOverrideNotFound)

		got, err := NewResolver(weekly, overrides).Resolve(ctx, companyID, monday)
		require.NoError(t, err)
		assert.True(t, got.Morning.Bookable())
	})

	t.Run("no weekly config", func(t *testing.T) {
		weekly := new(mockWeeklyRepo)
		overrides := new(mockOverrideRepo)
		weekly.On("Get", ctx, companyID).Return(nil, scheduleRepo.ErrConfigNotFound)

		got, err := NewResolver(weekly, overrides).Resolve(ctx, companyID, monday)
		require.NoError(t, err)
		assert.False(t, got.HasBookable())
		overrides.AssertNotCalled(t, "GetByDate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		weekly := new(mockWeeklyRepo)
		weekly.On("Get", ctx, companyID).Return(nil, errors.New("connection refused"))

		_, err := NewResolver(weekly, new(mockOverrideRepo)).Resolve(ctx, companyID, monday)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestResolver_ResolveRange(t *testing.T) {
	ctx := context.Background()
	end := monday.AddDate(0, 0, 6)

	weekly := new(mockWeeklyRepo)
	overrides := new(mockOverrideRepo)
	weekly.On("Get", ctx, companyID).Return(weeklyConfig(), nil)
	overrides.On("ListRange", ctx, companyID, monday, end).Return([]*domain.DateOverride{
		{Date: monday.AddDate(0, 0, 1)}, // вторник закрыт
	}, nil)

	days, err := NewResolver(weekly, overrides).ResolveRange(ctx, companyID, monday, end)
	require.NoError(t, err)
	require.Len(t, days, 7)

	assert.Equal(t, monday, days[0].Date)
	assert.True(t, days[0].HasBookable())
	assert.False(t, days[1].HasBookable())
	assert.True(t, days[1].Overridden)
	for _, d := range days[2:] {
		assert.False(t, d.HasBookable(), d.Date.Weekday().String())
	}
	overrides.AssertNumberOfCalls(t, "ListRange", 1)
}

func TestResolver_MinAdvanceSlots(t *testing.T) {
	ctx := context.Background()

	weekly := new(mockWeeklyRepo)
	weekly.On("Get", ctx, companyID).Return(weeklyConfig(), nil)
	n, err := NewResolver(weekly, new(mockOverrideRepo)).MinAdvanceSlots(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	missing := new(mockWeeklyRepo)
	missing.On("Get", ctx, companyID).Return(nil, scheduleRepo.ErrConfigNotFound)
	n, err = NewResolver(missing, new(mockOverrideRepo)).MinAdvanceSlots(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
