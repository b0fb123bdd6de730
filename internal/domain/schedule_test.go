package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlots/pkg/ptr"
	"github.com/m04kA/SMC-DeliverySlots/pkg/types"
)

func window(start, end string) *TimeWindow {
	return &TimeWindow{Start: types.MustTimeString(start), End: types.MustTimeString(end)}
}

func TestTimeWindow_Validate(t *testing.T) {
	assert.NoError(t, window("09:00", "13:00").Validate())
	assert.ErrorIs(t, window("13:00", "09:00").Validate(), ErrInvalidWindow)
	assert.ErrorIs(t, window("09:00", "09:00").Validate(), ErrInvalidWindow)
	assert.ErrorIs(t, TimeWindow{Start: "9:00", End: "13:00"}.Validate(), ErrInvalidWindow)
}

func TestWindowFromBounds(t *testing.T) {
	assert.Nil(t, WindowFromBounds("", ""))

	w := WindowFromBounds("09:00", "13:00")
	require.NotNil(t, w)
	start, end := w.Bounds()
	assert.Equal(t, types.TimeString("09:00"), start)
	assert.Equal(t, types.TimeString("13:00"), end)

	var nilWindow *TimeWindow
	start, end = nilWindow.Bounds()
	assert.True(t, start.IsZero())
	assert.True(t, end.IsZero())
}

func TestWeeklyScheduleConfig_WeekdayCapacity(t *testing.T) {
	cfg := &WeeklyScheduleConfig{DefaultMorningCapacity: 10, DefaultAfternoonCapacity: 8}
	cfg.Days[time.Monday] = DaySchedule{Enabled: true, Morning: window("09:00", "13:00"), MorningCapacity: ptr.Ptr(3)}

	assert.Equal(t, 3, cfg.WeekdayCapacity(time.Monday, Morning))
	assert.Equal(t, 8, cfg.WeekdayCapacity(time.Monday, Afternoon))
	assert.Equal(t, 10, cfg.WeekdayCapacity(time.Tuesday, Morning))
	assert.Equal(t, DaySchedule{}, cfg.Day(time.Weekday(9)))
}

func TestWeeklyScheduleConfig_Validate(t *testing.T) {
	valid := func() *WeeklyScheduleConfig {
		cfg := &WeeklyScheduleConfig{MinAdvanceSlots: 1, DefaultMorningCapacity: 10, DefaultAfternoonCapacity: 10}
		cfg.Days[time.Monday] = DaySchedule{
			Enabled:   true,
			Morning:   window("09:00", "13:00"),
			Afternoon: window("14:00", "18:00"),
		}
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("negative min advance", func(t *testing.T) {
		cfg := valid()
		cfg.MinAdvanceSlots = -1
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidSchedule)
	})

	t.Run("negative default capacity", func(t *testing.T) {
		cfg := valid()
		cfg.DefaultAfternoonCapacity = -5
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidCapacity)
	})

	t.Run("enabled day without windows", func(t *testing.T) {
		cfg := valid()
		cfg.Days[time.Friday] = DaySchedule{Enabled: true}
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidSchedule)
	})

	t.Run("disabled day without windows", func(t *testing.T) {
		cfg := valid()
		cfg.Days[time.Friday] = DaySchedule{Enabled: false}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("overlapping windows", func(t *testing.T) {
		cfg := valid()
		cfg.Days[time.Monday].Afternoon = window("12:00", "18:00")
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidWindow)
	})

	t.Run("weekday capacity out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Days[time.Monday].MorningCapacity = ptr.Ptr(MaxCapacity + 1)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidCapacity)
	})
}

func TestDateOverride(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	o := &DateOverride{
		Date:              date,
		MorningEnabled:    true,
		AfternoonEnabled:  false,
		AfternoonCapacity: ptr.Ptr(2),
		MorningWindow:     window("10:00", "12:00"),
	}

	assert.True(t, o.Enabled(Morning))
	assert.False(t, o.Enabled(Afternoon))
	assert.Nil(t, o.Capacity(Morning))
	assert.Equal(t, 2, *o.Capacity(Afternoon))
	assert.NotNil(t, o.Window(Morning))
	assert.Nil(t, o.Window(Afternoon))
	assert.False(t, o.IsClosed())
	assert.NoError(t, o.Validate())

	closed := &DateOverride{Date: date}
	assert.True(t, closed.IsClosed())

	noDate := &DateOverride{}
	assert.ErrorIs(t, noDate.Validate(), ErrInvalidSchedule)

	longReason := &DateOverride{Date: date, Reason: ptr.Ptr(string(make([]rune, MaxReasonLength+1)))}
	assert.ErrorIs(t, longReason.Validate(), ErrInvalidSchedule)
}

func TestHalfDaySchedule_Bookable(t *testing.T) {
	assert.True(t, HalfDaySchedule{Enabled: true, Window: window("09:00", "13:00")}.Bookable())
	assert.False(t, HalfDaySchedule{Enabled: true}.Bookable())
	assert.False(t, HalfDaySchedule{Enabled: false, Window: window("09:00", "13:00")}.Bookable())

	closed := ClosedDay(1, time.Date(2025, 10, 15, 18, 30, 0, 0, time.UTC))
	assert.False(t, closed.HasBookable())
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), closed.Date)
}
