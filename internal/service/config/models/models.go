package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	"github.com/m04kA/SMC-DeliverySlots/pkg/types"
)

// Общие модели

// TimeWindow временное окно в формате HH:MM
type TimeWindow struct {
	Start string `json:"start" validate:"required,len=5"`
	End   string `json:"end" validate:"required,len=5"`
}

// DaySchedule расписание одного дня недели (0 = воскресенье)
type DaySchedule struct {
	Weekday           int         `json:"weekday" validate:"min=0,max=6"`
	Enabled           bool        `json:"enabled"`
	Morning           *TimeWindow `json:"morning,omitempty" validate:"omitempty"`
	Afternoon         *TimeWindow `json:"afternoon,omitempty" validate:"omitempty"`
	MorningCapacity   *int        `json:"morningCapacity,omitempty" validate:"omitempty,min=0"`
	AfternoonCapacity *int        `json:"afternoonCapacity,omitempty" validate:"omitempty,min=0"`
}

// Request модели

// UpsertWeeklyConfigRequest запрос на создание или замену недельной конфигурации
// Дни недели, которых нет в Days, выключены
type UpsertWeeklyConfigRequest struct {
	ActorCompanyID           int64         `json:"-"`
	CompanyID                int64         `json:"-"`
	MinAdvanceSlots          int           `json:"minAdvanceSlots" validate:"min=0,max=60"`
	DefaultMorningCapacity   int           `json:"defaultMorningCapacity" validate:"min=0"`
	DefaultAfternoonCapacity int           `json:"defaultAfternoonCapacity" validate:"min=0"`
	Days                     []DaySchedule `json:"days" validate:"max=7,dive"`
}

// OverrideRequest запрос на создание или обновление переопределения на дату
type OverrideRequest struct {
	ActorCompanyID    int64       `json:"-"`
	CompanyID         int64       `json:"-"`
	Date              string      `json:"date" validate:"required"`
	MorningEnabled    bool        `json:"morningEnabled"`
	AfternoonEnabled  bool        `json:"afternoonEnabled"`
	MorningCapacity   *int        `json:"morningCapacity,omitempty" validate:"omitempty,min=0"`
	AfternoonCapacity *int        `json:"afternoonCapacity,omitempty" validate:"omitempty,min=0"`
	MorningWindow     *TimeWindow `json:"morningWindow,omitempty" validate:"omitempty"`
	AfternoonWindow   *TimeWindow `json:"afternoonWindow,omitempty" validate:"omitempty"`
	Reason            *string     `json:"reason,omitempty" validate:"omitempty,max=200"`
}

// ListOverridesRequest запрос списка переопределений за период
type ListOverridesRequest struct {
	ActorCompanyID int64
	CompanyID      int64
	From           time.Time
	To             time.Time
}

// DeleteOverrideRequest запрос на удаление переопределения
type DeleteOverrideRequest struct {
	ActorCompanyID int64
	CompanyID      int64
	Date           time.Time
}

// GetOverrideRequest запрос переопределения на одну дату
type GetOverrideRequest struct {
	ActorCompanyID int64
	CompanyID      int64
	Date           time.Time
}

// Response модели

// WeeklyConfigResponse недельная конфигурация; Days всегда содержит 7 дней
type WeeklyConfigResponse struct {
	CompanyID                int64         `json:"companyId"`
	MinAdvanceSlots          int           `json:"minAdvanceSlots"`
	DefaultMorningCapacity   int           `json:"defaultMorningCapacity"`
	DefaultAfternoonCapacity int           `json:"defaultAfternoonCapacity"`
	Days                     []DaySchedule `json:"days"`
	CreatedAt                time.Time     `json:"createdAt"`
	UpdatedAt                time.Time     `json:"updatedAt"`
}

// OverrideResponse переопределение на дату
type OverrideResponse struct {
	ID                int64       `json:"id"`
	CompanyID         int64       `json:"companyId"`
	Date              string      `json:"date"`
	MorningEnabled    bool        `json:"morningEnabled"`
	AfternoonEnabled  bool        `json:"afternoonEnabled"`
	MorningCapacity   *int        `json:"morningCapacity,omitempty"`
	AfternoonCapacity *int        `json:"afternoonCapacity,omitempty"`
	MorningWindow     *TimeWindow `json:"morningWindow,omitempty"`
	AfternoonWindow   *TimeWindow `json:"afternoonWindow,omitempty"`
	Reason            *string     `json:"reason,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// OverrideListResponse ответ со списком переопределений
type OverrideListResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
}

// Методы конвертации

// ToDomain конвертирует запрос в domain модель (без проверки инвариантов)
func (r *UpsertWeeklyConfigRequest) ToDomain() (*domain.WeeklyScheduleConfig, error) {
	cfg := &domain.WeeklyScheduleConfig{
		CompanyID:                r.CompanyID,
		MinAdvanceSlots:          r.MinAdvanceSlots,
		DefaultMorningCapacity:   r.DefaultMorningCapacity,
		DefaultAfternoonCapacity: r.DefaultAfternoonCapacity,
	}

	var seen [7]bool
	for _, d := range r.Days {
		if d.Weekday < int(time.Sunday) || d.Weekday > int(time.Saturday) {
			return nil, fmt.Errorf("%w: weekday %d is out of range", domain.ErrInvalidSchedule, d.Weekday)
		}
		if seen[d.Weekday] {
			return nil, fmt.Errorf("%w: duplicate weekday %d", domain.ErrInvalidSchedule, d.Weekday)
		}
		seen[d.Weekday] = true

		morning, err := d.Morning.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: weekday %d morning: %v", domain.ErrInvalidWindow, d.Weekday, err)
		}
		afternoon, err := d.Afternoon.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: weekday %d afternoon: %v", domain.ErrInvalidWindow, d.Weekday, err)
		}

		cfg.Days[d.Weekday] = domain.DaySchedule{
			Enabled:           d.Enabled,
			Morning:           morning,
			Afternoon:         afternoon,
			MorningCapacity:   d.MorningCapacity,
			AfternoonCapacity: d.AfternoonCapacity,
		}
	}

	return cfg, nil
}

// ToDomain конвертирует запрос в domain модель
func (r *OverrideRequest) ToDomain() (*domain.DateOverride, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q: %v", domain.ErrInvalidSchedule, r.Date, err)
	}

	morning, err := r.MorningWindow.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: morning: %v", domain.ErrInvalidWindow, err)
	}
	afternoon, err := r.AfternoonWindow.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: afternoon: %v", domain.ErrInvalidWindow, err)
	}

	return &domain.DateOverride{
		CompanyID:         r.CompanyID,
		Date:              date,
		MorningEnabled:    r.MorningEnabled,
		AfternoonEnabled:  r.AfternoonEnabled,
		MorningCapacity:   r.MorningCapacity,
		AfternoonCapacity: r.AfternoonCapacity,
		MorningWindow:     morning,
		AfternoonWindow:   afternoon,
		Reason:            r.Reason,
	}, nil
}

func (w *TimeWindow) toDomain() (*domain.TimeWindow, error) {
	if w == nil {
		return nil, nil
	}
	start, err := types.NewTimeStringFromString(w.Start)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(w.End)
	if err != nil {
		return nil, err
	}
	return &domain.TimeWindow{Start: start, End: end}, nil
}

func fromDomainWindow(w *domain.TimeWindow) *TimeWindow {
	if w == nil {
		return nil
	}
	return &TimeWindow{Start: w.Start.String(), End: w.End.String()}
}

// FromDomainWeeklyConfig конвертирует domain модель в DTO
func FromDomainWeeklyConfig(c *domain.WeeklyScheduleConfig) *WeeklyConfigResponse {
	if c == nil {
		return nil
	}

	days := make([]DaySchedule, 0, len(c.Days))
	for wd, d := range c.Days {
		days = append(days, DaySchedule{
			Weekday:           wd,
			Enabled:           d.Enabled,
			Morning:           fromDomainWindow(d.Morning),
			Afternoon:         fromDomainWindow(d.Afternoon),
			MorningCapacity:   d.MorningCapacity,
			AfternoonCapacity: d.AfternoonCapacity,
		})
	}

	return &WeeklyConfigResponse{
		CompanyID:                c.CompanyID,
		MinAdvanceSlots:          c.MinAdvanceSlots,
		DefaultMorningCapacity:   c.DefaultMorningCapacity,
		DefaultAfternoonCapacity: c.DefaultAfternoonCapacity,
		Days:                     days,
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(o *domain.DateOverride) *OverrideResponse {
	if o == nil {
		return nil
	}

	return &OverrideResponse{
		ID:                o.ID,
		CompanyID:         o.CompanyID,
		Date:              o.Date.Format(domain.DateFormat),
		MorningEnabled:    o.MorningEnabled,
		AfternoonEnabled:  o.AfternoonEnabled,
		MorningCapacity:   o.MorningCapacity,
		AfternoonCapacity: o.AfternoonCapacity,
		MorningWindow:     fromDomainWindow(o.MorningWindow),
		AfternoonWindow:   fromDomainWindow(o.AfternoonWindow),
		Reason:            o.Reason,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

// FromDomainOverrideList конвертирует список domain моделей в DTO
func FromDomainOverrideList(overrides []*domain.DateOverride) *OverrideListResponse {
	result := make([]OverrideResponse, 0, len(overrides))
	for _, o := range overrides {
		if dto := FromDomainOverride(o); dto != nil {
			result = append(result, *dto)
		}
	}
	return &OverrideListResponse{Overrides: result}
}
