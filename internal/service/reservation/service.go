package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	"github.com/m04kA/SMC-DeliverySlots/pkg/metrics"
)

// Service резервирование вместимости слотов
// Единственный путь записи в счётчики; проверка и увеличение выполняются хранилищем атомарно
type Service struct {
	resolver ScheduleResolver
	counters CounterRepository
	metrics  Metrics
	logger   Logger
}

// NewService создает новый экземпляр сервиса; m может быть nil
func NewService(resolver ScheduleResolver, counters CounterRepository, m Metrics, logger Logger) *Service {
	if m == nil {
		m = noopMetrics{}
	}
	return &Service{
		resolver: resolver,
		counters: counters,
		metrics:  m,
		logger:   logger,
	}
}

// Reserve занимает одну единицу вместимости половины дня
// false без ошибки означает отказ: половина дня не бронируема или вместимость исчерпана.
// Вместимость берётся из расписания на момент вызова, изменения конфигурации учитываются сразу
func (s *Service) Reserve(ctx context.Context, companyID int64, date time.Time, halfDay domain.HalfDay) (bool, error) {
	if !halfDay.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidHalfDay, halfDay)
	}

	key := domain.NewSlotKey(companyID, date, halfDay)

	schedule, err := s.resolver.Resolve(ctx, companyID, key.Date)
	if err != nil {
		s.metrics.IncReservation(halfDay.String(), metrics.ReservationFailed)
		s.logger.Error("Reserve: failed to resolve schedule for slot=%s: %v", key, err)
		return false, fmt.Errorf("%w: Reserve - resolve schedule: %v", ErrInternal, err)
	}

	hs := schedule.HalfDay(halfDay)
	if !hs.Bookable() {
		s.metrics.IncReservation(halfDay.String(), metrics.ReservationRejected)
		s.logger.Info("Reserve: slot=%s is not bookable (enabled=%t, window=%t)", key, hs.Enabled, hs.Window != nil)
		return false, nil
	}

	ok, err := s.counters.ConditionalIncrement(ctx, key, hs.MaxCapacity)
	if err != nil {
		s.metrics.IncReservation(halfDay.String(), metrics.ReservationFailed)
		s.logger.Error("Reserve: failed to increment counter for slot=%s: %v", key, err)
		return false, fmt.Errorf("%w: Reserve - increment counter: %v", ErrInternal, err)
	}

	if !ok {
		s.metrics.IncReservation(halfDay.String(), metrics.ReservationRejected)
		s.logger.Info("Reserve: slot=%s is full (max=%d)", key, hs.MaxCapacity)
		return false, nil
	}

	s.metrics.IncReservation(halfDay.String(), metrics.ReservationReserved)
	s.logger.Info("Reserve: reserved slot=%s (max=%d)", key, hs.MaxCapacity)
	return true, nil
}

// Release возвращает единицу вместимости; счётчик не опускается ниже нуля
// Повторный вызов на нулевом счётчике ничего не меняет.
// Расписание не проверяется: отменить заказ можно и на выключенный день
func (s *Service) Release(ctx context.Context, companyID int64, date time.Time, halfDay domain.HalfDay) error {
	if !halfDay.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidHalfDay, halfDay)
	}

	key := domain.NewSlotKey(companyID, date, halfDay)

	if err := s.counters.Decrement(ctx, key); err != nil {
		s.logger.Error("Release: failed to decrement counter for slot=%s: %v", key, err)
		return fmt.Errorf("%w: Release - decrement counter: %v", ErrInternal, err)
	}

	s.metrics.IncRelease(halfDay.String())
	s.logger.Info("Release: released slot=%s", key)
	return nil
}

// Count текущее количество резервирований слота
func (s *Service) Count(ctx context.Context, companyID int64, date time.Time, halfDay domain.HalfDay) (int, error) {
	count, err := s.counters.GetCount(ctx, domain.NewSlotKey(companyID, date, halfDay))
	if err != nil {
		return 0, fmt.Errorf("%w: Count - get counter: %v", ErrInternal, err)
	}
	return count, nil
}

type noopMetrics struct{}

func (noopMetrics) IncReservation(string, string) {}
func (noopMetrics) IncRelease(string)             {}
