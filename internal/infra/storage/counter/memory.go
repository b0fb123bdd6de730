package counter

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// MemoryStore счётчики слотов в памяти процесса
// Каждый ключ защищён собственным мьютексом, резервирования разных слотов не блокируют друг друга.
// Подходит для одного экземпляра сервиса и для тестов
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string]*memorySlot
	now   func() time.Time
}

type memorySlot struct {
	mu        sync.Mutex
	key       domain.SlotKey
	count     int
	updatedAt time.Time
}

// NewMemoryStore создает пустое хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots: make(map[string]*memorySlot),
		now:   time.Now,
	}
}

func (s *MemoryStore) slot(key domain.SlotKey, create bool) *memorySlot {
	key = domain.NewSlotKey(key.CompanyID, key.Date, key.HalfDay)
	id := key.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[id]
	if !ok && create {
		sl = &memorySlot{key: key}
		s.slots[id] = sl
	}
	return sl
}

func (s *MemoryStore) GetCount(_ context.Context, key domain.SlotKey) (int, error) {
	sl := s.slot(key, false)
	if sl == nil {
		return 0, nil
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.count, nil
}

func (s *MemoryStore) ListRange(_ context.Context, companyID int64, start, end time.Time) ([]domain.SlotCounter, error) {
	from, to := domain.DateOnly(start), domain.DateOnly(end)

	s.mu.Lock()
	matched := make([]*memorySlot, 0)
	for _, sl := range s.slots {
		if sl.key.CompanyID != companyID || sl.key.Date.Before(from) || sl.key.Date.After(to) {
			continue
		}
		matched = append(matched, sl)
	}
	s.mu.Unlock()

	counters := make([]domain.SlotCounter, 0, len(matched))
	for _, sl := range matched {
		sl.mu.Lock()
		counters = append(counters, domain.SlotCounter{
			SlotKey:      sl.key,
			CurrentCount: sl.count,
			UpdatedAt:    sl.updatedAt,
		})
		sl.mu.Unlock()
	}

	sort.Slice(counters, func(i, j int) bool {
		if !counters[i].Date.Equal(counters[j].Date) {
			return counters[i].Date.Before(counters[j].Date)
		}
		return counters[i].HalfDay.Order() < counters[j].HalfDay.Order()
	})

	return counters, nil
}

// ConditionalIncrement проверка и увеличение выполняются под мьютексом ключа
func (s *MemoryStore) ConditionalIncrement(_ context.Context, key domain.SlotKey, maxCapacity int) (bool, error) {
	if maxCapacity <= 0 {
		return false, nil
	}

	sl := s.slot(key, true)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.count >= maxCapacity {
		return false, nil
	}
	sl.count++
	sl.updatedAt = s.now()
	return true, nil
}

func (s *MemoryStore) Decrement(_ context.Context, key domain.SlotKey) error {
	sl := s.slot(key, false)
	if sl == nil {
		return nil
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.count > 0 {
		sl.count--
	}
	sl.updatedAt = s.now()
	return nil
}
