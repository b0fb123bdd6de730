package rediscounter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

const (
	fieldCount     = "count"
	fieldUpdatedAt = "updated_at"
)

// incrementScript атомарно проверяет вместимость и увеличивает счётчик
// KEYS[1] - ключ слота, ARGV[1] - maxCapacity, ARGV[2] - unix время обновления
// Возвращает новое значение или -1, если вместимость исчерпана
var incrementScript = redis.NewScript(`
local current = tonumber(redis.call('HGET', KEYS[1], 'count') or '0')
if current >= tonumber(ARGV[1]) then
	return -1
end
local updated = redis.call('HINCRBY', KEYS[1], 'count', 1)
redis.call('HSET', KEYS[1], 'updated_at', ARGV[2])
return updated
`)

// decrementScript уменьшает счётчик с полом в нуле, отсутствующий ключ не создаётся
var decrementScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
local current = tonumber(redis.call('HGET', KEYS[1], 'count') or '0')
if current > 0 then
	current = redis.call('HINCRBY', KEYS[1], 'count', -1)
end
redis.call('HSET', KEYS[1], 'updated_at', ARGV[1])
return current
`)

// Store счётчики слотов в Redis (hash на каждый слот)
// Используется, когда несколько экземпляров сервиса делят счётчики без PostgreSQL
type Store struct {
	client Client
	prefix string
	now    func() time.Time
}

// NewStore создает хранилище; prefix отделяет ключи сервиса от остальных данных Redis
func NewStore(client Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix, now: time.Now}
}

func (s *Store) key(k domain.SlotKey) string {
	return fmt.Sprintf("%s:slot:%d:%s:%s", s.prefix, k.CompanyID, domain.DateOnly(k.Date).Format(domain.DateFormat), k.HalfDay)
}

func (s *Store) GetCount(ctx context.Context, key domain.SlotKey) (int, error) {
	counters, err := s.read(ctx, []domain.SlotKey{key})
	if err != nil {
		return 0, err
	}
	if len(counters) == 0 {
		return 0, nil
	}
	return counters[0].CurrentCount, nil
}

// ListRange читает счётчики всех половин дня периода одним pipeline
func (s *Store) ListRange(ctx context.Context, companyID int64, start, end time.Time) ([]domain.SlotCounter, error) {
	keys := make([]domain.SlotKey, 0, domain.DaysInRange(start, end)*len(domain.HalfDays))
	domain.EachDate(start, end, func(date time.Time) {
		for _, h := range domain.HalfDays {
			keys = append(keys, domain.NewSlotKey(companyID, date, h))
		}
	})
	if len(keys) == 0 {
		return []domain.SlotCounter{}, nil
	}

	return s.read(ctx, keys)
}

func (s *Store) read(ctx context.Context, keys []domain.SlotKey) ([]domain.SlotCounter, error) {
	pipe := s.client.Pipeline()
	cmds := make([]*redis.SliceCmd, len(keys))
	for i, k := range keys {
		cmds[i] = pipe.HMGet(ctx, s.key(k), fieldCount, fieldUpdatedAt)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	counters := make([]domain.SlotCounter, 0)
	for i, cmd := range cmds {
		vals := cmd.Val()
		if len(vals) < 2 || vals[0] == nil {
			continue
		}

		count, err := strconv.Atoi(fmt.Sprint(vals[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: bad count for %s: %v", ErrRead, keys[i], err)
		}

		c := domain.SlotCounter{SlotKey: keys[i], CurrentCount: count}
		if vals[1] != nil {
			if ts, err := strconv.ParseInt(fmt.Sprint(vals[1]), 10, 64); err == nil {
				c.UpdatedAt = time.Unix(ts, 0).UTC()
			}
		}
		counters = append(counters, c)
	}

	return counters, nil
}

func (s *Store) ConditionalIncrement(ctx context.Context, key domain.SlotKey, maxCapacity int) (bool, error) {
	if maxCapacity <= 0 {
		return false, nil
	}

	res, err := incrementScript.Run(ctx, s.client, []string{s.key(key)}, maxCapacity, s.now().Unix()).Int()
	if err != nil {
		return false, fmt.Errorf("%w: increment %s: %v", ErrScript, key, err)
	}

	return res > 0, nil
}

func (s *Store) Decrement(ctx context.Context, key domain.SlotKey) error {
	if err := decrementScript.Run(ctx, s.client, []string{s.key(key)}, s.now().Unix()).Err(); err != nil {
		return fmt.Errorf("%w: decrement %s: %v", ErrScript, key, err)
	}
	return nil
}
