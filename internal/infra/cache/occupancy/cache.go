package occupancy

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Cache read-through кеш занятости барбера по дням
// Ключ: <prefix>:occupancy:<barberID>:<YYYY-MM-DD>, версия дня: <prefix>:occupancy:version:<barberID>:<YYYY-MM-DD>
// Invalidate увеличивает версию, Set записывает только при неизменной версии: снимок,
// прочитанный до коммита записи, не попадет в кеш после инвалидации
// Nil-клиент означает выключенный кеш: Get всегда промах, запись - no-op
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewClient подключается к Redis по URL и проверяет соединение
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: parse url: %v", ErrConnect, err)
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrConnect, err)
	}
	return client, nil
}

// versionTTL срок жизни версии дня; пропавшая версия читается как 0 и тоже отклоняет устаревшее заполнение
const versionTTL = 24 * time.Hour

// fillScript пишет данные, только если версия дня совпадает с прочитанной до обращения к хранилищу
var fillScript = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if (current or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

type entry struct {
	BookingID  int64     `json:"bookingId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	SeatNumber *int      `json:"seatNumber,omitempty"`
}

func (c *Cache) key(barberID int64, day time.Time) string {
	return fmt.Sprintf("%s:occupancy:%d:%s", c.prefix, barberID, day.Format(domain.DateFormat))
}

func (c *Cache) versionKey(barberID int64, day time.Time) string {
	return fmt.Sprintf("%s:occupancy:version:%d:%s", c.prefix, barberID, day.Format(domain.DateFormat))
}

// Get возвращает занятость за день и текущую версию дня; found=false при промахе
// Версию нужно передать в Set при заполнении кеша после промаха
func (c *Cache) Get(ctx context.Context, barberID int64, day time.Time) ([]domain.Occupancy, int64, bool, error) {
	if c == nil || c.client == nil {
		return nil, 0, false, nil
	}

	values, err := c.client.MGet(ctx, c.key(barberID, day), c.versionKey(barberID, day)).Result()
	if err != nil {
		return nil, 0, false, fmt.Errorf("%w: Get: %v", ErrCache, err)
	}

	var version int64
	if raw, ok := values[1].(string); ok {
		version, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, false, fmt.Errorf("%w: Get - version: %v", ErrCache, err)
		}
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, version, false, nil
	}

	var entries []entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, version, false, fmt.Errorf("%w: Get - decode: %v", ErrCache, err)
	}

	result := make([]domain.Occupancy, len(entries))
	for i, e := range entries {
		result[i] = domain.Occupancy{BookingID: e.BookingID, Start: e.Start, End: e.End, SeatNumber: e.SeatNumber}
	}
	return result, version, true, nil
}

// Set сохраняет занятость за день с TTL, если версия дня все еще равна version
// stored=false значит, что между чтением версии и записью день был инвалидирован
func (c *Cache) Set(ctx context.Context, barberID int64, day time.Time, version int64, occupancy []domain.Occupancy) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	entries := make([]entry, len(occupancy))
	for i, o := range occupancy {
		entries[i] = entry{BookingID: o.BookingID, Start: o.Start, End: o.End, SeatNumber: o.SeatNumber}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return false, fmt.Errorf("%w: Set - encode: %v", ErrCache, err)
	}

	keys := []string{c.key(barberID, day), c.versionKey(barberID, day)}
	stored, err := fillScript.Run(ctx, c.client, keys, strconv.FormatInt(version, 10), raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("%w: Set: %v", ErrCache, err)
	}
	return stored == 1, nil
}

// Invalidate удаляет занятость и увеличивает версию каждого дня, который затрагивает [start, end)
// Дни считаются и в зоне бронирования, и в локальной зоне сервера, в которой разбираются даты запросов
func (c *Cache) Invalidate(ctx context.Context, barberID int64, start, end time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	seen := make(map[string]struct{})
	days := make([]time.Time, 0, 2)
	for _, loc := range []*time.Location{start.Location(), time.Local} {
		for day := startOfDay(start.In(loc)); ; day = day.AddDate(0, 0, 1) {
			key := c.key(barberID, day)
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				days = append(days, day)
			}
			if !day.AddDate(0, 0, 1).Before(end) {
				break
			}
		}
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, day := range days {
			pipe.Incr(ctx, c.versionKey(barberID, day))
			pipe.Expire(ctx, c.versionKey(barberID, day), versionTTL)
			pipe.Del(ctx, c.key(barberID, day))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCache, err)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
