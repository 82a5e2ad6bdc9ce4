// Package memory implements the booking, barber, catalog and config repositories in process.
// Transactions are serialized by a single mutex and rolled back by restoring a snapshot.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

type txKey struct{}

// Store holds every table; repositories are views over it
type Store struct {
	txMu sync.Mutex // one transaction at a time
	mu   sync.Mutex // guards the maps below

	bookings      map[int64]*domain.Booking
	nextBookingID int64
	barbers       map[int64]*domain.Barber
	nextBarberID  int64
	services      map[int64]*domain.CatalogService
	nextServiceID int64
	configs       []*domain.BookingConfig
	nextConfigID  int64

	failure error
	now     func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		bookings: make(map[int64]*domain.Booking),
		barbers:  make(map[int64]*domain.Barber),
		services: make(map[int64]*domain.CatalogService),
		now:      time.Now,
	}
}

// SetFailure makes every subsequent repository call return err (nil restores normal behaviour)
func (s *Store) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

func (s *Store) Barbers() *BarberRepository {
	return &BarberRepository{s: s}
}

func (s *Store) Catalog() *CatalogRepository {
	return &CatalogRepository{s: s}
}

func (s *Store) Configs() *ConfigRepository {
	return &ConfigRepository{s: s}
}

// Do выполняет fn в транзакции
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.do(ctx, fn)
}

// DoSerializable выполняет fn в транзакции; все транзакции в памяти сериализуемы
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.do(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.do(ctx, fn)
}

func (s *Store) do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

type snapshot struct {
	bookings map[int64]*domain.Booking
	barbers  map[int64]*domain.Barber
	services map[int64]*domain.CatalogService
	configs  []*domain.BookingConfig
	ids      [4]int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		bookings: make(map[int64]*domain.Booking, len(s.bookings)),
		barbers:  make(map[int64]*domain.Barber, len(s.barbers)),
		services: make(map[int64]*domain.CatalogService, len(s.services)),
		configs:  make([]*domain.BookingConfig, 0, len(s.configs)),
		ids:      [4]int64{s.nextBookingID, s.nextBarberID, s.nextServiceID, s.nextConfigID},
	}
	for id, b := range s.bookings {
		snap.bookings[id] = b.Clone()
	}
	for id, b := range s.barbers {
		c := *b
		snap.barbers[id] = &c
	}
	for id, svc := range s.services {
		c := *svc
		snap.services[id] = &c
	}
	for _, cfg := range s.configs {
		c := *cfg
		snap.configs = append(snap.configs, &c)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = snap.bookings
	s.barbers = snap.barbers
	s.services = snap.services
	s.configs = snap.configs
	s.nextBookingID, s.nextBarberID, s.nextServiceID, s.nextConfigID = snap.ids[0], snap.ids[1], snap.ids[2], snap.ids[3]
}
