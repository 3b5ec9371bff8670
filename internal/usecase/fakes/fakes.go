// Package fakes содержит in-memory реализации репозиториев и менеджера транзакций
// для тестов use case'ов. Ошибки совпадают с ошибками postgres-репозиториев.
package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/blocked_date"
	bookingRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/room"
)

// Rooms in-memory репозиторий номеров
type Rooms struct {
	mu    sync.Mutex
	rooms map[int64]*domain.Room
	Err   error
}

func NewRooms(rooms ...*domain.Room) *Rooms {
	r := &Rooms{rooms: make(map[int64]*domain.Room)}
	for _, room := range rooms {
		r.rooms[room.ID] = room
	}
	return r
}

func (r *Rooms) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	room, ok := r.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	copied := *room
	return &copied, nil
}

func (r *Rooms) LockByID(ctx context.Context, id int64) (*domain.Room, error) {
	return r.GetByID(ctx, id)
}

// Bookings in-memory репозиторий бронирований
type Bookings struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*domain.Booking
	number   int64

	// CreateErr возвращается из Create вместо записи (имитация ошибки postgres)
	CreateErr error
}

func NewBookings(bookings ...*domain.Booking) *Bookings {
	b := &Bookings{bookings: make(map[uuid.UUID]*domain.Booking), number: 1000}
	for _, booking := range bookings {
		b.bookings[booking.ID] = booking
	}
	return b
}

func (b *Bookings) NextBookingNumber(context.Context) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.number++
	return b.number, nil
}

func (b *Bookings) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.CreateErr != nil {
		return nil, b.CreateErr
	}
	for _, other := range b.bookings {
		if other.RoomID == booking.RoomID && other.IsActive() && other.Stay.Overlaps(booking.Stay) {
			return nil, bookingRepo.ErrOverlap
		}
	}

	copied := *booking
	b.bookings[booking.ID] = &copied
	return booking, nil
}

func (b *Bookings) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	booking, ok := b.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (b *Bookings) GetByRoom(_ context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, booking := range b.bookings {
		if booking.RoomID != filter.RoomID {
			continue
		}
		if !filter.IncludeInactive && !booking.IsActive() {
			continue
		}
		if filter.Window != nil && !booking.Stay.Overlaps(*filter.Window) {
			continue
		}
		copied := *booking
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Stay.Start.Before(result[j].Stay.Start) })
	return result, nil
}

func (b *Bookings) Update(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.bookings[booking.ID]; !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	b.bookings[booking.ID] = &copied
	return booking, nil
}

func (b *Bookings) UpdatePayment(_ context.Context, id uuid.UUID, status domain.PaymentStatus, method *string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	booking, ok := b.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	booking.PaymentStatus = status
	if method != nil {
		booking.PaymentMethod = method
	}
	return nil
}

func (b *Bookings) Delete(_ context.Context, id uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(b.bookings, id)
	return nil
}

// All возвращает все бронирования
func (b *Bookings) All() []*domain.Booking {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]*domain.Booking, 0, len(b.bookings))
	for _, booking := range b.bookings {
		result = append(result, booking)
	}
	return result
}

// Blocks in-memory репозиторий блокировок
type Blocks struct {
	mu     sync.Mutex
	blocks map[uuid.UUID]*domain.BlockedDate
}

func NewBlocks(blocks ...*domain.BlockedDate) *Blocks {
	b := &Blocks{blocks: make(map[uuid.UUID]*domain.BlockedDate)}
	for _, block := range blocks {
		b.blocks[block.ID] = block
	}
	return b
}

func (b *Blocks) Create(_ context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if block.ExternalReference != nil && b.byReference(*block.ExternalReference) != nil {
		return nil, blockedDateRepo.ErrDuplicateReference
	}
	copied := *block
	b.blocks[block.ID] = &copied
	return block, nil
}

func (b *Blocks) UpsertShadow(_ context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing := b.byReference(*block.ExternalReference); existing != nil {
		block.ID = existing.ID
	}
	copied := *block
	b.blocks[block.ID] = &copied
	return block, nil
}

func (b *Blocks) byReference(ref string) *domain.BlockedDate {
	for _, block := range b.blocks {
		if block.ExternalReference != nil && *block.ExternalReference == ref {
			return block
		}
	}
	return nil
}

func (b *Blocks) GetByID(_ context.Context, id uuid.UUID) (*domain.BlockedDate, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	block, ok := b.blocks[id]
	if !ok {
		return nil, blockedDateRepo.ErrBlockedDateNotFound
	}
	copied := *block
	return &copied, nil
}

func (b *Blocks) GetByRoom(_ context.Context, roomID int64, window *domain.DateRange) ([]*domain.BlockedDate, error) {
	return b.filter(func(block *domain.BlockedDate) bool {
		return block.RoomID == roomID && (window == nil || block.Range.Overlaps(*window))
	}), nil
}

func (b *Blocks) GetByReference(_ context.Context, reference string) ([]*domain.BlockedDate, error) {
	return b.filter(func(block *domain.BlockedDate) bool {
		return block.ExternalReference != nil && *block.ExternalReference == reference
	}), nil
}

func (b *Blocks) filter(match func(*domain.BlockedDate) bool) []*domain.BlockedDate {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]*domain.BlockedDate, 0)
	for _, block := range b.blocks {
		if match(block) {
			copied := *block
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Range.Start.Before(result[j].Range.Start) })
	return result
}

func (b *Blocks) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var deleted int64
	for _, id := range ids {
		if _, ok := b.blocks[id]; ok {
			delete(b.blocks, id)
			deleted++
		}
	}
	return deleted, nil
}

func (b *Blocks) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, _ := b.DeleteByIDs(ctx, []uuid.UUID{id})
	if deleted == 0 {
		return blockedDateRepo.ErrBlockedDateNotFound
	}
	return nil
}

// All возвращает все блокировки
func (b *Blocks) All() []*domain.BlockedDate {
	return b.filter(func(*domain.BlockedDate) bool { return true })
}

// TxManager выполняет функцию без транзакции, Err подменяет результат
type TxManager struct {
	Err error
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.Err
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Notifier записывает отправленные подтверждения
type Notifier struct {
	mu   sync.Mutex
	Sent []uuid.UUID
	Err  error
}

func (n *Notifier) SendBookingConfirmation(_ context.Context, booking *domain.Booking, _ *domain.Room) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.Err != nil {
		return n.Err
	}
	n.Sent = append(n.Sent, booking.ID)
	return nil
}

// Metrics считает наблюдения доменных метрик
type Metrics struct {
	mu                   sync.Mutex
	Admissions           map[string]int
	Overrides            map[string]int
	NotificationFailures int
}

func NewMetrics() *Metrics {
	return &Metrics{Admissions: make(map[string]int), Overrides: make(map[string]int)}
}

func (m *Metrics) ObserveAdmission(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Admissions[outcome]++
}

func (m *Metrics) ObserveOverride(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if source == "" {
		source = "internal"
	}
	m.Overrides[source]++
}

func (m *Metrics) ObserveNotificationFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotificationFailures++
}

// Logger игнорирует сообщения
type Logger struct{}

func (Logger) Info(string, ...interface{})  {}
func (Logger) Warn(string, ...interface{})  {}
func (Logger) Error(string, ...interface{}) {}

// Clock фиксированное время
type Clock struct {
	T time.Time
}

func (c Clock) Now() time.Time {
	return c.T
}
