package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/availability"
	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/blocked_date"
	bookingRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/room"
	"github.com/m04kA/SMC-FrontDeskService/internal/pricing"
	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings/models"
	"github.com/m04kA/SMC-FrontDeskService/pkg/txmanager"
)

// Service сервис чтения бронирований, календаря номера и изменения оплаты
type Service struct {
	roomRepo    RoomRepository
	bookingRepo BookingRepository
	blockRepo   BlockedDateRepository
	calculator  *pricing.Calculator
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	roomRepo RoomRepository,
	bookingRepo BookingRepository,
	blockRepo BlockedDateRepository,
	calculator *pricing.Calculator,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		blockRepo:   blockRepo,
		calculator:  calculator,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// UpdatePaymentStatus меняет статус и способ оплаты.
// Статус canceled конечный: бронирование перестает занимать номер, его теневая блокировка удаляется.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, req *models.UpdatePaymentRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdatePaymentStatus: booking id=%s, status=%s, user=%d", id, req.PaymentStatus, req.UserID)

	status, ok := models.ToDomainPaymentStatus(req.PaymentStatus)
	if !ok {
		s.logger.Warn("UpdatePaymentStatus: invalid status=%q for booking id=%s", req.PaymentStatus, id)
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, req.PaymentStatus)
	}

	var updated *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("UpdatePaymentStatus: booking id=%s not found", id)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdatePaymentStatus - failed to get booking: %v", ErrInternal, err)
		}

		if !booking.IsActive() {
			s.logger.Warn("UpdatePaymentStatus: booking id=%s is already canceled", id)
			return ErrAlreadyCanceled
		}

		if err := s.bookingRepo.UpdatePayment(txCtx, id, status, req.PaymentMethod); err != nil {
			if errors.Is(err, bookingRepo.ErrConflict) {
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			return fmt.Errorf("%w: UpdatePaymentStatus - failed to update payment: %v", ErrInternal, err)
		}

		if status == domain.PaymentStatusCanceled {
			released, err := s.releaseShadow(txCtx, booking)
			if err != nil {
				return err
			}
			s.logger.Info("UpdatePaymentStatus: booking #%d canceled, released %d blocks", booking.BookingNumber, released)
		}

		updated, err = s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: UpdatePaymentStatus - failed to reload booking: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			s.logger.Warn("UpdatePaymentStatus: serialization conflict: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdatePaymentStatus: %v", err)
		}
		return nil, err
	}

	s.logger.Info("UpdatePaymentStatus: successfully updated booking id=%s to status=%s", id, status)
	return models.FromDomainBooking(updated), nil
}

func (s *Service) releaseShadow(ctx context.Context, booking *domain.Booking) (int64, error) {
	shadows, err := s.blockRepo.GetByReference(ctx, booking.ShadowReference())
	if err != nil {
		return 0, fmt.Errorf("%w: releaseShadow - failed to get shadow blocks: %v", ErrInternal, err)
	}
	if len(shadows) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(shadows))
	for _, b := range shadows {
		ids = append(ids, b.ID)
	}

	released, err := s.blockRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, blockedDateRepo.ErrConflict) {
			return 0, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return 0, fmt.Errorf("%w: releaseShadow - failed to delete shadow blocks: %v", ErrInternal, err)
	}
	return released, nil
}

// GetRoomCalendar возвращает бронирования и блокировки номера, пересекающиеся с периодом
func (s *Service) GetRoomCalendar(ctx context.Context, req *models.CalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("GetRoomCalendar: room=%d, period=%s..%s", req.RoomID, req.From, req.To)

	window, err := domain.ParseDateRange(req.From, req.To)
	if err != nil {
		s.logger.Warn("GetRoomCalendar: invalid period for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDates, err)
	}

	var (
		bookings []*domain.Booking
		blocks   []*domain.BlockedDate
	)

	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		if err := s.ensureRoom(txCtx, req.RoomID); err != nil {
			return err
		}

		var err error
		bookings, err = s.bookingRepo.GetByRoom(txCtx, domain.RoomBookingsFilter{
			RoomID:          req.RoomID,
			Window:          &window,
			IncludeInactive: req.IncludeCanceled,
		})
		if err != nil {
			return fmt.Errorf("%w: GetRoomCalendar - failed to get bookings: %v", ErrInternal, err)
		}

		blocks, err = s.blockRepo.GetByRoom(txCtx, req.RoomID, &window)
		if err != nil {
			return fmt.Errorf("%w: GetRoomCalendar - failed to get blocked dates: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("GetRoomCalendar: %v", err)
		}
		return nil, err
	}

	s.logger.Info("GetRoomCalendar: room=%d has %d bookings and %d blocked dates", req.RoomID, len(bookings), len(blocks))
	return &models.CalendarResponse{
		RoomID:       req.RoomID,
		From:         window.Start.Format(domain.DateFormat),
		To:           window.End.Format(domain.DateFormat),
		Bookings:     models.FromDomainBookingList(bookings),
		BlockedDates: models.FromDomainBlockedDateList(blocks),
	}, nil
}

// CheckAvailability проверяет, можно ли забронировать номер на даты.
// Номер недоступен только из-за других бронирований; пересекающиеся блокировки будут сняты.
func (s *Service) CheckAvailability(ctx context.Context, req *models.AvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("CheckAvailability: room=%d, stay=%s..%s", req.RoomID, req.CheckIn, req.CheckOut)

	stay, err := domain.ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		s.logger.Warn("CheckAvailability: invalid stay for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDates, err)
	}
	nights, err := stay.Nights()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDates, err)
	}

	var (
		room     *domain.Room
		bookings []*domain.Booking
		blocks   []*domain.BlockedDate
	)

	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		room, err = s.roomRepo.GetByID(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("%w: CheckAvailability - failed to get room: %v", ErrInternal, err)
		}

		bookings, err = s.bookingRepo.GetByRoom(txCtx, domain.RoomBookingsFilter{RoomID: req.RoomID, Window: &stay})
		if err != nil {
			return fmt.Errorf("%w: CheckAvailability - failed to get bookings: %v", ErrInternal, err)
		}

		blocks, err = s.blockRepo.GetByRoom(txCtx, req.RoomID, &stay)
		if err != nil {
			return fmt.Errorf("%w: CheckAvailability - failed to get blocked dates: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			s.logger.Warn("CheckAvailability: room=%d not found", req.RoomID)
		} else {
			s.logger.Error("CheckAvailability: %v", err)
		}
		return nil, err
	}

	conflicts := availability.CheckAvailability(req.RoomID, stay, bookings, blocks, req.ExcludeBookingID)
	available := room.IsActive && !conflicts.HasBookings()

	s.logger.Info("CheckAvailability: room=%d available=%t, conflicting bookings=%d, blocks=%d",
		req.RoomID, available, len(conflicts.Bookings), len(conflicts.Blocks))

	return &models.AvailabilityResponse{
		RoomID:              req.RoomID,
		CheckIn:             stay.Start.Format(domain.DateFormat),
		CheckOut:            stay.End.Format(domain.DateFormat),
		Nights:              nights,
		Available:           available,
		ConflictingBookings: models.FromDomainBookingList(conflicts.Bookings),
		BlocksToRelease:     models.FromDomainBlockedDateList(conflicts.Blocks),
	}, nil
}

// PriceQuote рассчитывает стоимость проживания без обращения к хранилищу.
// Если указана итоговая сумма, цена за ночь выводится из нее.
func (s *Service) PriceQuote(_ context.Context, req *models.PriceQuoteRequest) (*models.PriceQuoteResponse, error) {
	var (
		quote domain.PriceQuote
		err   error
	)

	switch {
	case req.TotalPrice != nil:
		quote, err = s.calculator.QuoteFromTotal(*req.TotalPrice, req.Nights, req.IsTourist)
	case req.BasePricePerNight != nil:
		quote, err = s.calculator.Quote(*req.BasePricePerNight, req.Nights, req.IsTourist)
	default:
		return nil, fmt.Errorf("%w: basePricePerNight or totalPrice is required", ErrInvalidInput)
	}
	if err != nil {
		s.logger.Warn("PriceQuote: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return models.FromDomainQuote(quote), nil
}

func (s *Service) ensureRoom(ctx context.Context, roomID int64) error {
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("ensureRoom: room=%d not found", roomID)
			return ErrRoomNotFound
		}
		return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	return nil
}
