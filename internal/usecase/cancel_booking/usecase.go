package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/admission"
	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/blocked_date"
	bookingRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FrontDeskService/pkg/txmanager"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	blockRepo    BlockedDateRepository
	admission    *admission.Service
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo BlockedDateRepository,
	admissionSvc *admission.Service,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		admission:    admissionSvc,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute удаляет бронирование и освобождает его даты: теневую блокировку
// и блокировку номера с точно такими же датами, если ссылка на бронирование потеряна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%s, cancelled_by=%d", req.BookingID, req.CancelledBy)

	if req.BookingID == uuid.Nil {
		uc.logger.Warn("CancelBooking: validation failed: empty booking id")
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var (
		booking  *domain.Booking
		plan     *admission.CancelPlan
		released int64
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		roomBlocks, err := uc.blockRepo.GetByRoom(txCtx, booking.RoomID, &booking.Stay)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to get blocked dates: %v", err)
			return fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
		}

		// Теневая блокировка могла остаться в другом номере или на других датах
		shadows, err := uc.blockRepo.GetByReference(txCtx, booking.ShadowReference())
		if err != nil {
			uc.logger.Error("CancelBooking: failed to get shadow blocks: %v", err)
			return fmt.Errorf("%w: failed to get shadow blocks: %v", ErrInternal, err)
		}

		plan = uc.admission.Cancel(booking, append(roomBlocks, shadows...), now)

		if err := uc.bookingRepo.Delete(txCtx, plan.BookingToDelete); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			if errors.Is(err, bookingRepo.ErrConflict) {
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			uc.logger.Error("CancelBooking: failed to delete booking: %v", err)
			return fmt.Errorf("%w: failed to delete booking: %v", ErrInternal, err)
		}

		released, err = uc.blockRepo.DeleteByIDs(txCtx, plan.BlockIDs())
		if err != nil {
			if errors.Is(err, blockedDateRepo.ErrConflict) {
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			uc.logger.Error("CancelBooking: failed to delete blocked dates: %v", err)
			return fmt.Errorf("%w: failed to delete blocked dates: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CancelBooking: serialization conflict: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking #%d id=%s, fee=%.2f, released_blocks=%d",
		booking.BookingNumber, booking.ID, plan.Fee, released)

	return &Response{
		BookingID:             booking.ID,
		BookingNumber:         booking.BookingNumber,
		RoomID:                booking.RoomID,
		CheckIn:               booking.Stay.Start,
		CheckOut:              booking.Stay.End,
		Fee:                   plan.Fee,
		FreeCancellationUntil: uc.admission.Policy().Deadline(booking.Stay.Start),
		ReleasedBlocks:        released,
		CancelledAt:           now,
	}, nil
}
