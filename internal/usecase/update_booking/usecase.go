package update_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-FrontDeskService/internal/admission"
	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/blocked_date"
	bookingRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/room"
	"github.com/m04kA/SMC-FrontDeskService/pkg/txmanager"
)

// UseCase use case для изменения бронирования (даты, номер, гость, цена)
type UseCase struct {
	roomRepo    RoomRepository
	bookingRepo BookingRepository
	blockRepo   BlockedDateRepository
	admission   *admission.Service
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roomRepo RoomRepository,
	bookingRepo BookingRepository,
	blockRepo BlockedDateRepository,
	admissionSvc *admission.Service,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		blockRepo:   blockRepo,
		admission:   admissionSvc,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute применяет изменения и заново проходит допуск, исключая само бронирование
// и его теневую блокировку. При смене номера или дат теневая блокировка пересоздается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%s, updated_by=%d", req.BookingID, req.UpdatedBy)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		result   *admission.Result
		existing *domain.Booking
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Текущее состояние бронирования (FOR UPDATE)
		var err error
		existing, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		admissionReq := merge(existing, req)

		stay, err := domain.NewDateRange(admissionReq.CheckIn, admissionReq.CheckOut)
		if err != nil {
			uc.logger.Warn("UpdateBooking: invalid stay: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidDates, err)
		}

		// 2. Блокируем номера в порядке ID: старый и новый при переносе
		room, err := uc.lockRooms(txCtx, existing.RoomID, admissionReq.RoomID)
		if err != nil {
			return err
		}

		// 3. Бронирования и блокировки целевого номера + текущая теневая блокировка
		bookings, err := uc.bookingRepo.GetByRoom(txCtx, domain.RoomBookingsFilter{RoomID: admissionReq.RoomID, Window: &stay})
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		blocks, err := uc.blockRepo.GetByRoom(txCtx, admissionReq.RoomID, &stay)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get blocked dates: %v", err)
			return fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
		}

		shadows, err := uc.blockRepo.GetByReference(txCtx, existing.ShadowReference())
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get shadow blocks: %v", err)
			return fmt.Errorf("%w: failed to get shadow blocks: %v", ErrInternal, err)
		}

		// 4. Повторный допуск
		result = uc.admission.Admit(admissionReq, admission.Context{
			Room:     room,
			Bookings: bookings,
			Blocks:   mergeBlocks(blocks, shadows),
		})
		if !result.Admitted() {
			uc.logger.Warn("UpdateBooking: rejected: %s", result.Rejection.Error())
			return rejectionError(result.Rejection)
		}

		// 5. Сохраняем и применяем план блокировок
		if _, err := uc.bookingRepo.Update(txCtx, result.Booking); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrOverlap), errors.Is(err, bookingRepo.ErrConflict):
				uc.logger.Warn("UpdateBooking: lost concurrent write: %v", err)
				return fmt.Errorf("%w: %v", ErrConflict, err)
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to update booking: %v", err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		if ids := result.Plan.DeleteIDs(); len(ids) > 0 {
			if _, err := uc.blockRepo.DeleteByIDs(txCtx, ids); err != nil {
				return uc.blockError("delete released blocks", err)
			}
		}

		shadow, err := uc.blockRepo.UpsertShadow(txCtx, result.Plan.ToCreate)
		if err != nil {
			return uc.blockError("upsert shadow block", err)
		}
		result.Plan.ToCreate = shadow
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("UpdateBooking: serialization conflict: %v", err)
			err = fmt.Errorf("%w: %v", ErrConflict, err)
		}
		if result != nil && result.Rejection != nil {
			uc.metrics.ObserveAdmission(string(result.Rejection.Reason))
		} else if errors.Is(err, ErrConflict) {
			uc.metrics.ObserveAdmission("conflict")
		}
		return nil, err
	}

	booking := result.Booking
	uc.metrics.ObserveAdmission(string(admission.StateAdmitted))

	released := make([]*domain.BlockedDate, 0, len(result.Plan.ToDelete))
	for _, b := range result.Plan.ToDelete {
		if b.IsShadowOf(booking.ID) {
			continue
		}
		released = append(released, b)
		uc.metrics.ObserveOverride(b.Source())
		if b.Source() != "" {
			uc.logger.Warn("UpdateBooking: booking #%d released external block id=%s source=%s range=%s",
				booking.BookingNumber, b.ID, b.Source(), b.Range)
		}
	}

	repriced := booking.Quote() != existing.Quote()
	uc.logger.Info("UpdateBooking: successfully updated booking #%d id=%s, stay=%s, total=%.2f, repriced=%t",
		booking.BookingNumber, booking.ID, booking.Stay, booking.TotalPrice, repriced)

	return &Response{
		Booking:        booking,
		ReleasedBlocks: released,
		ShadowBlock:    result.Plan.ToCreate,
		Repriced:       repriced,
	}, nil
}

// lockRooms блокирует исходный и целевой номер по возрастанию ID и возвращает целевой.
// Ненайденный целевой номер возвращается как nil - отказ сформирует допуск.
func (uc *UseCase) lockRooms(ctx context.Context, fromID, toID int64) (*domain.Room, error) {
	ids := []int64{fromID}
	if toID != fromID {
		ids = append(ids, toID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var target *domain.Room
	for _, id := range ids {
		room, err := uc.roomRepo.LockByID(ctx, id)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				continue
			}
			uc.logger.Error("UpdateBooking: failed to lock room id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to lock room: %v", ErrInternal, err)
		}
		if id == toID {
			target = room
		}
	}
	return target, nil
}

func (uc *UseCase) blockError(op string, err error) error {
	if errors.Is(err, blockedDateRepo.ErrConflict) {
		uc.logger.Warn("UpdateBooking: lost concurrent write on %s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	uc.logger.Error("UpdateBooking: failed to %s: %v", op, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
}

// merge накладывает изменения на текущее бронирование
func merge(existing *domain.Booking, req *Request) admission.Request {
	out := admission.Request{
		Existing:          existing,
		RoomID:            existing.RoomID,
		CheckIn:           existing.Stay.Start,
		CheckOut:          existing.Stay.End,
		Guest:             existing.Guest,
		IsTourist:         existing.IsTourist,
		BasePricePerNight: req.BasePricePerNight,
		TotalPrice:        req.TotalPrice,
		PaymentMethod:     req.PaymentMethod,
		Notes:             req.Notes,
	}

	if req.RoomID != nil {
		out.RoomID = *req.RoomID
	}
	if req.CheckIn != nil {
		out.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		out.CheckOut = *req.CheckOut
	}
	if req.GuestName != nil {
		out.Guest.Name = *req.GuestName
	}
	if req.GuestPhone != nil {
		out.Guest.Phone = *req.GuestPhone
	}
	if req.GuestEmail != nil {
		out.Guest.Email = *req.GuestEmail
	}
	if req.IsTourist != nil {
		out.IsTourist = *req.IsTourist
	}
	if req.PaymentStatus != nil {
		out.PaymentStatus = *req.PaymentStatus
	}

	return out
}

func mergeBlocks(blocks, extra []*domain.BlockedDate) []*domain.BlockedDate {
	seen := make(map[string]struct{}, len(blocks))
	result := make([]*domain.BlockedDate, 0, len(blocks)+len(extra))
	for _, list := range [][]*domain.BlockedDate{blocks, extra} {
		for _, b := range list {
			key := b.ID.String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, b)
		}
	}
	return result
}
