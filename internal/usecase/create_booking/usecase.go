package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FrontDeskService/internal/admission"
	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/blocked_date"
	bookingRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/room"
	"github.com/m04kA/SMC-FrontDeskService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-FrontDeskService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	roomRepo    RoomRepository
	bookingRepo BookingRepository
	blockRepo   BlockedDateRepository
	notifier    NotificationClient
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
	notifier NotificationClient,
	admissionSvc *admission.Service,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		blockRepo:   blockRepo,
		notifier:    notifier,
		admission:   admissionSvc,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и запись выполняются в одной сериализуемой транзакции
// под блокировкой строки номера: либо номер зарезервирован, либо запрос отклонен.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: room=%d, check_in=%s, check_out=%s, tourist=%t, created_by=%d",
		req.RoomID, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat), req.IsTourist, req.CreatedBy)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.ObserveAdmission(outcome(err))
		return nil, err
	}

	stay, err := domain.NewDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid stay: %v", err)
		uc.metrics.ObserveAdmission(string(admission.ReasonInvalidDates))
		return nil, fmt.Errorf("%w: %v", ErrInvalidDates, err)
	}

	var (
		result *admission.Result
		room   *domain.Room
	)

	// 2. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем номер: параллельные бронирования этого номера ждут здесь
		var err error
		room, err = uc.roomRepo.LockByID(txCtx, req.RoomID)
		if err != nil && !errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Error("CreateBooking: failed to lock room id=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to lock room: %v", ErrInternal, err)
		}

		// 2.2. Активные бронирования и блокировки номера, пересекающиеся с датами (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByRoom(txCtx, domain.RoomBookingsFilter{RoomID: req.RoomID, Window: &stay})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		blocks, err := uc.blockRepo.GetByRoom(txCtx, req.RoomID, &stay)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocked dates: %v", err)
			return fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
		}

		// 2.3. Номер бронирования нужен до допуска: им подписывается теневая блокировка
		number, err := uc.bookingRepo.NextBookingNumber(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to allocate booking number: %v", err)
			return fmt.Errorf("%w: failed to allocate booking number: %v", ErrInternal, err)
		}

		// 2.4. Допуск: конфликты, цена, план переопределения блокировок
		result = uc.admission.Admit(admission.Request{
			BookingNumber:     number,
			RoomID:            req.RoomID,
			CheckIn:           req.CheckIn,
			CheckOut:          req.CheckOut,
			Guest:             req.Guest,
			IsTourist:         req.IsTourist,
			BasePricePerNight: req.BasePricePerNight,
			TotalPrice:        req.TotalPrice,
			PaymentStatus:     req.PaymentStatus,
			PaymentMethod:     req.PaymentMethod,
			Notes:             req.Notes,
			CreatedBy:         req.CreatedBy,
		}, admission.Context{Room: room, Bookings: bookings, Blocks: blocks})

		if !result.Admitted() {
			uc.logger.Warn("CreateBooking: rejected: %s", result.Rejection.Error())
			return rejectionError(result.Rejection)
		}

		// 2.5. Сохраняем бронирование
		if _, err := uc.bookingRepo.Create(txCtx, result.Booking); err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) || errors.Is(err, bookingRepo.ErrConflict) {
				uc.logger.Warn("CreateBooking: lost concurrent write for room id=%d: %v", req.RoomID, err)
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 2.6. Применяем план: сначала удаляем конфликтующие блокировки, затем теневую
		return uc.applyPlan(txCtx, result)
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict for room id=%d: %v", req.RoomID, err)
			err = fmt.Errorf("%w: %v", ErrConflict, err)
		}
		uc.metrics.ObserveAdmission(outcome(err))
		return nil, err
	}

	booking := result.Booking
	uc.metrics.ObserveAdmission(string(admission.StateAdmitted))
	for _, released := range result.Plan.ToDelete {
		uc.metrics.ObserveOverride(released.Source())
		if released.Source() != "" {
			uc.logger.Warn("CreateBooking: booking #%d released external block id=%s source=%s range=%s",
				booking.BookingNumber, released.ID, released.Source(), released.Range)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking #%d id=%s, total=%.2f, released_blocks=%d",
		booking.BookingNumber, booking.ID, booking.TotalPrice, len(result.Plan.ToDelete))

	// 3. Подтверждение гостю - после коммита, ошибка не откатывает бронирование
	err = uc.notifier.SendBookingConfirmation(ctx, booking, room)
	switch {
	case err == nil:
	case errors.Is(err, notificationservice.ErrDisabled):
		uc.logger.Info("CreateBooking: confirmations are disabled, booking #%d not notified", booking.BookingNumber)
	default:
		uc.logger.Warn("CreateBooking: failed to send confirmation for booking #%d: %v", booking.BookingNumber, err)
		uc.metrics.ObserveNotificationFailure()
		result.AddWarning(admission.WarningNotificationFailed)
	}

	return &Response{
		Booking:        booking,
		ReleasedBlocks: result.Plan.ToDelete,
		ShadowBlock:    result.Plan.ToCreate,
		Warnings:       result.Warnings,
	}, nil
}

func (uc *UseCase) applyPlan(ctx context.Context, result *admission.Result) error {
	if ids := result.Plan.DeleteIDs(); len(ids) > 0 {
		if _, err := uc.blockRepo.DeleteByIDs(ctx, ids); err != nil {
			return uc.blockError("delete released blocks", err)
		}
	}

	shadow, err := uc.blockRepo.UpsertShadow(ctx, result.Plan.ToCreate)
	if err != nil {
		return uc.blockError("upsert shadow block", err)
	}
	result.Plan.ToCreate = shadow
	return nil
}

func (uc *UseCase) blockError(op string, err error) error {
	if errors.Is(err, blockedDateRepo.ErrConflict) {
		uc.logger.Warn("CreateBooking: lost concurrent write on %s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	uc.logger.Error("CreateBooking: failed to %s: %v", op, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
}

// outcome метка метрики для неуспешной попытки
func outcome(err error) string {
	switch {
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrRoomUnavailable):
		return string(admission.ReasonRoomUnavailable)
	case errors.Is(err, ErrRoomNotFound):
		return string(admission.ReasonRoomNotFound)
	case errors.Is(err, ErrInvalidDates):
		return string(admission.ReasonInvalidDates)
	case errors.Is(err, ErrMissingGuestInfo):
		return string(admission.ReasonMissingGuestInfo)
	case errors.Is(err, ErrInvalidInput):
		return string(admission.ReasonInvalidInput)
	default:
		return "error"
	}
}
