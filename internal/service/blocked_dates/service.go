package blocked_dates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/blocked_date"
	roomRepo "github.com/m04kA/SMC-FrontDeskService/internal/infra/storage/room"
	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings/models"
	"github.com/m04kA/SMC-FrontDeskService/pkg/txmanager"
)

// Service сервис административных блокировок дат
type Service struct {
	roomRepo    RoomRepository
	bookingRepo BookingRepository
	blockRepo   BlockedDateRepository
	txManager   TransactionManager
	newID       func() uuid.UUID
	logger      Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	roomRepo RoomRepository,
	bookingRepo BookingRepository,
	blockRepo BlockedDateRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		blockRepo:   blockRepo,
		txManager:   txManager,
		newID:       uuid.New,
		logger:      logger,
	}
}

// Create блокирует даты номера (ремонт, внешний канал продаж).
// Блокировка не может пересекаться с активным бронированием.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("CreateBlockedDate: room=%d, period=%s..%s, user=%d", req.RoomID, req.StartDate, req.EndDate, req.UserID)

	block, err := s.buildBlock(req)
	if err != nil {
		s.logger.Warn("CreateBlockedDate: validation failed for room=%d: %v", req.RoomID, err)
		return nil, err
	}

	var created *domain.BlockedDate
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.roomRepo.LockByID(txCtx, req.RoomID); err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("%w: Create - failed to lock room: %v", ErrInternal, err)
		}

		bookings, err := s.bookingRepo.GetByRoom(txCtx, domain.RoomBookingsFilter{RoomID: req.RoomID, Window: &block.Range})
		if err != nil {
			return fmt.Errorf("%w: Create - failed to get bookings: %v", ErrInternal, err)
		}
		for _, b := range bookings {
			if b.IsActive() && b.Stay.Overlaps(block.Range) {
				return fmt.Errorf("%w: booking #%d %s", ErrOverlapsBooking, b.BookingNumber, b.Stay)
			}
		}

		created, err = s.blockRepo.Create(txCtx, block)
		if err != nil {
			switch {
			case errors.Is(err, blockedDateRepo.ErrDuplicateReference):
				return ErrDuplicateReference
			case errors.Is(err, blockedDateRepo.ErrConflict):
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			return fmt.Errorf("%w: Create - failed to create blocked date: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, txmanager.ErrSerialization):
			s.logger.Warn("CreateBlockedDate: serialization conflict: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		case errors.Is(err, ErrInternal):
			s.logger.Error("CreateBlockedDate: %v", err)
		default:
			s.logger.Warn("CreateBlockedDate: rejected for room=%d: %v", req.RoomID, err)
		}
		return nil, err
	}

	s.logger.Info("CreateBlockedDate: successfully created block id=%s for room=%d", created.ID, created.RoomID)
	return models.FromDomainBlockedDate(created), nil
}

func (s *Service) buildBlock(req *CreateRequest) (*domain.BlockedDate, error) {
	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: roomId must be positive", ErrInvalidInput)
	}

	r, err := domain.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDates, err)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	block := &domain.BlockedDate{
		ID:             s.newID(),
		RoomID:         req.RoomID,
		Range:          r,
		Reason:         reason,
		ExternalSource: trimmed(req.ExternalSource),
		GuestDetails:   trimmed(req.GuestDetails),
	}

	if ref := trimmed(req.ExternalReference); ref != nil {
		block.ExternalReference = ref
		// Ссылки booking:<id> принадлежат теневым блокировкам бронирований
		if block.IsShadow() {
			return nil, fmt.Errorf("%w: externalReference %q is reserved for bookings", ErrInvalidInput, *ref)
		}
	}

	return block, nil
}

// Delete снимает блокировку. Теневая блокировка удаляется только вместе с бронированием.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID int64) error {
	s.logger.Info("DeleteBlockedDate: id=%s, user=%d", id, userID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		block, err := s.blockRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, blockedDateRepo.ErrBlockedDateNotFound) {
				return ErrBlockedDateNotFound
			}
			return fmt.Errorf("%w: Delete - failed to get blocked date: %v", ErrInternal, err)
		}

		if block.IsShadow() {
			return ErrShadowBlock
		}

		if err := s.blockRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, blockedDateRepo.ErrBlockedDateNotFound) {
				return ErrBlockedDateNotFound
			}
			return fmt.Errorf("%w: Delete - failed to delete blocked date: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, txmanager.ErrSerialization):
			s.logger.Warn("DeleteBlockedDate: serialization conflict: %v", err)
			return fmt.Errorf("%w: %v", ErrConflict, err)
		case errors.Is(err, ErrInternal):
			s.logger.Error("DeleteBlockedDate: %v", err)
		default:
			s.logger.Warn("DeleteBlockedDate: id=%s: %v", id, err)
		}
		return err
	}

	s.logger.Info("DeleteBlockedDate: successfully deleted block id=%s", id)
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
