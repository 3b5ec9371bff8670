package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FrontDeskService/internal/api/handlers"
	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings"
	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings/models"
)

const (
	msgInvalidRoomID    = "некорректный ID номера"
	msgInvalidBookingID = "некорректный ID исключаемого бронирования"
	msgInvalidDates     = "укажите checkIn < checkOut в формате YYYY-MM-DD"
	msgRoomNotFound     = "номер не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability?checkIn=...&checkOut=...[&excludeBookingId=...]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()
	req := &models.AvailabilityRequest{
		RoomID:   roomID,
		CheckIn:  query.Get("checkIn"),
		CheckOut: query.Get("checkOut"),
	}

	// При редактировании бронирование не конфликтует само с собой
	if raw := query.Get("excludeBookingId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /rooms/{id}/availability - Invalid excludeBookingId: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)
			return
		}
		req.ExcludeBookingID = &id
	}

	result, err := h.service.CheckAvailability(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidDates):
			h.logger.Warn("GET /rooms/{id}/availability - Invalid dates: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, bookings.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/availability - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("GET /rooms/{id}/availability - Failed to check availability: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/availability - room_id=%d, available=%t", roomID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, result)
}
