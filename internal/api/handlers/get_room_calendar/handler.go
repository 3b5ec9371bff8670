package get_room_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FrontDeskService/internal/api/handlers"
	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings"
	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings/models"
)

const (
	msgInvalidRoomID = "некорректный ID номера"
	msgInvalidPeriod = "укажите период from < to в формате YYYY-MM-DD"
	msgInvalidFlag   = "некорректное значение includeCanceled"
	msgRoomNotFound  = "номер не найден"
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

// Handle GET /api/v1/rooms/{roomId}/calendar?from=2025-10-01&to=2025-11-01[&includeCanceled=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/calendar - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()
	req := &models.CalendarRequest{
		RoomID: roomID,
		From:   query.Get("from"),
		To:     query.Get("to"),
	}
	if raw := query.Get("includeCanceled"); raw != "" {
		req.IncludeCanceled, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /rooms/{id}/calendar - Invalid includeCanceled: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
	}

	calendar, err := h.service.GetRoomCalendar(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidDates):
			h.logger.Warn("GET /rooms/{id}/calendar - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, bookings.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/calendar - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("GET /rooms/{id}/calendar - Failed to get calendar: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/calendar - Calendar retrieved: room_id=%d, bookings=%d, blocked_dates=%d",
		roomID, len(calendar.Bookings), len(calendar.BlockedDates))
	handlers.RespondJSON(w, http.StatusOK, calendar)
}
