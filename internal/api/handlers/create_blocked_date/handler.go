package create_blocked_date

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FrontDeskService/internal/api/handlers"
	"github.com/m04kA/SMC-FrontDeskService/internal/api/middleware"
	blockedDates "github.com/m04kA/SMC-FrontDeskService/internal/service/blocked_dates"
)

const (
	msgInvalidRoomID      = "некорректный ID номера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDates       = "укажите startDate < endDate в формате YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные блокировки"
	msgRoomNotFound       = "номер не найден"
	msgOverlapsBooking    = "даты пересекаются с активным бронированием"
	msgDuplicateReference = "блокировка с такой внешней ссылкой уже существует"
	msgConflict           = "номер изменен другим запросом, повторите попытку"
)

type Handler struct {
	service BlockedDateService
	logger  Logger
}

func NewHandler(service BlockedDateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/rooms/{roomId}/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /rooms/{id}/blocked-dates - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /rooms/{id}/blocked-dates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req blockedDates.CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms/{id}/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.RoomID = roomID
	req.UserID = userID

	block, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, blockedDates.ErrInvalidDates):
			handlers.RespondBadRequest(w, msgInvalidDates)
		case errors.Is(err, blockedDates.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, blockedDates.ErrRoomNotFound):
			handlers.RespondNotFound(w, msgRoomNotFound)
		case errors.Is(err, blockedDates.ErrOverlapsBooking):
			handlers.RespondConflict(w, msgOverlapsBooking)
		case errors.Is(err, blockedDates.ErrDuplicateReference):
			handlers.RespondConflict(w, msgDuplicateReference)
		case errors.Is(err, blockedDates.ErrConflict):
			handlers.RespondConflict(w, msgConflict)
		default:
			h.logger.Error("POST /rooms/{id}/blocked-dates - Failed to create blocked date: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms/{id}/blocked-dates - Blocked date created: id=%s, room_id=%d, user_id=%d",
		block.ID, roomID, userID)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
