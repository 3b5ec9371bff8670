package delete_blocked_date

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FrontDeskService/internal/api/handlers"
	"github.com/m04kA/SMC-FrontDeskService/internal/api/middleware"
	blockedDates "github.com/m04kA/SMC-FrontDeskService/internal/service/blocked_dates"
)

const (
	msgInvalidBlockID = "некорректный ID блокировки"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "блокировка не найдена"
	msgShadowBlock    = "блокировка принадлежит бронированию, отмените бронирование"
	msgConflict       = "блокировка изменена другим запросом, повторите попытку"
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

// Handle DELETE /api/v1/blocked-dates/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	blockID, err := uuid.Parse(mux.Vars(r)["blockId"])
	if err != nil {
		h.logger.Warn("DELETE /blocked-dates/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /blocked-dates/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), blockID, userID); err != nil {
		switch {
		case errors.Is(err, blockedDates.ErrBlockedDateNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, blockedDates.ErrShadowBlock):
			handlers.RespondConflict(w, msgShadowBlock)
		case errors.Is(err, blockedDates.ErrConflict):
			handlers.RespondConflict(w, msgConflict)
		default:
			h.logger.Error("DELETE /blocked-dates/{id} - Failed to delete blocked date: id=%s, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blocked-dates/{id} - Blocked date deleted: id=%s, user_id=%d", blockID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
