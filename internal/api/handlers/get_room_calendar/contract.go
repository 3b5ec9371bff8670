package get_room_calendar

import (
	"context"

	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings/models"
)

type BookingService interface {
	GetRoomCalendar(ctx context.Context, req *models.CalendarRequest) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
