package create_blocked_date

import (
	"context"

	blockedDates "github.com/m04kA/SMC-FrontDeskService/internal/service/blocked_dates"
	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings/models"
)

type BlockedDateService interface {
	Create(ctx context.Context, req *blockedDates.CreateRequest) (*models.BlockedDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
