package update_payment_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings/models"
)

type BookingService interface {
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, req *models.UpdatePaymentRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
