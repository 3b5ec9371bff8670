package quote_price

import (
	"context"

	"github.com/m04kA/SMC-FrontDeskService/internal/service/bookings/models"
)

type BookingService interface {
	PriceQuote(ctx context.Context, req *models.PriceQuoteRequest) (*models.PriceQuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
