package delete_blocked_date

import (
	"context"

	"github.com/google/uuid"
)

type BlockedDateService interface {
	Delete(ctx context.Context, id uuid.UUID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
