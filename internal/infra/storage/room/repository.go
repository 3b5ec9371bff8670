package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FrontDeskService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"number",
	"name",
	"base_price_per_night",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий номеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория номеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает номер по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	return r.get(ctx, id, false)
}

// LockByID получает номер и блокирует строку до конца транзакции (SELECT ... FOR UPDATE).
// Сериализует конкурентные бронирования одного номера. Вне транзакции работает как GetByID.
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.Room, error) {
	return r.get(ctx, id, dbmetrics.ShouldLockRows(ctx))
}

func (r *Repository) get(ctx context.Context, id int64, forUpdate bool) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("rooms").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room id=%d: %v", ErrScanRow, id, err)
	}

	return room, nil
}

// List возвращает номера, отсортированные по номеру. onlyActive скрывает выведенные из эксплуатации
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("rooms").
		OrderBy("number ASC")
	if onlyActive {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan room: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return rooms, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(s scanner) (*domain.Room, error) {
	var (
		room                 domain.Room
		createdAt, updatedAt sql.NullTime
	)

	err := s.Scan(
		&room.ID,
		&room.Number,
		&room.Name,
		&room.BasePricePerNight,
		&room.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time
	return &room, nil
}
