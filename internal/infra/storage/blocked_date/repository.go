package blocked_date

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FrontDeskService/internal/domain"
	"github.com/m04kA/SMC-FrontDeskService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FrontDeskService/pkg/pgerr"
	"github.com/m04kA/SMC-FrontDeskService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"room_id",
	"start_date",
	"end_date",
	"reason",
	"external_source",
	"external_reference",
	"guest_details",
	"created_at",
}

// Repository репозиторий заблокированных дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку (администратором или синхронизацией внешнего канала)
func (r *Repository) Create(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns(columns[:len(columns)-1]...).
		Values(
			block.ID,
			block.RoomID,
			block.Range.Start,
			block.Range.End,
			block.Reason,
			block.ExternalSource,
			block.ExternalReference,
			block.GuestDetails,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - reference %v", ErrDuplicateReference, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", classify(err, ErrExecQuery), err)
	}

	block.CreatedAt = createdAt.Time
	return block, nil
}

// UpsertShadow создает теневую блокировку бронирования или обновляет существующую
// с тем же external_reference. Повторное применение ничего не меняет.
func (r *Repository) UpsertShadow(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error) {
	if block.ExternalReference == nil {
		return nil, fmt.Errorf("%w: UpsertShadow - external reference is required", ErrBuildQuery)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns(columns[:len(columns)-1]...).
		Values(
			block.ID,
			block.RoomID,
			block.Range.Start,
			block.Range.End,
			block.Reason,
			block.ExternalSource,
			block.ExternalReference,
			block.GuestDetails,
		).
		Suffix("ON CONFLICT (external_reference) DO UPDATE SET " +
			"room_id = EXCLUDED.room_id, start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date, reason = EXCLUDED.reason " +
			"RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertShadow - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertShadow - execute upsert: %v", classify(err, ErrExecQuery), err)
	}

	block.CreatedAt = createdAt.Time
	return block, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("blocked_dates").
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockedDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan blocked date: %v", classify(err, ErrScanRow), err)
	}

	return block, nil
}

// GetByRoom получает блокировки номера, опционально пересекающиеся с окном.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) GetByRoom(ctx context.Context, roomID int64, window *domain.DateRange) ([]*domain.BlockedDate, error) {
	builder := psqlbuilder.Select(columns...).
		From("blocked_dates").
		Where(squirrel.Eq{"room_id": roomID})
	if window != nil {
		builder = builder.
			Where(squirrel.Lt{"start_date": window.End}).
			Where(squirrel.Gt{"end_date": window.Start})
	}

	return r.list(ctx, "GetByRoom", builder)
}

// GetByReference получает блокировки с указанным external_reference (теневые блокировки бронирования)
func (r *Repository) GetByReference(ctx context.Context, reference string) ([]*domain.BlockedDate, error) {
	builder := psqlbuilder.Select(columns...).
		From("blocked_dates").
		Where(squirrel.Eq{"external_reference": reference})

	return r.list(ctx, "GetByReference", builder)
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder = builder.OrderBy("start_date ASC")
	if dbmetrics.ShouldLockRows(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", classify(err, ErrExecQuery), op, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan blocked date: %v", ErrScanRow, op, err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", classify(err, ErrExecQuery), op, err)
	}

	return blocks, nil
}

// DeleteByIDs удаляет блокировки по списку ID. Отсутствующие строки пропускаются,
// поэтому повторное применение плана переопределения безопасно.
func (r *Repository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"id": values}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - execute delete: %v", classify(err, ErrExecQuery), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Delete удаляет одну блокировку
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := r.DeleteByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrBlockedDateNotFound
	}
	return nil
}

func classify(err error, fallback error) error {
	if pgerr.IsConcurrencyConflict(err) {
		return ErrConflict
	}
	return fallback
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(s scanner) (*domain.BlockedDate, error) {
	var (
		b          domain.BlockedDate
		start, end time.Time
		createdAt  sql.NullTime
	)

	err := s.Scan(
		&b.ID,
		&b.RoomID,
		&start,
		&end,
		&b.Reason,
		&b.ExternalSource,
		&b.ExternalReference,
		&b.GuestDetails,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.Range, err = domain.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	b.CreatedAt = createdAt.Time
	return &b, nil
}
