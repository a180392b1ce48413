package block

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий ручных блокировок времени
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую ручную блокировку
// Если в контексте передана активная транзакция (через context.Value), использует её
// Usecase создания блокировки вызывает Create внутри сериализуемой транзакции
// вместе с проверкой конфликтов, чтобы исключить гонку с параллельным бронированием
func (r *Repository) Create(ctx context.Context, timeBlock *domain.TimeBlock) (*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_blocks").
		Columns(
			"salon_id",
			"master_id",
			"date",
			"start_time",
			"end_time",
			"label",
		).
		Values(
			timeBlock.SalonID,
			timeBlock.MasterID,
			timeBlock.Date,
			timeBlock.StartTime,
			timeBlock.EndTime,
			timeBlock.Label,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&timeBlock.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	timeBlock.CreatedAt = createdAt.Time
	timeBlock.UpdatedAt = updatedAt.Time

	return timeBlock, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := blockSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var timeBlock domain.TimeBlock
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&timeBlock.ID,
		&timeBlock.SalonID,
		&timeBlock.MasterID,
		&timeBlock.Date,
		&timeBlock.StartTime,
		&timeBlock.EndTime,
		&timeBlock.Label,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}

	timeBlock.CreatedAt = createdAt.Time
	timeBlock.UpdatedAt = updatedAt.Time

	return &timeBlock, nil
}

// GetWithFilter получает блокировки мастера за период
// Внутри транзакции на конкретную дату блокирует строки (FOR UPDATE)
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.TimeBlocksFilter) ([]*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := blockSelect().
		Where(squirrel.Eq{"master_id": filter.MasterID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}

	selectBuilder = selectBuilder.OrderBy("date ASC, start_time ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.TimeBlock, 0)

	for rows.Next() {
		var timeBlock domain.TimeBlock
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&timeBlock.ID,
			&timeBlock.SalonID,
			&timeBlock.MasterID,
			&timeBlock.Date,
			&timeBlock.StartTime,
			&timeBlock.EndTime,
			&timeBlock.Label,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetWithFilter - scan row: %v", ErrScanRow, err)
		}

		timeBlock.CreatedAt = createdAt.Time
		timeBlock.UpdatedAt = updatedAt.Time

		blocks = append(blocks, &timeBlock)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// Delete удаляет ручную блокировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

func blockSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"salon_id",
		"master_id",
		"date",
		"start_time",
		"end_time",
		"label",
		"created_at",
		"updated_at",
	).From("time_blocks")
}
