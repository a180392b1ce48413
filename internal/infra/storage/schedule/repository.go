package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Типы владельцев недельного расписания
const (
	ownerSalon  = "salon"
	ownerMaster = "master"
)

// Repository репозиторий недельных расписаний и исключений по датам
// Расписания принадлежат сервису управления салонами; ядро только читает их
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSalonSchedule получает недельное расписание салона (уровень по умолчанию)
// Отсутствие строк - валидное состояние: возвращается пустое расписание
func (r *Repository) GetSalonSchedule(ctx context.Context, salonID int64) (domain.WeeklySchedule, error) {
	return r.getWeekly(ctx, ownerSalon, salonID)
}

// GetMasterSchedule получает персональное недельное расписание мастера
// Отсутствие строк означает, что мастер работает по расписанию салона
func (r *Repository) GetMasterSchedule(ctx context.Context, masterID int64) (domain.WeeklySchedule, error) {
	return r.getWeekly(ctx, ownerMaster, masterID)
}

func (r *Repository) getWeekly(ctx context.Context, ownerType string, ownerID int64) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"enabled",
		"start_time",
		"end_time",
	).
		From("weekly_schedules").
		Where(squirrel.Eq{"owner_type": ownerType, "owner_id": ownerID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getWeekly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWeekly - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	weekly := make(domain.WeeklySchedule)

	for rows.Next() {
		var (
			weekday int
			day     domain.DaySchedule
		)

		if err := rows.Scan(&weekday, &day.Enabled, &day.Start, &day.End); err != nil {
			return nil, fmt.Errorf("%w: getWeekly - scan row: %v", ErrScanRow, err)
		}

		weekly[time.Weekday(weekday)] = day
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWeekly - rows error: %v", ErrScanRow, err)
	}

	return weekly, nil
}

// GetOverride получает исключение из расписания мастера на конкретную дату
// Уникальность (master_id, date) обеспечивается индексом в БД
func (r *Repository) GetOverride(ctx context.Context, masterID int64, date time.Time) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := overrideSelect().
		Where(squirrel.Eq{"master_id": masterID, "date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %v", ErrBuildQuery, err)
	}

	override, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - scan override: %v", ErrScanRow, err)
	}

	return override, nil
}

// GetOverridesForRange получает все исключения мастера за период
// Используется bulk-запросом доступности, чтобы не ходить в БД на каждую дату
func (r *Repository) GetOverridesForRange(ctx context.Context, masterID int64, startDate, endDate time.Time) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := overrideSelect().
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.GtOrEq{"date": startDate}).
		Where(squirrel.LtOrEq{"date": endDate}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesForRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesForRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DateOverride, 0)

	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOverridesForRange - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverridesForRange - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

func overrideSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"master_id",
		"date",
		"is_working",
		"start_time",
		"end_time",
		"reason",
		"created_at",
		"updated_at",
	).From("date_overrides")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanOverride сканирует строку исключения
// Опциональные start_time/end_time читаются через sql.NullString,
// так как Postgres возвращает NULL для унаследованных часов
func scanOverride(row rowScanner) (*domain.DateOverride, error) {
	var (
		override             domain.DateOverride
		startRaw, endRaw     sql.NullString
		reason               sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&override.ID,
		&override.MasterID,
		&override.Date,
		&override.IsWorking,
		&startRaw,
		&endRaw,
		&reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startRaw.Valid {
		ts, err := parseStoredTime(startRaw.String)
		if err != nil {
			return nil, err
		}
		override.Start = &ts
	}
	if endRaw.Valid {
		ts, err := parseStoredTime(endRaw.String)
		if err != nil {
			return nil, err
		}
		override.End = &ts
	}
	if reason.Valid {
		override.Reason = &reason.String
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}

// parseStoredTime преобразует значение времени из БД (HH:MM или HH:MM:SS)
func parseStoredTime(s string) (types.TimeString, error) {
	if len(s) > 5 {
		s = s[:5]
	}
	return types.NewTimeStringFromString(s)
}
