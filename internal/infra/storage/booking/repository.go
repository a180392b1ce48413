package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий бронирований
// Ядро расписания только читает бронирования: создаёт и изменяет их
// внешний сервис бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := bookingSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.SalonID,
		&booking.MasterID,
		&booking.ClientID,
		&booking.Date,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.ClientName,
		&booking.ServiceName,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// GetWithFilter получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по мастеру, периоду и статусу
//
// Примеры использования:
//
// 1. Активные бронирования мастера на дату (для генерации слотов):
//    filter := domain.MasterBookingsFilter{SalonID: 1, MasterID: &masterID, StartDate: &date, EndDate: &date}
//
// 2. Активные бронирования мастера за период (bulk-доступность):
//    filter := domain.MasterBookingsFilter{SalonID: 1, MasterID: &masterID, StartDate: &from, EndDate: &to}
//
// 3. Все бронирования салона включая отменённые:
//    filter := domain.MasterBookingsFilter{SalonID: 1, IncludeInactive: true}
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := bookingSelect().
		Where(squirrel.Eq{"salon_id": filter.SalonID})

	// Фильтрация по мастеру (если указан)
	if filter.MasterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"master_id": *filter.MasterID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	// Для конкретной даты сортируем по времени начала, для периода - по дате
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("date ASC, start_time ASC")
	}

	// Внутри транзакции блокируем строки на конкретную дату
	// (используется usecase создания ручной блокировки)
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

	return r.scanBookings(rows)
}

// GetForReminders получает бронирования салона на указанные даты для рассылки напоминаний
// Исключает статусы, по которым напоминания не отправляются (отменённые, pending, no-show)
// Даты передаются списком, так как окно допуска может пересекать полночь
func (r *Repository) GetForReminders(ctx context.Context, salonID int64, dates []time.Time) ([]*domain.Booking, error) {
	if len(dates) == 0 {
		return []*domain.Booking{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	skipStatusStrings := make([]string, len(domain.ReminderSkipStatuses))
	for i, s := range domain.ReminderSkipStatuses {
		skipStatusStrings[i] = string(s)
	}

	query, args, err := bookingSelect().
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"date": dates}).
		Where(squirrel.NotEq{"status": skipStatusStrings}).
		OrderBy("date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForReminders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.SalonID,
			&booking.MasterID,
			&booking.ClientID,
			&booking.Date,
			&booking.StartTime,
			&booking.DurationMinutes,
			&booking.Status,
			&booking.ClientName,
			&booking.ServiceName,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func bookingSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"salon_id",
		"master_id",
		"client_id",
		"date",
		"start_time",
		"duration_minutes",
		"status",
		"client_name",
		"service_name",
		"created_at",
		"updated_at",
	).From("bookings")
}
