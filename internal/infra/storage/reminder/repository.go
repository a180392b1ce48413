package reminder

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Repository реестр отправленных напоминаний
// Уникальный индекс на (booking_id, reminder_type) - единственная защита
// от повторной отправки при конкурирующих проходах рассылки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория реестра напоминаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Claim атомарно захватывает пару (booking, type) в реестре
// INSERT ... ON CONFLICT DO NOTHING: если пара уже существует, возвращает
// claimed=false без ошибки - конкурирующий проход уже занял её.
// Отдельная проверка существования перед вставкой не нужна и была бы гонкой
func (r *Repository) Claim(ctx context.Context, bookingID int64, reminderType domain.ReminderType) (*domain.SentReminder, bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sent_reminders").
		Columns(
			"booking_id",
			"reminder_type",
			"status",
		).
		Values(
			bookingID,
			string(reminderType),
			string(domain.ReminderStatusPending),
		).
		Suffix("ON CONFLICT (booking_id, reminder_type) DO NOTHING RETURNING id, sent_at").
		ToSql()

	if err != nil {
		return nil, false, fmt.Errorf("%w: Claim - build insert query: %v", ErrBuildQuery, err)
	}

	sent := domain.SentReminder{
		BookingID: bookingID,
		Type:      reminderType,
		Status:    domain.ReminderStatusPending,
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&sent.ID, &sent.SentAt)
	if err == sql.ErrNoRows {
		// Пара уже в реестре - напоминание обрабатывается или обработано
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Claim - execute insert: %v", ErrExecQuery, err)
	}

	return &sent, true, nil
}

// MarkStatus переводит запись реестра в терминальный статус (sent/failed)
// Терминальный статус не изменяется повторно
func (r *Repository) MarkStatus(ctx context.Context, id int64, status domain.SentReminderStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sent_reminders").
		Set("status", string(status)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(domain.ReminderStatusPending)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReminderNotFound
	}

	return nil
}

// GetByBookingAndType получает запись реестра по паре (booking, type)
// Используется операторским отчётом, не проходом рассылки
func (r *Repository) GetByBookingAndType(ctx context.Context, bookingID int64, reminderType domain.ReminderType) (*domain.SentReminder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"reminder_type",
		"status",
		"sent_at",
	).
		From("sent_reminders").
		Where(squirrel.Eq{"booking_id": bookingID, "reminder_type": string(reminderType)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingAndType - build select query: %v", ErrBuildQuery, err)
	}

	var sent domain.SentReminder
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sent.ID,
		&sent.BookingID,
		&sent.Type,
		&sent.Status,
		&sent.SentAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReminderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingAndType - scan reminder: %v", ErrScanRow, err)
	}

	return &sent, nil
}
