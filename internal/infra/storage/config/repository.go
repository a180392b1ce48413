package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации расписания салонов
// (шаг сетки слотов, буфер после бронирований, правила напоминаний)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySalonID получает конфигурацию расписания салона
// Если конфигурация не создана, возвращает ErrConfigNotFound -
// вызывающий код применяет значения по умолчанию
func (r *Repository) GetBySalonID(ctx context.Context, salonID int64) (*domain.SalonScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := configSelect().
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanConfig(executor.QueryRowContext(ctx, query, args...), "GetBySalonID")
}

// Upsert создает или обновляет конфигурацию салона
func (r *Repository) Upsert(ctx context.Context, cfg *domain.SalonScheduleConfig) (*domain.SalonScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salon_schedule_configs").
		Columns(
			"salon_id",
			"slot_step_minutes",
			"buffer_minutes",
			"reminder_24h_enabled",
			"reminder_2h_enabled",
		).
		Values(
			cfg.SalonID,
			cfg.SlotStepMinutes,
			cfg.BufferMinutes,
			cfg.Reminder24hEnabled,
			cfg.Reminder2hEnabled,
		).
		Suffix(`ON CONFLICT (salon_id) DO UPDATE SET
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			reminder_24h_enabled = EXCLUDED.reminder_24h_enabled,
			reminder_2h_enabled = EXCLUDED.reminder_2h_enabled,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// ListWithRemindersEnabled получает конфигурации всех салонов,
// у которых включено хотя бы одно правило напоминаний
// Используется проходом рассылки напоминаний
func (r *Repository) ListWithRemindersEnabled(ctx context.Context) ([]*domain.SalonScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := configSelect().
		Where(squirrel.Or{
			squirrel.Eq{"reminder_24h_enabled": true},
			squirrel.Eq{"reminder_2h_enabled": true},
		}).
		OrderBy("salon_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWithRemindersEnabled - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithRemindersEnabled - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.SalonScheduleConfig, 0)

	for rows.Next() {
		var cfg domain.SalonScheduleConfig
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&cfg.ID,
			&cfg.SalonID,
			&cfg.SlotStepMinutes,
			&cfg.BufferMinutes,
			&cfg.Reminder24hEnabled,
			&cfg.Reminder2hEnabled,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: ListWithRemindersEnabled - scan row: %v", ErrScanRow, err)
		}

		cfg.CreatedAt = createdAt.Time
		cfg.UpdatedAt = updatedAt.Time

		configs = append(configs, &cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithRemindersEnabled - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

func (r *Repository) scanConfig(row *sql.Row, method string) (*domain.SalonScheduleConfig, error) {
	var cfg domain.SalonScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&cfg.ID,
		&cfg.SalonID,
		&cfg.SlotStepMinutes,
		&cfg.BufferMinutes,
		&cfg.Reminder24hEnabled,
		&cfg.Reminder2hEnabled,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan config: %v", ErrScanRow, method, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

func configSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"salon_id",
		"slot_step_minutes",
		"buffer_minutes",
		"reminder_24h_enabled",
		"reminder_2h_enabled",
		"created_at",
		"updated_at",
	).From("salon_schedule_configs")
}
