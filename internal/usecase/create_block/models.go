package create_block

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на создание ручной блокировки
type Request struct {
	UserID    int64            // ID пользователя, создающего блокировку
	MasterID  int64            // ID мастера
	Date      time.Time        // Дата блокировки (без времени)
	StartTime types.TimeString // Начало интервала
	EndTime   types.TimeString // Конец интервала
	Label     string           // Подпись блокировки (обед, уборка и т.п.)

	// DryRun - только проверить конфликт, не создавая блокировку
	DryRun bool
}

// Response модель ответа
type Response struct {
	// Block созданная блокировка, nil при dry run
	Block *Block
}

// Block модель созданной блокировки
type Block struct {
	ID        int64
	SalonID   int64
	MasterID  int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Label     string
	CreatedAt time.Time
}
