package reminder

import "errors"

var (
	// ErrReminderNotFound возвращается, когда запись реестра не найдена
	ErrReminderNotFound = errors.New("reminder.repository: sent reminder not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reminder.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reminder.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reminder.repository: failed to scan row")
)
