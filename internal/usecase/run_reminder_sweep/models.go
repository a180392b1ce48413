package run_reminder_sweep

import "time"

// Request модель запроса прохода рассылки напоминаний
type Request struct {
	// Now момент, относительно которого вычисляются окна напоминаний.
	// Воркер передаёт текущее время, тесты - фиксированное
	Now time.Time

	// TickID идентификатор прохода для сквозного логирования.
	// При пустом значении генерируется автоматически
	TickID string
}

// Response итоги одного прохода
type Response struct {
	TickID  string // Идентификатор прохода
	Salons  int    // Количество салонов с включёнными напоминаниями
	Due     int    // Бронирований, попавших в окно напоминания
	Sent    int    // Успешно доставленных напоминаний
	Failed  int    // Напоминаний с неуспешной доставкой (терминально)
	Skipped int    // Пар, уже занятых предыдущими проходами
}
