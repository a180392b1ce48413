package notifyservice

// ReminderMessage данные для рендеринга и доставки напоминания
// Форматирование текста и выбор канала (чат/почта) - ответственность NotifyService
type ReminderMessage struct {
	BookingID    int64  `json:"booking_id"`
	ReminderType string `json:"reminder_type"`
	ClientName   string `json:"client_name"`
	ServiceName  string `json:"service_name"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	SalonName    string `json:"salon_name"`
	SalonAddress string `json:"salon_address"`
}

// DeliveryResult ответ NotifyService о результате доставки
type DeliveryResult struct {
	Delivered bool `json:"delivered"`
}
