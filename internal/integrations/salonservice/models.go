package salonservice

// Salon модель салона из SalonService
type Salon struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive bool   `json:"is_active"`
}

// Master модель мастера из SalonService
type Master struct {
	ID       int64  `json:"id"`
	SalonID  int64  `json:"salon_id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// ManagerCheck ответ проверки прав менеджера
type ManagerCheck struct {
	IsManager bool `json:"is_manager"`
}

// ErrorResponse модель ошибки от SalonService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
