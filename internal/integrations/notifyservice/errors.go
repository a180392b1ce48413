package notifyservice

import "errors"

var (
	// ErrDeliveryFailed возвращается, когда транспорт сообщил о неудачной доставке
	// Доставка не повторяется: пара (бронирование, тип) фиксируется как failed
	ErrDeliveryFailed = errors.New("notifyservice client: delivery failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifyservice client: invalid response")
)
