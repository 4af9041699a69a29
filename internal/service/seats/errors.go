package seats

import "errors"

var (
	// ErrSeatNotFound возвращается, когда место не найдено или неактивно
	ErrSeatNotFound = errors.New("seat not found")

	// ErrSeatOccupied возвращается при попытке изменить место с текущими абонементами
	ErrSeatOccupied = errors.New("seat has current subscriptions")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
