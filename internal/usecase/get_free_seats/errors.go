package get_free_seats

import "errors"

var (
	// ErrTimeslotNotFound возвращается, когда таймслот не найден или неактивен
	ErrTimeslotNotFound = errors.New("get_free_seats: timeslot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_free_seats: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_free_seats: internal error")
)
