package check_subscription

import "errors"

var (
	// ErrTimeslotNotFound возвращается, когда таймслот не найден или неактивен
	ErrTimeslotNotFound = errors.New("check_subscription: timeslot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_subscription: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_subscription: internal error")
)
