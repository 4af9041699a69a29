package timeslots

import "errors"

var (
	// ErrTimeslotNotFound возвращается, когда таймслот не найден
	ErrTimeslotNotFound = errors.New("timeslot not found")

	// ErrDuplicateName возвращается, когда название таймслота уже занято
	ErrDuplicateName = errors.New("timeslot name already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
