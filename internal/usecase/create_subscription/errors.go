package create_subscription

import "errors"

var (
	// ErrStudentNotFound возвращается, когда студент не найден
	ErrStudentNotFound = errors.New("create_subscription: student not found")

	// ErrStudentInactive возвращается, когда студент отчислен или заблокирован
	ErrStudentInactive = errors.New("create_subscription: student is inactive")

	// ErrSeatNotFound возвращается, когда место не найдено или неактивно
	ErrSeatNotFound = errors.New("create_subscription: seat not found")

	// ErrSeatRestricted возвращается, когда пол студента не подходит под ограничение места
	ErrSeatRestricted = errors.New("create_subscription: seat gender restriction does not allow this student")

	// ErrTimeslotNotFound возвращается, когда таймслот не найден или неактивен
	ErrTimeslotNotFound = errors.New("create_subscription: timeslot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_subscription: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_subscription: internal error")
)
