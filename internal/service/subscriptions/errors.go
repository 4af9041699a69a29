package subscriptions

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда абонемент не найден
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrStudentNotFound возвращается, когда студент не найден
	ErrStudentNotFound = errors.New("student not found")

	// ErrCannotCancel возвращается, когда абонемент уже отменён
	ErrCannotCancel = errors.New("subscription cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
