package renew_subscription

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда исходный абонемент не найден
	ErrSubscriptionNotFound = errors.New("renew_subscription: subscription not found")

	// ErrSubscriptionCancelled возвращается при попытке продлить отменённый абонемент
	ErrSubscriptionCancelled = errors.New("renew_subscription: subscription is cancelled")

	// ErrStudentInactive возвращается, когда студент отчислен или заблокирован
	ErrStudentInactive = errors.New("renew_subscription: student is inactive")

	// ErrTimeslotNotFound возвращается, когда таймслот абонемента деактивирован
	ErrTimeslotNotFound = errors.New("renew_subscription: timeslot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("renew_subscription: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("renew_subscription: internal error")
)
