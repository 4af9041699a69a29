package subscription

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда абонемент не найден
	ErrSubscriptionNotFound = errors.New("subscription.repository: subscription not found")

	// ErrReceiptNumberTaken возвращается при нарушении уникальности номера квитанции
	// (страховка на уровне БД от гонки выдачи номеров)
	ErrReceiptNumberTaken = errors.New("subscription.repository: receipt number already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("subscription.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("subscription.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("subscription.repository: failed to scan row")
)
