package timeslot

import "errors"

var (
	// ErrTimeslotNotFound возвращается, когда таймслот не найден
	ErrTimeslotNotFound = errors.New("timeslot.repository: timeslot not found")

	// ErrDuplicateName возвращается при нарушении уникальности названия
	ErrDuplicateName = errors.New("timeslot.repository: timeslot name already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeslot.repository: failed to scan row")
)
