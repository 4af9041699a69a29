package check_subscription

import "time"

// Request модель запроса на предварительную проверку кандидата
type Request struct {
	StudentID  int64     // ID студента
	SeatID     int64     // ID места
	TimeslotID int64     // ID таймслота
	StartDate  time.Time // Дата начала
	EndDate    time.Time // Дата окончания, включительно
	ExcludeID  *int64    // Абонемент, исключаемый из проверки (редактирование)
}

// ConflictInfo детали найденного конфликта
type ConflictInfo struct {
	Kind           string    // duplicate_plan | student_time_conflict | seat_time_conflict
	SubscriptionID int64     // ID конфликтующего абонемента
	StudentID      int64     // ID его владельца
	SeatID         int64     // ID занятого места
	TimeslotID     int64     // ID его таймслота
	TimeslotName   string    // Название таймслота
	StartDate      time.Time // Начало конфликтующего диапазона
	EndDate        time.Time // Конец конфликтующего диапазона
}

// Response результат проверки
// Ok=true означает отсутствие конфликтов расписания; полевые проверки
// (пол, активность, существование) выполняет создание
type Response struct {
	Ok       bool
	Conflict *ConflictInfo
}
