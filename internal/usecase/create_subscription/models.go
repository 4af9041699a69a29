package create_subscription

import "time"

// Request модель запроса на создание абонемента
type Request struct {
	StudentID  int64     // ID студента
	SeatID     int64     // ID места
	TimeslotID int64     // ID таймслота
	StartDate  time.Time // Дата начала (без времени)
	EndDate    time.Time // Дата окончания, включительно
	AmountPaid float64   // Оплаченная сумма
}

// Response модель ответа с созданным абонементом
type Response struct {
	ID            int64     // ID созданного абонемента
	StudentID     int64     // ID студента
	SeatID        int64     // ID места
	TimeslotID    int64     // ID таймслота
	StartDate     time.Time // Дата начала
	EndDate       time.Time // Дата окончания, включительно
	AmountPaid    float64   // Оплаченная сумма
	ReceiptNumber string    // Номер квитанции RCP-YYYYMMDD-NNNN
	Status        string    // Статус абонемента
	CreatedAt     time.Time // Время создания
	UpdatedAt     time.Time // Время обновления
}
