package renew_subscription

import "time"

// Request модель запроса на продление абонемента
type Request struct {
	SubscriptionID int64    // ID исходного абонемента
	Months         *int     // Срок продления; по умолчанию duration_months таймслота
	Amount         *float64 // Сумма; по умолчанию текущая цена таймслота (не прошлый платёж)
}

// Response модель ответа с созданным продлением
type Response struct {
	ID            int64     // ID нового абонемента
	StudentID     int64     // ID студента
	SeatID        int64     // ID места
	TimeslotID    int64     // ID таймслота
	StartDate     time.Time // Дата начала: конец исходного абонемента + 1 день
	EndDate       time.Time // Дата окончания, включительно
	AmountPaid    float64   // Оплаченная сумма
	ReceiptNumber string    // Номер квитанции RCP-YYYYMMDD-NNNN
	Status        string    // Статус абонемента
	CreatedAt     time.Time // Время создания
	UpdatedAt     time.Time // Время обновления
}
