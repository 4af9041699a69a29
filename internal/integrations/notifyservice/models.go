package notifyservice

// Message запрос на отправку уведомления студенту
type Message struct {
	StudentID int64  `json:"student_id"`
	Mobile    string `json:"mobile"`
	Kind      string `json:"kind"`
	Text      string `json:"text"`
}

// Виды уведомлений об абонементах
const (
	KindExpiringSoon = "subscription_expiring_soon"
	KindExpired      = "subscription_expired"
)

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
