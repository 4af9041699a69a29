package create_subscription

import (
	"time"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	createSubscription "github.com/m04kA/SHM-SeatService/internal/usecase/create_subscription"
)

// CreateSubscriptionRequest HTTP request model
type CreateSubscriptionRequest struct {
	StudentID  int64   `json:"studentId"`
	SeatID     int64   `json:"seatId"`
	TimeslotID int64   `json:"timeslotId"`
	StartDate  string  `json:"startDate"` // "2026-09-01"
	EndDate    string  `json:"endDate"`   // включительно
	AmountPaid float64 `json:"amountPaid"`
}

// SubscriptionResponse HTTP response model
type SubscriptionResponse struct {
	ID            int64   `json:"id"`
	StudentID     int64   `json:"studentId"`
	SeatID        int64   `json:"seatId"`
	TimeslotID    int64   `json:"timeslotId"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	AmountPaid    float64 `json:"amountPaid"`
	ReceiptNumber string  `json:"receiptNumber"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ConflictResponse HTTP модель отказа по конфликту
type ConflictResponse struct {
	Code           int    `json:"code"`
	Message        string `json:"message"`
	Kind           string `json:"kind"`
	SubscriptionID int64  `json:"subscriptionId"`
	SeatID         int64  `json:"seatId"`
	TimeslotName   string `json:"timeslotName"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSubscriptionRequest) ToUseCaseRequest() (*createSubscription.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createSubscription.Request{
		StudentID:  r.StudentID,
		SeatID:     r.SeatID,
		TimeslotID: r.TimeslotID,
		StartDate:  startDate,
		EndDate:    endDate,
		AmountPaid: r.AmountPaid,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSubscription.Response) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:            resp.ID,
		StudentID:     resp.StudentID,
		SeatID:        resp.SeatID,
		TimeslotID:    resp.TimeslotID,
		StartDate:     resp.StartDate.Format(domain.DateFormat),
		EndDate:       resp.EndDate.Format(domain.DateFormat),
		AmountPaid:    resp.AmountPaid,
		ReceiptNumber: resp.ReceiptNumber,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromConflict конвертирует domain конфликт в HTTP response
func FromConflict(msg string, c domain.Conflict) *ConflictResponse {
	return &ConflictResponse{
		Code:           409,
		Message:        msg,
		Kind:           string(c.Kind),
		SubscriptionID: c.SubscriptionID,
		SeatID:         c.SeatID,
		TimeslotName:   c.TimeslotName,
		StartDate:      c.StartDate.Format(domain.DateFormat),
		EndDate:        c.EndDate.Format(domain.DateFormat),
	}
}
