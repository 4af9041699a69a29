package check_subscription

import (
	"time"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	checkSubscription "github.com/m04kA/SHM-SeatService/internal/usecase/check_subscription"
)

// CheckSubscriptionRequest HTTP request model
type CheckSubscriptionRequest struct {
	StudentID  int64  `json:"studentId"`
	SeatID     int64  `json:"seatId"`
	TimeslotID int64  `json:"timeslotId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	ExcludeID  *int64 `json:"excludeId,omitempty"` // при редактировании существующего абонемента
}

// ConflictInfo детали найденного конфликта
type ConflictInfo struct {
	Kind           string `json:"kind"`
	SubscriptionID int64  `json:"subscriptionId"`
	StudentID      int64  `json:"studentId"`
	SeatID         int64  `json:"seatId"`
	TimeslotID     int64  `json:"timeslotId"`
	TimeslotName   string `json:"timeslotName"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
}

// CheckSubscriptionResponse HTTP response model
type CheckSubscriptionResponse struct {
	Ok       bool          `json:"ok"`
	Conflict *ConflictInfo `json:"conflict,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckSubscriptionRequest) ToUseCaseRequest() (*checkSubscription.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &checkSubscription.Request{
		StudentID:  r.StudentID,
		SeatID:     r.SeatID,
		TimeslotID: r.TimeslotID,
		StartDate:  startDate,
		EndDate:    endDate,
		ExcludeID:  r.ExcludeID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSubscription.Response) *CheckSubscriptionResponse {
	out := &CheckSubscriptionResponse{Ok: resp.Ok}

	if resp.Conflict != nil {
		out.Conflict = &ConflictInfo{
			Kind:           resp.Conflict.Kind,
			SubscriptionID: resp.Conflict.SubscriptionID,
			StudentID:      resp.Conflict.StudentID,
			SeatID:         resp.Conflict.SeatID,
			TimeslotID:     resp.Conflict.TimeslotID,
			TimeslotName:   resp.Conflict.TimeslotName,
			StartDate:      resp.Conflict.StartDate.Format(domain.DateFormat),
			EndDate:        resp.Conflict.EndDate.Format(domain.DateFormat),
		}
	}

	return out
}
