package models

import (
	"time"

	"github.com/m04kA/SHM-SeatService/internal/domain"
)

// Response модели

// SubscriptionResponse ответ с данными абонемента
type SubscriptionResponse struct {
	ID            int64     `json:"id"`
	StudentID     int64     `json:"studentId"`
	SeatID        int64     `json:"seatId"`
	TimeslotID    int64     `json:"timeslotId"`
	StartDate     string    `json:"startDate"` // "2026-09-01"
	EndDate       string    `json:"endDate"`   // включительно
	AmountPaid    float64   `json:"amountPaid"`
	ReceiptNumber string    `json:"receiptNumber"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SubscriptionListResponse ответ со списком абонементов
type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

// ExpiryNoticeResponse одна строка ленты напоминаний
type ExpiryNoticeResponse struct {
	SubscriptionID int64  `json:"subscriptionId"`
	StudentID      int64  `json:"studentId"`
	StudentName    string `json:"studentName"`
	Mobile         string `json:"mobile"`
	SeatID         int64  `json:"seatId"`
	TimeslotName   string `json:"timeslotName"`
	EndDate        string `json:"endDate"`
}

// ExpiryNoticeListResponse ответ со списком напоминаний
type ExpiryNoticeListResponse struct {
	Notices []ExpiryNoticeResponse `json:"notices"`
}

// Методы конвертации

// FromDomainSubscription конвертирует domain модель в DTO
func FromDomainSubscription(s *domain.Subscription) *SubscriptionResponse {
	if s == nil {
		return nil
	}

	return &SubscriptionResponse{
		ID:            s.ID,
		StudentID:     s.StudentID,
		SeatID:        s.SeatID,
		TimeslotID:    s.TimeslotID,
		StartDate:     s.StartDate.Format(domain.DateFormat),
		EndDate:       s.EndDate.Format(domain.DateFormat),
		AmountPaid:    s.AmountPaid,
		ReceiptNumber: s.ReceiptNumber,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromDomainSubscriptionList конвертирует список domain моделей в DTO
func FromDomainSubscriptionList(subs []*domain.Subscription) *SubscriptionListResponse {
	resp := &SubscriptionListResponse{
		Subscriptions: make([]SubscriptionResponse, 0, len(subs)),
	}

	for _, s := range subs {
		if subResp := FromDomainSubscription(s); subResp != nil {
			resp.Subscriptions = append(resp.Subscriptions, *subResp)
		}
	}

	return resp
}

// FromDomainExpiryNotices конвертирует ленту напоминаний в DTO
func FromDomainExpiryNotices(notices []*domain.ExpiryNotice) *ExpiryNoticeListResponse {
	resp := &ExpiryNoticeListResponse{
		Notices: make([]ExpiryNoticeResponse, 0, len(notices)),
	}

	for _, n := range notices {
		resp.Notices = append(resp.Notices, ExpiryNoticeResponse{
			SubscriptionID: n.SubscriptionID,
			StudentID:      n.StudentID,
			StudentName:    n.StudentName,
			Mobile:         n.Mobile,
			SeatID:         n.SeatID,
			TimeslotName:   n.TimeslotName,
			EndDate:        n.EndDate.Format(domain.DateFormat),
		})
	}

	return resp
}
