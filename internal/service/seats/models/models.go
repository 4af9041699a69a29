package models

import (
	"time"

	"github.com/m04kA/SHM-SeatService/internal/domain"
)

// Request модели

// CreateSeatRequest запрос на создание места
type CreateSeatRequest struct {
	RowNumber         int    `json:"rowNumber"`
	GenderRestriction string `json:"genderRestriction"` // "male", "female", "any"
}

// UpdateRestrictionRequest запрос на смену гендерного ограничения места
type UpdateRestrictionRequest struct {
	GenderRestriction string `json:"genderRestriction"`
}

// ListSeatsRequest запрос на получение списка мест
type ListSeatsRequest struct {
	Gender     *string `json:"gender,omitempty"` // фильтр: места, доступные студенту этого пола
	ActiveOnly bool    `json:"activeOnly,omitempty"`
}

// Response модели

// SeatResponse ответ с данными места
// IsOccupied заполняется только в списке (справочник для карты мест)
type SeatResponse struct {
	ID                int64     `json:"id"`
	RowNumber         int       `json:"rowNumber"`
	GenderRestriction string    `json:"genderRestriction"`
	IsActive          bool      `json:"isActive"`
	IsOccupied        bool      `json:"isOccupied"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// SeatListResponse ответ со списком мест
type SeatListResponse struct {
	Seats []SeatResponse `json:"seats"`
}

// Методы конвертации

// FromDomainSeat конвертирует domain модель в DTO
func FromDomainSeat(s *domain.Seat) *SeatResponse {
	if s == nil {
		return nil
	}

	return &SeatResponse{
		ID:                s.ID,
		RowNumber:         s.RowNumber,
		GenderRestriction: string(s.GenderRestriction),
		IsActive:          s.IsActive,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// FromDomainSeatList конвертирует список domain моделей в DTO
func FromDomainSeatList(seats []*domain.Seat) *SeatListResponse {
	resp := &SeatListResponse{
		Seats: make([]SeatResponse, 0, len(seats)),
	}

	for _, s := range seats {
		if seatResp := FromDomainSeat(s); seatResp != nil {
			resp.Seats = append(resp.Seats, *seatResp)
		}
	}

	return resp
}
