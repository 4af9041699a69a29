package models

import (
	"time"

	"github.com/m04kA/SHM-SeatService/internal/domain"
)

// Request модели

// CreateTimeslotRequest запрос на создание таймслота
type CreateTimeslotRequest struct {
	Name             string  `json:"name"`
	StartTime        string  `json:"startTime"` // "06:00"
	EndTime          string  `json:"endTime"`   // "10:00", может быть меньше startTime (ночной слот)
	Price            float64 `json:"price"`
	DurationMonths   int     `json:"durationMonths"`
	LockersAvailable bool    `json:"lockersAvailable"`
}

// UpdateTimeslotRequest запрос на обновление таймслота
// nil-поля не меняются
type UpdateTimeslotRequest struct {
	Name             *string  `json:"name,omitempty"`
	StartTime        *string  `json:"startTime,omitempty"`
	EndTime          *string  `json:"endTime,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	DurationMonths   *int     `json:"durationMonths,omitempty"`
	LockersAvailable *bool    `json:"lockersAvailable,omitempty"`
}

// Response модели

// TimeslotResponse ответ с данными таймслота
type TimeslotResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	IsOvernight      bool      `json:"isOvernight"`
	Price            float64   `json:"price"`
	DurationMonths   int       `json:"durationMonths"`
	LockersAvailable bool      `json:"lockersAvailable"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// TimeslotListResponse ответ со списком таймслотов
type TimeslotListResponse struct {
	Timeslots []TimeslotResponse `json:"timeslots"`
}

// OccupancyResponse заполняемость таймслота
type OccupancyResponse struct {
	TimeslotID    int64   `json:"timeslotId"`
	OccupiedSeats int     `json:"occupiedSeats"`
	TotalSeats    int     `json:"totalSeats"`
	OccupancyRate float64 `json:"occupancyRate"` // процент, 0..100
}

// Методы конвертации

// FromDomainTimeslot конвертирует domain модель в DTO
func FromDomainTimeslot(t *domain.Timeslot) *TimeslotResponse {
	if t == nil {
		return nil
	}

	return &TimeslotResponse{
		ID:               t.ID,
		Name:             t.Name,
		StartTime:        t.StartTime.String(),
		EndTime:          t.EndTime.String(),
		IsOvernight:      t.IsOvernight(),
		Price:            t.Price,
		DurationMonths:   t.DurationMonths,
		LockersAvailable: t.LockersAvailable,
		IsActive:         t.IsActive,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// FromDomainTimeslotList конвертирует список domain моделей в DTO
func FromDomainTimeslotList(slots []*domain.Timeslot) *TimeslotListResponse {
	resp := &TimeslotListResponse{
		Timeslots: make([]TimeslotResponse, 0, len(slots)),
	}

	for _, t := range slots {
		if slotResp := FromDomainTimeslot(t); slotResp != nil {
			resp.Timeslots = append(resp.Timeslots, *slotResp)
		}
	}

	return resp
}
