package get_free_seats

import (
	getFreeSeats "github.com/m04kA/SHM-SeatService/internal/usecase/get_free_seats"
)

// FreeSeatResponse одно свободное место
type FreeSeatResponse struct {
	ID                int64  `json:"id"`
	RowNumber         int    `json:"rowNumber"`
	GenderRestriction string `json:"genderRestriction"`
}

// FreeSeatsResponse HTTP response model
type FreeSeatsResponse struct {
	Seats []FreeSeatResponse `json:"seats"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFreeSeats.Response) *FreeSeatsResponse {
	out := &FreeSeatsResponse{
		Seats: make([]FreeSeatResponse, 0, len(resp.Seats)),
	}

	for _, seat := range resp.Seats {
		out.Seats = append(out.Seats, FreeSeatResponse{
			ID:                seat.ID,
			RowNumber:         seat.RowNumber,
			GenderRestriction: seat.GenderRestriction,
		})
	}

	return out
}
