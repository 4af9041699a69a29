package get_free_seats

import (
	"time"

	"github.com/m04kA/SHM-SeatService/internal/domain"
)

// Request модель запроса на подбор свободных мест
type Request struct {
	Gender     *domain.Gender // Пол студента; nil - без гендерного фильтра
	TimeslotID int64          // Таймслот, на который подбирается место
	StartDate  time.Time      // Начало запрашиваемого диапазона дат
	EndDate    time.Time      // Конец диапазона, включительно
}

// FreeSeat одно свободное место
type FreeSeat struct {
	ID                int64  // ID места
	RowNumber         int    // Номер ряда
	GenderRestriction string // Ограничение места
}

// Response список мест, свободных на запрошенном таймслоте и диапазоне дат
type Response struct {
	Seats []FreeSeat
}
