package create_subscription

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.SeatID <= 0 {
		return fmt.Errorf("%w: seatID must be positive", ErrInvalidInput)
	}

	if req.TimeslotID <= 0 {
		return fmt.Errorf("%w: timeslotID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}

	// Дата окончания включительна, поэтому строго больше даты начала
	if !req.StartDate.Before(req.EndDate) {
		return fmt.Errorf("%w: startDate must be before endDate", ErrInvalidInput)
	}

	if req.AmountPaid <= 0 {
		return fmt.Errorf("%w: amountPaid must be positive", ErrInvalidInput)
	}

	return nil
}
