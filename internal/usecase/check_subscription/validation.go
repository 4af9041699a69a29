package check_subscription

import "fmt"

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

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if !req.StartDate.Before(req.EndDate) {
		return fmt.Errorf("%w: startDate must be before endDate", ErrInvalidInput)
	}

	return nil
}
