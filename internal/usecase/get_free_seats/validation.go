package get_free_seats

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TimeslotID <= 0 {
		return fmt.Errorf("%w: timeslotID must be positive", ErrInvalidInput)
	}

	if req.Gender != nil && !req.Gender.ValidForStudent() {
		return fmt.Errorf("%w: invalid gender", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	return nil
}
