package renew_subscription

import (
	"fmt"

	"github.com/m04kA/SHM-SeatService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SubscriptionID <= 0 {
		return fmt.Errorf("%w: subscriptionID must be positive", ErrInvalidInput)
	}

	if req.Months != nil {
		if *req.Months < domain.MinDurationMonths || *req.Months > domain.MaxDurationMonths {
			return fmt.Errorf("%w: months must be %d..%d",
				ErrInvalidInput, domain.MinDurationMonths, domain.MaxDurationMonths)
		}
	}

	if req.Amount != nil && *req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	return nil
}
