package propose_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DonorID <= 0 {
		return fmt.Errorf("%w: donorID must be positive", ErrInvalidInput)
	}

	if len(req.Dates) != 3 {
		return fmt.Errorf("%w: exactly three dates are required", ErrInvalidInput)
	}

	for i, date := range req.Dates {
		if date.IsZero() {
			return fmt.Errorf("%w: date %d is required", ErrInvalidInput, i+1)
		}
	}

	// Даты должны быть различны
	if req.Dates[0].Equal(req.Dates[1]) || req.Dates[0].Equal(req.Dates[2]) || req.Dates[1].Equal(req.Dates[2]) {
		return fmt.Errorf("%w: dates must be distinct", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	return nil
}

// validateDateInFuture проверяет, что дата не в прошлом
func validateDateInFuture(date types.Date, today types.Date) error {
	if date.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrDateNotBookable, date)
	}
	return nil
}
