package donations

import "errors"

var (
	// ErrDonationNotFound возвращается, когда донация не найдена
	ErrDonationNotFound = errors.New("donation not found")

	// ErrDonorNotFound возвращается, когда донор не найден
	ErrDonorNotFound = errors.New("donor not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
