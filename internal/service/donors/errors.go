package donors

import "errors"

var (
	// ErrDonorNotFound возвращается, когда донор не найден
	ErrDonorNotFound = errors.New("donor not found")

	// ErrDuplicateDonor возвращается при конфликте email или внешней учётной записи
	ErrDuplicateDonor = errors.New("donor already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
