package suspensions

import "errors"

var (
	// ErrSuspensionNotFound возвращается, когда отстранение не найдено
	ErrSuspensionNotFound = errors.New("suspension not found")

	// ErrDonorNotFound возвращается, когда донор не найден
	ErrDonorNotFound = errors.New("donor not found")

	// ErrAlreadyEnded возвращается при попытке завершить неактивное отстранение
	ErrAlreadyEnded = errors.New("suspension already ended")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
