package complete_appointments

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_appointments: internal error")
)
