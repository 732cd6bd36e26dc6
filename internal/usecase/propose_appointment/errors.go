package propose_appointment

import "errors"

var (
	// ErrDonorNotFound возвращается, когда донор не найден
	ErrDonorNotFound = errors.New("propose_appointment: donor not found")

	// ErrDonorNotSchedulable возвращается, когда донор неактивен или отстранён
	ErrDonorNotSchedulable = errors.New("propose_appointment: donor cannot be scheduled")

	// ErrPendingExists возвращается, когда у донора уже есть ожидающая запись
	ErrPendingExists = errors.New("propose_appointment: pending appointment already exists")

	// ErrDateNotBookable возвращается, когда предложенная дата недоступна по расписанию
	ErrDateNotBookable = errors.New("propose_appointment: date is not bookable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("propose_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("propose_appointment: internal error")
)
