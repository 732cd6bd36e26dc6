package confirm_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("confirm_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда пользователь подтверждает чужую запись
	ErrAccessDenied = errors.New("confirm_appointment: access denied")

	// ErrNotPending возвращается, когда запись уже обработана
	ErrNotPending = errors.New("confirm_appointment: appointment is not pending")

	// ErrNotProposedDate возвращается, когда дата не входит в предложенные
	ErrNotProposedDate = errors.New("confirm_appointment: date is not one of the proposed dates")

	// ErrDateNotBookable возвращается, когда дата стала недоступна по расписанию
	ErrDateNotBookable = errors.New("confirm_appointment: date is not bookable")

	// ErrCapacityExceeded возвращается, когда на дату не осталось мест
	ErrCapacityExceeded = errors.New("confirm_appointment: date capacity exceeded")

	// ErrDonorNotSchedulable возвращается, когда донор неактивен или отстранён
	ErrDonorNotSchedulable = errors.New("confirm_appointment: donor cannot be scheduled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_appointment: internal error")
)
