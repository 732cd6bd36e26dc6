package override_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("override_appointment: appointment not found")

	// ErrTerminalState возвращается для завершённых и отменённых записей
	ErrTerminalState = errors.New("override_appointment: appointment is in a terminal state")

	// ErrDateNotBookable возвращается, когда дата недоступна по расписанию
	ErrDateNotBookable = errors.New("override_appointment: date is not bookable")

	// ErrCapacityExceeded возвращается, когда на дату не осталось мест
	ErrCapacityExceeded = errors.New("override_appointment: date capacity exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("override_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("override_appointment: internal error")
)
