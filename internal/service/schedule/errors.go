package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание отсутствует
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrExcludedDateNotFound возвращается, когда исключённая дата не найдена
	ErrExcludedDateNotFound = errors.New("excluded date not found")

	// ErrDuplicateExcludedDate возвращается при повторном добавлении даты
	ErrDuplicateExcludedDate = errors.New("excluded date already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
