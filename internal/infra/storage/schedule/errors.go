package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда строка расписания отсутствует
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrExcludedDateNotFound возвращается, когда исключённая дата не найдена
	ErrExcludedDateNotFound = errors.New("schedule.repository: excluded date not found")

	// ErrDuplicateExcludedDate возвращается при повторном добавлении даты
	ErrDuplicateExcludedDate = errors.New("schedule.repository: excluded date already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
