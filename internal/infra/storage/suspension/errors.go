package suspension

import "errors"

var (
	// ErrSuspensionNotFound возвращается, когда отстранение не найдено
	ErrSuspensionNotFound = errors.New("suspension.repository: suspension not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("suspension.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("suspension.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("suspension.repository: failed to scan row")
)
