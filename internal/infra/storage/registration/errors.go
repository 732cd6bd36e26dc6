package registration

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка на регистрацию не найдена
	ErrRequestNotFound = errors.New("registration.repository: request not found")

	// ErrPendingExists возвращается при повторной заявке с той же внешней учётной записью
	ErrPendingExists = errors.New("registration.repository: pending request already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("registration.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("registration.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("registration.repository: failed to scan row")
)
