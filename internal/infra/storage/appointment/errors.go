package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись на донацию не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrPendingExists возвращается при попытке создать вторую ожидающую запись для донора
	ErrPendingExists = errors.New("appointment.repository: pending appointment already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
