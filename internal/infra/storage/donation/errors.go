package donation

import "errors"

var (
	// ErrDonationNotFound возвращается, когда донация не найдена
	ErrDonationNotFound = errors.New("donation.repository: donation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("donation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("donation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("donation.repository: failed to scan row")
)
