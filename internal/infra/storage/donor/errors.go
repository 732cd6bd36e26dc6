package donor

import "errors"

var (
	// ErrDonorNotFound возвращается, когда донор не найден
	ErrDonorNotFound = errors.New("donor.repository: donor not found")

	// ErrDuplicateDonor возвращается при нарушении уникальности email или внешнего идентификатора
	ErrDuplicateDonor = errors.New("donor.repository: donor already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("donor.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("donor.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("donor.repository: failed to scan row")
)
