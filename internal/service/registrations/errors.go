package registrations

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("registration request not found")

	// ErrDonorNotFound возвращается, когда донор не найден
	ErrDonorNotFound = errors.New("donor not found")

	// ErrDuplicateRequest возвращается при повторной заявке с той же внешней учётной записью
	ErrDuplicateRequest = errors.New("pending registration request already exists")

	// ErrAlreadyRegistered возвращается, когда внешняя учётная запись уже привязана к донору
	ErrAlreadyRegistered = errors.New("external account already bound to a donor")

	// ErrAlreadyProcessed возвращается при повторной обработке заявки
	ErrAlreadyProcessed = errors.New("registration request already processed")

	// ErrDonorAlreadyBound возвращается, когда у донора уже есть внешняя учётная запись
	ErrDonorAlreadyBound = errors.New("donor already has an external account")

	// ErrRequestPending возвращается при попытке удалить необработанную заявку
	ErrRequestPending = errors.New("registration request is still pending")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
