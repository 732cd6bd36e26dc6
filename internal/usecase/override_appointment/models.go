package override_appointment

import (
	"time"

	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Request модель запроса на административный перенос записи
type Request struct {
	AppointmentID int64      // ID записи
	AdminID       int64      // ID администратора
	Date          types.Date // Новая дата, не обязана входить в предложенные
	Notes         *string    // Обновлённые заметки (опционально)
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID            int64      // ID записи
	DonorID       int64      // ID донора
	ConfirmedDate types.Date // Подтверждённая дата
	Status        string     // Статус записи
	AdminModified bool       // Всегда true для переноса
	ModifiedBy    int64      // ID администратора
	Notes         *string    // Заметки

	UpdatedAt time.Time // Время обновления
}
