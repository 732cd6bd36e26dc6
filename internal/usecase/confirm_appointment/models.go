package confirm_appointment

import (
	"time"

	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Request модель запроса на подтверждение даты донации
type Request struct {
	AppointmentID int64      // ID записи
	RequesterID   int64      // ID пользователя, подтверждающего запись
	IsAdmin       bool       // Администратор может подтвердить чужую запись
	Date          types.Date // Выбранная дата, одна из предложенных
}

// Response модель ответа с подтверждённой записью
type Response struct {
	ID            int64      // ID записи
	DonorID       int64      // ID донора
	ConfirmedDate types.Date // Подтверждённая дата
	Status        string     // Статус записи
	AdminModified bool       // Подтверждено администратором
	ModifiedBy    *int64     // ID администратора, если применимо

	UpdatedAt time.Time // Время обновления
}
