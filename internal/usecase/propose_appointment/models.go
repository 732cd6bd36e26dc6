package propose_appointment

import (
	"time"

	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Request модель запроса на предложение дат донации
type Request struct {
	DonorID int64        // ID донора
	Dates   []types.Date // Ровно три различные даты
	Notes   *string      // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID            int64        // ID созданной записи
	DonorID       int64        // ID донора
	ProposedDates []types.Date // Предложенные даты
	Status        string       // Статус записи
	Notes         *string      // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
