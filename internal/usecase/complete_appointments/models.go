package complete_appointments

// Response модель ответа с итогами обработки
type Response struct {
	Completed int // Число записей, переведённых в completed
}
