package get_available_slots

import (
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	UserID          int64            // ID пользователя, чьи настройки рабочего дня применяются
	Date            types.Date       // Дата поиска
	DurationMinutes *int             // Длительность слота, nil - длительность из настроек
	WorkStart       *types.TimeOfDay // Переопределяет начало рабочего дня из настроек
	WorkEnd         *types.TimeOfDay // Переопределяет конец рабочего дня из настроек
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            types.Date
	DurationMinutes int
	WorkStart       types.TimeOfDay
	WorkEnd         types.TimeOfDay
	Slots           []Slot
}

// Slot свободный интервал
type Slot struct {
	StartTime types.TimeOfDay
	EndTime   types.TimeOfDay
}
