package check_conflicts

import (
	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// Request модель запроса на проверку пересечений
type Request struct {
	Date          types.Date      // Дата интервала
	StartTime     types.TimeOfDay // Начало, включительно
	EndTime       types.TimeOfDay // Конец, не включительно
	ExcludeTaskID *int64          // Задача, которую не сравнивать с собой (при переносе)
}

// Response модель ответа
type Response struct {
	HasConflicts bool
	Conflicts    []*domain.Task // В порядке начала интервала
}
