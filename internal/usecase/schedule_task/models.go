package schedule_task

import "github.com/m04kA/SMC-SmartScheduler/pkg/types"

// Request модель запроса на перенос задачи
type Request struct {
	TaskID    int64
	Date      types.Date
	StartTime *types.TimeOfDay // Обязательно, если AllDay = false
	EndTime   *types.TimeOfDay // Если не указано - StartTime + оценка длительности
	AllDay    bool
}
