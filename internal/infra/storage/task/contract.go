package task

import (
	"github.com/m04kA/SMC-SmartScheduler/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
