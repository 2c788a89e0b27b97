package deadline

import (
	"github.com/m04kA/SMC-SmartScheduler/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
