package medical

import "github.com/m04kA/SMC-StudioService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
