package station

import "github.com/m04kA/SMC-LaneBooking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
