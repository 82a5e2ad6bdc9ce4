package barber

import "github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
