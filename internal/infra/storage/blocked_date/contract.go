package blocked_date

import "github.com/m04kA/SMC-FrontDeskService/pkg/dbmetrics"

// DBExecutor *sql.DB, *dbmetrics.DB или транзакция
type DBExecutor = dbmetrics.DBExecutor
