package counter

import "github.com/m04kA/SMC-DeliverySlots/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
