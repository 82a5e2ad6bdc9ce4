package occupancy

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к Redis
	ErrConnect = errors.New("occupancy.cache: failed to connect")

	// ErrCache возвращается при ошибке чтения или записи кеша
	ErrCache = errors.New("occupancy.cache: cache operation failed")
)
