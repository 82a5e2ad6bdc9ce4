package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotConflict возвращается, когда БД отклонила запись из-за пересечения
	// (exclusion constraint или конфликт сериализации)
	ErrSlotConflict = errors.New("booking.repository: slot conflict")

	// ErrStatusChanged возвращается, когда условное обновление не нашло строку в ожидаемом статусе
	ErrStatusChanged = errors.New("booking.repository: booking status changed concurrently")

	// ErrInvalidReference возвращается при нарушении внешнего ключа (барбер или услуга)
	ErrInvalidReference = errors.New("booking.repository: invalid reference")

	// ErrNoTransaction возвращается, когда операция требует транзакцию в контексте
	ErrNoTransaction = errors.New("booking.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
