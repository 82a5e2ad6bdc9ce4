package broker

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к RabbitMQ
	ErrConnect = errors.New("broker: failed to connect")

	// ErrPublish возвращается, когда сообщение не удалось опубликовать
	ErrPublish = errors.New("broker: failed to publish")

	// ErrClosed возвращается при публикации после Close
	ErrClosed = errors.New("broker: publisher closed")
)
