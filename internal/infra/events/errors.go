package events

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("events: broker connection failed")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("events: publish failed")

	// ErrBufferFull возвращается, когда буфер неотправленных событий заполнен
	ErrBufferFull = errors.New("events: publish buffer is full")

	// ErrClosed возвращается после Close
	ErrClosed = errors.New("events: publisher is closed")
)
