package queue

import "errors"

var (
	// ErrConnect is returned when the broker connection cannot be established.
	ErrConnect = errors.New("queue: failed to connect to broker")
	// ErrQueueDeclare is returned when the durable queue cannot be declared.
	ErrQueueDeclare = errors.New("queue: failed to declare queue")
	// ErrPublish is returned when publishing a fact fails.
	ErrPublish = errors.New("queue: failed to publish message")
	// ErrConsume is returned when the consumer cannot be registered.
	ErrConsume = errors.New("queue: failed to start consuming")
	// ErrDeliveryChannelClosed is returned when the broker closes the
	// delivery stream while the consumer is still running.
	ErrDeliveryChannelClosed = errors.New("queue: delivery channel closed")
)
