package queue

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"blogapp/internal/logger"
)

// Outcome is the handler's verdict on a consumed fact.
type Outcome int

const (
	// Ack removes the message from the queue.
	Ack Outcome = iota
	// Requeue returns the message to the queue for redelivery. Used
	// for expected, transient delivery failures.
	Requeue
	// Drop removes the message without delivering it. Used for
	// terminal failures where redelivery cannot help.
	Drop
)

// Handler processes one fact and decides its acknowledgment.
type Handler func(ctx context.Context, fact Fact) Outcome

// Client holds the process-wide broker connection and channel. It is
// safe to share by reference; Close releases both on shutdown.
type Client struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *slog.Logger
}

// Dial connects to the broker and declares the durable queue. Any
// failure here is fatal to startup; reconnect handling is out of scope.
func Dial(cfg Config, log *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		return nil, errors.Join(ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Join(ErrConnect, err)
	}

	if _, err := ch.QueueDeclare(
		cfg.QueueName,
		true,  // durable: survive broker restart
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errors.Join(ErrQueueDeclare, err)
	}

	// One unacked message at a time per consumer instance. Horizontal
	// scaling happens by running more instances against the same queue.
	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errors.Join(ErrConnect, err)
	}

	log.Info("connected to broker",
		logger.Component("queue"),
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
		logger.Queue(cfg.QueueName))

	return &Client{conn: conn, ch: ch, queue: cfg.QueueName, log: log}, nil
}

// Publish sends one persistent fact to the queue. Callers decide their
// own failure policy; Publish does not retry.
func (c *Client) Publish(ctx context.Context, fact Fact) error {
	body, err := fact.encode()
	if err != nil {
		return errors.Join(ErrPublish, err)
	}

	err = c.ch.PublishWithContext(ctx,
		"",      // no exchange routing, direct to queue
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
	if err != nil {
		return errors.Join(ErrPublish, err)
	}
	return nil
}

// Consume registers the handler and blocks until ctx is cancelled or
// the broker closes the delivery stream. Each message is dispatched
// synchronously and acknowledged manually according to the handler's
// outcome; a message whose body cannot be decoded is dropped without
// redelivery.
func (c *Client) Consume(ctx context.Context, handler Handler) error {
	tag := "blogapp-consumer-" + uuid.NewString()
	deliveries, err := c.ch.Consume(
		c.queue,
		tag,
		false, // autoAck: the handler decides
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return errors.Join(ErrConsume, err)
	}

	c.log.Info("consumer started", logger.Component("queue"), logger.Queue(c.queue))

	for {
		select {
		case <-ctx.Done():
			c.log.Info("consumer stopping", logger.Component("queue"))
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveryChannelClosed
			}
			c.dispatch(ctx, d, handler)
		}
	}
}

// dispatch decodes one delivery, runs the handler, and maps its
// outcome onto the broker acknowledgment.
func (c *Client) dispatch(ctx context.Context, d amqp.Delivery, handler Handler) {
	fact, err := decodeFact(d.Body)
	if err != nil {
		c.log.Error("dropping malformed message",
			logger.Component("queue"),
			logger.Error(err))
		c.nack(d, false)
		return
	}

	switch handler(ctx, fact) {
	case Ack:
		if err := d.Ack(false); err != nil {
			c.log.Error("failed to ack message", logger.Component("queue"), logger.Error(err))
		}
	case Requeue:
		c.nack(d, true)
	case Drop:
		c.nack(d, false)
	}
}

func (c *Client) nack(d amqp.Delivery, requeue bool) {
	if err := d.Nack(false, requeue); err != nil {
		c.log.Error("failed to nack message",
			logger.Component("queue"),
			slog.Bool("requeue", requeue),
			logger.Error(err))
	}
}

// Close releases the channel and connection.
func (c *Client) Close() error {
	var errs []error
	if err := c.ch.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := c.conn.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Ping reports whether the broker connection is still open. Used by
// the readiness probe.
func (c *Client) Ping() error {
	if c.conn.IsClosed() {
		return ErrConnect
	}
	return nil
}
