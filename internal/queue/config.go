package queue

import "fmt"

// Config is the environment-sourced broker configuration.
type Config struct {
	Host      string `env:"RABBITMQ_HOST" envDefault:"localhost"`
	Port      int    `env:"RABBITMQ_PORT" envDefault:"5672"`
	Username  string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	Password  string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	QueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"email_queue"`
}

// URL renders the AMQP connection string.
func (c Config) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.Username, c.Password, c.Host, c.Port)
}
