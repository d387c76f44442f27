// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "plmobile.recognitions"

type RabbitMQConfig struct {
	AMQPURL  string
	Exchange string
}

type Publisher struct {
	AMQPURL  string
	Exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

type ConsumerConfig struct {
	AMQPURL    string
	Exchange   string
	BindingKey string
	QueueName  string
}

type Consumer struct {
	config   ConsumerConfig
	conn     *amqp.Connection
	channel  *amqp.Channel
	stopChan chan struct{}
	stopOnce sync.Once
}
