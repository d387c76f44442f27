// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"encoding/json"
	"fmt"
	"strings"

	"plmobile-server/commons"
	"plmobile-server/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueNameFor derives a queue name from a binding key.
func QueueNameFor(bindingKey string) string {
	name := strings.NewReplacer(".", "_", "*", "any", "#", "all").Replace(bindingKey)
	return "plmobile_" + name
}

func NewConsumer(config ConsumerConfig) (*Consumer, error) {
	if config.Exchange == "" {
		config.Exchange = DefaultExchange
	}
	if config.BindingKey == "" {
		config.BindingKey = "recognition.#"
	}
	c := &Consumer{config: config, stopChan: make(chan struct{})}

	conn, err := amqp.Dial(config.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	c.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("channel: %w", err)
	}
	c.channel = ch

	if err := ch.Qos(1, 0, false); err != nil {
		c.Close()
		return nil, fmt.Errorf("qos: %w", err)
	}

	qName := config.QueueName
	if qName == "" {
		qName = QueueNameFor(config.BindingKey)
	}

	queue, err := ch.QueueDeclare(qName, true, false, false, false, nil)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("queue declare: %w", err)
	}

	if err := ch.QueueBind(queue.Name, config.BindingKey, config.Exchange, false, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("queue bind failed (check if exchange '%s' exists): %w", config.Exchange, err)
	}

	config.QueueName = queue.Name
	c.config = config

	commons.Logger.Infof("Queue ready: %s (exchange=%s, key=%s)", queue.Name, config.Exchange, config.BindingKey)
	return c, nil
}

// Start delivers decoded events to handle until Stop is called or the
// delivery channel closes. Undecodable messages are rejected without requeue.
func (c *Consumer) Start(handle func(*models.RecognitionEvent) error) error {
	msgs, err := c.channel.Consume(
		c.config.QueueName, "", false, false, false, false, nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					commons.Logger.Info("Message channel closed")
					return
				}
				c.handleMessage(msg, handle)
			case <-c.stopChan:
				commons.Logger.Info("Stop signal received")
				return
			}
		}
	}()
	return nil
}

func (c *Consumer) handleMessage(msg amqp.Delivery, handle func(*models.RecognitionEvent) error) {
	var ev models.RecognitionEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		commons.Logger.Errorf("Discarding malformed event: %v", err)
		_ = msg.Reject(false)
		return
	}
	if err := handle(&ev); err != nil {
		commons.Logger.Errorf("Event %s handler failed: %v", ev.ID, err)
		_ = msg.Nack(false, true)
		return
	}
	if err := msg.Ack(false); err != nil {
		commons.Logger.Errorf("Ack failed: %v", err)
	}
}

func (c *Consumer) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

func (c *Consumer) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
