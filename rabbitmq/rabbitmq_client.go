// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"plmobile-server/commons"
	"plmobile-server/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublisherClosed = errors.New("rabbitmq publisher is closed")

// NewPublisher dials the broker and declares a durable topic exchange for
// recognition events.
func NewPublisher(c RabbitMQConfig) (*Publisher, error) {
	if c.AMQPURL == "" {
		return nil, fmt.Errorf("rabbitmq: AMQP URL is required")
	}
	if c.Exchange == "" {
		c.Exchange = DefaultExchange
	}

	p := &Publisher{AMQPURL: c.AMQPURL, Exchange: c.Exchange}
	if err := p.connect(); err != nil {
		return nil, err
	}
	commons.Logger.Infof("RabbitMQ publisher ready on exchange %s", p.Exchange)
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.AMQPURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.Exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("exchange declare: %w", err)
	}
	p.conn = conn
	p.channel = ch
	return nil
}

// Publish sends ev to the exchange, reconnecting once if the channel was
// closed underneath us.
func (p *Publisher) Publish(ctx context.Context, ev *models.RecognitionEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return ErrPublisherClosed
	}
	if p.channel.IsClosed() {
		commons.Logger.Warn("RabbitMQ channel closed, reconnecting")
		if p.conn != nil {
			_ = p.conn.Close()
		}
		if err := p.connect(); err != nil {
			return err
		}
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    ev.CreatedAt,
		Body:         body,
	}
	if err := p.channel.PublishWithContext(ctx, p.Exchange, ev.RoutingKey(), false, false, msg); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	commons.Logger.Debugf("Published recognition event %s with key %s", ev.ID, ev.RoutingKey())
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
		p.channel = nil
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
		p.conn = nil
	}
	return errors.Join(errs...)
}
