package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"media-access/config"
)

// Publisher pushes transcode requests onto the exchange the transcode
// worker consumes from.
type Publisher interface {
	Publish(ctx context.Context, message any) error
	Close() error
}

type publisher struct {
	ch         *amqp.Channel
	exchange   string
	routingKey string
}

func NewPublisher(conn *amqp.Connection, cfg *config.RabbitMQ) (Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	exchangeName := "transcoding_exchange"
	routingKey := "transcoding.request"

	err = ch.ExchangeDeclare(exchangeName, cfg.Kind, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &publisher{
		ch:         ch,
		exchange:   exchangeName,
		routingKey: routingKey,
	}, nil
}

func (p *publisher) Publish(ctx context.Context, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("exchange", p.exchange).Msg("failed to publish message")
		return err
	}

	return nil
}

func (p *publisher) Close() error {
	return p.ch.Close()
}
