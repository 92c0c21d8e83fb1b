package kafka

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokersSTR, topic string) *Producer {
	brokers := strings.Split(brokersSTR, ",")

	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

// EncodeEvent builds the message for e, keyed by order so one order's
// events stay on one partition.
func EncodeEvent(e domain.ShipmentEvent) (kafka.Message, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(e.OrderKey),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event-type", Value: []byte(e.Type)},
		},
	}, nil
}

func (p *Producer) PublishEvent(ctx context.Context, e domain.ShipmentEvent) error {
	m, err := EncodeEvent(e)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, m)
}
