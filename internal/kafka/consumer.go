package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/logger"
	"github.com/segmentio/kafka-go"
)

type ConsumerConfig struct {
	Brokers string
	Topic   string
	GroupID string
}

// OrderIngester is what the consumer hands decoded orders to.
type OrderIngester interface {
	IngestOrder(ctx context.Context, o *domain.Order) error
}

// orderMessage is the order-entry wire format.
type orderMessage struct {
	Key        string        `json:"key"`
	Contract   string        `json:"contract"`
	Load       string        `json:"load"`
	Work       string        `json:"work"`
	Client     string        `json:"client"`
	DeliveryAt time.Time     `json:"delivery_at"`
	Items      []itemMessage `json:"items"`
}

type itemMessage struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Balance     int    `json:"balance"`
}

// DecodeOrder parses an order-entry message into a normalized order.
func DecodeOrder(b []byte) (*domain.Order, error) {
	var m orderMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode order message: %w", err)
	}
	if m.DeliveryAt.IsZero() {
		return nil, errors.New("decode order message: delivery_at is required")
	}
	o := &domain.Order{
		Key:        m.Key,
		Contract:   m.Contract,
		Load:       m.Load,
		Work:       m.Work,
		Client:     m.Client,
		DeliveryAt: m.DeliveryAt,
	}
	for _, it := range m.Items {
		o.Items = append(o.Items, &domain.LineItem{
			Code:        strings.TrimSpace(it.Code),
			Description: it.Description,
			Balance:     it.Balance,
		})
	}
	if err := o.Normalize(); err != nil {
		return nil, fmt.Errorf("decode order message: %w", err)
	}
	return o, nil
}

func StartConsumer(ctx context.Context, svc OrderIngester, cfg ConsumerConfig) (*kafka.Reader, error) {
	brokers := strings.Split(cfg.Brokers, ",")
	if len(brokers) == 0 || brokers[0] == "" {
		return nil, errors.New("kafka consumer: no brokers")
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         brokers,
		GroupID:         cfg.GroupID,
		Topic:           cfg.Topic,
		MinBytes:        1,
		MaxBytes:        10e6,
		CommitInterval:  0,
		StartOffset:     kafka.FirstOffset,
		ReadLagInterval: -1,
	})

	logger.Info("kafka consumer starting", "brokers", cfg.Brokers, "topic", cfg.Topic, "group", cfg.GroupID)

	go func() {
		defer r.Close()

		backoff := time.Millisecond * 300
		for {
			m, err := r.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("kafka fetch error", "err", err)
				if !sleep(ctx, backoff) {
					return
				}
				continue
			}
			logger.Debug("order fetched", "partition", m.Partition, "offset", m.Offset)

			o, err := DecodeOrder(m.Value)
			if err != nil {
				logger.Warn("kafka invalid order. skip and commit", "offset", m.Offset, "err", err)
				_ = r.CommitMessages(ctx, m)
				continue
			}

			// The reader does not hand out an uncommitted message twice, so
			// the same order is retried here until it lands or ctx ends.
			if err = ingestWithRetry(ctx, svc, o, backoff); err != nil {
				return
			}

			if err := r.CommitMessages(ctx, m); err != nil {
				logger.Warn("[kafka] commit failed", "err", err)
			} else {
				logger.Info("[kafka] committed", "topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "key", o.Key)
			}
		}
	}()
	return r, nil
}

// ingestWithRetry keeps ingesting o until it succeeds. It only gives up
// when ctx is done.
func ingestWithRetry(ctx context.Context, svc OrderIngester, o *domain.Order, backoff time.Duration) error {
	for {
		err := svc.IngestOrder(ctx, o)
		if err == nil {
			return nil
		}
		logger.Warn("kafka ingest order fail, will retry", "key", o.Key, "err", err)
		if !sleep(ctx, backoff) {
			return ctx.Err()
		}
	}
}

// sleep waits for d and reports false when ctx ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
