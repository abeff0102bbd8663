package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BatchHandler обрабатывает одну заявку на производство.
type BatchHandler interface {
	HandleBatchMessage(ctx context.Context, key string, payload []byte) error
}

// messageReader — часть kafka.Reader, которой пользуется Consumer.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader  messageReader
	handler BatchHandler
	log     *zap.Logger
}

func NewConsumer(brokers []string, topic, groupID string, handler BatchHandler, log *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		StartOffset: kafka.LastOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
	})
	return newConsumer(reader, handler, log)
}

func newConsumer(reader messageReader, handler BatchHandler, log *zap.Logger) *Consumer {
	return &Consumer{reader: reader, handler: handler, log: log}
}

// Run читает заявки до отмены ctx. Заявка коммитится и после ошибки
// обработки: битое сообщение или неизвестный вкус не исправятся повтором.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info("context done, stopping consumer")
				return ctx.Err()
			}
			return err
		}
		if err := c.handler.HandleBatchMessage(ctx, string(m.Key), m.Value); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			c.log.Error("failed to handle batch message",
				zap.String("key", string(m.Key)), zap.Int64("offset", m.Offset), zap.Error(err))
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.log.Error("failed to commit message", zap.Error(err))
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
