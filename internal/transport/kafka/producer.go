package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"icecream-parlor/internal/domain"
)

type Producer struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewProducer(brokers []string, topic string, log *zap.Logger) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
	}
	return &Producer{writer: w, log: log}
}

// PublishBatch ставит заявку в очередь и возвращает её с присвоенным batch_id.
func (p *Producer) PublishBatch(ctx context.Context, flavors []string) (domain.BatchRequest, error) {
	req := NewBatchRequest(flavors)
	payload, err := json.Marshal(req)
	if err != nil {
		return domain.BatchRequest{}, err
	}
	msg := kafka.Message{
		Key:   []byte(req.BatchID),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return domain.BatchRequest{}, err
	}
	p.log.Debug("batch published", zap.String("batch_id", req.BatchID), zap.Strings("flavors", flavors))
	return req, nil
}

func NewBatchRequest(flavors []string) domain.BatchRequest {
	return domain.BatchRequest{BatchID: uuid.NewString(), Flavors: flavors}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
