package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher writes one message per stored vote, keyed by vote id.
type Publisher struct {
	writer messageWriter
}

// NewWriter builds a writer for one message per call. WriteMessages runs in the
// vote request, so batches flush after BatchTimeout instead of the 1s default.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchSize:              1,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
	}
}

func NewPublisher(w messageWriter) *Publisher {
	return &Publisher{writer: w}
}

func (p *Publisher) PublishVoteCast(ctx context.Context, event domain.VoteCastEvent) error {
	msg, err := Message(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write vote event: %w", err)
	}
	return nil
}

func Message(event domain.VoteCastEvent) (kafka.Message, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode vote event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.ID),
		Value: b,
		Time:  event.Timestamp,
	}, nil
}
