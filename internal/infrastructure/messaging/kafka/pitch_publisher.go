// Package kafka publishes exported pitch rows as JSON messages.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
	"github.com/riskibarqy/rio-stats/internal/domain/game"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
	kafkago "github.com/segmentio/kafka-go"
)

const defaultChunkSize = 500

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// PitchMessage is the value of every published message.
type PitchMessage struct {
	BatchID string        `json:"batch_id"`
	Source  string        `json:"source"`
	Pitch   game.PitchRow `json:"pitch"`
}

type PitchPublisher struct {
	writer    messageWriter
	topic     string
	chunkSize int
	logger    *logging.Logger
}

func NewPitchPublisher(brokers []string, topic string, logger *logging.Logger) (*PitchPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.LeastBytes{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
	}
	return newPitchPublisher(writer, topic, logger), nil
}

func newPitchPublisher(writer messageWriter, topic string, logger *logging.Logger) *PitchPublisher {
	return &PitchPublisher{
		writer:    writer,
		topic:     topic,
		chunkSize: defaultChunkSize,
		logger:    logging.OrDefault(logger),
	}
}

// WritePitches publishes one message per row keyed by game id, so the rows
// of a game land on the same partition in event order.
func (p *PitchPublisher) WritePitches(ctx context.Context, batch exportbatch.Batch, rows []game.PitchRow) error {
	if len(rows) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, min(len(rows), p.chunkSize))
	flush := func() error {
		if len(msgs) == 0 {
			return nil
		}
		if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
			return fmt.Errorf("publish pitch rows topic=%s: %w", p.topic, err)
		}
		msgs = msgs[:0]
		return nil
	}

	for _, row := range rows {
		value, err := sonic.Marshal(PitchMessage{BatchID: batch.ID, Source: batch.Source, Pitch: row})
		if err != nil {
			return fmt.Errorf("marshal pitch row game=%s event=%d: %w", row.GameID, row.EventNum, err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(row.GameID),
			Value: value,
			Time:  batch.CreatedAt,
		})
		if len(msgs) == p.chunkSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published pitch rows", "batch_id", batch.ID, "topic", p.topic, "rows", len(rows))
	return nil
}

func (p *PitchPublisher) Close() error {
	return p.writer.Close()
}
