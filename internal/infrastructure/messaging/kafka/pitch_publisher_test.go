package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
	"github.com/riskibarqy/rio-stats/internal/domain/game"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
	kafkago "github.com/segmentio/kafka-go"
)

type recordingWriter struct {
	calls [][]kafkago.Message
	err   error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.calls = append(w.calls, append([]kafkago.Message(nil), msgs...))
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPitchPublisher_ChunksAndKeysByGame(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{}
	pub := newPitchPublisher(writer, "rio.pitches", logging.NewNop())
	pub.chunkSize = 2

	batch := exportbatch.Batch{ID: "b-1", Source: "dir", CreatedAt: time.Unix(1700000000, 0).UTC()}
	rows := []game.PitchRow{
		{GameID: "AA", EventNum: 0},
		{GameID: "AA", EventNum: 1},
		{GameID: "BB", EventNum: 0},
	}
	if err := pub.WritePitches(context.Background(), batch, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(writer.calls) != 2 {
		t.Fatalf("expected 2 writes, got %d", len(writer.calls))
	}
	if len(writer.calls[0]) != 2 || len(writer.calls[1]) != 1 {
		t.Fatalf("unexpected chunk sizes: %d, %d", len(writer.calls[0]), len(writer.calls[1]))
	}
	last := writer.calls[1][0]
	if string(last.Key) != "BB" {
		t.Fatalf("expected key BB, got %q", last.Key)
	}

	var msg PitchMessage
	if err := sonic.Unmarshal(last.Value, &msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.BatchID != "b-1" || msg.Pitch.GameID != "BB" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestPitchPublisher_WrapsWriteError(t *testing.T) {
	t.Parallel()

	boom := errors.New("broker down")
	pub := newPitchPublisher(&recordingWriter{err: boom}, "rio.pitches", logging.NewNop())

	err := pub.WritePitches(context.Background(), exportbatch.Batch{ID: "b"}, []game.PitchRow{{GameID: "AA"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected broker error, got %v", err)
	}
}

func TestNewPitchPublisher_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewPitchPublisher(nil, "topic", nil); err == nil {
		t.Fatalf("expected error without brokers")
	}
	if _, err := NewPitchPublisher([]string{"localhost:9092"}, "", nil); err == nil {
		t.Fatalf("expected error without topic")
	}
}
