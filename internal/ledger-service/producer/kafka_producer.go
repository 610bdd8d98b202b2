package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	sharedkafka "github.com/radieske/bet-ledger-poc/internal/shared/kafka"
	"github.com/radieske/bet-ledger-poc/pkg/contracts/events"
)

// KafkaPublisher publica mutações de lançamentos confirmadas no tópico
// ledger_entries. A chave da mensagem é o id do lançamento, preservando
// a ordem por lançamento dentro da partição.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishEntryMutated(ctx context.Context, e events.EntryMutated) error {
	if e.TsUnixMs == 0 {
		e.TsUnixMs = time.Now().UnixMilli()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry mutated: %w", err)
	}
	return sharedkafka.WriteJSON(ctx, p.writer, e.EntryID, payload)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
