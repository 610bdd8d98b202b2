package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	sharedkafka "github.com/radieske/bet-ledger-poc/internal/shared/kafka"
	"github.com/radieske/bet-ledger-poc/pkg/contracts/events"
)

// KafkaDivergencePublisher publica divergências no tópico balance_divergence.
type KafkaDivergencePublisher struct {
	writer *kafka.Writer
}

func NewKafkaDivergencePublisher(w *kafka.Writer) *KafkaDivergencePublisher {
	return &KafkaDivergencePublisher{writer: w}
}

func (p *KafkaDivergencePublisher) PublishDivergence(ctx context.Context, d events.BalanceDivergence) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal divergence: %w", err)
	}
	return sharedkafka.WriteJSON(ctx, p.writer, d.Axis+"/"+d.AccountID, payload)
}

func (p *KafkaDivergencePublisher) Close() error {
	return p.writer.Close()
}
