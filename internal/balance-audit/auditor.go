package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/radieske/bet-ledger-poc/internal/ledger-service/engine"
	"github.com/radieske/bet-ledger-poc/internal/ledger-service/repo"
	"github.com/radieske/bet-ledger-poc/pkg/contracts/events"
)

// DivergenceCounter conta divergências detectadas entre saldo armazenado e
// saldo recalculado, por eixo.
var DivergenceCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ledger_balance_divergence_total",
	Help: "Divergências entre saldo armazenado e recalculado",
}, []string{"axis"})

// Ledger expõe as leituras necessárias pra auditoria de saldos.
type Ledger interface {
	EntriesByAccount(ctx context.Context, axis engine.Axis, id string) ([]engine.Entry, error)
	StoredBalance(ctx context.Context, axis engine.Axis, id string) (engine.Cents, error)
}

// Publisher publica eventos de divergência detectada.
type Publisher interface {
	PublishDivergence(ctx context.Context, d events.BalanceDivergence) error
}

// Auditor recalcula saldos das contas tocadas por cada mutação e compara
// com o saldo armazenado. Divergência é reportada, nunca corrigida aqui;
// a correção é uma ação explícita via endpoint de recompute.
type Auditor struct {
	log    *zap.Logger
	ledger Ledger
	publ   Publisher
}

func NewAuditor(log *zap.Logger, l Ledger, p Publisher) *Auditor {
	return &Auditor{log: log, ledger: l, publ: p}
}

// Process audita todas as contas tocadas pela mutação.
func (a *Auditor) Process(ctx context.Context, ev events.EntryMutated) error {
	var firstErr error
	for _, w := range ev.Wallets {
		if err := a.auditAccount(ctx, engine.AxisWallet, w); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, inv := range ev.Investors {
		if err := a.auditAccount(ctx, engine.AxisInvestor, inv); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (a *Auditor) auditAccount(ctx context.Context, axis engine.Axis, id string) error {
	entries, err := a.ledger.EntriesByAccount(ctx, axis, id)
	if err != nil {
		return fmt.Errorf("load entries %s/%s: %w", axis, id, err)
	}
	computed := engine.Recompute(entries, id, axis)

	stored, err := a.ledger.StoredBalance(ctx, axis, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// conta removida entre a mutação e a auditoria
			return nil
		}
		return fmt.Errorf("load balance %s/%s: %w", axis, id, err)
	}

	if stored == computed {
		return nil
	}

	a.log.Error("balance divergence",
		zap.String("axis", axis.String()),
		zap.String("account", id),
		zap.Int64("stored_cents", int64(stored)),
		zap.Int64("computed_cents", int64(computed)),
	)
	DivergenceCounter.WithLabelValues(axis.String()).Inc()

	d := events.BalanceDivergence{
		Axis:          axis.String(),
		AccountID:     id,
		StoredCents:   int64(stored),
		ComputedCents: int64(computed),
		Ts:            time.Now(),
	}
	if err := a.publ.PublishDivergence(ctx, d); err != nil {
		a.log.Warn("publish divergence", zap.Error(err))
	}
	return nil
}

// DecodeEntryMutated desserializa o payload consumido do Kafka.
func DecodeEntryMutated(value []byte) (events.EntryMutated, error) {
	var ev events.EntryMutated
	if err := json.Unmarshal(value, &ev); err != nil {
		return ev, fmt.Errorf("unmarshal entry mutated: %w", err)
	}
	return ev, nil
}
