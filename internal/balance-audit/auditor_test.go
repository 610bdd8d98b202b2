package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/bet-ledger-poc/internal/ledger-service/engine"
	"github.com/radieske/bet-ledger-poc/internal/ledger-service/repo"
	"github.com/radieske/bet-ledger-poc/pkg/contracts/events"
)

type fakeLedger struct {
	entries  []engine.Entry
	balances map[string]engine.Cents // chave "axis/id"
}

func (f *fakeLedger) EntriesByAccount(_ context.Context, axis engine.Axis, id string) ([]engine.Entry, error) {
	var out []engine.Entry
	for _, e := range f.entries {
		if (axis == engine.AxisWallet && e.Wallet == id) || (axis == engine.AxisInvestor && e.Investor == id) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedger) StoredBalance(_ context.Context, axis engine.Axis, id string) (engine.Cents, error) {
	c, ok := f.balances[axis.String()+"/"+id]
	if !ok {
		return 0, repo.ErrNotFound
	}
	return c, nil
}

type capturePublisher struct {
	published []events.BalanceDivergence
}

func (c *capturePublisher) PublishDivergence(_ context.Context, d events.BalanceDivergence) error {
	c.published = append(c.published, d)
	return nil
}

func entry(wallet, investor string, net engine.Cents) engine.Entry {
	return engine.Entry{
		ID:             "e-" + wallet + "-" + investor,
		Date:           time.Now(),
		Channel:        "Bet",
		InvestmentType: "Aposta",
		Wallet:         wallet,
		Investor:       investor,
		State:          engine.StateLost,
		NetImpactCents: net,
		Leg:            engine.ContributionDirect,
		MovementType:   engine.MovementBet,
	}
}

func TestAuditorSilencioSemDivergencia(t *testing.T) {
	ledger := &fakeLedger{
		entries: []engine.Entry{entry("Bet365", "Alex", -2000)},
		balances: map[string]engine.Cents{
			"wallet/Bet365": -2000,
			"investor/Alex": -2000,
		},
	}
	sink := &capturePublisher{}
	a := NewAuditor(zap.NewNop(), ledger, sink)

	err := a.Process(context.Background(), events.EntryMutated{
		Wallets:   []string{"Bet365"},
		Investors: []string{"Alex"},
	})
	require.NoError(t, err)
	assert.Empty(t, sink.published)
}

func TestAuditorReportaDivergenciaSemCorrigir(t *testing.T) {
	ledger := &fakeLedger{
		entries: []engine.Entry{entry("Bet365", "Alex", -2000)},
		balances: map[string]engine.Cents{
			"wallet/Bet365": -1500, // divergente do recalculado (-2000)
			"investor/Alex": -2000,
		},
	}
	sink := &capturePublisher{}
	a := NewAuditor(zap.NewNop(), ledger, sink)

	err := a.Process(context.Background(), events.EntryMutated{
		Wallets:   []string{"Bet365"},
		Investors: []string{"Alex"},
	})
	require.NoError(t, err)
	require.Len(t, sink.published, 1)

	d := sink.published[0]
	assert.Equal(t, "wallet", d.Axis)
	assert.Equal(t, "Bet365", d.AccountID)
	assert.Equal(t, int64(-1500), d.StoredCents)
	assert.Equal(t, int64(-2000), d.ComputedCents)

	// saldo armazenado segue intocado; auditoria nunca corrige
	stored, err := ledger.StoredBalance(context.Background(), engine.AxisWallet, "Bet365")
	require.NoError(t, err)
	assert.Equal(t, engine.Cents(-1500), stored)
}

func TestAuditorIgnoraContaRemovida(t *testing.T) {
	ledger := &fakeLedger{
		entries:  nil,
		balances: map[string]engine.Cents{},
	}
	sink := &capturePublisher{}
	a := NewAuditor(zap.NewNop(), ledger, sink)

	err := a.Process(context.Background(), events.EntryMutated{Wallets: []string{"Extinta"}})
	require.NoError(t, err)
	assert.Empty(t, sink.published)
}

func TestAuditorEspelhoContaComoPositivo(t *testing.T) {
	// perna espelho de recarga: net -1000 vira +1000 no destino
	e := entry("Bet365", "Alex", -1000)
	e.Leg = engine.ContributionMirror
	e.MovementType = engine.MovementRecharge

	ledger := &fakeLedger{
		entries: []engine.Entry{e},
		balances: map[string]engine.Cents{
			"wallet/Bet365": 1000,
		},
	}
	sink := &capturePublisher{}
	a := NewAuditor(zap.NewNop(), ledger, sink)

	err := a.Process(context.Background(), events.EntryMutated{Wallets: []string{"Bet365"}})
	require.NoError(t, err)
	assert.Empty(t, sink.published)
}

func TestDecodeEntryMutated(t *testing.T) {
	raw := []byte(`{"entry_id":"abc","op":"CREATE","wallets":["Bet365"],"investors":["Alex"],"ts_unix_ms":123}`)
	ev, err := DecodeEntryMutated(raw)
	require.NoError(t, err)
	assert.Equal(t, "abc", ev.EntryID)
	assert.Equal(t, []string{"Bet365"}, ev.Wallets)

	_, err = DecodeEntryMutated([]byte("{nope"))
	assert.Error(t, err)
}
