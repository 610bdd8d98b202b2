package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// balances aplica um plano sobre um mapa de saldos em memória, simulando
// os incrementos comutativos do repositório.
type balances struct {
	wallets   map[string]Cents
	investors map[string]Cents
}

func newBalances() *balances {
	return &balances{wallets: map[string]Cents{}, investors: map[string]Cents{}}
}

func (b *balances) apply(p Plan) {
	for _, d := range p.Deltas {
		switch d.Axis {
		case AxisWallet:
			b.wallets[d.AccountID] += d.Delta
		case AxisInvestor:
			b.investors[d.AccountID] += d.Delta
		}
	}
}

func betEntry(wallet, investor string, net Cents, leg Contribution) *Entry {
	return &Entry{
		Wallet:         wallet,
		Investor:       investor,
		State:          StateWon,
		NetImpactCents: net,
		Leg:            leg,
		MovementType:   MovementBet,
	}
}

func TestPlanCreate_AppliesEffectiveToBothAxes(t *testing.T) {
	b := newBalances()
	b.apply(PlanCreate(betEntry("Bet365", "Alex", 3000, ContributionDirect)))

	assert.Equal(t, Cents(3000), b.wallets["Bet365"])
	assert.Equal(t, Cents(3000), b.investors["Alex"])
}

func TestPlanCreate_MirrorLegFlipsSign(t *testing.T) {
	e := betEntry("Bet365", "Alex", -1000, ContributionMirror)
	assert.Equal(t, Cents(1000), e.Effective())

	b := newBalances()
	b.apply(PlanCreate(e))
	assert.Equal(t, Cents(1000), b.wallets["Bet365"])
	assert.Equal(t, Cents(1000), b.investors["Alex"])
}

func TestPlanDelete_RestoresPreCreationBalances(t *testing.T) {
	e := betEntry("Bet365", "Alex", 2750, ContributionDirect)

	b := newBalances()
	b.apply(PlanCreate(e))
	b.apply(PlanDelete(e))

	assert.Equal(t, Cents(0), b.wallets["Bet365"])
	assert.Equal(t, Cents(0), b.investors["Alex"])
}

func TestPlanEdit_SameAccountsSingleDelta(t *testing.T) {
	// editar o impacto de X para Y sem trocar contas gera exatamente um
	// delta de Y−X por eixo, nunca reverte+reaplica
	old := betEntry("Bet365", "Alex", 1000, ContributionDirect)
	new := betEntry("Bet365", "Alex", 1800, ContributionDirect)

	p := PlanEdit(old, new)
	require.Len(t, p.Deltas, 2)
	assert.Equal(t, AccountDelta{Axis: AxisWallet, AccountID: "Bet365", Delta: 800}, p.Deltas[0])
	assert.Equal(t, AccountDelta{Axis: AxisInvestor, AccountID: "Alex", Delta: 800}, p.Deltas[1])
}

func TestPlanEdit_NoChangeNoDeltas(t *testing.T) {
	old := betEntry("Bet365", "Alex", 1000, ContributionDirect)
	p := PlanEdit(old, old)
	assert.Empty(t, p.Deltas)
}

func TestPlanEdit_WalletChangedInvestorKept(t *testing.T) {
	// trocar a carteira de A para B move o efetivo de A para B e não
	// mexe no investidor
	old := betEntry("Bet365", "Alex", 1200, ContributionDirect)
	new := betEntry("Betfair", "Alex", 1200, ContributionDirect)

	b := newBalances()
	b.apply(PlanCreate(old))
	b.apply(PlanEdit(old, new))

	assert.Equal(t, Cents(0), b.wallets["Bet365"])
	assert.Equal(t, Cents(1200), b.wallets["Betfair"])
	assert.Equal(t, Cents(1200), b.investors["Alex"])
}

func TestPlanEdit_BothAccountsChanged(t *testing.T) {
	old := betEntry("Bet365", "Alex", 500, ContributionDirect)
	new := betEntry("Betfair", "Naira", -700, ContributionDirect)

	b := newBalances()
	b.apply(PlanCreate(old))
	b.apply(PlanEdit(old, new))

	assert.Equal(t, Cents(0), b.wallets["Bet365"])
	assert.Equal(t, Cents(-700), b.wallets["Betfair"])
	assert.Equal(t, Cents(0), b.investors["Alex"])
	assert.Equal(t, Cents(-700), b.investors["Naira"])
}

func TestPlanEdit_MirrorLegUsesOwnSign(t *testing.T) {
	// edição de uma perna espelho: efetivo = −netImpact nas duas pontas
	old := betEntry("Bet365", "Alex", -1000, ContributionMirror)
	new := betEntry("Bet365", "Alex", -1500, ContributionMirror)

	p := PlanEdit(old, new)
	require.Len(t, p.Deltas, 2)
	// efetivo passou de +1000 para +1500
	assert.Equal(t, Cents(500), p.Deltas[0].Delta)
}

func TestPlanToggle_RoundTripRestoresBalances(t *testing.T) {
	e := betEntry("Bet365", "Alex", 900, ContributionDirect)

	b := newBalances()
	b.apply(PlanCreate(e))

	p1, flipped, err := PlanToggle(e, false)
	require.NoError(t, err)
	b.apply(p1)
	assert.Equal(t, Cents(-900), b.wallets["Bet365"])
	assert.Equal(t, Cents(-900), b.investors["Alex"])

	p2, back, err := PlanToggle(&flipped, false)
	require.NoError(t, err)
	b.apply(p2)
	assert.Equal(t, Cents(900), b.wallets["Bet365"])
	assert.Equal(t, Cents(900), b.investors["Alex"])
	assert.Equal(t, e.Leg, back.Leg)
}

func TestPlanToggle_RederivesMovement(t *testing.T) {
	// um INVESTMENT direto no banco é GASTO; ao virar espelho vira AJUSTE
	e := &Entry{
		Wallet:         "Banco",
		Investor:       "Alex",
		State:          StateInvestment,
		NetImpactCents: -2000,
		Leg:            ContributionDirect,
		MovementType:   MovementExpense,
	}
	_, updated, err := PlanToggle(e, true)
	require.NoError(t, err)
	assert.Equal(t, ContributionMirror, updated.Leg)
	assert.Equal(t, MovementAdjustment, updated.MovementType)
}

func TestPlanToggle_BetIgnoresLegForClassification(t *testing.T) {
	e := betEntry("Bet365", "Alex", 100, ContributionDirect)
	_, updated, err := PlanToggle(e, false)
	require.NoError(t, err)
	assert.Equal(t, MovementBet, updated.MovementType)
}

func TestPlanToggle_RechargeMirrorLegRejected(t *testing.T) {
	_, dest, err := BuildRecharge(RechargeParams{
		Bank: "Banco", Destination: "Bet365", Investor: "Alex", Amount: 1000,
	})
	require.NoError(t, err)

	_, _, err = PlanToggle(&dest, false)
	assert.ErrorIs(t, err, ErrMirrorLegFixed)
}

func TestPlanToggle_LegacyRechargeLegRejected(t *testing.T) {
	// registro antigo sem tipo armazenado: a classificação derivada
	// também bloqueia o toggle
	e := &Entry{
		Wallet:         "Bet365",
		Investor:       "Alex",
		State:          StateInvestment,
		NetImpactCents: -500,
		Leg:            ContributionMirror,
	}
	_, _, err := PlanToggle(e, false)
	assert.ErrorIs(t, err, ErrMirrorLegFixed)
}
