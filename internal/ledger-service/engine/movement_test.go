package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveMovement(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		isBank bool
		leg    Contribution
		want   MovementKind
	}{
		{"won is bet", StateWon, false, ContributionDirect, MovementBet},
		{"lost is bet", StateLost, false, ContributionDirect, MovementBet},
		{"won on bank still bet", StateWon, true, ContributionDirect, MovementBet},
		{"lost mirror still bet", StateLost, false, ContributionMirror, MovementBet},
		{"investment on bank direct is expense", StateInvestment, true, ContributionDirect, MovementExpense},
		{"investment off bank mirror is recharge", StateInvestment, false, ContributionMirror, MovementRecharge},
		{"investment on bank mirror is adjustment", StateInvestment, true, ContributionMirror, MovementAdjustment},
		{"investment off bank direct is adjustment", StateInvestment, false, ContributionDirect, MovementAdjustment},
		{"unknown state is other", State("X"), false, ContributionDirect, MovementOther},
		{"empty state is other", State(""), true, ContributionMirror, MovementOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveMovement(tt.state, tt.isBank, tt.leg)
			assert.Equal(t, tt.want, got)
			// função pura: segunda chamada com as mesmas entradas dá o mesmo resultado
			assert.Equal(t, got, DeriveMovement(tt.state, tt.isBank, tt.leg))
		})
	}
}

func TestMovementOf_StoredKindWins(t *testing.T) {
	e := &Entry{State: StateWon, MovementType: MovementAdjustment}
	assert.Equal(t, MovementAdjustment, MovementOf(e, false))
}

func TestMovementOf_DerivesForLegacyEntries(t *testing.T) {
	e := &Entry{State: StateInvestment, Leg: ContributionMirror}
	assert.Equal(t, MovementRecharge, MovementOf(e, false))
	// nada foi gravado no registro
	assert.Equal(t, MovementKind(""), e.MovementType)
}
