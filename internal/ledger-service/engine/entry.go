package engine

import (
	"errors"
	"strings"
	"time"
)

// State é o código de resultado de um lançamento.
type State string

const (
	StateWon        State = "WON"
	StateLost       State = "LOST"
	StateInvestment State = "INVESTMENT"
)

// MovementKind classifica o lançamento no ledger.
type MovementKind string

const (
	MovementBet        MovementKind = "BET"
	MovementExpense    MovementKind = "EXPENSE"
	MovementRecharge   MovementKind = "RECHARGE"
	MovementAdjustment MovementKind = "ADJUSTMENT"
	MovementOther      MovementKind = "OTHER"
)

// Contribution distingue a contribuição direta de um lançamento da sua
// perna espelho de transferência. É o multiplicador de sinal do impacto:
// a perna espelho de uma recarga carrega netImpact negativo e sinal
// invertido, o que soma positivo na carteira de destino sem precisar de
// um tipo de registro "transferência" dedicado.
type Contribution int

const (
	ContributionDirect Contribution = iota
	ContributionMirror
)

// Sign devolve o multiplicador aplicado ao netImpact deste lançamento.
func (c Contribution) Sign() Cents {
	switch c {
	case ContributionDirect:
		return 1
	case ContributionMirror:
		return -1
	}
	// valor desconhecido conta como direto (registro legado)
	return 1
}

// Applied é a representação booleana usada em armazenamento e na API
// (true = direto, false = espelho).
func (c Contribution) Applied() bool { return c != ContributionMirror }

// Toggled devolve a perna oposta.
func (c Contribution) Toggled() Contribution {
	if c == ContributionMirror {
		return ContributionDirect
	}
	return ContributionMirror
}

// ContributionFromApplied converte o flag booleano armazenado.
func ContributionFromApplied(applied bool) Contribution {
	if applied {
		return ContributionDirect
	}
	return ContributionMirror
}

// Entry é um lançamento do ledger: aposta, gasto ou perna de transferência.
type Entry struct {
	ID             string
	Date           time.Time // sempre ao meio-dia local, evita deriva de fuso
	Channel        string
	InvestmentType string
	Wallet         string
	Investor       string
	State          State

	StakeCents       Cents
	GrossResultCents Cents
	NetImpactCents   Cents

	Leg          Contribution
	MovementType MovementKind // vazio em registros legados; derivado na leitura

	// Campos opcionais
	OfferedOdds     float64
	AppliedOdds     float64
	IndependentOdds bool
	OddsValues      []float64
	Notes           string
	Sport           string
	Selection       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Effective devolve o impacto efetivo do lançamento nos saldos:
// sinal da perna × netImpact.
func (e *Entry) Effective() Cents {
	return e.Leg.Sign() * e.NetImpactCents
}

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidState = errors.New("invalid state")
)

// Validate rejeita lançamentos incompletos antes de qualquer transação.
func (e *Entry) Validate() error {
	if e.Wallet == "" || e.Investor == "" || e.Channel == "" || e.InvestmentType == "" || e.Date.IsZero() {
		return ErrMissingField
	}
	switch e.State {
	case StateWon, StateLost, StateInvestment:
		return nil
	}
	return ErrInvalidState
}

// IsBank indica se o nome de carteira é a conta banco (comparação
// case-insensitive, ignorando espaços nas bordas).
func IsBank(name, bankName string) bool {
	return strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(bankName))
}

// DateAtNoon normaliza uma data de calendário para o instante absoluto
// do meio-dia local daquele dia.
func DateAtNoon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

// ParseDateAtNoon interpreta "2006-01-02"; vazio ou inválido usa hoje.
func ParseDateAtNoon(yyyyMmDd string) time.Time {
	if yyyyMmDd == "" {
		return DateAtNoon(time.Now())
	}
	t, err := time.ParseInLocation("2006-01-02", yyyyMmDd, time.Local)
	if err != nil {
		return DateAtNoon(time.Now())
	}
	return DateAtNoon(t)
}
