package engine

import (
	"errors"
	"time"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrMissingAccount    = errors.New("account selection required")
	ErrBankDestination   = errors.New("bank account cannot be a recharge destination")
)

// ExpenseParams descreve um gasto simples (curso, comissão) pago pelo banco.
type ExpenseParams struct {
	Date           time.Time
	Bank           string // carteira de origem (banco)
	Investor       string
	Channel        string
	InvestmentType string
	Amount         Cents
	Notes          string
}

// BuildExpense monta a perna única de um gasto: carteira banco, estado
// INVESTMENT, contribuição direta, líquido = −valor. Debita banco e
// investidor pelo mesmo montante.
func BuildExpense(p ExpenseParams) (Entry, error) {
	if p.Amount <= 0 {
		return Entry{}, ErrNonPositiveAmount
	}
	if p.Bank == "" || p.Investor == "" {
		return Entry{}, ErrMissingAccount
	}

	date := p.Date
	if date.IsZero() {
		date = DateAtNoon(time.Now())
	}

	return Entry{
		Date:             date,
		Channel:          p.Channel,
		InvestmentType:   p.InvestmentType,
		Wallet:           p.Bank,
		Investor:         p.Investor,
		State:            StateInvestment,
		StakeCents:       p.Amount,
		GrossResultCents: 0,
		NetImpactCents:   -p.Amount,
		Leg:              ContributionDirect,
		MovementType:     MovementExpense,
		Notes:            p.Notes,
	}, nil
}

// RechargeParams descreve uma recarga: capital movido do banco para uma
// carteira de casa de apostas, atribuído a um investidor.
type RechargeParams struct {
	Date               time.Time
	Bank               string // origem
	Destination        string // casa de apostas
	Investor           string
	Channel            string
	BankInvestmentType string // campo "Tipo" da perna banco
	DestInvestmentType string // campo "Tipo" da perna casa
	Amount             Cents
}

// BuildRecharge monta as duas pernas vinculadas de uma recarga.
//
// Perna origem: banco, direto, líquido = −valor, GASTO → debita banco e
// investidor. Perna destino: casa, espelho, líquido = −valor, RECARGA →
// efetivo(+valor) credita a casa e devolve +valor ao mesmo investidor.
// Com o mesmo investidor nas duas pernas o agregado dele fecha em zero:
// o capital só muda de lugar. A convenção de sinal da perna espelho é
// exatamente o motivo de Contribution existir como conceito de ledger.
func BuildRecharge(p RechargeParams) (source, dest Entry, err error) {
	if p.Amount <= 0 {
		return Entry{}, Entry{}, ErrNonPositiveAmount
	}
	if p.Bank == "" || p.Destination == "" || p.Investor == "" {
		return Entry{}, Entry{}, ErrMissingAccount
	}
	if IsBank(p.Destination, p.Bank) {
		return Entry{}, Entry{}, ErrBankDestination
	}

	date := p.Date
	if date.IsZero() {
		date = DateAtNoon(time.Now())
	}

	source = Entry{
		Date:             date,
		Channel:          p.Channel,
		InvestmentType:   p.BankInvestmentType,
		Wallet:           p.Bank,
		Investor:         p.Investor,
		State:            StateInvestment,
		StakeCents:       p.Amount,
		GrossResultCents: 0,
		NetImpactCents:   -p.Amount,
		Leg:              ContributionDirect,
		MovementType:     MovementExpense,
		Notes:            "Recarga para " + p.Destination,
	}

	dest = Entry{
		Date:             date,
		Channel:          p.Channel,
		InvestmentType:   p.DestInvestmentType,
		Wallet:           p.Destination,
		Investor:         p.Investor,
		State:            StateInvestment,
		StakeCents:       p.Amount,
		GrossResultCents: 0,
		NetImpactCents:   -p.Amount,
		Leg:              ContributionMirror,
		MovementType:     MovementRecharge,
		Notes:            "Origem: " + p.Bank,
	}

	return source, dest, nil
}
