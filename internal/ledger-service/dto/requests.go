package dto

// EntryRequest é o payload de criação/edição de lançamento. Valores
// monetários e cuotas chegam como texto livre (vírgula decimal aceita);
// string vazia em gross_result/net_impact significa "sem override".
type EntryRequest struct {
	Date           string `json:"date"` // "2006-01-02"
	Channel        string `json:"channel"`
	InvestmentType string `json:"investment_type"`
	Wallet         string `json:"wallet"`
	Investor       string `json:"investor"`
	State          string `json:"state"` // WON | LOST | INVESTMENT
	Stake          string `json:"stake"`

	GrossResult string `json:"gross_result,omitempty"` // override opcional (€)
	NetImpact   string `json:"net_impact,omitempty"`   // override opcional (€)

	Applied *bool `json:"applied,omitempty"` // default: true no create, inalterado no edit

	OfferedOdds     string `json:"offered_odds,omitempty"`
	AppliedOdds     string `json:"applied_odds,omitempty"`
	IndependentOdds bool   `json:"independent_odds,omitempty"`
	OddsValues      string `json:"odds_values,omitempty"` // "1.85, 2.10"
	Notes           string `json:"notes,omitempty"`
	Sport           string `json:"sport,omitempty"`
	Selection       string `json:"selection,omitempty"`
}

// ExpenseRequest é a ação rápida de gasto (perna única no banco).
type ExpenseRequest struct {
	Amount         string `json:"amount"` // € (vírgula aceita)
	Investor       string `json:"investor"`
	Channel        string `json:"channel,omitempty"`
	InvestmentType string `json:"investment_type,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// RechargeRequest é a ação rápida de recarga (par de pernas banco→casa).
type RechargeRequest struct {
	Amount             string `json:"amount"`
	Destination        string `json:"destination"`
	Investor           string `json:"investor"`
	Channel            string `json:"channel,omitempty"`
	BankInvestmentType string `json:"bank_investment_type,omitempty"`
	DestInvestmentType string `json:"dest_investment_type,omitempty"`
}

// AccountRequest cria uma conta (carteira ou investidor) com saldo
// inicial opcional.
type AccountRequest struct {
	Axis string `json:"axis"` // "wallet" | "investor"
	ID   string `json:"id"`
	Seed string `json:"seed,omitempty"` // € (default 0)
}

// BalanceOverrideRequest sobrescreve manualmente um saldo armazenado.
type BalanceOverrideRequest struct {
	Axis    string `json:"axis"`
	ID      string `json:"id"`
	Balance string `json:"balance"` // €
}

// AccountDeleteRequest remove uma conta.
type AccountDeleteRequest struct {
	Axis string `json:"axis"`
	ID   string `json:"id"`
}

// RecomputeRequest audita (e opcionalmente repara) o saldo de uma conta.
type RecomputeRequest struct {
	Axis      string `json:"axis"`
	ID        string `json:"id"`
	Overwrite bool   `json:"overwrite,omitempty"`
}
