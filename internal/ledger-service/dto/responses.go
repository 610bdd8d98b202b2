package dto

import "time"

// EntryResponse espelha um lançamento persistido. Os campos *_cents são
// autoritativos; os *_eur existem por retrocompatibilidade.
type EntryResponse struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	Channel        string  `json:"channel"`
	InvestmentType string  `json:"investment_type"`
	Wallet         string  `json:"wallet"`
	Investor       string  `json:"investor"`
	State          string  `json:"state"`
	StakeCents     int64   `json:"stake_cents"`
	StakeEUR       float64 `json:"stake_eur"`
	GrossCents     int64   `json:"gross_result_cents"`
	GrossEUR       float64 `json:"gross_result_eur"`
	NetCents       int64   `json:"net_impact_cents"`
	NetEUR         float64 `json:"net_impact_eur"`
	Applied        bool    `json:"applied"`
	MovementType   string  `json:"movement_type"`

	OfferedOdds     float64   `json:"offered_odds,omitempty"`
	AppliedOdds     float64   `json:"applied_odds,omitempty"`
	IndependentOdds bool      `json:"independent_odds,omitempty"`
	OddsValues      []float64 `json:"odds_values,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Sport           string    `json:"sport,omitempty"`
	Selection       string    `json:"selection,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// PairResponse devolve os ids das duas pernas de uma recarga.
type PairResponse struct {
	SourceID      string `json:"source_id"`
	DestinationID string `json:"destination_id"`
}

// BalancesResponse é o snapshot de saldos com os KPIs do painel.
type BalancesResponse struct {
	Wallets      map[string]int64   `json:"wallets_cents"`
	WalletsEUR   map[string]float64 `json:"wallets_eur"`
	Investors    map[string]int64   `json:"investors_cents"`
	InvestorsEUR map[string]float64 `json:"investors_eur"`

	// KPIs: saldo do banco, total nas casas (exclui banco) e neto global
	BankCents      int64   `json:"bank_cents"`
	HousesCents    int64   `json:"houses_cents"`
	NetGlobalCents int64   `json:"net_global_cents"`
	BankEUR        float64 `json:"bank_eur"`
	HousesEUR      float64 `json:"houses_eur"`
	NetGlobalEUR   float64 `json:"net_global_eur"`
}

// RecomputeResponse compara o saldo recalculado com o armazenado.
// Divergência é reportada, nunca corrigida em silêncio: o reparo só
// acontece com overwrite explícito.
type RecomputeResponse struct {
	Axis          string `json:"axis"`
	ID            string `json:"id"`
	StoredCents   int64  `json:"stored_cents"`
	ComputedCents int64  `json:"computed_cents"`
	Divergent     bool   `json:"divergent"`
	Overwritten   bool   `json:"overwritten"`
}

// AccountDeleteResponse reporta a remoção e o uso histórico da conta.
type AccountDeleteResponse struct {
	ID      string `json:"id"`
	Usage   int    `json:"linked_entries"`
	Deleted bool   `json:"deleted"`
}
