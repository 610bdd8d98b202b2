package events

import "time"

// Evento emitido pelo balance-audit-worker quando o saldo recalculado
// diverge do saldo armazenado. Nunca dispara correção automática.
type BalanceDivergence struct {
	Axis          string    `json:"axis"` // "wallet" | "investor"
	AccountID     string    `json:"account_id"`
	StoredCents   int64     `json:"stored_cents"`
	ComputedCents int64     `json:"computed_cents"`
	Ts            time.Time `json:"ts"`
}
