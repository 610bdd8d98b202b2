package events

import "time"

// Snapshot completo de uma coleção de saldos, publicado no canal Redis
// Pub/Sub após cada mutação confirmada. Cada snapshot substitui o anterior
// por inteiro; não há contrato de diff incremental.
type BalanceSnapshot struct {
	Collection string             `json:"collection"` // "wallets" | "investors"
	Balances   map[string]int64   `json:"balances_cents"`
	BalancesEU map[string]float64 `json:"balances_eur"`
	Ts         time.Time          `json:"ts"`
}
