package topics

const (
	// Ledger
	LedgerEntries = "ledger_entries"

	// Auditoria de saldos
	BalanceDivergence = "balance_divergence"

	// DLQs
	LedgerEntriesDLQ = "ledger_entries_dlq"
)
