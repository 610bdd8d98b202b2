package events

// Evento publicado no tópico "ledger_entries" após cada mutação confirmada.
// Op indica a mutação lógica aplicada; as contas listadas são as tocadas
// pelos deltas de saldo da transação.
type EntryMutated struct {
	EntryID   string   `json:"entry_id"`
	Op        string   `json:"op"` // "CREATE" | "EDIT" | "TOGGLE" | "DELETE"
	Wallets   []string `json:"wallets"`
	Investors []string `json:"investors"`
	TsUnixMs  int64    `json:"ts_unix_ms"`
}
