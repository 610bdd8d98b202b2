package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// Collection: obrigatório para subscribe/unsubscribe ("wallets" | "investors")
type ClientMsg struct {
	Type       string `json:"type"`       // subscribe | unsubscribe | ping
	Collection string `json:"collection"` // requerido em subscribe/unsubscribe
}
