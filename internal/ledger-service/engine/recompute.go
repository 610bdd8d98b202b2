package engine

// Recompute recalcula do zero o saldo de uma conta em um eixo:
// Σ efetivo(e) sobre todos os lançamentos que referenciam a conta.
// Puro e idempotente; é a ferramenta de auditoria/reparo do ledger e deve
// bater exatamente com o saldo mantido incrementalmente pelo planner
// sobre um histórico consistente.
func Recompute(entries []Entry, accountID string, axis Axis) Cents {
	var total Cents
	for i := range entries {
		e := &entries[i]
		ref := e.Wallet
		if axis == AxisInvestor {
			ref = e.Investor
		}
		if ref != accountID {
			continue
		}
		total += e.Effective()
	}
	return total
}
