package engine

// DeriveMovement classifica um lançamento sem tipo de movimento armazenado
// (registros legados). Função total: qualquer combinação resolve, no pior
// caso em MovementOther.
func DeriveMovement(state State, walletIsBank bool, leg Contribution) MovementKind {
	switch state {
	case StateWon, StateLost:
		return MovementBet
	case StateInvestment:
		if walletIsBank && leg == ContributionDirect {
			return MovementExpense // capital gasto em cursos/comissões
		}
		if !walletIsBank && leg == ContributionMirror {
			return MovementRecharge // perna espelho positiva de uma transferência
		}
		return MovementAdjustment
	}
	return MovementOther
}

// MovementOf devolve o movimento "oficial" do lançamento: usa o tipo
// armazenado se existir; senão deriva. Nunca altera o registro.
func MovementOf(e *Entry, walletIsBank bool) MovementKind {
	if e.MovementType != "" {
		return e.MovementType
	}
	return DeriveMovement(e.State, walletIsBank, e.Leg)
}
