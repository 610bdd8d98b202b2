package engine

// ComputeImpact calcula (totalGanho, impactoLíquido) de um lançamento.
//
// Regras, em ordem:
//   - override explícito de impacto líquido vence sempre;
//   - WON com cuota aplicada: ganho = round(stake × cuota), líquido = ganho − stake;
//   - LOST/INVESTMENT: líquido = −stake, ganho = 0;
//   - WON sem cuota e sem override: líquido = 0.
//
// A multiplicação stake × cuota passa por float e arredonda half-up para
// o centavo; todo o resto é aritmética inteira.
func ComputeImpact(state State, stake Cents, appliedOdds float64, grossOverride, netOverride *Cents) (gross, net Cents) {
	if grossOverride != nil {
		gross = *grossOverride
	} else if state == StateWon && appliedOdds > 0 {
		gross = roundHalfUp(float64(stake) * appliedOdds)
	}

	if netOverride != nil {
		return gross, *netOverride
	}

	switch {
	case state == StateWon && appliedOdds > 0:
		net = gross - stake
	case state == StateLost || state == StateInvestment:
		net = -stake
	default:
		net = 0
	}
	return gross, net
}
