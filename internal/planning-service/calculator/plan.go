package calculator

import "math"

// InvestmentMode controla como o teto de investimento é derivado.
type InvestmentMode string

const (
	ModeAmount  InvestmentMode = "amount"  // valor fixo em euros
	ModePercent InvestmentMode = "percent" // percentual do benefício atual
)

// Input reúne os parâmetros da simulação de planejamento.
type Input struct {
	CurrentBenefit  float64        // benefício acumulado disponível (€)
	Mode            InvestmentMode // amount | percent
	InvestmentValue float64        // € em amount, 0..100 em percent
	CourseCost      float64        // custo do curso/comissão associado (€)
	Odds            float64        // cota aplicada na aposta planejada
}

// Result traz os valores projetados da simulação.
type Result struct {
	MaxToInvest    float64 `json:"max_to_invest"`
	InvestmentCost float64 `json:"investment_cost"`
	PossibleGain   float64 `json:"possible_gain"`
	PossibleNet    float64 `json:"possible_net"`
}

// Plan projeta o resultado de uma aposta planejada.
// Benefício negativo conta como zero; em modo percentual o valor é
// limitado a 0..100. O custo do curso sai do teto antes da aposta e
// entra no líquido como despesa.
func Plan(in Input) Result {
	benefit := math.Max(0, sane(in.CurrentBenefit))

	maxInvest := sane(in.InvestmentValue)
	if in.Mode == ModePercent {
		maxInvest = clamp(maxInvest, 0, 100) / 100 * benefit
	}

	course := sane(in.CourseCost)
	investCost := math.Max(0, maxInvest-course)
	gain := investCost * sane(in.Odds)
	net := gain - (investCost + course)

	return Result{
		MaxToInvest:    maxInvest,
		InvestmentCost: investCost,
		PossibleGain:   gain,
		PossibleNet:    net,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func sane(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
