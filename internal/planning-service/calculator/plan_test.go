package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanValorFixo(t *testing.T) {
	// cenário padrão do formulário: benefício 100, aposta de 45 com curso 15 e cota 3
	r := Plan(Input{
		CurrentBenefit:  100,
		Mode:            ModeAmount,
		InvestmentValue: 45,
		CourseCost:      15,
		Odds:            3,
	})

	assert.InDelta(t, 45, r.MaxToInvest, 1e-9)
	assert.InDelta(t, 30, r.InvestmentCost, 1e-9) // 45 - 15
	assert.InDelta(t, 90, r.PossibleGain, 1e-9)   // 30 * 3
	assert.InDelta(t, 45, r.PossibleNet, 1e-9)    // 90 - (30 + 15)
}

func TestPlanPercentualDoBeneficio(t *testing.T) {
	r := Plan(Input{
		CurrentBenefit:  200,
		Mode:            ModePercent,
		InvestmentValue: 50,
		CourseCost:      20,
		Odds:            2,
	})

	assert.InDelta(t, 100, r.MaxToInvest, 1e-9) // 50% de 200
	assert.InDelta(t, 80, r.InvestmentCost, 1e-9)
	assert.InDelta(t, 160, r.PossibleGain, 1e-9)
	assert.InDelta(t, 60, r.PossibleNet, 1e-9)
}

func TestPlanPercentualForaDaFaixaEhLimitado(t *testing.T) {
	acima := Plan(Input{CurrentBenefit: 100, Mode: ModePercent, InvestmentValue: 150, Odds: 2})
	assert.InDelta(t, 100, acima.MaxToInvest, 1e-9) // limitado a 100%

	abaixo := Plan(Input{CurrentBenefit: 100, Mode: ModePercent, InvestmentValue: -10, Odds: 2})
	assert.Zero(t, abaixo.MaxToInvest)
}

func TestPlanBeneficioNegativoContaComoZero(t *testing.T) {
	r := Plan(Input{CurrentBenefit: -50, Mode: ModePercent, InvestmentValue: 100, Odds: 2})
	assert.Zero(t, r.MaxToInvest)
	assert.Zero(t, r.InvestmentCost)
	assert.Zero(t, r.PossibleGain)
}

func TestPlanCursoMaiorQueTeto(t *testing.T) {
	// curso consome todo o teto: aposta de custo zero, líquido só perde o curso
	r := Plan(Input{CurrentBenefit: 100, Mode: ModeAmount, InvestmentValue: 10, CourseCost: 25, Odds: 3})
	assert.Zero(t, r.InvestmentCost)
	assert.Zero(t, r.PossibleGain)
	assert.InDelta(t, -25, r.PossibleNet, 1e-9)
}

func TestPlanEntradaInvalidaViraZero(t *testing.T) {
	r := Plan(Input{CurrentBenefit: math.NaN(), Mode: ModeAmount, InvestmentValue: math.Inf(1), Odds: math.NaN()})
	assert.Zero(t, r.MaxToInvest)
	assert.Zero(t, r.PossibleGain)
}
