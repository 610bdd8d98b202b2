package engine

import (
	"math"
	"strconv"
	"strings"
)

// Cents representa dinheiro em centavos inteiros (unidade mínima).
// Todo saldo derivado usa este tipo; acumulação em ponto flutuante não
// é permitida em nenhum ponto do ledger.
type Cents int64

// EUR retorna o valor decimal espelho em euros.
// O campo inteiro é sempre o autoritativo; o espelho existe só por
// retrocompatibilidade de documentos antigos.
func (c Cents) EUR() float64 { return float64(c) / 100 }

// roundHalfUp arredonda para o centavo mais próximo, metade pra cima
// (mesma convenção do Math.round: -2.5 vira -2).
func roundHalfUp(x float64) Cents {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return Cents(math.Floor(x + 0.5))
}

// CentsFromEUR converte um valor em euros para centavos com arredondamento
// half-up centralizado.
func CentsFromEUR(eur float64) Cents { return roundHalfUp(eur * 100) }

// ParseNumber interpreta entrada livre do usuário como número.
// Vírgula decimal é tratada como ponto; entrada não numérica vira zero.
// Nunca falha.
func ParseNumber(s string) float64 {
	n, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// ParseEUR interpreta entrada livre como valor em euros e devolve centavos.
func ParseEUR(s string) Cents { return CentsFromEUR(ParseNumber(s)) }
