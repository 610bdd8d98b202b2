package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/radieske/bet-ledger-poc/internal/ledger-service/engine"
	"github.com/radieske/bet-ledger-poc/internal/planning-service/calculator"
)

// Handler contém as dependências dos handlers HTTP do planejamento.
type Handler struct {
	service string
}

func NewHandler(serviceName string) *Handler {
	return &Handler{service: serviceName}
}

// PlanRequest aceita os campos como texto livre, igual ao formulário:
// vírgula decimal é aceita e valor inválido vira zero.
type PlanRequest struct {
	CurrentBenefit  string `json:"current_benefit"`
	Mode            string `json:"mode"` // amount | percent
	InvestmentValue string `json:"investment_value"`
	CourseCost      string `json:"course_cost"`
	Odds            string `json:"odds"`
}

// HealthCheck retorna a saúde do serviço.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": h.service,
	})
}

// CalculatePlan projeta o resultado de uma aposta planejada.
func (h *Handler) CalculatePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	mode := calculator.InvestmentMode(req.Mode)
	switch mode {
	case "":
		mode = calculator.ModeAmount
	case calculator.ModeAmount, calculator.ModePercent:
	default:
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode: %s", req.Mode))
		return
	}

	result := calculator.Plan(calculator.Input{
		CurrentBenefit:  engine.ParseNumber(req.CurrentBenefit),
		Mode:            mode,
		InvestmentValue: engine.ParseNumber(req.InvestmentValue),
		CourseCost:      engine.ParseNumber(req.CourseCost),
		Odds:            engine.ParseNumber(req.Odds),
	})
	respondJSON(w, http.StatusOK, result)
}

// respondJSON escreve uma resposta JSON.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError escreve uma resposta de erro.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
