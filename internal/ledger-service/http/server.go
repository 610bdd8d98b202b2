package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/bet-ledger-poc/internal/ledger-service/dto"
	"github.com/radieske/bet-ledger-poc/internal/ledger-service/engine"
	"github.com/radieske/bet-ledger-poc/internal/ledger-service/repo"
	"github.com/radieske/bet-ledger-poc/pkg/contracts/events"
)

// Repo define as operações de persistência usadas pelo handler HTTP.
type Repo interface {
	CreateEntry(ctx context.Context, e *engine.Entry) (string, error)
	CreatePair(ctx context.Context, src, dst *engine.Entry) (string, string, error)
	UpdateEntry(ctx context.Context, id string, updated *engine.Entry) (*engine.Entry, error)
	DeleteEntry(ctx context.Context, id string) (*engine.Entry, error)
	ToggleEntry(ctx context.Context, id string) (*engine.Entry, error)
	GetEntry(ctx context.Context, id string) (*engine.Entry, error)
	ListEntries(ctx context.Context, f repo.EntryFilter) ([]engine.Entry, error)
	EntriesByAccount(ctx context.Context, axis engine.Axis, id string) ([]engine.Entry, error)
	Balances(ctx context.Context, axis engine.Axis) (map[string]engine.Cents, error)
	StoredBalance(ctx context.Context, axis engine.Axis, id string) (engine.Cents, error)
	SetBalance(ctx context.Context, axis engine.Axis, id string, cents engine.Cents) error
	EnsureAccount(ctx context.Context, axis engine.Axis, id string, seed engine.Cents) error
	DeleteAccount(ctx context.Context, axis engine.Axis, id string) (int, error)
}

// Publisher publica a mutação confirmada no Kafka.
type Publisher interface {
	PublishEntryMutated(ctx context.Context, e events.EntryMutated) error
}

// Feed publica snapshots completos de saldos no canal Redis.
type Feed interface {
	PublishBalances(ctx context.Context, wallets, investors map[string]engine.Cents) error
}

// Server expõe a API HTTP do ledger.
type Server struct {
	log  *zap.Logger
	repo Repo
	publ Publisher
	feed Feed
	bank string
}

func NewServer(log *zap.Logger, r Repo, p Publisher, f Feed, bankName string) *Server {
	return &Server{log: log, repo: r, publ: p, feed: f, bank: bankName}
}

// Router retorna o mux HTTP com as rotas da API do ledger.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/entries", s.entries)           // GET lista / POST cria
	mux.HandleFunc("/entries/", s.entriesSubtree)   // PUT|DELETE /entries/{id}, POST /entries/{id}/toggle, POST /entries/expense|recharge
	mux.HandleFunc("/balances", s.balances)         // GET
	mux.HandleFunc("/accounts", s.createAccount)    // POST
	mux.HandleFunc("/accounts/balance", s.overrideBalance)   // PUT
	mux.HandleFunc("/accounts/delete", s.deleteAccount)      // POST
	mux.HandleFunc("/accounts/recompute", s.recomputeAccount) // POST
	return mux
}

func (s *Server) entries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listEntries(w, r)
	case http.MethodPost:
		s.createEntry(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) entriesSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/entries/")
	switch rest {
	case "expense":
		s.quickExpense(w, r)
		return
	case "recharge":
		s.quickRecharge(w, r)
		return
	}

	if id, ok := strings.CutSuffix(rest, "/toggle"); ok {
		s.toggleEntry(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateEntry(w, r, rest)
	case http.MethodDelete:
		s.deleteEntry(w, r, rest)
	case http.MethodGet:
		s.getEntry(w, r, rest)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.repo.ListEntries(r.Context(), repo.EntryFilter{
		Wallet:   q.Get("wallet"),
		Investor: q.Get("investor"),
		State:    q.Get("state"),
		Movement: q.Get("movement"),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	out := make([]dto.EntryResponse, 0, len(list))
	for i := range list {
		out = append(out, entryResponse(&list[i]))
	}
	writeJSON(w, out)
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		http.Error(w, "entry id required", http.StatusBadRequest)
		return
	}
	e, err := s.repo.GetEntry(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, entryResponse(e))
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var req dto.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	e, err := s.entryFromRequest(&req, engine.ContributionDirect)
	if err != nil {
		s.fail(w, err)
		return
	}

	if _, err := s.repo.CreateEntry(r.Context(), e); err != nil {
		s.fail(w, err)
		return
	}

	s.notify(r.Context(), "CREATE", e)
	writeJSON(w, entryResponse(e))
}

func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		http.Error(w, "entry id required", http.StatusBadRequest)
		return
	}
	var req dto.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	// edição preserva a perna atual a menos que o payload a defina
	current, err := s.repo.GetEntry(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}

	updated, err := s.entryFromRequest(&req, current.Leg)
	if err != nil {
		s.fail(w, err)
		return
	}

	old, err := s.repo.UpdateEntry(r.Context(), id, updated)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.notify(r.Context(), "EDIT", old, updated)
	writeJSON(w, entryResponse(updated))
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		http.Error(w, "entry id required", http.StatusBadRequest)
		return
	}
	old, err := s.repo.DeleteEntry(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.notify(r.Context(), "DELETE", old)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"DELETED"}`))
}

func (s *Server) toggleEntry(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if id == "" {
		http.Error(w, "entry id required", http.StatusBadRequest)
		return
	}
	updated, err := s.repo.ToggleEntry(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.notify(r.Context(), "TOGGLE", updated)
	writeJSON(w, entryResponse(updated))
}

func (s *Server) quickExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	channel := req.Channel
	if channel == "" {
		channel = "Gasto"
	}
	invType := req.InvestmentType
	if invType == "" {
		invType = "Gasto (curso/comissão)"
	}

	e, err := engine.BuildExpense(engine.ExpenseParams{
		Bank:           s.bank,
		Investor:       req.Investor,
		Channel:        channel,
		InvestmentType: invType,
		Amount:         engine.ParseEUR(req.Amount),
		Notes:          req.Notes,
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	if _, err := s.repo.CreateEntry(r.Context(), &e); err != nil {
		s.fail(w, err)
		return
	}
	s.notify(r.Context(), "CREATE", &e)
	writeJSON(w, entryResponse(&e))
}

func (s *Server) quickRecharge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.RechargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	channel := req.Channel
	if channel == "" {
		channel = "Recarga"
	}
	bankType := req.BankInvestmentType
	if bankType == "" {
		bankType = "Recarga de saldo para aposta"
	}
	destType := req.DestInvestmentType
	if destType == "" {
		destType = "Saldo positivo ingressado"
	}

	src, dst, err := engine.BuildRecharge(engine.RechargeParams{
		Bank:               s.bank,
		Destination:        req.Destination,
		Investor:           req.Investor,
		Channel:            channel,
		BankInvestmentType: bankType,
		DestInvestmentType: destType,
		Amount:             engine.ParseEUR(req.Amount),
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	srcID, dstID, err := s.repo.CreatePair(r.Context(), &src, &dst)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.notify(r.Context(), "CREATE", &src, &dst)
	writeJSON(w, dto.PairResponse{SourceID: srcID, DestinationID: dstID})
}

func (s *Server) balances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	wallets, err := s.repo.Balances(r.Context(), engine.AxisWallet)
	if err != nil {
		s.fail(w, err)
		return
	}
	investors, err := s.repo.Balances(r.Context(), engine.AxisInvestor)
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := dto.BalancesResponse{
		Wallets:      map[string]int64{},
		WalletsEUR:   map[string]float64{},
		Investors:    map[string]int64{},
		InvestorsEUR: map[string]float64{},
	}
	var bank, houses engine.Cents
	for id, c := range wallets {
		resp.Wallets[id] = int64(c)
		resp.WalletsEUR[id] = c.EUR()
		if engine.IsBank(id, s.bank) {
			bank += c
		} else {
			houses += c
		}
	}
	for id, c := range investors {
		resp.Investors[id] = int64(c)
		resp.InvestorsEUR[id] = c.EUR()
	}
	resp.BankCents = int64(bank)
	resp.HousesCents = int64(houses)
	resp.NetGlobalCents = int64(bank + houses)
	resp.BankEUR = bank.EUR()
	resp.HousesEUR = houses.EUR()
	resp.NetGlobalEUR = (bank + houses).EUR()

	writeJSON(w, resp)
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	axis, ok := axisFrom(req.Axis)
	if !ok || strings.TrimSpace(req.ID) == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if err := s.repo.EnsureAccount(r.Context(), axis, strings.TrimSpace(req.ID), engine.ParseEUR(req.Seed)); err != nil {
		s.fail(w, err)
		return
	}
	s.publishSnapshots(r.Context())
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(`{"status":"CREATED"}`))
}

func (s *Server) overrideBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.BalanceOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	axis, ok := axisFrom(req.Axis)
	if !ok || req.ID == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	// sobrescrever muda a base dos incrementos futuros; é uma operação
	// administrativa consciente, auditável depois via recompute
	if err := s.repo.SetBalance(r.Context(), axis, req.ID, engine.ParseEUR(req.Balance)); err != nil {
		s.fail(w, err)
		return
	}
	s.publishSnapshots(r.Context())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"OVERWRITTEN"}`))
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.AccountDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	axis, ok := axisFrom(req.Axis)
	if !ok || req.ID == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	usage, err := s.repo.DeleteAccount(r.Context(), axis, req.ID)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.publishSnapshots(r.Context())
	writeJSON(w, dto.AccountDeleteResponse{ID: req.ID, Usage: usage, Deleted: true})
}

func (s *Server) recomputeAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.RecomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	axis, ok := axisFrom(req.Axis)
	if !ok || req.ID == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	entries, err := s.repo.EntriesByAccount(r.Context(), axis, req.ID)
	if err != nil {
		s.fail(w, err)
		return
	}
	computed := engine.Recompute(entries, req.ID, axis)

	stored, err := s.repo.StoredBalance(r.Context(), axis, req.ID)
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := dto.RecomputeResponse{
		Axis:          req.Axis,
		ID:            req.ID,
		StoredCents:   int64(stored),
		ComputedCents: int64(computed),
		Divergent:     stored != computed,
	}
	if req.Overwrite && resp.Divergent {
		if err := s.repo.SetBalance(r.Context(), axis, req.ID, computed); err != nil {
			s.fail(w, err)
			return
		}
		resp.Overwritten = true
		s.publishSnapshots(r.Context())
	}
	writeJSON(w, resp)
}

// entryFromRequest monta o lançamento aplicando cálculo de impacto e
// classificação de movimento. defaultLeg é a perna usada quando o payload
// não define "applied".
func (s *Server) entryFromRequest(req *dto.EntryRequest, defaultLeg engine.Contribution) (*engine.Entry, error) {
	leg := defaultLeg
	if req.Applied != nil {
		leg = engine.ContributionFromApplied(*req.Applied)
	}

	var grossOverride, netOverride *engine.Cents
	if strings.TrimSpace(req.GrossResult) != "" {
		v := engine.ParseEUR(req.GrossResult)
		grossOverride = &v
	}
	if strings.TrimSpace(req.NetImpact) != "" {
		v := engine.ParseEUR(req.NetImpact)
		netOverride = &v
	}

	state := engine.State(strings.ToUpper(strings.TrimSpace(req.State)))
	stake := engine.ParseEUR(req.Stake)
	appliedOdds := engine.ParseNumber(req.AppliedOdds)
	gross, net := engine.ComputeImpact(state, stake, appliedOdds, grossOverride, netOverride)

	var oddsValues []float64
	for _, part := range strings.Split(req.OddsValues, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		oddsValues = append(oddsValues, engine.ParseNumber(part))
	}

	e := &engine.Entry{
		Date:             engine.ParseDateAtNoon(req.Date),
		Channel:          strings.TrimSpace(req.Channel),
		InvestmentType:   strings.TrimSpace(req.InvestmentType),
		Wallet:           strings.TrimSpace(req.Wallet),
		Investor:         strings.TrimSpace(req.Investor),
		State:            state,
		StakeCents:       stake,
		GrossResultCents: gross,
		NetImpactCents:   net,
		Leg:              leg,
		OfferedOdds:      engine.ParseNumber(req.OfferedOdds),
		AppliedOdds:      appliedOdds,
		IndependentOdds:  req.IndependentOdds,
		OddsValues:       oddsValues,
		Notes:            strings.TrimSpace(req.Notes),
		Sport:            strings.TrimSpace(req.Sport),
		Selection:        strings.TrimSpace(req.Selection),
	}
	e.MovementType = engine.DeriveMovement(state, engine.IsBank(e.Wallet, s.bank), leg)

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// notify publica a mutação no Kafka e o snapshot de saldos no Redis.
// Falha de publicação não desfaz a transação já confirmada; só loga.
func (s *Server) notify(ctx context.Context, op string, touched ...*engine.Entry) {
	ev := events.EntryMutated{Op: op, TsUnixMs: time.Now().UnixMilli()}
	seenW := map[string]bool{}
	seenI := map[string]bool{}
	for _, e := range touched {
		if ev.EntryID == "" {
			ev.EntryID = e.ID
		}
		if e.Wallet != "" && !seenW[e.Wallet] {
			seenW[e.Wallet] = true
			ev.Wallets = append(ev.Wallets, e.Wallet)
		}
		if e.Investor != "" && !seenI[e.Investor] {
			seenI[e.Investor] = true
			ev.Investors = append(ev.Investors, e.Investor)
		}
	}
	if err := s.publ.PublishEntryMutated(ctx, ev); err != nil {
		s.log.Warn("publish entry mutated", zap.Error(err))
	}
	s.publishSnapshots(ctx)
}

func (s *Server) publishSnapshots(ctx context.Context) {
	wallets, err := s.repo.Balances(ctx, engine.AxisWallet)
	if err != nil {
		s.log.Warn("load wallet snapshot", zap.Error(err))
		return
	}
	investors, err := s.repo.Balances(ctx, engine.AxisInvestor)
	if err != nil {
		s.log.Warn("load investor snapshot", zap.Error(err))
		return
	}
	if err := s.feed.PublishBalances(ctx, wallets, investors); err != nil {
		s.log.Warn("publish balance snapshot", zap.Error(err))
	}
}

func axisFrom(v string) (engine.Axis, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "wallet":
		return engine.AxisWallet, true
	case "investor":
		return engine.AxisInvestor, true
	}
	return engine.AxisWallet, false
}

// fail mapeia erros do engine/repo para status HTTP.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, engine.ErrMirrorLegFixed),
		errors.Is(err, engine.ErrBankDestination),
		errors.Is(err, repo.ErrBankProtected):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, engine.ErrMissingField),
		errors.Is(err, engine.ErrInvalidState),
		errors.Is(err, engine.ErrNonPositiveAmount),
		errors.Is(err, engine.ErrMissingAccount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func entryResponse(e *engine.Entry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:              e.ID,
		Date:            e.Date.Format("2006-01-02"),
		Channel:         e.Channel,
		InvestmentType:  e.InvestmentType,
		Wallet:          e.Wallet,
		Investor:        e.Investor,
		State:           string(e.State),
		StakeCents:      int64(e.StakeCents),
		StakeEUR:        e.StakeCents.EUR(),
		GrossCents:      int64(e.GrossResultCents),
		GrossEUR:        e.GrossResultCents.EUR(),
		NetCents:        int64(e.NetImpactCents),
		NetEUR:          e.NetImpactCents.EUR(),
		Applied:         e.Leg.Applied(),
		MovementType:    string(e.MovementType),
		OfferedOdds:     e.OfferedOdds,
		AppliedOdds:     e.AppliedOdds,
		IndependentOdds: e.IndependentOdds,
		OddsValues:      e.OddsValues,
		Notes:           e.Notes,
		Sport:           e.Sport,
		Selection:       e.Selection,
		CreatedAt:       e.CreatedAt,
	}
}

// writeJSON serializa e envia resposta JSON.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
