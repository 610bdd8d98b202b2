package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/radieske/bet-ledger-poc/internal/ledger-service/engine"
)

// Postgres implementa a persistência do ledger: lançamentos + saldos
// agregados de carteiras e investidores. Toda mutação lógica (escrita do
// lançamento + deltas de saldo) vai numa única transação tudo-ou-nada;
// aplicação parcial corromperia o invariante de consistência e nunca
// pode ser observável.
type Postgres struct {
	db   *sql.DB
	bank string
}

func NewPostgres(db *sql.DB, bankName string) *Postgres {
	return &Postgres{db: db, bank: bankName}
}

var (
	ErrNotFound      = errors.New("not found")
	ErrBankProtected = errors.New("bank account cannot be deleted")
)

// BankName devolve o nome configurado da conta banco.
func (p *Postgres) BankName() string { return p.bank }

const entryColumns = `id, entry_date, channel, investment_type, wallet, investor, state,
	stake_cents, gross_result_cents, net_impact_cents, applied, movement_type,
	offered_odds, applied_odds, independent_odds, odds_values, notes, sport, selection,
	created_at, updated_at`

func tableFor(axis engine.Axis) string {
	if axis == engine.AxisInvestor {
		return "investor_accounts"
	}
	return "wallet_accounts"
}

// applyDeltas aplica os incrementos comutativos de saldo dentro da
// transação, criando a conta de forma preguiçosa se ainda não existir.
// O upsert com soma evita o read-modify-write: dois deltas concorrentes
// na mesma conta compõem sem passo de leitura.
func applyDeltas(ctx context.Context, tx *sql.Tx, plan engine.Plan) error {
	for _, d := range plan.Deltas {
		q := fmt.Sprintf(`
			INSERT INTO %s (id, balance_cents, balance_eur)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET
			  balance_cents = %[1]s.balance_cents + EXCLUDED.balance_cents,
			  balance_eur   = %[1]s.balance_eur   + EXCLUDED.balance_eur`, tableFor(d.Axis))
		if _, err := tx.ExecContext(ctx, q, d.AccountID, int64(d.Delta), d.Delta.EUR()); err != nil {
			return fmt.Errorf("apply delta %s/%s: %w", d.Axis, d.AccountID, err)
		}
	}
	return nil
}

// insertEntry grava um lançamento novo. Os campos *_eur espelham os
// valores em centavos por retrocompatibilidade; o inteiro é o autoritativo.
func insertEntry(ctx context.Context, tx *sql.Tx, e *engine.Entry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_entries
		  (id, entry_date, channel, investment_type, wallet, investor, state,
		   stake_cents, stake_eur, gross_result_cents, gross_result_eur,
		   net_impact_cents, net_impact_eur, applied, movement_type,
		   offered_odds, applied_odds, independent_odds, odds_values,
		   notes, sport, selection, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,NOW())`,
		e.ID, e.Date, e.Channel, e.InvestmentType, e.Wallet, e.Investor, string(e.State),
		int64(e.StakeCents), e.StakeCents.EUR(),
		int64(e.GrossResultCents), e.GrossResultCents.EUR(),
		int64(e.NetImpactCents), e.NetImpactCents.EUR(),
		e.Leg.Applied(), string(e.MovementType),
		e.OfferedOdds, e.AppliedOdds, e.IndependentOdds, pq.Array(e.OddsValues),
		e.Notes, e.Sport, e.Selection,
	)
	return err
}

// CreateEntry insere um lançamento e aplica seus deltas atomicamente.
func (p *Postgres) CreateEntry(ctx context.Context, e *engine.Entry) (string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	e.ID = uuid.NewString()
	if err := insertEntry(ctx, tx, e); err != nil {
		return "", err
	}
	if err := applyDeltas(ctx, tx, engine.PlanCreate(e)); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return e.ID, nil
}

// CreatePair insere as duas pernas de uma recarga no mesmo batch atômico.
func (p *Postgres) CreatePair(ctx context.Context, src, dst *engine.Entry) (srcID, dstID string, err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", "", err
	}
	defer tx.Rollback()

	src.ID = uuid.NewString()
	dst.ID = uuid.NewString()
	if err = insertEntry(ctx, tx, src); err != nil {
		return "", "", err
	}
	if err = insertEntry(ctx, tx, dst); err != nil {
		return "", "", err
	}
	if err = applyDeltas(ctx, tx, engine.PlanCreate(src)); err != nil {
		return "", "", err
	}
	if err = applyDeltas(ctx, tx, engine.PlanCreate(dst)); err != nil {
		return "", "", err
	}

	if err = tx.Commit(); err != nil {
		return "", "", err
	}
	return src.ID, dst.ID, nil
}

// UpdateEntry aplica uma edição: carrega o lançamento atual com lock,
// calcula os deltas via planner (com reatribuição de conta quando houver)
// e grava tudo na mesma transação. Devolve o estado antigo.
func (p *Postgres) UpdateEntry(ctx context.Context, id string, updated *engine.Entry) (*engine.Entry, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	old, err := selectEntryForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	updated.ID = id
	updated.CreatedAt = old.CreatedAt

	_, err = tx.ExecContext(ctx, `
		UPDATE ledger_entries SET
		  entry_date=$2, channel=$3, investment_type=$4, wallet=$5, investor=$6, state=$7,
		  stake_cents=$8, stake_eur=$9, gross_result_cents=$10, gross_result_eur=$11,
		  net_impact_cents=$12, net_impact_eur=$13, applied=$14, movement_type=$15,
		  offered_odds=$16, applied_odds=$17, independent_odds=$18, odds_values=$19,
		  notes=$20, sport=$21, selection=$22, updated_at=NOW()
		WHERE id=$1`,
		id, updated.Date, updated.Channel, updated.InvestmentType, updated.Wallet, updated.Investor,
		string(updated.State),
		int64(updated.StakeCents), updated.StakeCents.EUR(),
		int64(updated.GrossResultCents), updated.GrossResultCents.EUR(),
		int64(updated.NetImpactCents), updated.NetImpactCents.EUR(),
		updated.Leg.Applied(), string(updated.MovementType),
		updated.OfferedOdds, updated.AppliedOdds, updated.IndependentOdds, pq.Array(updated.OddsValues),
		updated.Notes, updated.Sport, updated.Selection,
	)
	if err != nil {
		return nil, err
	}

	if err := applyDeltas(ctx, tx, engine.PlanEdit(old, updated)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return old, nil
}

// DeleteEntry remove um lançamento revertendo o impacto nas contas.
func (p *Postgres) DeleteEntry(ctx context.Context, id string) (*engine.Entry, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	old, err := selectEntryForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_entries WHERE id=$1`, id); err != nil {
		return nil, err
	}
	if err := applyDeltas(ctx, tx, engine.PlanDelete(old)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return old, nil
}

// ToggleEntry alterna a perna de contribuição de um lançamento.
// Pernas espelho de recarga são estruturalmente fixas: o erro do engine
// sobe intacto e nada é gravado.
func (p *Postgres) ToggleEntry(ctx context.Context, id string) (*engine.Entry, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	old, err := selectEntryForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	plan, updated, err := engine.PlanToggle(old, engine.IsBank(old.Wallet, p.bank))
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE ledger_entries SET applied=$2, movement_type=$3, updated_at=NOW() WHERE id=$1`,
		id, updated.Leg.Applied(), string(updated.MovementType))
	if err != nil {
		return nil, err
	}
	if err := applyDeltas(ctx, tx, plan); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &updated, nil
}

func selectEntryForUpdate(ctx context.Context, tx *sql.Tx, id string) (*engine.Entry, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries WHERE id=$1 FOR UPDATE`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanEntry(r rowScanner) (*engine.Entry, error) {
	var (
		e         engine.Entry
		state     string
		applied   bool
		movement  sql.NullString
		odds      []float64
		notes     sql.NullString
		sport     sql.NullString
		selection sql.NullString
		updatedAt sql.NullTime
	)
	err := r.Scan(
		&e.ID, &e.Date, &e.Channel, &e.InvestmentType, &e.Wallet, &e.Investor, &state,
		&e.StakeCents, &e.GrossResultCents, &e.NetImpactCents, &applied, &movement,
		&e.OfferedOdds, &e.AppliedOdds, &e.IndependentOdds, pq.Array(&odds),
		&notes, &sport, &selection, &e.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.State = engine.State(state)
	e.Leg = engine.ContributionFromApplied(applied)
	e.MovementType = engine.MovementKind(movement.String)
	e.OddsValues = odds
	e.Notes = notes.String
	e.Sport = sport.String
	e.Selection = selection.String
	if updatedAt.Valid {
		e.UpdatedAt = updatedAt.Time
	}
	return &e, nil
}

// GetEntry busca um lançamento pelo id.
func (p *Postgres) GetEntry(ctx context.Context, id string) (*engine.Entry, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries WHERE id=$1`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// EntryFilter restringe a listagem de lançamentos (valores vazios ignoram
// o critério).
type EntryFilter struct {
	Wallet   string
	Investor string
	State    string
	Movement string
}

// ListEntries devolve o histórico ordenado por data decrescente.
func (p *Postgres) ListEntries(ctx context.Context, f EntryFilter) ([]engine.Entry, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM ledger_entries
		WHERE ($1 = '' OR wallet = $1)
		  AND ($2 = '' OR investor = $2)
		  AND ($3 = '' OR state = $3)
		  AND ($4 = '' OR movement_type = $4)
		ORDER BY entry_date DESC, created_at DESC`,
		f.Wallet, f.Investor, f.State, f.Movement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// EntriesByAccount devolve todos os lançamentos que referenciam a conta
// no eixo dado (insumo do recálculo completo).
func (p *Postgres) EntriesByAccount(ctx context.Context, axis engine.Axis, id string) ([]engine.Entry, error) {
	f := EntryFilter{Wallet: id}
	if axis == engine.AxisInvestor {
		f = EntryFilter{Investor: id}
	}
	return p.ListEntries(ctx, f)
}
