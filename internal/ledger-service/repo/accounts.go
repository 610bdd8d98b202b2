package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/radieske/bet-ledger-poc/internal/ledger-service/engine"
)

// Balances devolve o snapshot completo de um eixo: id → saldo em centavos.
func (p *Postgres) Balances(ctx context.Context, axis engine.Axis) (map[string]engine.Cents, error) {
	rows, err := p.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, balance_cents FROM %s ORDER BY id`, tableFor(axis)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]engine.Cents{}
	for rows.Next() {
		var id string
		var cents int64
		if err := rows.Scan(&id, &cents); err != nil {
			return nil, err
		}
		out[id] = engine.Cents(cents)
	}
	return out, rows.Err()
}

// StoredBalance devolve o saldo armazenado de uma conta.
func (p *Postgres) StoredBalance(ctx context.Context, axis engine.Axis, id string) (engine.Cents, error) {
	var cents int64
	err := p.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT balance_cents FROM %s WHERE id=$1`, tableFor(axis)), id).Scan(&cents)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return engine.Cents(cents), err
}

// SetBalance sobrescreve o saldo de uma conta. Operação administrativa
// explícita; muda a base dos incrementos futuros e pode divergir do
// histórico até o próximo recálculo.
func (p *Postgres) SetBalance(ctx context.Context, axis engine.Axis, id string, cents engine.Cents) error {
	_, err := p.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, balance_cents, balance_eur)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
		  balance_cents = EXCLUDED.balance_cents,
		  balance_eur   = EXCLUDED.balance_eur`, tableFor(axis)),
		id, int64(cents), cents.EUR())
	return err
}

// EnsureAccount cria a conta com saldo inicial caso ainda não exista.
// Não toca contas existentes.
func (p *Postgres) EnsureAccount(ctx context.Context, axis engine.Axis, id string, seed engine.Cents) error {
	_, err := p.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, balance_cents, balance_eur)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING`, tableFor(axis)),
		id, int64(seed), seed.EUR())
	return err
}

// SeedDefaults garante as contas padrão do protótipo na primeira subida.
func (p *Postgres) SeedDefaults(ctx context.Context) error {
	wallets := map[string]engine.Cents{"Bet365": 100_00, p.bank: 500_00}
	investors := map[string]engine.Cents{"Alex": 300_00, "Naira": 300_00}

	for id, seed := range wallets {
		if err := p.EnsureAccount(ctx, engine.AxisWallet, id, seed); err != nil {
			return fmt.Errorf("seed wallet %s: %w", id, err)
		}
	}
	for id, seed := range investors {
		if err := p.EnsureAccount(ctx, engine.AxisInvestor, id, seed); err != nil {
			return fmt.Errorf("seed investor %s: %w", id, err)
		}
	}
	return nil
}

// UsageCount conta quantos lançamentos referenciam a conta no eixo.
func (p *Postgres) UsageCount(ctx context.Context, axis engine.Axis, id string) (int, error) {
	col := "wallet"
	if axis == engine.AxisInvestor {
		col = "investor"
	}
	var n int
	err := p.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM ledger_entries WHERE %s=$1`, col), id).Scan(&n)
	return n, err
}

// DeleteAccount remove uma conta. Não reescreve lançamentos históricos:
// registros antigos mantêm a referência obsoleta de propósito, como
// trilha de auditoria. A conta banco nunca pode ser removida.
func (p *Postgres) DeleteAccount(ctx context.Context, axis engine.Axis, id string) (usage int, err error) {
	if axis == engine.AxisWallet && engine.IsBank(id, p.bank) {
		return 0, ErrBankProtected
	}

	usage, err = p.UsageCount(ctx, axis, id)
	if err != nil {
		return 0, err
	}

	res, err := p.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, tableFor(axis)), id)
	if err != nil {
		return usage, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return usage, ErrNotFound
	}
	return usage, nil
}
