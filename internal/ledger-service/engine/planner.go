package engine

import "errors"

// Axis identifica o agregado de saldo afetado por um delta.
type Axis int

const (
	AxisWallet Axis = iota
	AxisInvestor
)

func (a Axis) String() string {
	if a == AxisInvestor {
		return "investor"
	}
	return "wallet"
}

// AccountDelta é um incremento comutativo a aplicar a uma conta.
// Todos os deltas de uma mutação lógica são submetidos junto com a
// escrita do lançamento em uma única transação tudo-ou-nada.
type AccountDelta struct {
	Axis      Axis
	AccountID string
	Delta     Cents
}

// Plan é o conjunto de deltas de saldo de uma mutação.
type Plan struct {
	Deltas []AccountDelta
}

func (p *Plan) add(axis Axis, id string, delta Cents) {
	if id == "" {
		return
	}
	p.Deltas = append(p.Deltas, AccountDelta{Axis: axis, AccountID: id, Delta: delta})
}

// PlanCreate: +efetivo aplicado à carteira e ao investidor do lançamento.
func PlanCreate(e *Entry) Plan {
	var p Plan
	eff := e.Effective()
	p.add(AxisWallet, e.Wallet, eff)
	p.add(AxisInvestor, e.Investor, eff)
	return p
}

// PlanDelete: reverso exato da criação.
func PlanDelete(e *Entry) Plan {
	var p Plan
	eff := e.Effective()
	p.add(AxisWallet, e.Wallet, -eff)
	p.add(AxisInvestor, e.Investor, -eff)
	return p
}

// PlanEdit calcula os deltas de uma edição, tratando os eixos carteira e
// investidor de forma independente:
//   - conta inalterada no eixo: um único delta efetivo(novo) − efetivo(antigo)
//     (evita reverter+reaplicar, que dobraria escritas na transação);
//   - conta trocada: reverte na conta antiga e aplica na nova, como dois
//     deltas independentes.
func PlanEdit(old, new *Entry) Plan {
	var p Plan
	oldEff := old.Effective()
	newEff := new.Effective()

	if old.Wallet == new.Wallet {
		if d := newEff - oldEff; d != 0 {
			p.add(AxisWallet, new.Wallet, d)
		}
	} else {
		p.add(AxisWallet, old.Wallet, -oldEff)
		p.add(AxisWallet, new.Wallet, newEff)
	}

	if old.Investor == new.Investor {
		if d := newEff - oldEff; d != 0 {
			p.add(AxisInvestor, new.Investor, d)
		}
	} else {
		p.add(AxisInvestor, old.Investor, -oldEff)
		p.add(AxisInvestor, new.Investor, newEff)
	}

	return p
}

// ErrMirrorLegFixed: a perna espelho de uma recarga tem o flag aplicado
// estruturalmente fixo; alterná-lo produziria um estado sem sentido no ledger.
var ErrMirrorLegFixed = errors.New("recharge mirror leg cannot be toggled")

// PlanToggle alterna a perna de contribuição de um lançamento e devolve o
// lançamento atualizado (perna invertida, movimento re-derivado) junto com
// os deltas. delta = (sinalNovo − sinalAntigo) × netImpact em cada eixo.
func PlanToggle(e *Entry, walletIsBank bool) (Plan, Entry, error) {
	if MovementOf(e, walletIsBank) == MovementRecharge && e.Leg == ContributionMirror {
		return Plan{}, Entry{}, ErrMirrorLegFixed
	}

	updated := *e
	updated.Leg = e.Leg.Toggled()
	// o movimento depende em parte da própria perna, então re-deriva
	updated.MovementType = DeriveMovement(updated.State, walletIsBank, updated.Leg)

	delta := (updated.Leg.Sign() - e.Leg.Sign()) * e.NetImpactCents

	var p Plan
	p.add(AxisWallet, e.Wallet, delta)
	p.add(AxisInvestor, e.Investor, delta)
	return p, updated, nil
}
