package accounting

import (
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Direction selects whether a transaction's effect is added or removed.
type Direction int

const (
	Apply   Direction = 1
	Reverse Direction = -1
)

// SignedAmount returns the amount with the sign of its effect on the jars:
// income applied or expense reversed -> positive,
// expense applied or income reversed -> negative.
// A negative amount is treated as zero.
func SignedAmount(txn domain.Transaction, dir Direction) decimal.Decimal {
	amount := txn.Amount
	if amount.IsNegative() {
		return decimal.Zero
	}
	if txn.Type == domain.Expense {
		amount = amount.Neg()
	} else if txn.Type != domain.Income {
		return decimal.Zero
	}
	if dir == Reverse {
		amount = amount.Neg()
	}
	return amount
}

// RatiosFor returns the ratios an AUTO transaction is distributed with: the ones captured
// on the transaction, or fallback for records that predate capture.
func RatiosFor(txn domain.Transaction, fallback domain.JarRatios) domain.JarRatios {
	if len(txn.Ratios) > 0 {
		return txn.Ratios
	}
	return fallback
}

// Distribute splits amount across every jar by ratio.
func Distribute(amount decimal.Decimal, ratios domain.JarRatios) domain.JarBalance {
	out := domain.NewJarBalance()
	for _, jar := range domain.AllJars {
		out[jar] = amount.Mul(ratios.Get(jar))
	}
	return out
}

// Effect returns the per-jar delta of txn in the given direction.
func Effect(txn domain.Transaction, dir Direction, fallback domain.JarRatios) domain.JarBalance {
	signed := SignedAmount(txn, dir)
	if txn.JarType != nil {
		out := domain.NewJarBalance()
		out[*txn.JarType] = signed
		return out
	}
	return Distribute(signed, RatiosFor(txn, fallback))
}

// ApplyDelta returns a new balance vector with txn's effect applied or reversed.
// The input vector is left untouched.
func ApplyDelta(balances domain.JarBalance, txn domain.Transaction, dir Direction, fallback domain.JarRatios) domain.JarBalance {
	out := balances.Clone()
	delta := Effect(txn, dir, fallback)
	for _, jar := range domain.AllJars {
		out[jar] = out[jar].Add(delta[jar])
	}
	return out
}

// Replay rebuilds a balance vector from scratch out of live transactions.
func Replay(txns []domain.Transaction, fallback domain.JarRatios) domain.JarBalance {
	out := domain.NewJarBalance()
	for _, txn := range txns {
		out = ApplyDelta(out, txn, Apply, fallback)
	}
	return out
}
