package accounting_test

import (
	"testing"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func startingBalances() domain.JarBalance {
	b := domain.NewJarBalance()
	b[domain.JarNecessities] = dec("1000")
	b[domain.JarPlay] = dec("-25.5")
	b[domain.JarGive] = dec("12.34")
	return b
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name string
		txn  domain.Transaction
		dir  accounting.Direction
		want string
	}{
		{"income applied", domain.Transaction{Type: domain.Income, Amount: dec("100")}, accounting.Apply, "100"},
		{"income reversed", domain.Transaction{Type: domain.Income, Amount: dec("100")}, accounting.Reverse, "-100"},
		{"expense applied", domain.Transaction{Type: domain.Expense, Amount: dec("40")}, accounting.Apply, "-40"},
		{"expense reversed", domain.Transaction{Type: domain.Expense, Amount: dec("40")}, accounting.Reverse, "40"},
		{"negative amount treated as zero", domain.Transaction{Type: domain.Income, Amount: dec("-5")}, accounting.Apply, "0"},
		{"unknown type treated as zero", domain.Transaction{Type: "bogus", Amount: dec("5")}, accounting.Apply, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.SignedAmount(tt.txn, tt.dir)
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestApplyDelta_SingleJar(t *testing.T) {
	start := startingBalances()
	txn := domain.Transaction{Type: domain.Expense, Amount: dec("200"), JarType: domain.JarNecessities.Ptr()}

	got := accounting.ApplyDelta(start, txn, accounting.Apply, domain.DefaultJarRatios())

	assert.True(t, dec("800").Equal(got[domain.JarNecessities]))
	assert.True(t, dec("-25.5").Equal(got[domain.JarPlay]))
	assert.True(t, dec("1000").Equal(start[domain.JarNecessities]), "input vector must not change")
}

func TestApplyDelta_AutoUsesCapturedRatios(t *testing.T) {
	captured := domain.JarRatios{
		domain.JarNecessities: dec("0.5"),
		domain.JarLongTerm:    dec("0.5"),
		domain.JarEducation:   dec("0"),
		domain.JarPlay:        dec("0"),
		domain.JarFinancial:   dec("0"),
		domain.JarGive:        dec("0"),
	}
	txn := domain.Transaction{Type: domain.Income, Amount: dec("100"), Ratios: captured}

	got := accounting.ApplyDelta(domain.NewJarBalance(), txn, accounting.Apply, domain.DefaultJarRatios())

	assert.True(t, dec("50").Equal(got[domain.JarNecessities]))
	assert.True(t, dec("50").Equal(got[domain.JarLongTerm]))
	assert.True(t, got[domain.JarGive].IsZero())
}

func TestApplyDelta_InverseLaw(t *testing.T) {
	ratios := domain.DefaultJarRatios()
	txns := []domain.Transaction{
		{Type: domain.Income, Amount: dec("123456.789")},
		{Type: domain.Expense, Amount: dec("0.01")},
		{Type: domain.Income, Amount: dec("77"), JarType: domain.JarEducation.Ptr()},
		{Type: domain.Expense, Amount: dec("999999"), JarType: domain.JarGive.Ptr()},
		{Type: domain.Expense, Amount: dec("33.333"), Ratios: ratios},
	}

	for _, txn := range txns {
		start := startingBalances()
		applied := accounting.ApplyDelta(start, txn, accounting.Apply, ratios)
		back := accounting.ApplyDelta(applied, txn, accounting.Reverse, ratios)
		assert.True(t, start.Equal(back), "apply then reverse must restore %+v", txn)
	}
}

func TestDistribute_Partition(t *testing.T) {
	ratios := domain.DefaultJarRatios()
	for _, amount := range []string{"1", "100", "0.03", "987654321.123", "7"} {
		parts := accounting.Distribute(dec(amount), ratios)
		assert.True(t, dec(amount).Equal(parts.Total()), "parts of %s must sum back", amount)
	}
}

func TestReplay(t *testing.T) {
	ratios := domain.DefaultJarRatios()
	txns := []domain.Transaction{
		{Type: domain.Income, Amount: dec("1000")},
		{Type: domain.Expense, Amount: dec("100"), JarType: domain.JarNecessities.Ptr()},
	}

	got := accounting.Replay(txns, ratios)

	assert.True(t, dec("450").Equal(got[domain.JarNecessities]))
	assert.True(t, dec("50").Equal(got[domain.JarGive]))
	assert.True(t, dec("900").Equal(got.Total()))
}
