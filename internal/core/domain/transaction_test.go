package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string {
	return &s
}

func TestTransaction_Links(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		auto        bool
		transfer    bool
		loan        bool
	}{
		{
			name:        "plain auto transaction",
			transaction: domain.Transaction{},
			auto:        true,
		},
		{
			name:        "jar transaction",
			transaction: domain.Transaction{JarType: domain.JarPlay.Ptr()},
		},
		{
			name:        "transfer leg",
			transaction: domain.Transaction{JarType: domain.JarPlay.Ptr(), TransferGroupID: stringPtr("g1")},
			transfer:    true,
		},
		{
			name:        "empty transfer id is not a link",
			transaction: domain.Transaction{JarType: domain.JarPlay.Ptr(), TransferGroupID: stringPtr("")},
		},
		{
			name:        "loan payment",
			transaction: domain.Transaction{LoanID: stringPtr("loan-1")},
			auto:        true,
			loan:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.auto, tt.transaction.IsAuto())
			assert.Equal(t, tt.transfer, tt.transaction.IsTransferLeg())
			assert.Equal(t, tt.loan, tt.transaction.IsLoanLinked())
		})
	}
}

func TestTransactionInput_ToTransaction(t *testing.T) {
	in := domain.TransactionInput{
		Type:        domain.Expense,
		Amount:      decimal.NewFromInt(42),
		Description: "  coffee ",
		JarType:     domain.JarPlay.Ptr(),
		Timestamp:   time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
	}

	txn := in.ToTransaction("tx-1")

	assert.Equal(t, "tx-1", txn.ID)
	assert.Equal(t, "coffee", txn.Description)
	assert.Nil(t, txn.LoanID)
	assert.Nil(t, txn.TransferGroupID)
	assert.NoError(t, txn.Validate())
}

func TestJarRatios_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(domain.JarRatios)
		wantErr bool
	}{
		{"defaults", func(domain.JarRatios) {}, false},
		{"missing jar", func(r domain.JarRatios) { delete(r, domain.JarGive) }, true},
		{"sum above one", func(r domain.JarRatios) { r[domain.JarGive] = decimal.RequireFromString("0.06") }, true},
		{"negative share", func(r domain.JarRatios) {
			r[domain.JarGive] = decimal.RequireFromString("-0.05")
			r[domain.JarNecessities] = decimal.RequireFromString("0.65")
		}, true},
		{"unknown jar", func(r domain.JarRatios) { r["CAR"] = decimal.Zero }, true},
		{"everything in one jar", func(r domain.JarRatios) {
			for _, jar := range domain.AllJars {
				r[jar] = decimal.Zero
			}
			r[domain.JarFinancial] = decimal.NewFromInt(1)
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.DefaultJarRatios()
			tt.mutate(r)
			if tt.wantErr {
				assert.Error(t, r.Validate())
			} else {
				assert.NoError(t, r.Validate())
			}
		})
	}
}

func TestParseJarTarget(t *testing.T) {
	jar, err := domain.ParseJarTarget("AUTO")
	require.NoError(t, err)
	assert.Nil(t, jar)

	jar, err = domain.ParseJarTarget("")
	require.NoError(t, err)
	assert.Nil(t, jar)

	jar, err = domain.ParseJarTarget("EDU")
	require.NoError(t, err)
	assert.Equal(t, domain.JarEducation, *jar)
	assert.Equal(t, "EDU", domain.JarLabel(jar))
	assert.Equal(t, "AUTO", domain.JarLabel(nil))

	_, err = domain.ParseJarTarget("CAR")
	assert.Error(t, err)
}

func TestLoanType_Directions(t *testing.T) {
	assert.Equal(t, domain.Income, domain.Borrow.OriginType())
	assert.Equal(t, domain.Expense, domain.Borrow.PaymentType())
	assert.Equal(t, domain.Expense, domain.Lend.OriginType())
	assert.Equal(t, domain.Income, domain.Lend.PaymentType())
}

func TestSubscriptionType_EndDate(t *testing.T) {
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		code domain.SubscriptionType
		days int
	}{
		{domain.OneDay, 1},
		{domain.OneWeek, 7},
		{domain.OneMonth, 30},
		{domain.ThreeMonth, 90},
		{domain.SixMonth, 180},
		{domain.OneYear, 365},
		{domain.TwoYear, 730},
		{domain.ThreeYear, 1095},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			end, err := tt.code.EndDate(start)
			require.NoError(t, err)
			assert.Equal(t, start.AddDate(0, 0, tt.days), end)
		})
	}

	_, err := domain.SubscriptionType("2w").EndDate(start)
	assert.Error(t, err)
}

func TestCurrency_FromBase(t *testing.T) {
	usd, ok := domain.LookupCurrency("USD")
	require.True(t, ok)

	assert.Equal(t, "4", usd.FromBase(decimal.NewFromInt(100000)).String())

	_, ok = domain.LookupCurrency("GBP")
	assert.False(t, ok)
}
