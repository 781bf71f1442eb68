package ledger

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

type summaryMemo struct {
	version uint64
	summary domain.LedgerSummary
}

// Summary returns the derived dashboard figures. The result is memoized until the next
// write.
func (b *Book) Summary() domain.LedgerSummary {
	if b.memo != nil && b.memo.version == b.version {
		return cloneSummary(b.memo.summary)
	}

	s := domain.LedgerSummary{
		Balances:     b.balances.Clone(),
		TotalBalance: b.balances.Total(),
		Debt:         b.Debt(),
		Lent:         b.Lent(),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Distribution: b.Distribution(),
	}
	s.NetWorth = s.TotalBalance.Add(s.Lent).Sub(s.Debt)
	for _, txn := range b.transactions {
		if txn.IsTransferLeg() {
			continue
		}
		switch txn.Type {
		case domain.Income:
			s.TotalIncome = s.TotalIncome.Add(txn.Amount)
		case domain.Expense:
			s.TotalExpense = s.TotalExpense.Add(txn.Amount)
		}
	}

	b.memo = &summaryMemo{version: b.version, summary: s}
	return cloneSummary(s)
}

// Debt is the outstanding amount of every BORROW loan.
func (b *Book) Debt() decimal.Decimal {
	return b.outstanding(domain.Borrow)
}

// Lent is the outstanding amount of every LEND loan.
func (b *Book) Lent() decimal.Decimal {
	return b.outstanding(domain.Lend)
}

// NetWorth is the jar total plus money lent out minus money owed.
func (b *Book) NetWorth() decimal.Decimal {
	return b.balances.Total().Add(b.Lent()).Sub(b.Debt())
}

func (b *Book) outstanding(t domain.LoanType) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range b.loans {
		if l.Type == t {
			sum = sum.Add(l.Remaining())
		}
	}
	return sum
}

// Distribution returns each jar's share of the positive balance total. Jars with a
// negative balance get a zero share.
func (b *Book) Distribution() []domain.JarShare {
	positive := decimal.Zero
	for _, jar := range domain.AllJars {
		if v := b.balances.Get(jar); v.IsPositive() {
			positive = positive.Add(v)
		}
	}

	out := make([]domain.JarShare, 0, len(domain.AllJars))
	for _, jar := range domain.AllJars {
		v := b.balances.Get(jar)
		share := decimal.Zero
		if positive.IsPositive() && v.IsPositive() {
			share = v.DivRound(positive, 6)
		}
		out = append(out, domain.JarShare{Jar: jar, Balance: v, Share: share})
	}
	return out
}

// Series buckets income and expense over the lookback window of period, ending at now.
// Buckets follow now's location. Transfer legs are internal movements and are skipped.
func (b *Book) Series(period domain.StatsPeriod, now time.Time) []domain.SeriesBucket {
	loc := now.Location()
	if period == domain.PeriodYear {
		return b.monthlySeries(now, loc, 12)
	}
	days := 7
	if period == domain.PeriodMonth {
		days = 30
	}
	return b.dailySeries(now, loc, days)
}

func (b *Book) dailySeries(now time.Time, loc *time.Location, days int) []domain.SeriesBucket {
	today := civil.DateOf(now.In(loc))
	first := today.AddDays(-(days - 1))

	out := make([]domain.SeriesBucket, days)
	for i := range out {
		out[i] = domain.SeriesBucket{Label: first.AddDays(i).String(), Income: decimal.Zero, Expense: decimal.Zero}
	}
	for _, txn := range b.transactions {
		if txn.IsTransferLeg() {
			continue
		}
		d := civil.DateOf(txn.Timestamp.In(loc))
		if d.Before(first) || d.After(today) {
			continue
		}
		addToBucket(&out[d.DaysSince(first)], txn)
	}
	return out
}

func (b *Book) monthlySeries(now time.Time, loc *time.Location, months int) []domain.SeriesBucket {
	local := now.In(loc)
	end := monthIndex(local.Year(), local.Month())
	start := end - (months - 1)

	out := make([]domain.SeriesBucket, months)
	for i := range out {
		y, m := (start+i)/12, time.Month((start+i)%12+1)
		out[i] = domain.SeriesBucket{
			Label:   time.Date(y, m, 1, 0, 0, 0, 0, loc).Format("2006-01"),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}
	for _, txn := range b.transactions {
		if txn.IsTransferLeg() {
			continue
		}
		ts := txn.Timestamp.In(loc)
		idx := monthIndex(ts.Year(), ts.Month())
		if idx < start || idx > end {
			continue
		}
		addToBucket(&out[idx-start], txn)
	}
	return out
}

func monthIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

func addToBucket(bucket *domain.SeriesBucket, txn domain.Transaction) {
	switch txn.Type {
	case domain.Income:
		bucket.Income = bucket.Income.Add(txn.Amount)
	case domain.Expense:
		bucket.Expense = bucket.Expense.Add(txn.Amount)
	}
}

func cloneSummary(s domain.LedgerSummary) domain.LedgerSummary {
	s.Balances = s.Balances.Clone()
	s.Distribution = append([]domain.JarShare(nil), s.Distribution...)
	return s
}
