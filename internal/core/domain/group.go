package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GroupKind distinguishes the two staging ledgers.
type GroupKind string

const (
	// EventGroup commits as a single net transaction.
	EventGroup GroupKind = "EVENT"
	// FutureGroup commits every staged entry as its own transaction.
	FutureGroup GroupKind = "FUTURE"
)

// IsValid reports whether k is a known kind.
func (k GroupKind) IsValid() bool {
	return k == EventGroup || k == FutureGroup
}

// StagedGroup accumulates transaction-shaped entries that have no effect on the jars.
// It is the only group state that accepts entries; committing consumes it.
type StagedGroup struct {
	ID      string        `json:"id"`
	Kind    GroupKind     `json:"kind"`
	Name    string        `json:"name"`
	Date    time.Time     `json:"date"`
	Entries []Transaction `json:"entries"`
}

// Totals sums staged income and expense.
func (g StagedGroup) Totals() (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, e := range g.Entries {
		switch e.Type {
		case Income:
			income = income.Add(e.Amount)
		case Expense:
			expense = expense.Add(e.Amount)
		}
	}
	return income, expense
}

// Clone returns a copy whose entry slice is independent.
func (g StagedGroup) Clone() StagedGroup {
	out := g
	out.Entries = append([]Transaction(nil), g.Entries...)
	return out
}

// CommittedGroup is the receipt of a commit. It records what the group turned into and
// deliberately exposes no way to add or remove entries.
type CommittedGroup struct {
	GroupID      string        `json:"groupId"`
	Kind         GroupKind     `json:"kind"`
	Name         string        `json:"name"`
	TargetJar    *JarType      `json:"targetJar"`
	CommittedAt  time.Time     `json:"committedAt"`
	Transactions []Transaction `json:"transactions"`
}

// GroupInput names a new staging group.
type GroupInput struct {
	Name string `validate:"required"`
	Date time.Time
}

// Validate checks the group input.
func (in GroupInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("group name is required")
	}
	return nil
}
