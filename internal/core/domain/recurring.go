package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionType is the duration code of a recurring template.
type SubscriptionType string

const (
	OneDay     SubscriptionType = "1d"
	OneWeek    SubscriptionType = "1w"
	OneMonth   SubscriptionType = "1m"
	ThreeMonth SubscriptionType = "3m"
	SixMonth   SubscriptionType = "6m"
	OneYear    SubscriptionType = "1y"
	TwoYear    SubscriptionType = "2y"
	ThreeYear  SubscriptionType = "3y"
)

var subscriptionDays = map[SubscriptionType]int{
	OneDay:     1,
	OneWeek:    7,
	OneMonth:   30,
	ThreeMonth: 90,
	SixMonth:   180,
	OneYear:    365,
	TwoYear:    730,
	ThreeYear:  1095,
}

// Days returns the fixed day count of the duration code.
func (s SubscriptionType) Days() (int, bool) {
	d, ok := subscriptionDays[s]
	return d, ok
}

// EndDate returns start plus the duration of the code.
func (s SubscriptionType) EndDate(start time.Time) (time.Time, error) {
	days, ok := s.Days()
	if !ok {
		return time.Time{}, fmt.Errorf("unknown subscription type %q", s)
	}
	return start.AddDate(0, 0, days), nil
}

// RecurringTemplate describes a recurring obligation. Templates have no balance effect
// until they are explicitly materialized.
type RecurringTemplate struct {
	ID                 string           `json:"id"`
	Amount             decimal.Decimal  `json:"amount"`
	Description        string           `json:"description"`
	JarType            *JarType         `json:"jarType"`
	Type               TransactionType  `json:"type"`
	SubscriptionType   SubscriptionType `json:"subscriptionType"`
	StartDate          time.Time        `json:"startDate"`
	EndDate            time.Time        `json:"endDate"`
	IsActive           bool             `json:"isActive"`
	LastMaterializedAt *time.Time       `json:"lastMaterializedAt"`
}

// Covers reports whether at falls inside the template's active window.
func (r RecurringTemplate) Covers(at time.Time) bool {
	return !at.Before(r.StartDate) && !at.After(r.EndDate)
}

// RecurringTemplateInput is the full set of editable template fields.
type RecurringTemplateInput struct {
	Amount           decimal.Decimal
	Description      string           `validate:"required"`
	JarType          *JarType
	Type             TransactionType  `validate:"required,oneof=income expense"`
	SubscriptionType SubscriptionType `validate:"required"`
	StartDate        time.Time
	IsActive         bool
}

// Validate checks the template input.
func (in RecurringTemplateInput) Validate() error {
	if !in.Amount.IsPositive() {
		return fmt.Errorf("recurring amount must be positive")
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("recurring description is required")
	}
	if !in.Type.IsValid() {
		return fmt.Errorf("recurring type must be income or expense, got %q", in.Type)
	}
	if _, ok := in.SubscriptionType.Days(); !ok {
		return fmt.Errorf("unknown subscription type %q", in.SubscriptionType)
	}
	if in.JarType != nil && !in.JarType.IsValid() {
		return fmt.Errorf("unknown jar %q", *in.JarType)
	}
	if in.StartDate.IsZero() {
		return fmt.Errorf("recurring start date is required")
	}
	return nil
}
