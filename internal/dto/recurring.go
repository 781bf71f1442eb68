package dto

import (
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecurringTemplateRequest creates or replaces a recurring template.
type RecurringTemplateRequest struct {
	Amount           decimal.Decimal         `json:"amount" swaggertype:"string"`
	Description      string                  `json:"description" binding:"required"`
	JarType          string                  `json:"jarType"`
	Type             domain.TransactionType  `json:"type" binding:"required,oneof=income expense"`
	SubscriptionType domain.SubscriptionType `json:"subscriptionType" binding:"required,oneof=1d 1w 1m 3m 6m 1y 2y 3y"`
	StartDate        time.Time               `json:"startDate" binding:"required"`
	IsActive         *bool                   `json:"isActive"` // Defaults to true
}

func (r RecurringTemplateRequest) ToInput() (domain.RecurringTemplateInput, error) {
	jar, err := parseJar(r.JarType)
	if err != nil {
		return domain.RecurringTemplateInput{}, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return domain.RecurringTemplateInput{
		Amount:           r.Amount,
		Description:      r.Description,
		JarType:          jar,
		Type:             r.Type,
		SubscriptionType: r.SubscriptionType,
		StartDate:        r.StartDate,
		IsActive:         active,
	}, nil
}

type RecurringTemplateResponse struct {
	ID                 string                  `json:"id"`
	Amount             decimal.Decimal         `json:"amount" swaggertype:"string"`
	Description        string                  `json:"description"`
	JarType            string                  `json:"jarType"`
	Type               domain.TransactionType  `json:"type"`
	SubscriptionType   domain.SubscriptionType `json:"subscriptionType"`
	StartDate          time.Time               `json:"startDate"`
	EndDate            time.Time               `json:"endDate"`
	IsActive           bool                    `json:"isActive"`
	LastMaterializedAt *time.Time              `json:"lastMaterializedAt,omitempty"`
}

func ToRecurringTemplateResponse(r domain.RecurringTemplate) RecurringTemplateResponse {
	return RecurringTemplateResponse{
		ID:                 r.ID,
		Amount:             r.Amount,
		Description:        r.Description,
		JarType:            domain.JarLabel(r.JarType),
		Type:               r.Type,
		SubscriptionType:   r.SubscriptionType,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		IsActive:           r.IsActive,
		LastMaterializedAt: r.LastMaterializedAt,
	}
}

func ToRecurringTemplateResponses(templates []domain.RecurringTemplate) []RecurringTemplateResponse {
	out := make([]RecurringTemplateResponse, 0, len(templates))
	for _, r := range templates {
		out = append(out, ToRecurringTemplateResponse(r))
	}
	return out
}
