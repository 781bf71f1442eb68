package dto

import (
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/utils"
)

// SeriesParams selects the series window.
type SeriesParams struct {
	Period domain.StatsPeriod `form:"period,default=month" binding:"oneof=week month year"`
}

// SummaryResponse is the dashboard summary plus its headline figures in the display currency.
type SummaryResponse struct {
	domain.LedgerSummary
	Currency string            `json:"currency"`
	Display  map[string]string `json:"display"`
}

// ToSummaryResponse formats the headline figures for currencyCode.
func ToSummaryResponse(s domain.LedgerSummary, currencyCode string) SummaryResponse {
	return SummaryResponse{
		LedgerSummary: s,
		Currency:      currencyCode,
		Display: map[string]string{
			"totalBalance": utils.DisplayAmount(s.TotalBalance, currencyCode),
			"debt":         utils.DisplayAmount(s.Debt, currencyCode),
			"lent":         utils.DisplayAmount(s.Lent, currencyCode),
			"netWorth":     utils.DisplayAmount(s.NetWorth, currencyCode),
			"totalIncome":  utils.DisplayAmount(s.TotalIncome, currencyCode),
			"totalExpense": utils.DisplayAmount(s.TotalExpense, currencyCode),
		},
	}
}

type SeriesResponse struct {
	Period  domain.StatsPeriod    `json:"period"`
	Buckets []domain.SeriesBucket `json:"buckets"`
}
