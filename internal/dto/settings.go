package dto

import (
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettingsResponse is the user's preferences without the PIN hash.
type SettingsResponse struct {
	PinEnabled    bool                        `json:"pinEnabled"`
	Currency      string                      `json:"currency"`
	Language      string                      `json:"language"`
	JarRatios     domain.JarRatios            `json:"jarRatios"`
	Notifications domain.NotificationSettings `json:"notifications"`
}

func ToSettingsResponse(s domain.Settings) SettingsResponse {
	return SettingsResponse{
		PinEnabled:    s.PinEnabled,
		Currency:      s.Currency,
		Language:      s.Language,
		JarRatios:     s.JarRatios,
		Notifications: s.Notifications,
	}
}

// UpdateSettingsRequest replaces the non-security preferences.
type UpdateSettingsRequest struct {
	Currency      string                      `json:"currency" binding:"required"`
	Language      string                      `json:"language" binding:"required,oneof=vi en"`
	Notifications domain.NotificationSettings `json:"notifications"`
}

func (r UpdateSettingsRequest) ToUpdate() domain.SettingsUpdate {
	return domain.SettingsUpdate{Currency: r.Currency, Language: r.Language, Notifications: r.Notifications}
}

// UpdateRatiosRequest sets the AUTO split. Shares are fractions summing to 1.
type UpdateRatiosRequest struct {
	Ratios map[domain.JarType]decimal.Decimal `json:"ratios" binding:"required"`
}

// PINRequest sets or checks the app PIN.
type PINRequest struct {
	PIN string `json:"pin" binding:"required"`
}

type VerifyPINResponse struct {
	Valid bool `json:"valid"`
}

// CurrencyResponse describes one supported display currency.
type CurrencyResponse struct {
	Code        string          `json:"code"`
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	Precision   int             `json:"precision"`
	BasePerUnit decimal.Decimal `json:"basePerUnit" swaggertype:"string"`
}

func ToCurrencyResponse(c domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:        c.CurrencyCode,
		Symbol:      c.Symbol,
		Name:        c.Name,
		Precision:   c.Precision,
		BasePerUnit: c.BasePerUnit,
	}
}
