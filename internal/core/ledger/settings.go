package ledger

import (
	"fmt"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
)

// UpdateRatios replaces the auto-distribution ratios. Existing transactions keep the
// ratios they captured, so balances do not move.
func (b *Book) UpdateRatios(ratios domain.JarRatios) (domain.JarRatios, error) {
	if err := ratios.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	b.settings.JarRatios = ratios.Clone()
	b.touch()
	return ratios.Clone(), nil
}

// UpdateSettings replaces currency, language and notification preferences.
func (b *Book) UpdateSettings(u domain.SettingsUpdate) (domain.Settings, error) {
	if err := u.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	b.settings.Currency = u.Currency
	b.settings.Language = u.Language
	b.settings.Notifications = u.Notifications
	b.touch()
	return b.Settings(), nil
}

// SetPinHash stores an already hashed PIN. An empty hash disables the PIN gate.
func (b *Book) SetPinHash(hash string) {
	b.settings.PinHash = hash
	b.settings.PinEnabled = hash != ""
	b.touch()
}
