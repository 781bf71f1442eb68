package domain

import "fmt"

// NotificationSettings holds reminder preferences.
type NotificationSettings struct {
	Enabled       bool   `json:"enabled"`
	DailyReminder bool   `json:"dailyReminder"`
	ReminderTime  string `json:"reminderTime"` // "HH:MM"
}

// Settings are the user-level preferences. JarRatios is the only field the ledger reads.
type Settings struct {
	PinHash       string               `json:"pinHash"`
	PinEnabled    bool                 `json:"pinEnabled"`
	Currency      string               `json:"currency"`
	Language      string               `json:"language"`
	JarRatios     JarRatios            `json:"jarRatios"`
	Notifications NotificationSettings `json:"notifications"`
}

// DefaultSettings is used on first run.
func DefaultSettings() Settings {
	return Settings{
		Currency:  BaseCurrencyCode,
		Language:  "vi",
		JarRatios: DefaultJarRatios(),
	}
}

// SettingsUpdate replaces the non-security preferences.
type SettingsUpdate struct {
	Currency      string `validate:"required"`
	Language      string `validate:"required,oneof=vi en"`
	Notifications NotificationSettings
}

// Validate checks the update.
func (u SettingsUpdate) Validate() error {
	if _, ok := LookupCurrency(u.Currency); !ok {
		return fmt.Errorf("unsupported currency %q", u.Currency)
	}
	return nil
}
