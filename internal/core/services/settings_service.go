package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/utils"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4,6}$`)

type settingsService struct {
	BaseService
}

// NewSettingsService creates the user preference service.
func NewSettingsService(sessions *SessionStore, opts ...ServiceOption) portssvc.SettingsSvcFacade {
	return &settingsService{BaseService: newBaseService(sessions, opts...)}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context, id domain.Identity) (*domain.Settings, error) {
	var settings domain.Settings
	if err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		settings = b.Settings()
		return nil
	}); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, id domain.Identity, u domain.SettingsUpdate) (*domain.Settings, error) {
	if err := validateStruct(u); err != nil {
		return nil, err
	}
	var settings domain.Settings
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		settings, err = b.UpdateSettings(u)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update settings", slog.String("user_id", id.UserID))
		return nil, err
	}
	return &settings, nil
}

// UpdateRatios replaces the split used by future AUTO transactions. Existing
// transactions keep the ratios they were recorded with.
func (s *settingsService) UpdateRatios(ctx context.Context, id domain.Identity, ratios domain.JarRatios) (domain.JarRatios, error) {
	var updated domain.JarRatios
	err := s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		var err error
		updated, err = b.UpdateRatios(ratios)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update jar ratios", slog.String("user_id", id.UserID))
		return nil, err
	}
	s.LogInfo(ctx, "Jar ratios updated", slog.String("user_id", id.UserID))
	return updated, nil
}

func (s *settingsService) SetPIN(ctx context.Context, id domain.Identity, pin string) error {
	if !pinPattern.MatchString(pin) {
		return fmt.Errorf("%w: PIN must be 4 to 6 digits", apperrors.ErrValidation)
	}
	hash, err := utils.HashPIN(pin)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash PIN")
		return fmt.Errorf("failed to hash PIN: %w", err)
	}
	return s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		b.SetPinHash(hash)
		return nil
	})
}

func (s *settingsService) ClearPIN(ctx context.Context, id domain.Identity) error {
	return s.Sessions.Mutate(ctx, id, func(b *ledger.Book) error {
		b.SetPinHash("")
		return nil
	})
}

// VerifyPIN reports whether pin matches the stored hash. With no PIN set it reports false.
func (s *settingsService) VerifyPIN(ctx context.Context, id domain.Identity, pin string) (bool, error) {
	var settings domain.Settings
	if err := s.Sessions.View(ctx, id, func(b *ledger.Book) error {
		settings = b.Settings()
		return nil
	}); err != nil {
		return false, err
	}
	if !settings.PinEnabled || settings.PinHash == "" {
		return false, nil
	}
	return utils.CheckPINHash(pin, settings.PinHash), nil
}
