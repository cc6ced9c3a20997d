package application

import (
	"context"
	"fmt"

	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/bnema/notevault-cli/internal/ports"
)

type SettingsService struct {
	repo ports.SettingsRepository
}

func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Show(ctx context.Context) (domain.Settings, error) {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Settings{}, newOperationError(OpShowSettings, msgSettingsLoadError, fmt.Errorf("load settings: %w", err))
	}

	return settings, nil
}

// Set validates and persists a single key. The stored file is untouched
// when the value is rejected.
func (s *SettingsService) Set(ctx context.Context, key, value string) (domain.Settings, error) {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Settings{}, newOperationError(OpSetSetting, msgSettingsLoadError, fmt.Errorf("load settings: %w", err))
	}

	if err := settings.Set(key, value); err != nil {
		return domain.Settings{}, &OperationError{Op: OpSetSetting, Message: err.Error(), Err: err}
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return domain.Settings{}, newOperationError(OpSetSetting, msgSettingsFailed, fmt.Errorf("save settings: %w", err))
	}

	return settings, nil
}
