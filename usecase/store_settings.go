package usecase

import (
	"twistedbrody/domain/model"
	"twistedbrody/infrastructure/logger"
)

// SaveSettings persists the whole settings document and replaces the local
// copy on success. Settings are local-only; no broadcast.
func (s *Store) SaveSettings(settings model.Settings) error {
	if !s.ready() {
		return nil
	}
	if err := s.settingsRepo.Save(settings); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to save settings")
		return err
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return nil
}
