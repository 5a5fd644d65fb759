package persistence

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"twistedbrody/domain/model"
	"twistedbrody/domain/repository"
)

// SettingsRepository persists the local-only UI settings as a single JSON
// file: read once at store construction, rewritten wholesale on every change.
type SettingsRepository struct {
	path string
}

func NewSettingsRepository(path string) repository.ISettings {
	return &SettingsRepository{path: path}
}

func (r *SettingsRepository) Load() (model.Settings, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.DefaultSettings(), err
	}
	var settings model.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return model.DefaultSettings(), err
	}
	return settings, nil
}

func (r *SettingsRepository) Save(settings model.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}
