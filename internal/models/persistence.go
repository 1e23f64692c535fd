package models

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const preferencesFile = "preferences.yaml"

// Save writes the preferences to dir/preferences.yaml, creating dir if needed.
func (p *Preferences) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}

	tmp := filepath.Join(dir, preferencesFile+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(dir, preferencesFile))
}

// LoadPreferences reads dir/preferences.yaml. A missing file yields zero
// preferences and no error.
func LoadPreferences(dir string) (*Preferences, error) {
	data, err := os.ReadFile(filepath.Join(dir, preferencesFile))
	if errors.Is(err, os.ErrNotExist) {
		return &Preferences{}, nil
	}
	if err != nil {
		return nil, err
	}

	var prefs Preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}
