package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Manager loads and persists the configuration file. The config is loaded
// once and cached; every mutation is written back immediately.
type Manager struct {
	Path string
	cfg  *Config
}

// NewManager creates a Manager for the config file at the given path.
func NewManager(path string) *Manager {
	return &Manager{Path: path}
}

// Load reads the configuration, creating the file with defaults if it does
// not exist. Missing keys fall back to their defaults; present but
// out-of-range values fail the load.
func (m *Manager) Load() (Config, error) {
	if m.cfg != nil {
		return *m.cfg, nil
	}

	data, err := os.ReadFile(m.Path)
	if os.IsNotExist(err) {
		cfg := Default()
		m.cfg = &cfg
		if err := m.Save(); err != nil {
			m.cfg = nil
			return Config{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	// Decode over the defaults so absent keys keep their default values.
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	m.cfg = &cfg
	return cfg, nil
}

// Save writes the current configuration to disk.
func (m *Manager) Save() error {
	if m.cfg == nil {
		cfg := Default()
		m.cfg = &cfg
	}

	if err := os.MkdirAll(filepath.Dir(m.Path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(m.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(m.Path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Update applies fn to the loaded configuration, validates the result, and
// persists it. The stored config is untouched when validation fails.
func (m *Manager) Update(fn func(*Config)) error {
	cfg, err := m.Load()
	if err != nil {
		return err
	}
	fn(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.cfg = &cfg
	return m.Save()
}

// AddCategory appends a category to the vocabulary. Empty names and
// duplicates are rejected.
func (m *Manager) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCategory
	}
	cfg, err := m.Load()
	if err != nil {
		return err
	}
	for _, c := range cfg.Categories {
		if c == name {
			return fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
		}
	}
	return m.Update(func(c *Config) {
		c.Categories = append(c.Categories, name)
	})
}

// RemoveCategory drops a category from the vocabulary. Returns false when
// the category was not present.
func (m *Manager) RemoveCategory(name string) (bool, error) {
	cfg, err := m.Load()
	if err != nil {
		return false, err
	}
	found := false
	kept := cfg.Categories[:0:0]
	for _, c := range cfg.Categories {
		if c == name {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return false, nil
	}
	err = m.Update(func(c *Config) {
		c.Categories = kept
	})
	return err == nil, err
}

// MarkBackup records a successful backup at the given time.
func (m *Manager) MarkBackup(t time.Time) error {
	return m.Update(func(c *Config) {
		c.LastBackupTimestamp = &t
	})
}

// Reset overwrites the configuration with defaults and persists them.
func (m *Manager) Reset() error {
	cfg := Default()
	m.cfg = &cfg
	return m.Save()
}
