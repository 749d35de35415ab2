package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(filepath.Join(t.TempDir(), "config.json"))
}

func TestLoadCreatesDefaults(t *testing.T) {
	m := testManager(t)

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SRS.InitialEaseFactor != 2.5 {
		t.Errorf("initial ease = %f, want 2.5", cfg.SRS.InitialEaseFactor)
	}
	if cfg.SRS.MinimumIntervalDays != 1 || cfg.SRS.MaximumIntervalDays != 365 {
		t.Errorf("interval bounds = [%d, %d], want [1, 365]",
			cfg.SRS.MinimumIntervalDays, cfg.SRS.MaximumIntervalDays)
	}
	if cfg.BackupFrequencyDays != 7 {
		t.Errorf("backup frequency = %d, want 7", cfg.BackupFrequencyDays)
	}
	if len(cfg.Categories) != 7 {
		t.Errorf("categories = %d, want 7 defaults", len(cfg.Categories))
	}

	// The defaults were persisted.
	if _, err := os.Stat(m.Path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestLoadMissingKeysFallBackToDefaults(t *testing.T) {
	m := testManager(t)
	if err := os.WriteFile(m.Path, []byte(`{"backup_frequency_days": 3}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackupFrequencyDays != 3 {
		t.Errorf("backup frequency = %d, want 3", cfg.BackupFrequencyDays)
	}
	if cfg.SRS.EasyBonus != 1.3 {
		t.Errorf("easy bonus = %f, want default 1.3", cfg.SRS.EasyBonus)
	}
}

func TestLoadRejectsOutOfRangeValues(t *testing.T) {
	cases := []string{
		`{"srs_parameters": {"initial_ease_factor": 1.0, "minimum_interval_days": 1, "maximum_interval_days": 365, "easy_bonus": 1.3, "hard_penalty": 0.8}}`,
		`{"srs_parameters": {"initial_ease_factor": 2.5, "minimum_interval_days": 0, "maximum_interval_days": 365, "easy_bonus": 1.3, "hard_penalty": 0.8}}`,
		`{"srs_parameters": {"initial_ease_factor": 2.5, "minimum_interval_days": 30, "maximum_interval_days": 7, "easy_bonus": 1.3, "hard_penalty": 0.8}}`,
		`{"srs_parameters": {"initial_ease_factor": 2.5, "minimum_interval_days": 1, "maximum_interval_days": 365, "easy_bonus": 1.0, "hard_penalty": 0.8}}`,
		`{"srs_parameters": {"initial_ease_factor": 2.5, "minimum_interval_days": 1, "maximum_interval_days": 365, "easy_bonus": 1.3, "hard_penalty": 1.5}}`,
		`{"backup_frequency_days": 0}`,
	}

	for i, raw := range cases {
		m := testManager(t)
		if err := os.WriteFile(m.Path, []byte(raw), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := m.Load(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("case %d: err = %v, want ErrInvalidConfig", i, err)
		}
	}
}

func TestAddCategory(t *testing.T) {
	m := testManager(t)

	if err := m.AddCategory("Robotics"); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}

	cfg, _ := m.Load()
	found := false
	for _, c := range cfg.Categories {
		if c == "Robotics" {
			found = true
		}
	}
	if !found {
		t.Error("Robotics not added")
	}

	if err := m.AddCategory("Robotics"); !errors.Is(err, ErrDuplicateCategory) {
		t.Errorf("duplicate: err = %v, want ErrDuplicateCategory", err)
	}
	if err := m.AddCategory("   "); !errors.Is(err, ErrEmptyCategory) {
		t.Errorf("blank: err = %v, want ErrEmptyCategory", err)
	}
}

func TestRemoveCategory(t *testing.T) {
	m := testManager(t)

	removed, err := m.RemoveCategory("Optimization")
	if err != nil {
		t.Fatalf("RemoveCategory: %v", err)
	}
	if !removed {
		t.Fatal("expected removal of default category")
	}

	removed, err = m.RemoveCategory("Optimization")
	if err != nil {
		t.Fatalf("second RemoveCategory: %v", err)
	}
	if removed {
		t.Error("second removal returned true")
	}
}

func TestUpdatePersists(t *testing.T) {
	m := testManager(t)

	if err := m.Update(func(c *Config) { c.BackupFrequencyDays = 14 }); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Fresh manager reads from disk.
	m2 := NewManager(m.Path)
	cfg, err := m2.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackupFrequencyDays != 14 {
		t.Errorf("backup frequency = %d, want 14", cfg.BackupFrequencyDays)
	}
}

func TestUpdateRejectsInvalidResult(t *testing.T) {
	m := testManager(t)
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	err := m.Update(func(c *Config) { c.SRS.EasyBonus = 0.5 })
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}

	cfg, _ := m.Load()
	if cfg.SRS.EasyBonus != 1.3 {
		t.Errorf("easy bonus = %f, want unchanged 1.3", cfg.SRS.EasyBonus)
	}
}

func TestBackupDue(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	cfg := Default()

	if !cfg.BackupDue(now) {
		t.Error("never-backed-up config should be due")
	}

	recent := now.Add(-24 * time.Hour)
	cfg.LastBackupTimestamp = &recent
	if cfg.BackupDue(now) {
		t.Error("1 day since backup with 7-day cadence should not be due")
	}

	old := now.Add(-8 * 24 * time.Hour)
	cfg.LastBackupTimestamp = &old
	if !cfg.BackupDue(now) {
		t.Error("8 days since backup with 7-day cadence should be due")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	m := testManager(t)
	if err := m.AddCategory("Quantum Computing"); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}

	if err := m.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if len(cfg.Categories) != len(want.Categories) {
		t.Errorf("categories = %d, want %d", len(cfg.Categories), len(want.Categories))
	}
	if cfg.SRS != want.SRS {
		t.Errorf("srs = %+v, want defaults", cfg.SRS)
	}

	// Reset persists; a fresh manager sees the defaults too.
	fresh := NewManager(m.Path)
	cfg2, err := fresh.Load()
	if err != nil {
		t.Fatalf("fresh Load: %v", err)
	}
	if len(cfg2.Categories) != len(want.Categories) {
		t.Errorf("persisted categories = %d, want %d", len(cfg2.Categories), len(want.Categories))
	}
}
