package config

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the config package.
var (
	ErrInvalidConfig     = errors.New("config: invalid configuration")
	ErrDuplicateCategory = errors.New("config: duplicate category")
	ErrEmptyCategory     = errors.New("config: empty category")
)

// SRSParams holds the spaced-repetition tunables. Every field is
// range-checked at load so a malformed config file fails up front instead of
// producing a nonsense schedule.
type SRSParams struct {
	InitialEaseFactor   float64 `json:"initial_ease_factor"`
	MinimumIntervalDays int     `json:"minimum_interval_days"`
	MaximumIntervalDays int     `json:"maximum_interval_days"`
	EasyBonus           float64 `json:"easy_bonus"`
	HardPenalty         float64 `json:"hard_penalty"`
}

// Validate checks the SRS tunables against their allowed ranges.
func (p SRSParams) Validate() error {
	if p.InitialEaseFactor < 1.3 {
		return fmt.Errorf("%w: initial_ease_factor %.4f < 1.3", ErrInvalidConfig, p.InitialEaseFactor)
	}
	if p.MinimumIntervalDays < 1 {
		return fmt.Errorf("%w: minimum_interval_days %d < 1", ErrInvalidConfig, p.MinimumIntervalDays)
	}
	if p.MaximumIntervalDays < p.MinimumIntervalDays {
		return fmt.Errorf("%w: maximum_interval_days %d < minimum %d",
			ErrInvalidConfig, p.MaximumIntervalDays, p.MinimumIntervalDays)
	}
	if p.EasyBonus <= 1 {
		return fmt.Errorf("%w: easy_bonus %.4f must be > 1", ErrInvalidConfig, p.EasyBonus)
	}
	if p.HardPenalty <= 0 || p.HardPenalty > 1 {
		return fmt.Errorf("%w: hard_penalty %.4f must be in (0, 1]", ErrInvalidConfig, p.HardPenalty)
	}
	return nil
}

// Config holds all paperdeck configuration. It is persisted as a single JSON
// object next to the record collection.
type Config struct {
	Categories          []string   `json:"categories"`
	BackupFrequencyDays int        `json:"backup_frequency_days"`
	LastBackupTimestamp *time.Time `json:"last_backup_timestamp"`
	SRS                 SRSParams  `json:"srs_parameters"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Categories: []string{
			"Machine Learning",
			"Deep Learning",
			"Natural Language Processing",
			"Computer Vision",
			"Reinforcement Learning",
			"Optimization",
			"Other",
		},
		BackupFrequencyDays: 7,
		SRS: SRSParams{
			InitialEaseFactor:   2.5,
			MinimumIntervalDays: 1,
			MaximumIntervalDays: 365,
			EasyBonus:           1.3,
			HardPenalty:         0.8,
		},
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if c.BackupFrequencyDays < 1 {
		return fmt.Errorf("%w: backup_frequency_days %d < 1", ErrInvalidConfig, c.BackupFrequencyDays)
	}
	return c.SRS.Validate()
}

// BackupDue reports whether a scheduled backup is overdue at the given time.
// A config that has never been backed up is always due.
func (c Config) BackupDue(now time.Time) bool {
	if c.LastBackupTimestamp == nil {
		return true
	}
	elapsed := now.Sub(*c.LastBackupTimestamp)
	return elapsed >= time.Duration(c.BackupFrequencyDays)*24*time.Hour
}
