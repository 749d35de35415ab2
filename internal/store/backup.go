package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

const backupTimeLayout = "20060102_150405"

// BackupDir returns the default backup directory next to the storage file.
func (s *Store) BackupDir() string {
	return filepath.Join(filepath.Dir(s.Path), "backups")
}

// CreateBackup copies the current storage file verbatim into the backup
// directory under a timestamped name and returns the backup path. The live
// cache is not touched.
func (s *Store) CreateBackup(dir string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createBackupLocked(dir)
}

func (s *Store) createBackupLocked(dir string) (string, error) {
	if dir == "" {
		dir = s.BackupDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read storage: %w", err)
	}

	name := fmt.Sprintf("flashpapers_backup_%s.json", time.Now().Format(backupTimeLayout))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}

// ListBackups returns the backup files in the default backup directory,
// sorted by name (and therefore by timestamp).
func (s *Store) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(s.BackupDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(s.BackupDir(), e.Name()))
	}
	return paths, nil
}

// RestoreFromBackup replaces the live storage file with the given backup.
// The backup must decode into well-formed records; a safety backup of the
// current live file is taken before it is overwritten. Returns false on any
// failure, and the live file is never partially overwritten.
func (s *Store) RestoreFromBackup(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("restore: read backup: %v", err)
		return false
	}
	if _, err := decodePapers(data); err != nil {
		log.Printf("restore: validate backup: %v", err)
		return false
	}

	if _, err := s.createBackupLocked(""); err != nil {
		log.Printf("restore: safety backup: %v", err)
		return false
	}

	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		log.Printf("restore: write storage: %v", err)
		return false
	}
	s.invalidateLocked()
	return true
}
