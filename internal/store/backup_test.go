package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateBackupCopiesBytes(t *testing.T) {
	s := testStore(t)
	s.Add(testPaper(t, "Backed Up"))

	path, err := s.CreateBackup("")
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}
	if !strings.Contains(filepath.Base(path), "flashpapers_backup_") {
		t.Errorf("backup name %q missing prefix", filepath.Base(path))
	}

	live, _ := os.ReadFile(s.Path)
	backup, _ := os.ReadFile(path)
	if string(live) != string(backup) {
		t.Error("backup is not a byte-identical copy")
	}
}

func TestBackupRestoreScenario(t *testing.T) {
	s := testStore(t)

	ids := make(map[string]bool)
	for _, title := range []string{"First", "Second", "Third"} {
		id, err := s.Add(testPaper(t, title))
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		ids[id] = true
	}

	backup, err := s.CreateBackup("")
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}

	for id := range ids {
		if ok, err := s.Delete(id); err != nil || !ok {
			t.Fatalf("Delete(%s): ok=%v err=%v", id, ok, err)
		}
	}
	if count, _ := s.Count(); count != 0 {
		t.Fatalf("count = %d, want 0 after deletes", count)
	}

	if !s.RestoreFromBackup(backup) {
		t.Fatal("RestoreFromBackup returned false")
	}

	papers, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll after restore: %v", err)
	}
	if len(papers) != 3 {
		t.Fatalf("count = %d, want 3 after restore", len(papers))
	}
	for _, p := range papers {
		if !ids[p.ID] {
			t.Errorf("unexpected id %s after restore", p.ID)
		}
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	s := testStore(t)
	s.Add(testPaper(t, "Keep Me"))

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"id": ""}]`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if s.RestoreFromBackup(bad) {
		t.Fatal("RestoreFromBackup accepted an invalid backup")
	}

	// Live file untouched.
	papers, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(papers) != 1 || papers[0].Title != "Keep Me" {
		t.Errorf("live collection changed: %+v", papers)
	}
}

func TestRestoreTakesSafetyBackup(t *testing.T) {
	s := testStore(t)
	s.Add(testPaper(t, "Live"))

	// Back up into a separate directory so the only file in the default
	// backup directory afterwards is the safety backup restore takes.
	backup, err := s.CreateBackup(t.TempDir())
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}

	if !s.RestoreFromBackup(backup) {
		t.Fatal("RestoreFromBackup returned false")
	}

	safety, err := s.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if len(safety) != 1 {
		t.Errorf("backups = %d, want 1 safety backup", len(safety))
	}
}

func TestListBackupsEmpty(t *testing.T) {
	s := testStore(t)
	backups, err := s.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if backups != nil {
		t.Errorf("backups = %v, want nil", backups)
	}
}
