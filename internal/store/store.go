package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/paperdeck/paperdeck/internal/paper"
)

// Store is the durable, keyed collection of paper records, persisted as one
// JSON array in a single file. Every mutation loads the full collection,
// changes it in memory, and rewrites the whole file. Reads are served from a
// cache that is considered stale once the file's modification time advances
// past the time the cache was populated.
//
// A single mutex serializes all operations, so a Store is safe to share
// across goroutines and each read-modify-write mutation is atomic within the
// process. There is no file locking across processes, and a crash mid-rewrite
// can leave a truncated file.
type Store struct {
	Path string

	mu        sync.Mutex
	cache     []paper.Paper
	cacheTime time.Time // file mtime when the cache was populated
	index     map[string]int
}

// DefaultDataDir returns the default data directory: ~/.paperdeck
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".paperdeck"), nil
}

// Open opens (or creates) the record collection file at the given path.
// A missing file is initialized to an empty collection.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
			return nil, fmt.Errorf("initialize storage: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat storage: %w", err)
	}

	return &Store{Path: path}, nil
}

// cacheValid reports whether the cached collection can still be served.
// The check is by file modification time only; two rewrites within the same
// filesystem timestamp tick are indistinguishable, which is why every write
// performed through this Store repopulates the cache itself instead of
// relying on the mtime comparison. Caller must hold mu.
func (s *Store) cacheValid() bool {
	if s.cache == nil {
		return false
	}
	info, err := os.Stat(s.Path)
	if err != nil {
		return false
	}
	return !info.ModTime().After(s.cacheTime)
}

// LoadAll returns every record in the collection. The result is a deep copy;
// mutating it has no effect until written back through Update.
//
// Any record failing validation aborts the whole load. A partially loaded
// collection would silently drop papers on the next rewrite, so a visible
// failure is the safer outcome.
func (s *Store) LoadAll() ([]paper.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAllLocked()
}

// loadAllLocked serves the cache or reads the file. Caller must hold mu.
func (s *Store) loadAllLocked() ([]paper.Paper, error) {
	if s.cacheValid() {
		return clonePapers(s.cache), nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read storage: %w", err)
	}
	papers, err := decodePapers(data)
	if err != nil {
		return nil, err
	}

	s.setCache(papers)
	return clonePapers(papers), nil
}

// LoadByID returns the record with the given identifier, or nil if it is not
// in the collection. Lookup is O(1) through an index built alongside the
// cache.
func (s *Store) LoadByID(id string) (*paper.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cacheValid() || s.index == nil {
		if _, err := s.loadAllLocked(); err != nil {
			return nil, err
		}
	}
	i, ok := s.index[id]
	if !ok {
		return nil, nil
	}
	p := s.cache[i].Clone()
	return &p, nil
}

// SaveAll rewrites the whole collection file and refreshes the cache from
// the just-written snapshot.
func (s *Store) SaveAll(papers []paper.Paper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveAllLocked(papers)
}

func (s *Store) saveAllLocked(papers []paper.Paper) error {
	data, err := json.MarshalIndent(papers, "", "  ")
	if err != nil {
		return fmt.Errorf("encode papers: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	s.setCache(clonePapers(papers))
	return nil
}

// Add appends a record to the collection and returns its identifier.
func (s *Store) Add(p paper.Paper) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	papers, err := s.loadAllLocked()
	if err != nil {
		return "", err
	}
	papers = append(papers, p)
	if err := s.saveAllLocked(papers); err != nil {
		return "", err
	}
	return p.ID, nil
}

// Update replaces the record with the same identifier wholesale. Returns
// false without side effects when the identifier is unknown.
func (s *Store) Update(p paper.Paper) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	papers, err := s.loadAllLocked()
	if err != nil {
		return false, err
	}
	for i := range papers {
		if papers[i].ID == p.ID {
			papers[i] = p
			if err := s.saveAllLocked(papers); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the record with the given identifier. Returns false when
// nothing matched. Deletion is immediate and permanent.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	papers, err := s.loadAllLocked()
	if err != nil {
		return false, err
	}
	kept := papers[:0:0]
	for _, p := range papers {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(papers) {
		return false, nil
	}
	if err := s.saveAllLocked(kept); err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of records without a full decode when the cache
// is warm.
func (s *Store) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cacheValid() {
		return len(s.cache), nil
	}
	papers, err := s.loadAllLocked()
	if err != nil {
		return 0, err
	}
	return len(papers), nil
}

// InvalidateCache drops the cached collection and identifier index
// unconditionally, forcing the next load to hit the file.
func (s *Store) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidateLocked()
}

func (s *Store) invalidateLocked() {
	s.cache = nil
	s.cacheTime = time.Time{}
	s.index = nil
}

// setCache installs the snapshot as the new cache. Caller must hold mu.
func (s *Store) setCache(papers []paper.Paper) {
	s.cache = papers
	s.index = make(map[string]int, len(papers))
	for i := range papers {
		s.index[papers[i].ID] = i
	}
	if info, err := os.Stat(s.Path); err == nil {
		s.cacheTime = info.ModTime()
	} else {
		s.cacheTime = time.Now()
	}
}

// decodePapers decodes and validates a serialized collection. The first
// invalid record fails the whole decode.
func decodePapers(data []byte) ([]paper.Paper, error) {
	var papers []paper.Paper
	if err := json.Unmarshal(data, &papers); err != nil {
		return nil, fmt.Errorf("decode storage: %w", err)
	}
	for i := range papers {
		if err := papers[i].Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	if papers == nil {
		papers = []paper.Paper{}
	}
	return papers, nil
}

func clonePapers(papers []paper.Paper) []paper.Paper {
	out := make([]paper.Paper, len(papers))
	for i := range papers {
		out[i] = papers[i].Clone()
	}
	return out
}
