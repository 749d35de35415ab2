package engine

import (
	"fmt"

	"github.com/paperdeck/paperdeck/internal/config"
	"github.com/paperdeck/paperdeck/internal/paper"
	"github.com/paperdeck/paperdeck/internal/store"
)

// Engine orchestrates the review scheduler, search, and analytics over the
// record store. All operations are synchronous and complete before returning.
type Engine struct {
	Store  *store.Store
	Config *config.Manager
}

// New creates an Engine over the given store and configuration.
func New(st *store.Store, cfg *config.Manager) *Engine {
	return &Engine{Store: st, Config: cfg}
}

// srs returns the loaded SRS tunables.
func (e *Engine) srs() (config.SRSParams, error) {
	cfg, err := e.Config.Load()
	if err != nil {
		return config.SRSParams{}, fmt.Errorf("load config: %w", err)
	}
	return cfg.SRS, nil
}

// AllPapers returns a snapshot of the full collection.
func (e *Engine) AllPapers() ([]paper.Paper, error) {
	return e.Store.LoadAll()
}

// Paper returns the record with the given identifier, or nil if unknown.
func (e *Engine) Paper(id string) (*paper.Paper, error) {
	return e.Store.LoadByID(id)
}

// UpdatePaper replaces an existing record wholesale. Returns false when the
// identifier is unknown.
func (e *Engine) UpdatePaper(p paper.Paper) (bool, error) {
	return e.Store.Update(p)
}

// DeletePaper removes a record by identifier. Returns false when nothing
// matched.
func (e *Engine) DeletePaper(id string) (bool, error) {
	return e.Store.Delete(id)
}
