package paper

import "errors"

// Sentinel errors for the paper package.
// Use errors.Is to check: errors.Is(err, paper.ErrInvalidRecord)
var (
	ErrEmptyTitle        = errors.New("paper: empty title")
	ErrEmptyAuthors      = errors.New("paper: empty authors")
	ErrInvalidDifficulty = errors.New("paper: invalid difficulty")
	ErrInvalidRecord     = errors.New("paper: invalid record")
)
