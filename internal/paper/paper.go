package paper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Paper is one research paper's structured notes plus its spaced-repetition
// scheduling state. Field names in the JSON encoding match the storage file
// format; optional fields encode as explicit nulls so the decoder sees every
// known key.
type Paper struct {
	ID            string     `json:"id"`
	Title         string     `json:"paper_title"`
	Authors       string     `json:"authors"`
	Background    string     `json:"background_of_the_study"`
	Objectives    string     `json:"research_objectives_and_hypothesis"`
	Methodology   string     `json:"methodology"`
	Results       string     `json:"results_and_findings"`
	Discussion    string     `json:"discussion_and_interpretation"`
	Contributions string     `json:"contributions_to_the_field"`
	Significance  string     `json:"achievements_and_significance"`
	Link          *string    `json:"link"`
	Notes         string     `json:"notes"`
	Keywords      StringList `json:"keywords"`
	Categories    StringList `json:"category"`
	AddedDate     time.Time  `json:"added_date"`

	// Scheduling state, owned by the review engine.
	NextReviewDate *time.Time `json:"next_review_date"`
	ReviewCount    int        `json:"review_count"`
	EaseFactor     float64    `json:"ease_factor"`
	IntervalDays   int        `json:"interval_days"`
	LastReviewDate *time.Time `json:"last_review_date"`

	PDFPath *string `json:"pdf_path"`
}

// MinEaseFactor is the floor the ease factor may never drop below.
const MinEaseFactor = 1.3

// New creates a Paper with a fresh ID, the given title and authors, and
// default scheduling state. Title and authors must be non-empty.
func New(title, authors string) (Paper, error) {
	if strings.TrimSpace(title) == "" {
		return Paper{}, ErrEmptyTitle
	}
	if strings.TrimSpace(authors) == "" {
		return Paper{}, ErrEmptyAuthors
	}
	return Paper{
		ID:         uuid.NewString(),
		Title:      title,
		Authors:    authors,
		Keywords:   StringList{},
		Categories: StringList{},
		AddedDate:  time.Now(),
		EaseFactor: 2.5,
	}, nil
}

// Validate checks the invariants every stored record must satisfy.
// A record failing validation aborts the load of the whole collection.
func (p *Paper) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, ErrEmptyTitle)
	}
	if strings.TrimSpace(p.Authors) == "" {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, ErrEmptyAuthors)
	}
	if p.ReviewCount < 0 {
		return fmt.Errorf("%w: review_count %d < 0", ErrInvalidRecord, p.ReviewCount)
	}
	if p.EaseFactor < MinEaseFactor {
		return fmt.Errorf("%w: ease_factor %.4f < %.1f", ErrInvalidRecord, p.EaseFactor, MinEaseFactor)
	}
	if p.IntervalDays < 0 {
		return fmt.Errorf("%w: interval_days %d < 0", ErrInvalidRecord, p.IntervalDays)
	}
	return nil
}

// Due reports whether the paper is due for review at the given time.
// A paper with no scheduled review date is always due.
func (p *Paper) Due(now time.Time) bool {
	return p.NextReviewDate == nil || !p.NextReviewDate.After(now)
}

// Clone returns a deep copy of the paper. Pointer fields are copied by value
// so callers never share mutable state with the store's cache.
func (p Paper) Clone() Paper {
	out := p
	if p.Link != nil {
		v := *p.Link
		out.Link = &v
	}
	if p.PDFPath != nil {
		v := *p.PDFPath
		out.PDFPath = &v
	}
	if p.NextReviewDate != nil {
		v := *p.NextReviewDate
		out.NextReviewDate = &v
	}
	if p.LastReviewDate != nil {
		v := *p.LastReviewDate
		out.LastReviewDate = &v
	}
	out.Keywords = append(StringList{}, p.Keywords...)
	out.Categories = append(StringList{}, p.Categories...)
	return out
}
