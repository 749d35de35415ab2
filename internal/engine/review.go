package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/paperdeck/paperdeck/internal/paper"
)

// AddRequest carries the fields for a new paper. Question and Answer are the
// legacy flashcard pair: they are folded into the objectives and results
// sections only when those were not supplied directly.
type AddRequest struct {
	Title         string
	Authors       string
	Background    string
	Objectives    string
	Methodology   string
	Results       string
	Discussion    string
	Contributions string
	Significance  string
	Link          string
	Notes         string
	Keywords      []string
	Categories    []string
	PDFPath       string

	// Legacy flashcard compatibility.
	Question string
	Answer   string
}

// AddPaper constructs a record from the request, schedules its first review
// one minimum interval away, and persists it. Returns the new identifier.
func (e *Engine) AddPaper(req AddRequest) (string, error) {
	params, err := e.srs()
	if err != nil {
		return "", err
	}

	if req.Question != "" && req.Objectives == "" {
		req.Objectives = req.Question
	}
	if req.Answer != "" && req.Results == "" {
		req.Results = req.Answer
	}

	p, err := paper.New(req.Title, req.Authors)
	if err != nil {
		return "", err
	}
	p.Background = req.Background
	p.Objectives = req.Objectives
	p.Methodology = req.Methodology
	p.Results = req.Results
	p.Discussion = req.Discussion
	p.Contributions = req.Contributions
	p.Significance = req.Significance
	p.Notes = req.Notes
	if req.Link != "" {
		p.Link = &req.Link
	}
	if req.PDFPath != "" {
		p.PDFPath = &req.PDFPath
	}
	if len(req.Keywords) > 0 {
		p.Keywords = append(paper.StringList{}, req.Keywords...)
	}
	if len(req.Categories) > 0 {
		p.Categories = append(paper.StringList{}, req.Categories...)
	}

	p.EaseFactor = params.InitialEaseFactor
	next := time.Now().Add(time.Duration(params.MinimumIntervalDays) * 24 * time.Hour)
	p.NextReviewDate = &next

	return e.Store.Add(p)
}

// ProcessReview folds a review event into the paper's scheduling state and
// persists the result. Returns false (with no side effects) when the paper
// identifier is unknown.
//
// The ease factor moves multiplicatively per rating so repeated "easy"
// ratings compound while repeated "hard" ratings decay toward the 1.3 floor
// without ever reaching zero. A paper that has never had a real interval
// starts at the configured minimum, since 0 × ease would stay 0.
func (e *Engine) ProcessReview(ev paper.ReviewEvent) (bool, error) {
	if !ev.Difficulty.IsValid() {
		return false, fmt.Errorf("process review: %w", paper.ErrInvalidDifficulty)
	}

	p, err := e.Store.LoadByID(ev.PaperID)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, nil
	}

	params, err := e.srs()
	if err != nil {
		return false, err
	}

	switch ev.Difficulty {
	case paper.Easy:
		p.EaseFactor *= params.EasyBonus
	case paper.Hard:
		p.EaseFactor *= params.HardPenalty
	}
	if p.EaseFactor < paper.MinEaseFactor {
		p.EaseFactor = paper.MinEaseFactor
	}

	interval := params.MinimumIntervalDays
	if p.IntervalDays != 0 {
		interval = int(float64(p.IntervalDays) * p.EaseFactor)
	}
	if interval < params.MinimumIntervalDays {
		interval = params.MinimumIntervalDays
	}
	if interval > params.MaximumIntervalDays {
		interval = params.MaximumIntervalDays
	}

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	next := ts.Add(time.Duration(interval) * 24 * time.Hour)

	p.IntervalDays = interval
	p.LastReviewDate = &ts
	p.NextReviewDate = &next
	p.ReviewCount++

	return e.Store.Update(*p)
}

// DueForReview returns the papers whose next review date is absent or not in
// the future, sorted ascending by next review date with absent dates first.
// A positive limit truncates the result.
func (e *Engine) DueForReview(limit int) ([]paper.Paper, error) {
	papers, err := e.Store.LoadAll()
	if err != nil {
		return nil, err
	}
	now := time.Now()

	var due []paper.Paper
	for _, p := range papers {
		if p.Due(now) {
			due = append(due, p)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i].NextReviewDate, due[j].NextReviewDate
		if a == nil {
			return b != nil
		}
		if b == nil {
			return false
		}
		return a.Before(*b)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}
