package engine

import (
	"math"
	"sort"
	"time"

	"github.com/paperdeck/paperdeck/internal/paper"
)

// Summary is the roll-up of collection-wide statistics.
type Summary struct {
	TotalPapers          int                  `json:"total_papers"`
	ReviewedPapers       int                  `json:"reviewed_papers"`
	PapersDueToday       int                  `json:"papers_due_today"`
	TotalReviews         int                  `json:"total_reviews"`
	AverageEaseFactor    float64              `json:"average_ease_factor"`
	CategoryDistribution map[string]int       `json:"categories_distribution"`
	ReviewHistory        []ReviewHistoryEntry `json:"review_history"`
}

// ReviewHistoryEntry is one paper reviewed within the last 30 days.
type ReviewHistoryEntry struct {
	PaperID    string    `json:"paper_id"`
	Title      string    `json:"paper_title"`
	ReviewDate time.Time `json:"review_date"`
	DaysAgo    int       `json:"days_ago"`
}

// UpcomingReview is one paper scheduled within the lookahead window.
type UpcomingReview struct {
	PaperID    string    `json:"paper_id"`
	Title      string    `json:"paper_title"`
	ReviewDate time.Time `json:"review_date"`
	DaysUntil  int       `json:"days_until"`
}

// MostReviewed identifies the paper with the highest review count.
type MostReviewed struct {
	Title       string `json:"title"`
	ReviewCount int    `json:"review_count"`
}

// Performance bundles the headline study metrics.
type Performance struct {
	AverageReviewsPerPaper float64       `json:"average_reviews_per_paper"`
	RetentionRate          float64       `json:"retention_rate"`
	ReviewStreak           int           `json:"review_streak"`
	MostReviewedPaper      *MostReviewed `json:"most_reviewed_paper"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// dateOnly strips the time-of-day so dates compare by calendar day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Summarize computes the collection-wide statistics at the given time.
func Summarize(papers []paper.Paper, now time.Time) Summary {
	s := Summary{
		TotalPapers:          len(papers),
		AverageEaseFactor:    2.5, // explicit default for an empty collection
		CategoryDistribution: make(map[string]int),
	}

	var easeSum float64
	today := dateOnly(now)
	for _, p := range papers {
		if p.ReviewCount > 0 {
			s.ReviewedPapers++
		}
		s.TotalReviews += p.ReviewCount
		easeSum += p.EaseFactor

		if p.NextReviewDate != nil && !dateOnly(*p.NextReviewDate).After(today) {
			s.PapersDueToday++
		}

		for _, cat := range p.Categories {
			s.CategoryDistribution[cat]++
		}

		if p.LastReviewDate != nil {
			daysAgo := int(now.Sub(*p.LastReviewDate).Hours() / 24)
			if daysAgo <= 30 {
				s.ReviewHistory = append(s.ReviewHistory, ReviewHistoryEntry{
					PaperID:    p.ID,
					Title:      p.Title,
					ReviewDate: *p.LastReviewDate,
					DaysAgo:    daysAgo,
				})
			}
		}
	}

	if len(papers) > 0 {
		s.AverageEaseFactor = round2(easeSum / float64(len(papers)))
	}
	return s
}

// ReviewStreak counts consecutive calendar days, walking backward from now,
// on which at least one paper was reviewed. The walk stops at the first gap.
func ReviewStreak(papers []paper.Paper, now time.Time) int {
	type day struct {
		y int
		m time.Month
		d int
	}
	reviewed := make(map[day]bool)
	for _, p := range papers {
		if p.LastReviewDate != nil {
			y, m, d := p.LastReviewDate.Date()
			reviewed[day{y, m, d}] = true
		}
	}
	if len(reviewed) == 0 {
		return 0
	}

	streak := 0
	for {
		y, m, d := now.AddDate(0, 0, -streak).Date()
		if !reviewed[day{y, m, d}] {
			break
		}
		streak++
	}
	return streak
}

// RetentionRate is the percentage of papers reviewed at least once, rounded
// to two decimals. An empty collection has a rate of 0.
func RetentionRate(papers []paper.Paper) float64 {
	if len(papers) == 0 {
		return 0.0
	}
	reviewed := 0
	for _, p := range papers {
		if p.ReviewCount > 0 {
			reviewed++
		}
	}
	return round2(float64(reviewed) / float64(len(papers)) * 100)
}

// UpcomingReviews returns the papers scheduled within [now, now+days],
// sorted ascending by review date.
func UpcomingReviews(papers []paper.Paper, days int, now time.Time) []UpcomingReview {
	horizon := now.AddDate(0, 0, days)

	var upcoming []UpcomingReview
	for _, p := range papers {
		next := p.NextReviewDate
		if next == nil || next.Before(now) || next.After(horizon) {
			continue
		}
		until := int(dateOnly(*next).Sub(dateOnly(now)).Hours() / 24)
		upcoming = append(upcoming, UpcomingReview{
			PaperID:    p.ID,
			Title:      p.Title,
			ReviewDate: *next,
			DaysUntil:  until,
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].ReviewDate.Before(upcoming[j].ReviewDate)
	})
	return upcoming
}

// PerformanceMetrics computes the headline metrics. Ties on the most-reviewed
// paper break toward the first-encountered record.
func PerformanceMetrics(papers []paper.Paper, now time.Time) Performance {
	if len(papers) == 0 {
		return Performance{}
	}

	totalReviews := 0
	most := 0
	for i := range papers {
		totalReviews += papers[i].ReviewCount
		if papers[i].ReviewCount > papers[most].ReviewCount {
			most = i
		}
	}

	return Performance{
		AverageReviewsPerPaper: round2(float64(totalReviews) / float64(len(papers))),
		RetentionRate:          RetentionRate(papers),
		ReviewStreak:           ReviewStreak(papers, now),
		MostReviewedPaper: &MostReviewed{
			Title:       papers[most].Title,
			ReviewCount: papers[most].ReviewCount,
		},
	}
}

// Analytics computes the summary over the current collection.
func (e *Engine) Analytics() (Summary, error) {
	papers, err := e.Store.LoadAll()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(papers, time.Now()), nil
}

// Upcoming returns the reviews scheduled within the next N days.
func (e *Engine) Upcoming(days int) ([]UpcomingReview, error) {
	papers, err := e.Store.LoadAll()
	if err != nil {
		return nil, err
	}
	return UpcomingReviews(papers, days, time.Now()), nil
}

// Performance computes the headline metrics over the current collection.
func (e *Engine) Performance() (Performance, error) {
	papers, err := e.Store.LoadAll()
	if err != nil {
		return Performance{}, err
	}
	return PerformanceMetrics(papers, time.Now()), nil
}
