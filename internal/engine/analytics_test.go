package engine

import (
	"testing"
	"time"

	"github.com/paperdeck/paperdeck/internal/paper"
)

var now = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func reviewedPaper(t *testing.T, title string, count int, last time.Time) paper.Paper {
	t.Helper()
	p := mustPaper(t, title)
	p.ReviewCount = count
	p.LastReviewDate = &last
	return p
}

func TestSummarizeEmptyCollection(t *testing.T) {
	s := Summarize(nil, now)

	if s.TotalPapers != 0 || s.ReviewedPapers != 0 || s.TotalReviews != 0 {
		t.Errorf("counts = %+v, want zeros", s)
	}
	if s.AverageEaseFactor != 2.5 {
		t.Errorf("AverageEaseFactor = %f, want default 2.5", s.AverageEaseFactor)
	}
	if len(s.CategoryDistribution) != 0 {
		t.Errorf("CategoryDistribution = %v, want empty", s.CategoryDistribution)
	}
}

func TestSummarizeCounts(t *testing.T) {
	a := mustPaper(t, "A")
	a.EaseFactor = 2.5
	a.Categories = paper.StringList{"Machine Learning"}
	dueToday := now.Add(-time.Hour)
	a.NextReviewDate = &dueToday

	b := reviewedPaper(t, "B", 3, now.Add(-2*24*time.Hour))
	b.EaseFactor = 3.0
	b.Categories = paper.StringList{"Machine Learning", "Computer Vision"}
	future := now.AddDate(0, 0, 10)
	b.NextReviewDate = &future

	c := reviewedPaper(t, "C", 1, now.Add(-40*24*time.Hour))
	c.EaseFactor = 1.3

	s := Summarize([]paper.Paper{a, b, c}, now)

	if s.TotalPapers != 3 {
		t.Errorf("TotalPapers = %d, want 3", s.TotalPapers)
	}
	if s.ReviewedPapers != 2 {
		t.Errorf("ReviewedPapers = %d, want 2", s.ReviewedPapers)
	}
	if s.PapersDueToday != 1 {
		t.Errorf("PapersDueToday = %d, want 1", s.PapersDueToday)
	}
	if s.TotalReviews != 4 {
		t.Errorf("TotalReviews = %d, want 4", s.TotalReviews)
	}
	// (2.5 + 3.0 + 1.3) / 3 = 2.2666... → 2.27
	if s.AverageEaseFactor != 2.27 {
		t.Errorf("AverageEaseFactor = %f, want 2.27", s.AverageEaseFactor)
	}

	if s.CategoryDistribution["Machine Learning"] != 2 {
		t.Errorf("Machine Learning count = %d, want 2", s.CategoryDistribution["Machine Learning"])
	}
	if s.CategoryDistribution["Computer Vision"] != 1 {
		t.Errorf("Computer Vision count = %d, want 1", s.CategoryDistribution["Computer Vision"])
	}

	// Only B's review is within the 30-day history window.
	if len(s.ReviewHistory) != 1 {
		t.Fatalf("ReviewHistory len = %d, want 1", len(s.ReviewHistory))
	}
	if s.ReviewHistory[0].Title != "B" || s.ReviewHistory[0].DaysAgo != 2 {
		t.Errorf("ReviewHistory[0] = %+v", s.ReviewHistory[0])
	}
}

func TestDueTodayIsCalendarBased(t *testing.T) {
	p := mustPaper(t, "Later Today")
	tonight := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC) // after "now", same day
	p.NextReviewDate = &tonight

	s := Summarize([]paper.Paper{p}, now)
	if s.PapersDueToday != 1 {
		t.Errorf("PapersDueToday = %d, want 1 (same calendar day counts)", s.PapersDueToday)
	}

	unscheduled := mustPaper(t, "Unscheduled")
	s = Summarize([]paper.Paper{unscheduled}, now)
	if s.PapersDueToday != 0 {
		t.Errorf("PapersDueToday = %d, want 0 for unscheduled paper", s.PapersDueToday)
	}
}

func TestReviewStreak(t *testing.T) {
	if got := ReviewStreak(nil, now); got != 0 {
		t.Errorf("empty streak = %d, want 0", got)
	}

	// Reviews today, yesterday, and two days ago: streak of 3.
	papers := []paper.Paper{
		reviewedPaper(t, "A", 1, now.Add(-2*time.Hour)),
		reviewedPaper(t, "B", 1, now.AddDate(0, 0, -1)),
		reviewedPaper(t, "C", 1, now.AddDate(0, 0, -2)),
	}
	if got := ReviewStreak(papers, now); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}

	// A gap yesterday stops the walk even with older reviews present.
	gapped := []paper.Paper{
		reviewedPaper(t, "A", 1, now.Add(-2*time.Hour)),
		reviewedPaper(t, "B", 1, now.AddDate(0, 0, -2)),
	}
	if got := ReviewStreak(gapped, now); got != 1 {
		t.Errorf("gapped streak = %d, want 1", got)
	}

	// No review today means no streak at all.
	stale := []paper.Paper{
		reviewedPaper(t, "A", 1, now.AddDate(0, 0, -1)),
	}
	if got := ReviewStreak(stale, now); got != 0 {
		t.Errorf("stale streak = %d, want 0", got)
	}
}

func TestRetentionRate(t *testing.T) {
	if got := RetentionRate(nil); got != 0.0 {
		t.Errorf("empty retention = %f, want 0", got)
	}

	papers := []paper.Paper{
		reviewedPaper(t, "A", 2, now),
		mustPaper(t, "B"),
		mustPaper(t, "C"),
	}
	// 1 of 3 → 33.33
	if got := RetentionRate(papers); got != 33.33 {
		t.Errorf("retention = %f, want 33.33", got)
	}
}

func TestUpcomingReviews(t *testing.T) {
	in2 := now.AddDate(0, 0, 2)
	in5 := now.AddDate(0, 0, 5)
	in9 := now.AddDate(0, 0, 9)
	past := now.AddDate(0, 0, -1)

	a := mustPaper(t, "In Five")
	a.NextReviewDate = &in5
	b := mustPaper(t, "In Two")
	b.NextReviewDate = &in2
	c := mustPaper(t, "Too Far")
	c.NextReviewDate = &in9
	d := mustPaper(t, "Past")
	d.NextReviewDate = &past
	e := mustPaper(t, "Unscheduled")

	upcoming := UpcomingReviews([]paper.Paper{a, b, c, d, e}, 7, now)
	if len(upcoming) != 2 {
		t.Fatalf("len = %d, want 2", len(upcoming))
	}
	if upcoming[0].Title != "In Two" || upcoming[0].DaysUntil != 2 {
		t.Errorf("upcoming[0] = %+v", upcoming[0])
	}
	if upcoming[1].Title != "In Five" || upcoming[1].DaysUntil != 5 {
		t.Errorf("upcoming[1] = %+v", upcoming[1])
	}
}

func TestPerformanceMetrics(t *testing.T) {
	empty := PerformanceMetrics(nil, now)
	if empty.AverageReviewsPerPaper != 0 || empty.RetentionRate != 0 ||
		empty.ReviewStreak != 0 || empty.MostReviewedPaper != nil {
		t.Errorf("empty metrics = %+v, want zeros", empty)
	}

	papers := []paper.Paper{
		reviewedPaper(t, "First", 5, now),
		reviewedPaper(t, "Tied", 5, now),
		mustPaper(t, "Unreviewed"),
	}
	perf := PerformanceMetrics(papers, now)

	// (5 + 5 + 0) / 3 = 3.33
	if perf.AverageReviewsPerPaper != 3.33 {
		t.Errorf("AverageReviewsPerPaper = %f, want 3.33", perf.AverageReviewsPerPaper)
	}
	if perf.RetentionRate != 66.67 {
		t.Errorf("RetentionRate = %f, want 66.67", perf.RetentionRate)
	}
	if perf.ReviewStreak != 1 {
		t.Errorf("ReviewStreak = %d, want 1", perf.ReviewStreak)
	}
	if perf.MostReviewedPaper == nil {
		t.Fatal("MostReviewedPaper = nil")
	}
	// Ties break toward the first-encountered paper.
	if perf.MostReviewedPaper.Title != "First" || perf.MostReviewedPaper.ReviewCount != 5 {
		t.Errorf("MostReviewedPaper = %+v", perf.MostReviewedPaper)
	}
}
