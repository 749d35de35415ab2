package engine

import (
	"sort"
	"strings"

	"github.com/paperdeck/paperdeck/internal/paper"
)

// The search functions are stateless: they operate on a snapshot of the
// collection and never mutate it. The Engine wrappers below fetch the
// snapshot from the store.

// searchableText concatenates every text field of a paper, lowercased, for
// substring matching.
func searchableText(p *paper.Paper) string {
	parts := []string{
		p.Title,
		p.Authors,
		p.Background,
		p.Objectives,
		p.Methodology,
		p.Results,
		p.Discussion,
		p.Contributions,
		p.Significance,
		p.Notes,
		strings.Join(p.Keywords, " "),
		strings.Join(p.Categories, " "),
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Search filters a snapshot by free-text query, categories, and keywords.
// All three predicates are conjunctive; each supplied filter matches when the
// paper carries any of its values, and the query matches case-insensitively
// as a substring of the paper's concatenated text fields.
func Search(papers []paper.Paper, query string, categories, keywords []string) []paper.Paper {
	q := strings.ToLower(strings.TrimSpace(query))

	var results []paper.Paper
	for _, p := range papers {
		if len(categories) > 0 && !p.Categories.ContainsAny(categories) {
			continue
		}
		if len(keywords) > 0 && !p.Keywords.ContainsAny(keywords) {
			continue
		}
		if q != "" && !strings.Contains(searchableText(&p), q) {
			continue
		}
		results = append(results, p)
	}
	return results
}

// SearchByTitle matches the query case-insensitively against titles only.
func SearchByTitle(papers []paper.Paper, query string) []paper.Paper {
	q := strings.ToLower(strings.TrimSpace(query))
	var results []paper.Paper
	for _, p := range papers {
		if strings.Contains(strings.ToLower(p.Title), q) {
			results = append(results, p)
		}
	}
	return results
}

// SearchByAuthor matches the query case-insensitively against authors only.
func SearchByAuthor(papers []paper.Paper, query string) []paper.Paper {
	q := strings.ToLower(strings.TrimSpace(query))
	var results []paper.Paper
	for _, p := range papers {
		if strings.Contains(strings.ToLower(p.Authors), q) {
			results = append(results, p)
		}
	}
	return results
}

// AllTags returns every distinct keyword across the snapshot, sorted.
func AllTags(papers []paper.Paper) []string {
	return collectDistinct(papers, func(p *paper.Paper) []string { return p.Keywords })
}

// AllCategories returns every distinct category across the snapshot, sorted.
func AllCategories(papers []paper.Paper) []string {
	return collectDistinct(papers, func(p *paper.Paper) []string { return p.Categories })
}

func collectDistinct(papers []paper.Paper, field func(*paper.Paper) []string) []string {
	seen := make(map[string]bool)
	for i := range papers {
		for _, v := range field(&papers[i]) {
			seen[v] = true
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// FilterByCategory returns the papers carrying exactly the given category.
func FilterByCategory(papers []paper.Paper, category string) []paper.Paper {
	var results []paper.Paper
	for _, p := range papers {
		if p.Categories.Contains(category) {
			results = append(results, p)
		}
	}
	return results
}

// FilterByKeyword returns the papers carrying exactly the given keyword.
func FilterByKeyword(papers []paper.Paper, keyword string) []paper.Paper {
	var results []paper.Paper
	for _, p := range papers {
		if p.Keywords.Contains(keyword) {
			results = append(results, p)
		}
	}
	return results
}

// RecentPapers returns the snapshot sorted by added date, newest first,
// truncated to limit. The input slice is not reordered.
func RecentPapers(papers []paper.Paper, limit int) []paper.Paper {
	out := make([]paper.Paper, len(papers))
	copy(out, papers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedDate.After(out[j].AddedDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Search runs a combined query over the current collection.
func (e *Engine) Search(query string, categories, keywords []string) ([]paper.Paper, error) {
	papers, err := e.Store.LoadAll()
	if err != nil {
		return nil, err
	}
	return Search(papers, query, categories, keywords), nil
}

// Tags returns every distinct keyword in the current collection.
func (e *Engine) Tags() ([]string, error) {
	papers, err := e.Store.LoadAll()
	if err != nil {
		return nil, err
	}
	return AllTags(papers), nil
}

// Categories returns every distinct category in the current collection.
func (e *Engine) Categories() ([]string, error) {
	papers, err := e.Store.LoadAll()
	if err != nil {
		return nil, err
	}
	return AllCategories(papers), nil
}

// Recent returns the most recently added papers.
func (e *Engine) Recent(limit int) ([]paper.Paper, error) {
	papers, err := e.Store.LoadAll()
	if err != nil {
		return nil, err
	}
	return RecentPapers(papers, limit), nil
}
