package cli

import (
	"fmt"
	"strings"

	"github.com/paperdeck/paperdeck/internal/engine"
	"github.com/paperdeck/paperdeck/internal/paper"
	"github.com/spf13/cobra"
)

// --- add command ---

var (
	addAuthors    string
	addCategories []string
	addKeywords   []string
	addLink       string
	addNotes      string
	addQuestion   string
	addAnswer     string
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a paper to the deck",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addAuthors, "authors", "a", "", "Paper authors (required)")
	addCmd.Flags().StringSliceVarP(&addCategories, "category", "c", nil, "Categories")
	addCmd.Flags().StringSliceVarP(&addKeywords, "keyword", "k", nil, "Keywords")
	addCmd.Flags().StringVar(&addLink, "link", "", "URL of the paper")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Additional notes")
	addCmd.Flags().StringVar(&addQuestion, "question", "", "Legacy flashcard question")
	addCmd.Flags().StringVar(&addAnswer, "answer", "", "Legacy flashcard answer")
	addCmd.MarkFlagRequired("authors")

	reviewCmd.Flags().BoolVar(&reviewList, "list", false, "Only list due papers, do not record a review")
	dueCmd.Flags().IntVarP(&dueLimit, "limit", "n", 0, "Maximum number of papers to show")

	searchCmd.Flags().StringSliceVarP(&searchCategories, "category", "c", nil, "Filter by category")
	searchCmd.Flags().StringSliceVarP(&searchKeywords, "keyword", "k", nil, "Filter by keyword")
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "Match against titles only")
	searchCmd.Flags().StringVar(&searchAuthor, "author", "", "Match against authors only")
}

func runAdd(cmd *cobra.Command, args []string) error {
	eng, _, _, err := openEngine()
	if err != nil {
		return err
	}

	id, err := eng.AddPaper(engine.AddRequest{
		Title:      strings.Join(args, " "),
		Authors:    addAuthors,
		Categories: addCategories,
		Keywords:   addKeywords,
		Link:       addLink,
		Notes:      addNotes,
		Question:   addQuestion,
		Answer:     addAnswer,
	})
	if err != nil {
		return fmt.Errorf("add paper: %w", err)
	}

	fmt.Printf("added %s\n", id)
	return nil
}

// --- due command ---

var dueLimit int

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List papers due for review",
	RunE:  runDue,
}

func runDue(cmd *cobra.Command, args []string) error {
	eng, _, _, err := openEngine()
	if err != nil {
		return err
	}

	due, err := eng.DueForReview(dueLimit)
	if err != nil {
		return fmt.Errorf("load due papers: %w", err)
	}
	if len(due) == 0 {
		fmt.Println("Nothing due. Come back later.")
		return nil
	}

	for _, p := range due {
		printPaperLine(p)
	}
	return nil
}

// --- review command ---

var reviewList bool

var reviewCmd = &cobra.Command{
	Use:   "review [id] [easy|medium|hard]",
	Short: "Record a review of a paper",
	Args:  cobra.RangeArgs(0, 2),
	RunE:  runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	eng, _, _, err := openEngine()
	if err != nil {
		return err
	}

	if reviewList || len(args) == 0 {
		return runDue(cmd, nil)
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: paperdeck review <id> <easy|medium|hard>")
	}

	difficulty, err := paper.ParseDifficulty(args[1])
	if err != nil {
		return err
	}
	ev, err := paper.NewReviewEvent(args[0], difficulty)
	if err != nil {
		return err
	}

	ok, err := eng.ProcessReview(ev)
	if err != nil {
		return fmt.Errorf("process review: %w", err)
	}
	if !ok {
		return fmt.Errorf("no paper with id %s", args[0])
	}

	p, err := eng.Paper(args[0])
	if err != nil || p == nil {
		fmt.Println("review recorded")
		return nil
	}
	fmt.Printf("review recorded: next in %d day(s), ease %.2f\n", p.IntervalDays, p.EaseFactor)
	return nil
}

// --- search command ---

var (
	searchCategories []string
	searchKeywords   []string
	searchTitle      string
	searchAuthor     string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the deck",
	Long:  "Search papers by free text, category, and keyword. Filters combine with AND; each filter matches any of its values.",
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	eng, _, _, err := openEngine()
	if err != nil {
		return err
	}

	papers, err := eng.AllPapers()
	if err != nil {
		return fmt.Errorf("load papers: %w", err)
	}

	var results []paper.Paper
	switch {
	case searchTitle != "":
		results = engine.SearchByTitle(papers, searchTitle)
	case searchAuthor != "":
		results = engine.SearchByAuthor(papers, searchAuthor)
	default:
		results = engine.Search(papers, strings.Join(args, " "), searchCategories, searchKeywords)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for _, p := range results {
		printPaperLine(p)
	}
	return nil
}

func printPaperLine(p paper.Paper) {
	fmt.Printf("%s  %s (%s)", p.ID, p.Title, p.Authors)
	if len(p.Categories) > 0 {
		fmt.Printf("  [%s]", strings.Join(p.Categories, ", "))
	}
	if p.NextReviewDate != nil {
		fmt.Printf("  (next: %s)", p.NextReviewDate.Format("2006-01-02"))
	}
	fmt.Println()
}
