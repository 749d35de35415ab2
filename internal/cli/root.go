package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/paperdeck/paperdeck/internal/config"
	"github.com/paperdeck/paperdeck/internal/engine"
	"github.com/paperdeck/paperdeck/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "paperdeck",
	Short: "Spaced-repetition memory for research papers",
	Long:  "Paperdeck keeps structured notes on papers you read and quizzes you on them with a spaced-repetition schedule. Single Go binary, one JSON file of state.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env for PAPERDECK_DATA_DIR and friends.
		godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(importCmd)
}

// dataDir resolves the data directory: PAPERDECK_DATA_DIR or ~/.paperdeck.
func dataDir() (string, error) {
	if dir := os.Getenv("PAPERDECK_DATA_DIR"); dir != "" {
		return dir, nil
	}
	return store.DefaultDataDir()
}

// openEngine is a helper that wires the store, config, and engine for CLI
// commands.
func openEngine() (*engine.Engine, *store.Store, *config.Manager, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := store.Open(filepath.Join(dir, "flashpapers.json"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}
	cfg := config.NewManager(filepath.Join(dir, "config.json"))
	if _, err := cfg.Load(); err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	return engine.New(st, cfg), st, cfg, nil
}

// stubRun returns a Run that prints a not-yet-implemented message to stderr.
func stubRun(name string) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stderr, "%s: not yet implemented\n", name)
	}
}

// The arXiv metadata fetch was never finished upstream; add accepts
// pre-fetched fields from any origin instead.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import paper metadata from arXiv",
	Run:   stubRun("import"),
}
