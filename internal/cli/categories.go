package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage the category vocabulary",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, cfgMgr, err := openEngine()
		if err != nil {
			return err
		}
		cfg, err := cfgMgr.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		for _, c := range cfg.Categories {
			fmt.Println(c)
		}
		return nil
	},
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, cfgMgr, err := openEngine()
		if err != nil {
			return err
		}
		if err := cfgMgr.AddCategory(args[0]); err != nil {
			return err
		}
		fmt.Printf("added category %q\n", args[0])
		return nil
	},
}

var categoriesRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, cfgMgr, err := openEngine()
		if err != nil {
			return err
		}
		removed, err := cfgMgr.RemoveCategory(args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no category %q", args[0])
		}
		fmt.Printf("removed category %q\n", args[0])
		return nil
	},
}

func init() {
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesAddCmd)
	categoriesCmd.AddCommand(categoriesRemoveCmd)
}
