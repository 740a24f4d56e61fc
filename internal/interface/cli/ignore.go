package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/db"
)

var ignoreCmd = &cobra.Command{
	Use:   "ignore",
	Short: "Manage the global exclusion list",
	Long: `Conversations on the exclusion list are deselected by default on
every import. They can still be imported explicitly with --include-ignored.`,
}

var ignoreListCmd = &cobra.Command{
	Use:   "list",
	Short: "List excluded conversation uids",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *db.DB) error {
			ignores, err := database.ListIgnores()
			if err != nil {
				return err
			}
			if len(ignores) == 0 {
				fmt.Println("Exclusion list is empty")
				return nil
			}
			uids := make([]string, 0, len(ignores))
			for uid := range ignores {
				uids = append(uids, uid)
			}
			sort.Strings(uids)
			for _, uid := range uids {
				fmt.Println(uid)
			}
			return nil
		})
	},
}

var ignoreAddCmd = &cobra.Command{
	Use:   "add <uid>...",
	Short: "Add conversations to the exclusion list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *db.DB) error {
			if err := database.AddIgnores(args); err != nil {
				return err
			}
			fmt.Printf("Excluded %d conversation(s)\n", len(args))
			return nil
		})
	},
}

var ignoreRemoveCmd = &cobra.Command{
	Use:   "remove <uid>...",
	Short: "Remove conversations from the exclusion list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *db.DB) error {
			if err := database.RemoveIgnores(args); err != nil {
				return err
			}
			fmt.Printf("Removed %d conversation(s) from the exclusion list\n", len(args))
			return nil
		})
	},
}

var ignoreClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the exclusion list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *db.DB) error {
			if err := database.ClearIgnores(); err != nil {
				return err
			}
			fmt.Println("Exclusion list cleared")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(ignoreCmd)
	ignoreCmd.AddCommand(ignoreListCmd)
	ignoreCmd.AddCommand(ignoreAddCmd)
	ignoreCmd.AddCommand(ignoreRemoveCmd)
	ignoreCmd.AddCommand(ignoreClearCmd)
}

// withDB opens the state database for the duration of one command.
func withDB(fn func(*db.DB) error) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()
	return fn(database)
}
