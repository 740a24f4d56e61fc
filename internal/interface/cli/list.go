package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/db"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/vault"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported conversations",
	Long: `List conversations that have been written to the vault, most
recently imported first.

Examples:
  nexus-import list
  nexus-import list --limit 10`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of conversations to display")
}

func runList(cmd *cobra.Command, args []string) error {
	return withDB(func(database *db.DB) error {
		records, err := database.ListMaterializations()
		if err != nil {
			return fmt.Errorf("failed to list conversations: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No conversations imported yet. Run 'nexus-import import <archive>' first.")
			return nil
		}

		if len(records) > listLimit {
			records = records[:listLimit]
		}

		fmt.Printf("Showing %d conversation(s)\n\n", len(records))
		for i, m := range records {
			fmt.Printf("[%d] %s\n", i+1, vault.UIDShort(m.UID))
			fmt.Printf("    Note: %s\n", m.FilePath)
			if !m.LastImportedAt.IsZero() {
				fmt.Printf("    Imported: %s\n", humanize.Time(m.LastImportedAt))
			}
			if m.Profile != "" {
				fmt.Printf("    Profile: %s\n", m.Profile)
			}
			fmt.Println()
		}
		return nil
	})
}
