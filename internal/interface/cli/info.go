package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/db"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show importer state",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	return withDB(func(database *db.DB) error {
		materialized, err := database.CountMaterializations()
		if err != nil {
			return err
		}
		ignored, err := database.CountIgnores()
		if err != nil {
			return err
		}
		runs, err := database.CountRuns()
		if err != nil {
			return err
		}
		lastExport, err := database.GetState(db.StateLastExportPath)
		if err != nil {
			return err
		}
		profile, err := database.ActiveProfile()
		if err != nil {
			return err
		}

		fmt.Printf("Database: %s\n", dbPath)
		fmt.Printf("Vault: %s\n", vaultPath)
		fmt.Printf("Imported conversations: %d\n", materialized)
		fmt.Printf("Excluded conversations: %d\n", ignored)
		fmt.Printf("Import runs: %d\n", runs)
		if profile != "" {
			fmt.Printf("Active profile: %s\n", profile)
		}
		if lastExport != "" {
			fmt.Printf("Last export: %s\n", lastExport)
		}
		return nil
	})
}
