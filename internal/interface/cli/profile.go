package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/db"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage import profiles",
	Long: `Profiles tag materialization records so several vaults or accounts
can share one state database. The active profile is stamped on every
conversation an import writes.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *db.DB) error {
			names, err := database.ListProfiles()
			if err != nil {
				return err
			}
			active, err := database.ActiveProfile()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("No profiles defined")
				return nil
			}
			for _, name := range names {
				marker := " "
				if name == active {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, name)
			}
			return nil
		})
	},
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *db.DB) error {
			if err := database.AddProfile(args[0]); err != nil {
				return err
			}
			fmt.Printf("Created profile %s\n", args[0])
			return nil
		})
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(database *db.DB) error {
			if err := database.SetActiveProfile(args[0]); err != nil {
				return err
			}
			fmt.Printf("Active profile is now %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileUseCmd)
}
