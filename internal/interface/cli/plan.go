package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/db"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/reconcile"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/selection"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/vault"
)

var (
	planProvider string
	planFilter   string
	planSort     string
	planAsc      bool
)

var planCmd = &cobra.Command{
	Use:   "plan <archive>",
	Short: "Show what an import would do, without writing",
	Long: `Diff an export archive against the vault and print each
conversation's status (new, updated, imported, ignored) and the action an
import would take. Nothing is written.

Examples:
  nexus-import plan export.zip
  nexus-import plan export.zip --filter quantum
  nexus-import plan export.zip --sort title --asc`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&planProvider, "provider", "", "Force provider (chatgpt or claude) instead of auto-detecting")
	planCmd.Flags().StringVar(&planFilter, "filter", "", "Keyword filter over titles and sampled text")
	planCmd.Flags().StringVar(&planSort, "sort", "updated", "Sort by updated, created, or title")
	planCmd.Flags().BoolVar(&planAsc, "asc", false, "Sort ascending instead of descending")
}

func runPlan(cmd *cobra.Command, args []string) error {
	source := args[0]

	load, err := loadArchive(source, providerOrDefault(planProvider))
	if err != nil {
		return err
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	ignores, err := database.ListIgnores()
	if err != nil {
		return fmt.Errorf("failed to load exclusion list: %w", err)
	}

	sel := selection.New(load.convs)
	sel.ApplyExclusions(ignores)
	sel.SetFilter(planFilter)
	sel.SetSort(selection.SortField(planSort), planAsc)

	v := vault.New(vaultPath)
	planner := reconcile.New(database, v, folderOrDefault(""), templateOrDefault(""))

	fmt.Printf("%d conversations (%s) in %s\n\n", len(load.convs), load.provider.Name(), source)
	for _, uid := range sel.Visible() {
		c := load.byUID[uid]
		rec, err := planner.Lookup(uid)
		if err != nil {
			return err
		}
		status := reconcile.StatusOf(uid, ignores, rec, c.UpdatedAt)
		updated := ""
		if c.UpdatedAt > 0 {
			updated = humanize.Time(time.UnixMilli(c.UpdatedAt))
		}
		fmt.Printf("%-10s %s  %-50s %s\n", statusLabel(status), vault.UIDShort(uid), truncateTitle(c.Title, 50), updated)
	}

	plan, err := planner.Plan(sel.Selected(), load.byUID)
	if err != nil {
		return fmt.Errorf("failed to compute plan: %w", err)
	}
	newCount, updateCount, skipCount := plan.Counts()
	fmt.Printf("\nAn import now would write %d new, update %d, skip %d\n", newCount, updateCount, skipCount)
	return nil
}
