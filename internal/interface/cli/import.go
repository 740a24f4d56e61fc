package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/db"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/importer"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/models"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/reconcile"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/selection"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/vault"
	"github.com/woodae99/nexus-ai-chat-importer/internal/interface/tui"
	"github.com/woodae99/nexus-ai-chat-importer/pkg/chatarchive"
)

var (
	importProvider       string
	importDryRun         bool
	importInteractive    bool
	importFilter         string
	importOnlyFiltered   bool
	importIncludeIgnored bool
	importTemplate       string
	importFolder         string
)

var importCmd = &cobra.Command{
	Use:   "import <archive>",
	Short: "Import a chat export archive into the vault",
	Long: `Import conversations from a ChatGPT or Claude export.

The archive may be the export zip, an extracted directory, or a bare
conversations.json. Every conversation is classified as new, update, or
skip against the vault before anything is written; skipped conversations
are untouched. Interrupt with Ctrl-C to stop after the current write.

Examples:
  nexus-import import ~/Downloads/chatgpt-export.zip
  nexus-import import export.zip --dry-run
  nexus-import import export.zip --interactive
  nexus-import import export.zip --filter "recipe" --only-filtered
  nexus-import import export.zip --provider claude`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importProvider, "provider", "", "Force provider (chatgpt or claude) instead of auto-detecting")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Compute and print the plan without writing")
	importCmd.Flags().BoolVarP(&importInteractive, "interactive", "i", false, "Pick conversations in a terminal UI before importing")
	importCmd.Flags().StringVar(&importFilter, "filter", "", "Keyword filter over titles and sampled text")
	importCmd.Flags().BoolVar(&importOnlyFiltered, "only-filtered", false, "Select only conversations matching --filter")
	importCmd.Flags().BoolVar(&importIncludeIgnored, "include-ignored", false, "Select globally-ignored conversations too")
	importCmd.Flags().StringVar(&importTemplate, "template", "", "Filename template for new notes")
	importCmd.Flags().StringVar(&importFolder, "folder", "", "Vault folder new notes land in")
}

func runImport(cmd *cobra.Command, args []string) error {
	source := args[0]

	load, err := loadArchive(source, providerOrDefault(importProvider))
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d conversations (%s) from %s\n\n", len(load.convs), load.provider.Name(), source)

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	ignores, err := database.ListIgnores()
	if err != nil {
		return fmt.Errorf("failed to load exclusion list: %w", err)
	}

	sel := buildSelection(load.convs, ignores, importFilter, importOnlyFiltered, importIncludeIgnored)

	v := vault.New(vaultPath)
	planner := reconcile.New(database, v, folderOrDefault(importFolder), templateOrDefault(importTemplate))

	if importInteractive {
		statuses := make(map[string]models.Status, len(load.convs))
		for _, c := range load.convs {
			rec, err := planner.Lookup(c.UID)
			if err != nil {
				return fmt.Errorf("failed to check vault state: %w", err)
			}
			statuses[c.UID] = reconcile.StatusOf(c.UID, ignores, rec, c.UpdatedAt)
		}
		confirmed, err := tui.Run(sel, statuses)
		if err != nil {
			return fmt.Errorf("picker failed: %w", err)
		}
		if !confirmed {
			fmt.Println("Import aborted.")
			return nil
		}
	}

	selected, total := sel.Counts()
	fmt.Printf("Selected %d of %d conversations\n", selected, total)
	plan, err := planner.Plan(sel.Selected(), load.byUID)
	if err != nil {
		return fmt.Errorf("failed to compute plan: %w", err)
	}

	printPlan(plan)
	if importDryRun {
		return nil
	}
	fmt.Println()

	// Ctrl-C stops dispatch of new items; the in-flight write completes.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	profile, err := database.ActiveProfile()
	if err != nil {
		return fmt.Errorf("failed to load active profile: %w", err)
	}

	exec := importer.New(database, v, profile)
	progress := importer.NewProgressReporter(os.Stdout, len(plan.Items))
	info := importer.RunInfo{ArchivePath: source, Provider: load.provider.Name()}
	report, err := exec.Run(ctx, info, plan, load.byUID, progress)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if err := database.SetState(db.StateLastExportPath, source); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record export path: %v\n", err)
	}

	fmt.Println()
	printReport(report)
	return nil
}

// buildSelection composes the initial selection for a run: everything,
// optionally narrowed to the filter matches, minus the exclusion set. The
// exclusion pass runs last so --only-filtered cannot re-select an excluded
// conversation; --include-ignored is the one way to skip it.
func buildSelection(convs []chatarchive.Conversation, ignores map[string]bool, filter string, onlyFiltered, includeIgnored bool) *selection.State {
	sel := selection.New(convs)
	if filter != "" {
		sel.SetFilter(filter)
		if onlyFiltered {
			sel.ClearAll()
			sel.SelectVisible()
		}
	}
	if !includeIgnored {
		sel.ApplyExclusions(ignores)
	}
	return sel
}

func providerOrDefault(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.DefaultProvider
}

func templateOrDefault(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.FilenameTemplate
}

func folderOrDefault(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.NoteFolder
}
