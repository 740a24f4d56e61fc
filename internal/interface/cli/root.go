package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/config"
)

var (
	cfg         *config.Config
	dbPath      string
	vaultPath   string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nexus-import",
	Short: "Import AI chat exports into your vault",
	Long: `nexus-import - bring ChatGPT and Claude export archives into a vault of notes

Each conversation becomes one markdown note with identity metadata in its
frontmatter. Re-importing the same archive is idempotent: unchanged
conversations are skipped, changed ones update their existing note.`,
}

func init() {
	cfg, _ = config.Load()

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "State database path")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", cfg.VaultPath, "Vault directory notes are written to")
}
