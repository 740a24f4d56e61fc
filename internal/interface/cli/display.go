package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/models"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/vault"
)

var (
	styleNew     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleUpdate  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleSkip    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleIgnored = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func actionLabel(a models.Action) string {
	switch a {
	case models.ActionNew:
		return styleNew.Render("NEW   ")
	case models.ActionUpdate:
		return styleUpdate.Render("UPDATE")
	default:
		return styleSkip.Render("SKIP  ")
	}
}

func statusLabel(s models.Status) string {
	switch s {
	case models.StatusNew:
		return styleNew.Render("new")
	case models.StatusUpdated:
		return styleUpdate.Render("updated")
	case models.StatusIgnored:
		return styleIgnored.Render("ignored")
	default:
		return styleSkip.Render("imported")
	}
}

func printPlan(plan *models.Plan) {
	for _, item := range plan.Items {
		line := fmt.Sprintf("%s %s  %s", actionLabel(item.Action), vault.UIDShort(item.UID), truncateTitle(item.Title, 60))
		if item.Reason != "" {
			line += styleSkip.Render(" (" + item.Reason + ")")
		}
		fmt.Println(line)
	}

	newCount, updateCount, skipCount := plan.Counts()
	fmt.Printf("\n%d new, %d to update, %d to skip\n", newCount, updateCount, skipCount)
}

func printReport(report *models.Report) {
	written, skipped, failed := report.Counts()
	fmt.Printf("Imported %d, skipped %d, failed %d\n", written, skipped, failed)
	for _, item := range report.Failed() {
		fmt.Printf("  %s %s: %s\n", styleIgnored.Render("FAILED"), vault.UIDShort(item.UID), item.Err)
	}
	if report.Cancelled {
		fmt.Println("Run was cancelled; remaining conversations are left for a future run.")
	}
}

func truncateTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
