package reconcile

import "github.com/woodae99/nexus-ai-chat-importer/internal/core/models"

// StatusOf labels a conversation for display. It is the one definition of
// the label precedence, so listings and reconciliation cannot disagree:
// ignored beats updated beats imported beats new.
func StatusOf(uid string, ignores map[string]bool, rec *models.Materialization, archiveUpdatedAt int64) models.Status {
	if ignores[uid] {
		return models.StatusIgnored
	}
	if rec == nil {
		return models.StatusNew
	}
	if archiveUpdatedAt > rec.UpdatedAt {
		return models.StatusUpdated
	}
	return models.StatusImported
}
