// Package importer applies an import plan to the vault. Writes are strictly
// serialized: one conversation at a time, file first, materialization record
// second, so a crash can never leave a record claiming a write that did not
// happen.
package importer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/db"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/models"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/vault"
	"github.com/woodae99/nexus-ai-chat-importer/pkg/chatarchive"
)

// Executor writes planned conversations into the vault and records them.
type Executor struct {
	db      *db.DB
	vault   *vault.Vault
	profile string
}

// New creates an executor. Materializations it writes are tagged with the
// given profile name ("" when profiles are unused).
func New(database *db.DB, v *vault.Vault, profile string) *Executor {
	return &Executor{db: database, vault: v, profile: profile}
}

// RunInfo identifies the archive a run imports from; it is stamped on the
// report and the import log.
type RunInfo struct {
	ArchivePath string
	Provider    string
}

// Run applies the plan. Cancellation is cooperative: it is checked between
// plan items, never mid-write, so an in-flight write always completes and
// gets recorded. A failing item is recorded in the report and never blocks
// the rest of the batch. The returned error covers executor-level problems
// only; per-item failures live in the report.
func (e *Executor) Run(ctx context.Context, info RunInfo, plan *models.Plan, convs map[string]chatarchive.Conversation, progress Progress) (*models.Report, error) {
	report := &models.Report{
		RunID:       uuid.NewString(),
		ArchivePath: info.ArchivePath,
		Provider:    info.Provider,
		StartedAt:   time.Now(),
	}

	emit(progress, Event{Phase: PhaseScan, Total: len(plan.Items)})

	for i, item := range plan.Items {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		emit(progress, Event{Phase: PhaseProcess, UID: item.UID, Title: item.Title, Done: i, Total: len(plan.Items)})

		if item.Action == models.ActionSkip {
			report.Items = append(report.Items, models.ReportItem{
				UID:    item.UID,
				Action: item.Action,
				Path:   item.TargetPath,
			})
			continue
		}

		outcome := e.writeItem(item, convs)
		report.Items = append(report.Items, outcome)

		ev := Event{Phase: PhaseWrite, UID: item.UID, Title: item.Title, Done: i + 1, Total: len(plan.Items)}
		if outcome.Err != "" {
			ev.Err = outcome.Err
		}
		emit(progress, ev)
	}

	report.FinishedAt = time.Now()

	if err := e.db.RecordRun(report, plan, ""); err != nil {
		emit(progress, Event{Phase: PhaseError, Done: len(report.Items), Total: len(plan.Items), Err: err.Error()})
		return report, err
	}

	if report.Cancelled {
		emit(progress, Event{Phase: PhaseCancelled, Done: len(report.Items), Total: len(plan.Items)})
	} else {
		emit(progress, Event{Phase: PhaseComplete, Done: len(report.Items), Total: len(plan.Items)})
	}
	return report, nil
}

// writeItem writes one NEW or UPDATE item. The materialization record is
// updated only after the file write succeeds. A write failure gets one
// retry under a safe fallback filename before the item is given up on.
func (e *Executor) writeItem(item models.PlanItem, convs map[string]chatarchive.Conversation) models.ReportItem {
	outcome := models.ReportItem{UID: item.UID, Action: item.Action, Path: item.TargetPath}

	conv, ok := convs[item.UID]
	if !ok {
		outcome.Err = "conversation missing from archive"
		return outcome
	}

	content, err := vault.RenderNote(conv)
	if err != nil {
		outcome.Err = err.Error()
		return outcome
	}

	relPath := item.TargetPath
	if werr := e.vault.WriteNote(relPath, content); werr != nil {
		fallback := vault.SafeFallbackName(item.UID)
		if ferr := e.vault.WriteNote(fallback, content); ferr != nil {
			outcome.Err = werr.Error()
			return outcome
		}
		relPath = fallback
	}
	outcome.Path = relPath
	outcome.Written = true

	mat := &models.Materialization{
		UID:            item.UID,
		ContentHash:    vault.CanonicalHash(conv.Messages),
		UpdatedAt:      conv.UpdatedAt,
		FilePath:       relPath,
		LastImportedAt: time.Now(),
		Profile:        e.profile,
	}
	if err := e.db.PutMaterialization(mat); err != nil {
		// The note exists but the cache missed it; the vault-scan fallback
		// will recover it on the next run.
		outcome.Err = err.Error()
	}
	return outcome
}

func emit(p Progress, ev Event) {
	if p != nil {
		p.OnEvent(ev)
	}
}
