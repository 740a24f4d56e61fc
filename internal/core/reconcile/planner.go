// Package reconcile decides, per conversation, whether an import should
// create a note, update one, or do nothing. It only ever reads: the plan is
// computed in full before the executor writes anything.
package reconcile

import (
	"fmt"
	"path"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/db"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/models"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/vault"
	"github.com/woodae99/nexus-ai-chat-importer/pkg/chatarchive"
)

// Planner diffs selected conversations against existing vault state.
type Planner struct {
	db       *db.DB
	vault    *vault.Vault
	folder   string
	template string

	scanned     map[string]vault.ScannedNote
	scannedOnce bool
}

// New creates a planner. New notes land under folder (vault-relative, ""
// for the vault root), named by the filename template ("" for the default).
func New(database *db.DB, v *vault.Vault, folder, template string) *Planner {
	return &Planner{db: database, vault: v, folder: folder, template: template}
}

// Plan classifies each selected conversation. Selected uids with no
// matching conversation are skipped silently; the selection layer already
// treats unknown uids as no-ops.
func (p *Planner) Plan(selected []string, convs map[string]chatarchive.Conversation) (*models.Plan, error) {
	plan := &models.Plan{Items: make([]models.PlanItem, 0, len(selected))}
	for _, uid := range selected {
		c, ok := convs[uid]
		if !ok {
			continue
		}
		item, err := p.planItem(c)
		if err != nil {
			return nil, err
		}
		plan.Items = append(plan.Items, item)
	}
	return plan, nil
}

func (p *Planner) planItem(c chatarchive.Conversation) (models.PlanItem, error) {
	name, err := vault.RenderFilename(p.template, c)
	if err != nil {
		return models.PlanItem{}, err
	}

	rec, err := p.Lookup(c.UID)
	if err != nil {
		return models.PlanItem{}, err
	}

	item := models.PlanItem{UID: c.UID, Title: c.Title}
	if rec == nil {
		item.Action = models.ActionNew
		item.TargetPath = path.Join(p.folder, name)
		return item, nil
	}

	// Updates go to the note's existing path, not a re-templated one; the
	// user may have changed the template since the first import.
	item.TargetPath = rec.FilePath

	hash := vault.CanonicalHash(c.Messages)
	if rec.ContentHash != hash || c.UpdatedAt > rec.UpdatedAt {
		item.Action = models.ActionUpdate
		return item, nil
	}

	item.Action = models.ActionSkip
	item.Reason = "hash equal"
	return item, nil
}

// Lookup finds the materialization record for a uid: the durable cache
// first, then a one-time vault scan for notes carrying the identity
// marker. Returns nil when the conversation has never been written.
func (p *Planner) Lookup(uid string) (*models.Materialization, error) {
	rec, err := p.db.GetMaterialization(uid)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}

	if !p.scannedOnce {
		scanned, err := p.vault.Scan()
		if err != nil {
			return nil, fmt.Errorf("vault scan fallback: %w", err)
		}
		p.scanned = scanned
		p.scannedOnce = true
	}

	note, ok := p.scanned[uid]
	if !ok {
		return nil, nil
	}
	return &models.Materialization{
		UID:         uid,
		ContentHash: note.ContentHash,
		UpdatedAt:   note.UpdatedAt,
		FilePath:    note.RelPath,
	}, nil
}
