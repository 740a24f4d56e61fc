package reconcile

import (
	"path/filepath"
	"testing"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/db"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/models"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/vault"
	"github.com/woodae99/nexus-ai-chat-importer/pkg/chatarchive"
)

func testEnv(t *testing.T) (*db.DB, *vault.Vault) {
	t.Helper()
	dir := t.TempDir()
	database, err := db.New(filepath.Join(dir, "nexus.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database, vault.New(filepath.Join(dir, "vault"))
}

func testConvs() map[string]chatarchive.Conversation {
	return map[string]chatarchive.Conversation{
		"x1": {
			UID: "x1", Provider: "chatgpt", Title: "Recipe A",
			CreatedAt: 50_000, UpdatedAt: 100_000,
			Messages: []chatarchive.Message{
				{Role: "user", Text: "How do I make bread?"},
				{Role: "assistant", Text: "Mix flour and water."},
			},
		},
		"x2": {
			UID: "x2", Provider: "chatgpt", Title: "Quantum",
			CreatedAt: 150_000, UpdatedAt: 200_000,
			Messages: []chatarchive.Message{
				{Role: "user", Text: "Explain entanglement"},
			},
		},
	}
}

func TestPlan_FreshVaultAllNew(t *testing.T) {
	database, v := testEnv(t)
	p := New(database, v, "AI Chats", "")

	plan, err := p.Plan([]string{"x1", "x2"}, testConvs())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(plan.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(plan.Items))
	}
	for _, item := range plan.Items {
		if item.Action != models.ActionNew {
			t.Errorf("Expected %s to be new, got %s", item.UID, item.Action)
		}
		if filepath.Dir(item.TargetPath) != "AI Chats" {
			t.Errorf("Expected target under AI Chats, got %s", item.TargetPath)
		}
	}
}

func TestPlan_RerunSkips(t *testing.T) {
	database, v := testEnv(t)
	convs := testConvs()

	c := convs["x1"]
	rec := &models.Materialization{
		UID:         "x1",
		ContentHash: vault.CanonicalHash(c.Messages),
		UpdatedAt:   c.UpdatedAt,
		FilePath:    "AI Chats/recipe.md",
	}
	if err := database.PutMaterialization(rec); err != nil {
		t.Fatal(err)
	}

	p := New(database, v, "AI Chats", "")
	plan, err := p.Plan([]string{"x1"}, convs)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	item := plan.Items[0]
	if item.Action != models.ActionSkip {
		t.Fatalf("Expected skip for an unchanged conversation, got %s", item.Action)
	}
	if item.Reason != "hash equal" {
		t.Errorf("Expected reason 'hash equal', got %q", item.Reason)
	}
}

func TestPlan_NewerArchiveUpdates(t *testing.T) {
	database, v := testEnv(t)
	convs := testConvs()

	c := convs["x1"]
	rec := &models.Materialization{
		UID:         "x1",
		ContentHash: vault.CanonicalHash(c.Messages),
		UpdatedAt:   c.UpdatedAt - 1, // stored state predates the archive
		FilePath:    "AI Chats/recipe.md",
	}
	if err := database.PutMaterialization(rec); err != nil {
		t.Fatal(err)
	}

	p := New(database, v, "AI Chats", "")
	plan, err := p.Plan([]string{"x1"}, convs)
	if err != nil {
		t.Fatal(err)
	}
	item := plan.Items[0]
	if item.Action != models.ActionUpdate {
		t.Fatalf("Expected update for a newer archive record, got %s", item.Action)
	}
	if item.TargetPath != "AI Chats/recipe.md" {
		t.Errorf("Updates must reuse the existing path, got %s", item.TargetPath)
	}
}

func TestPlan_ChangedHashUpdates(t *testing.T) {
	database, v := testEnv(t)
	convs := testConvs()

	rec := &models.Materialization{
		UID:         "x1",
		ContentHash: "stale-hash",
		UpdatedAt:   convs["x1"].UpdatedAt, // same timestamp, different content
		FilePath:    "AI Chats/recipe.md",
	}
	if err := database.PutMaterialization(rec); err != nil {
		t.Fatal(err)
	}

	p := New(database, v, "AI Chats", "")
	plan, err := p.Plan([]string{"x1"}, convs)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Items[0].Action != models.ActionUpdate {
		t.Errorf("Expected update on hash change, got %s", plan.Items[0].Action)
	}
}

func TestPlan_VaultScanFallback(t *testing.T) {
	database, v := testEnv(t)
	convs := testConvs()

	// The note exists in the vault but the cache has no record of it, as
	// after a deleted or moved database.
	content, err := vault.RenderNote(convs["x1"])
	if err != nil {
		t.Fatal(err)
	}
	if err := v.WriteNote("AI Chats/recipe.md", content); err != nil {
		t.Fatal(err)
	}

	p := New(database, v, "AI Chats", "")
	plan, err := p.Plan([]string{"x1", "x2"}, convs)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	byUID := map[string]models.PlanItem{}
	for _, item := range plan.Items {
		byUID[item.UID] = item
	}
	if byUID["x1"].Action != models.ActionSkip {
		t.Errorf("Expected scan-recovered x1 to skip, got %s", byUID["x1"].Action)
	}
	if byUID["x2"].Action != models.ActionNew {
		t.Errorf("Expected x2 to stay new, got %s", byUID["x2"].Action)
	}
}

func TestPlan_UnknownSelectedUID(t *testing.T) {
	database, v := testEnv(t)
	p := New(database, v, "", "")

	plan, err := p.Plan([]string{"x1", "ghost"}, testConvs())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(plan.Items) != 1 || plan.Items[0].UID != "x1" {
		t.Errorf("Expected ghost uid dropped from the plan, got %+v", plan.Items)
	}
}

func TestStatusOf(t *testing.T) {
	rec := &models.Materialization{UID: "a", UpdatedAt: 100}
	ignores := map[string]bool{"a": true}

	tests := []struct {
		name             string
		ignores          map[string]bool
		rec              *models.Materialization
		archiveUpdatedAt int64
		want             models.Status
	}{
		{"ignored beats everything", ignores, rec, 200, models.StatusIgnored},
		{"no record is new", nil, nil, 200, models.StatusNew},
		{"newer archive is updated", nil, rec, 200, models.StatusUpdated},
		{"same timestamp is imported", nil, rec, 100, models.StatusImported},
		{"older archive is imported", nil, rec, 50, models.StatusImported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf("a", tt.ignores, tt.rec, tt.archiveUpdatedAt); got != tt.want {
				t.Errorf("StatusOf() = %s, want %s", got, tt.want)
			}
		})
	}
}
