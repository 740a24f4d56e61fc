package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/db"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/models"
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/reconcile"
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

func testRunInfo() RunInfo {
	return RunInfo{ArchivePath: "/tmp/export.zip", Provider: "chatgpt"}
}

// eventLog records every progress event for order assertions.
type eventLog struct {
	events []Event
}

func (l *eventLog) OnEvent(ev Event) { l.events = append(l.events, ev) }

func TestRun_WritesAndRecords(t *testing.T) {
	database, v := testEnv(t)
	convs := testConvs()

	planner := reconcile.New(database, v, "AI Chats", "")
	plan, err := planner.Plan([]string{"x1", "x2"}, convs)
	if err != nil {
		t.Fatal(err)
	}

	log := &eventLog{}
	report, err := New(database, v, "").Run(context.Background(), testRunInfo(), plan, convs, log)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	written, skipped, failed := report.Counts()
	if written != 2 || skipped != 0 || failed != 0 {
		t.Fatalf("Expected 2 written, got written=%d skipped=%d failed=%d", written, skipped, failed)
	}
	if report.RunID == "" {
		t.Error("Expected a run id")
	}

	// Every written note exists and carries the identity marker.
	for _, item := range report.Items {
		content, err := os.ReadFile(v.Abs(item.Path))
		if err != nil {
			t.Fatalf("Expected note at %s: %v", item.Path, err)
		}
		meta, ok := vault.ParseNoteMeta(content)
		if !ok || meta.ChatUID != item.UID {
			t.Errorf("Note %s missing identity marker for %s", item.Path, item.UID)
		}
	}

	// Materialization records exist for both.
	for _, uid := range []string{"x1", "x2"} {
		rec, err := database.GetMaterialization(uid)
		if err != nil {
			t.Fatal(err)
		}
		if rec == nil {
			t.Fatalf("Expected a materialization for %s", uid)
		}
		if rec.ContentHash != vault.CanonicalHash(convs[uid].Messages) {
			t.Errorf("Record hash for %s does not match transcript", uid)
		}
	}

	if count, _ := database.CountRuns(); count != 1 {
		t.Errorf("Expected 1 logged run, got %d", count)
	}

	if len(log.events) == 0 {
		t.Fatal("Expected progress events")
	}
	if log.events[0].Phase != PhaseScan {
		t.Errorf("Expected first event to be scan, got %s", log.events[0].Phase)
	}
	if last := log.events[len(log.events)-1]; last.Phase != PhaseComplete {
		t.Errorf("Expected last event to be complete, got %s", last.Phase)
	}
}

func TestRun_SecondRunSkipsEverything(t *testing.T) {
	database, v := testEnv(t)
	convs := testConvs()
	exec := New(database, v, "")

	plan, err := reconcile.New(database, v, "AI Chats", "").Plan([]string{"x1", "x2"}, convs)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := exec.Run(context.Background(), testRunInfo(), plan, convs, nil); err != nil {
		t.Fatal(err)
	}

	// Re-plan against the same archive: everything is up to date.
	plan, err = reconcile.New(database, v, "AI Chats", "").Plan([]string{"x1", "x2"}, convs)
	if err != nil {
		t.Fatal(err)
	}
	newCount, updateCount, skipCount := plan.Counts()
	if newCount != 0 || updateCount != 0 || skipCount != 2 {
		t.Fatalf("Expected an all-skip plan, got new=%d update=%d skip=%d", newCount, updateCount, skipCount)
	}

	report, err := exec.Run(context.Background(), testRunInfo(), plan, convs, nil)
	if err != nil {
		t.Fatal(err)
	}
	written, skipped, failed := report.Counts()
	if written != 0 || skipped != 2 || failed != 0 {
		t.Errorf("Second run should write nothing, got written=%d skipped=%d failed=%d", written, skipped, failed)
	}
}

func TestRun_FailedItemDoesNotBlockOthers(t *testing.T) {
	database, v := testEnv(t)
	convs := testConvs()

	// x2 is planned but absent from the loaded archive, so its write fails.
	delete(convs, "x2")
	plan := &models.Plan{Items: []models.PlanItem{
		{UID: "x2", Title: "Quantum", Action: models.ActionNew, TargetPath: "AI Chats/quantum.md"},
		{UID: "x1", Title: "Recipe A", Action: models.ActionNew, TargetPath: "AI Chats/recipe.md"},
	}}

	report, err := New(database, v, "").Run(context.Background(), testRunInfo(), plan, convs, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	written, _, failed := report.Counts()
	if failed != 1 || written != 1 {
		t.Fatalf("Expected one failure and one write, got written=%d failed=%d", written, failed)
	}
	if failures := report.Failed(); len(failures) != 1 || failures[0].UID != "x2" {
		t.Errorf("Expected x2 to be the failed item, got %+v", failures)
	}

	// The failure must not leave a materialization behind.
	if rec, _ := database.GetMaterialization("x2"); rec != nil {
		t.Error("Failed item must not be recorded as materialized")
	}
	if rec, _ := database.GetMaterialization("x1"); rec == nil {
		t.Error("The healthy item should still have been written and recorded")
	}
}

func TestRun_FallbackFilename(t *testing.T) {
	database, v := testEnv(t)
	convs := testConvs()
	delete(convs, "x2")

	// A regular file squatting on the target folder makes the first write
	// fail; the fallback name at the vault root must succeed.
	if err := os.MkdirAll(v.Root, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(v.Root, "AI Chats"), []byte("in the way"), 0644); err != nil {
		t.Fatal(err)
	}

	plan := &models.Plan{Items: []models.PlanItem{
		{UID: "x1", Title: "Recipe A", Action: models.ActionNew, TargetPath: "AI Chats/recipe.md"},
	}}

	report, err := New(database, v, "").Run(context.Background(), testRunInfo(), plan, convs, nil)
	if err != nil {
		t.Fatal(err)
	}

	item := report.Items[0]
	if !item.Written || item.Err != "" {
		t.Fatalf("Expected the fallback write to succeed, got %+v", item)
	}
	if item.Path != vault.SafeFallbackName("x1") {
		t.Errorf("Expected fallback path %s, got %s", vault.SafeFallbackName("x1"), item.Path)
	}
	if _, err := os.Stat(v.Abs(item.Path)); err != nil {
		t.Errorf("Expected a note at the fallback path: %v", err)
	}

	// The record points at where the note actually is.
	rec, err := database.GetMaterialization("x1")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.FilePath != item.Path {
		t.Errorf("Expected record to carry the fallback path, got %+v", rec)
	}
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	database, v := testEnv(t)
	convs := testConvs()

	plan, err := reconcile.New(database, v, "AI Chats", "").Plan([]string{"x1", "x2"}, convs)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	log := &eventLog{}
	report, err := New(database, v, "").Run(ctx, testRunInfo(), plan, convs, log)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.Cancelled {
		t.Error("Expected the report to be marked cancelled")
	}
	if len(report.Items) != 0 {
		t.Errorf("Expected no items processed, got %d", len(report.Items))
	}
	if last := log.events[len(log.events)-1]; last.Phase != PhaseCancelled {
		t.Errorf("Expected terminal cancelled event, got %s", last.Phase)
	}

	// A cancelled run is still logged.
	if count, _ := database.CountRuns(); count != 1 {
		t.Errorf("Expected the cancelled run to be logged, got %d runs", count)
	}
}

func TestRun_ProfileTagging(t *testing.T) {
	database, v := testEnv(t)
	convs := testConvs()
	delete(convs, "x2")

	plan := &models.Plan{Items: []models.PlanItem{
		{UID: "x1", Title: "Recipe A", Action: models.ActionNew, TargetPath: "recipe.md"},
	}}
	if _, err := New(database, v, "work").Run(context.Background(), testRunInfo(), plan, convs, nil); err != nil {
		t.Fatal(err)
	}

	rec, err := database.GetMaterialization("x1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Profile != "work" {
		t.Errorf("Expected profile work, got %q", rec.Profile)
	}
}

func TestRun_LogsArchiveIdentity(t *testing.T) {
	database, v := testEnv(t)
	convs := testConvs()

	plan, err := reconcile.New(database, v, "AI Chats", "").Plan([]string{"x1", "x2"}, convs)
	if err != nil {
		t.Fatal(err)
	}

	info := RunInfo{ArchivePath: "/exports/chatgpt-2026-08.zip", Provider: "chatgpt"}
	report, err := New(database, v, "").Run(context.Background(), info, plan, convs, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.ArchivePath != info.ArchivePath || report.Provider != info.Provider {
		t.Errorf("Report missing archive identity: %+v", report)
	}

	var archivePath, provider string
	err = database.QueryRow(`SELECT archive_path, provider FROM import_log WHERE run_id = ?`, report.RunID).
		Scan(&archivePath, &provider)
	if err != nil {
		t.Fatal(err)
	}
	if archivePath != info.ArchivePath {
		t.Errorf("Expected logged archive_path %q, got %q", info.ArchivePath, archivePath)
	}
	if provider != "chatgpt" {
		t.Errorf("Expected logged provider chatgpt, got %q", provider)
	}
}

func TestRun_RecordFailureEmitsErrorEvent(t *testing.T) {
	database, v := testEnv(t)
	convs := testConvs()

	// All-skip plan, so the closed database is first touched by the run log.
	plan := &models.Plan{Items: []models.PlanItem{
		{UID: "x1", Title: "Recipe A", Action: models.ActionSkip, TargetPath: "AI Chats/recipe.md"},
	}}
	if err := database.Close(); err != nil {
		t.Fatal(err)
	}

	log := &eventLog{}
	_, err := New(database, v, "").Run(context.Background(), testRunInfo(), plan, convs, log)
	if err == nil {
		t.Fatal("Expected an executor-level error when the run cannot be logged")
	}

	if len(log.events) == 0 {
		t.Fatal("Expected progress events")
	}
	last := log.events[len(log.events)-1]
	if last.Phase != PhaseError {
		t.Errorf("Expected terminal error event, got %s", last.Phase)
	}
	if last.Err == "" {
		t.Error("Expected the error event to carry a message")
	}
	for _, ev := range log.events {
		if ev.Phase == PhaseComplete {
			t.Error("A failed run must not also report completion")
		}
	}
}
