// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/playbymail/nixdiff/internal/results"
	"github.com/playbymail/nixdiff/internal/stores/sqlite"
)

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nixdiff.db")
	ctx := context.Background()

	if err := sqlite.Create(path, ctx); err != nil {
		t.Fatalf("create: %v", err)
	}
	// creating twice must fail
	if err := sqlite.Create(path, ctx); err == nil {
		t.Fatalf("create: expected error for existing database, got nil")
	}

	store, err := sqlite.Open(path, ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	const runId = "0c6af544-9be9-4bb6-a1a5-b401cfb9cd83"
	if err := store.CreateRun(runId, "/work", "/home/user"); err != nil {
		t.Fatalf("create run: %v", err)
	}
	if err := store.RecordResult(runId, "a.nix", "hash-a", results.Equal, ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.RecordResult(runId, "b.nix", "hash-b", results.Mismatch, "path: want x, got y"); err != nil {
		t.Fatalf("record: %v", err)
	}
	// duplicate path in the same run must fail
	if err := store.RecordResult(runId, "a.nix", "hash-a", results.Equal, ""); err == nil {
		t.Errorf("record: expected error for duplicate path, got nil")
	}
	if err := store.FinishRun(runId); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	run, err := store.GetRun(runId)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if run.FinishedAt == "" {
		t.Errorf("get run: want finished timestamp, got empty")
	}

	list, err := store.ListResults(runId)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list results: want 2, got %d", len(list))
	}
	if list[0].Path != "a.nix" || list[0].Outcome != results.Equal {
		t.Errorf("list results: unexpected first row %v %v", list[0].Path, list[0].Outcome)
	}
	if list[1].Path != "b.nix" || list[1].Outcome != results.Mismatch {
		t.Errorf("list results: unexpected second row %v %v", list[1].Path, list[1].Outcome)
	}

	summary, err := store.SummarizeRun(runId)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary[results.Equal] != 1 || summary[results.Mismatch] != 1 {
		t.Errorf("summarize: unexpected counts %v", summary)
	}
}
