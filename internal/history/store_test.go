package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	mdwlog "github.com/msto63/khamseena/foundation/core/log"
	"github.com/msto63/khamseena/foundation/khamseena"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func compileRun(t *testing.T, path, source string) *Run {
	t.Helper()
	engine := khamseena.NewEngine(khamseena.Options{Logger: mdwlog.Discard()})
	result, err := engine.Compile(source)
	return FromResult(path, source, result, err)
}

func TestFromResult(t *testing.T) {
	run := compileRun(t, "ok.kh", "count x = 1;\nserve x;\n")
	if run.ID == "" || len(run.SourceHash) != 64 {
		t.Errorf("run id %q hash %q", run.ID, run.SourceHash)
	}
	if !run.Success || run.Stage != "complete" || run.Tokens != 9 || len(run.Diagnostics) != 0 {
		t.Errorf("run = %+v", run)
	}

	run = compileRun(t, "bad.kh", "count x = ;\nserve y;\ntaste (1) { }\n")
	if run.Success || run.ParseErrors != 1 || run.Errors != 1 || run.Warnings != 1 {
		t.Fatalf("run = %+v", run)
	}
	kinds := []DiagnosticKind{KindParse, KindError, KindWarning}
	for i, want := range kinds {
		if run.Diagnostics[i].Kind != want {
			t.Errorf("diagnostic %d kind = %s, want %s", i, run.Diagnostics[i].Kind, want)
		}
	}

	run = compileRun(t, "lex.kh", "serve @;")
	if run.Success || run.Stage != "lexical" || len(run.Diagnostics) != 1 || run.Diagnostics[0].Kind != KindFatal {
		t.Errorf("run = %+v", run)
	}
}

func TestStore_RecordAndGet(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			run := compileRun(t, "bad.kh", "count x = ;\nserve y;\n")
			if err := store.Record(ctx, run); err != nil {
				t.Fatalf("Record() error = %v", err)
			}

			got, err := store.Get(ctx, run.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Path != "bad.kh" || got.Success || got.ParseErrors != 1 || got.Errors != 1 {
				t.Errorf("Get() = %+v", got)
			}
			if !got.Timestamp.Equal(run.Timestamp) || got.Duration != run.Duration || got.SourceHash != run.SourceHash {
				t.Errorf("Get() metadata = %+v, want %+v", got, run)
			}
			if len(got.Diagnostics) != 2 || got.Diagnostics[1] != run.Diagnostics[1] {
				t.Errorf("diagnostics = %+v, want %+v", got.Diagnostics, run.Diagnostics)
			}

			if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
			}
			if err := store.Record(ctx, run); err == nil {
				t.Error("recording the same id twice should fail")
			}
		})
	}
}

func TestStore_ListAndStats(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			runs := []*Run{
				{Path: "a.kh", Stage: "complete", Success: true, Timestamp: base},
				{Path: "b.kh", Stage: "lexical", Timestamp: base.Add(time.Minute)},
				{Path: "a.kh", Stage: "complete", Timestamp: base.Add(2 * time.Minute)},
				{Path: "a.kh", Stage: "complete", Success: true, Timestamp: base.Add(3 * time.Minute)},
			}
			for _, run := range runs {
				if err := store.Record(ctx, run); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}

			tests := []struct {
				name   string
				filter Filter
				want   []string
			}{
				{"all newest first", Filter{}, []string{runs[3].ID, runs[2].ID, runs[1].ID, runs[0].ID}},
				{"by path", Filter{Path: "a.kh"}, []string{runs[3].ID, runs[2].ID, runs[0].ID}},
				{"failed only", Filter{FailedOnly: true}, []string{runs[2].ID, runs[1].ID}},
				{"since", Filter{Since: base.Add(90 * time.Second)}, []string{runs[3].ID, runs[2].ID}},
				{"limit", Filter{Limit: 1}, []string{runs[3].ID}},
				{"offset", Filter{Offset: 3}, []string{runs[0].ID}},
				{"limit and offset", Filter{Limit: 2, Offset: 1}, []string{runs[2].ID, runs[1].ID}},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := store.List(ctx, tt.filter)
					if err != nil {
						t.Fatalf("List() error = %v", err)
					}
					if len(got) != len(tt.want) {
						t.Fatalf("List() returned %d runs, want %d", len(got), len(tt.want))
					}
					for i, run := range got {
						if run.ID != tt.want[i] {
							t.Errorf("run %d = %s (%s), want %s", i, run.ID, run.Path, tt.want[i])
						}
					}
				})
			}

			stats, err := store.Stats(ctx)
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if stats.TotalRuns != 4 || stats.FailedRuns != 2 {
				t.Errorf("Stats() = %+v", stats)
			}
			if stats.ByStage["complete"] != 3 || stats.ByStage["lexical"] != 1 {
				t.Errorf("ByStage = %v", stats.ByStage)
			}
			if !stats.LastRun.Equal(runs[3].Timestamp) {
				t.Errorf("LastRun = %v, want %v", stats.LastRun, runs[3].Timestamp)
			}
		})
	}
}

func TestStore_Prune(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			old := &Run{Path: "old.kh", Stage: "complete", Timestamp: time.Now().Add(-48 * time.Hour),
				Diagnostics: []Diagnostic{{Kind: KindWarning, Line: 1, Column: 1, Message: "w"}}}
			fresh := &Run{Path: "new.kh", Stage: "complete", Success: true}
			for _, run := range []*Run{old, fresh} {
				if err := store.Record(ctx, run); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}

			deleted, err := store.Prune(ctx, 24*time.Hour)
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if deleted != 1 {
				t.Errorf("Prune() = %d, want 1", deleted)
			}
			if _, err := store.Get(ctx, old.ID); !errors.Is(err, ErrNotFound) {
				t.Errorf("old run still present: %v", err)
			}
			if _, err := store.Get(ctx, fresh.ID); err != nil {
				t.Errorf("fresh run missing: %v", err)
			}
			if err := store.Vacuum(ctx); err != nil {
				t.Errorf("Vacuum() error = %v", err)
			}
		})
	}
}
