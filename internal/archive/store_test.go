package archive

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pandaypr/ReinforcementLearning/internal/config"
	"github.com/pandaypr/ReinforcementLearning/mdp"
)

func solvedRun(t *testing.T) Run {
	t.Helper()

	cfg := config.Default()
	cfg.Rows, cfg.Cols, cfg.MagicSquares = 2, 2, nil
	m, err := cfg.GridWorld().MDP()
	if err != nil {
		t.Fatalf("mdp: %v", err)
	}
	sol, err := mdp.Solve(context.Background(), m, cfg.Options())
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	return NewRun(cfg, sol, nil)
}

func TestNewRunCapturesSolution(t *testing.T) {
	run := solvedRun(t)

	if _, err := uuid.Parse(run.ID); err != nil {
		t.Fatalf("run id is not a uuid: %v", err)
	}
	if !run.Converged || run.Error != "" {
		t.Fatalf("expected converged run, got %+v", run)
	}
	if run.Iterations != 2 || len(run.Sweeps) != 2 {
		t.Fatalf("unexpected iteration stats: %d %v", run.Iterations, run.Sweeps)
	}
	if run.Values[0] != -1 || len(run.Policy[0]) != 2 {
		t.Fatalf("unexpected solution: %v %v", run.Values, run.Policy)
	}

	failed := NewRun(config.Default(), nil, mdp.ErrNonConvergence)
	if failed.Converged || failed.Error == "" {
		t.Fatalf("expected failed run, got %+v", failed)
	}
}

func TestCodecRejectsVersionMismatch(t *testing.T) {
	run := solvedRun(t)
	run.SchemaVersion = CurrentSchemaVersion + 1

	payload, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeRun(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func testStoreRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = CloseIfSupported(store)
	})

	first := solvedRun(t)
	second := solvedRun(t)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	// Save out of order to check ListRuns sorts by creation time.
	for _, run := range []Run{second, first} {
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("save run: %v", err)
		}
	}

	loaded, ok, err := store.GetRun(ctx, first.ID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatalf("expected run %s", first.ID)
	}
	if loaded.Config.Rows != 2 || loaded.Values[0] != -1 || !loaded.Policy.Equal(first.Policy) {
		t.Fatalf("unexpected run loaded: %+v", loaded)
	}

	if _, ok, err := store.GetRun(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing run, got ok=%t err=%v", ok, err)
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != first.ID || runs[1].ID != second.ID {
		t.Fatalf("unexpected run order: %v", runs)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, NewMemoryStore())
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db")))
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	if err := store.SaveRun(context.Background(), Run{ID: "x"}); err == nil {
		t.Fatal("expected error before init")
	}
	if err := NewSQLiteStore("").Init(context.Background()); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestNewStore(t *testing.T) {
	if _, err := NewStore("postgres", ""); err == nil {
		t.Fatal("expected unsupported backend error")
	}
	store, err := NewStore("", "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}
}

func TestListRunsOrdersWithinASecond(t *testing.T) {
	base := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db")),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := store.Init(ctx); err != nil {
				t.Fatalf("init: %v", err)
			}
			t.Cleanup(func() {
				_ = CloseIfSupported(store)
			})

			// Formatted timestamps of these offsets do not sort as text.
			offsets := map[string]time.Duration{
				"c": 123 * time.Millisecond,
				"a": 0,
				"b": 120 * time.Millisecond,
			}
			for id, off := range offsets {
				run := Run{
					VersionedRecord: VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
					ID:              id,
					CreatedAt:       base.Add(off),
				}
				if err := store.SaveRun(ctx, run); err != nil {
					t.Fatalf("save run %s: %v", id, err)
				}
			}

			runs, err := store.ListRuns(ctx)
			if err != nil {
				t.Fatalf("list runs: %v", err)
			}
			var got []string
			for _, r := range runs {
				got = append(got, r.ID)
			}
			if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
				t.Fatalf("expected oldest first [a b c], got %v", got)
			}
		})
	}
}
