package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/luca-patrignani/pushfold/domain/grid"
	"github.com/luca-patrignani/pushfold/domain/quiz"
	"github.com/luca-patrignani/pushfold/domain/scenario"
	"github.com/luca-patrignani/pushfold/store"
	"github.com/luca-patrignani/pushfold/store/storetest"
)

func openTempStore(t *testing.T, opts ...store.Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pushfold.db")
	s, err := Open(context.Background(), path, opts...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return s
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T, preset bool) store.Store {
		return openTempStore(t, store.WithPreset(preset))
	})
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pushfold.db")
	s, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	r := grid.ParseRange("55+,A9s+")
	if _, err := s.Save(ctx, "4-CO-20bb", r); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	ranges, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ranges["4-CO-20bb"] != r {
		t.Fatalf("range lost across reopen: %v", ranges["4-CO-20bb"].Labels())
	}
}

func TestCorruptRangeFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	s := openTempStore(t)
	if _, err := s.Save(ctx, "4-CO-20bb", grid.ParseRange("AA")); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"4-CO-20bb", store.PresetContext.Key()} {
		if _, err := s.sqlDB.ExecContext(ctx, `UPDATE ranges SET flags = ? WHERE context_key = ?`, "[true,false", key); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.sqlDB.ExecContext(ctx, `INSERT INTO ranges (context_key, flags, updated_at) VALUES ('6-BB-5bb', '[]', 0)`); err != nil {
		t.Fatal(err)
	}

	ranges, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("corrupt data must not surface as an error: %v", err)
	}
	if _, ok := ranges["4-CO-20bb"]; ok {
		t.Fatal("corrupt range should be dropped, leaving an all-fold default")
	}
	if _, ok := ranges["6-BB-5bb"]; ok {
		t.Fatal("range with an invalid key should be skipped")
	}
	if ranges[store.PresetContext.Key()] != store.Preset() {
		t.Fatal("corrupt preset row should fall back to the preset")
	}
}

func TestShortRangeIsCorrupt(t *testing.T) {
	ctx := context.Background()
	s := openTempStore(t, store.WithPreset(false))
	if _, err := s.Save(ctx, "9-SB-5bb", grid.ParseRange("KK")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.sqlDB.ExecContext(ctx, `UPDATE ranges SET flags = '[true]'`); err != nil {
		t.Fatal(err)
	}
	ranges, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 0 {
		t.Fatalf("expected the short range to be dropped, got %d ranges", len(ranges))
	}
}

func TestCorruptResultsAreEmpty(t *testing.T) {
	ctx := context.Background()
	s := openTempStore(t)
	r := quiz.Result{
		Correct:       true,
		UserAction:    scenario.Push,
		CorrectAction: scenario.Push,
		HandLabel:     "AA",
		ScenarioKey:   "6-BTN-10bb",
		Timestamp:     time.Now(),
	}
	if err := s.AppendResult(ctx, r); err != nil {
		t.Fatal(err)
	}
	if _, err := s.sqlDB.ExecContext(ctx, `UPDATE results SET user_action = 'Raise'`); err != nil {
		t.Fatal(err)
	}
	results, err := s.LoadResults(ctx)
	if err != nil {
		t.Fatalf("decode failure must be swallowed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected an empty log, got %d results", len(results))
	}
}

func TestExtractUp(t *testing.T) {
	got := extractUp("-- +migrate Up\nCREATE TABLE a (x INTEGER);\n-- +migrate Down\nDROP TABLE a;\n")
	if got != "\nCREATE TABLE a (x INTEGER);\n" {
		t.Fatalf("unexpected up section %q", got)
	}
	if got := extractUp("SELECT 1;"); got != "SELECT 1;" {
		t.Fatalf("expected content without markers unchanged, got %q", got)
	}
}
