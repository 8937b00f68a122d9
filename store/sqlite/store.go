// Package sqlite provides a SQLite-backed store.Store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/luca-patrignani/pushfold/domain/grid"
	"github.com/luca-patrignani/pushfold/domain/quiz"
	"github.com/luca-patrignani/pushfold/domain/scenario"
	"github.com/luca-patrignani/pushfold/domain/table"
	"github.com/luca-patrignani/pushfold/store"
	"github.com/luca-patrignani/pushfold/store/sqlite/migrations"
)

// Store persists ranges and results in SQLite.
type Store struct {
	sqlDB  *sql.DB
	logger *slog.Logger
	preset bool
}

var _ store.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the database at path and applies the embedded migrations.
func Open(ctx context.Context, path string, opts ...store.Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	o := store.Resolve(opts...)
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps writes serialized.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, logger: o.Logger, preset: o.Preset}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// LoadAll returns the stored ranges. Rows that fail to decode fall back to
// their default value: the preset for the preset context, all-fold otherwise.
func (s *Store) LoadAll(ctx context.Context) (store.Ranges, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT context_key, flags FROM ranges`)
	if err != nil {
		return nil, fmt.Errorf("load ranges: %w", err)
	}
	defer rows.Close()

	out := make(store.Ranges)
	stored := 0
	for rows.Next() {
		var key, flags string
		if err := rows.Scan(&key, &flags); err != nil {
			return nil, fmt.Errorf("scan range: %w", err)
		}
		stored++
		if _, err := table.ParseKey(key); err != nil {
			s.logger.Warn("skipping range with invalid key", "key", key, "error", err)
			continue
		}
		var r grid.Range
		if err := json.Unmarshal([]byte(flags), &r); err != nil {
			s.logger.Warn("replacing undecodable range with its default", "key", key, "error", err)
			if d, ok := store.Defaults(s.preset)[key]; ok {
				out[key] = d
			}
			continue
		}
		out[key] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ranges: %w", err)
	}
	if stored == 0 {
		return store.Defaults(s.preset), nil
	}
	return out, nil
}

// Save upserts r under key. The first Save also persists the defaults.
func (s *Store) Save(ctx context.Context, key string, r grid.Range) (store.Ranges, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if err := store.CheckKey(key); err != nil {
		return nil, fmt.Errorf("save range: %w", err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM ranges`).Scan(&count); err != nil {
		return nil, fmt.Errorf("count ranges: %w", err)
	}
	now := toMillis(time.Now())
	if count == 0 {
		for k, d := range store.Defaults(s.preset) {
			if err := upsert(ctx, tx, k, d, now); err != nil {
				return nil, err
			}
		}
	}
	if err := upsert(ctx, tx, key, r, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save: %w", err)
	}
	s.logger.Debug("range saved", "key", key, "hands", r.Count())
	return s.LoadAll(ctx)
}

func upsert(ctx context.Context, tx *sql.Tx, key string, r grid.Range, now int64) error {
	flags, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode range %s: %w", key, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO ranges (context_key, flags, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(context_key) DO UPDATE SET flags = excluded.flags, updated_at = excluded.updated_at`,
		key, string(flags), now,
	)
	if err != nil {
		return fmt.Errorf("save range %s: %w", key, err)
	}
	return nil
}

func (s *Store) ResetAll(ctx context.Context) (store.Ranges, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM ranges`); err != nil {
		return nil, fmt.Errorf("reset ranges: %w", err)
	}
	s.logger.Info("ranges reset")
	return store.Defaults(s.preset), nil
}

// AppendResult inserts r and trims the log to its newest quiz.MaxResults rows.
func (s *Store) AppendResult(ctx context.Context, r quiz.Result) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append result: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	correct := 0
	if r.Correct {
		correct = 1
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO results (correct, user_action, correct_action, hand_label, scenario_key, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		correct, string(r.UserAction), string(r.CorrectAction), r.HandLabel, r.ScenarioKey, toMillis(r.Timestamp),
	); err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM results WHERE id NOT IN (SELECT id FROM results ORDER BY id DESC LIMIT ?)`,
		quiz.MaxResults,
	); err != nil {
		return fmt.Errorf("trim results: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append result: %w", err)
	}
	return nil
}

// LoadResults returns the log oldest first. If any row fails to decode the
// whole log is treated as empty.
func (s *Store) LoadResults(ctx context.Context) ([]quiz.Result, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT correct, user_action, correct_action, hand_label, scenario_key, created_at
		   FROM results
		  ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	defer rows.Close()

	results := []quiz.Result{}
	for rows.Next() {
		var (
			correct   int
			user      string
			want      string
			r         quiz.Result
			createdAt int64
		)
		if err := rows.Scan(&correct, &user, &want, &r.HandLabel, &r.ScenarioKey, &createdAt); err != nil {
			s.logger.Warn("discarding undecodable result log", "error", err)
			return []quiz.Result{}, nil
		}
		r.Correct = correct != 0
		r.UserAction = scenario.Action(user)
		r.CorrectAction = scenario.Action(want)
		r.Timestamp = fromMillis(createdAt)
		if !validAction(r.UserAction) || !validAction(r.CorrectAction) {
			s.logger.Warn("discarding undecodable result log", "user_action", user, "correct_action", want)
			return []quiz.Result{}, nil
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

func validAction(a scenario.Action) bool {
	return a == scenario.Push || a == scenario.Fold
}
