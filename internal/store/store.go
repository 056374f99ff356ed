// Package store records completed negotiation runs in SQLite for cross-run
// analysis.
package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/tatianab/trade-game/internal/game"
)

// Store wraps a SQLite connection holding one row per finished run.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the results database at path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		played_at TIMESTAMP NOT NULL,
		buyer_role TEXT NOT NULL,
		seller_role TEXT NOT NULL,
		iterations INTEGER NOT NULL,
		final_answer TEXT NOT NULL,
		trade TEXT NOT NULL,
		buyer_outcome REAL NOT NULL,
		seller_outcome REAL NOT NULL
	);`
	_, err := s.conn.Exec(schema)
	return err
}

// RunRecord is one completed run.
type RunRecord struct {
	ID            string    `db:"id"`
	PlayedAt      time.Time `db:"played_at"`
	BuyerRole     string    `db:"buyer_role"`
	SellerRole    string    `db:"seller_role"`
	Iterations    int       `db:"iterations"`
	FinalAnswer   string    `db:"final_answer"`
	Trade         string    `db:"trade"`
	BuyerOutcome  float64   `db:"buyer_outcome"`
	SellerOutcome float64   `db:"seller_outcome"`
}

// RecordRun extracts a record from a finished game's history and inserts it.
// A run that terminated before any proposal round stores an empty trade and
// zero outcomes. It returns the stored record.
func (s *Store) RecordRun(history []game.Snapshot, buyerRole, sellerRole string) (RunRecord, error) {
	if len(history) == 0 {
		return RunRecord{}, fmt.Errorf("record run: empty history")
	}
	end := history[len(history)-1]
	if end.Phase != game.PhaseEnd {
		return RunRecord{}, fmt.Errorf("record run: history does not end in a terminal snapshot")
	}

	rec := RunRecord{
		ID:         uuid.NewString(),
		PlayedAt:   time.Now().UTC(),
		BuyerRole:  buyerRole,
		SellerRole: sellerRole,
		Iterations: end.Iteration,
	}
	if end.Summary != nil {
		rec.FinalAnswer = string(end.Summary.FinalAnswer)
		rec.Trade = end.Summary.Trade.String()
		rec.BuyerOutcome = end.Summary.Outcome[buyerRole]
		rec.SellerOutcome = end.Summary.Outcome[sellerRole]
	}

	_, err := s.conn.NamedExec(`
		INSERT INTO runs (id, played_at, buyer_role, seller_role, iterations,
			final_answer, trade, buyer_outcome, seller_outcome)
		VALUES (:id, :played_at, :buyer_role, :seller_role, :iterations,
			:final_answer, :trade, :buyer_outcome, :seller_outcome)`,
		rec)
	if err != nil {
		return RunRecord{}, fmt.Errorf("insert run: %w", err)
	}
	return rec, nil
}

// ListRuns returns all recorded runs, newest first.
func (s *Store) ListRuns() ([]RunRecord, error) {
	var runs []RunRecord
	err := s.conn.Select(&runs, `SELECT * FROM runs ORDER BY played_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
