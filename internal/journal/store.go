// internal/journal/store.go
//
// Round journal: an append-only log of accepted guesses.
// It feeds the confusion matrix and recent-rounds endpoints. Sessions are
// never rebuilt from it, so scores still start at zero after a restart.

package journal

import (
	"context"
	"database/sql"

	"github.com/lci-upiiz/adivina-planeta/internal/game"
)

// Entry is one journal row.
type Entry struct {
	SessionID string `json:"sessionId"`
	Round     int    `json:"round"`
	Target    string `json:"target"`
	Guess     string `json:"guess"`
	Correct   bool   `json:"correct"`
	CreatedAt string `json:"createdAt"`
}

// Cell is one (target, guess) bucket of the confusion matrix.
type Cell struct {
	Target string `json:"target"`
	Guess  string `json:"guess"`
	Count  int    `json:"count"`
}

const defaultLimit = 50

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record appends the outcome of one submitted guess.
func (s *Store) Record(ctx context.Context, o game.Outcome) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds(session_id, round, target, guess, correct)
		 VALUES(?,?,?,?,?)`,
		o.SessionID, o.Round, o.Target, o.Guess, o.Correct,
	)
	return err
}

// Recent returns the latest entries for a session, newest first.
// A non-positive limit means 50.
func (s *Store) Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, round, target, guess, correct, created_at
		 FROM rounds
		 WHERE session_id=?
		 ORDER BY round DESC, id DESC
		 LIMIT ?`, sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.SessionID, &e.Round, &e.Target, &e.Guess, &e.Correct, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Confusion aggregates every journaled guess by (target, guess).
// The diagonal (target == guess) holds the correct answers.
func (s *Store) Confusion(ctx context.Context) ([]Cell, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT target, guess, COUNT(1)
		 FROM rounds
		 GROUP BY target, guess
		 ORDER BY target ASC, guess ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Cell{}
	for rows.Next() {
		var c Cell
		if err := rows.Scan(&c.Target, &c.Guess, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
