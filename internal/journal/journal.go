// internal/journal/journal.go
//
// Outcome journal: one row per confirmed session, so whoever set up the puzzle can
// see how it went. It never restores puzzle progress.

package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kurt-jhaive/valentine-puzzle/assets"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/session"
)

// tsLayout is fixed-width so timestamps sort as text.
const tsLayout = "2006-01-02T15:04:05.000Z07:00"

// Entry is a stored outcome.
type Entry struct {
	SessionID       string    `json:"sessionId"`
	WrongAttempts   int       `json:"wrongAttempts"`
	GaveUp          bool      `json:"gaveUp"`
	ConfirmAttempts int       `json:"confirmAttempts"`
	StartedAt       time.Time `json:"startedAt"`
	ConfirmedAt     time.Time `json:"confirmedAt"`
	ElapsedMs       int64     `json:"elapsedMs"`
}

// Journal wraps the outcomes table.
type Journal struct{ db *sql.DB }

// Open opens the database at dsn and applies the embedded migrations.
func Open(dsn string) (*Journal, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	mig, err := assets.Migrations()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrate(db, mig); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the database.
func (j *Journal) Close() error { return j.db.Close() }

// Record inserts an outcome. A second outcome for the same session is ignored.
func (j *Journal) Record(ctx context.Context, o session.Outcome) error {
	_, err := j.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO outcomes
            (session_id, wrong_attempts, gave_up, confirm_attempts, started_at, confirmed_at, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.SessionID, o.WrongAttempts, o.GaveUp, o.ConfirmAttempts,
		o.StartedAt.UTC().Format(tsLayout),
		o.ConfirmedAt.UTC().Format(tsLayout),
		o.Elapsed().Milliseconds(),
	)
	return err
}

// Recent returns the newest outcomes first. The default limit is 20.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx, `
        SELECT session_id, wrong_attempts, gave_up, confirm_attempts, started_at, confirmed_at, elapsed_ms
        FROM outcomes
        ORDER BY confirmed_at DESC, session_id ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e                  Entry
			started, confirmed string
		)
		if err := rows.Scan(&e.SessionID, &e.WrongAttempts, &e.GaveUp, &e.ConfirmAttempts,
			&started, &confirmed, &e.ElapsedMs); err != nil {
			return nil, err
		}
		e.StartedAt = mustParse(started)
		e.ConfirmedAt = mustParse(confirmed)
		out = append(out, e)
	}
	return out, rows.Err()
}

// mustParse parses stored timestamps; on error returns zero time.
func mustParse(s string) time.Time {
	t, _ := time.Parse(tsLayout, s)
	return t
}
