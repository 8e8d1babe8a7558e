package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vocuz/vocuz/internal/db"
	"github.com/vocuz/vocuz/internal/domain"
)

// SQLiteFocusSessionRepo implements FocusSessionRepo using a SQLite database.
// The table is append-only from the application's point of view.
type SQLiteFocusSessionRepo struct {
	db db.DBTX
}

func NewSQLiteFocusSessionRepo(conn db.DBTX) *SQLiteFocusSessionRepo {
	return &SQLiteFocusSessionRepo{db: conn}
}

const focusSessionColumns = `id, user_id, mission_id, mode, duration_minutes, is_completed, created_at`

func (r *SQLiteFocusSessionRepo) Create(ctx context.Context, s *domain.FocusSession) error {
	query := `INSERT INTO focus_sessions (` + focusSessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		nullableString(s.MissionID),
		string(s.Mode),
		s.DurationMinutes,
		boolToInt(s.IsCompleted),
		formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting focus session: %w", err)
	}
	return nil
}

// ListRecent returns the user's sessions from the last days, newest first.
func (r *SQLiteFocusSessionRepo) ListRecent(ctx context.Context, userID string, days int) ([]*domain.FocusSession, error) {
	query := `SELECT ` + focusSessionColumns + ` FROM focus_sessions
		WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, sinceDays(time.Now(), days))
	if err != nil {
		return nil, fmt.Errorf("listing recent focus sessions: %w", err)
	}
	defer rows.Close()
	return scanFocusSessions(rows)
}

func (r *SQLiteFocusSessionRepo) ListByMission(ctx context.Context, missionID string) ([]*domain.FocusSession, error) {
	query := `SELECT ` + focusSessionColumns + ` FROM focus_sessions
		WHERE mission_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, missionID)
	if err != nil {
		return nil, fmt.Errorf("listing focus sessions by mission: %w", err)
	}
	defer rows.Close()
	return scanFocusSessions(rows)
}

// SummaryByMode aggregates the user's sessions from the last days. Modes with
// no sessions are omitted.
func (r *SQLiteFocusSessionRepo) SummaryByMode(ctx context.Context, userID string, days int) ([]domain.ModeSummary, error) {
	query := `SELECT mode, COUNT(*), COALESCE(SUM(duration_minutes), 0)
		FROM focus_sessions
		WHERE user_id = ? AND created_at >= ? AND is_completed = 1
		GROUP BY mode
		ORDER BY CASE mode WHEN 'focus' THEN 0 WHEN 'short' THEN 1 ELSE 2 END`
	rows, err := r.db.QueryContext(ctx, query, userID, sinceDays(time.Now(), days))
	if err != nil {
		return nil, fmt.Errorf("summarizing focus sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.ModeSummary
	for rows.Next() {
		var s domain.ModeSummary
		var mode string
		if err := rows.Scan(&mode, &s.SessionCount, &s.TotalMinutes); err != nil {
			return nil, fmt.Errorf("scanning summary row: %w", err)
		}
		s.Mode = domain.TimerMode(mode)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating summary: %w", err)
	}
	return out, nil
}

func scanFocusSessions(rows *sql.Rows) ([]*domain.FocusSession, error) {
	var sessions []*domain.FocusSession
	for rows.Next() {
		var s domain.FocusSession
		var missionID sql.NullString
		var mode, createdAt string
		var completed int

		err := rows.Scan(&s.ID, &s.UserID, &missionID, &mode, &s.DurationMinutes, &completed, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scanning focus session row: %w", err)
		}
		s.MissionID = stringPtr(missionID)
		s.Mode = domain.TimerMode(mode)
		s.IsCompleted = intToBool(completed)
		if s.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating focus sessions: %w", err)
	}
	return sessions, nil
}
