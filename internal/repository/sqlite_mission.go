package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vocuz/vocuz/internal/db"
	"github.com/vocuz/vocuz/internal/domain"
)

// SQLiteMissionRepo implements MissionRepo using a SQLite database.
type SQLiteMissionRepo struct {
	db db.DBTX
}

func NewSQLiteMissionRepo(conn db.DBTX) *SQLiteMissionRepo {
	return &SQLiteMissionRepo{db: conn}
}

const missionColumns = `id, user_id, title, is_completed, created_at, updated_at`

func (r *SQLiteMissionRepo) Create(ctx context.Context, m *domain.Mission) error {
	query := `INSERT INTO missions (` + missionColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.UserID,
		m.Title,
		boolToInt(m.IsCompleted),
		formatTime(m.CreatedAt),
		formatTime(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting mission: %w", err)
	}
	return nil
}

func (r *SQLiteMissionRepo) GetByID(ctx context.Context, id string) (*domain.Mission, error) {
	query := `SELECT ` + missionColumns + ` FROM missions WHERE id = ?`
	m, err := scanMission(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("mission %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning mission: %w", err)
	}
	return m, nil
}

// Select lists missions matching filter. Ties on created_at fall back to
// insertion order.
func (r *SQLiteMissionRepo) Select(ctx context.Context, filter MissionFilter, order Order) ([]*domain.Mission, error) {
	var where []string
	var args []any
	if filter.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Completed != nil {
		where = append(where, "is_completed = ?")
		args = append(args, boolToInt(*filter.Completed))
	}

	query := `SELECT ` + missionColumns + ` FROM missions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(` ORDER BY created_at %s, rowid %s`, order.sql(), order.sql())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting missions: %w", err)
	}
	defer rows.Close()

	var missions []*domain.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mission row: %w", err)
		}
		missions = append(missions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating missions: %w", err)
	}
	return missions, nil
}

func (r *SQLiteMissionRepo) Update(ctx context.Context, id string, patch MissionPatch) error {
	if patch.Empty() {
		return nil
	}

	var sets []string
	var args []any
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.IsCompleted != nil {
		sets = append(sets, "is_completed = ?")
		args = append(args, boolToInt(*patch.IsCompleted))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(time.Now()), id)

	query := `UPDATE missions SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating mission: %w", err)
	}
	return requireAffected(res, "mission", id)
}

func (r *SQLiteMissionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM missions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting mission: %w", err)
	}
	return requireAffected(res, "mission", id)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMission(row rowScanner) (*domain.Mission, error) {
	var m domain.Mission
	var completed int
	var createdAt, updatedAt string
	if err := row.Scan(&m.ID, &m.UserID, &m.Title, &completed, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	m.IsCompleted = intToBool(completed)

	var err error
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &m, nil
}

// requireAffected maps a zero-row write to ErrNotFound.
func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}
