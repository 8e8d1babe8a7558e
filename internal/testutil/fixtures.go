package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vocuz/vocuz/internal/domain"
)

var testUserCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

func WithFullName(name string) UserOption {
	return func(u *domain.User) {
		u.FullName = name
	}
}

// NewTestUser builds a user with a unique email. The password hash is a
// placeholder and does not verify against any password.
func NewTestUser(opts ...UserOption) *domain.User {
	n := testUserCounter.Add(1)
	u := &domain.User{
		ID:           uuid.New().String(),
		Email:        fmt.Sprintf("trooper%02d@example.com", n),
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Mission options
type MissionOption func(*domain.Mission)

func WithCompleted(done bool) MissionOption {
	return func(m *domain.Mission) {
		m.IsCompleted = done
	}
}

func WithMissionCreatedAt(t time.Time) MissionOption {
	return func(m *domain.Mission) {
		m.CreatedAt = t
		m.UpdatedAt = t
	}
}

func NewTestMission(userID, title string, opts ...MissionOption) *domain.Mission {
	now := time.Now().UTC()
	m := &domain.Mission{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FocusSession options
type FocusSessionOption func(*domain.FocusSession)

func WithMissionID(id string) FocusSessionOption {
	return func(s *domain.FocusSession) {
		s.MissionID = &id
	}
}

func WithSessionCreatedAt(t time.Time) FocusSessionOption {
	return func(s *domain.FocusSession) {
		s.CreatedAt = t
	}
}

func NewTestFocusSession(userID string, mode domain.TimerMode, minutes int, opts ...FocusSessionOption) *domain.FocusSession {
	s := &domain.FocusSession{
		ID:              uuid.New().String(),
		UserID:          userID,
		Mode:            mode,
		DurationMinutes: minutes,
		IsCompleted:     true,
		CreatedAt:       time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Note options
type NoteOption func(*domain.Note)

func WithDescription(d string) NoteOption {
	return func(n *domain.Note) {
		n.Description = d
	}
}

func WithNoteCreatedAt(t time.Time) NoteOption {
	return func(n *domain.Note) {
		n.CreatedAt = t
		n.UpdatedAt = t
	}
}

func NewTestNote(userID, title string, opts ...NoteOption) *domain.Note {
	now := time.Now().UTC()
	n := &domain.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SeedUser inserts a fresh user row directly and returns it. Most stores
// reference users through a foreign key.
func SeedUser(t *testing.T, database *sql.DB, opts ...UserOption) *domain.User {
	t.Helper()
	u := NewTestUser(opts...)
	_, err := database.ExecContext(context.Background(),
		`INSERT INTO users (id, email, full_name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.FullName, u.PasswordHash, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return u
}
