package repository

import (
	"context"

	"github.com/vocuz/vocuz/internal/domain"
)

// Order selects the creation-time sort direction of a listing.
type Order int

const (
	OrderCreatedAsc Order = iota
	OrderCreatedDesc
)

func (o Order) sql() string {
	if o == OrderCreatedDesc {
		return "DESC"
	}
	return "ASC"
}

// MissionFilter narrows a mission select. A nil Completed matches both states.
type MissionFilter struct {
	UserID    string
	Completed *bool
}

// PendingFilter selects a user's missions that are not completed.
func PendingFilter(userID string) MissionFilter {
	done := false
	return MissionFilter{UserID: userID, Completed: &done}
}

// MissionPatch carries the fields of a partial mission update. Nil fields are
// left untouched.
type MissionPatch struct {
	Title       *string `json:"title,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p MissionPatch) Empty() bool {
	return p.Title == nil && p.IsCompleted == nil
}

type MissionRepo interface {
	Create(ctx context.Context, m *domain.Mission) error
	GetByID(ctx context.Context, id string) (*domain.Mission, error)
	Select(ctx context.Context, filter MissionFilter, order Order) ([]*domain.Mission, error)
	Update(ctx context.Context, id string, patch MissionPatch) error
	Delete(ctx context.Context, id string) error
}

type FocusSessionRepo interface {
	Create(ctx context.Context, s *domain.FocusSession) error
	ListRecent(ctx context.Context, userID string, days int) ([]*domain.FocusSession, error)
	ListByMission(ctx context.Context, missionID string) ([]*domain.FocusSession, error)
	SummaryByMode(ctx context.Context, userID string, days int) ([]domain.ModeSummary, error)
}

type NoteRepo interface {
	Create(ctx context.Context, n *domain.Note) error
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Note, error)
	Update(ctx context.Context, n *domain.Note) error
	Delete(ctx context.Context, id string) error
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type TokenRepo interface {
	Create(ctx context.Context, t *domain.AuthToken) error
	Get(ctx context.Context, token string) (*domain.AuthToken, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
