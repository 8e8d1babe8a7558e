package service

import (
	"context"

	"github.com/vocuz/vocuz/internal/domain"
)

// All use cases act on behalf of the user carried by ctx (see WithUserID)
// and fail with ErrNotAuthenticated when there is none.

type MissionService interface {
	Create(ctx context.Context, title string) (*domain.Mission, error)
	GetByID(ctx context.Context, id string) (*domain.Mission, error)
	List(ctx context.Context) ([]*domain.Mission, error)
	ListPending(ctx context.Context) ([]*domain.Mission, error)
	SetCompleted(ctx context.Context, id string, done bool) error
	Toggle(ctx context.Context, id string) (*domain.Mission, error)
	Rename(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
}

type NoteService interface {
	// Save creates the note when it has no id yet and updates it otherwise.
	Save(ctx context.Context, n *domain.Note) error
	Get(ctx context.Context, id string) (*domain.Note, error)
	List(ctx context.Context) ([]*domain.Note, error)
	Delete(ctx context.Context, id string) error
}

// SessionStats summarizes focus activity over a window of days.
type SessionStats struct {
	Days              int
	ByMode            []domain.ModeSummary
	FocusMinutes      int
	CompletedMissions int
	PendingMissions   int
}

type SessionLogService interface {
	Log(ctx context.Context, s *domain.FocusSession) error
	ListRecent(ctx context.Context, days int) ([]*domain.FocusSession, error)
	ListByMission(ctx context.Context, missionID string) ([]*domain.FocusSession, error)
	Stats(ctx context.Context, days int) (*SessionStats, error)
}

// Profile is what the profile screen shows about the signed-in user.
type Profile struct {
	User  *domain.User
	Stats *SessionStats
}

type ProfileService interface {
	Get(ctx context.Context) (*Profile, error)
}
