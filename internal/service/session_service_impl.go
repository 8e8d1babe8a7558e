package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/repository"
)

type sessionLogService struct {
	sessions repository.FocusSessionRepo
	missions repository.MissionRepo
	observer UseCaseObserver
}

func NewSessionLogService(sessions repository.FocusSessionRepo, missions repository.MissionRepo, observers ...UseCaseObserver) SessionLogService {
	return &sessionLogService{
		sessions: sessions,
		missions: missions,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Log appends a completed interval to the user's history. The caller's mode,
// duration and mission are stored as given.
func (s *sessionLogService) Log(ctx context.Context, session *domain.FocusSession) (err error) {
	defer observe(ctx, s.observer, "log-focus-session", map[string]any{
		"mode":    string(session.Mode),
		"minutes": session.DurationMinutes,
	})(&err)

	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if session.Mode, err = domain.ParseTimerMode(string(session.Mode)); err != nil {
		return err
	}
	if session.DurationMinutes <= 0 {
		return fmt.Errorf("duration %d: %w", session.DurationMinutes, domain.ErrInvalidSettings)
	}
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	session.UserID = userID
	return s.sessions.Create(ctx, session)
}

func (s *sessionLogService) ListRecent(ctx context.Context, days int) ([]*domain.FocusSession, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.sessions.ListRecent(ctx, userID, days)
}

// ListByMission returns the user's sessions spent on one mission.
func (s *sessionLogService) ListByMission(ctx context.Context, missionID string) ([]*domain.FocusSession, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.sessions.ListByMission(ctx, missionID)
	if err != nil {
		return nil, err
	}
	own := all[:0]
	for _, fs := range all {
		if fs.UserID == userID {
			own = append(own, fs)
		}
	}
	return own, nil
}

func (s *sessionLogService) Stats(ctx context.Context, days int) (*SessionStats, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	byMode, err := s.sessions.SummaryByMode(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	missions, err := s.missions.Select(ctx, repository.MissionFilter{UserID: userID}, repository.OrderCreatedAsc)
	if err != nil {
		return nil, err
	}

	stats := &SessionStats{Days: days, ByMode: byMode}
	for _, m := range byMode {
		if m.Mode == domain.ModeFocus {
			stats.FocusMinutes = m.TotalMinutes
		}
	}
	for _, m := range missions {
		if m.IsCompleted {
			stats.CompletedMissions++
		} else {
			stats.PendingMissions++
		}
	}
	return stats, nil
}
