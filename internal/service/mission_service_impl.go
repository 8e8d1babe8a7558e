package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/repository"
)

type missionService struct {
	missions repository.MissionRepo
	observer UseCaseObserver
}

func NewMissionService(missions repository.MissionRepo, observers ...UseCaseObserver) MissionService {
	return &missionService{
		missions: missions,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *missionService) Create(ctx context.Context, title string) (m *domain.Mission, err error) {
	defer observe(ctx, s.observer, "create-mission", nil)(&err)

	title, err = domain.NormalizeTitle(title)
	if err != nil {
		return nil, err
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m = &domain.Mission{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.missions.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *missionService) GetByID(ctx context.Context, id string) (*domain.Mission, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	m, err := s.missions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, notOwned("mission", id, repository.ErrNotFound)
	}
	return m, nil
}

func (s *missionService) List(ctx context.Context) ([]*domain.Mission, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.missions.Select(ctx, repository.MissionFilter{UserID: userID}, repository.OrderCreatedAsc)
}

// ListPending returns the user's open missions, oldest first.
func (s *missionService) ListPending(ctx context.Context) ([]*domain.Mission, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.missions.Select(ctx, repository.PendingFilter(userID), repository.OrderCreatedAsc)
}

func (s *missionService) SetCompleted(ctx context.Context, id string, done bool) (err error) {
	defer observe(ctx, s.observer, "set-mission-completed", map[string]any{"mission_id": id, "done": done})(&err)

	if _, err = s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.missions.Update(ctx, id, repository.MissionPatch{IsCompleted: &done})
}

func (s *missionService) Toggle(ctx context.Context, id string) (m *domain.Mission, err error) {
	defer observe(ctx, s.observer, "toggle-mission", map[string]any{"mission_id": id})(&err)

	m, err = s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.SetCompleted(!m.IsCompleted, time.Now().UTC())
	if err = s.missions.Update(ctx, id, repository.MissionPatch{IsCompleted: &m.IsCompleted}); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *missionService) Rename(ctx context.Context, id, title string) (err error) {
	defer observe(ctx, s.observer, "rename-mission", map[string]any{"mission_id": id})(&err)

	title, err = domain.NormalizeTitle(title)
	if err != nil {
		return err
	}
	if _, err = s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.missions.Update(ctx, id, repository.MissionPatch{Title: &title})
}

func (s *missionService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-mission", map[string]any{"mission_id": id})(&err)

	if _, err = s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.missions.Delete(ctx, id)
}
