package service

import (
	"context"

	"github.com/vocuz/vocuz/internal/domain"
)

// UserLookup resolves a user id to the stored account.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

const profileStatsDays = 7

type profileService struct {
	users    UserLookup
	sessions SessionLogService
}

func NewProfileService(users UserLookup, sessions SessionLogService) ProfileService {
	return &profileService{users: users, sessions: sessions}
}

func (s *profileService) Get(ctx context.Context) (*Profile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.sessions.Stats(ctx, profileStatsDays)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Stats: stats}, nil
}
