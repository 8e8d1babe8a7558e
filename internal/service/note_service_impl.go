package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/repository"
)

type noteService struct {
	notes    repository.NoteRepo
	observer UseCaseObserver
}

func NewNoteService(notes repository.NoteRepo, observers ...UseCaseObserver) NoteService {
	return &noteService{notes: notes, observer: useCaseObserverOrNoop(observers)}
}

func (s *noteService) Save(ctx context.Context, n *domain.Note) (err error) {
	defer observe(ctx, s.observer, "save-note", map[string]any{"new": n.ID == ""})(&err)

	if err = n.Validate(); err != nil {
		return err
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if n.ID == "" {
		n.ID = uuid.New().String()
		n.UserID = userID
		n.CreatedAt = now
		n.UpdatedAt = now
		return s.notes.Create(ctx, n)
	}

	existing, err := s.Get(ctx, n.ID)
	if err != nil {
		return err
	}
	n.UserID = existing.UserID
	n.CreatedAt = existing.CreatedAt
	n.UpdatedAt = now
	return s.notes.Update(ctx, n)
}

func (s *noteService) Get(ctx context.Context, id string) (*domain.Note, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, notOwned("note", id, repository.ErrNotFound)
	}
	return n, nil
}

func (s *noteService) List(ctx context.Context) ([]*domain.Note, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.notes.ListByUser(ctx, userID)
}

func (s *noteService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-note", map[string]any{"note_id": id})(&err)

	if _, err = s.Get(ctx, id); err != nil {
		return err
	}
	return s.notes.Delete(ctx, id)
}
