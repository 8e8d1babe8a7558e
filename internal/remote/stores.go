package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vocuz/vocuz/internal/api"
	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/repository"
)

// The server scopes every listing to the token's user, so the userID
// arguments of the repository interfaces are not sent.

type MissionStore struct{ c *Client }

var _ repository.MissionRepo = (*MissionStore)(nil)

// Create posts the title and copies the server's record into m.
func (s *MissionStore) Create(ctx context.Context, m *domain.Mission) error {
	var out api.Mission
	if err := s.c.do(ctx, http.MethodPost, "/missions", "", api.CreateMissionRequest{Title: m.Title}, &out); err != nil {
		return err
	}
	*m = *out.ToDomain()
	return nil
}

func (s *MissionStore) GetByID(ctx context.Context, id string) (*domain.Mission, error) {
	var out api.Mission
	if err := s.c.do(ctx, http.MethodGet, "/missions/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return out.ToDomain(), nil
}

func (s *MissionStore) Select(ctx context.Context, filter repository.MissionFilter, order repository.Order) ([]*domain.Mission, error) {
	q := url.Values{}
	if filter.Completed != nil {
		q.Set("is_completed", strconv.FormatBool(*filter.Completed))
	}
	if order == repository.OrderCreatedDesc {
		q.Set("order", "desc")
	}
	path := "/missions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []api.Mission
	if err := s.c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	ms := make([]*domain.Mission, 0, len(out))
	for _, m := range out {
		ms = append(ms, m.ToDomain())
	}
	return ms, nil
}

func (s *MissionStore) Update(ctx context.Context, id string, patch repository.MissionPatch) error {
	if patch.Empty() {
		return nil
	}
	return s.c.do(ctx, http.MethodPatch, "/missions/"+url.PathEscape(id), "", patch, nil)
}

func (s *MissionStore) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/missions/"+url.PathEscape(id), "", nil, nil)
}

type FocusSessionStore struct{ c *Client }

var _ repository.FocusSessionRepo = (*FocusSessionStore)(nil)

func (s *FocusSessionStore) Create(ctx context.Context, fs *domain.FocusSession) error {
	var out api.FocusSession
	if err := s.c.do(ctx, http.MethodPost, "/focus_sessions", "", api.FocusSessionFromDomain(fs), &out); err != nil {
		return err
	}
	*fs = *out.ToDomain()
	return nil
}

func (s *FocusSessionStore) ListRecent(ctx context.Context, _ string, days int) ([]*domain.FocusSession, error) {
	return s.list(ctx, "/focus_sessions?days="+strconv.Itoa(days))
}

func (s *FocusSessionStore) ListByMission(ctx context.Context, missionID string) ([]*domain.FocusSession, error) {
	return s.list(ctx, "/focus_sessions?mission_id="+url.QueryEscape(missionID))
}

func (s *FocusSessionStore) SummaryByMode(ctx context.Context, _ string, days int) ([]domain.ModeSummary, error) {
	var out []api.ModeSummary
	if err := s.c.do(ctx, http.MethodGet, "/focus_sessions/summary?days="+strconv.Itoa(days), "", nil, &out); err != nil {
		return nil, err
	}
	sums := make([]domain.ModeSummary, 0, len(out))
	for _, m := range out {
		sums = append(sums, domain.ModeSummary{Mode: m.Mode, SessionCount: m.SessionCount, TotalMinutes: m.TotalMinutes})
	}
	return sums, nil
}

func (s *FocusSessionStore) list(ctx context.Context, path string) ([]*domain.FocusSession, error) {
	var out []api.FocusSession
	if err := s.c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	sessions := make([]*domain.FocusSession, 0, len(out))
	for _, fs := range out {
		sessions = append(sessions, fs.ToDomain())
	}
	return sessions, nil
}

type NoteStore struct{ c *Client }

var _ repository.NoteRepo = (*NoteStore)(nil)

func (s *NoteStore) Create(ctx context.Context, n *domain.Note) error {
	var out api.Note
	req := api.NoteRequest{Title: n.Title, Description: n.Description}
	if err := s.c.do(ctx, http.MethodPost, "/notes", "", req, &out); err != nil {
		return err
	}
	*n = *out.ToDomain()
	return nil
}

func (s *NoteStore) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	var out api.Note
	if err := s.c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return out.ToDomain(), nil
}

func (s *NoteStore) ListByUser(ctx context.Context, _ string) ([]*domain.Note, error) {
	var out []api.Note
	if err := s.c.do(ctx, http.MethodGet, "/notes", "", nil, &out); err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(out))
	for _, n := range out {
		notes = append(notes, n.ToDomain())
	}
	return notes, nil
}

func (s *NoteStore) Update(ctx context.Context, n *domain.Note) error {
	var out api.Note
	req := api.NoteRequest{Title: n.Title, Description: n.Description}
	if err := s.c.do(ctx, http.MethodPatch, "/notes/"+url.PathEscape(n.ID), "", req, &out); err != nil {
		return err
	}
	n.UpdatedAt = out.UpdatedAt
	return nil
}

func (s *NoteStore) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), "", nil, nil)
}
