package api

import (
	"time"

	"github.com/vocuz/vocuz/internal/domain"
)

// Wire types shared with the remote client. Field names follow the
// snake_case columns of the stores.

type Mission struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func MissionFromDomain(m *domain.Mission) Mission {
	return Mission{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		IsCompleted: m.IsCompleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (m Mission) ToDomain() *domain.Mission {
	return &domain.Mission{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		IsCompleted: m.IsCompleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type CreateMissionRequest struct {
	Title string `json:"title"`
}

type FocusSession struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	MissionID       *string          `json:"mission_id"`
	Mode            domain.TimerMode `json:"mode"`
	DurationMinutes int              `json:"duration_minutes"`
	IsCompleted     bool             `json:"is_completed"`
	CreatedAt       time.Time        `json:"created_at"`
}

func FocusSessionFromDomain(s *domain.FocusSession) FocusSession {
	return FocusSession{
		ID:              s.ID,
		UserID:          s.UserID,
		MissionID:       s.MissionID,
		Mode:            s.Mode,
		DurationMinutes: s.DurationMinutes,
		IsCompleted:     s.IsCompleted,
		CreatedAt:       s.CreatedAt,
	}
}

func (s FocusSession) ToDomain() *domain.FocusSession {
	return &domain.FocusSession{
		ID:              s.ID,
		UserID:          s.UserID,
		MissionID:       s.MissionID,
		Mode:            s.Mode,
		DurationMinutes: s.DurationMinutes,
		IsCompleted:     s.IsCompleted,
		CreatedAt:       s.CreatedAt,
	}
}

type ModeSummary struct {
	Mode         domain.TimerMode `json:"mode"`
	SessionCount int              `json:"session_count"`
	TotalMinutes int              `json:"total_minutes"`
}

type Note struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NoteFromDomain(n *domain.Note) Note {
	return Note{
		ID:          n.ID,
		UserID:      n.UserID,
		Title:       n.Title,
		Description: n.Description,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func (n Note) ToDomain() *domain.Note {
	return &domain.Note{
		ID:          n.ID,
		UserID:      n.UserID,
		Title:       n.Title,
		Description: n.Description,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

type NoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

func UserFromDomain(u *domain.User) User {
	return User{ID: u.ID, Email: u.Email, FullName: u.FullName, CreatedAt: u.CreatedAt}
}

func (u User) ToDomain() *domain.User {
	return &domain.User{ID: u.ID, Email: u.Email, FullName: u.FullName, CreatedAt: u.CreatedAt}
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type ServiceCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string       `json:"status"`
	DB     ServiceCheck `json:"db"`
}
