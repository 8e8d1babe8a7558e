// Package auth signs users up and in against the local store and keeps the
// CLI's bearer credentials on disk.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vocuz/vocuz/internal/db"
	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when the email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidToken is returned for unknown or expired bearer tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrWeakPassword is returned when the password is shorter than MinPasswordLen.
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	// ErrInvalidEmail is returned for addresses that do not parse.
	ErrInvalidEmail = errors.New("invalid email address")
)

const (
	MinPasswordLen  = 6
	DefaultTokenTTL = 30 * 24 * time.Hour
)

// Session is the result of a successful sign-up or sign-in.
type Session struct {
	Token     string       `json:"token" yaml:"token"`
	User      *domain.User `json:"-" yaml:"-"`
	ExpiresAt time.Time    `json:"expires_at" yaml:"expires_at"`
}

// SignUpInput carries the fields of the sign-up form.
type SignUpInput struct {
	Email    string
	Password string
	FullName string
}

// Authenticator is implemented by the local Service and by the remote
// client, so the CLI does not care which backend it talks to.
type Authenticator interface {
	SignUp(ctx context.Context, in SignUpInput) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Service authenticates against the SQLite user and token tables.
type Service struct {
	users    repository.UserRepo
	tokens   repository.TokenRepo
	uow      db.UnitOfWork
	cost     int
	tokenTTL time.Duration
	now      func() time.Time
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) { s.tokenTTL = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(users repository.UserRepo, tokens repository.TokenRepo, uow db.UnitOfWork, opts ...Option) *Service {
	s := &Service{
		users:    users,
		tokens:   tokens,
		uow:      uow,
		cost:     bcrypt.DefaultCost,
		tokenTTL: DefaultTokenTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUp creates the account and its first token in one transaction.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*Session, error) {
	email, err := validateEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < MinPasswordLen {
		return nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}

	var session *Session
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteUserRepo(tx).Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrEmailTaken
			}
			return err
		}
		var err error
		session, err = s.issue(ctx, repository.NewSQLiteTokenRepo(tx), user, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, s.tokens, user, s.now().UTC())
}

// SignOut revokes token. Unknown tokens are not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.tokens.Delete(ctx, token)
}

func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	t, err := s.tokens.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if t.Expired(s.now()) {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetByID(ctx, t.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// PruneExpired removes expired tokens and reports how many were dropped.
func (s *Service) PruneExpired(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx)
}

func (s *Service) issue(ctx context.Context, tokens repository.TokenRepo, user *domain.User, now time.Time) (*Session, error) {
	raw, err := newToken()
	if err != nil {
		return nil, err
	}
	t := &domain.AuthToken{
		Token:     raw,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := tokens.Create(ctx, t); err != nil {
		return nil, err
	}
	return &Session{Token: raw, User: user, ExpiresAt: t.ExpiresAt}, nil
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func validateEmail(email string) (string, error) {
	email = domain.NormalizeEmail(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
