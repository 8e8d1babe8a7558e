package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vocuz/vocuz/internal/api"
	"github.com/vocuz/vocuz/internal/auth"
	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/repository"
)

var _ auth.Authenticator = (*Client)(nil)

func (c *Client) SignUp(ctx context.Context, in auth.SignUpInput) (*auth.Session, error) {
	var out api.SessionResponse
	req := api.SignUpRequest{Email: in.Email, Password: in.Password, FullName: in.FullName}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", req, &out); err != nil {
		return nil, err
	}
	return c.adopt(out), nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	var out api.SessionResponse
	req := api.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return c.adopt(out), nil
}

// SignOut revokes token on the server and forgets it locally when it is the
// client's current one.
func (c *Client) SignOut(ctx context.Context, token string) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil); err != nil {
		return err
	}
	c.mu.Lock()
	if c.token == token {
		c.token = ""
	}
	c.mu.Unlock()
	return nil
}

func (c *Client) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, auth.ErrInvalidToken
	}
	var out api.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return out.ToDomain(), nil
}

// GetByID resolves the signed-in user. The API exposes no other accounts.
func (c *Client) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := c.Authenticate(ctx, c.currentToken())
	if err != nil {
		return nil, err
	}
	if u.ID != id {
		return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	return u, nil
}

func (c *Client) adopt(out api.SessionResponse) *auth.Session {
	c.SetToken(out.Token)
	return &auth.Session{Token: out.Token, ExpiresAt: out.ExpiresAt, User: out.User.ToDomain()}
}
