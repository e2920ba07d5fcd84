package supabase

import (
	"context"
	"errors"
	"net/http"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
	"github.com/vecopay/vecopay/internal/domain"
)

// authResponse covers both GoTrue response shapes: the token grant returns
// the session with a nested user, signup with autoconfirm disabled returns
// the bare user at the top level.
type authResponse struct {
	AccessToken  string                 `json:"access_token"`
	RefreshToken string                 `json:"refresh_token"`
	User         *datasource.UserRecord `json:"user"`

	ID        string  `json:"id"`
	Email     string  `json:"email"`
	CreatedAt *string `json:"created_at"`
}

func (r authResponse) user() *datasource.UserRecord {
	if r.User != nil {
		return r.User
	}
	if r.ID == "" {
		return nil
	}
	return &datasource.UserRecord{ID: r.ID, Email: r.Email, CreatedAt: r.CreatedAt}
}

// SignUp registers a new user and, when the project auto-confirms, stores
// the returned session.
func (c *Client) SignUp(ctx context.Context, email, password string) (*datasource.UserRecord, error) {
	var resp authResponse
	err := c.do(ctx, "sign_up", http.MethodPost, "/auth/v1/signup", nil,
		map[string]string{"email": email, "password": password}, &resp, nil)
	if err != nil {
		c.metrics.AuthAttempts.WithLabelValues("failure").Inc()

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnprocessableEntity {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	c.metrics.AuthAttempts.WithLabelValues("success").Inc()

	user := resp.user()
	if resp.AccessToken != "" {
		c.storeSession(&session{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
			User:         user,
		})
		c.pushChange(user)
	}

	return user, nil
}

// SignIn exchanges credentials for a session via the password grant.
func (c *Client) SignIn(ctx context.Context, email, password string) (*datasource.UserRecord, error) {
	query := map[string][]string{"grant_type": {"password"}}

	var resp authResponse
	err := c.do(ctx, "sign_in", http.MethodPost, "/auth/v1/token", query,
		map[string]string{"email": email, "password": password}, &resp, nil)
	if err != nil {
		c.metrics.AuthAttempts.WithLabelValues("failure").Inc()

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			return nil, domain.ErrInvalidLogin
		}
		return nil, err
	}

	c.metrics.AuthAttempts.WithLabelValues("success").Inc()

	user := resp.user()
	c.storeSession(&session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         user,
	})
	c.pushChange(user)

	return user, nil
}

// SignOut revokes the session server-side and always clears the local one.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.do(ctx, "sign_out", http.MethodPost, "/auth/v1/logout", nil, nil, nil, nil)

	// The local session goes away regardless; a dead token on the server
	// is not worth keeping the client signed in for.
	c.storeSession(nil)
	c.pushChange(nil)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return nil
	}
	return err
}

// CurrentUser resolves the persisted session. It returns (nil, nil) when no
// session exists or the stored token has expired.
func (c *Client) CurrentUser(ctx context.Context) (*datasource.UserRecord, error) {
	s, err := c.loadSession()
	if err != nil {
		return nil, err
	}
	if s == nil || s.AccessToken == "" || tokenExpired(s.AccessToken) {
		return nil, nil
	}

	if s.User != nil {
		return s.User, nil
	}
	return userFromToken(s.AccessToken)
}

// AuthStateChanges returns the session transition stream.
func (c *Client) AuthStateChanges() <-chan *datasource.UserRecord {
	return c.changes
}

func (c *Client) storeSession(s *session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	if s == nil {
		if err := c.sessions.clear(); err != nil {
			c.log.Warn().Err(err).Msg("failed to clear session file")
		}
		return
	}
	if err := c.sessions.save(s); err != nil {
		c.log.Warn().Err(err).Msg("failed to persist session")
	}
}

// loadSession returns the in-memory session, falling back to the file once.
func (c *Client) loadSession() (*session, error) {
	c.mu.Lock()
	if c.session != nil {
		s := c.session
		c.mu.Unlock()
		return s, nil
	}
	c.mu.Unlock()

	s, err := c.sessions.load()
	if err != nil || s == nil {
		return nil, err
	}

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	return s, nil
}

// pushChange feeds the auth stream without ever blocking an auth call.
func (c *Client) pushChange(user *datasource.UserRecord) {
	select {
	case c.changes <- user:
	default:
		c.log.Warn().Msg("auth state change dropped, stream buffer full")
	}
}
