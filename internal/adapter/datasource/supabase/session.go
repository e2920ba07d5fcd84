package supabase

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
)

// session is the persisted authentication state.
type session struct {
	AccessToken  string                 `json:"access_token"`
	RefreshToken string                 `json:"refresh_token,omitempty"`
	User         *datasource.UserRecord `json:"user,omitempty"`
}

// sessionFile persists the session as JSON so the signed-in user survives
// process restarts.
type sessionFile struct {
	mu   sync.Mutex
	path string
}

func newSessionFile(path string) *sessionFile {
	return &sessionFile{path: path}
}

// load returns the stored session, or (nil, nil) when none exists.
func (f *sessionFile) load() (*session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var s session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return &s, nil
}

func (f *sessionFile) save(s *session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	// The file holds a bearer token; keep it owner-readable only.
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (f *sessionFile) clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// tokenExpired reports whether the access token's exp claim has passed.
// The token is decoded without signature verification; the server remains
// the authority, this only avoids presenting a token known to be stale.
func tokenExpired(accessToken string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// userFromToken rebuilds a user record from the access token claims, for
// sessions persisted without the full user payload.
func userFromToken(accessToken string) (*datasource.UserRecord, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("access token has no subject")
	}

	user := &datasource.UserRecord{ID: sub}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	return user, nil
}
