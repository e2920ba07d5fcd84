// Package postgres implements the datasource contract directly against a
// PostgreSQL database: a users table with bcrypt credentials instead of a
// hosted auth provider, and plain rows for everything else. Unlike the REST
// backend it can apply a transaction and its balance effect atomically.
package postgres

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/infrastructure/metrics"
)

const backendLabel = "postgres"

// PostgreSQL unique violation.
const pgErrUniqueViolation = "23505"

// Store talks to one PostgreSQL database. It satisfies datasource.Auth,
// datasource.Rows and datasource.AtomicRows.
type Store struct {
	pool    *pgxpool.Pool
	log     zerolog.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	current *datasource.UserRecord

	changes chan *datasource.UserRecord
}

// NewStore builds a store over an existing pool.
func NewStore(pool *pgxpool.Pool, log zerolog.Logger, m *metrics.Metrics) *Store {
	return &Store{
		pool:    pool,
		log:     log.With().Str("backend", backendLabel).Logger(),
		metrics: m,
		changes: make(chan *datasource.UserRecord, 8),
	}
}

// track records call count, duration and outcome for one backend operation.
func (s *Store) track(op string, start time.Time, err *error) {
	s.metrics.BackendCalls.WithLabelValues(backendLabel, op).Inc()
	s.metrics.BackendDuration.WithLabelValues(backendLabel, op).Observe(time.Since(start).Seconds())
	if *err != nil {
		s.metrics.BackendErrors.WithLabelValues(backendLabel, op).Inc()
		s.log.Warn().Err(*err).Str("operation", op).Msg("backend call failed")
	}
}

// SignUp creates a user with a bcrypt-hashed password and opens a session.
func (s *Store) SignUp(ctx context.Context, email, password string) (_ *datasource.UserRecord, err error) {
	defer s.track("sign_up", time.Now(), &err)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	var createdAt time.Time
	err = s.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, id, email, string(hash)).Scan(&createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			s.metrics.AuthAttempts.WithLabelValues("failure").Inc()
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	s.metrics.AuthAttempts.WithLabelValues("success").Inc()

	user := &datasource.UserRecord{ID: id, Email: email, CreatedAt: formatTime(createdAt)}
	s.setCurrent(user)
	return user, nil
}

// SignIn verifies credentials against the stored bcrypt hash.
func (s *Store) SignIn(ctx context.Context, email, password string) (_ *datasource.UserRecord, err error) {
	defer s.track("sign_in", time.Now(), &err)

	var (
		id        string
		hash      string
		name      *string
		createdAt time.Time
	)
	err = s.pool.QueryRow(ctx, `
		SELECT id, password_hash, name, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&id, &hash, &name, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		s.metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		s.metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidLogin
	}

	s.metrics.AuthAttempts.WithLabelValues("success").Inc()

	user := &datasource.UserRecord{ID: id, Email: email, Name: name, CreatedAt: formatTime(createdAt)}
	s.setCurrent(user)
	return user, nil
}

// SignOut drops the in-process session.
func (s *Store) SignOut(ctx context.Context) (err error) {
	defer s.track("sign_out", time.Now(), &err)

	s.setCurrent(nil)
	return nil
}

// CurrentUser returns the in-process session, (nil, nil) when signed out.
func (s *Store) CurrentUser(ctx context.Context) (*datasource.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, nil
}

// AuthStateChanges returns the session transition stream.
func (s *Store) AuthStateChanges() <-chan *datasource.UserRecord {
	return s.changes
}

func (s *Store) setCurrent(user *datasource.UserRecord) {
	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	select {
	case s.changes <- user:
	default:
		s.log.Warn().Msg("auth state change dropped, stream buffer full")
	}
}

func formatTime(t time.Time) *string {
	str := t.Format(time.RFC3339)
	return &str
}
