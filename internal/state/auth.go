package state

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/result"
	"github.com/vecopay/vecopay/internal/usecase"
)

// AuthState is the authentication screen snapshot.
type AuthState struct {
	Loading bool
	User    *domain.User
	Error   string
	Success bool
}

// AuthStore drives sign-in, sign-up and sign-out, and mirrors the session
// stream pushed by the auth provider.
type AuthStore struct {
	*Store[AuthState]

	users *usecase.UserUseCase
}

func NewAuthStore(users *usecase.UserUseCase, log zerolog.Logger, onCommand func(string)) *AuthStore {
	return &AuthStore{
		Store: NewStore(AuthState{}, log.With().Str("store", "auth").Logger(), onCommand),
		users: users,
	}
}

// Start launches the command loop and the auth-state watcher. Session
// transitions pushed by the provider replace the User field without touching
// the transient flags.
func (st *AuthStore) Start(ctx context.Context) {
	st.Store.Start(ctx)

	changes := st.users.AuthStateChanges()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case user, ok := <-changes:
				if !ok {
					return
				}
				st.dispatch("auth_state_change", func(context.Context) {
					st.update(func(s AuthState) AuthState {
						s.User = user
						return s
					})
				})
			}
		}
	}()
}

// Load resolves the persisted session, if any.
func (st *AuthStore) Load() {
	st.dispatch("load_session", func(ctx context.Context) {
		fold(st.users.CurrentUser(ctx),
			func(user *domain.User) {
				st.update(func(s AuthState) AuthState {
					s.User = user
					s.Loading = false
					return s
				})
			},
			func(message string) {
				st.update(func(s AuthState) AuthState {
					s.Error = message
					s.Loading = false
					return s
				})
			},
			func() {
				st.update(func(s AuthState) AuthState {
					s.Loading = true
					return s
				})
			},
		)
	})
}

// SignIn authenticates with email and password. The snapshot is reset to a
// bare loading state first, matching the screen's all-or-nothing rendering.
func (st *AuthStore) SignIn(email, password string) {
	st.dispatch("sign_in", func(ctx context.Context) {
		st.update(func(AuthState) AuthState { return AuthState{Loading: true} })
		st.finishAuth(st.users.SignIn(ctx, email, password))
	})
}

// SignUp registers a new user.
func (st *AuthStore) SignUp(email, password string) {
	st.dispatch("sign_up", func(ctx context.Context) {
		st.update(func(AuthState) AuthState { return AuthState{Loading: true} })
		st.finishAuth(st.users.SignUp(ctx, email, password))
	})
}

// SignOut ends the session.
func (st *AuthStore) SignOut() {
	st.dispatch("sign_out", func(ctx context.Context) {
		st.update(func(s AuthState) AuthState {
			s.Loading = true
			s.Error = ""
			return s
		})

		res := st.users.SignOut(ctx)
		if res.IsError() {
			st.update(func(s AuthState) AuthState {
				s.Error = res.Message()
				s.Loading = false
				return s
			})
			return
		}

		st.update(func(AuthState) AuthState { return AuthState{} })
	})
}

// ClearMessages resets the transient error flag after the UI consumed it.
func (st *AuthStore) ClearMessages() {
	st.dispatch("clear_messages", func(context.Context) {
		st.update(func(s AuthState) AuthState {
			s.Error = ""
			return s
		})
	})
}

func (st *AuthStore) finishAuth(res result.Result[domain.User]) {
	fold(res,
		func(user domain.User) {
			st.update(func(AuthState) AuthState {
				return AuthState{User: &user, Success: true}
			})
		},
		func(message string) {
			st.update(func(AuthState) AuthState {
				return AuthState{Error: message}
			})
		},
		func() {
			st.update(func(AuthState) AuthState {
				return AuthState{Loading: true}
			})
		},
	)
}
