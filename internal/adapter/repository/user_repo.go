package repository

import (
	"context"
	"fmt"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/result"
)

// UserRepository implements usecase.UserRepository over the auth provider.
type UserRepository struct {
	src datasource.Auth
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(src datasource.Auth) *UserRepository {
	return &UserRepository{src: src}
}

// SignUp registers a new user with the auth provider.
func (r *UserRepository) SignUp(ctx context.Context, email, password string) result.Result[domain.User] {
	rec, err := r.src.SignUp(ctx, email, password)
	if err != nil {
		return result.Error[domain.User](err, "Could not create account, please try again")
	}

	if rec == nil {
		return result.Error[domain.User](fmt.Errorf("%w: sign-up returned no user", domain.ErrEmptyResult), "Could not create account, please try again")
	}

	return result.Success(recordToUser(*rec))
}

// SignIn authenticates an existing user.
func (r *UserRepository) SignIn(ctx context.Context, email, password string) result.Result[domain.User] {
	rec, err := r.src.SignIn(ctx, email, password)
	if err != nil {
		return result.Error[domain.User](err, "Invalid email or password")
	}

	if rec == nil {
		return result.Error[domain.User](fmt.Errorf("%w: sign-in returned no user", domain.ErrEmptyResult), "Invalid email or password")
	}

	return result.Success(recordToUser(*rec))
}

// SignOut ends the current session.
func (r *UserRepository) SignOut(ctx context.Context) result.Result[result.Unit] {
	if err := r.src.SignOut(ctx); err != nil {
		return result.Error[result.Unit](err, "Could not sign out")
	}

	return result.Success(result.Unit{})
}

// Current returns the signed-in user, or nil when no session is active.
func (r *UserRepository) Current(ctx context.Context) result.Result[*domain.User] {
	rec, err := r.src.CurrentUser(ctx)
	if err != nil {
		return result.Error[*domain.User](err, "Could not load session")
	}

	if rec == nil {
		return result.Success[*domain.User](nil)
	}

	user := recordToUser(*rec)

	return result.Success(&user)
}

// AuthStateChanges streams session transitions pushed by the auth provider:
// the new user on sign-in, nil on sign-out.
func (r *UserRepository) AuthStateChanges() <-chan *domain.User {
	out := make(chan *domain.User, 1)

	go func() {
		defer close(out)

		for rec := range r.src.AuthStateChanges() {
			if rec == nil {
				out <- nil
				continue
			}

			user := recordToUser(*rec)
			out <- &user
		}
	}()

	return out
}
