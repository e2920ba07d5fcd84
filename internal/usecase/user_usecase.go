package usecase

import (
	"context"
	"fmt"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/result"
)

// UserUseCase handles authentication operations.
type UserUseCase struct {
	users UserRepository
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(users UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// SignUp registers a new user after local validation.
func (uc *UserUseCase) SignUp(ctx context.Context, email, password string) result.Result[domain.User] {
	if domain.IsBlank(email) {
		return invalid[domain.User]("Email cannot be empty")
	}

	if err := domain.ValidatePassword(password); err != nil {
		message := fmt.Sprintf("Password must be at least %d characters", domain.MinPasswordLength)
		return result.Error[domain.User](err, message)
	}

	return uc.users.SignUp(ctx, email, password)
}

// SignIn authenticates an existing user after local validation.
func (uc *UserUseCase) SignIn(ctx context.Context, email, password string) result.Result[domain.User] {
	if domain.IsBlank(email) {
		return invalid[domain.User]("Email cannot be empty")
	}

	if domain.IsBlank(password) {
		return invalid[domain.User]("Password cannot be empty")
	}

	return uc.users.SignIn(ctx, email, password)
}

// SignOut ends the current session.
func (uc *UserUseCase) SignOut(ctx context.Context) result.Result[result.Unit] {
	return uc.users.SignOut(ctx)
}

// CurrentUser returns the signed-in user, or nil when signed out.
func (uc *UserUseCase) CurrentUser(ctx context.Context) result.Result[*domain.User] {
	return uc.users.Current(ctx)
}

// AuthStateChanges streams session transitions from the auth provider.
func (uc *UserUseCase) AuthStateChanges() <-chan *domain.User {
	return uc.users.AuthStateChanges()
}
