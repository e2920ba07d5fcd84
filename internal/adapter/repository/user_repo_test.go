package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vecopay/vecopay/internal/adapter/datasource/memory"
	"github.com/vecopay/vecopay/internal/adapter/repository"
	"github.com/vecopay/vecopay/internal/domain"
)

func TestUserRepository_SignUpAndSignIn(t *testing.T) {
	store := memory.NewStore()
	repo := repository.NewUserRepository(store)
	ctx := context.Background()

	signedUp := repo.SignUp(ctx, "a@b.com", "123456")
	if !signedUp.IsSuccess() {
		t.Fatalf("sign-up failed: %s", signedUp.Message())
	}
	if signedUp.Value().Email != "a@b.com" {
		t.Errorf("email = %q", signedUp.Value().Email)
	}

	taken := repo.SignUp(ctx, "a@b.com", "another")
	if !taken.IsError() || !errors.Is(taken.Cause(), domain.ErrEmailTaken) {
		t.Errorf("got (%v, %v), want ErrEmailTaken", taken.IsError(), taken.Cause())
	}

	wrong := repo.SignIn(ctx, "a@b.com", "wrong-password")
	if !wrong.IsError() || wrong.Message() != "Invalid email or password" {
		t.Errorf("got (%v, %q)", wrong.IsError(), wrong.Message())
	}
	if !errors.Is(wrong.Cause(), domain.ErrInvalidLogin) {
		t.Errorf("cause = %v, want ErrInvalidLogin", wrong.Cause())
	}

	ok := repo.SignIn(ctx, "a@b.com", "123456")
	if !ok.IsSuccess() {
		t.Fatalf("sign-in failed: %s", ok.Message())
	}
}

func TestUserRepository_SessionLifecycle(t *testing.T) {
	store := memory.NewStore()
	repo := repository.NewUserRepository(store)
	ctx := context.Background()

	current := repo.Current(ctx)
	if !current.IsSuccess() || current.Value() != nil {
		t.Fatal("expected Success(nil) before any sign-in")
	}

	if res := repo.SignUp(ctx, "a@b.com", "123456"); !res.IsSuccess() {
		t.Fatalf("sign-up failed: %s", res.Message())
	}

	current = repo.Current(ctx)
	if !current.IsSuccess() || current.Value() == nil || current.Value().Email != "a@b.com" {
		t.Fatal("expected the signed-in user")
	}

	if res := repo.SignOut(ctx); !res.IsSuccess() {
		t.Fatalf("sign-out failed: %s", res.Message())
	}

	current = repo.Current(ctx)
	if !current.IsSuccess() || current.Value() != nil {
		t.Fatal("expected Success(nil) after sign-out")
	}
}

func TestUserRepository_AuthStateChanges(t *testing.T) {
	store := memory.NewStore()
	repo := repository.NewUserRepository(store)
	ctx := context.Background()

	changes := repo.AuthStateChanges()

	repo.SignUp(ctx, "a@b.com", "123456")
	repo.SignOut(ctx)

	recv := func() *domain.User {
		select {
		case u := <-changes:
			return u
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for a session transition")
			return nil
		}
	}

	if u := recv(); u == nil || u.Email != "a@b.com" {
		t.Errorf("first transition = %+v, want the signed-in user", u)
	}
	if u := recv(); u != nil {
		t.Errorf("second transition = %+v, want nil for sign-out", u)
	}
}
