package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/adapter/datasource/memory"
	"github.com/vecopay/vecopay/internal/adapter/repository"
	"github.com/vecopay/vecopay/internal/domain"
)

func TestAccountRepository_GetByID(t *testing.T) {
	store := memory.NewStore()
	repo := repository.NewAccountRepository(store)
	ctx := context.Background()

	created := repo.Create(ctx, domain.Account{
		ID:      "acc-1",
		Name:    "Wallet",
		Type:    domain.AccountTypeCash,
		Balance: decimal.NewFromFloat(12.50),
		OwnerID: "user-1",
	})
	if !created.IsSuccess() {
		t.Fatalf("create failed: %s", created.Message())
	}
	// The store fills in the default currency when none is given.
	if created.Value().Currency != domain.DefaultCurrency {
		t.Errorf("currency = %q, want %q", created.Value().Currency, domain.DefaultCurrency)
	}

	got := repo.GetByID(ctx, "acc-1")
	if !got.IsSuccess() {
		t.Fatalf("get failed: %s", got.Message())
	}
	if !got.Value().Balance.Equal(decimal.NewFromFloat(12.50)) {
		t.Errorf("balance = %s, want 12.5", got.Value().Balance)
	}

	missing := repo.GetByID(ctx, "nope")
	if !missing.IsError() || missing.Message() != "The selected account does not exist" {
		t.Errorf("got (%v, %q)", missing.IsError(), missing.Message())
	}
	if !errors.Is(missing.Cause(), domain.ErrAccountNotFound) {
		t.Errorf("cause = %v, want ErrAccountNotFound", missing.Cause())
	}
}

func TestAccountRepository_UpdateMissingRow(t *testing.T) {
	store := memory.NewStore()
	repo := repository.NewAccountRepository(store)

	res := repo.Update(context.Background(), domain.Account{ID: "ghost", Name: "Ghost"})
	if !res.IsError() || res.Message() != "Could not update account" {
		t.Errorf("got (%v, %q)", res.IsError(), res.Message())
	}
	if !errors.Is(res.Cause(), domain.ErrEmptyResult) {
		t.Errorf("cause = %v, want ErrEmptyResult", res.Cause())
	}
}

func TestAccountRepository_DeleteIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	repo := repository.NewAccountRepository(store)
	ctx := context.Background()

	if res := repo.Delete(ctx, "never-existed"); !res.IsSuccess() {
		t.Errorf("delete of an absent row failed: %s", res.Message())
	}
	if store.CallCount("delete_account") != 1 {
		t.Errorf("delete_account calls = %d, want 1", store.CallCount("delete_account"))
	}
}

func TestAccountRepository_Snapshots(t *testing.T) {
	store := memory.NewStore()
	repo := repository.NewAccountRepository(store)
	ctx := context.Background()

	repo.Create(ctx, domain.Account{ID: "acc-1", Name: "Wallet", OwnerID: "user-1"})
	repo.Create(ctx, domain.Account{ID: "acc-2", Name: "Bank", OwnerID: "someone-else"})

	snapshots := repo.Snapshots(ctx, "user-1")

	first, ok := <-snapshots
	if !ok {
		t.Fatal("expected one snapshot before close")
	}
	if len(first) != 1 || first[0].ID != "acc-1" {
		t.Errorf("snapshot = %+v, want only acc-1", first)
	}

	if _, ok := <-snapshots; ok {
		t.Error("channel should close after the single snapshot")
	}
}
