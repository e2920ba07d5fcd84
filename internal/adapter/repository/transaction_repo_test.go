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

func TestTransactionRepository_RoundTrip(t *testing.T) {
	store := memory.NewStore()
	repo := repository.NewTransactionRepository(store)
	ctx := context.Background()

	created := repo.Create(ctx, domain.Transaction{
		ID:          "tx-1",
		Amount:      decimal.NewFromFloat(9.90),
		Type:        domain.TransactionExpense,
		Category:    "food",
		Description: "lunch",
		AccountID:   "acc-1",
		Date:        "2024-03-15T12:00:00Z",
		OwnerID:     "user-1",
	})
	if !created.IsSuccess() {
		t.Fatalf("create failed: %s", created.Message())
	}

	got := repo.GetByID(ctx, "tx-1")
	if !got.IsSuccess() {
		t.Fatalf("get failed: %s", got.Message())
	}
	if !got.Value().Amount.Equal(decimal.NewFromFloat(9.90)) {
		t.Errorf("amount = %s, want 9.9", got.Value().Amount)
	}

	byAccount := repo.GetByAccount(ctx, "acc-1")
	if !byAccount.IsSuccess() || len(byAccount.Value()) != 1 {
		t.Errorf("by account: got %d rows, want 1", len(byAccount.Value()))
	}

	missing := repo.GetByID(ctx, "nope")
	if !missing.IsError() || !errors.Is(missing.Cause(), domain.ErrTransactionNotFound) {
		t.Errorf("got (%v, %v), want ErrTransactionNotFound", missing.IsError(), missing.Cause())
	}
}

func TestTransactionRepository_AtomicApplyUnsupported(t *testing.T) {
	// The memory store exposes no combined write, so the repository must
	// report the capability as absent and refuse the atomic calls.
	repo := repository.NewTransactionRepository(memory.NewStore())

	if repo.CanApplyAtomically() {
		t.Fatal("memory backend must not claim atomic apply")
	}

	res := repo.CreateAndApplyBalance(context.Background(), domain.Transaction{ID: "tx-1"}, decimal.NewFromInt(10))
	if !res.IsError() {
		t.Error("atomic create should fail on a backend without the capability")
	}
}
