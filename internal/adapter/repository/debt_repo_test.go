package repository_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/adapter/datasource/memory"
	"github.com/vecopay/vecopay/internal/adapter/repository"
	"github.com/vecopay/vecopay/internal/domain"
)

func TestDebtRepository_MarkPaid(t *testing.T) {
	store := memory.NewStore()
	repo := repository.NewDebtRepository(store)
	ctx := context.Background()

	repo.Create(ctx, domain.Debt{
		ID:      "d1",
		Amount:  decimal.NewFromInt(30),
		Type:    domain.DebtIOwe,
		Person:  "Ana",
		OwnerID: "user-1",
	})

	if res := repo.MarkPaid(ctx, "d1"); !res.IsSuccess() {
		t.Fatalf("mark paid failed: %s", res.Message())
	}

	byType := repo.GetByType(ctx, "user-1", domain.DebtIOwe)
	if !byType.IsSuccess() || len(byType.Value()) != 1 {
		t.Fatal("expected the one debt")
	}
	if !byType.Value()[0].IsPaid {
		t.Error("debt should be paid")
	}

	// Marking an absent id is a no-op, not a failure.
	if res := repo.MarkPaid(ctx, "ghost"); !res.IsSuccess() {
		t.Errorf("mark paid of an absent row failed: %s", res.Message())
	}
}

func TestDebtRepository_GetByTypeFilters(t *testing.T) {
	store := memory.NewStore()
	repo := repository.NewDebtRepository(store)
	ctx := context.Background()

	repo.Create(ctx, domain.Debt{ID: "d1", Type: domain.DebtIOwe, Amount: decimal.NewFromInt(10), OwnerID: "user-1"})
	repo.Create(ctx, domain.Debt{ID: "d2", Type: domain.DebtTheyOwe, Amount: decimal.NewFromInt(20), OwnerID: "user-1"})
	repo.Create(ctx, domain.Debt{ID: "d3", Type: domain.DebtIOwe, Amount: decimal.NewFromInt(30), OwnerID: "someone-else"})

	res := repo.GetByType(ctx, "user-1", domain.DebtIOwe)
	if !res.IsSuccess() {
		t.Fatalf("get by type failed: %s", res.Message())
	}
	if len(res.Value()) != 1 || res.Value()[0].ID != "d1" {
		t.Errorf("got %+v, want only d1", res.Value())
	}
}
