package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/usecase"
	"github.com/vecopay/vecopay/internal/usecase/mocks"
)

func TestDebtUseCase_CreateDebt_Validation(t *testing.T) {
	tests := []struct {
		name        string
		debt        domain.Debt
		wantMessage string
	}{
		{
			name:        "zero amount",
			debt:        domain.Debt{Amount: decimal.Zero, Person: "Ana", Description: "lunch"},
			wantMessage: "Amount must be greater than 0",
		},
		{
			name:        "blank person",
			debt:        domain.Debt{Amount: decimal.NewFromInt(10), Person: " ", Description: "lunch"},
			wantMessage: "Person name cannot be empty",
		},
		{
			name:        "blank description",
			debt:        domain.Debt{Amount: decimal.NewFromInt(10), Person: "Ana", Description: ""},
			wantMessage: "Description cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockDebtRepository()
			uc := usecase.NewDebtUseCase(repo)

			res := uc.CreateDebt(context.Background(), tt.debt)

			if !res.IsError() || res.Message() != tt.wantMessage {
				t.Errorf("got (%v, %q), want error %q", res.IsError(), res.Message(), tt.wantMessage)
			}
			if !errors.Is(res.Cause(), domain.ErrValidation) {
				t.Errorf("cause = %v, want ErrValidation", res.Cause())
			}
			if repo.Calls() != 0 {
				t.Errorf("repository was called %d times, want 0", repo.Calls())
			}
		})
	}
}

func TestDebtUseCase_MarkDebtAsPaid(t *testing.T) {
	repo := mocks.NewMockDebtRepository()
	repo.Seed(domain.Debt{ID: "d1", OwnerID: "user-1", Amount: decimal.NewFromInt(10), Person: "Ana"})
	uc := usecase.NewDebtUseCase(repo)

	if res := uc.MarkDebtAsPaid(context.Background(), "d1"); !res.IsSuccess() {
		t.Fatalf("unexpected failure: %s", res.Message())
	}

	all := uc.GetDebts(context.Background(), "user-1")
	if !all.IsSuccess() || len(all.Value()) != 1 {
		t.Fatal("expected the one seeded debt")
	}
	if !all.Value()[0].IsPaid {
		t.Error("debt should be paid")
	}

	if res := uc.MarkDebtAsPaid(context.Background(), " "); !res.IsError() {
		t.Error("blank id should fail validation")
	}
}

func TestDebtUseCase_UnpaidTotals(t *testing.T) {
	repo := mocks.NewMockDebtRepository()
	repo.Seed(domain.Debt{ID: "d1", OwnerID: "user-1", Type: domain.DebtIOwe, Amount: decimal.NewFromInt(30)})
	repo.Seed(domain.Debt{ID: "d2", OwnerID: "user-1", Type: domain.DebtIOwe, Amount: decimal.NewFromInt(20)})
	repo.Seed(domain.Debt{ID: "d3", OwnerID: "user-1", Type: domain.DebtIOwe, Amount: decimal.NewFromInt(40), IsPaid: true})
	repo.Seed(domain.Debt{ID: "d4", OwnerID: "user-1", Type: domain.DebtTheyOwe, Amount: decimal.NewFromInt(15)})

	uc := usecase.NewDebtUseCase(repo)

	iOwe := uc.TotalIOwe(context.Background(), "user-1")
	if !iOwe.IsSuccess() {
		t.Fatalf("unexpected failure: %s", iOwe.Message())
	}
	if want := decimal.NewFromInt(50); !iOwe.Value().Equal(want) {
		t.Errorf("total i_owe = %s, want %s (paid debts excluded)", iOwe.Value(), want)
	}

	theyOwe := uc.TotalTheyOwe(context.Background(), "user-1")
	if !theyOwe.IsSuccess() {
		t.Fatalf("unexpected failure: %s", theyOwe.Message())
	}
	if want := decimal.NewFromInt(15); !theyOwe.Value().Equal(want) {
		t.Errorf("total they_owe = %s, want %s", theyOwe.Value(), want)
	}
}

func TestDebtUseCase_UpdateDebt_RequiresPerson(t *testing.T) {
	repo := mocks.NewMockDebtRepository()
	uc := usecase.NewDebtUseCase(repo)

	res := uc.UpdateDebt(context.Background(), domain.Debt{ID: "d1", Person: ""})
	if !res.IsError() || res.Message() != "Person name cannot be empty" {
		t.Errorf("got (%v, %q)", res.IsError(), res.Message())
	}
	if repo.Calls() != 0 {
		t.Error("repository should not be contacted")
	}
}
