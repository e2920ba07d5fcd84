package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/result"
)

// DebtUseCase handles debt business logic.
type DebtUseCase struct {
	debts DebtRepository
}

// NewDebtUseCase creates a new DebtUseCase.
func NewDebtUseCase(debts DebtRepository) *DebtUseCase {
	return &DebtUseCase{debts: debts}
}

// GetDebts returns all debts for the owner.
func (uc *DebtUseCase) GetDebts(ctx context.Context, ownerID string) result.Result[[]domain.Debt] {
	if domain.IsBlank(ownerID) {
		return invalid[[]domain.Debt]("User ID cannot be empty")
	}

	return uc.debts.GetAll(ctx, ownerID)
}

// GetDebtsByType returns the owner's debts of one type.
func (uc *DebtUseCase) GetDebtsByType(ctx context.Context, ownerID string, debtType domain.DebtType) result.Result[[]domain.Debt] {
	if domain.IsBlank(ownerID) {
		return invalid[[]domain.Debt]("User ID cannot be empty")
	}

	return uc.debts.GetByType(ctx, ownerID, debtType)
}

// CreateDebt validates and creates a new debt.
func (uc *DebtUseCase) CreateDebt(ctx context.Context, debt domain.Debt) result.Result[domain.Debt] {
	if err := domain.ValidateAmount(debt.Amount); err != nil {
		return result.Error[domain.Debt](err, "Amount must be greater than 0")
	}

	if domain.IsBlank(debt.Person) {
		return invalid[domain.Debt]("Person name cannot be empty")
	}

	if domain.IsBlank(debt.Description) {
		return invalid[domain.Debt]("Description cannot be empty")
	}

	return uc.debts.Create(ctx, debt)
}

// UpdateDebt validates and updates an existing debt.
func (uc *DebtUseCase) UpdateDebt(ctx context.Context, debt domain.Debt) result.Result[domain.Debt] {
	if domain.IsBlank(debt.Person) {
		return invalid[domain.Debt]("Person name cannot be empty")
	}

	return uc.debts.Update(ctx, debt)
}

// MarkDebtAsPaid flips a debt to paid. Paid debts never flip back.
func (uc *DebtUseCase) MarkDebtAsPaid(ctx context.Context, debtID string) result.Result[result.Unit] {
	if domain.IsBlank(debtID) {
		return invalid[result.Unit]("Debt ID cannot be empty")
	}

	return uc.debts.MarkPaid(ctx, debtID)
}

// DeleteDebt removes a debt by id.
func (uc *DebtUseCase) DeleteDebt(ctx context.Context, debtID string) result.Result[result.Unit] {
	if domain.IsBlank(debtID) {
		return invalid[result.Unit]("Debt ID cannot be empty")
	}

	return uc.debts.Delete(ctx, debtID)
}

// TotalIOwe sums the owner's unpaid debts of type i_owe.
func (uc *DebtUseCase) TotalIOwe(ctx context.Context, ownerID string) result.Result[decimal.Decimal] {
	return uc.unpaidTotal(ctx, ownerID, domain.DebtIOwe)
}

// TotalTheyOwe sums the owner's unpaid debts of type they_owe.
func (uc *DebtUseCase) TotalTheyOwe(ctx context.Context, ownerID string) result.Result[decimal.Decimal] {
	return uc.unpaidTotal(ctx, ownerID, domain.DebtTheyOwe)
}

func (uc *DebtUseCase) unpaidTotal(ctx context.Context, ownerID string, debtType domain.DebtType) result.Result[decimal.Decimal] {
	if domain.IsBlank(ownerID) {
		return invalid[decimal.Decimal]("User ID cannot be empty")
	}

	res := uc.debts.GetByType(ctx, ownerID, debtType)
	if !res.IsSuccess() {
		return result.Propagate[decimal.Decimal](res)
	}

	total := decimal.Zero
	for _, debt := range res.Value() {
		if debt.IsPaid {
			continue
		}

		total = total.Add(debt.Amount)
	}

	return result.Success(total)
}
