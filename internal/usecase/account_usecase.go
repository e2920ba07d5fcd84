package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/result"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accounts AccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accounts AccountRepository) *AccountUseCase {
	return &AccountUseCase{accounts: accounts}
}

// invalid builds the Error result for a failed pre-flight validation. The
// repository is never contacted when validation fails.
func invalid[T any](message string) result.Result[T] {
	return result.Error[T](fmt.Errorf("%w: %s", domain.ErrValidation, message), message)
}

// GetAccounts returns all accounts for the owner.
func (uc *AccountUseCase) GetAccounts(ctx context.Context, ownerID string) result.Result[[]domain.Account] {
	if domain.IsBlank(ownerID) {
		return invalid[[]domain.Account]("User ID cannot be empty")
	}

	return uc.accounts.GetAll(ctx, ownerID)
}

// CreateAccount validates and creates a new account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, account domain.Account) result.Result[domain.Account] {
	if domain.IsBlank(account.Name) {
		return invalid[domain.Account]("Account name cannot be empty")
	}

	if err := domain.ValidateOpeningBalance(account.Balance); err != nil {
		return result.Error[domain.Account](err, "Balance cannot be negative")
	}

	return uc.accounts.Create(ctx, account)
}

// UpdateAccount validates and updates an existing account.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, account domain.Account) result.Result[domain.Account] {
	if domain.IsBlank(account.Name) {
		return invalid[domain.Account]("Account name cannot be empty")
	}

	return uc.accounts.Update(ctx, account)
}

// DeleteAccount removes an account by id.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, accountID string) result.Result[result.Unit] {
	if domain.IsBlank(accountID) {
		return invalid[result.Unit]("Account ID cannot be empty")
	}

	return uc.accounts.Delete(ctx, accountID)
}

// TotalBalance sums the balance of every account the owner has.
func (uc *AccountUseCase) TotalBalance(ctx context.Context, ownerID string) result.Result[decimal.Decimal] {
	if domain.IsBlank(ownerID) {
		return invalid[decimal.Decimal]("User ID cannot be empty")
	}

	res := uc.accounts.GetAll(ctx, ownerID)
	if !res.IsSuccess() {
		return result.Propagate[decimal.Decimal](res)
	}

	total := decimal.Zero
	for _, account := range res.Value() {
		total = total.Add(account.Balance)
	}

	return result.Success(total)
}
