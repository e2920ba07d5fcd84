package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/result"
)

// TransactionUseCase handles transaction business logic, including the one
// composite workflow in the system: creating a transaction mutates the
// referenced account's balance.
type TransactionUseCase struct {
	transactions TransactionRepository
	accounts     AccountRepository
	clock        Clock
	log          zerolog.Logger

	onBalanceFailure func()
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	transactions TransactionRepository,
	accounts AccountRepository,
	clock Clock,
	log zerolog.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		transactions: transactions,
		accounts:     accounts,
		clock:        clock,
		log:          log,
	}
}

// OnBalanceFailure registers a hook invoked whenever a two-step balance
// update fails after the row write succeeded. The composition root feeds the
// write-skew counter with it.
func (uc *TransactionUseCase) OnBalanceFailure(fn func()) {
	uc.onBalanceFailure = fn
}

// GetTransactions returns all transactions for the owner.
func (uc *TransactionUseCase) GetTransactions(ctx context.Context, ownerID string) result.Result[[]domain.Transaction] {
	if domain.IsBlank(ownerID) {
		return invalid[[]domain.Transaction]("User ID cannot be empty")
	}

	return uc.transactions.GetAll(ctx, ownerID)
}

// GetTransactionsByAccount returns the transactions referencing one account.
func (uc *TransactionUseCase) GetTransactionsByAccount(ctx context.Context, accountID string) result.Result[[]domain.Transaction] {
	if domain.IsBlank(accountID) {
		return invalid[[]domain.Transaction]("Account ID cannot be empty")
	}

	return uc.transactions.GetByAccount(ctx, accountID)
}

// CreateTransaction creates a transaction and applies its effect to the
// referenced account's balance.
//
// On backends without atomic apply this is a deliberate two-step write:
// the transaction row first, then a best-effort balance update. A failed
// balance update leaves a transaction row with an under-adjusted account;
// that failure is logged, never surfaced, and the creation result is
// returned as-is.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, tx domain.Transaction) result.Result[domain.Transaction] {
	if err := domain.ValidateAmount(tx.Amount); err != nil {
		return result.Error[domain.Transaction](err, "Amount must be greater than 0")
	}

	if domain.IsBlank(tx.Description) {
		return invalid[domain.Transaction]("Description cannot be empty")
	}

	accRes := uc.accounts.GetByID(ctx, tx.AccountID)
	if !accRes.IsSuccess() {
		return result.Error[domain.Transaction](domain.ErrAccountNotFound, "The selected account does not exist")
	}

	account := accRes.Value()

	var newBalance decimal.Decimal
	switch tx.Type {
	case domain.TransactionIncome:
		newBalance = account.ApplyIncome(tx.Amount)
	case domain.TransactionExpense:
		newBalance = account.ApplyExpense(tx.Amount)
	default:
		return invalid[domain.Transaction]("Unknown transaction type")
	}

	if newBalance.IsNegative() && tx.Type == domain.TransactionExpense {
		return result.Error[domain.Transaction](domain.ErrInsufficientFunds, "Not enough balance in account")
	}

	if uc.transactions.CanApplyAtomically() {
		return uc.transactions.CreateAndApplyBalance(ctx, tx, newBalance)
	}

	created := uc.transactions.Create(ctx, tx)
	if created.IsSuccess() {
		account.Balance = newBalance
		if upd := uc.accounts.Update(ctx, account); upd.IsError() {
			if uc.onBalanceFailure != nil {
				uc.onBalanceFailure()
			}
			uc.log.Error().
				Err(upd.Cause()).
				Str("transaction_id", tx.ID).
				Str("account_id", account.ID).
				Msg("balance update failed after transaction create")
		}
	}

	return created
}

// DeleteTransaction removes a transaction and compensates the owning
// account's balance by the inverse amount, using the same ordering and
// best-effort discipline as CreateTransaction. Deleting an id whose row or
// account can no longer be fetched degrades to a plain idempotent delete.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, transactionID string) result.Result[result.Unit] {
	if domain.IsBlank(transactionID) {
		return invalid[result.Unit]("Transaction ID cannot be empty")
	}

	txRes := uc.transactions.GetByID(ctx, transactionID)
	if !txRes.IsSuccess() {
		return uc.transactions.Delete(ctx, transactionID)
	}

	tx := txRes.Value()

	accRes := uc.accounts.GetByID(ctx, tx.AccountID)
	if !accRes.IsSuccess() {
		return uc.transactions.Delete(ctx, transactionID)
	}

	account := accRes.Value()

	// Reverse the original effect.
	var newBalance decimal.Decimal
	if tx.Type == domain.TransactionIncome {
		newBalance = account.ApplyExpense(tx.Amount)
	} else {
		newBalance = account.ApplyIncome(tx.Amount)
	}

	if uc.transactions.CanApplyAtomically() {
		return uc.transactions.DeleteAndApplyBalance(ctx, transactionID, account.ID, newBalance)
	}

	deleted := uc.transactions.Delete(ctx, transactionID)
	if deleted.IsSuccess() {
		account.Balance = newBalance
		if upd := uc.accounts.Update(ctx, account); upd.IsError() {
			if uc.onBalanceFailure != nil {
				uc.onBalanceFailure()
			}
			uc.log.Error().
				Err(upd.Cause()).
				Str("transaction_id", transactionID).
				Str("account_id", account.ID).
				Msg("balance update failed after transaction delete")
		}
	}

	return deleted
}

// TodayIncome sums the owner's income transactions dated on the current
// calendar day in the clock's time zone.
func (uc *TransactionUseCase) TodayIncome(ctx context.Context, ownerID string) result.Result[decimal.Decimal] {
	return uc.todayTotal(ctx, ownerID, domain.TransactionIncome)
}

// TodayExpenses sums the owner's expense transactions dated on the current
// calendar day in the clock's time zone.
func (uc *TransactionUseCase) TodayExpenses(ctx context.Context, ownerID string) result.Result[decimal.Decimal] {
	return uc.todayTotal(ctx, ownerID, domain.TransactionExpense)
}

func (uc *TransactionUseCase) todayTotal(ctx context.Context, ownerID string, txType domain.TransactionType) result.Result[decimal.Decimal] {
	if domain.IsBlank(ownerID) {
		return invalid[decimal.Decimal]("User ID cannot be empty")
	}

	res := uc.transactions.GetAll(ctx, ownerID)
	if !res.IsSuccess() {
		return result.Propagate[decimal.Decimal](res)
	}

	now := uc.clock.Now()
	year, month, day := now.Date()

	total := decimal.Zero
	for _, tx := range res.Value() {
		if tx.Type != txType {
			continue
		}

		// Dates are compared by calendar day in one explicit time zone.
		// Records with unparseable dates are excluded from day totals.
		at, err := time.Parse(time.RFC3339, tx.Date)
		if err != nil {
			continue
		}

		y, m, d := at.In(now.Location()).Date()
		if y == year && m == month && d == day {
			total = total.Add(tx.Amount)
		}
	}

	return result.Success(total)
}
