// Package repository wraps the remote data source in the uniform
// Result-returning contract consumed by the use-case layer. Every transport
// failure is converted to result.Error here; no error value crosses this
// boundary undressed.
package repository

import (
	"context"
	"fmt"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/result"
)

// AccountRepository implements usecase.AccountRepository over a row store.
type AccountRepository struct {
	src datasource.Rows
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(src datasource.Rows) *AccountRepository {
	return &AccountRepository{src: src}
}

// GetAll returns every account owned by ownerID.
func (r *AccountRepository) GetAll(ctx context.Context, ownerID string) result.Result[[]domain.Account] {
	recs, err := r.src.ListAccounts(ctx, ownerID)
	if err != nil {
		return result.Error[[]domain.Account](err, "Could not load accounts")
	}

	return result.Success(accountsToDomain(recs))
}

// GetByID returns a single account, or a not-found error.
func (r *AccountRepository) GetByID(ctx context.Context, id string) result.Result[domain.Account] {
	rec, err := r.src.GetAccount(ctx, id)
	if err != nil {
		return result.Error[domain.Account](err, "Could not load account")
	}

	if rec == nil {
		return result.Error[domain.Account](domain.ErrAccountNotFound, "The selected account does not exist")
	}

	return result.Success(recordToAccount(*rec))
}

// Create inserts a new account. An empty insert result counts as a failure.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) result.Result[domain.Account] {
	rec, err := r.src.InsertAccount(ctx, accountToRecord(account))
	if err != nil {
		return result.Error[domain.Account](err, "Could not create account")
	}

	if rec == nil {
		return result.Error[domain.Account](fmt.Errorf("%w: insert returned no row", domain.ErrEmptyResult), "Could not create account")
	}

	return result.Success(recordToAccount(*rec))
}

// Update replaces an existing account row.
func (r *AccountRepository) Update(ctx context.Context, account domain.Account) result.Result[domain.Account] {
	rec, err := r.src.UpdateAccount(ctx, accountToRecord(account))
	if err != nil {
		return result.Error[domain.Account](err, "Could not update account")
	}

	if rec == nil {
		return result.Error[domain.Account](fmt.Errorf("%w: update returned no row", domain.ErrEmptyResult), "Could not update account")
	}

	return result.Success(recordToAccount(*rec))
}

// Delete removes an account by id. Deleting an absent row still succeeds;
// no existence check is performed.
func (r *AccountRepository) Delete(ctx context.Context, id string) result.Result[result.Unit] {
	if err := r.src.DeleteAccount(ctx, id); err != nil {
		return result.Error[result.Unit](err, "Could not delete account")
	}

	return result.Success(result.Unit{})
}

// Snapshots performs one fetch and emits at most one list snapshot before
// closing the channel. It is deliberately a single-shot producer, not a
// subscription; callers wanting fresh data call it again.
func (r *AccountRepository) Snapshots(ctx context.Context, ownerID string) <-chan []domain.Account {
	out := make(chan []domain.Account, 1)

	go func() {
		defer close(out)

		recs, err := r.src.ListAccounts(ctx, ownerID)
		if err != nil {
			return
		}

		select {
		case out <- accountsToDomain(recs):
		case <-ctx.Done():
		}
	}()

	return out
}
