package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/result"
)

// TransactionRepository implements usecase.TransactionRepository over a row store.
type TransactionRepository struct {
	src datasource.Rows
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(src datasource.Rows) *TransactionRepository {
	return &TransactionRepository{src: src}
}

// GetAll returns every transaction owned by ownerID.
func (r *TransactionRepository) GetAll(ctx context.Context, ownerID string) result.Result[[]domain.Transaction] {
	recs, err := r.src.ListTransactions(ctx, ownerID)
	if err != nil {
		return result.Error[[]domain.Transaction](err, "Could not load transactions")
	}

	return result.Success(transactionsToDomain(recs))
}

// GetByAccount returns the transactions referencing one account.
func (r *TransactionRepository) GetByAccount(ctx context.Context, accountID string) result.Result[[]domain.Transaction] {
	recs, err := r.src.ListTransactionsByAccount(ctx, accountID)
	if err != nil {
		return result.Error[[]domain.Transaction](err, "Could not load transactions")
	}

	return result.Success(transactionsToDomain(recs))
}

// GetByID returns a single transaction, or a not-found error.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) result.Result[domain.Transaction] {
	rec, err := r.src.GetTransaction(ctx, id)
	if err != nil {
		return result.Error[domain.Transaction](err, "Could not load transaction")
	}

	if rec == nil {
		return result.Error[domain.Transaction](domain.ErrTransactionNotFound, "The transaction does not exist")
	}

	return result.Success(recordToTransaction(*rec))
}

// Create inserts a new transaction row.
func (r *TransactionRepository) Create(ctx context.Context, tx domain.Transaction) result.Result[domain.Transaction] {
	rec, err := r.src.InsertTransaction(ctx, transactionToRecord(tx))
	if err != nil {
		return result.Error[domain.Transaction](err, "Could not create transaction")
	}

	if rec == nil {
		return result.Error[domain.Transaction](fmt.Errorf("%w: insert returned no row", domain.ErrEmptyResult), "Could not create transaction")
	}

	return result.Success(recordToTransaction(*rec))
}

// Delete removes a transaction by id, succeeding even for absent rows.
func (r *TransactionRepository) Delete(ctx context.Context, id string) result.Result[result.Unit] {
	if err := r.src.DeleteTransaction(ctx, id); err != nil {
		return result.Error[result.Unit](err, "Could not delete transaction")
	}

	return result.Success(result.Unit{})
}

// CanApplyAtomically reports whether the backing store can combine a
// transaction write with the account balance update in one storage
// transaction.
func (r *TransactionRepository) CanApplyAtomically() bool {
	_, ok := r.src.(datasource.AtomicRows)
	return ok
}

// CreateAndApplyBalance inserts the transaction and applies newBalance to its
// account atomically. Only valid when CanApplyAtomically reports true.
func (r *TransactionRepository) CreateAndApplyBalance(ctx context.Context, tx domain.Transaction, newBalance decimal.Decimal) result.Result[domain.Transaction] {
	atomic, ok := r.src.(datasource.AtomicRows)
	if !ok {
		return result.Error[domain.Transaction](fmt.Errorf("%w: backend has no atomic apply", domain.ErrTransport), "Could not create transaction")
	}

	rec, err := atomic.InsertTransactionApplyingBalance(ctx, transactionToRecord(tx), tx.AccountID, newBalance.InexactFloat64())
	if err != nil {
		return result.Error[domain.Transaction](err, "Could not create transaction")
	}

	if rec == nil {
		return result.Error[domain.Transaction](fmt.Errorf("%w: insert returned no row", domain.ErrEmptyResult), "Could not create transaction")
	}

	return result.Success(recordToTransaction(*rec))
}

// DeleteAndApplyBalance deletes the transaction and applies newBalance to the
// account atomically. Only valid when CanApplyAtomically reports true.
func (r *TransactionRepository) DeleteAndApplyBalance(ctx context.Context, id, accountID string, newBalance decimal.Decimal) result.Result[result.Unit] {
	atomic, ok := r.src.(datasource.AtomicRows)
	if !ok {
		return result.Error[result.Unit](fmt.Errorf("%w: backend has no atomic apply", domain.ErrTransport), "Could not delete transaction")
	}

	if err := atomic.DeleteTransactionApplyingBalance(ctx, id, accountID, newBalance.InexactFloat64()); err != nil {
		return result.Error[result.Unit](err, "Could not delete transaction")
	}

	return result.Success(result.Unit{})
}

// Snapshots performs one fetch and emits at most one list snapshot before
// closing the channel.
func (r *TransactionRepository) Snapshots(ctx context.Context, ownerID string) <-chan []domain.Transaction {
	out := make(chan []domain.Transaction, 1)

	go func() {
		defer close(out)

		recs, err := r.src.ListTransactions(ctx, ownerID)
		if err != nil {
			return
		}

		select {
		case out <- transactionsToDomain(recs):
		case <-ctx.Done():
		}
	}()

	return out
}
