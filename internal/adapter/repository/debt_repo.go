package repository

import (
	"context"
	"fmt"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/result"
)

// DebtRepository implements usecase.DebtRepository over a row store.
type DebtRepository struct {
	src datasource.Rows
}

// NewDebtRepository creates a new DebtRepository.
func NewDebtRepository(src datasource.Rows) *DebtRepository {
	return &DebtRepository{src: src}
}

// GetAll returns every debt owned by ownerID.
func (r *DebtRepository) GetAll(ctx context.Context, ownerID string) result.Result[[]domain.Debt] {
	recs, err := r.src.ListDebts(ctx, ownerID)
	if err != nil {
		return result.Error[[]domain.Debt](err, "Could not load debts")
	}

	return result.Success(debtsToDomain(recs))
}

// GetByType returns the owner's debts of one type.
func (r *DebtRepository) GetByType(ctx context.Context, ownerID string, debtType domain.DebtType) result.Result[[]domain.Debt] {
	recs, err := r.src.ListDebtsByType(ctx, ownerID, string(debtType))
	if err != nil {
		return result.Error[[]domain.Debt](err, "Could not load debts")
	}

	return result.Success(debtsToDomain(recs))
}

// Create inserts a new debt row.
func (r *DebtRepository) Create(ctx context.Context, debt domain.Debt) result.Result[domain.Debt] {
	rec, err := r.src.InsertDebt(ctx, debtToRecord(debt))
	if err != nil {
		return result.Error[domain.Debt](err, "Could not create debt")
	}

	if rec == nil {
		return result.Error[domain.Debt](fmt.Errorf("%w: insert returned no row", domain.ErrEmptyResult), "Could not create debt")
	}

	return result.Success(recordToDebt(*rec))
}

// Update replaces an existing debt row.
func (r *DebtRepository) Update(ctx context.Context, debt domain.Debt) result.Result[domain.Debt] {
	rec, err := r.src.UpdateDebt(ctx, debtToRecord(debt))
	if err != nil {
		return result.Error[domain.Debt](err, "Could not update debt")
	}

	if rec == nil {
		return result.Error[domain.Debt](fmt.Errorf("%w: update returned no row", domain.ErrEmptyResult), "Could not update debt")
	}

	return result.Success(recordToDebt(*rec))
}

// MarkPaid flips a debt's is_paid flag to true. The flag never flips back.
func (r *DebtRepository) MarkPaid(ctx context.Context, id string) result.Result[result.Unit] {
	if err := r.src.MarkDebtPaid(ctx, id); err != nil {
		return result.Error[result.Unit](err, "Could not mark debt as paid")
	}

	return result.Success(result.Unit{})
}

// Delete removes a debt by id, succeeding even for absent rows.
func (r *DebtRepository) Delete(ctx context.Context, id string) result.Result[result.Unit] {
	if err := r.src.DeleteDebt(ctx, id); err != nil {
		return result.Error[result.Unit](err, "Could not delete debt")
	}

	return result.Success(result.Unit{})
}

// Snapshots performs one fetch and emits at most one list snapshot before
// closing the channel.
func (r *DebtRepository) Snapshots(ctx context.Context, ownerID string) <-chan []domain.Debt {
	out := make(chan []domain.Debt, 1)

	go func() {
		defer close(out)

		recs, err := r.src.ListDebts(ctx, ownerID)
		if err != nil {
			return
		}

		select {
		case out <- debtsToDomain(recs):
		case <-ctx.Done():
		}
	}()

	return out
}
