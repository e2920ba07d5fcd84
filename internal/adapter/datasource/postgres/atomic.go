package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
	"github.com/vecopay/vecopay/internal/domain"
)

// InsertTransactionApplyingBalance writes the transaction row and the new
// account balance inside one database transaction, with the account row
// locked for the duration. There is no partial-failure window on this path.
func (s *Store) InsertTransactionApplyingBalance(ctx context.Context, rec datasource.TransactionRecord, accountID string, newBalance float64) (_ *datasource.TransactionRecord, err error) {
	defer s.track("insert_transaction_atomic", time.Now(), &err)

	var stored *datasource.TransactionRecord
	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := lockAccount(ctx, tx, accountID); err != nil {
			return err
		}

		var inner datasource.TransactionRecord
		var category *string
		err := tx.QueryRow(ctx, `
			INSERT INTO transactions (id, amount, type, category, description, account_id, date, owner_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+transactionColumns+`
		`, rec.ID, rec.Amount, rec.Type, rec.Category, rec.Description, rec.AccountID, rec.Date, rec.OwnerID).
			Scan(&inner.ID, &inner.Amount, &inner.Type, &category, &inner.Description,
				&inner.AccountID, &inner.Date, &inner.OwnerID)
		if err != nil {
			return err
		}
		if category != nil {
			inner.Category = *category
		}

		if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $2 WHERE id = $1`, accountID, newBalance); err != nil {
			return err
		}

		stored = &inner
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// DeleteTransactionApplyingBalance removes the transaction row and writes
// the compensated balance inside one database transaction.
func (s *Store) DeleteTransactionApplyingBalance(ctx context.Context, id, accountID string, newBalance float64) (err error) {
	defer s.track("delete_transaction_atomic", time.Now(), &err)

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := lockAccount(ctx, tx, accountID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `UPDATE accounts SET balance = $2 WHERE id = $1`, accountID, newBalance)
		return err
	})
}

func lockAccount(ctx context.Context, tx pgx.Tx, accountID string) error {
	var locked string
	err := tx.QueryRow(ctx, `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`, accountID).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrAccountNotFound
	}
	return err
}

var _ datasource.AtomicRows = (*Store)(nil)
