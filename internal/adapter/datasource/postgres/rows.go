package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
)

const accountColumns = "id, name, type, balance, currency, institution, icon, owner_id"

func scanAccount(row pgx.Row) (*datasource.AccountRecord, error) {
	var rec datasource.AccountRecord
	err := row.Scan(&rec.ID, &rec.Name, &rec.Type, &rec.Balance, &rec.Currency,
		&rec.Institution, &rec.Icon, &rec.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAccounts returns the owner's account rows.
func (s *Store) ListAccounts(ctx context.Context, ownerID string) (_ []datasource.AccountRecord, err error) {
	defer s.track("list_accounts", time.Now(), &err)

	rows, err := s.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE owner_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []datasource.AccountRecord
	for rows.Next() {
		var rec datasource.AccountRecord
		if err = rows.Scan(&rec.ID, &rec.Name, &rec.Type, &rec.Balance, &rec.Currency,
			&rec.Institution, &rec.Icon, &rec.OwnerID); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

// GetAccount returns one account row, or (nil, nil) when absent.
func (s *Store) GetAccount(ctx context.Context, id string) (_ *datasource.AccountRecord, err error) {
	defer s.track("get_account", time.Now(), &err)

	rec, err := scanAccount(s.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
	`, id))
	return rec, err
}

// InsertAccount writes an account row and returns the stored shape.
func (s *Store) InsertAccount(ctx context.Context, rec datasource.AccountRecord) (_ *datasource.AccountRecord, err error) {
	defer s.track("insert_account", time.Now(), &err)

	stored, err := scanAccount(s.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, name, type, balance, currency, institution, icon, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+accountColumns+`
	`, rec.ID, rec.Name, rec.Type, rec.Balance, rec.Currency, rec.Institution, rec.Icon, rec.OwnerID))
	return stored, err
}

// UpdateAccount rewrites an account row and returns the stored shape, or
// (nil, nil) when the row no longer exists.
func (s *Store) UpdateAccount(ctx context.Context, rec datasource.AccountRecord) (_ *datasource.AccountRecord, err error) {
	defer s.track("update_account", time.Now(), &err)

	stored, err := scanAccount(s.pool.QueryRow(ctx, `
		UPDATE accounts
		SET name = $2, type = $3, balance = $4, currency = $5, institution = $6, icon = $7
		WHERE id = $1
		RETURNING `+accountColumns+`
	`, rec.ID, rec.Name, rec.Type, rec.Balance, rec.Currency, rec.Institution, rec.Icon))
	return stored, err
}

// DeleteAccount removes an account row. Deleting an absent id succeeds.
func (s *Store) DeleteAccount(ctx context.Context, id string) (err error) {
	defer s.track("delete_account", time.Now(), &err)

	_, err = s.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	return err
}

const transactionColumns = "id, amount, type, category, description, account_id, date, owner_id"

func scanTransaction(row pgx.Row) (*datasource.TransactionRecord, error) {
	var rec datasource.TransactionRecord
	var category *string
	err := row.Scan(&rec.ID, &rec.Amount, &rec.Type, &category, &rec.Description,
		&rec.AccountID, &rec.Date, &rec.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if category != nil {
		rec.Category = *category
	}
	return &rec, nil
}

func (s *Store) queryTransactions(ctx context.Context, query string, arg any) ([]datasource.TransactionRecord, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []datasource.TransactionRecord
	for rows.Next() {
		var rec datasource.TransactionRecord
		var category *string
		if err := rows.Scan(&rec.ID, &rec.Amount, &rec.Type, &category, &rec.Description,
			&rec.AccountID, &rec.Date, &rec.OwnerID); err != nil {
			return nil, err
		}
		if category != nil {
			rec.Category = *category
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

// ListTransactions returns the owner's transaction rows.
func (s *Store) ListTransactions(ctx context.Context, ownerID string) (_ []datasource.TransactionRecord, err error) {
	defer s.track("list_transactions", time.Now(), &err)

	out, err := s.queryTransactions(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE owner_id = $1
		ORDER BY date DESC
	`, ownerID)
	return out, err
}

// ListTransactionsByAccount returns the rows referencing one account.
func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID string) (_ []datasource.TransactionRecord, err error) {
	defer s.track("list_transactions_by_account", time.Now(), &err)

	out, err := s.queryTransactions(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE account_id = $1
		ORDER BY date DESC
	`, accountID)
	return out, err
}

// GetTransaction returns one transaction row, or (nil, nil) when absent.
func (s *Store) GetTransaction(ctx context.Context, id string) (_ *datasource.TransactionRecord, err error) {
	defer s.track("get_transaction", time.Now(), &err)

	rec, err := scanTransaction(s.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1
	`, id))
	return rec, err
}

// InsertTransaction writes a transaction row and returns the stored shape.
func (s *Store) InsertTransaction(ctx context.Context, rec datasource.TransactionRecord) (_ *datasource.TransactionRecord, err error) {
	defer s.track("insert_transaction", time.Now(), &err)

	stored, err := scanTransaction(s.pool.QueryRow(ctx, `
		INSERT INTO transactions (id, amount, type, category, description, account_id, date, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+transactionColumns+`
	`, rec.ID, rec.Amount, rec.Type, rec.Category, rec.Description, rec.AccountID, rec.Date, rec.OwnerID))
	return stored, err
}

// DeleteTransaction removes a transaction row. Deleting an absent id succeeds.
func (s *Store) DeleteTransaction(ctx context.Context, id string) (err error) {
	defer s.track("delete_transaction", time.Now(), &err)

	_, err = s.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}

const debtColumns = "id, amount, type, person, description, date, is_paid, owner_id"

func scanDebt(row pgx.Row) (*datasource.DebtRecord, error) {
	var rec datasource.DebtRecord
	err := row.Scan(&rec.ID, &rec.Amount, &rec.Type, &rec.Person, &rec.Description,
		&rec.Date, &rec.IsPaid, &rec.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) queryDebts(ctx context.Context, query string, args ...any) ([]datasource.DebtRecord, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []datasource.DebtRecord
	for rows.Next() {
		var rec datasource.DebtRecord
		if err := rows.Scan(&rec.ID, &rec.Amount, &rec.Type, &rec.Person, &rec.Description,
			&rec.Date, &rec.IsPaid, &rec.OwnerID); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

// ListDebts returns the owner's debt rows.
func (s *Store) ListDebts(ctx context.Context, ownerID string) (_ []datasource.DebtRecord, err error) {
	defer s.track("list_debts", time.Now(), &err)

	out, err := s.queryDebts(ctx, `
		SELECT `+debtColumns+`
		FROM debts
		WHERE owner_id = $1
		ORDER BY date DESC
	`, ownerID)
	return out, err
}

// ListDebtsByType returns the owner's debt rows of one type.
func (s *Store) ListDebtsByType(ctx context.Context, ownerID, debtType string) (_ []datasource.DebtRecord, err error) {
	defer s.track("list_debts_by_type", time.Now(), &err)

	out, err := s.queryDebts(ctx, `
		SELECT `+debtColumns+`
		FROM debts
		WHERE owner_id = $1 AND type = $2
		ORDER BY date DESC
	`, ownerID, debtType)
	return out, err
}

// InsertDebt writes a debt row and returns the stored shape.
func (s *Store) InsertDebt(ctx context.Context, rec datasource.DebtRecord) (_ *datasource.DebtRecord, err error) {
	defer s.track("insert_debt", time.Now(), &err)

	stored, err := scanDebt(s.pool.QueryRow(ctx, `
		INSERT INTO debts (id, amount, type, person, description, date, is_paid, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+debtColumns+`
	`, rec.ID, rec.Amount, rec.Type, rec.Person, rec.Description, rec.Date, rec.IsPaid, rec.OwnerID))
	return stored, err
}

// UpdateDebt rewrites a debt row and returns the stored shape, or (nil, nil)
// when the row no longer exists.
func (s *Store) UpdateDebt(ctx context.Context, rec datasource.DebtRecord) (_ *datasource.DebtRecord, err error) {
	defer s.track("update_debt", time.Now(), &err)

	stored, err := scanDebt(s.pool.QueryRow(ctx, `
		UPDATE debts
		SET amount = $2, type = $3, person = $4, description = $5, date = $6, is_paid = $7
		WHERE id = $1
		RETURNING `+debtColumns+`
	`, rec.ID, rec.Amount, rec.Type, rec.Person, rec.Description, rec.Date, rec.IsPaid))
	return stored, err
}

// MarkDebtPaid flips the paid flag. Marking an absent id succeeds.
func (s *Store) MarkDebtPaid(ctx context.Context, id string) (err error) {
	defer s.track("mark_debt_paid", time.Now(), &err)

	_, err = s.pool.Exec(ctx, `UPDATE debts SET is_paid = TRUE WHERE id = $1`, id)
	return err
}

// DeleteDebt removes a debt row. Deleting an absent id succeeds.
func (s *Store) DeleteDebt(ctx context.Context, id string) (err error) {
	defer s.track("delete_debt", time.Now(), &err)

	_, err = s.pool.Exec(ctx, `DELETE FROM debts WHERE id = $1`, id)
	return err
}

var (
	_ datasource.Auth = (*Store)(nil)
	_ datasource.Rows = (*Store)(nil)
)
