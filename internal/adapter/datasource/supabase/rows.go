package supabase

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
)

const restPrefix = "/rest/v1/"

// returnRepresentation asks PostgREST to echo the written row back.
var returnRepresentation = http.Header{"Prefer": []string{"return=representation"}}

func eq(field, value string) url.Values {
	return url.Values{field: []string{"eq." + value}}
}

// first returns the single row of a PostgREST response, or nil when the
// backend wrote or matched nothing.
func first[T any](rows []T) *T {
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

// ListAccounts returns the owner's account rows.
func (c *Client) ListAccounts(ctx context.Context, ownerID string) ([]datasource.AccountRecord, error) {
	var rows []datasource.AccountRecord
	err := c.do(ctx, "list_accounts", http.MethodGet, restPrefix+datasource.TableAccounts,
		eq("owner_id", ownerID), nil, &rows, nil)
	return rows, err
}

// GetAccount returns one account row, or (nil, nil) when it does not exist.
func (c *Client) GetAccount(ctx context.Context, id string) (*datasource.AccountRecord, error) {
	var rows []datasource.AccountRecord
	err := c.do(ctx, "get_account", http.MethodGet, restPrefix+datasource.TableAccounts,
		eq("id", id), nil, &rows, nil)
	if err != nil {
		return nil, err
	}
	return first(rows), nil
}

// InsertAccount writes an account row and returns the stored shape.
func (c *Client) InsertAccount(ctx context.Context, rec datasource.AccountRecord) (*datasource.AccountRecord, error) {
	var rows []datasource.AccountRecord
	err := c.do(ctx, "insert_account", http.MethodPost, restPrefix+datasource.TableAccounts,
		nil, rec, &rows, returnRepresentation)
	if err != nil {
		return nil, err
	}
	return first(rows), nil
}

// UpdateAccount patches an account row by id and returns the stored shape.
func (c *Client) UpdateAccount(ctx context.Context, rec datasource.AccountRecord) (*datasource.AccountRecord, error) {
	var rows []datasource.AccountRecord
	err := c.do(ctx, "update_account", http.MethodPatch, restPrefix+datasource.TableAccounts,
		eq("id", rec.ID), rec, &rows, returnRepresentation)
	if err != nil {
		return nil, err
	}
	return first(rows), nil
}

// DeleteAccount removes an account row. Deleting an absent id succeeds.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, "delete_account", http.MethodDelete, restPrefix+datasource.TableAccounts,
		eq("id", id), nil, nil, nil)
}

// ListTransactions returns the owner's transaction rows.
func (c *Client) ListTransactions(ctx context.Context, ownerID string) ([]datasource.TransactionRecord, error) {
	var rows []datasource.TransactionRecord
	err := c.do(ctx, "list_transactions", http.MethodGet, restPrefix+datasource.TableTransactions,
		eq("owner_id", ownerID), nil, &rows, nil)
	return rows, err
}

// ListTransactionsByAccount returns the rows referencing one account.
func (c *Client) ListTransactionsByAccount(ctx context.Context, accountID string) ([]datasource.TransactionRecord, error) {
	var rows []datasource.TransactionRecord
	err := c.do(ctx, "list_transactions_by_account", http.MethodGet, restPrefix+datasource.TableTransactions,
		eq("account_id", accountID), nil, &rows, nil)
	return rows, err
}

// GetTransaction returns one transaction row, or (nil, nil) when absent.
func (c *Client) GetTransaction(ctx context.Context, id string) (*datasource.TransactionRecord, error) {
	var rows []datasource.TransactionRecord
	err := c.do(ctx, "get_transaction", http.MethodGet, restPrefix+datasource.TableTransactions,
		eq("id", id), nil, &rows, nil)
	if err != nil {
		return nil, err
	}
	return first(rows), nil
}

// InsertTransaction writes a transaction row and returns the stored shape.
func (c *Client) InsertTransaction(ctx context.Context, rec datasource.TransactionRecord) (*datasource.TransactionRecord, error) {
	var rows []datasource.TransactionRecord
	err := c.do(ctx, "insert_transaction", http.MethodPost, restPrefix+datasource.TableTransactions,
		nil, rec, &rows, returnRepresentation)
	if err != nil {
		return nil, err
	}
	return first(rows), nil
}

// DeleteTransaction removes a transaction row. Deleting an absent id succeeds.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, "delete_transaction", http.MethodDelete, restPrefix+datasource.TableTransactions,
		eq("id", id), nil, nil, nil)
}

// ListDebts returns the owner's debt rows.
func (c *Client) ListDebts(ctx context.Context, ownerID string) ([]datasource.DebtRecord, error) {
	var rows []datasource.DebtRecord
	err := c.do(ctx, "list_debts", http.MethodGet, restPrefix+datasource.TableDebts,
		eq("owner_id", ownerID), nil, &rows, nil)
	return rows, err
}

// ListDebtsByType returns the owner's debt rows of one type.
func (c *Client) ListDebtsByType(ctx context.Context, ownerID, debtType string) ([]datasource.DebtRecord, error) {
	query := eq("owner_id", ownerID)
	query.Set("type", "eq."+debtType)

	var rows []datasource.DebtRecord
	err := c.do(ctx, "list_debts_by_type", http.MethodGet, restPrefix+datasource.TableDebts,
		query, nil, &rows, nil)
	return rows, err
}

// InsertDebt writes a debt row and returns the stored shape.
func (c *Client) InsertDebt(ctx context.Context, rec datasource.DebtRecord) (*datasource.DebtRecord, error) {
	var rows []datasource.DebtRecord
	err := c.do(ctx, "insert_debt", http.MethodPost, restPrefix+datasource.TableDebts,
		nil, rec, &rows, returnRepresentation)
	if err != nil {
		return nil, err
	}
	return first(rows), nil
}

// UpdateDebt patches a debt row by id and returns the stored shape.
func (c *Client) UpdateDebt(ctx context.Context, rec datasource.DebtRecord) (*datasource.DebtRecord, error) {
	var rows []datasource.DebtRecord
	err := c.do(ctx, "update_debt", http.MethodPatch, restPrefix+datasource.TableDebts,
		eq("id", rec.ID), rec, &rows, returnRepresentation)
	if err != nil {
		return nil, err
	}
	return first(rows), nil
}

// MarkDebtPaid patches only the paid flag.
func (c *Client) MarkDebtPaid(ctx context.Context, id string) error {
	return c.do(ctx, "mark_debt_paid", http.MethodPatch, restPrefix+datasource.TableDebts,
		eq("id", id), map[string]bool{"is_paid": true}, nil, nil)
}

// DeleteDebt removes a debt row. Deleting an absent id succeeds.
func (c *Client) DeleteDebt(ctx context.Context, id string) error {
	return c.do(ctx, "delete_debt", http.MethodDelete, restPrefix+datasource.TableDebts,
		eq("id", id), nil, nil, nil)
}

var (
	_ datasource.Auth = (*Client)(nil)
	_ datasource.Rows = (*Client)(nil)
)
