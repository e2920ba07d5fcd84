package repository

import (
	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
	"github.com/vecopay/vecopay/internal/domain"
)

// Record <-> domain conversion helpers. Amounts travel as float64 on the wire
// and as decimals in the domain; the float is the backend's contract, not ours.

func recordToAccount(rec datasource.AccountRecord) domain.Account {
	return domain.Account{
		ID:          rec.ID,
		Name:        rec.Name,
		Type:        domain.AccountType(rec.Type),
		Balance:     decimal.NewFromFloat(rec.Balance),
		Currency:    rec.Currency,
		Institution: deref(rec.Institution),
		Icon:        deref(rec.Icon),
		OwnerID:     rec.OwnerID,
	}
}

func accountToRecord(a domain.Account) datasource.AccountRecord {
	currency := a.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	return datasource.AccountRecord{
		ID:          a.ID,
		Name:        a.Name,
		Type:        string(a.Type),
		Balance:     a.Balance.InexactFloat64(),
		Currency:    currency,
		Institution: optional(a.Institution),
		Icon:        optional(a.Icon),
		OwnerID:     a.OwnerID,
	}
}

func recordToTransaction(rec datasource.TransactionRecord) domain.Transaction {
	return domain.Transaction{
		ID:          rec.ID,
		Amount:      decimal.NewFromFloat(rec.Amount),
		Type:        domain.TransactionType(rec.Type),
		Category:    rec.Category,
		Description: rec.Description,
		AccountID:   rec.AccountID,
		Date:        rec.Date,
		OwnerID:     rec.OwnerID,
	}
}

func transactionToRecord(t domain.Transaction) datasource.TransactionRecord {
	return datasource.TransactionRecord{
		ID:          t.ID,
		Amount:      t.Amount.InexactFloat64(),
		Type:        string(t.Type),
		Category:    t.Category,
		Description: t.Description,
		AccountID:   t.AccountID,
		Date:        t.Date,
		OwnerID:     t.OwnerID,
	}
}

func recordToDebt(rec datasource.DebtRecord) domain.Debt {
	return domain.Debt{
		ID:          rec.ID,
		Amount:      decimal.NewFromFloat(rec.Amount),
		Type:        domain.DebtType(rec.Type),
		Person:      rec.Person,
		Description: rec.Description,
		Date:        rec.Date,
		IsPaid:      rec.IsPaid,
		OwnerID:     rec.OwnerID,
	}
}

func debtToRecord(d domain.Debt) datasource.DebtRecord {
	return datasource.DebtRecord{
		ID:          d.ID,
		Amount:      d.Amount.InexactFloat64(),
		Type:        string(d.Type),
		Person:      d.Person,
		Description: d.Description,
		Date:        d.Date,
		IsPaid:      d.IsPaid,
		OwnerID:     d.OwnerID,
	}
}

func recordToUser(rec datasource.UserRecord) domain.User {
	return domain.User{
		ID:        rec.ID,
		Email:     rec.Email,
		Name:      deref(rec.Name),
		CreatedAt: deref(rec.CreatedAt),
	}
}

func accountsToDomain(recs []datasource.AccountRecord) []domain.Account {
	out := make([]domain.Account, 0, len(recs))
	for _, rec := range recs {
		out = append(out, recordToAccount(rec))
	}
	return out
}

func transactionsToDomain(recs []datasource.TransactionRecord) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(recs))
	for _, rec := range recs {
		out = append(out, recordToTransaction(rec))
	}
	return out
}

func debtsToDomain(recs []datasource.DebtRecord) []domain.Debt {
	out := make([]domain.Debt, 0, len(recs))
	for _, rec := range recs {
		out = append(out, recordToDebt(rec))
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
