package state

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/usecase"
)

// TransactionFilter selects which transactions the history screen shows.
type TransactionFilter string

const (
	FilterAll     TransactionFilter = "all"
	FilterIncome  TransactionFilter = "income"
	FilterExpense TransactionFilter = "expense"
)

// HistoryState is the transaction history screen snapshot. Transactions
// holds the full list sorted by date descending; Filtered is the view after
// the selected filter.
type HistoryState struct {
	Loading      bool
	Transactions []domain.Transaction
	Filtered     []domain.Transaction
	Filter       TransactionFilter
	Error        string
	Success      string
}

// HistoryStore drives the transaction history screen.
type HistoryStore struct {
	*Store[HistoryState]

	transactions *usecase.TransactionUseCase
	ids          usecase.IDGenerator
	clock        usecase.Clock
}

func NewHistoryStore(
	transactions *usecase.TransactionUseCase,
	ids usecase.IDGenerator,
	clock usecase.Clock,
	log zerolog.Logger,
	onCommand func(string),
) *HistoryStore {
	return &HistoryStore{
		Store:        NewStore(HistoryState{Filter: FilterAll}, log.With().Str("store", "history").Logger(), onCommand),
		transactions: transactions,
		ids:          ids,
		clock:        clock,
	}
}

// Load fetches the owner's transactions, newest first.
func (st *HistoryStore) Load(ownerID string) {
	st.dispatch("load_transactions", func(ctx context.Context) {
		st.load(ctx, ownerID)
	})
}

// Create builds a transaction from the form fields, stamped with the current
// time and a fresh id.
func (st *HistoryStore) Create(
	ownerID string,
	amount decimal.Decimal,
	txType domain.TransactionType,
	category, description, accountID string,
) {
	st.dispatch("create_transaction", func(ctx context.Context) {
		st.beginMutation()

		tx := domain.Transaction{
			ID:          st.ids.Generate(),
			Amount:      amount,
			Type:        txType,
			Category:    category,
			Description: description,
			AccountID:   accountID,
			Date:        st.clock.Now().Format(time.RFC3339),
			OwnerID:     ownerID,
		}

		res := st.transactions.CreateTransaction(ctx, tx)
		st.settle(ctx, ownerID, "Transacción creada exitosamente", res.IsSuccess(), res.Message())
	})
}

// Delete removes a transaction.
func (st *HistoryStore) Delete(ownerID, transactionID string) {
	st.dispatch("delete_transaction", func(ctx context.Context) {
		st.beginMutation()

		res := st.transactions.DeleteTransaction(ctx, transactionID)
		st.settle(ctx, ownerID, "Transacción eliminada exitosamente", res.IsSuccess(), res.Message())
	})
}

// SetFilter narrows the visible list purely in memory. The backend is never
// contacted.
func (st *HistoryStore) SetFilter(filter TransactionFilter) {
	st.dispatch("set_filter", func(context.Context) {
		st.update(func(s HistoryState) HistoryState {
			s.Filter = filter
			s.Filtered = applyFilter(s.Transactions, filter)
			return s
		})
	})
}

// ClearMessages resets the transient error and success text.
func (st *HistoryStore) ClearMessages() {
	st.dispatch("clear_messages", func(context.Context) {
		st.update(func(s HistoryState) HistoryState {
			s.Error = ""
			s.Success = ""
			return s
		})
	})
}

func (st *HistoryStore) load(ctx context.Context, ownerID string) {
	st.update(func(s HistoryState) HistoryState {
		s.Loading = true
		s.Error = ""
		return s
	})

	fold(st.transactions.GetTransactions(ctx, ownerID),
		func(transactions []domain.Transaction) {
			sortByDateDesc(transactions)
			st.update(func(s HistoryState) HistoryState {
				s.Transactions = transactions
				s.Filtered = applyFilter(transactions, s.Filter)
				s.Loading = false
				return s
			})
		},
		func(message string) {
			st.update(func(s HistoryState) HistoryState {
				s.Error = message
				s.Loading = false
				return s
			})
		},
		func() {
			st.update(func(s HistoryState) HistoryState {
				s.Loading = true
				return s
			})
		},
	)
}

func (st *HistoryStore) beginMutation() {
	st.update(func(s HistoryState) HistoryState {
		s.Loading = true
		s.Error = ""
		return s
	})
}

func (st *HistoryStore) settle(ctx context.Context, ownerID, successMsg string, ok bool, errMsg string) {
	if ok {
		st.update(func(s HistoryState) HistoryState {
			s.Success = successMsg
			s.Loading = false
			return s
		})
		st.load(ctx, ownerID)
		return
	}

	st.update(func(s HistoryState) HistoryState {
		s.Error = errMsg
		s.Loading = false
		return s
	})
}

// sortByDateDesc orders newest first. Dates are RFC 3339 strings, so the
// lexicographic order matches the chronological one.
func sortByDateDesc(transactions []domain.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date > transactions[j].Date
	})
}

func applyFilter(transactions []domain.Transaction, filter TransactionFilter) []domain.Transaction {
	if filter == FilterAll || filter == "" {
		return transactions
	}

	want := domain.TransactionIncome
	if filter == FilterExpense {
		want = domain.TransactionExpense
	}

	var out []domain.Transaction
	for _, tx := range transactions {
		if tx.Type == want {
			out = append(out, tx)
		}
	}
	return out
}
