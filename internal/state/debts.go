package state

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/usecase"
)

// DebtsState is the debts screen snapshot: both lists plus the unpaid totals.
type DebtsState struct {
	Loading      bool
	IOwe         []domain.Debt
	TheyOwe      []domain.Debt
	TotalIOwe    decimal.Decimal
	TotalTheyOwe decimal.Decimal
	Error        string
	Success      string
}

// DebtsStore drives the debts screen.
type DebtsStore struct {
	*Store[DebtsState]

	debts *usecase.DebtUseCase
	ids   usecase.IDGenerator
	clock usecase.Clock
}

func NewDebtsStore(
	debts *usecase.DebtUseCase,
	ids usecase.IDGenerator,
	clock usecase.Clock,
	log zerolog.Logger,
	onCommand func(string),
) *DebtsStore {
	return &DebtsStore{
		Store: NewStore(DebtsState{}, log.With().Str("store", "debts").Logger(), onCommand),
		debts: debts,
		ids:   ids,
		clock: clock,
	}
}

// Load refreshes both lists and both totals. List failures surface as the
// screen error; total failures are tolerated and leave the previous figures.
func (st *DebtsStore) Load(ownerID string) {
	st.dispatch("load_debts", func(ctx context.Context) {
		st.load(ctx, ownerID)
	})
}

// Create builds a debt from the form fields.
func (st *DebtsStore) Create(
	ownerID string,
	amount decimal.Decimal,
	debtType domain.DebtType,
	person, description string,
) {
	st.dispatch("create_debt", func(ctx context.Context) {
		st.beginMutation()

		debt := domain.Debt{
			ID:          st.ids.Generate(),
			Amount:      amount,
			Type:        debtType,
			Person:      person,
			Description: description,
			Date:        st.clock.Now().Format(time.RFC3339),
			OwnerID:     ownerID,
		}

		res := st.debts.CreateDebt(ctx, debt)
		st.settle(ctx, ownerID, "Deuda creada exitosamente", res.IsSuccess(), res.Message())
	})
}

// Update saves edits to an existing debt.
func (st *DebtsStore) Update(ownerID string, debt domain.Debt) {
	st.dispatch("update_debt", func(ctx context.Context) {
		st.beginMutation()

		res := st.debts.UpdateDebt(ctx, debt)
		st.settle(ctx, ownerID, "Deuda actualizada exitosamente", res.IsSuccess(), res.Message())
	})
}

// MarkPaid flips a debt to paid.
func (st *DebtsStore) MarkPaid(ownerID, debtID string) {
	st.dispatch("mark_debt_paid", func(ctx context.Context) {
		st.beginMutation()

		res := st.debts.MarkDebtAsPaid(ctx, debtID)
		st.settle(ctx, ownerID, "Deuda marcada como pagada", res.IsSuccess(), res.Message())
	})
}

// Delete removes a debt.
func (st *DebtsStore) Delete(ownerID, debtID string) {
	st.dispatch("delete_debt", func(ctx context.Context) {
		st.beginMutation()

		res := st.debts.DeleteDebt(ctx, debtID)
		st.settle(ctx, ownerID, "Deuda eliminada exitosamente", res.IsSuccess(), res.Message())
	})
}

// ClearMessages resets the transient error and success text.
func (st *DebtsStore) ClearMessages() {
	st.dispatch("clear_messages", func(context.Context) {
		st.update(func(s DebtsState) DebtsState {
			s.Error = ""
			s.Success = ""
			return s
		})
	})
}

func (st *DebtsStore) load(ctx context.Context, ownerID string) {
	st.update(func(s DebtsState) DebtsState {
		s.Loading = true
		s.Error = ""
		return s
	})

	fold(st.debts.GetDebtsByType(ctx, ownerID, domain.DebtIOwe),
		func(debts []domain.Debt) {
			st.update(func(s DebtsState) DebtsState {
				s.IOwe = debts
				return s
			})
		},
		func(message string) {
			st.update(func(s DebtsState) DebtsState {
				s.Error = message
				return s
			})
		},
		func() {},
	)

	fold(st.debts.GetDebtsByType(ctx, ownerID, domain.DebtTheyOwe),
		func(debts []domain.Debt) {
			st.update(func(s DebtsState) DebtsState {
				s.TheyOwe = debts
				return s
			})
		},
		func(message string) {
			st.update(func(s DebtsState) DebtsState {
				s.Error = message
				return s
			})
		},
		func() {},
	)

	if res := st.debts.TotalIOwe(ctx, ownerID); res.IsSuccess() {
		st.update(func(s DebtsState) DebtsState {
			s.TotalIOwe = res.Value()
			return s
		})
	}

	if res := st.debts.TotalTheyOwe(ctx, ownerID); res.IsSuccess() {
		st.update(func(s DebtsState) DebtsState {
			s.TotalTheyOwe = res.Value()
			return s
		})
	}

	st.update(func(s DebtsState) DebtsState {
		s.Loading = false
		return s
	})
}

func (st *DebtsStore) beginMutation() {
	st.update(func(s DebtsState) DebtsState {
		s.Loading = true
		s.Error = ""
		return s
	})
}

func (st *DebtsStore) settle(ctx context.Context, ownerID, successMsg string, ok bool, errMsg string) {
	if ok {
		st.update(func(s DebtsState) DebtsState {
			s.Success = successMsg
			s.Loading = false
			return s
		})
		st.load(ctx, ownerID)
		return
	}

	st.update(func(s DebtsState) DebtsState {
		s.Error = errMsg
		s.Loading = false
		return s
	})
}
