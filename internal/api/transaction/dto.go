package transaction

import (
	"github.com/shopspring/decimal"
	"time"
)

const DateLayout = "2006-01-02"

type CreateTransactionRequest struct {
	WorkplaceID string          `json:"workplace_id" validate:"required"`
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Method      string          `json:"method" validate:"required,oneof=Cash Online"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Note        string          `json:"note" validate:"max=500"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	OwnerID     string          `json:"-"`
}

// ListTransactionsQuery selects year-to-date by default. Month narrows it to one
// month; From and To replace the period with an inclusive day range.
type ListTransactionsQuery struct {
	WorkplaceID string `query:"workplace_id" validate:"required"`
	Year        int    `query:"year" validate:"omitempty,min=1"`
	Month       int    `query:"month" validate:"omitempty,min=1,max=12"`
	From        string `query:"from" validate:"required_with=To,omitempty,datetime=2006-01-02"`
	To          string `query:"to" validate:"required_with=From,omitempty,datetime=2006-01-02"`
	OwnerID     string `query:"-"`
}

// SummaryQuery selects at most one of Month and Date. Neither means the default
// month of Year.
type SummaryQuery struct {
	WorkplaceID string `query:"workplace_id" validate:"required"`
	Year        int    `query:"year" validate:"omitempty,min=1"`
	Month       int    `query:"month" validate:"omitempty,min=1,max=12,excluded_with=Date"`
	Date        string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	OwnerID     string `query:"-"`
}

type TransactionResponse struct {
	ID          string          `json:"id"`
	WorkplaceID string          `json:"workplace_id"`
	Type        string          `json:"type"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	CreatedAt   time.Time       `json:"created_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

type SelectionResponse struct {
	Kind  string `json:"kind"`
	Month int    `json:"month,omitempty"`
	Date  string `json:"date,omitempty"`
}

type TotalsResponse struct {
	IncomeCash    decimal.Decimal `json:"income_cash"`
	IncomeOnline  decimal.Decimal `json:"income_online"`
	ExpenseCash   decimal.Decimal `json:"expense_cash"`
	ExpenseOnline decimal.Decimal `json:"expense_online"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpense  decimal.Decimal `json:"total_expense"`
	Net           decimal.Decimal `json:"net"`
}

type SummaryResponse struct {
	WorkplaceID     string            `json:"workplace_id"`
	Year            int               `json:"year"`
	Selection       SelectionResponse `json:"selection"`
	AvailableMonths []int             `json:"available_months"`
	Count           int               `json:"count"`
	Totals          TotalsResponse    `json:"totals"`
}
