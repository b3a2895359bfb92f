package entity

import (
	"FinTrack/internal/api/transaction"
	"github.com/shopspring/decimal"
	"time"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "Cash"
	PaymentMethodOnline PaymentMethod = "Online"
)

func IsValidTransactionType(transactionType string) bool {
	switch TransactionType(transactionType) {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

func IsValidPaymentMethod(method string) bool {
	switch PaymentMethod(method) {
	case PaymentMethodCash, PaymentMethodOnline:
		return true
	default:
		return false
	}
}

type Transaction struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	WorkplaceID string          `json:"workplace_id"`
	Type        TransactionType `json:"type"`
	Method      PaymentMethod   `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DerivePeriod is the only place year and month are computed from an occurrence time.
// Both are taken in t's own location.
func DerivePeriod(t time.Time) (year int, month int) {
	return t.Year(), int(t.Month())
}

// NewTransaction builds a transaction with its denormalized period filled in and validates it
// against now.
func NewTransaction(
	id string,
	ownerID string,
	workplaceID string,
	transactionType TransactionType,
	method PaymentMethod,
	amount decimal.Decimal,
	note string,
	occurredAt time.Time,
	now time.Time,
) (Transaction, error) {
	year, month := DerivePeriod(occurredAt)

	t := Transaction{
		ID:          id,
		OwnerID:     ownerID,
		WorkplaceID: workplaceID,
		Type:        transactionType,
		Method:      method,
		Amount:      amount,
		Note:        note,
		OccurredAt:  occurredAt,
		Year:        year,
		Month:       month,
		CreatedAt:   now,
	}

	if err := t.Validate(now); err != nil {
		return Transaction{}, err
	}

	return t, nil
}

func (t *Transaction) Validate(now time.Time) error {
	if t.WorkplaceID == "" {
		return transaction.ErrWorkplaceRequired
	}

	if !IsValidTransactionType(string(t.Type)) {
		return transaction.ErrInvalidTransactionType
	}

	if !IsValidPaymentMethod(string(t.Method)) {
		return transaction.ErrInvalidMethod
	}

	if !t.Amount.IsPositive() {
		return transaction.ErrInvalidAmount
	}

	if t.OccurredAt.IsZero() {
		return transaction.ErrMissingDate
	}

	if StartOfDay(t.OccurredAt).After(StartOfDay(now.In(t.OccurredAt.Location()))) {
		return transaction.ErrFutureDate
	}

	if year, month := DerivePeriod(t.OccurredAt); year != t.Year || month != t.Month {
		return transaction.ErrPeriodMismatch
	}

	return nil
}

func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in b's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
