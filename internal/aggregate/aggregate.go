// Package aggregate computes income and expense totals over transaction sets.
//
// Every function here is pure. Callers pass transactions already scoped to one
// workplace and one year; nothing is re-checked for ownership.
package aggregate

import (
	"FinTrack/internal/entity"
	"fmt"
	"github.com/shopspring/decimal"
	"sort"
	"time"
)

type Totals struct {
	IncomeCash    decimal.Decimal `json:"income_cash"`
	IncomeOnline  decimal.Decimal `json:"income_online"`
	ExpenseCash   decimal.Decimal `json:"expense_cash"`
	ExpenseOnline decimal.Decimal `json:"expense_online"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpense  decimal.Decimal `json:"total_expense"`
	Net           decimal.Decimal `json:"net"`
}

// Zero returns totals with every field set to an explicit zero.
func Zero() Totals {
	return Totals{
		IncomeCash:    decimal.Zero,
		IncomeOnline:  decimal.Zero,
		ExpenseCash:   decimal.Zero,
		ExpenseOnline: decimal.Zero,
		TotalIncome:   decimal.Zero,
		TotalExpense:  decimal.Zero,
		Net:           decimal.Zero,
	}
}

func (t Totals) Add(o Totals) Totals {
	return Totals{
		IncomeCash:    t.IncomeCash.Add(o.IncomeCash),
		IncomeOnline:  t.IncomeOnline.Add(o.IncomeOnline),
		ExpenseCash:   t.ExpenseCash.Add(o.ExpenseCash),
		ExpenseOnline: t.ExpenseOnline.Add(o.ExpenseOnline),
		TotalIncome:   t.TotalIncome.Add(o.TotalIncome),
		TotalExpense:  t.TotalExpense.Add(o.TotalExpense),
		Net:           t.Net.Add(o.Net),
	}
}

func (t Totals) Equal(o Totals) bool {
	return t.IncomeCash.Equal(o.IncomeCash) &&
		t.IncomeOnline.Equal(o.IncomeOnline) &&
		t.ExpenseCash.Equal(o.ExpenseCash) &&
		t.ExpenseOnline.Equal(o.ExpenseOnline) &&
		t.TotalIncome.Equal(o.TotalIncome) &&
		t.TotalExpense.Equal(o.TotalExpense) &&
		t.Net.Equal(o.Net)
}

func (t Totals) String() string {
	return fmt.Sprintf("income cash=%s online=%s, expense cash=%s online=%s, net=%s",
		FormatAmount(t.IncomeCash), FormatAmount(t.IncomeOnline),
		FormatAmount(t.ExpenseCash), FormatAmount(t.ExpenseOnline),
		FormatAmount(t.Net))
}

// FormatAmount renders money with exactly two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Sum totals every transaction in txs. Unknown types or methods are ignored.
func Sum(txs []entity.Transaction) Totals {
	t := Zero()
	for _, tx := range txs {
		switch {
		case tx.Type == entity.TransactionTypeIncome && tx.Method == entity.PaymentMethodCash:
			t.IncomeCash = t.IncomeCash.Add(tx.Amount)
		case tx.Type == entity.TransactionTypeIncome && tx.Method == entity.PaymentMethodOnline:
			t.IncomeOnline = t.IncomeOnline.Add(tx.Amount)
		case tx.Type == entity.TransactionTypeExpense && tx.Method == entity.PaymentMethodCash:
			t.ExpenseCash = t.ExpenseCash.Add(tx.Amount)
		case tx.Type == entity.TransactionTypeExpense && tx.Method == entity.PaymentMethodOnline:
			t.ExpenseOnline = t.ExpenseOnline.Add(tx.Amount)
		}
	}

	t.TotalIncome = t.IncomeCash.Add(t.IncomeOnline)
	t.TotalExpense = t.ExpenseCash.Add(t.ExpenseOnline)
	t.Net = t.TotalIncome.Sub(t.TotalExpense)

	return t
}

// Compute totals the subset of txs picked by sel. See Select.
func Compute(txs []entity.Transaction, sel Selection, year int, now time.Time) Totals {
	_, subset := Select(txs, sel, year, now)
	return Sum(subset)
}

// Select returns the resolved selection and the transactions it matches, keeping
// their input order. A default selection resolves to a concrete month.
func Select(txs []entity.Transaction, sel Selection, year int, now time.Time) (Selection, []entity.Transaction) {
	if sel.Kind == KindDefault {
		sel = Month(ResolveMonth(txs, year, now))
	}

	subset := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		if sel.Matches(tx) {
			subset = append(subset, tx)
		}
	}

	return sel, subset
}

// ResolveMonth picks the month a default view shows: the current month for the current
// year, otherwise the latest month of year that has data, otherwise the year's ceiling.
func ResolveMonth(txs []entity.Transaction, year int, now time.Time) int {
	currentYear, currentMonth := entity.DerivePeriod(now)
	if year == currentYear {
		return currentMonth
	}

	latest := 0
	for _, tx := range txs {
		if tx.Year == year && tx.Month > latest {
			latest = tx.Month
		}
	}
	if latest > 0 {
		return latest
	}

	return entity.MonthCeiling(year, now)
}

// AvailableMonths lists the months a user can pick for year, oldest first.
func AvailableMonths(year int, now time.Time) []int {
	ceiling := entity.MonthCeiling(year, now)
	months := make([]int, 0, ceiling)
	for m := 1; m <= ceiling; m++ {
		months = append(months, m)
	}
	return months
}

type MonthTotals struct {
	Month  int
	Count  int
	Totals Totals
}

// ByMonth groups txs by month for months 1..ceiling, dropping months with no data.
// The result is ordered January first.
func ByMonth(txs []entity.Transaction, ceiling int) []MonthTotals {
	grouped := make(map[int][]entity.Transaction)
	for _, tx := range txs {
		if tx.Month < 1 || tx.Month > ceiling {
			continue
		}
		grouped[tx.Month] = append(grouped[tx.Month], tx)
	}

	months := make([]MonthTotals, 0, len(grouped))
	for month, monthTxs := range grouped {
		months = append(months, MonthTotals{
			Month:  month,
			Count:  len(monthTxs),
			Totals: Sum(monthTxs),
		})
	}

	sort.Slice(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})

	return months
}

// GrandTotal adds up per-month totals.
func GrandTotal(months []MonthTotals) Totals {
	t := Zero()
	for _, m := range months {
		t = t.Add(m.Totals)
	}
	return t
}
