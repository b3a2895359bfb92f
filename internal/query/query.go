// Package query builds the workplace-scoped filters used to read transactions.
//
// A Filter is rendered to a SQL predicate with named arguments for sqlx and can
// also be evaluated in memory against already loaded transactions.
package query

import (
	"FinTrack/internal/api/transaction"
	"FinTrack/internal/entity"
	"sort"
	"strings"
	"time"
)

// OrderBy returns the most recent data first.
const OrderBy = "ORDER BY year DESC, month DESC, occurred_at DESC, id DESC"

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Bounds returns the half-open interval [start, end) covering every day of the range.
// end is the start of the day after To.
func (r DateRange) Bounds() (start time.Time, end time.Time) {
	start = entity.StartOfDay(r.From)
	end = entity.StartOfDay(r.To).AddDate(0, 0, 1)
	return start, end
}

func (r DateRange) Contains(t time.Time) bool {
	start, end := r.Bounds()
	t = t.In(start.Location())
	return !t.Before(start) && t.Before(end)
}

type Filter struct {
	OwnerID      string
	WorkplaceID  string
	Year         int
	Month        int
	MonthCeiling int
	Range        *DateRange
}

// YearToDate selects every visible month of year: up to the current month for the
// current year and the full year otherwise.
func YearToDate(ownerID, workplaceID string, year int, now time.Time) (Filter, error) {
	f := Filter{
		OwnerID:      ownerID,
		WorkplaceID:  workplaceID,
		Year:         year,
		MonthCeiling: entity.MonthCeiling(year, now),
	}
	return f, f.Validate()
}

// MonthOf selects a single month of year.
func MonthOf(ownerID, workplaceID string, year, month int) (Filter, error) {
	f := Filter{
		OwnerID:     ownerID,
		WorkplaceID: workplaceID,
		Year:        year,
		Month:       month,
	}
	return f, f.Validate()
}

// CustomRange selects the inclusive calendar days from..to regardless of year or
// month boundaries. Days are taken in the location of from.
func CustomRange(ownerID, workplaceID string, from, to time.Time) (Filter, error) {
	f := Filter{
		OwnerID:     ownerID,
		WorkplaceID: workplaceID,
		Range: &DateRange{
			From: entity.StartOfDay(from),
			To:   entity.StartOfDay(to.In(from.Location())),
		},
	}
	return f, f.Validate()
}

func (f Filter) Validate() error {
	if f.WorkplaceID == "" {
		return transaction.ErrWorkplaceRequired
	}

	if f.Range != nil {
		if f.Range.From.IsZero() || f.Range.To.IsZero() {
			return transaction.ErrMissingDate
		}
		if f.Range.From.After(f.Range.To) {
			return transaction.ErrInvalidDateRange
		}
		return nil
	}

	if f.Year < 1 {
		return transaction.ErrInvalidPeriod
	}
	if f.Month != 0 && !entity.IsValidMonth(f.Month) {
		return transaction.ErrInvalidPeriod
	}
	if f.MonthCeiling != 0 && !entity.IsValidMonth(f.MonthCeiling) {
		return transaction.ErrInvalidPeriod
	}

	return nil
}

// Where renders the filter as a SQL predicate with named parameters.
func (f Filter) Where() (string, map[string]interface{}) {
	clauses := []string{"owner_id = :owner_id", "workplace_id = :workplace_id"}
	args := map[string]interface{}{
		"owner_id":     f.OwnerID,
		"workplace_id": f.WorkplaceID,
	}

	if f.Range != nil {
		start, end := f.Range.Bounds()
		clauses = append(clauses, "occurred_at >= :range_start", "occurred_at < :range_end")
		args["range_start"] = start
		args["range_end"] = end
		return strings.Join(clauses, " AND "), args
	}

	clauses = append(clauses, "year = :year")
	args["year"] = f.Year

	switch {
	case f.Month != 0:
		clauses = append(clauses, "month = :month")
		args["month"] = f.Month
	case f.MonthCeiling != 0:
		clauses = append(clauses, "month <= :month_ceiling")
		args["month_ceiling"] = f.MonthCeiling
	}

	return strings.Join(clauses, " AND "), args
}

// SQL appends the predicate and the sort order to a SELECT statement.
func (f Filter) SQL(selectStmt string) (string, map[string]interface{}) {
	where, args := f.Where()
	return selectStmt + " WHERE " + where + " " + OrderBy, args
}

func (f Filter) Matches(tx entity.Transaction) bool {
	if tx.OwnerID != f.OwnerID || tx.WorkplaceID != f.WorkplaceID {
		return false
	}

	if f.Range != nil {
		return f.Range.Contains(tx.OccurredAt)
	}

	if tx.Year != f.Year {
		return false
	}
	if f.Month != 0 && tx.Month != f.Month {
		return false
	}
	if f.MonthCeiling != 0 && tx.Month > f.MonthCeiling {
		return false
	}

	return true
}

// Apply returns the matching transactions in OrderBy order.
func (f Filter) Apply(txs []entity.Transaction) []entity.Transaction {
	matched := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Matches(tx) {
			matched = append(matched, tx)
		}
	}
	Sort(matched)
	return matched
}

// Sort orders txs the same way OrderBy does.
func Sort(txs []entity.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		a, b := txs[i], txs[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		if !a.OccurredAt.Equal(b.OccurredAt) {
			return a.OccurredAt.After(b.OccurredAt)
		}
		return a.ID > b.ID
	})
}
