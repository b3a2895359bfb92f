package query

import (
	"FinTrack/internal/api/transaction"
	"FinTrack/internal/entity"
	"errors"
	"github.com/shopspring/decimal"
	"testing"
	"time"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func newTx(id string, workplaceID string, occurredAt time.Time) entity.Transaction {
	year, month := entity.DerivePeriod(occurredAt)
	return entity.Transaction{
		ID:          id,
		OwnerID:     "owner-1",
		WorkplaceID: workplaceID,
		Type:        entity.TransactionTypeIncome,
		Method:      entity.PaymentMethodCash,
		Amount:      decimal.NewFromInt(10),
		OccurredAt:  occurredAt,
		Year:        year,
		Month:       month,
	}
}

func TestYearToDateCeiling(t *testing.T) {
	tests := []struct {
		name        string
		year        int
		now         time.Time
		wantCeiling int
	}{
		{name: "current year", year: 2024, now: at(2024, 5, 20, 9), wantCeiling: 5},
		{name: "previous year", year: 2023, now: at(2024, 5, 20, 9), wantCeiling: 12},
		{name: "january", year: 2025, now: at(2025, 1, 1, 0), wantCeiling: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := YearToDate("owner-1", "wp-1", tt.year, tt.now)
			if err != nil {
				t.Fatalf("YearToDate() error = %v", err)
			}
			if f.MonthCeiling != tt.wantCeiling {
				t.Errorf("MonthCeiling = %d, want %d", f.MonthCeiling, tt.wantCeiling)
			}
		})
	}
}

func TestWhereYearToDate(t *testing.T) {
	f, _ := YearToDate("owner-1", "wp-1", 2024, at(2024, 5, 1, 0))

	stmt, args := f.SQL("SELECT * FROM transactions")

	want := "SELECT * FROM transactions WHERE owner_id = :owner_id AND workplace_id = :workplace_id AND year = :year AND month <= :month_ceiling " + OrderBy
	if stmt != want {
		t.Errorf("SQL() =\n%s\nwant\n%s", stmt, want)
	}
	if args["month_ceiling"] != 5 || args["year"] != 2024 || args["owner_id"] != "owner-1" {
		t.Errorf("args = %v", args)
	}
}

func TestWhereMonth(t *testing.T) {
	f, err := MonthOf("owner-1", "wp-1", 2024, 3)
	if err != nil {
		t.Fatal(err)
	}

	where, args := f.Where()
	want := "owner_id = :owner_id AND workplace_id = :workplace_id AND year = :year AND month = :month"
	if where != want {
		t.Errorf("Where() = %s", where)
	}
	if args["month"] != 3 {
		t.Errorf("month arg = %v", args["month"])
	}
}

func TestCustomRangeBounds(t *testing.T) {
	f, err := CustomRange("owner-1", "wp-1", at(2024, 3, 5, 17), at(2024, 3, 5, 8))
	if err != nil {
		t.Fatalf("CustomRange() error = %v", err)
	}

	where, args := f.Where()
	if where != "owner_id = :owner_id AND workplace_id = :workplace_id AND occurred_at >= :range_start AND occurred_at < :range_end" {
		t.Errorf("Where() = %s", where)
	}
	if got := args["range_start"].(time.Time); !got.Equal(at(2024, 3, 5, 0)) {
		t.Errorf("range_start = %v", got)
	}
	if got := args["range_end"].(time.Time); !got.Equal(at(2024, 3, 6, 0)) {
		t.Errorf("range_end = %v", got)
	}
}

func TestCustomRangeSingleDay(t *testing.T) {
	txs := []entity.Transaction{
		newTx("a", "wp-1", at(2024, 3, 4, 23)),
		newTx("b", "wp-1", at(2024, 3, 5, 0)),
		newTx("c", "wp-1", at(2024, 3, 5, 23)),
		newTx("d", "wp-1", at(2024, 3, 6, 0)),
		newTx("e", "wp-2", at(2024, 3, 5, 12)),
	}

	f, _ := CustomRange("owner-1", "wp-1", at(2024, 3, 5, 0), at(2024, 3, 5, 0))
	got := f.Apply(txs)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("order = %s,%s, want c,b", got[0].ID, got[1].ID)
	}
}

func TestCustomRangeInvalid(t *testing.T) {
	_, err := CustomRange("owner-1", "wp-1", at(2024, 3, 6, 0), at(2024, 3, 5, 0))
	if !errors.Is(err, transaction.ErrInvalidDateRange) {
		t.Errorf("err = %v, want ErrInvalidDateRange", err)
	}

	_, err = CustomRange("owner-1", "", at(2024, 3, 5, 0), at(2024, 3, 6, 0))
	if !errors.Is(err, transaction.ErrWorkplaceRequired) {
		t.Errorf("err = %v, want ErrWorkplaceRequired", err)
	}
}

func TestMonthOfInvalid(t *testing.T) {
	if _, err := MonthOf("owner-1", "wp-1", 2024, 13); !errors.Is(err, transaction.ErrInvalidPeriod) {
		t.Errorf("err = %v, want ErrInvalidPeriod", err)
	}
}

func TestApplyYearToDateOrder(t *testing.T) {
	txs := []entity.Transaction{
		newTx("jan", "wp-1", at(2024, 1, 10, 9)),
		newTx("may", "wp-1", at(2024, 5, 2, 9)),
		newTx("mar-late", "wp-1", at(2024, 3, 20, 9)),
		newTx("mar-early", "wp-1", at(2024, 3, 2, 9)),
		newTx("jun", "wp-1", at(2024, 6, 1, 9)),
		newTx("prev-year", "wp-1", at(2023, 12, 31, 9)),
	}

	f, _ := YearToDate("owner-1", "wp-1", 2024, at(2024, 5, 15, 0))
	got := f.Apply(txs)

	want := []string{"may", "mar-late", "mar-early", "jan"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ID, want[i])
		}
	}
}
