package report

import (
	"FinTrack/internal/entity"
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"strings"
	"testing"
	"time"
)

func testMeta() Meta {
	return Meta{
		WorkplaceName: "Clinic",
		UserLabel:     "dr.rossi@example.com",
		GeneratedAt:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Dates:         NewDateFormatter("en-US", time.UTC),
	}
}

func newTx(id string, t entity.TransactionType, m entity.PaymentMethod, amount string, occurredAt time.Time, note string) entity.Transaction {
	year, month := entity.DerivePeriod(occurredAt)
	return entity.Transaction{
		ID:          id,
		OwnerID:     "owner",
		WorkplaceID: "wp",
		Type:        t,
		Method:      m,
		Amount:      decimal.RequireFromString(amount),
		Note:        note,
		OccurredAt:  occurredAt,
		Year:        year,
		Month:       month,
	}
}

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 9, 30, 0, 0, time.UTC)
}

func sample() []entity.Transaction {
	return []entity.Transaction{
		newTx("1", entity.TransactionTypeIncome, entity.PaymentMethodCash, "100", d(2024, 3, 5), "consultation"),
		newTx("2", entity.TransactionTypeExpense, entity.PaymentMethodOnline, "40", d(2024, 3, 5), ""),
		newTx("3", entity.TransactionTypeIncome, entity.PaymentMethodCash, "60", d(2024, 4, 1), "a very long note that keeps going"),
	}
}

func TestBuildMonthly(t *testing.T) {
	doc, err := BuildMonthly(testMeta(), 2024, 3, sample())
	if err != nil {
		t.Fatalf("BuildMonthly() error = %v", err)
	}

	if doc.Filename != "Clinic_dr.rossi_03_2024.pdf" {
		t.Errorf("Filename = %s", doc.Filename)
	}
	if doc.Title != "Clinic - March 2024 Transaction Report" {
		t.Errorf("Title = %s", doc.Title)
	}
	if got := doc.RowCount("details"); got != 2 {
		t.Errorf("details rows = %d, want 2", got)
	}

	summary := doc.Table("summary")
	if summary == nil {
		t.Fatal("summary table missing")
	}
	wantSummary := [][]string{
		{"Income", "100.00", "0.00", "100.00"},
		{"Expense", "0.00", "40.00", "40.00"},
		{"Net Amount", "", "", "60.00"},
	}
	for i, row := range wantSummary {
		if strings.Join(summary.Rows[i], "|") != strings.Join(row, "|") {
			t.Errorf("summary row %d = %v, want %v", i, summary.Rows[i], row)
		}
	}

	details := doc.Table("details")
	if details.Rows[1][2] != "-" {
		t.Errorf("empty note rendered as %q, want -", details.Rows[1][2])
	}
	if details.Rows[0][0] != "Income" || details.Rows[0][4] != "3/5/2024" {
		t.Errorf("detail row = %v", details.Rows[0])
	}
}

func TestBuildMonthlyEmpty(t *testing.T) {
	doc, err := BuildMonthly(testMeta(), 2024, 1, sample())
	if err != nil {
		t.Fatal(err)
	}
	if doc.Table("details") != nil {
		t.Error("details table present for a month without data")
	}
	if got := doc.Table("summary").Rows[2][3]; got != "0.00" {
		t.Errorf("net = %s, want 0.00", got)
	}
}

func TestBuildMonthlyInvalid(t *testing.T) {
	if _, err := BuildMonthly(testMeta(), 2024, 0, nil); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("err = %v, want ErrInvalidMonth", err)
	}
}

func TestBuildAnnual(t *testing.T) {
	txs := append(sample(),
		newTx("4", entity.TransactionTypeExpense, entity.PaymentMethodCash, "15.50", d(2024, 11, 20), "rent"),
		newTx("5", entity.TransactionTypeIncome, entity.PaymentMethodOnline, "999", d(2023, 11, 20), "other year"),
	)

	doc, err := BuildAnnual(testMeta(), 2024, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), txs)
	if err != nil {
		t.Fatalf("BuildAnnual() error = %v", err)
	}

	if doc.Filename != "Clinic_dr.rossi_Annual_2024.pdf" {
		t.Errorf("Filename = %s", doc.Filename)
	}

	months := doc.Table("months")
	if len(months.Rows) != 2 {
		t.Fatalf("month rows = %d, want 2 (November is past the ceiling)", len(months.Rows))
	}
	if months.Rows[0][0] != "March" || months.Rows[1][0] != "April" {
		t.Errorf("months = %v", months.Rows)
	}

	grand := doc.Table("grand_total")
	if grand.Rows[0][1] != "160.00" || grand.Rows[1][1] != "40.00" || grand.Rows[2][1] != "120.00" {
		t.Errorf("grand total = %v", grand.Rows)
	}

	if got := doc.RowCount(MonthDetailTable(3)); got != 2 {
		t.Errorf("March details = %d, want 2", got)
	}
	april := doc.Table(MonthDetailTable(4))
	if april == nil || april.Rows[0][3] != "a very long note tha" {
		t.Errorf("April note not truncated to 20 characters: %v", april)
	}

	breaks := 0
	for _, b := range doc.Blocks {
		if b.Kind == BlockPageBreak {
			breaks++
		}
	}
	if breaks != 1 {
		t.Errorf("page breaks = %d, want 1", breaks)
	}
}

func TestBuildAnnualEmpty(t *testing.T) {
	doc, err := BuildAnnual(testMeta(), 2023, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), nil)
	if err != nil {
		t.Fatalf("BuildAnnual() error = %v", err)
	}

	if got := doc.RowCount("months"); got != 0 {
		t.Errorf("month rows = %d, want 0", got)
	}
	grand := doc.Table("grand_total")
	for i, want := range []string{"0.00", "0.00", "0.00"} {
		if grand.Rows[i][1] != want {
			t.Errorf("grand total row %d = %s, want %s", i, grand.Rows[i][1], want)
		}
	}
	for _, b := range doc.Blocks {
		if b.Kind == BlockPageBreak {
			t.Error("empty annual report has a detail section")
		}
	}
}

func TestBuildCustom(t *testing.T) {
	txs := append(sample(),
		newTx("6", entity.TransactionTypeExpense, entity.PaymentMethodCash, "5", time.Date(2024, 3, 4, 23, 59, 0, 0, time.UTC), ""),
		newTx("7", entity.TransactionTypeExpense, entity.PaymentMethodCash, "7", time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), ""),
	)

	doc, err := BuildCustom(testMeta(), d(2024, 3, 5), d(2024, 3, 5), txs)
	if err != nil {
		t.Fatalf("BuildCustom() error = %v", err)
	}

	if doc.Filename != "Clinic_dr.rossi_Custom_3-5-2024_to_3-5-2024.pdf" {
		t.Errorf("Filename = %s", doc.Filename)
	}
	if got := doc.RowCount("details"); got != 2 {
		t.Errorf("details rows = %d, want 2", got)
	}

	found := false
	for _, b := range doc.Blocks {
		if b.Kind == BlockText && b.Text == "Date Range: 3/5/2024 to 3/5/2024" {
			found = true
		}
	}
	if !found {
		t.Error("date range line missing")
	}
}

func TestBuildCustomInvalidRange(t *testing.T) {
	_, err := BuildCustom(testMeta(), d(2024, 3, 6), d(2024, 3, 5), nil)
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("err = %v, want ErrInvalidDateRange", err)
	}
}

func TestFilenameSanitizesWorkplace(t *testing.T) {
	meta := testMeta()
	meta.WorkplaceName = "Home/Office"
	meta.UserLabel = "alice"

	doc, err := BuildMonthly(meta, 2024, 12, nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := fmt.Sprintf("Home-Office_alice_12_%d.pdf", 2024); doc.Filename != want {
		t.Errorf("Filename = %s, want %s", doc.Filename, want)
	}
}
