package report

import (
	"FinTrack/internal/aggregate"
	"FinTrack/internal/entity"
	"FinTrack/pkg/utils"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const noteLimit = 20

var (
	summaryColumns = []Column{
		{Header: "Category", Width: 60, Align: AlignLeft},
		{Header: "Cash", Width: 40, Align: AlignRight},
		{Header: "Online", Width: 40, Align: AlignRight},
		{Header: "Total", Width: 40, Align: AlignRight},
	}

	monthlyDetailColumns = []Column{
		{Header: "Type", Width: 25, Align: AlignLeft},
		{Header: "Method", Width: 25, Align: AlignLeft},
		{Header: "Note", Width: 70, Align: AlignLeft},
		{Header: "Amount", Width: 30, Align: AlignRight},
		{Header: "Date", Width: 30, Align: AlignLeft},
	}

	datedDetailColumns = []Column{
		{Header: "Date", Width: 30, Align: AlignLeft},
		{Header: "Type", Width: 25, Align: AlignLeft},
		{Header: "Method", Width: 25, Align: AlignLeft},
		{Header: "Note", Width: 65, Align: AlignLeft},
		{Header: "Amount", Width: 35, Align: AlignRight},
	}

	monthSummaryColumns = []Column{
		{Header: "Month", Width: 45, Align: AlignLeft},
		{Header: "Income", Width: 45, Align: AlignRight},
		{Header: "Expense", Width: 45, Align: AlignRight},
		{Header: "Net", Width: 45, Align: AlignRight},
	}

	grandTotalColumns = []Column{
		{Header: "Total Annual Summary", Width: 90, Align: AlignLeft},
		{Header: "Amount", Width: 90, Align: AlignRight},
	}
)

// BuildMonthly lays out the summary and the full transaction list of one month.
// Transactions outside (year, month) are ignored.
func BuildMonthly(meta Meta, year, month int, txs []entity.Transaction) (*Document, error) {
	if !entity.IsValidMonth(month) {
		return nil, ErrInvalidMonth
	}
	if year < 1 {
		return nil, ErrInvalidYear
	}

	sel := aggregate.Month(month)
	monthTxs := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Year == year && sel.Matches(tx) {
			monthTxs = append(monthTxs, tx)
		}
	}

	doc := &Document{
		Kind:     KindMonthly,
		Title:    fmt.Sprintf("%s - %s %d Transaction Report", meta.WorkplaceName, entity.MonthName(month), year),
		Filename: filename(meta, fmt.Sprintf("%02d_%d", month, year)),
	}
	writeHeader(doc, meta)

	doc.table(summaryTable(aggregate.Sum(monthTxs)))

	if len(monthTxs) > 0 {
		doc.space(10)
		doc.table(&Table{
			Name:     "details",
			Columns:  monthlyDetailColumns,
			Rows:     detailRows(meta, monthTxs, false),
			FontSize: 10,
		})
	}

	return doc, nil
}

// BuildAnnual summarizes every month of year up to its ceiling that has data, adds a
// grand total and lists each month's transactions from the second page onward.
func BuildAnnual(meta Meta, year int, now time.Time, txs []entity.Transaction) (*Document, error) {
	if year < 1 {
		return nil, ErrInvalidYear
	}

	yearTxs := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Year == year {
			yearTxs = append(yearTxs, tx)
		}
	}

	months := aggregate.ByMonth(yearTxs, entity.MonthCeiling(year, now))
	grand := aggregate.GrandTotal(months)

	doc := &Document{
		Kind:     KindAnnual,
		Title:    fmt.Sprintf("%s - %d Annual Transaction Report", meta.WorkplaceName, year),
		Filename: filename(meta, fmt.Sprintf("Annual_%d", year)),
	}
	writeHeader(doc, meta)

	monthRows := make([][]string, 0, len(months))
	for _, m := range months {
		monthRows = append(monthRows, []string{
			entity.MonthName(m.Month),
			aggregate.FormatAmount(m.Totals.TotalIncome),
			aggregate.FormatAmount(m.Totals.TotalExpense),
			aggregate.FormatAmount(m.Totals.Net),
		})
	}
	doc.table(&Table{Name: "months", Columns: monthSummaryColumns, Rows: monthRows, FontSize: 10})

	doc.space(6)
	doc.table(&Table{
		Name:    "grand_total",
		Columns: grandTotalColumns,
		Rows: [][]string{
			{"Total Income", aggregate.FormatAmount(grand.TotalIncome)},
			{"Total Expense", aggregate.FormatAmount(grand.TotalExpense)},
			{"Net Amount", aggregate.FormatAmount(grand.Net)},
		},
		FontSize: 10,
	})

	if len(months) == 0 {
		return doc, nil
	}

	doc.pageBreak()
	doc.heading("Detailed Monthly Transactions", 16)
	doc.space(4)

	for _, m := range months {
		sel := aggregate.Month(m.Month)
		monthTxs := make([]entity.Transaction, 0, m.Count)
		for _, tx := range yearTxs {
			if sel.Matches(tx) {
				monthTxs = append(monthTxs, tx)
			}
		}

		doc.heading(fmt.Sprintf("%s %d", entity.MonthName(m.Month), year), 14)
		doc.keepWithNext()
		doc.text(fmt.Sprintf("Month Total - Income: %s, Expense: %s, Net: %s",
			aggregate.FormatAmount(m.Totals.TotalIncome),
			aggregate.FormatAmount(m.Totals.TotalExpense),
			aggregate.FormatAmount(m.Totals.Net)), 10)
		doc.keepWithNext()
		doc.table(&Table{
			Name:     MonthDetailTable(m.Month),
			Columns:  datedDetailColumns,
			Rows:     detailRows(meta, monthTxs, true),
			FontSize: 8,
		})
		doc.space(8)
	}

	return doc, nil
}

// BuildCustom covers the inclusive calendar days from..to. Transactions outside
// the range are ignored.
func BuildCustom(meta Meta, from, to time.Time, txs []entity.Transaction) (*Document, error) {
	loc := meta.Dates.Location()
	start := entity.StartOfDay(from.In(loc))
	end := entity.StartOfDay(to.In(loc))
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	upper := end.AddDate(0, 0, 1)

	rangeTxs := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		occurred := tx.OccurredAt.In(loc)
		if !occurred.Before(start) && occurred.Before(upper) {
			rangeTxs = append(rangeTxs, tx)
		}
	}

	fromLabel := meta.Dates.Short(start)
	toLabel := meta.Dates.Short(end)

	doc := &Document{
		Kind:  KindCustom,
		Title: fmt.Sprintf("%s - Custom Report", meta.WorkplaceName),
		Filename: filename(meta, fmt.Sprintf("Custom_%s_to_%s",
			strings.ReplaceAll(fromLabel, "/", "-"),
			strings.ReplaceAll(toLabel, "/", "-"))),
	}
	writeHeader(doc, meta, fmt.Sprintf("Date Range: %s to %s", fromLabel, toLabel))

	doc.table(summaryTable(aggregate.Sum(rangeTxs)))

	if len(rangeTxs) > 0 {
		doc.space(10)
		doc.table(&Table{
			Name:     "details",
			Columns:  datedDetailColumns,
			Rows:     detailRows(meta, rangeTxs, true),
			FontSize: 9,
		})
	}

	return doc, nil
}

// MonthDetailTable names the per-month detail table of an annual report.
func MonthDetailTable(month int) string {
	return fmt.Sprintf("details_%02d", month)
}

func writeHeader(doc *Document, meta Meta, extra ...string) {
	doc.heading(doc.Title, 20)
	doc.space(6)
	doc.text("User: "+meta.UserLabel, 12)
	for _, line := range extra {
		doc.text(line, 12)
	}
	doc.text("Generated on: "+meta.Dates.Short(meta.GeneratedAt), 12)
	doc.space(8)
}

func summaryTable(t aggregate.Totals) *Table {
	return &Table{
		Name:    "summary",
		Columns: summaryColumns,
		Rows: [][]string{
			{"Income", aggregate.FormatAmount(t.IncomeCash), aggregate.FormatAmount(t.IncomeOnline), aggregate.FormatAmount(t.TotalIncome)},
			{"Expense", aggregate.FormatAmount(t.ExpenseCash), aggregate.FormatAmount(t.ExpenseOnline), aggregate.FormatAmount(t.TotalExpense)},
			{"Net Amount", "", "", aggregate.FormatAmount(t.Net)},
		},
		FontSize: 10,
	}
}

// detailRows renders one row per transaction. Dated rows put the date first and
// shorten notes.
func detailRows(meta Meta, txs []entity.Transaction, dated bool) [][]string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		note := tx.Note
		if strings.TrimSpace(note) == "" {
			note = "-"
		}

		typeLabel := capitalize(string(tx.Type))
		amount := aggregate.FormatAmount(tx.Amount)
		date := meta.Dates.Short(tx.OccurredAt)

		if dated {
			rows = append(rows, []string{date, typeLabel, string(tx.Method), truncate(note, noteLimit), amount})
			continue
		}
		rows = append(rows, []string{typeLabel, string(tx.Method), note, amount, date})
	}
	return rows
}

func filename(meta Meta, period string) string {
	workplace := strings.NewReplacer("/", "-", "\\", "-").Replace(strings.TrimSpace(meta.WorkplaceName))
	if workplace == "" {
		workplace = "Workplace"
	}
	return fmt.Sprintf("%s_%s_%s.pdf", workplace, utils.New().EmailLocalPart(meta.UserLabel), period)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[size:]
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
