package main

import (
	"FinTrack/internal/aggregate"
	"FinTrack/internal/api/transaction"
	"FinTrack/internal/coordinator"
	"FinTrack/internal/entity"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func printWorkplaces(w io.Writer, workplaces []entity.Workplace, currentID string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tNAME\tID\tCREATED")
	for _, wp := range workplaces {
		marker := ""
		if wp.ID == currentID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, wp.Name, wp.ID, wp.CreatedAt.Format(transaction.DateLayout))
	}
	tw.Flush()
}

func describeSelection(year int, sel aggregate.Selection) string {
	switch sel.Kind {
	case aggregate.KindMonth:
		return fmt.Sprintf("%s %d", time.Month(sel.Month), year)
	case aggregate.KindDate:
		return sel.Date.Format(transaction.DateLayout)
	default:
		return fmt.Sprintf("%d", year)
	}
}

func printView(w io.Writer, v coordinator.View) {
	fmt.Fprintf(w, "%s | %s\n", v.Workplace.Name, describeSelection(v.Year, v.Selection))

	months := make([]string, 0, len(v.Months))
	for _, m := range v.Months {
		months = append(months, time.Month(m).String()[:3])
	}
	fmt.Fprintf(w, "Months: %s\n\n", strings.Join(months, " "))

	printTotals(w, v.Totals)

	if len(v.Transactions) == 0 {
		fmt.Fprintln(w, "\nNo transactions.")
		return
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tMETHOD\tAMOUNT\tNOTE\tID")
	for _, tx := range v.Transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.OccurredAt.Format(transaction.DateLayout), tx.Type, tx.Method,
			aggregate.FormatAmount(tx.Amount), noteOrDash(tx.Note), tx.ID)
	}
	tw.Flush()
}

func printTotals(w io.Writer, t aggregate.Totals) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tCASH\tONLINE\tTOTAL\t")
	fmt.Fprintf(tw, "Income\t%s\t%s\t%s\t\n",
		aggregate.FormatAmount(t.IncomeCash), aggregate.FormatAmount(t.IncomeOnline), aggregate.FormatAmount(t.TotalIncome))
	fmt.Fprintf(tw, "Expense\t%s\t%s\t%s\t\n",
		aggregate.FormatAmount(t.ExpenseCash), aggregate.FormatAmount(t.ExpenseOnline), aggregate.FormatAmount(t.TotalExpense))
	fmt.Fprintf(tw, "Net\t\t\t%s\t\n", aggregate.FormatAmount(t.Net))
	tw.Flush()
}

func printSummary(w io.Writer, workplaceName string, res transaction.SummaryResponse) {
	sel := aggregate.Default()
	switch res.Selection.Kind {
	case "month":
		sel = aggregate.Month(res.Selection.Month)
	case "date":
		if d, err := time.Parse(transaction.DateLayout, res.Selection.Date); err == nil {
			sel = aggregate.Date(d)
		}
	}

	fmt.Fprintf(w, "%s | %s | %d transaction(s)\n\n", workplaceName, describeSelection(res.Year, sel), res.Count)
	printTotals(w, aggregate.Totals{
		IncomeCash:    res.Totals.IncomeCash,
		IncomeOnline:  res.Totals.IncomeOnline,
		ExpenseCash:   res.Totals.ExpenseCash,
		ExpenseOnline: res.Totals.ExpenseOnline,
		TotalIncome:   res.Totals.TotalIncome,
		TotalExpense:  res.Totals.TotalExpense,
		Net:           res.Totals.Net,
	})
}

func printTransactionResponses(w io.Writer, txs []transaction.TransactionResponse, loc *time.Location) {
	if len(txs) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tMETHOD\tAMOUNT\tNOTE\tID")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.OccurredAt.In(loc).Format(transaction.DateLayout), tx.Type, tx.Method,
			aggregate.FormatAmount(tx.Amount), noteOrDash(tx.Note), tx.ID)
	}
	tw.Flush()
}

func noteOrDash(note string) string {
	if strings.TrimSpace(note) == "" {
		return "-"
	}
	return note
}
