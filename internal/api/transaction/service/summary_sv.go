package transactionService

import (
	"FinTrack/internal/aggregate"
	"FinTrack/internal/api/transaction"
	"FinTrack/internal/query"
	contextPkg "FinTrack/pkg/context"
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

func summaryVersionKey(ownerID, workplaceID string) string {
	return fmt.Sprintf("summary_version:%s:%s", ownerID, workplaceID)
}

// summaryKey includes the current month because a default selection of the current
// year resolves to it.
func summaryKey(ownerID, workplaceID string, year int, sel aggregate.Selection, version int64, now time.Time) string {
	return fmt.Sprintf("summary:%s:%s:%d:%s:%s:v%d",
		ownerID, workplaceID, year, sel, now.Format("2006-01"), version)
}

func (s *transactionService) Summary(ctx context.Context, req transaction.SummaryQuery) (transaction.SummaryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	now := s.now().In(s.location)

	year := req.Year

	sel := aggregate.Default()
	switch {
	case req.Month != 0 && req.Date != "":
		return transaction.SummaryResponse{}, transaction.ErrInvalidPeriod
	case req.Month != 0:
		sel = aggregate.Month(req.Month)
	case req.Date != "":
		date, err := s.parseDate(req.Date)
		if err != nil {
			return transaction.SummaryResponse{}, err
		}
		// A date names its own year; one outside the requested year has no data in it.
		switch {
		case year == 0:
			year = date.Year()
		case year != date.Year():
			return transaction.SummaryResponse{}, transaction.ErrInvalidPeriod
		}
		sel = aggregate.Date(date)
	}

	if year == 0 {
		year = now.Year()
	}
	if err := sel.Validate(); err != nil {
		return transaction.SummaryResponse{}, transaction.ErrInvalidPeriod
	}

	filter, err := query.YearToDate(req.OwnerID, req.WorkplaceID, year, now)
	if err != nil {
		return transaction.SummaryResponse{}, err
	}

	if _, err := s.workplaceService.GetWorkplace(ctx, req.OwnerID, req.WorkplaceID); err != nil {
		return transaction.SummaryResponse{}, err
	}

	version, err := s.redisServer.Version(ctx, summaryVersionKey(req.OwnerID, req.WorkplaceID))
	cacheable := err == nil
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Summary cache unavailable")
	}
	key := summaryKey(req.OwnerID, req.WorkplaceID, year, sel, version, now)

	if cacheable {
		if cached, err := s.redisServer.Get(ctx, key); err == nil {
			var res transaction.SummaryResponse
			if err := jsoniter.UnmarshalFromString(cached, &res); err == nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"key":        key,
				}).Debug("Summary served from cache")
				return res, nil
			}
		}
	}

	txs, err := s.Find(ctx, filter)
	if err != nil {
		return transaction.SummaryResponse{}, err
	}

	resolved, subset := aggregate.Select(txs, sel, year, now)
	res := makeSummaryResponse(req.WorkplaceID, year, resolved, aggregate.AvailableMonths(year, now), len(subset), aggregate.Sum(subset))

	if cacheable {
		if encoded, err := jsoniter.MarshalToString(res); err == nil {
			if err := s.redisServer.Set(ctx, key, encoded, s.summaryTTL); err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Failed to cache summary")
			}
		}
	}

	return res, nil
}

func makeSummaryResponse(workplaceID string, year int, sel aggregate.Selection, months []int, count int, totals aggregate.Totals) transaction.SummaryResponse {
	selection := transaction.SelectionResponse{Kind: "month", Month: sel.Month}
	if sel.Kind == aggregate.KindDate {
		selection = transaction.SelectionResponse{Kind: "date", Date: sel.Date.Format(transaction.DateLayout)}
	}

	return transaction.SummaryResponse{
		WorkplaceID:     workplaceID,
		Year:            year,
		Selection:       selection,
		AvailableMonths: months,
		Count:           count,
		Totals: transaction.TotalsResponse{
			IncomeCash:    totals.IncomeCash,
			IncomeOnline:  totals.IncomeOnline,
			ExpenseCash:   totals.ExpenseCash,
			ExpenseOnline: totals.ExpenseOnline,
			TotalIncome:   totals.TotalIncome,
			TotalExpense:  totals.TotalExpense,
			Net:           totals.Net,
		},
	}
}
