package reportService

import (
	"FinTrack/internal/api/report"
	"FinTrack/internal/api/transaction"
	"FinTrack/internal/entity"
	"FinTrack/internal/query"
	reportPkg "FinTrack/internal/report"
	contextPkg "FinTrack/pkg/context"
	"FinTrack/pkg/response"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
	"time"
)

func (s *reportService) Monthly(ctx context.Context, req report.MonthlyReportQuery) (*reportPkg.Output, error) {
	requestID := contextPkg.GetRequestID(ctx)

	filter, err := query.MonthOf(req.OwnerID, req.WorkplaceID, req.Year, req.Month)
	if err != nil {
		return nil, response.Wrap(report.ErrInvalidReportPeriod, err.Error())
	}

	meta, err := s.meta(ctx, req.OwnerID, req.OwnerEmail, req.WorkplaceID)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactionService.Find(ctx, filter)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to fetch monthly report data")
		return nil, response.Wrap(report.ErrReportFetch, err.Error())
	}

	doc, err := reportPkg.BuildMonthly(meta, req.Year, req.Month, txs)
	if err != nil {
		return nil, response.Wrap(report.ErrInvalidReportPeriod, err.Error())
	}

	return s.render(ctx, doc)
}

// Annual fetches each month of the year separately. Any failed month aborts the
// report.
func (s *reportService) Annual(ctx context.Context, req report.AnnualReportQuery) (*reportPkg.Output, error) {
	requestID := contextPkg.GetRequestID(ctx)
	now := s.now().In(s.transactionService.Location())

	if req.Year < 1 {
		return nil, report.ErrInvalidReportPeriod
	}

	meta, err := s.meta(ctx, req.OwnerID, req.OwnerEmail, req.WorkplaceID)
	if err != nil {
		return nil, err
	}

	ceiling := entity.MonthCeiling(req.Year, now)
	byMonth := make([][]entity.Transaction, ceiling)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchLimit)

	for month := 1; month <= ceiling; month++ {
		month := month
		g.Go(func() error {
			filter, err := query.MonthOf(req.OwnerID, req.WorkplaceID, req.Year, month)
			if err != nil {
				return err
			}

			txs, err := s.transactionService.Find(gctx, filter)
			if err != nil {
				return err
			}

			byMonth[month-1] = txs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"year":       req.Year,
			"error":      err.Error(),
		}).Error("Failed to fetch annual report data")
		return nil, response.Wrap(report.ErrReportFetch, err.Error())
	}

	var txs []entity.Transaction
	for _, monthTxs := range byMonth {
		txs = append(txs, monthTxs...)
	}
	query.Sort(txs)

	doc, err := reportPkg.BuildAnnual(meta, req.Year, now, txs)
	if err != nil {
		return nil, response.Wrap(report.ErrInvalidReportPeriod, err.Error())
	}

	return s.render(ctx, doc)
}

func (s *reportService) Custom(ctx context.Context, req report.CustomReportQuery) (*reportPkg.Output, error) {
	requestID := contextPkg.GetRequestID(ctx)
	loc := s.transactionService.Location()

	from, err := time.ParseInLocation(transaction.DateLayout, req.From, loc)
	if err != nil {
		return nil, response.Wrap(report.ErrInvalidReportPeriod, err.Error())
	}
	to, err := time.ParseInLocation(transaction.DateLayout, req.To, loc)
	if err != nil {
		return nil, response.Wrap(report.ErrInvalidReportPeriod, err.Error())
	}

	filter, err := query.CustomRange(req.OwnerID, req.WorkplaceID, from, to)
	if err != nil {
		return nil, err
	}

	meta, err := s.meta(ctx, req.OwnerID, req.OwnerEmail, req.WorkplaceID)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactionService.Find(ctx, filter)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to fetch custom report data")
		return nil, response.Wrap(report.ErrReportFetch, err.Error())
	}

	doc, err := reportPkg.BuildCustom(meta, from, to, txs)
	if err != nil {
		return nil, response.Wrap(transaction.ErrInvalidDateRange, err.Error())
	}

	return s.render(ctx, doc)
}

func (s *reportService) meta(ctx context.Context, ownerID, ownerEmail, workplaceID string) (reportPkg.Meta, error) {
	w, err := s.workplaceService.GetWorkplace(ctx, ownerID, workplaceID)
	if err != nil {
		return reportPkg.Meta{}, err
	}

	loc := s.transactionService.Location()
	return reportPkg.Meta{
		WorkplaceName: w.Name,
		UserLabel:     ownerEmail,
		GeneratedAt:   s.now().In(loc),
		Dates:         reportPkg.NewDateFormatter(s.locale, loc),
	}, nil
}

func (s *reportService) render(ctx context.Context, doc *reportPkg.Document) (*reportPkg.Output, error) {
	requestID := contextPkg.GetRequestID(ctx)

	out, err := reportPkg.Render(doc)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"kind":       doc.Kind,
			"error":      err.Error(),
		}).Error("Failed to render report")
		return nil, response.Wrap(report.ErrReportGeneration, err.Error())
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"kind":       doc.Kind,
		"filename":   out.Filename,
		"pages":      out.Pages,
	}).Info("Report generated")

	return out, nil
}
