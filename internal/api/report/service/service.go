package reportService

import (
	"FinTrack/internal/api/report"
	transactionService "FinTrack/internal/api/transaction/service"
	workplaceService "FinTrack/internal/api/workplace/service"
	reportPkg "FinTrack/internal/report"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

type IReportService interface {
	Monthly(ctx context.Context, req report.MonthlyReportQuery) (*reportPkg.Output, error)
	Annual(ctx context.Context, req report.AnnualReportQuery) (*reportPkg.Output, error)
	Custom(ctx context.Context, req report.CustomReportQuery) (*reportPkg.Output, error)
}

type reportService struct {
	log                *logrus.Logger
	transactionService transactionService.ITransactionService
	workplaceService   workplaceService.IWorkplaceService
	locale             string
	fetchLimit         int
	now                func() time.Time
}

func New(
	log *logrus.Logger,
	ts transactionService.ITransactionService,
	ws workplaceService.IWorkplaceService,
	locale string,
) IReportService {
	return &reportService{
		log:                log,
		transactionService: ts,
		workplaceService:   ws,
		locale:             locale,
		fetchLimit:         4,
		now:                time.Now,
	}
}
